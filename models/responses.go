package models

// RegisterResponse is returned by POST /auth/register. RecoveryKey is shown
// only in this response.
type RegisterResponse struct {
	Token       string     `json:"token"`
	User        PublicUser `json:"user"`
	RecoveryKey string     `json:"recoveryKey"`
}

// AuthResponse is returned by POST /auth/login.
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// TokenResponse is returned by POST /auth/change-password.
type TokenResponse struct {
	Token string `json:"token"`
}

// RecoveryKeyResponse is returned by POST /auth/recovery-key.
type RecoveryKeyResponse struct {
	RecoveryKey string `json:"recoveryKey"`
}

// OKResponse acknowledges requests that return no data.
type OKResponse struct {
	OK bool `json:"ok"`
}

// DocumentKeysResponse is returned by GET /docs.
type DocumentKeysResponse struct {
	Keys []string `json:"keys"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
