package models

import "time"

// User is the persisted account record. It is stored as JSON under
// users/<email>.json and never leaves the server except as [PublicUser].
//
// Wrapped DEKs are nonce ‖ ciphertext ‖ tag and serialize as standard base64.
type User struct {
	// ID is a UUIDv7 assigned at registration. It prefixes every document
	// storage key of the user and is immutable.
	ID string `json:"id"`

	// Email is the lowercased, trimmed address. Unique; also the record key.
	Email string `json:"email"`

	// PasswordHash is the self-describing Argon2id hash of the password.
	PasswordHash string `json:"passwordHash"`

	// PasswordWrappedDEK is the DEK sealed under the password wrapping key.
	PasswordWrappedDEK []byte `json:"passwordWrappedDEK"`

	// RecoveryWrappedDEK is the DEK sealed under the recovery wrapping key.
	RecoveryWrappedDEK []byte `json:"recoveryWrappedDEK"`

	// ServerWrappedDEK is the DEK sealed under the server wrapping key. It lets
	// the server unlock documents for a caller holding a valid token.
	ServerWrappedDEK []byte `json:"serverWrappedDEK"`

	// RecoveryHash is the Argon2id hash of the Recovery Key.
	RecoveryHash string `json:"recoveryHash"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the fields of u that may be shown to the account owner.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// PublicUser is the client-visible view of a [User].
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Identity is the authenticated caller extracted from a verified bearer
// token. It is placed in the request context by the auth middleware.
type Identity struct {
	UserID string
	Email  string
}
