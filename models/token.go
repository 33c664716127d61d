package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set of a bearer token: the standard sub, iss, iat
// and exp claims plus the account email.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Email is the lowercased account email. Together with the subject it
	// lets the document facade locate the user record without an index.
	Email string `json:"email"`
}

// Token is an issued bearer token.
type Token struct {
	// SignedString is the compact JWS form (header.payload.signature).
	SignedString string

	// ExpiresAt is the moment the token stops being accepted.
	ExpiresAt time.Time
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
