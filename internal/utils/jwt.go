package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/budget-keeper/models"
)

// ErrInvalidAuthorizationHeader is returned by [ParseBearerToken] for a
// header that is not of the form "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for identity.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//   - email          : the lowercased account email
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("budget-keeper", identity, 168*time.Hour, macKey, time.Now())
func GenerateJWTToken(issuer string, identity models.Identity, tokenDuration time.Duration, signKey []byte, now time.Time) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || len(signKey) == 0 || identity.UserID == "" || identity.Email == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	expiresAt := now.Add(tokenDuration)
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: identity.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{SignedString: tokenString, ExpiresAt: expiresAt}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// the caller identity.
//
// Validation includes:
//   - Signature verification with HS256 only (other algorithms are rejected)
//   - Strict base64url decoding, so no two encodings map to one token
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim presence and check against now
//   - Subject (sub) and email claim presence
//
// Example usage:
//
//	identity, err := utils.ValidateAndParseJWTToken(rawToken, macKey, "budget-keeper", time.Now())
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString string, signKey []byte, tokenIssuer string, now time.Time) (models.Identity, error) {
	claims := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return models.Identity{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Identity{}, errors.New("empty subject error")
	}
	if claims.Email == "" {
		return models.Identity{}, errors.New("empty email error")
	}

	return models.Identity{UserID: claims.Subject, Email: claims.Email}, nil
}

// ParseBearerToken extracts the token from an Authorization header value of
// the form "Bearer <token>". The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}
