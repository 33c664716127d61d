package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/crypto"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/utils"
	"github.com/MKhiriev/budget-keeper/models"
)

// tokenService is the concrete implementation of TokenService.
// Tokens are HS256 JWTs signed with a key derived from the signing secret,
// so the raw secret never doubles as a MAC key.
type tokenService struct {
	// signKey is the HKDF-derived token MAC key.
	signKey []byte

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now func() time.Time

	logger *logger.Logger
}

// NewTokenService derives the token MAC key from cfg.SigningSecret and
// returns a TokenService using cfg's issuer and duration.
func NewTokenService(cfg config.Auth, logger *logger.Logger) (TokenService, error) {
	signKey, err := crypto.DeriveTokenSigningKey([]byte(cfg.SigningSecret))
	if err != nil {
		return nil, fmt.Errorf("derive token signing key: %w", err)
	}

	return &tokenService{
		signKey:       signKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           time.Now,
		logger:        logger,
	}, nil
}

// CreateToken issues a signed JWT whose subject is user.ID and whose email
// claim is user.Email.
//
// Returns the token model on success or ErrTokenCreationFailed if signing
// fails.
func (t *tokenService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	identity := models.Identity{UserID: user.ID, Email: user.Email}

	token, err := utils.GenerateJWTToken(t.tokenIssuer, identity, t.tokenDuration, t.signKey, t.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT string and returns the caller it names.
//
// Any validation failure (expired, wrong issuer, bad signature, malformed,
// missing claims) is normalised to ErrTokenIsExpiredOrInvalid so that callers
// do not need to inspect low-level JWT errors.
func (t *tokenService) ParseToken(ctx context.Context, tokenString string) (models.Identity, error) {
	identity, err := utils.ValidateAndParseJWTToken(tokenString, t.signKey, t.tokenIssuer, t.now())
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Identity{}, ErrTokenIsExpiredOrInvalid
	}

	return identity, nil
}
