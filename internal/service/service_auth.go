package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/crypto"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/store"
	"github.com/MKhiriev/budget-keeper/internal/utils"
	"github.com/MKhiriev/budget-keeper/internal/validators"
	"github.com/MKhiriev/budget-keeper/models"
)

// dummySecretLength is the number of random bytes hashed when a lookup
// misses, so an unknown email costs one Argon2id run like a known one.
const dummySecretLength = 24

// authService is the concrete implementation of AuthService.
//
// Every user has one DEK, stored three times: wrapped under a key derived
// from the password, under one derived from the Recovery Key and under one
// derived from the signing secret. Changing or resetting the password
// replaces only the password wrapping; documents are never re-encrypted.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	keyChain  crypto.KeyChainService
	tokens    TokenService
	validator validators.Validator

	// notifications receives forgot-password events. It must not block.
	notifications NotificationQueue

	// signingSecret is the material of every server wrapping key.
	signingSecret []byte

	newID func() string
	now   func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repository,
// key chain and token service.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	keyChain crypto.KeyChainService,
	tokens TokenService,
	notifications NotificationQueue,
	cfg config.Auth,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		keyChain:       keyChain,
		tokens:         tokens,
		validator:      validators.NewAuthValidator(),
		notifications:  notifications,
		signingSecret:  []byte(cfg.SigningSecret),
		newID:          utils.NewUUIDGenerator().Generate,
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates a new account.
//
// Returns the registration or:
//   - ErrValidation if the email or password breaks the policy.
//   - store.ErrEmailAlreadyExists if the email is taken, including when a
//     concurrent registration wins the conditional create.
//   - A wrapped storage or crypto error otherwise.
func (a *authService) Register(ctx context.Context, email, password string) (models.Registration, error) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.Register").Logger()

	if err := a.validator.Validate(ctx, models.RegisterRequest{Email: email, Password: password}); err != nil {
		return models.Registration{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	email = normalizeEmail(email)

	_, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.Registration{}, store.ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Msg("user lookup failed")
		return models.Registration{}, fmt.Errorf("user lookup failed: %w", err)
	}

	passwordHash, err := a.keyChain.HashPassword(password)
	if err != nil {
		return models.Registration{}, fmt.Errorf("hash password: %w", err)
	}

	dek, err := a.keyChain.GenerateDEK()
	if err != nil {
		return models.Registration{}, err
	}
	defer crypto.Zero(dek)

	recoveryKey, err := a.keyChain.GenerateRecoveryKey()
	if err != nil {
		return models.Registration{}, err
	}

	recoveryHash, err := a.keyChain.HashPassword(recoveryKey)
	if err != nil {
		return models.Registration{}, fmt.Errorf("hash recovery key: %w", err)
	}

	passwordWrapped, err := a.wrapWith(dek, func() ([]byte, error) {
		return a.keyChain.PasswordWrappingKey(password, email)
	})
	if err != nil {
		return models.Registration{}, err
	}
	recoveryWrapped, err := a.wrapWith(dek, func() ([]byte, error) {
		return a.keyChain.RecoveryWrappingKey(recoveryKey, email)
	})
	if err != nil {
		return models.Registration{}, err
	}
	serverWrapped, err := a.wrapWith(dek, func() ([]byte, error) {
		return a.keyChain.ServerWrappingKey(a.signingSecret, email)
	})
	if err != nil {
		return models.Registration{}, err
	}

	now := a.now().UTC()
	user := models.User{
		ID:                 a.newID(),
		Email:              email,
		PasswordHash:       passwordHash,
		PasswordWrappedDEK: passwordWrapped,
		RecoveryWrappedDEK: recoveryWrapped,
		ServerWrappedDEK:   serverWrapped,
		RecoveryHash:       recoveryHash,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err = a.userRepository.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Err(err).Msg("user creation ended with error")
		}
		return models.Registration{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.tokens.CreateToken(ctx, user)
	if err != nil {
		return models.Registration{}, err
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")

	return models.Registration{
		Session:     models.Session{Token: token, User: user.Public()},
		RecoveryKey: recoveryKey,
	}, nil
}

// Login authenticates an existing user and issues a token.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, email, password string) (models.Session, error) {
	user, err := a.authenticate(ctx, email, password)
	if err != nil {
		return models.Session{}, err
	}

	token, err := a.tokens.CreateToken(ctx, user)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{Token: token, User: user.Public()}, nil
}

// ChangePassword authenticates with oldPassword, rewraps the DEK under the
// new password and issues a fresh token. The recovery and server wrappings
// stay as they are.
func (a *authService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (models.Session, error) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.ChangePassword").Logger()

	user, err := a.authenticate(ctx, email, oldPassword)
	if err != nil {
		return models.Session{}, err
	}

	request := models.ChangePasswordRequest{NewPassword: newPassword}
	if err = a.validator.Validate(ctx, request, validators.FieldNewPassword); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	dek, err := a.unwrapWith(user.PasswordWrappedDEK, func() ([]byte, error) {
		return a.keyChain.PasswordWrappingKey(oldPassword, user.Email)
	})
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("password-wrapped DEK did not open")
		return models.Session{}, ErrInvalidCredentials
	}
	defer crypto.Zero(dek)

	if err = a.setPassword(&user, dek, newPassword); err != nil {
		return models.Session{}, err
	}

	if err = a.userRepository.SaveUser(ctx, user); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("saving user failed")
		return models.Session{}, fmt.Errorf("saving user failed: %w", err)
	}

	token, err := a.tokens.CreateToken(ctx, user)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{Token: token, User: user.Public()}, nil
}

// ForgotPassword queues a reset notification when the email belongs to an
// account. Lookup failures are logged and swallowed.
func (a *authService) ForgotPassword(ctx context.Context, email string) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.ForgotPassword").Logger()

	email = normalizeEmail(email)
	if validators.ValidateEmail(email) != nil {
		return
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Msg("user lookup failed")
		}
		return
	}

	notification := models.Notification{
		Kind:        models.PasswordResetRequested,
		UserID:      user.ID,
		Email:       user.Email,
		RequestedAt: a.now().UTC(),
	}
	if !a.notifications.Enqueue(ctx, notification) {
		log.Warn().Str("user_id", user.ID).Msg("notification queue is full, reset notification dropped")
	}
}

// ResetPassword replaces the password of the account that recoveryKey
// unlocks. The Recovery Key remains valid afterwards.
func (a *authService) ResetPassword(ctx context.Context, email, recoveryKey, newPassword string) error {
	log := logger.FromContext(ctx).With().Str("func", "*authService.ResetPassword").Logger()

	email = normalizeEmail(email)
	recoveryKey = strings.TrimSpace(recoveryKey)

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.burnHash()
			return ErrInvalidCredentials
		}
		log.Err(err).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	ok, err := a.keyChain.VerifyPassword(recoveryKey, user.RecoveryHash)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("stored recovery hash is unreadable")
		return fmt.Errorf("%w: %w", store.ErrMalformedUserRecord, err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	dek, err := a.unwrapWith(user.RecoveryWrappedDEK, func() ([]byte, error) {
		return a.keyChain.RecoveryWrappingKey(recoveryKey, user.Email)
	})
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("recovery-wrapped DEK did not open")
		return ErrInvalidCredentials
	}
	defer crypto.Zero(dek)

	request := models.ResetPasswordRequest{NewPassword: newPassword}
	if err = a.validator.Validate(ctx, request, validators.FieldNewPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err = a.setPassword(&user, dek, newPassword); err != nil {
		return err
	}

	if err = a.userRepository.SaveUser(ctx, user); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("saving user failed")
		return fmt.Errorf("saving user failed: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("password reset with recovery key")
	return nil
}

// RotateRecoveryKey issues a new Recovery Key for an account that proves its
// password. The previous key stops working.
func (a *authService) RotateRecoveryKey(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.RotateRecoveryKey").Logger()

	user, err := a.authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	dek, err := a.unwrapWith(user.PasswordWrappedDEK, func() ([]byte, error) {
		return a.keyChain.PasswordWrappingKey(password, user.Email)
	})
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("password-wrapped DEK did not open")
		return "", ErrInvalidCredentials
	}
	defer crypto.Zero(dek)

	recoveryKey, err := a.keyChain.GenerateRecoveryKey()
	if err != nil {
		return "", err
	}

	recoveryHash, err := a.keyChain.HashPassword(recoveryKey)
	if err != nil {
		return "", fmt.Errorf("hash recovery key: %w", err)
	}

	recoveryWrapped, err := a.wrapWith(dek, func() ([]byte, error) {
		return a.keyChain.RecoveryWrappingKey(recoveryKey, user.Email)
	})
	if err != nil {
		return "", err
	}

	user.RecoveryHash = recoveryHash
	user.RecoveryWrappedDEK = recoveryWrapped
	user.UpdatedAt = a.now().UTC()

	if err = a.userRepository.SaveUser(ctx, user); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("saving user failed")
		return "", fmt.Errorf("saving user failed: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("recovery key rotated")
	return recoveryKey, nil
}

// authenticate loads the record of email and checks password against it.
func (a *authService) authenticate(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.authenticate").Logger()

	user, err := a.userRepository.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.burnHash()
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	ok, err := a.keyChain.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("stored password hash is unreadable")
		return models.User{}, fmt.Errorf("%w: %w", store.ErrMalformedUserRecord, err)
	}
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// setPassword stores a new password hash and password-wrapped DEK on user.
func (a *authService) setPassword(user *models.User, dek []byte, newPassword string) error {
	passwordHash, err := a.keyChain.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	passwordWrapped, err := a.wrapWith(dek, func() ([]byte, error) {
		return a.keyChain.PasswordWrappingKey(newPassword, user.Email)
	})
	if err != nil {
		return err
	}

	user.PasswordHash = passwordHash
	user.PasswordWrappedDEK = passwordWrapped
	user.UpdatedAt = a.now().UTC()
	return nil
}

// burnHash spends one password hash on a throwaway secret.
func (a *authService) burnHash() {
	secret, err := crypto.RandomToken(dummySecretLength)
	if err != nil {
		return
	}
	_, _ = a.keyChain.HashPassword(secret)
}

// wrapWith derives a wrapping key, seals dek under it and zeroes the key.
func (a *authService) wrapWith(dek []byte, deriveKey func() ([]byte, error)) ([]byte, error) {
	wrappingKey, err := deriveKey()
	if err != nil {
		return nil, fmt.Errorf("derive wrapping key: %w", err)
	}
	defer crypto.Zero(wrappingKey)

	return a.keyChain.WrapDEK(dek, wrappingKey)
}

// unwrapWith derives a wrapping key, opens wrapped under it and zeroes the
// key. The caller owns the returned DEK.
func (a *authService) unwrapWith(wrapped []byte, deriveKey func() ([]byte, error)) ([]byte, error) {
	wrappingKey, err := deriveKey()
	if err != nil {
		return nil, fmt.Errorf("derive wrapping key: %w", err)
	}
	defer crypto.Zero(wrappingKey)

	return a.keyChain.UnwrapDEK(wrapped, wrappingKey)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
