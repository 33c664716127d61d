package service

import (
	"context"

	"github.com/MKhiriev/budget-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns the account lifecycle: registration, sign-in and the two
// ways of replacing a password.
type AuthService interface {
	// Register creates an account and returns a token together with the
	// Recovery Key, which is never shown again.
	Register(ctx context.Context, email, password string) (models.Registration, error)

	// Login verifies the password and issues a token.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// ChangePassword replaces the password of an account that proves the old
	// one. Documents are not re-encrypted.
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (models.Session, error)

	// ForgotPassword queues a reset notification for a known email. It never
	// reports whether the email exists.
	ForgotPassword(ctx context.Context, email string)

	// ResetPassword sets a new password for the holder of the Recovery Key.
	ResetPassword(ctx context.Context, email, recoveryKey, newPassword string) error

	// RotateRecoveryKey replaces the Recovery Key of an account that proves
	// its password and returns the new key.
	RotateRecoveryKey(ctx context.Context, email, password string) (string, error)
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Identity, error)
}

// DocumentService stores the caller's documents encrypted under their DEK.
// Logical keys are relative to the caller; the service prefixes them with
// the user id.
type DocumentService interface {
	ReadDocument(ctx context.Context, identity models.Identity, logicalKey string) ([]byte, error)
	WriteDocument(ctx context.Context, identity models.Identity, logicalKey string, payload []byte) error
	ListDocuments(ctx context.Context, identity models.Identity, prefix string) ([]string, error)
	DeleteDocument(ctx context.Context, identity models.Identity, logicalKey string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// NotificationQueue accepts notifications for background delivery.
// Enqueue must not block; it reports false when the notification was
// dropped.
type NotificationQueue interface {
	Enqueue(ctx context.Context, notification models.Notification) bool
}
