package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/crypto"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/store"
	"github.com/MKhiriev/budget-keeper/models"
)

const (
	testSigningSecret = "0123456789abcdef0123456789abcdef"
	testIssuer        = "budget-keeper-test"
	testPassword      = "S3cretPW!"
	testEmail         = "alice@x.com"
)

// cheapHashParams keeps Argon2id fast enough for the suite.
var cheapHashParams = crypto.PasswordHashParams{
	Memory:      64,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

var testAuthConfig = config.Auth{
	SigningSecret: testSigningSecret,
	TokenIssuer:   testIssuer,
	TokenDuration: time.Hour,
}

// recordingQueue is a NotificationQueue that keeps everything it accepts.
type recordingQueue struct {
	mu       sync.Mutex
	full     bool
	received []models.Notification
}

func (q *recordingQueue) Enqueue(ctx context.Context, notification models.Notification) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.full {
		return false
	}
	q.received = append(q.received, notification)
	return true
}

func (q *recordingQueue) notifications() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.Notification(nil), q.received...)
}

// testEnv is a fully wired service stack over an in-memory blob store.
type testEnv struct {
	blobs     store.BlobStore
	users     store.UserRepository
	queue     *recordingQueue
	tokens    TokenService
	auth      AuthService
	documents DocumentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.Nop()
	blobs := store.NewMemoryBlobStore()
	users := store.NewUserRepository(blobs, log)
	keyChain := crypto.NewKeyChainService(cheapHashParams)
	queue := &recordingQueue{}

	tokens, err := NewTokenService(testAuthConfig, log)
	require.NoError(t, err)

	return &testEnv{
		blobs:  blobs,
		users:  users,
		queue:  queue,
		tokens: tokens,
		auth:   NewAuthService(users, keyChain, tokens, queue, testAuthConfig, log),
		documents: NewDocumentValidationService().Wrap(
			NewDocumentService(blobs, users, keyChain, testAuthConfig, log),
		),
	}
}

// register creates the standard test account and returns its registration.
func (e *testEnv) register(t *testing.T) models.Registration {
	t.Helper()

	registration, err := e.auth.Register(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	return registration
}

// identity verifies the session token and returns the caller it names.
func (e *testEnv) identity(t *testing.T, session models.Session) models.Identity {
	t.Helper()

	identity, err := e.tokens.ParseToken(context.Background(), session.Token.SignedString)
	require.NoError(t, err)
	return identity
}
