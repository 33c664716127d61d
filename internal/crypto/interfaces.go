package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns every key the vault core handles. It knows nothing
// about HTTP, users or storage; its only job is to derive, wrap and unwrap
// keys and to seal documents.
//
// Key hierarchy:
//
//	DEK                     = GenerateDEK()                         32 random bytes, never persisted
//	PasswordWrappingKey     = HKDF(password,      email, "password-wrap")
//	RecoveryWrappingKey     = HKDF(recoveryKey,   email, "recovery-wrap")
//	ServerWrappingKey       = HKDF(signingSecret, email, "server-wrap")
//	Wrapped DEK             = AES-GCM(wrappingKey, DEK, aad = "")
//	Document blob           = AES-GCM(DEK, document, aad = storageKey)
type KeyChainService interface {
	// HashPassword returns a self-describing Argon2id hash of secret. It is
	// used for both passwords and Recovery Keys.
	HashPassword(secret string) (string, error)

	// VerifyPassword checks secret against a hash produced by HashPassword.
	VerifyPassword(secret, encoded string) (bool, error)

	// GenerateDEK returns a fresh 256-bit data-encryption key.
	GenerateDEK() ([]byte, error)

	// GenerateRecoveryKey returns a fresh 128-bit Recovery Key formatted for
	// humans, e.g. rec-1a2b-3c4d-5e6f-7081-92a3-b4c5-d6e7-f809.
	GenerateRecoveryKey() (string, error)

	// PasswordWrappingKey derives the wrapping key unlocked by the password.
	PasswordWrappingKey(password, email string) ([]byte, error)

	// RecoveryWrappingKey derives the wrapping key unlocked by the Recovery Key.
	RecoveryWrappingKey(recoveryKey, email string) ([]byte, error)

	// ServerWrappingKey derives the wrapping key the server uses to unlock a
	// DEK on behalf of an authenticated caller.
	ServerWrappingKey(signingSecret []byte, email string) ([]byte, error)

	// WrapDEK encrypts dek under wrappingKey; output is nonce ‖ ciphertext ‖ tag.
	WrapDEK(dek, wrappingKey []byte) ([]byte, error)

	// UnwrapDEK reverses WrapDEK and fails with ErrCryptoFailure on a wrong
	// key or a corrupted blob alike.
	UnwrapDEK(wrappedDEK, wrappingKey []byte) ([]byte, error)

	// EncryptDocument seals a document under dek, binding it to storageKey.
	EncryptDocument(dek, plaintext []byte, storageKey string) ([]byte, error)

	// DecryptDocument opens a document sealed by EncryptDocument for the same
	// storageKey.
	DecryptDocument(dek, blob []byte, storageKey string) ([]byte, error)
}
