// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HKDF info labels. They keep the three wrapping keys independent even when
// a user reuses the same string as password and Recovery Key.
const (
	infoPasswordWrap = "password-wrap"
	infoRecoveryWrap = "recovery-wrap"
	infoServerWrap   = "server-wrap"
)

const (
	recoveryKeyPrefix    = "rec"
	recoveryKeyBytes     = 16
	recoveryKeyGroupSize = 4
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// Argon2id cost parameters for password and Recovery Key hashes. Stored in
	// the struct so tests and small deployments can lower them.
	hashParams PasswordHashParams
}

// NewKeyChainService constructs a [KeyChainService] that hashes secrets with
// the given Argon2id parameters.
func NewKeyChainService(hashParams PasswordHashParams) KeyChainService {
	return &keyChainService{hashParams: hashParams}
}

// HashPassword implements [KeyChainService].
func (k *keyChainService) HashPassword(secret string) (string, error) {
	return HashPassword(k.hashParams, secret)
}

// VerifyPassword implements [KeyChainService].
func (k *keyChainService) VerifyPassword(secret, encoded string) (bool, error) {
	return VerifyPassword(secret, encoded)
}

// GenerateDEK implements [KeyChainService]. It reads 32 random bytes from
// the OS CSPRNG.
func (k *keyChainService) GenerateDEK() ([]byte, error) {
	dek, err := RandomBytes(KeySize)
	if err != nil {
		return nil, fmt.Errorf("generate dek: %w", err)
	}
	return dek, nil
}

// GenerateRecoveryKey implements [KeyChainService]. The key carries 128 bits
// of entropy rendered as lower-case hex in dash-separated groups of four.
func (k *keyChainService) GenerateRecoveryKey() (string, error) {
	raw, err := RandomBytes(recoveryKeyBytes)
	if err != nil {
		return "", fmt.Errorf("generate recovery key: %w", err)
	}

	encoded := hex.EncodeToString(raw)
	groups := make([]string, 0, len(encoded)/recoveryKeyGroupSize+1)
	groups = append(groups, recoveryKeyPrefix)
	for i := 0; i < len(encoded); i += recoveryKeyGroupSize {
		groups = append(groups, encoded[i:i+recoveryKeyGroupSize])
	}

	return strings.Join(groups, "-"), nil
}

// PasswordWrappingKey implements [KeyChainService].
func (k *keyChainService) PasswordWrappingKey(password, email string) ([]byte, error) {
	return DeriveWrappingKey([]byte(password), []byte(email), []byte(infoPasswordWrap))
}

// RecoveryWrappingKey implements [KeyChainService].
func (k *keyChainService) RecoveryWrappingKey(recoveryKey, email string) ([]byte, error) {
	return DeriveWrappingKey([]byte(recoveryKey), []byte(email), []byte(infoRecoveryWrap))
}

// ServerWrappingKey implements [KeyChainService].
func (k *keyChainService) ServerWrappingKey(signingSecret []byte, email string) ([]byte, error) {
	return DeriveWrappingKey(signingSecret, []byte(email), []byte(infoServerWrap))
}

// WrapDEK implements [KeyChainService]. The DEK is sealed with empty
// associated data.
func (k *keyChainService) WrapDEK(dek, wrappingKey []byte) ([]byte, error) {
	if len(dek) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	wrapped, err := Seal(wrappingKey, dek, nil)
	if err != nil {
		return nil, fmt.Errorf("wrap dek: %w", err)
	}
	return wrapped, nil
}

// UnwrapDEK implements [KeyChainService].
func (k *keyChainService) UnwrapDEK(wrappedDEK, wrappingKey []byte) ([]byte, error) {
	dek, err := Open(wrappingKey, wrappedDEK, nil)
	if err != nil {
		return nil, err
	}
	if len(dek) != KeySize {
		Zero(dek)
		return nil, ErrCryptoFailure
	}
	return dek, nil
}

// EncryptDocument implements [KeyChainService].
func (k *keyChainService) EncryptDocument(dek, plaintext []byte, storageKey string) ([]byte, error) {
	blob, err := Seal(dek, plaintext, []byte(storageKey))
	if err != nil {
		return nil, fmt.Errorf("encrypt document: %w", err)
	}
	return blob, nil
}

// DecryptDocument implements [KeyChainService].
func (k *keyChainService) DecryptDocument(dek, blob []byte, storageKey string) ([]byte, error) {
	return Open(dek, blob, []byte(storageKey))
}
