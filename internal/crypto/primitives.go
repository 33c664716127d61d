// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the size of every symmetric key handled by this package
	// (DEKs and wrapping keys): 256 bits.
	KeySize = 32

	// NonceSize is the AES-GCM nonce size (96 bits).
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag size (128 bits).
	TagSize = 16
)

// DeriveWrappingKey runs HKDF-SHA256 (extract + expand) over material and
// returns a 256-bit key. salt and info domain-separate keys derived from the
// same material.
func DeriveWrappingKey(material, salt, info []byte) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, material, salt, info), key); err != nil {
		return nil, fmt.Errorf("derive wrapping key: %w", err)
	}
	return key, nil
}

// infoTokenSigning labels the MAC key of bearer tokens.
const infoTokenSigning = "token-signing"

// DeriveTokenSigningKey derives the HS256 key of bearer tokens from the
// process signing secret. The same secret also feeds the server wrapping
// key; the distinct HKDF label keeps the two keys unrelated.
func DeriveTokenSigningKey(signingSecret []byte) ([]byte, error) {
	return DeriveWrappingKey(signingSecret, nil, []byte(infoTokenSigning))
}

// Seal encrypts plaintext with AES-256-GCM under key, binding aad.
// The output layout is nonce (12 bytes) ‖ ciphertext ‖ tag (16 bytes).
// A fresh random nonce is drawn for every call.
func Seal(key, plaintext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := RandomBytes(gcm.NonceSize())
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, aad), nil
}

// Open reverses [Seal]. Any failure, including a short blob or a tag
// mismatch, is reported as [ErrCryptoFailure].
func Open(key, blob, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, ErrCryptoFailure
	}

	if len(blob) < gcm.NonceSize()+gcm.Overhead() {
		return nil, ErrCryptoFailure
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrCryptoFailure
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}

// RandomBytes reads n bytes from the OS CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// RandomToken returns n random bytes encoded as unpadded base64url.
func RandomToken(n int) (string, error) {
	b, err := RandomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ConstantTimeEqual reports whether a and b are equal without leaking timing
// information about their contents.
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zero overwrites b with zeroes.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
