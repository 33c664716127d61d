// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrCryptoFailure is returned by every decryption and unwrap path. It does
	// not tell a wrong key apart from a corrupted or tampered ciphertext.
	ErrCryptoFailure = errors.New("crypto failure")

	// ErrInvalidHash is returned when a stored password hash cannot be parsed.
	ErrInvalidHash = errors.New("invalid password hash")

	// ErrInvalidKeyLength is returned when a wrapping key or DEK is not 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")
)
