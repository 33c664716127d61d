package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const passwordHashPrefix = "argon2id$"

// PasswordHashParams holds the Argon2id cost parameters used by
// [HashPassword]. They are embedded in every produced hash, so changing them
// does not invalidate hashes that are already stored.
type PasswordHashParams struct {
	// Memory is the memory cost in KiB.
	Memory uint32
	// Iterations is the time cost.
	Iterations uint32
	// Parallelism is the number of lanes.
	Parallelism uint8
	// SaltLength is the size of the random per-hash salt in bytes.
	SaltLength int
	// KeyLength is the size of the derived tag in bytes.
	KeyLength uint32
}

// DefaultPasswordHashParams returns server-side parameters that take well
// over 100 ms on a modern core: 64 MiB, 3 passes, 2 lanes, 16-byte salt and
// 32-byte tag.
func DefaultPasswordHashParams() PasswordHashParams {
	return PasswordHashParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// HashPassword derives an Argon2id tag from secret with a fresh random salt
// and returns a self-describing string:
//
//	argon2id$v=19$m=<KiB>,t=<iterations>,p=<lanes>$<b64 salt>$<b64 tag>
func HashPassword(p PasswordHashParams, secret string) (string, error) {
	salt, err := RandomBytes(p.SaltLength)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		passwordHashPrefix, argon2.Version,
		p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword parses encoded, recomputes the tag for secret with the
// embedded salt and parameters, and compares the two in constant time.
// A malformed encoded value yields [ErrInvalidHash].
func VerifyPassword(secret, encoded string) (bool, error) {
	p, salt, want, err := decodePasswordHash(encoded)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(secret), salt, p.Iterations, p.Memory, p.Parallelism, uint32(len(want)))
	return ConstantTimeEqual(got, want), nil
}

func decodePasswordHash(encoded string) (PasswordHashParams, []byte, []byte, error) {
	var p PasswordHashParams

	if !strings.HasPrefix(encoded, passwordHashPrefix) {
		return p, nil, nil, ErrInvalidHash
	}

	parts := strings.Split(strings.TrimPrefix(encoded, passwordHashPrefix), "$")
	if len(parts) != 4 {
		return p, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[0], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrInvalidHash
	}

	if _, err := fmt.Sscanf(parts[1], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	if p.Memory == 0 || p.Iterations == 0 || p.Parallelism == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	p.SaltLength = len(salt)
	p.KeyLength = uint32(len(key))

	return p, salt, key, nil
}
