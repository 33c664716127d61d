package validators

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// MaxDocumentKeyLength bounds the length of a logical document key.
const MaxDocumentKeyLength = 200

var documentKeySegment = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateDocumentKey checks a logical document key such as "weeks" or
// "2026/03/budget.json": 1 to MaxDocumentKeyLength characters, "/"-separated
// segments of letters, digits, '.', '_' and '-', and no "." or ".." segment.
func ValidateDocumentKey(key string) error {
	if key == "" || len(key) > MaxDocumentKeyLength {
		return fmt.Errorf("%w: length must be between 1 and %d", ErrInvalidDocumentKey, MaxDocumentKeyLength)
	}

	for _, segment := range strings.Split(key, "/") {
		if segment == "." || segment == ".." || !documentKeySegment.MatchString(segment) {
			return fmt.Errorf("%w: bad segment %q", ErrInvalidDocumentKey, segment)
		}
	}
	return nil
}

// ValidateDocumentPrefix checks a listing prefix. An empty prefix lists
// everything; otherwise the prefix must be a valid key, optionally followed
// by a trailing "/".
func ValidateDocumentPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	return ValidateDocumentKey(strings.TrimSuffix(prefix, "/"))
}

// MaxDocumentSize bounds the size of a stored document body.
const MaxDocumentSize = 1 << 20

// ValidateDocumentBody checks that a document body is a JSON value of at most
// MaxDocumentSize bytes.
func ValidateDocumentBody(body []byte) error {
	if len(body) > MaxDocumentSize {
		return ErrDocumentTooLarge
	}
	if !json.Valid(body) {
		return ErrInvalidDocumentBody
	}
	return nil
}
