package store

import "strings"

// validateBlobKey rejects keys that are empty, absolute, contain backslashes
// or NUL bytes, or have empty, "." or ".." segments.
func validateBlobKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.ContainsAny(key, "\\\x00") {
		return ErrInvalidBlobKey
	}

	for _, segment := range strings.Split(key, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return ErrInvalidBlobKey
		}
	}

	return nil
}
