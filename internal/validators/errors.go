package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail       = errors.New("email is not a valid address")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNoUpper    = errors.New("password must contain an upper-case letter")
	ErrPasswordNoLower    = errors.New("password must contain a lower-case letter")
	ErrPasswordNoDigit    = errors.New("password must contain a digit")
	ErrEmptyPassword      = errors.New("password is required")
	ErrEmptyRecoveryKey   = errors.New("recovery key is required")
	ErrInvalidDocumentKey = errors.New("invalid document key")

	ErrInvalidDocumentBody = errors.New("document must be valid JSON")
	ErrDocumentTooLarge    = errors.New("document exceeds 1 MiB")
)
