package client

import "errors"

var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrMissingArgument   = errors.New("missing argument")
	ErrPasswordsMismatch = errors.New("passwords do not match")
	ErrNotLoggedIn       = errors.New("not logged in, run `login` first")
)
