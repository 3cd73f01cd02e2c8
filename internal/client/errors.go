package client

import "errors"

var (
	ErrNoCommand      = errors.New("no command given")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingEmail   = errors.New("-email is required")
	ErrMissingID      = errors.New("-id is required")
	ErrEmptyUpdate    = errors.New("nothing to update")
	ErrInvalidField   = errors.New("field must look like key=value")
)
