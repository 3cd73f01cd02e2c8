package validators

import "errors"

var (
	// ErrValidation wraps every rejection of a request payload. The HTTP
	// boundary maps it to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail    = errors.New("email is required")
	ErrEmptyPassword = errors.New("password is required")
)
