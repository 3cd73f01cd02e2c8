package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request payload misses a
	// required field (for example, registration without a password).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongCredentials is returned by Login for an unknown e-mail and for
	// a wrong password alike.
	ErrWrongCredentials = errors.New("wrong email/password")

	// ErrInvalidToken is returned when a bearer token is missing, malformed,
	// expired, or signed with a different key.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden is returned when the caller is authenticated but not
	// allowed to perform the operation on the target record.
	ErrForbidden = errors.New("missing admin permissions")

	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrHashingFailed       = errors.New("password hashing failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
