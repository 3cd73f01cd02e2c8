// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings shared by the accounts server
// and its command-line client.
//
// Msg* constants are written into the "message" field of HTTP error bodies.
// The client matches nothing on them; they exist so the wording stays the
// same everywhere it appears.
package app

const (
	// MsgEmailAlreadyRegistered is returned with 409 when a registration or
	// update uses an e-mail that belongs to another account.
	MsgEmailAlreadyRegistered = "E-mail already registered"

	// MsgWrongCredentials is returned with 401 for an unknown e-mail and for
	// a wrong password alike.
	MsgWrongCredentials = "Wrong email/password"

	// MsgMissingAuthorization is returned with 401 when the bearer token is
	// absent, malformed, expired or forged.
	MsgMissingAuthorization = "Missing authorization headers"

	// MsgMissingAdminPermissions is returned with 403 when the caller may not
	// act on the target account.
	MsgMissingAdminPermissions = "missing admin permissions"

	// MsgUserNotFound is returned with 404 when the target account does not
	// exist.
	MsgUserNotFound = "User not found!"

	// MsgInvalidDataProvided is returned with 400 when a required field is
	// missing or blank.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidJSON is returned with 400 when the body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInternalServerError is returned for every unexpected failure.
	MsgInternalServerError = "internal server error"
)
