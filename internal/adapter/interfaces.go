// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the accounts REST API.
//
// [AccountsAdapter] hides the HTTP details from the command-line client.
// Non-2xx responses are mapped by mapHTTPError to the sentinel errors in
// errors.go so callers can use [errors.Is] (e.g. [ErrConflict] for 409,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// AccountsAdapter defines communication with the accounts server.
// Implementations attach the stored bearer token to authenticated calls.
type AccountsAdapter interface {
	// SetToken stores the bearer token used by subsequent authenticated
	// calls. Login calls it on success.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Register creates an account and returns its public view.
	Register(ctx context.Context, user models.User) (models.PublicUser, error)

	// Login exchanges credentials for a bearer token, stores it and returns it.
	Login(ctx context.Context, credentials models.Credentials) (string, error)

	// Profile returns the account of the token's subject.
	Profile(ctx context.Context) (models.PublicUser, error)

	// ListUsers returns every account, or those named name. Admin only.
	ListUsers(ctx context.Context, name string) ([]models.PublicUser, error)

	// UpdateUser applies update to the account id.
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.PublicUser, error)

	// DeleteUser removes the account id.
	DeleteUser(ctx context.Context, id string) error

	// Health reports the server status and version.
	Health(ctx context.Context) (models.HealthResponse, error)
}
