// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP response
// writing, identifier generation, JWT token generation and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ActorCtxKey is the key used to store the authenticated caller
// ([models.Actor]) in the context.
//
// Example of writing a value to the context:
//
//	ctx := utils.WithActor(ctx, models.Actor{ID: "...", IsAdm: false})
var ActorCtxKey = contextKey("actor")

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, ActorCtxKey, actor)
}

// GetActorFromContext retrieves the authenticated caller from the context.
//
// Returns the actor and an ok flag:
//   - ok == true : value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
func GetActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(ActorCtxKey).(models.Actor)
	return actor, ok
}
