// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Reserved JSON keys of a user record. Any other key found in a registration
// or update payload is kept as an additional profile field.
const (
	fieldID        = "uuid"
	fieldEmail     = "email"
	fieldName      = "name"
	fieldPassword  = "password"
	fieldIsAdm     = "isAdm"
	fieldCreatedOn = "createdOn"
	fieldUpdatedOn = "updatedOn"
)

// User is the account record kept in the user store.
//
// User is never written to a caller directly: the password credential lives
// only here. Use [User.Public] to obtain the serialisable projection.
type User struct {
	// ID is the opaque identifier generated at creation. Immutable.
	ID string

	// Email is unique across the store.
	Email string

	// Name is the display name. ListUsers filters on exact matches of it.
	Name string

	// Password holds the bcrypt credential once the record is stored and the
	// plaintext password while a registration request is being processed.
	Password string

	// IsAdm grants authority over every account.
	IsAdm bool

	CreatedOn time.Time
	UpdatedOn time.Time

	// Extra holds additional profile fields supplied at registration or merged
	// by updates. Keys never collide with the reserved field names above.
	Extra map[string]any
}

// PublicUser is the public view of a [User]: the record without its password
// credential. It is the only user representation that leaves the service.
type PublicUser struct {
	ID        string
	Email     string
	Name      string
	IsAdm     bool
	CreatedOn time.Time
	UpdatedOn time.Time
	Extra     map[string]any
}

// Public projects u to its public view. Extra is copied so the view cannot be
// used to mutate the stored record.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsAdm:     u.IsAdm,
		CreatedOn: u.CreatedOn,
		UpdatedOn: u.UpdatedOn,
		Extra:     copyExtra(u.Extra),
	}
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	u.Extra = copyExtra(u.Extra)
	return u
}

// PublicUsers projects every record of users to its public view.
func PublicUsers(users []User) []PublicUser {
	result := make([]PublicUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.Public())
	}
	return result
}

// MarshalJSON flattens Extra into the top-level object next to the fixed
// fields. Fixed fields win over extra keys with the same name.
func (p PublicUser) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+6)
	for k, v := range p.Extra {
		out[k] = v
	}

	out[fieldID] = p.ID
	out[fieldEmail] = p.Email
	out[fieldName] = p.Name
	out[fieldIsAdm] = p.IsAdm
	out[fieldCreatedOn] = p.CreatedOn
	out[fieldUpdatedOn] = p.UpdatedOn

	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of [PublicUser.MarshalJSON]; it is used by the
// API client to decode server responses.
func (p *PublicUser) UnmarshalJSON(b []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var view PublicUser
	if err := decodeField(raw, fieldID, &view.ID); err != nil {
		return err
	}
	if err := decodeField(raw, fieldEmail, &view.Email); err != nil {
		return err
	}
	if err := decodeField(raw, fieldName, &view.Name); err != nil {
		return err
	}
	if err := decodeField(raw, fieldIsAdm, &view.IsAdm); err != nil {
		return err
	}
	if err := decodeField(raw, fieldCreatedOn, &view.CreatedOn); err != nil {
		return err
	}
	if err := decodeField(raw, fieldUpdatedOn, &view.UpdatedOn); err != nil {
		return err
	}

	extra, err := decodeExtra(raw)
	if err != nil {
		return err
	}
	view.Extra = extra

	*p = view
	return nil
}

// UnmarshalJSON decodes a registration payload. Server-owned fields (uuid,
// isAdm, createdOn, updatedOn) are ignored: they are always set by the
// service, never by the caller.
func (u *User) UnmarshalJSON(b []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var user User
	if err := decodeField(raw, fieldEmail, &user.Email); err != nil {
		return err
	}
	if err := decodeField(raw, fieldName, &user.Name); err != nil {
		return err
	}
	if err := decodeField(raw, fieldPassword, &user.Password); err != nil {
		return err
	}

	extra, err := decodeExtra(raw)
	if err != nil {
		return err
	}
	user.Extra = extra

	*u = user
	return nil
}

// MarshalJSON encodes the registration payload form of u (used by the API
// client). Only caller-settable fields are written.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Extra)+3)
	for k, v := range u.Extra {
		out[k] = v
	}
	out[fieldEmail] = u.Email
	out[fieldName] = u.Name
	out[fieldPassword] = u.Password

	return json.Marshal(out)
}

// UserUpdate is a partial update payload. Nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	IsAdm    *bool

	// Extra holds additional profile fields to merge into the record.
	Extra map[string]any
}

// IsEmpty reports whether the update carries no change at all.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil && u.IsAdm == nil && len(u.Extra) == 0
}

// UnmarshalJSON decodes an update payload. The identifier and timestamps are
// dropped: they cannot be changed by a caller.
func (u *UserUpdate) UnmarshalJSON(b []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var update UserUpdate
	if err := decodeOptional(raw, fieldName, &update.Name); err != nil {
		return err
	}
	if err := decodeOptional(raw, fieldEmail, &update.Email); err != nil {
		return err
	}
	if err := decodeOptional(raw, fieldPassword, &update.Password); err != nil {
		return err
	}
	if err := decodeOptional(raw, fieldIsAdm, &update.IsAdm); err != nil {
		return err
	}

	extra, err := decodeExtra(raw)
	if err != nil {
		return err
	}
	update.Extra = extra

	*u = update
	return nil
}

// MarshalJSON writes only the fields that are set.
func (u UserUpdate) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Extra)+4)
	for k, v := range u.Extra {
		out[k] = v
	}
	if u.Name != nil {
		out[fieldName] = *u.Name
	}
	if u.Email != nil {
		out[fieldEmail] = *u.Email
	}
	if u.Password != nil {
		out[fieldPassword] = *u.Password
	}
	if u.IsAdm != nil {
		out[fieldIsAdm] = *u.IsAdm
	}

	return json.Marshal(out)
}

// Apply merges the non-password parts of update into a copy of u and returns
// it. The password is handled by the caller because it has to be hashed first.
func (u User) Apply(update UserUpdate) User {
	merged := u.Clone()

	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Email != nil {
		merged.Email = *update.Email
	}
	if update.IsAdm != nil {
		merged.IsAdm = *update.IsAdm
	}
	if len(update.Extra) > 0 {
		if merged.Extra == nil {
			merged.Extra = make(map[string]any, len(update.Extra))
		}
		for k, v := range update.Extra {
			merged.Extra[k] = v
		}
	}

	return merged
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func isReservedField(key string) bool {
	switch key {
	case fieldID, fieldEmail, fieldName, fieldPassword, fieldIsAdm, fieldCreatedOn, fieldUpdatedOn:
		return true
	default:
		return false
	}
}

func decodeField(raw map[string]json.RawMessage, key string, dst any) error {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(value, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// decodeOptional sets *dst when key is present. An explicit null counts as
// absent, so it never clears a field.
func decodeOptional[T any](raw map[string]json.RawMessage, key string, dst **T) error {
	value, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return nil
	}

	v := new(T)
	if err := json.Unmarshal(value, v); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	*dst = v
	return nil
}

func decodeExtra(raw map[string]json.RawMessage) (map[string]any, error) {
	var extra map[string]any
	for k, value := range raw {
		if isReservedField(k) {
			continue
		}

		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra, nil
}

func copyExtra(extra map[string]any) map[string]any {
	if extra == nil {
		return nil
	}
	cp := make(map[string]any, len(extra))
	for k, v := range extra {
		cp[k] = v
	}
	return cp
}
