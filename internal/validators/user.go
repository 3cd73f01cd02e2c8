package validators

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-accounts/models"
)

// Field names accepted by [UserValidator.Validate] to restrict validation to
// a subset of fields.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// UserValidator performs existence checks on account payloads: registration
// records, login credentials and partial updates. Nothing beyond presence is
// checked (no format or strength rules).
type UserValidator struct {
	validate *validator.Validate
}

// NewUserValidator constructs a [UserValidator] and returns it as the
// [Validator] interface.
func NewUserValidator() Validator {
	return &UserValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate dispatches on the dynamic type of obj. Supported types are
// models.User, models.Credentials and models.UserUpdate, by value or pointer.
//
// Every returned error wraps [ErrValidation] except [ErrUnsupportedType].
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)
	case models.Credentials:
		return v.validateCredentials(ctx, value)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value)
	case models.UserUpdate:
		return v.validateUpdate(ctx, value)
	case *models.UserUpdate:
		return v.validateUpdate(ctx, *value)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUser(ctx context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := v.validate.VarCtx(ctx, user.Email, "required"); err != nil {
				return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyEmail)
			}
		case FieldPassword:
			if err := v.validate.VarCtx(ctx, user.Password, "required"); err != nil {
				return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyPassword)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateCredentials(ctx context.Context, credentials models.Credentials) error {
	if err := v.validate.StructCtx(ctx, credentials); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// validateUpdate rejects fields that are present but blank. An update with no
// fields at all is accepted: it only refreshes the modification time.
func (v *UserValidator) validateUpdate(ctx context.Context, update models.UserUpdate) error {
	if update.Email != nil {
		if err := v.validate.VarCtx(ctx, *update.Email, "required"); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyEmail)
		}
	}
	if update.Password != nil {
		if err := v.validate.VarCtx(ctx, *update.Password, "required"); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyPassword)
		}
	}
	return nil
}
