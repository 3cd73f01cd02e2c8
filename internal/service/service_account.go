package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

// IDGenerator produces identifiers for new accounts.
type IDGenerator interface {
	Generate() string
}

// accountService is the concrete implementation of [AccountService].
//
// Passwords are hashed before the repository is called, so no bcrypt work
// happens while the repository holds its lock.
type accountService struct {
	userRepository store.UserRepository
	credentials    CredentialService
	tokens         TokenService
	policy         Policy
	validator      validators.Validator
	ids            IDGenerator

	// now is the clock used for createdOn/updatedOn.
	now func() time.Time

	logger *logger.Logger
}

// NewAccountService wires an [AccountService] from its collaborators.
func NewAccountService(
	userRepository store.UserRepository,
	credentials CredentialService,
	tokens TokenService,
	policy Policy,
	validator validators.Validator,
	ids IDGenerator,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		userRepository: userRepository,
		credentials:    credentials,
		tokens:         tokens,
		policy:         policy,
		validator:      validator,
		ids:            ids,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

// Register creates a non-admin account from user and returns its public view.
//
// Returns:
//   - ErrInvalidDataProvided if the e-mail or password is missing.
//   - store.ErrEmailAlreadyExists if the e-mail is taken.
func (s *accountService) Register(ctx context.Context, user models.User) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, user); err != nil {
		log.Debug().Err(err).Str("email", user.Email).Msg("invalid registration payload")
		return models.PublicUser{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	created, err := s.createAccount(ctx, user, false)
	if err != nil {
		return models.PublicUser{}, err
	}

	log.Info().Str("user_id", created.ID).Msg("user registered")
	return created.Public(), nil
}

// Login verifies credentials and issues a token. Every failure, including a
// malformed payload, is reported as ErrWrongCredentials.
func (s *accountService) Login(ctx context.Context, credentials models.Credentials) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, credentials); err != nil {
		s.credentials.Verify(ctx, credentials.Password, "")
		return models.Token{}, ErrWrongCredentials
	}

	user, err := s.userRepository.FindUserByEmail(ctx, credentials.Email)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		s.credentials.Verify(ctx, credentials.Password, "")
		log.Debug().Msg("login for unknown email")
		return models.Token{}, ErrWrongCredentials
	case err != nil:
		log.Err(err).Msg("user search by email failed")
		return models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !s.credentials.Verify(ctx, credentials.Password, user.Password) {
		log.Debug().Str("user_id", user.ID).Msg("wrong password")
		return models.Token{}, ErrWrongCredentials
	}

	return s.tokens.Issue(ctx, user)
}

// ListUsers returns the public views of all accounts, or of those whose name
// equals nameFilter. Only admins may list.
func (s *accountService) ListUsers(ctx context.Context, actor models.Actor, nameFilter string) ([]models.PublicUser, error) {
	if !s.policy.IsAdmin(actor) {
		return nil, ErrForbidden
	}

	users, err := s.userRepository.ListUsers(ctx, nameFilter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return models.PublicUsers(users), nil
}

// GetProfile returns the public view of the caller's own account, or
// store.ErrNoUserWasFound if it no longer exists.
func (s *accountService) GetProfile(ctx context.Context, actor models.Actor) (models.PublicUser, error) {
	user, err := s.userRepository.FindUserByID(ctx, actor.ID)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return user.Public(), nil
}

// UpdateUser merges update into the target account.
//
// Checks run in this order: the target exists (store.ErrNoUserWasFound), the
// actor may act on it (ErrForbidden), only admins change the admin flag
// (ErrForbidden), the new e-mail is free (store.ErrEmailAlreadyExists).
func (s *accountService) UpdateUser(ctx context.Context, actor models.Actor, targetID string, update models.UserUpdate) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	target, err := s.userRepository.FindUserByID(ctx, targetID)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("update target lookup failed: %w", err)
	}

	if !s.policy.CanActOn(actor, target.ID) {
		log.Debug().Str("actor_id", actor.ID).Str("target_id", targetID).Msg("update denied")
		return models.PublicUser{}, ErrForbidden
	}
	if update.IsAdm != nil && *update.IsAdm != target.IsAdm && !s.policy.IsAdmin(actor) {
		log.Debug().Str("actor_id", actor.ID).Msg("admin flag change denied")
		return models.PublicUser{}, ErrForbidden
	}

	if err = s.validator.Validate(ctx, update); err != nil {
		return models.PublicUser{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if update.Email != nil && *update.Email != target.Email {
		if _, err = s.userRepository.FindUserByEmail(ctx, *update.Email); err == nil {
			return models.PublicUser{}, store.ErrEmailAlreadyExists
		} else if !errors.Is(err, store.ErrNoUserWasFound) {
			return models.PublicUser{}, fmt.Errorf("email lookup failed: %w", err)
		}
	}

	var passwordHash string
	if update.Password != nil {
		if passwordHash, err = s.credentials.Hash(ctx, *update.Password); err != nil {
			return models.PublicUser{}, err
		}
	}

	updatedOn := s.now()
	updated, err := s.userRepository.UpdateUser(ctx, targetID, func(current models.User) (models.User, error) {
		merged := current.Apply(update)
		if passwordHash != "" {
			merged.Password = passwordHash
		}
		merged.UpdatedOn = updatedOn
		return merged, nil
	})
	if err != nil {
		log.Err(err).Str("target_id", targetID).Msg("user update failed")
		return models.PublicUser{}, fmt.Errorf("user update failed: %w", err)
	}

	return updated.Public(), nil
}

// DeleteUser removes the target account. The policy check runs first, so a
// non-admin learns nothing about other identifiers. Deleting an identifier
// that is already gone succeeds.
func (s *accountService) DeleteUser(ctx context.Context, actor models.Actor, targetID string) error {
	if !s.policy.CanActOn(actor, targetID) {
		return ErrForbidden
	}

	err := s.userRepository.DeleteUser(ctx, targetID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		logger.FromContext(ctx).Debug().Str("actor_id", actor.ID).Str("target_id", targetID).Msg("user already absent")
		return nil
	}
	if err != nil {
		return fmt.Errorf("user deletion failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("actor_id", actor.ID).Str("target_id", targetID).Msg("user deleted")
	return nil
}

func (s *accountService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Debug().Msg("no bootstrap admin configured")
		return nil
	}

	_, err := s.createAccount(ctx, models.User{Email: email, Password: password, Name: name}, true)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		log.Debug().Str("email", email).Msg("bootstrap admin already present")
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap admin creation failed: %w", err)
	}

	log.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}

func (s *accountService) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNoUserWasFound):
		return false, nil
	default:
		return false, fmt.Errorf("email lookup failed: %w", err)
	}
}

// createAccount hashes the password and inserts a fresh record.
func (s *accountService) createAccount(ctx context.Context, user models.User, isAdm bool) (models.User, error) {
	taken, err := s.EmailTaken(ctx, user.Email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, store.ErrEmailAlreadyExists
	}

	hash, err := s.credentials.Hash(ctx, user.Password)
	if err != nil {
		return models.User{}, err
	}

	now := s.now()
	record := user.Clone()
	record.ID = s.ids.Generate()
	record.Password = hash
	record.IsAdm = isAdm
	record.CreatedOn = now
	record.UpdatedOn = now

	created, err := s.userRepository.CreateUser(ctx, record)
	if err != nil {
		if !errors.Is(err, store.ErrEmailAlreadyExists) {
			logger.FromContext(ctx).Err(err).Msg("user creation ended with error")
		}
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}
