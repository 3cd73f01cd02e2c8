package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

const usersTable = "users"

var userColumns = []string{"id", "email", "name", "password", "is_adm", "created_on", "updated_on", "extra"}

// sqlUserRepository is the SQL-backed implementation of [UserRepository].
// Uniqueness of e-mails is enforced by the schema; insertion order is the
// table's rowid order.
type sqlUserRepository struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewSQLUserRepository constructs a [UserRepository] backed by db.
func NewSQLUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating sql user repository")
	return &sqlUserRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
	}
}

// CreateUser inserts user. A unique-constraint failure on the e-mail column
// is reported as [ErrEmailAlreadyExists].
func (r *sqlUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	extra, err := encodeExtra(user.Extra)
	if err != nil {
		return models.User{}, err
	}

	query, args, err := r.builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Email, user.Name, user.Password, user.IsAdm, user.CreatedOn, user.UpdatedOn, extra).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*sqlUserRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user.Clone(), nil
}

func (r *sqlUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, r.db, sq.Eq{"id": id})
}

func (r *sqlUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, r.db, sq.Eq{"email": email})
}

func (r *sqlUserRepository) ListUsers(ctx context.Context, nameFilter string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	selectBuilder := r.builder.Select(userColumns...).From(usersTable).OrderBy("rowid")
	if nameFilter != "" {
		selectBuilder = selectBuilder.Where(sq.Eq{"name": nameFilter})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.ListUsers").Msg("error querying users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*sqlUserRepository.ListUsers").Msg("error scanning user row")
			return nil, scanErr
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return users, nil
}

// UpdateUser reads the record, applies mutate and writes it back inside a
// single transaction.
func (r *sqlUserRepository) UpdateUser(ctx context.Context, id string, mutate func(models.User) (models.User, error)) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	current, err := r.findOne(ctx, tx, sq.Eq{"id": id})
	if err != nil {
		return models.User{}, err
	}

	updated, err := mutate(current.Clone())
	if err != nil {
		return models.User{}, err
	}
	updated.ID = current.ID
	updated.CreatedOn = current.CreatedOn

	extra, err := encodeExtra(updated.Extra)
	if err != nil {
		return models.User{}, err
	}

	query, args, err := r.builder.
		Update(usersTable).
		Set("email", updated.Email).
		Set("name", updated.Name).
		Set("password", updated.Password).
		Set("is_adm", updated.IsAdm).
		Set("updated_on", updated.UpdatedOn).
		Set("extra", extra).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*sqlUserRepository.UpdateUser").Str("user_id", id).Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

func (r *sqlUserRepository) DeleteUser(ctx context.Context, id string) error {
	query, args, err := r.builder.Delete(usersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlUserRepository.DeleteUser").Str("user_id", id).Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *sqlUserRepository) findOne(ctx context.Context, q queryRower, where sq.Eq) (models.User, error) {
	query, args, err := r.builder.Select(userColumns...).From(usersTable).Where(where).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlUserRepository.findOne").Msg("error reading user")
		return models.User{}, err
	}

	return user, nil
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user  models.User
		extra string
	)

	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Password, &user.IsAdm, &user.CreatedOn, &user.UpdatedOn, &extra)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, err
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if extra != "" {
		if err = json.Unmarshal([]byte(extra), &user.Extra); err != nil {
			return models.User{}, fmt.Errorf("%w: extra fields: %w", ErrScanningRow, err)
		}
		if len(user.Extra) == 0 {
			user.Extra = nil
		}
	}

	return user, nil
}

func encodeExtra(extra map[string]any) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}

	b, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("error encoding extra fields: %w", err)
	}
	return string(b), nil
}
