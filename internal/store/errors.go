package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user cannot be created or
	// updated because another record already holds the same e-mail.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a lookup, update or delete targets a
	// user record that is not in the store.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrIndexOutOfRange is returned by [UserStore] positional operations when
	// the index does not address an existing record.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQL repository when a statement fails before any domain logic can be
// applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with the
	// query builder fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values of a user row
	// fails.
	ErrScanningRow = errors.New("failed to scan user row")
)
