package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate is returned when an insert loses to a unique
	// constraint. Under concurrent requests the constraint is the only
	// duplicate guard, so the losing insert surfaces here rather than
	// as a generic failure.
	ErrDuplicate = errors.New("store: duplicate")
)

// Postgres unique_violation
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
