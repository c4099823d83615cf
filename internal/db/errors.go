package db

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsIntegrityViolation reports whether err carries a Postgres class 23 error
// (not-null, foreign key, unique or check constraint).
func IsIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgerrcode.IsIntegrityConstraintViolation(pgErr.Code)
}

// ConstraintName returns the violated constraint, or "" when err is not a
// Postgres error.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
