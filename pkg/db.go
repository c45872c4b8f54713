package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html

// IsUniqueViolationError checks if the error is a unique violation error
func IsUniqueViolationError(err error) bool {
	var pqErr *pgconn.PgError
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// IsForeignKeyViolationError checks if the error is a foreign key violation error
func IsForeignKeyViolationError(err error) bool {
	var pqErr *pgconn.PgError
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return false
}

// IsCheckViolationError checks if the error is a check constraint violation error
func IsCheckViolationError(err error) bool {
	var pqErr *pgconn.PgError
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23514"
	}
	return false
}

// ViolatedConstraint returns the constraint name carried by a postgres error, if any.
func ViolatedConstraint(err error) string {
	var pqErr *pgconn.PgError
	if errors.As(err, &pqErr) {
		return pqErr.ConstraintName
	}
	return ""
}
