package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint. An empty constraintName matches any unique violation.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	return isConstraintError(err, uniqueViolation, constraintName)
}

// IsForeignKeyError checks if the error is a foreign key violation, optionally for one constraint.
func IsForeignKeyError(err error, constraintName string) bool {
	return isConstraintError(err, foreignKeyViolation, constraintName)
}

// IsCheckConstraintError checks if the error is a CHECK constraint violation.
func IsCheckConstraintError(err error, constraintName string) bool {
	return isConstraintError(err, checkViolation, constraintName)
}

// ConstraintName returns the violated constraint, or "" when err is not a PgError.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func isConstraintError(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}
