package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes that mean another transaction won a race.
const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// IsExclusionConflict reports whether err is a storage-level consistency
// or lock failure caused by a concurrent writer.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgUniqueViolation,
		pgExclusionViolation,
		pgSerializationFailure,
		pgDeadlockDetected,
		pgLockNotAvailable:
		return true
	}
	return false
}
