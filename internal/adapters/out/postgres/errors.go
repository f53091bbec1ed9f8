package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes for transaction conflicts that resolve themselves when the
// whole unit of work is retried.
const (
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
)

// IsRetryableTxError reports whether the error is a transaction-level
// conflict (serialization failure or deadlock). The caller should retry the
// entire business operation, not an individual statement: the admission
// sequence reads occupancy under a lock, and a retried statement alone would
// act on a stale view.
func IsRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == serializationFailureCode || pgErr.Code == deadlockDetectedCode
}
