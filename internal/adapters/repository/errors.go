package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// pgErrorCode extracts the SQLSTATE from either driver's error type.
func pgErrorCode(err error) pq.ErrorCode {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pq.ErrorCode(pgErr.Code)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err).Name() == "unique_violation"
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err).Name() == "foreign_key_violation"
}
