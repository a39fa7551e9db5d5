// Package pgerr classifies PostgreSQL errors surfaced through GORM.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories react to.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
)

// Code returns the SQLSTATE of err, or "" when err did not come from the server.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsConflict reports whether err means another writer got there first.
func IsConflict(err error) bool {
	switch Code(err) {
	case UniqueViolation, SerializationFailure:
		return true
	default:
		return false
	}
}
