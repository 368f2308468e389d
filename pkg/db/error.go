package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ConflictError is the repository-facing shape of a store uniqueness
// violation. Constraint names the violated index when the driver reports it.
type ConflictError struct {
	Constraint string
	Err        error
}

func (e *ConflictError) Error() string {
	if e.Constraint == "" {
		return "conflict: unique constraint violated"
	}
	return fmt.Sprintf("conflict: unique constraint %s violated", e.Constraint)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// NewConflictError wraps a store duplicate-key error, extracting the
// violated constraint name where the driver exposes it.
func NewConflictError(err error) *ConflictError {
	return &ConflictError{Constraint: constraintName(err), Err: err}
}

func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	// GORM translates driver duplicates when TranslateError is on.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// PostgreSQL (error code 23505)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return true
	}

	// MySQL (error code 1062)
	if strings.Contains(err.Error(), "Error 1062") {
		return true
	}

	// SQLite (error code 2067)
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}

	return false
}

func constraintName(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}

	msg := err.Error()
	if _, after, ok := strings.Cut(msg, "UNIQUE constraint failed: "); ok {
		if name, _, found := strings.Cut(after, " "); found {
			return strings.TrimSuffix(name, ",")
		}
		return strings.TrimSuffix(after, ")")
	}
	if _, after, ok := strings.Cut(msg, `violates unique constraint "`); ok {
		if name, _, found := strings.Cut(after, `"`); found {
			return name
		}
	}
	if _, after, ok := strings.Cut(msg, "for key '"); ok {
		if name, _, found := strings.Cut(after, "'"); found {
			return name
		}
	}
	return ""
}
