package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Outcome tags the result of a storage call so callers never have to look at
// engine-specific error codes.
type Outcome int

const (
	// OutcomeOK means the call succeeded.
	OutcomeOK Outcome = iota
	// OutcomeUniqueViolation means a unique constraint rejected the write.
	OutcomeUniqueViolation
	// OutcomeForeignKeyViolation means a referenced row does not exist.
	OutcomeForeignKeyViolation
	// OutcomeOther covers every other failure, including an unreachable backend.
	OutcomeOther
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeUniqueViolation:
		return "unique constraint violation"
	case OutcomeForeignKeyViolation:
		return "foreign key violation"
	default:
		return "storage error"
	}
}

// Sentinels matched by errors.Is against a *ConstraintError.
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// ConstraintError is returned by Store methods when the backend rejects a
// write because of a constraint.
type ConstraintError struct {
	Outcome Outcome
	Err     error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %v", e.Outcome, e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrUniqueViolation) and friends match.
func (e *ConstraintError) Is(target error) bool {
	switch target {
	case ErrUniqueViolation:
		return e.Outcome == OutcomeUniqueViolation
	case ErrForeignKeyViolation:
		return e.Outcome == OutcomeForeignKeyViolation
	}
	return false
}

// OutcomeOf returns the tag carried by err.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Outcome
	}
	return OutcomeOther
}

// MapDBError wraps constraint violations reported by any supported driver in
// a *ConstraintError. Other errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return err
	}
	switch o := classify(err); o {
	case OutcomeUniqueViolation, OutcomeForeignKeyViolation:
		return &ConstraintError{Outcome: o, Err: err}
	}
	return err
}

func classify(err error) Outcome {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return OutcomeUniqueViolation
		case "23503":
			return OutcomeForeignKeyViolation
		}
		return OutcomeOther
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return OutcomeUniqueViolation
		case 1216, 1452:
			return OutcomeForeignKeyViolation
		}
		return OutcomeOther
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return OutcomeUniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return OutcomeForeignKeyViolation
		}
		// Without extended result codes only SQLITE_CONSTRAINT is reported;
		// the message still names the constraint kind.
	}

	// Drivers wrapped by something we don't know: fall back to the message.
	le := strings.ToLower(err.Error())
	switch {
	case strings.Contains(le, "foreign key"):
		return OutcomeForeignKeyViolation
	case strings.Contains(le, "duplicate") || strings.Contains(le, "unique"):
		return OutcomeUniqueViolation
	}
	return OutcomeOther
}
