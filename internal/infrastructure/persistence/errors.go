package persistence

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shcya/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// PostgreSQL error codes surfaced to callers
const (
	pgInsufficientPrivilege = "42501"
	pgUniqueViolation       = "23505"
)

// Subject names the record in write error messages
type Subject string

const (
	SubjectInquiry     Subject = "inquiry"
	SubjectApplication Subject = "application"
)

// Operation is the kind of write that failed
type Operation string

const (
	OpSubmit Operation = "submit"
	OpUpdate Operation = "update"
)

// writeOp tells a first save from a versioned update, matching saveVersioned.
func writeOp(version int) Operation {
	if version <= 1 {
		return OpSubmit
	}
	return OpUpdate
}

// TranslateError maps a database error from a write into a domain error.
// Domain errors pass through unchanged; nil stays nil.
func TranslateError(err error, op Operation, subject Subject) error {
	if err == nil {
		return nil
	}
	if _, ok := shared.AsDomainError(err); ok {
		return err
	}

	switch pgCode(err) {
	case pgInsufficientPrivilege:
		return shared.NewDomainError(shared.CodePermissionDenied, "Database permission error. Please contact support.")
	case pgUniqueViolation:
		return duplicate(op, subject)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return duplicate(op, subject)
	}
	return shared.NewDomainError(shared.CodeSubmissionFailed, "Failed to "+string(op)+" "+string(subject)+": "+err.Error())
}

func duplicate(op Operation, subject Subject) error {
	if op == OpUpdate {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Another open "+string(subject)+" already has these details.")
	}
	return shared.NewDomainError(shared.CodeAlreadyExists, "This "+string(subject)+" has already been submitted.")
}

// pgCode extracts the SQLSTATE from either PostgreSQL driver.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
