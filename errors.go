package captable

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports an invalid field on a draft before any write.
// It is always resolved by the caller correcting its input; it never
// reaches persistence.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// PersistenceKind categorizes an error surfaced by the storage layer so
// the caller can render specific guidance. Persistence errors are not
// retried automatically.
type PersistenceKind int

const (
	KindUnknown PersistenceKind = iota
	KindPermissionDenied
	KindForeignKeyViolation
	KindUniqueViolation
	KindNotNullViolation
)

func (k PersistenceKind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission denied"
	case KindForeignKeyViolation:
		return "foreign key violation"
	case KindUniqueViolation:
		return "unique violation"
	case KindNotNullViolation:
		return "not null violation"
	default:
		return "unknown"
	}
}

// PersistenceError wraps a storage-layer error with its category.
type PersistenceError struct {
	Kind PersistenceKind
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error (%s): %v", e.Kind, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// categorize maps a driver error to a PersistenceError. SQLite reports
// constraint failures in the error text; matching on it is the only
// driver-independent signal available.
func categorize(err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	msg := strings.ToLower(err.Error())
	kind := KindUnknown
	switch {
	case strings.Contains(msg, "unique constraint"):
		kind = KindUniqueViolation
	case strings.Contains(msg, "foreign key constraint"):
		kind = KindForeignKeyViolation
	case strings.Contains(msg, "not null constraint"):
		kind = KindNotNullViolation
	case strings.Contains(msg, "access") && strings.Contains(msg, "denied"),
		strings.Contains(msg, "readonly database"),
		strings.Contains(msg, "permission"):
		kind = KindPermissionDenied
	}
	return &PersistenceError{Kind: kind, Err: err}
}

// DependentWarning reports a non-fatal failure in a dependent step
// (funding rollback after delete, validation-request creation or
// removal). The primary operation it follows has already succeeded and
// is never undone.
type DependentWarning struct {
	Op  string
	Err error
}

func (e *DependentWarning) Error() string {
	return fmt.Sprintf("dependent operation %s failed: %v", e.Op, e.Err)
}

func (e *DependentWarning) Unwrap() error { return e.Err }

// UploadError reports a failed proof-document upload. It blocks the
// dependent record creation entirely: no partial record is written.
type UploadError struct {
	Name string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %q failed: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// ErrNotFound is returned when a record or company row does not exist.
var ErrNotFound = errors.New("not found")
