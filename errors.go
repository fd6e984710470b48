package nexus

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is the sentinel matched by every lookup miss.
	// errors.Is(err, ErrNotFound) holds for any *NotFoundError.
	ErrNotFound = errors.New("nexus: entity not found")

	// ErrTxStarted is returned when a transaction is started on a
	// connection that already carries one.
	ErrTxStarted = errors.New("nexus: cannot start a transaction within a transaction")
)

// NotFoundError reports a failed lookup of a single entity. The label
// carries the collection or type name; the id, when known, carries the
// key that was searched for.
type NotFoundError struct {
	label string
	id    any
}

// NewNotFoundError returns a NotFoundError for the given label.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithID returns a NotFoundError carrying the key that
// was searched for.
func NewNotFoundErrorWithID(label string, id any) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("nexus: %s not found (id=%v)", e.label, e.id)
	}
	return fmt.Sprintf("nexus: %s not found", e.label)
}

// Is matches the ErrNotFound sentinel.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the entity label.
func (e *NotFoundError) Label() string { return e.label }

// ID returns the searched key, or nil when it was not recorded.
func (e *NotFoundError) ID() any { return e.id }

// IsNotFound reports whether err is a lookup miss, either a
// NotFoundError anywhere in its chain or the ErrNotFound sentinel.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// ConstraintError reports a storage constraint violation, normalized
// from whatever shape the underlying driver reports it in.
type ConstraintError struct {
	msg  string
	wrap error
}

// NewConstraintError returns a ConstraintError wrapping the driver
// error it was derived from.
func NewConstraintError(msg string, wrap error) error {
	return ConstraintError{msg: msg, wrap: wrap}
}

func (e ConstraintError) Error() string {
	return fmt.Sprintf("nexus: constraint failed: %s", e.msg)
}

// Unwrap returns the driver error.
func (e ConstraintError) Unwrap() error { return e.wrap }

// IsConstraintError reports whether err carries a ConstraintError.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e ConstraintError
	return errors.As(err, &e)
}

// ValidationError reports an invalid collection, field or relation
// declaration, typically while building a registry from a manifest.
type ValidationError struct {
	Name string // collection, field or relation name
	Err  error
}

// NewValidationError returns a ValidationError for the given name.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Name: name, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("nexus: validation failed for %q: %s", e.Name, e.Err)
}

// Unwrap returns the underlying validation failure.
func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// AggregateError bundles several independent errors into one. Use
// NewAggregateError to build it; a single error is never wrapped.
type AggregateError struct {
	Errors []error
}

// NewAggregateError folds errs into a single error. Nil entries are
// dropped. It returns nil when nothing remains, the error itself when
// one remains, and an *AggregateError otherwise.
func NewAggregateError(errs ...error) error {
	kept := errs[:0:0]
	for _, err := range errs {
		if err != nil {
			kept = append(kept, err)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return &AggregateError{Errors: kept}
	}
}

func (e *AggregateError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "nexus: no errors"
	case 1:
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("nexus: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap exposes the bundled errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// QueryError attributes a storage error to the entity and operation
// that produced it.
type QueryError struct {
	Entity string // entity or table name
	Op     string // operation, e.g. "select" or "count"
	Err    error
}

// NewQueryError returns a QueryError for the given entity and operation.
func NewQueryError(entity, op string, err error) *QueryError {
	return &QueryError{Entity: entity, Op: op, Err: err}
}

func (e *QueryError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("nexus: querying %s (%s): %v", e.Entity, e.Op, e.Err)
	}
	return fmt.Sprintf("nexus: querying %s: %v", e.Entity, e.Err)
}

// Unwrap returns the storage error.
func (e *QueryError) Unwrap() error { return e.Err }

// IsQueryError reports whether err carries a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}
