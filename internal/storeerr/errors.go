package storeerr

import (
	"errors"
	"fmt"
)

// Kind classifies a store failure
type Kind int

const (
	// StorageUnavailable means the data directory or the store file could not be prepared
	StorageUnavailable Kind = iota + 1
	// MigrationFailed means a change-set could not be applied and was rolled back
	MigrationFailed
	// ConstraintViolation means the store rejected a write
	ConstraintViolation
	// Validation means a write was rejected before reaching the store
	Validation
	// NotFound means the addressed record does not exist
	NotFound
)

func (k Kind) String() string {
	switch k {
	case StorageUnavailable:
		return "storage unavailable"
	case MigrationFailed:
		return "migration failed"
	case ConstraintViolation:
		return "constraint violation"
	case Validation:
		return "validation error"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is the typed failure surfaced to the host application
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "create apartment"
	Rule string // invariant that was violated, if any
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Rule != "" {
		msg += " [" + e.Rule + "]"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind; a non-empty Rule on the target must match too
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Rule == "" || t.Rule == e.Rule
}

// Sentinels for errors.Is
var (
	ErrStorageUnavailable  = &Error{Kind: StorageUnavailable}
	ErrMigrationFailed     = &Error{Kind: MigrationFailed}
	ErrConstraintViolation = &Error{Kind: ConstraintViolation}
	ErrValidation          = &Error{Kind: Validation}
	ErrNotFound            = &Error{Kind: NotFound}
)

// New builds an *Error of the given kind
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Violation builds a ConstraintViolation for the named rule
func Violation(op, rule string, err error) *Error {
	return &Error{Kind: ConstraintViolation, Op: op, Rule: rule, Err: err}
}

// Invalid builds a Validation error for the named rule
func Invalid(rule, format string, args ...any) *Error {
	return &Error{Kind: Validation, Rule: rule, Err: fmt.Errorf(format, args...)}
}

// Rule is a target for errors.Is that matches a specific rule of a kind
func Rule(kind Kind, rule string) *Error {
	return &Error{Kind: kind, Rule: rule}
}

// KindOf returns the kind of the first *Error in the chain, or 0
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// RuleOf returns the rule of the first *Error in the chain
func RuleOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Rule
	}
	return ""
}

// WithOp sets the operation on err if it is an *Error without one
func WithOp(op string, err error) error {
	var e *Error
	if errors.As(err, &e) && e.Op == "" {
		e.Op = op
	}
	return err
}
