package errs

import (
	"fmt"
	"strings"
)

// Sentinel errors used as classification anchors for errors.Is checks.
// Each typed error in this package unwraps to exactly one of these.
var (
	ErrObjectNotFound    = fmt.Errorf("object not found")
	ErrValueIsInvalid    = fmt.Errorf("value is invalid")
	ErrValueIsOutOfRange = fmt.Errorf("value is out of range")
	ErrValueIsRequired   = fmt.Errorf("value is required")
	ErrVersionIsInvalid  = fmt.Errorf("version is invalid")
	ErrInvalidState      = fmt.Errorf("invalid state")
	ErrConflict          = fmt.Errorf("conflict")
	ErrUnauthorized      = fmt.Errorf("unauthorized")
	ErrForbidden         = fmt.Errorf("forbidden")
)

// sanitize collapses newlines in values interpolated into error messages
// so a single error always renders as a single log line.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ObjectNotFoundError indicates that a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a value lies outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates an optimistic concurrency version mismatch.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidStateError indicates an operation attempted against an entity that is
// not in the state the operation requires.
type InvalidStateError struct {
	Entity    string
	State     string
	Operation string
	Cause     error
}

// NewInvalidStateError creates an InvalidStateError without an underlying cause.
func NewInvalidStateError(entity, state, operation string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, State: state, Operation: operation}
}

// NewInvalidStateErrorWithCause creates an InvalidStateError wrapping an underlying cause.
func NewInvalidStateErrorWithCause(entity, state, operation string, cause error) *InvalidStateError {
	return &InvalidStateError{Entity: entity, State: state, Operation: operation, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s is %s, cannot %s (cause: %s)",
			ErrInvalidState, e.Entity, e.State, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s is %s, cannot %s", ErrInvalidState, e.Entity, e.State, e.Operation))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError indicates a uniqueness violation at the storage layer.
// Conflicts are retryable: the caller may re-derive the conflicting value and retry.
type ConflictError struct {
	ParamName string
	Cause     error
}

// NewConflictError creates a ConflictError without an underlying cause.
func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrConflict, e.ParamName))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ForbiddenError indicates that the acting user lacks the privilege a gated
// operation requires.
type ForbiddenError struct {
	Operation string
	Role      string
}

// NewForbiddenError creates a ForbiddenError for the given operation and actor role.
func NewForbiddenError(operation, role string) *ForbiddenError {
	return &ForbiddenError{Operation: operation, Role: role}
}

func (e *ForbiddenError) Error() string {
	return sanitize(fmt.Sprintf("%s: role %s cannot %s", ErrForbidden, e.Role, e.Operation))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
