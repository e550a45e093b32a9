package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeValidation indicates a validation error
	CodeValidation Code = "validation"

	// CodeCapacityExceeded indicates a spellbook has no free slot left
	CodeCapacityExceeded Code = "capacity_exceeded"

	// CodeForbiddenElement indicates a spell's element is banned by the book
	CodeForbiddenElement Code = "forbidden_element"

	// CodeSpellNotFound indicates the named spell has not been learned
	CodeSpellNotFound Code = "spell_not_found"

	// CodeInsufficientMana indicates the mana pool cannot pay for a cast
	CodeInsufficientMana Code = "insufficient_mana"

	// CodeEmpty indicates there is nothing to list
	CodeEmpty Code = "empty"

	// CodeInvalidAmount indicates a non-positive restore amount
	CodeInvalidAmount Code = "invalid_amount"

	// CodeInvalidCapacity indicates a master spellbook was configured below one slot
	CodeInvalidCapacity Code = "invalid_capacity"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// Keep the code of our own errors so callers can still branch on it
	var sbErr *Error
	if errors.As(err, &sbErr) {
		return &Error{
			Code:    sbErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(sbErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper functions for common error types

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Spellbook failures. The messages are shown to players verbatim.

// CapacityExceeded creates a full-spellbook error
func CapacityExceeded(message string) *Error {
	return New(CodeCapacityExceeded, message)
}

// ForbiddenElementf creates a formatted forbidden element error
func ForbiddenElementf(format string, args ...any) *Error {
	return Newf(CodeForbiddenElement, format, args...)
}

// SpellNotFoundf creates a formatted unlearned spell error
func SpellNotFoundf(format string, args ...any) *Error {
	return Newf(CodeSpellNotFound, format, args...)
}

// InsufficientManaf creates a formatted not-enough-mana error
func InsufficientManaf(format string, args ...any) *Error {
	return Newf(CodeInsufficientMana, format, args...)
}

// Empty creates an empty spellbook error
func Empty(message string) *Error {
	return New(CodeEmpty, message)
}

// InvalidAmount creates an invalid restore amount error
func InvalidAmount(message string) *Error {
	return New(CodeInvalidAmount, message)
}

// InvalidCapacity creates an invalid capacity error
func InvalidCapacity(message string) *Error {
	return New(CodeInvalidCapacity, message)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var sbErr *Error
	if errors.As(err, &sbErr) {
		return sbErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsCapacityExceeded checks if the error is a full spellbook error
func IsCapacityExceeded(err error) bool {
	return Is(err, CodeCapacityExceeded)
}

// IsForbiddenElement checks if the error is a forbidden element error
func IsForbiddenElement(err error) bool {
	return Is(err, CodeForbiddenElement)
}

// IsSpellNotFound checks if the error is an unlearned spell error
func IsSpellNotFound(err error) bool {
	return Is(err, CodeSpellNotFound)
}

// IsInsufficientMana checks if the error is a not-enough-mana error
func IsInsufficientMana(err error) bool {
	return Is(err, CodeInsufficientMana)
}

// IsEmpty checks if the error is an empty spellbook error
func IsEmpty(err error) bool {
	return Is(err, CodeEmpty)
}

// IsInvalidAmount checks if the error is an invalid restore amount error
func IsInvalidAmount(err error) bool {
	return Is(err, CodeInvalidAmount)
}

// IsInvalidCapacity checks if the error is an invalid capacity error
func IsInvalidCapacity(err error) bool {
	return Is(err, CodeInvalidCapacity)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var sbErr *Error
	if errors.As(err, &sbErr) {
		return sbErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var sbErr *Error
	if errors.As(err, &sbErr) {
		return sbErr.Meta
	}
	return nil
}

// Message returns the bare message of one of our errors, without any wrapped cause.
// Other errors fall back to their full text.
func Message(err error) string {
	var sbErr *Error
	if errors.As(err, &sbErr) {
		return sbErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
