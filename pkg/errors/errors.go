package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode is a stable identifier for a failure category. Tests and the CLI
// match on codes, never on message text.
type ErrorCode string

const (
	// General
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCanceled      ErrorCode = "CANCELED"

	// Resolution
	ErrUnknownType        ErrorCode = "UNKNOWN_TYPE"
	ErrUnknownRunner      ErrorCode = "UNKNOWN_RUNNER"
	ErrCompoundMember     ErrorCode = "COMPOUND_MEMBER"
	ErrCompoundUndefined  ErrorCode = "COMPOUND_UNDEFINED"
	ErrCompoundCycle      ErrorCode = "COMPOUND_CYCLE"
	ErrConfigPrecondition ErrorCode = "CONFIG_PRECONDITION"

	// Execution
	ErrRunFailed  ErrorCode = "RUN_FAILED"
	ErrAlreadyRan ErrorCode = "ALREADY_RAN"

	// Wiring defects: a command or factory name that was never registered.
	ErrWiring ErrorCode = "WIRING"

	// Configuration
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Filesystem and templates
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"
	ErrFileExists     ErrorCode = "FILE_EXISTS"
	ErrFileAccess     ErrorCode = "FILE_ACCESS"
	ErrFileWrite      ErrorCode = "FILE_WRITE"
	ErrDirCreate      ErrorCode = "DIR_CREATE"
	ErrTemplateFormat ErrorCode = "TEMPLATE_FORMAT"
)

// DevgenError carries a code, a human message, structured details and the
// underlying cause.
type DevgenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *DevgenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DevgenError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a DevgenError with the same code.
func (e *DevgenError) Is(target error) bool {
	var targetErr *DevgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

func New(code ErrorCode, message string) *DevgenError {
	return &DevgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func Newf(code ErrorCode, format string, args ...interface{}) *DevgenError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap returns nil when err is nil so call sites can wrap unconditionally.
func Wrap(err error, code ErrorCode, message string) *DevgenError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DevgenError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func (e *DevgenError) WithDetail(key string, value interface{}) *DevgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *DevgenError) WithDetails(details map[string]interface{}) *DevgenError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// DetailString renders details as sorted key=value pairs, or "" when empty.
func (e *DevgenError) DetailString() string {
	if len(e.Details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Details[k]))
	}
	return strings.Join(parts, " ")
}

// IsErrorCode checks the first DevgenError in the chain.
func IsErrorCode(err error, code ErrorCode) bool {
	var devErr *DevgenError
	if errors.As(err, &devErr) {
		return devErr.Code == code
	}
	return false
}

// HasErrorCode walks the whole chain, so a RUN_FAILED wrapping a
// FILE_EXISTS matches both codes.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var devErr *DevgenError
		if !errors.As(err, &devErr) {
			return false
		}
		if devErr.Code == code {
			return true
		}
		err = devErr.Wrapped
	}
	return false
}

// GetErrorCode returns ErrUnknown for errors that are not DevgenErrors.
func GetErrorCode(err error) ErrorCode {
	var devErr *DevgenError
	if errors.As(err, &devErr) {
		return devErr.Code
	}
	return ErrUnknown
}

func GetErrorDetails(err error) map[string]interface{} {
	var devErr *DevgenError
	if errors.As(err, &devErr) {
		return devErr.Details
	}
	return nil
}

// IsDefect reports a programming or wiring mistake rather than a user or
// configuration problem.
func IsDefect(err error) bool {
	return HasErrorCode(err, ErrWiring) || HasErrorCode(err, ErrInternal)
}

// As and Is forward to the standard library so callers need one import.
func As(err error, target interface{}) bool { return errors.As(err, target) }

func Is(err, target error) bool { return errors.Is(err, target) }
