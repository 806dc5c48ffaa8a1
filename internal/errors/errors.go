package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for udm
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitEnvNotFound        = 2
	ExitTemplateNotFound   = 3
	ExitBackendUnavailable = 4
	ExitCreationFailed     = 5
	ExitConfigError        = 6
	ExitCommandFailed      = 7
	ExitPersistenceError   = 8
	ExitNotRunning         = 9
)

// Kind classifies an Error independently of its message.
type Kind string

const (
	KindGeneral            Kind = "general"
	KindNotFound           Kind = "not-found"
	KindBackendUnavailable Kind = "backend-unavailable"
	KindUnknownTemplate    Kind = "unknown-template"
	KindCreation           Kind = "creation"
	KindExecution          Kind = "execution"
	KindCommandNotFound    Kind = "command-not-found"
	KindPersistence        Kind = "persistence"
	KindAdapter            Kind = "adapter"
	KindNotRunning         Kind = "not-running"
	KindValidation         Kind = "validation"
	KindConfig             Kind = "config"
	KindOperation          Kind = "operation"
)

// Error is the base error type for udm
type Error struct {
	Code    int
	Kind    Kind
	Message string

	// Command is the argv of the external command involved, if any.
	Command []string
	// Stderr is the captured standard error of that command.
	Stderr string

	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Command) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.Command, " "))
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&b, ": %s", stderr)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *Error) ExitCode() int {
	return e.Code
}

// New creates a new Error
func New(code int, message string) *Error {
	return &Error{
		Code:    code,
		Kind:    KindGeneral,
		Message: message,
	}
}

// Wrap wraps an existing error with an Error
func Wrap(code int, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Kind:    KindGeneral,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// EnvironmentNotFound returns an error for an environment missing from the latest listing
func EnvironmentNotFound(name string) *Error {
	return &Error{
		Code:    ExitEnvNotFound,
		Kind:    KindNotFound,
		Message: fmt.Sprintf("environment not found: %s", name),
	}
}

// TemplateNotFound returns an error for a missing template
func TemplateNotFound(id string) *Error {
	return &Error{
		Code:    ExitTemplateNotFound,
		Kind:    KindUnknownTemplate,
		Message: fmt.Sprintf("template not found: %s", id),
	}
}

// BackendUnavailable returns an error when a backend health probe fails
func BackendUnavailable(backend string) *Error {
	return &Error{
		Code:    ExitBackendUnavailable,
		Kind:    KindBackendUnavailable,
		Message: fmt.Sprintf("backend %s is not available", backend),
	}
}

// CreationFailed returns an error for any failed provisioning step
func CreationFailed(name string, cause error) *Error {
	return &Error{
		Code:    ExitCreationFailed,
		Kind:    KindCreation,
		Message: fmt.Sprintf("failed to create environment %s", name),
		Cause:   cause,
	}
}

// CommandFailed returns an error for an external command that exited non-zero
func CommandFailed(argv []string, stderr string, cause error) *Error {
	return &Error{
		Code:    ExitCommandFailed,
		Kind:    KindExecution,
		Message: "command failed",
		Command: append([]string(nil), argv...),
		Stderr:  stderr,
		Cause:   cause,
	}
}

// Interrupted returns an error for a command that was not dispatched
// because the caller's context was already done
func Interrupted(argv []string, cause error) *Error {
	return &Error{
		Code:    ExitCommandFailed,
		Kind:    KindExecution,
		Message: "interrupted before running",
		Command: append([]string(nil), argv...),
		Cause:   cause,
	}
}

// CommandNotFound returns an error when the executable cannot be located
func CommandNotFound(argv []string, cause error) *Error {
	return &Error{
		Code:    ExitCommandFailed,
		Kind:    KindCommandNotFound,
		Message: "command not found",
		Command: append([]string(nil), argv...),
		Cause:   cause,
	}
}

// PersistenceFailed returns an error for registry or settings write failures
func PersistenceFailed(message string, cause error) *Error {
	return &Error{
		Code:    ExitPersistenceError,
		Kind:    KindPersistence,
		Message: message,
		Cause:   cause,
	}
}

// AdapterFailed returns an error for malformed backend output
func AdapterFailed(backend, op string, cause error) *Error {
	return &Error{
		Code:    ExitGeneralError,
		Kind:    KindAdapter,
		Message: fmt.Sprintf("%s %s: unexpected output", backend, op),
		Cause:   cause,
	}
}

// NotRunning returns an error when an environment exists but is not running
func NotRunning(name string) *Error {
	return &Error{
		Code:    ExitNotRunning,
		Kind:    KindNotRunning,
		Message: fmt.Sprintf("environment %s is not running", name),
	}
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *Error {
	return &Error{
		Code:    ExitGeneralError,
		Kind:    KindValidation,
		Message: message,
	}
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *Error {
	return &Error{
		Code:    ExitConfigError,
		Kind:    KindConfig,
		Message: message,
		Cause:   cause,
	}
}

// OperationFailed returns an error for a backend start/stop/delete/shell failure
func OperationFailed(op, name string, cause error) *Error {
	return &Error{
		Code:    ExitGeneralError,
		Kind:    KindOperation,
		Message: fmt.Sprintf("failed to %s environment %s", op, name),
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var udmErr *Error
	if errors.As(err, &udmErr) {
		return udmErr.ExitCode()
	}
	return ExitGeneralError
}

// KindOf returns the kind of the outermost Error in err's chain.
func KindOf(err error) Kind {
	var udmErr *Error
	if errors.As(err, &udmErr) {
		return udmErr.Kind
	}
	return KindGeneral
}

// IsKind reports whether any Error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var udmErr *Error
		if !errors.As(err, &udmErr) {
			return false
		}
		if udmErr.Kind == kind {
			return true
		}
		err = udmErr.Cause
	}
	return false
}

// CommandOf returns the innermost Error in err's chain that carries a command.
func CommandOf(err error) (*Error, bool) {
	var found *Error
	for err != nil {
		var udmErr *Error
		if !errors.As(err, &udmErr) {
			break
		}
		if len(udmErr.Command) > 0 {
			found = udmErr
		}
		err = udmErr.Cause
	}
	return found, found != nil
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
