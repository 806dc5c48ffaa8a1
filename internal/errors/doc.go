// Package errors provides typed errors with exit codes for udm.
//
// # Error Type
//
// Error is the single error type used across the module. Besides an exit
// code it carries a Kind, so callers can branch on the category of a
// failure without matching messages, and, for failed external commands,
// the argv and captured stderr:
//
//	type Error struct {
//	    Code    int      // Exit code
//	    Kind    Kind     // Category (not-found, execution, creation, ...)
//	    Message string   // User-facing message
//	    Command []string // argv of the failed command, if any
//	    Stderr  string   // captured stderr of that command
//	    Cause   error    // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess            = 0
//	ExitGeneralError       = 1
//	ExitEnvNotFound        = 2
//	ExitTemplateNotFound   = 3
//	ExitBackendUnavailable = 4
//	ExitCreationFailed     = 5
//	ExitConfigError        = 6
//	ExitCommandFailed      = 7
//	ExitPersistenceError   = 8
//	ExitNotRunning         = 9
//
// # Error Constructors
//
//	errors.EnvironmentNotFound("web")
//	errors.TemplateNotFound("python-dev")
//	errors.CommandFailed(argv, stderr, err)
//	errors.CreationFailed("web", err)
//
// # Inspecting Errors
//
// IsKind walks the chain, so a creation failure caused by a failed
// command matches both KindCreation and KindExecution. CommandOf returns
// the innermost error that recorded an argv:
//
//	if cmdErr, ok := errors.CommandOf(err); ok {
//	    fmt.Println(cmdErr.Stderr)
//	}
//	os.Exit(errors.GetExitCode(err))
package errors
