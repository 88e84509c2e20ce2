package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/ownership"
	"github.com/roach88/storefront/internal/validate"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation refused (slug taken, not signed in, cart not ready, etc.)
	ExitCommandError = 2 // Command error (bad flags, unreadable files, database errors)
)

// Error codes reported in CLI output.
const (
	ErrCodeGeneric         = "E001" // Generic/unknown error
	ErrCodeConfig          = "E002" // Config could not be loaded
	ErrCodeDatabase        = "E003" // Database open or query failed
	ErrCodeInvalidInput    = "E004" // Flag or file failed validation
	ErrCodeNotFound        = "E005" // Store, profile or product not found
	ErrCodeNotAuthed       = "E101" // No principal
	ErrCodeNoStore         = "E102" // No store loaded for the principal
	ErrCodeSlugTaken       = "E103" // Slug belongs to another store
	ErrCodeCreateFailed    = "E104" // Create-or-update could not reconcile
	ErrCodeCheckoutBlocked = "E201" // Cart cannot be checked out
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// classify maps a domain error to an output code and exit code.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, ownership.ErrNotAuthenticated):
		return ErrCodeNotAuthed, ExitFailure
	case errors.Is(err, ownership.ErrNoStoreLoaded):
		return ErrCodeNoStore, ExitFailure
	case errors.Is(err, ownership.ErrSlugTaken):
		return ErrCodeSlugTaken, ExitFailure
	case errors.Is(err, ownership.ErrCreateOrUpdateFailed):
		return ErrCodeCreateFailed, ExitFailure
	case errors.Is(err, ownership.ErrProfileNotFound), model.IsNotFound(err):
		return ErrCodeNotFound, ExitFailure
	case errors.Is(err, validate.ErrInvalid):
		return ErrCodeInvalidInput, ExitCommandError
	default:
		return ErrCodeGeneric, ExitCommandError
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E002", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
// In text mode, text is printed instead of data.
func (f *OutputFormatter) Success(data interface{}, text string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, text)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns the ExitError the command should return.
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := classify(err)
	_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), nil)
	return WrapExitError(exit, message, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
