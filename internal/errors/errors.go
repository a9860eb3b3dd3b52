// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the seqdiag CLI.
//
// UserError carries what went wrong, why it happened and how to fix it,
// together with the exit code the process should end with.
//
// # Usage Example
//
//	err := errors.NewSourceModelError(
//	    "Cannot load translation unit build/t20006.yaml",
//	    "yaml: line 12: mapping values are not allowed in this context",
//	    "Regenerate the dump with the front-end",
//	    underlyingErr,
//	)
//	errors.FatalError(err, false)
//
// # Formatted Output
//
// Format renders colored terminal output:
//
//	Error: Cannot load translation unit build/t20006.yaml
//	Cause: yaml: line 12: mapping values are not allowed in this context
//	Fix:   Regenerate the dump with the front-end
//
// ToJSON returns the same information for --json mode:
//
//	{
//	  "error": "Cannot load translation unit build/t20006.yaml",
//	  "cause": "yaml: line 12: mapping values are not allowed in this context",
//	  "fix": "Regenerate the dump with the front-end",
//	  "exit_code": 2
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Successful execution
//   - ExitConfig (1): Configuration errors (missing/invalid config)
//   - ExitSourceModel (2): Translation unit dumps that cannot be read or decoded
//   - ExitOutput (3): Rendered diagrams that cannot be written
//   - ExitInput (4): Invalid user input (bad arguments, unknown diagram)
//   - ExitPermission (5): Permission denied
//   - ExitNotFound (6): Resource not found
//   - ExitInternal (10): Internal errors (bugs, panics)
package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories.
const (
	ExitSuccess = 0

	// ExitConfig indicates a missing or invalid configuration file.
	ExitConfig = 1

	// ExitSourceModel indicates a translation unit dump that cannot be read
	// or decoded.
	ExitSourceModel = 2

	// ExitOutput indicates a diagram that could not be rendered or written.
	ExitOutput = 3

	// ExitInput indicates invalid command-line input.
	ExitInput = 4

	// ExitPermission indicates permission denied errors.
	ExitPermission = 5

	// ExitNotFound indicates resource not found errors.
	ExitNotFound = 6

	// ExitInternal signals "this is a bug that should be reported".
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
type UserError struct {
	// Message describes what went wrong in user-friendly language.
	Message string

	// Cause explains why the error occurred.
	Cause string

	// Fix provides an actionable suggestion.
	Fix string

	// ExitCode is the process exit code for this error.
	ExitCode int

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *UserError) Unwrap() error {
	return e.Err
}

func newUserError(code int, msg, cause, fix string, err error) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: code,
		Err:      err,
	}
}

// NewConfigError creates a configuration error with exit code ExitConfig.
//
// Example:
//
//	return NewConfigError(
//	    "Cannot load configuration",
//	    "seqdiag.yaml: invalid configuration: no diagrams defined",
//	    "Add at least one entry under 'diagrams:'",
//	    err,
//	)
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitConfig, msg, cause, fix, err)
}

// NewSourceModelError creates an error with exit code ExitSourceModel for
// translation unit dumps that cannot be loaded.
func NewSourceModelError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitSourceModel, msg, cause, fix, err)
}

// NewOutputError creates an error with exit code ExitOutput for diagrams
// that cannot be rendered or written.
func NewOutputError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitOutput, msg, cause, fix, err)
}

// NewInputError creates an input validation error with exit code ExitInput.
// Input errors do not wrap an underlying error.
//
// Example:
//
//	return NewInputError(
//	    "Unknown diagram 't20007_sequence'",
//	    "The configuration defines: t20006_sequence",
//	    "Run 'seqdiag list' to see the configured diagrams",
//	)
func NewInputError(msg, cause, fix string) *UserError {
	return newUserError(ExitInput, msg, cause, fix, nil)
}

// NewPermissionError creates a permission denied error with exit code
// ExitPermission.
func NewPermissionError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitPermission, msg, cause, fix, err)
}

// NewNotFoundError creates a resource not found error with exit code
// ExitNotFound.
func NewNotFoundError(msg, cause, fix string) *UserError {
	return newUserError(ExitNotFound, msg, cause, fix, nil)
}

// NewInternalError creates an internal error with exit code ExitInternal.
// Internal errors indicate bugs and should be reported.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitInternal, msg, cause, fix, err)
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display.
//
// Empty Cause or Fix fields are omitted. Color respects the NO_COLOR
// environment variable and can be disabled with noColor.
//
// Note: This method temporarily modifies the global color.NoColor state
// and restores it after formatting.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON represents error information in JSON format.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to a JSON-serializable structure.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// Report writes err to w and returns the exit code it maps to. UserErrors
// use Format or ToJSON; any other error is printed as-is with ExitInternal.
func Report(w io.Writer, err error, jsonOutput, noColor bool) int {
	if err == nil {
		return ExitSuccess
	}

	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			// Encode error is ignored; the exit code is still reported.
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(w, ue.Format(noColor))
		}
		return ue.ExitCode
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return ExitInternal
}

// FatalError reports err on stderr and exits with its code. It returns
// without exiting when err is nil.
//
// Usage:
//
//	if err := run(); err != nil {
//	    errors.FatalError(err, jsonMode)
//	}
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}
	os.Exit(Report(os.Stderr, err, jsonOutput, false))
}
