package errors

import (
	"fmt"
	"io"
	"strings"
)

// FormatterError is the interface implemented by all formatter errors.
type FormatterError interface {
	error // Embed the standard error interface
	Pos() Position
	Kind() string // e.g., "Config", "Version", "Invariant"
	// Message returns the specific error message without position info.
	Message() string
	Unwrap() error // For error wrapping support (errors.Is/As)
}

// --- Concrete Error Types ---

// ConfigError reports an invalid settings value, either set directly or
// read from the environment.
type ConfigError struct {
	Position
	Option string // Name of the offending option (e.g., "print_width")
	Msg    string
	Cause  error // Underlying cause, if any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Config Error: %s: %s", e.Option, e.Msg)
}
func (e *ConfigError) Pos() Position   { return e.Position }
func (e *ConfigError) Kind() string    { return "Config" }
func (e *ConfigError) Message() string { return e.Msg }
func (e *ConfigError) Unwrap() error   { return e.Cause }
func (e *ConfigError) CausedBy(cause error) *ConfigError {
	e.Cause = cause
	return e
}

// VersionError reports a PHP version string that cannot be parsed.
type VersionError struct {
	Position
	Input string
	Msg   string
	Cause error
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("Version Error: %q: %s", e.Input, e.Msg)
}
func (e *VersionError) Pos() Position   { return e.Position }
func (e *VersionError) Kind() string    { return "Version" }
func (e *VersionError) Message() string { return e.Msg }
func (e *VersionError) Unwrap() error   { return e.Cause }
func (e *VersionError) CausedBy(cause error) *VersionError {
	e.Cause = cause
	return e
}

// FeatureError reports syntax in the tree that the target PHP version does
// not have.
type FeatureError struct {
	Position
	Feature string
	Msg     string
}

func (e *FeatureError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Feature Error at %d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("Feature Error: %s", e.Msg)
}
func (e *FeatureError) Pos() Position   { return e.Position }
func (e *FeatureError) Kind() string    { return "Feature" }
func (e *FeatureError) Message() string { return e.Msg }
func (e *FeatureError) Unwrap() error   { return nil }

// InvariantError is the panic payload for lowering bugs, such as a text
// leaf carrying a newline. It is never returned as a regular error.
type InvariantError struct {
	Position
	Msg string
}

func (e *InvariantError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Invariant Violation at %d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("Invariant Violation: %s", e.Msg)
}
func (e *InvariantError) Pos() Position   { return e.Position }
func (e *InvariantError) Kind() string    { return "Invariant" }
func (e *InvariantError) Message() string { return e.Msg }
func (e *InvariantError) Unwrap() error   { return nil }

// --- Error Reporting ---

// DisplayErrors writes a list of formatter errors to w in a user-friendly
// format, including the source line and position marker when the error
// carries a position.
func DisplayErrors(w io.Writer, source string, errs []FormatterError) {
	if len(errs) == 0 {
		return
	}

	lines := strings.Split(source, "\n")

	for _, err := range errs {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		// Ensure line numbers are within bounds (1-based index)
		lineIdx := pos.Line - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			fmt.Fprintf(w, "%s Error: %s\n", kind, msg)
			continue
		}

		sourceLine := strings.TrimRight(lines[lineIdx], "\r\n\t ")

		fmt.Fprintf(w, "%s Error at %d:%d: %s\n", kind, pos.Line, pos.Column, msg)
		fmt.Fprintf(w, "  %s\n", sourceLine)

		marker := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"
		if width := pos.EndPos - pos.StartPos; width > 1 {
			marker += strings.Repeat("~", width-1)
		}
		fmt.Fprintf(w, "  %s\n", marker)
		fmt.Fprintln(w)
	}
}
