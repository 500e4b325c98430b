package errors

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryDocument Category = "document"
	CategoryRender   Category = "render"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Location represents a source location inside a tree document or config
// file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// SynthError is a structured error with a code, an optional document path
// and source location, and a suggestion.
type SynthError struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path is the document path of the offending node (e.g., "$.children[0]").
	Path string

	// Location is the source location where the error occurred.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SynthError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SynthError) Unwrap() error {
	return e.Wrapped
}

// WithPath sets the document path of the offending node.
func (e *SynthError) WithPath(path string) *SynthError {
	e.Path = path
	return e
}

// WithLocation adds source location to the error and loads the lines
// around it.
func (e *SynthError) WithLocation(file string, line, column int) *SynthError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SynthError) WithSuggestion(s string) *SynthError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *SynthError) WithDetail(d string) *SynthError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SynthError) Wrap(err error) *SynthError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	if filename == "" || targetLine <= 0 {
		return nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a SynthError from a registered error code.
func New(code string) *SynthError {
	template, ok := registry[code]
	if !ok {
		return &SynthError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SynthError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new SynthError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SynthError {
	return &SynthError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SynthError. A SynthError anywhere
// in err's chain is returned as-is.
func FromError(err error, code string) *SynthError {
	if err == nil {
		return nil
	}
	var se *SynthError
	if errors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first SynthError in err's chain, or "".
func Code(err error) string {
	var se *SynthError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
