package errors

import (
	"fmt"
	"io"
	"strings"
)

// OongError is the interface implemented by all oong errors.
type OongError interface {
	error
	Pos() Position
	Kind() string // "Syntax", "Runtime"
	// Message returns the specific error message without position info.
	Message() string
	Unwrap() error
}

// SyntaxError represents an error during lexing or parsing.
type SyntaxError struct {
	Position
	Msg   string
	Cause error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// NewSyntaxError builds a SyntaxError positioned at a byte offset.
func NewSyntaxError(source string, offset int, msg string) *SyntaxError {
	return &SyntaxError{Position: PositionAt(source, offset), Msg: msg}
}

// RuntimeError represents an error while a consumer evaluates the tree.
type RuntimeError struct {
	Position
	Msg   string
	Cause error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *RuntimeError) Pos() Position   { return e.Position }
func (e *RuntimeError) Kind() string    { return "Runtime" }
func (e *RuntimeError) Message() string { return e.Msg }
func (e *RuntimeError) Unwrap() error   { return e.Cause }

// DisplayErrors writes a list of oong errors in a user-friendly format,
// including the source line and a position marker.
func DisplayErrors(w io.Writer, source string, errs []OongError) {
	if len(errs) == 0 {
		return
	}

	lines := strings.Split(source, "\n")

	for _, err := range errs {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		lineIdx := pos.Line - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			fmt.Fprintf(w, "%s Error: %s\n", kind, msg)
			continue
		}

		sourceLine := strings.TrimRight(lines[lineIdx], "\r\n\t ")

		fmt.Fprintf(w, "%s Error at %d:%d: %s\n", kind, pos.Line, pos.Column, msg)
		fmt.Fprintf(w, "  %s\n", sourceLine)

		marker := strings.Repeat(" ", pos.Column) + "^"
		fmt.Fprintf(w, "  %s\n", marker)
		fmt.Fprintln(w)
	}
}
