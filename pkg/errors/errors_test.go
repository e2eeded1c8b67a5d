package errors

import (
	"bytes"
	"strings"
	"testing"
)

func TestPositionAt(t *testing.T) {
	source := "ab\ncde\nf"
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 0},
		{1, 1, 1},
		{3, 2, 0},
		{5, 2, 2},
		{7, 3, 0},
		{99, 3, 1}, // clamped to end of input
	}
	for _, tt := range tests {
		pos := PositionAt(source, tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("PositionAt(%d) = %d:%d, want %d:%d",
				tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
	}
}

func TestSyntaxErrorFormat(t *testing.T) {
	err := NewSyntaxError("var x = \nvar", 9, "expected binding name")
	if err.Pos().Line != 2 {
		t.Errorf("expected line 2, got %d", err.Pos().Line)
	}
	if err.Kind() != "Syntax" {
		t.Errorf("expected Syntax kind, got %q", err.Kind())
	}
	msg := err.Error()
	if !strings.Contains(msg, "expected binding name") || !strings.Contains(msg, "2:0") {
		t.Errorf("unexpected error text: %q", msg)
	}
}

func TestDisplayErrorsCaret(t *testing.T) {
	source := "var x = 1\nvar = 2"
	serr := NewSyntaxError(source, 14, "expected binding name")

	var buf bytes.Buffer
	DisplayErrors(&buf, source, []OongError{serr})
	out := buf.String()

	if !strings.Contains(out, "Syntax Error at 2:4") {
		t.Errorf("missing header in %q", out)
	}
	if !strings.Contains(out, "var = 2") {
		t.Errorf("missing source line in %q", out)
	}
	if !strings.Contains(out, "    ^") {
		t.Errorf("missing caret marker in %q", out)
	}
}

func TestDisplayErrorsEmpty(t *testing.T) {
	var buf bytes.Buffer
	DisplayErrors(&buf, "src", nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty error list, got %q", buf.String())
	}
}
