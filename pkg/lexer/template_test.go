package lexer

import "testing"

func TestSimpleTemplate(t *testing.T) {
	assertTokens(t, "`hello`", []expectedToken{
		{BACKTICK, "`"}, {TEMPLATE_ATOM, "hello"}, {BACKTICK, "`"},
	})
}

func TestEmptyTemplate(t *testing.T) {
	assertTokens(t, "``", []expectedToken{
		{BACKTICK, "`"}, {BACKTICK, "`"},
	})
}

func TestTemplateWithHole(t *testing.T) {
	// inside the hole the lexer tokenizes normally; the caller resumes
	// template mode after the closing brace
	l := NewLexer("`hi ${name}!`")
	expected := []expectedToken{
		{BACKTICK, "`"},
		{TEMPLATE_ATOM, "hi "},
		{TEMPLATE_START, "${"},
		{IDENT, "name"},
		{RBRACE, "}"},
	}
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Kind != exp.kind || tok.Literal != exp.literal {
			t.Fatalf("test[%d] - expected (%q, %q), got (%q, %q)",
				i, exp.kind, exp.literal, tok.Kind, tok.Literal)
		}
	}

	l.ProcessTemplateCloseBrace()
	tail := []expectedToken{
		{TEMPLATE_ATOM, "!"},
		{BACKTICK, "`"},
		{EOF, ""},
	}
	for i, exp := range tail {
		tok := l.NextToken()
		if tok.Kind != exp.kind || tok.Literal != exp.literal {
			t.Fatalf("tail[%d] - expected (%q, %q), got (%q, %q)",
				i, exp.kind, exp.literal, tok.Kind, tok.Literal)
		}
	}
}

func TestTemplateHoleWithExpression(t *testing.T) {
	l := NewLexer("`${1 + 2}`")
	expected := []expectedToken{
		{BACKTICK, "`"},
		{TEMPLATE_START, "${"},
		{INTEGER, "1"},
		{PLUS, "+"},
		{INTEGER, "2"},
		{RBRACE, "}"},
	}
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Kind != exp.kind || tok.Literal != exp.literal {
			t.Fatalf("test[%d] - expected (%q, %q), got (%q, %q)",
				i, exp.kind, exp.literal, tok.Kind, tok.Literal)
		}
	}
	l.ProcessTemplateCloseBrace()
	if tok := l.NextToken(); tok.Kind != BACKTICK {
		t.Fatalf("expected closing backtick, got %q (literal %q)", tok.Kind, tok.Literal)
	}
}

func TestTemplateEscapes(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		{"`a\\`b`", []expectedToken{
			{BACKTICK, "`"}, {TEMPLATE_ATOM, "a\\`b"}, {BACKTICK, "`"},
		}},
		{"`a\\${not a hole}`", []expectedToken{
			{BACKTICK, "`"}, {TEMPLATE_ATOM, "a\\${not a hole}"}, {BACKTICK, "`"},
		}},
		{"`\\x41\\u0042\\u{43}`", []expectedToken{
			{BACKTICK, "`"}, {TEMPLATE_ATOM, "\\x41\\u0042\\u{43}"}, {BACKTICK, "`"},
		}},
	}
	for _, tt := range tests {
		assertTokens(t, tt.input, tt.expected)
	}
}

func TestTemplateSpansLines(t *testing.T) {
	assertTokens(t, "`line1\nline2`", []expectedToken{
		{BACKTICK, "`"}, {TEMPLATE_ATOM, "line1\nline2"}, {BACKTICK, "`"},
	})
}

func TestTemplateInvalidEscape(t *testing.T) {
	l := NewLexer("`bad \\x1g`")
	l.NextToken() // opening backtick
	tok := l.NextToken()
	if tok.Kind != ILLEGAL {
		t.Fatalf("expected ILLEGAL for invalid hex escape, got %q (literal %q)", tok.Kind, tok.Literal)
	}
}

func TestUnterminatedTemplate(t *testing.T) {
	l := NewLexer("`abc")
	l.NextToken() // opening backtick
	tok := l.NextToken()
	if tok.Kind != TEMPLATE_ATOM || tok.Literal != "abc" {
		t.Fatalf("expected trailing atom %q, got (%q, %q)", "abc", tok.Kind, tok.Literal)
	}
	// no closing backtick ever arrives; the parser reports the failure
	tok = l.NextToken()
	if tok.Kind != EOF {
		t.Fatalf("expected EOF at end of unterminated template, got %q", tok.Kind)
	}
}
