package lexer

import "testing"

func TestRegexAfterLicensingChars(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		// start of input
		{"/ab/g", []expectedToken{{REGEX, "/ab/g"}}},
		// after '='
		{"x = /ab/i", []expectedToken{
			{IDENT, "x"}, {ASSIGN, "="}, {REGEX, "/ab/i"},
		}},
		// after '('
		{"f(/a+b/)", []expectedToken{
			{IDENT, "f"}, {LPAREN, "("}, {REGEX, "/a+b/"}, {RPAREN, ")"},
		}},
		// after ','
		{"f(x, /y/)", []expectedToken{
			{IDENT, "f"}, {LPAREN, "("}, {IDENT, "x"}, {COMMA, ","},
			{REGEX, "/y/"}, {RPAREN, ")"},
		}},
		// after '[' and ':'
		{"[/a/, {k: /b/}]", []expectedToken{
			{LBRACKET, "["}, {REGEX, "/a/"}, {COMMA, ","},
			{LBRACE, "{"}, {IDENT, "k"}, {COLON, ":"}, {REGEX, "/b/"},
			{RBRACE, "}"}, {RBRACKET, "]"},
		}},
		// after '!' and '?'
		{"!/a/", []expectedToken{{NOT, "!"}, {REGEX, "/a/"}}},
		// whitespace and line terminators between do not matter
		{"x =\n  /nl/", []expectedToken{
			{IDENT, "x"}, {ASSIGN, "="}, {REGEX, "/nl/"},
		}},
	}
	for _, tt := range tests {
		assertTokens(t, tt.input, tt.expected)
	}
}

func TestDivisionAfterOperand(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		{"a / b", []expectedToken{{IDENT, "a"}, {DIVIDE, "/"}, {IDENT, "b"}}},
		{"a / b / c", []expectedToken{
			{IDENT, "a"}, {DIVIDE, "/"}, {IDENT, "b"}, {DIVIDE, "/"}, {IDENT, "c"},
		}},
		{"10 / 2", []expectedToken{{INTEGER, "10"}, {DIVIDE, "/"}, {INTEGER, "2"}}},
		{"(1) / 2", []expectedToken{
			{LPAREN, "("}, {INTEGER, "1"}, {RPAREN, ")"}, {DIVIDE, "/"}, {INTEGER, "2"},
		}},
		{"x /= 2", []expectedToken{{IDENT, "x"}, {DIVIDE_ASSIGN, "/="}, {INTEGER, "2"}}},
	}
	for _, tt := range tests {
		assertTokens(t, tt.input, tt.expected)
	}
}

func TestRegexBody(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		// escaped slash inside the body
		{`= /a\/b/`, []expectedToken{{ASSIGN, "="}, {REGEX, `/a\/b/`}}},
		// slash inside a character class does not end the literal
		{"= /[/]/", []expectedToken{{ASSIGN, "="}, {REGEX, "/[/]/"}}},
		// multiple flags
		{"= /abc/gimsy", []expectedToken{{ASSIGN, "="}, {REGEX, "/abc/gimsy"}}},
	}
	for _, tt := range tests {
		assertTokens(t, tt.input, tt.expected)
	}
}

func TestRegexFallbackToDivision(t *testing.T) {
	// a '/' in regex position with no valid body character after it
	// falls back to a division token
	assertTokens(t, "= /", []expectedToken{{ASSIGN, "="}, {DIVIDE, "/"}})
	assertTokens(t, "= /\n1", []expectedToken{{ASSIGN, "="}, {DIVIDE, "/"}, {INTEGER, "1"}})
}

func TestUnterminatedRegex(t *testing.T) {
	l := NewLexer("= /abc")
	if tok := l.NextToken(); tok.Kind != ASSIGN {
		t.Fatalf("expected '=', got %q", tok.Kind)
	}
	tok := l.NextToken()
	if tok.Kind != ILLEGAL {
		t.Fatalf("expected ILLEGAL for unterminated regex, got %q (literal %q)", tok.Kind, tok.Literal)
	}
	if tok.Literal != "/abc" {
		t.Errorf("ILLEGAL literal should carry the offending span, got %q", tok.Literal)
	}
}

func TestRegexNewlineInBody(t *testing.T) {
	l := NewLexer("= /ab\ncd/")
	l.NextToken() // '='
	tok := l.NextToken()
	if tok.Kind != ILLEGAL {
		t.Fatalf("regex body crossing a line terminator should be ILLEGAL, got %q", tok.Kind)
	}
}
