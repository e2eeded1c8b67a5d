package lexer

import "testing"

type expectedToken struct {
	kind    TokenKind
	literal string
}

func assertTokens(t *testing.T, input string, expected []expectedToken) {
	t.Helper()
	l := NewLexer(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Kind != exp.kind {
			t.Fatalf("test[%d] - wrong kind. expected=%q, got=%q (literal %q)",
				i, exp.kind, tok.Kind, tok.Literal)
		}
		if tok.Literal != exp.literal {
			t.Fatalf("test[%d] - wrong literal. expected=%q, got=%q",
				i, exp.literal, tok.Literal)
		}
	}
	if tok := l.NextToken(); tok.Kind != EOF {
		t.Fatalf("expected EOF after all tokens, got %q (literal %q)", tok.Kind, tok.Literal)
	}
}

func TestBasicTokens(t *testing.T) {
	input := `var five = 5;
let ten = 10;
const pi = 3.14;
if (five < ten) { five = ten; } else { five = 0; }
`
	assertTokens(t, input, []expectedToken{
		{VAR, "var"}, {IDENT, "five"}, {ASSIGN, "="}, {INTEGER, "5"}, {SEMI, ";"},
		{LET_NONSTRICT, "let"}, {IDENT, "ten"}, {ASSIGN, "="}, {INTEGER, "10"}, {SEMI, ";"},
		{CONST, "const"}, {IDENT, "pi"}, {ASSIGN, "="}, {DECIMAL, "3.14"}, {SEMI, ";"},
		{IF, "if"}, {LPAREN, "("}, {IDENT, "five"}, {LT, "<"}, {IDENT, "ten"}, {RPAREN, ")"},
		{LBRACE, "{"}, {IDENT, "five"}, {ASSIGN, "="}, {IDENT, "ten"}, {SEMI, ";"}, {RBRACE, "}"},
		{ELSE, "else"},
		{LBRACE, "{"}, {IDENT, "five"}, {ASSIGN, "="}, {INTEGER, "0"}, {SEMI, ";"}, {RBRACE, "}"},
	})
}

func TestOperatorMaximalMunch(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		{">>>= >>> >>= >> >= >", []expectedToken{
			{URSHIFT_ASSIGN, ">>>="}, {URSHIFT, ">>>"}, {RSHIFT_ASSIGN, ">>="},
			{RSHIFT, ">>"}, {GE, ">="}, {GT, ">"},
		}},
		{"<<= << <= <", []expectedToken{
			{LSHIFT_ASSIGN, "<<="}, {LSHIFT, "<<"}, {LE, "<="}, {LT, "<"},
		}},
		{"=> === == =", []expectedToken{
			{ARROW, "=>"}, {STRICT_EQ, "==="}, {EQ, "=="}, {ASSIGN, "="},
		}},
		{"!== != !", []expectedToken{
			{STRICT_NOT_EQ, "!=="}, {NOT_EQ, "!="}, {NOT, "!"},
		}},
		{"**= ** *= *", []expectedToken{
			{POWER_ASSIGN, "**="}, {POWER, "**"}, {MULTIPLY_ASSIGN, "*="}, {MULTIPLY, "*"},
		}},
		{"??= ?? ?. ?", []expectedToken{
			{COALESCE_ASSIGN, "??="}, {COALESCE, "??"}, {QUESTION_DOT, "?."}, {QUESTION, "?"},
		}},
		{"... . ++ -- += -= && || &= |= ^= ~", []expectedToken{
			{ELLIPSIS, "..."}, {DOT, "."}, {PLUS_PLUS, "++"}, {MINUS_MINUS, "--"},
			{PLUS_ASSIGN, "+="}, {MINUS_ASSIGN, "-="},
			{LOGICAL_AND, "&&"}, {LOGICAL_OR, "||"},
			{BIT_AND_ASSIGN, "&="}, {BIT_OR_ASSIGN, "|="}, {BIT_XOR_ASSIGN, "^="},
			{BIT_NOT, "~"},
		}},
	}
	for _, tt := range tests {
		assertTokens(t, tt.input, tt.expected)
	}
}

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		{"42", []expectedToken{{INTEGER, "42"}}},
		{"1_000_000", []expectedToken{{INTEGER, "1_000_000"}}},
		{"3.14", []expectedToken{{DECIMAL, "3.14"}}},
		{".5", []expectedToken{{DECIMAL, ".5"}}},
		{"1e10", []expectedToken{{DECIMAL, "1e10"}}},
		{"1.5e-3", []expectedToken{{DECIMAL, "1.5e-3"}}},
		{"123n", []expectedToken{{BIGINT, "123n"}}},
		{"0xFF", []expectedToken{{HEX, "0xFF"}}},
		{"0xFFn", []expectedToken{{BIGINT_HEX, "0xFFn"}}},
		{"0o17", []expectedToken{{OCTAL, "0o17"}}},
		{"0o17n", []expectedToken{{BIGINT_OCTAL, "0o17n"}}},
		{"0b1010", []expectedToken{{BINARY, "0b1010"}}},
		{"0b1010n", []expectedToken{{BIGINT_BINARY, "0b1010n"}}},
		{"017", []expectedToken{{OCTAL_LEGACY, "017"}}},
		// a radix prefix with no digit emits the bare zero and leaves
		// the letter for the next token
		{"0x", []expectedToken{{INTEGER, "0"}, {IDENT, "x"}}},
		{"0b", []expectedToken{{INTEGER, "0"}, {IDENT, "b"}}},
		{"08", []expectedToken{{INTEGER, "0"}, {INTEGER, "8"}}},
		// '1.' does not extend into a fraction without a digit
		{"1.x", []expectedToken{{INTEGER, "1"}, {DOT, "."}, {IDENT, "x"}}},
	}
	for _, tt := range tests {
		assertTokens(t, tt.input, tt.expected)
	}
}

func TestIntegerValues(t *testing.T) {
	tests := []struct {
		input string
		value int64
	}{
		{"0", 0},
		{"42", 42},
		{"1_000", 1000},
		{"123456789", 123456789},
	}
	for _, tt := range tests {
		l := NewLexer(tt.input)
		tok := l.NextToken()
		if tok.Kind != INTEGER {
			t.Fatalf("input %q: expected INTEGER, got %q", tt.input, tok.Kind)
		}
		if !tok.HasInt || tok.IntValue != tt.value {
			t.Errorf("input %q: expected value %d, got %d (HasInt=%v)",
				tt.input, tt.value, tok.IntValue, tok.HasInt)
		}
	}

	// radix forms carry no computed value
	l := NewLexer("0xFF")
	if tok := l.NextToken(); tok.HasInt {
		t.Errorf("hex literal should not carry a computed value, got %d", tok.IntValue)
	}
}

func TestStrictModeKeywords(t *testing.T) {
	input := "let private static implements interface package protected public"

	nonStrict := []expectedToken{
		{LET_NONSTRICT, "let"}, {IDENT, "private"}, {IDENT, "static"},
		{IDENT, "implements"}, {IDENT, "interface"}, {IDENT, "package"},
		{IDENT, "protected"}, {IDENT, "public"},
	}
	assertTokens(t, input, nonStrict)

	l := NewLexerWithConfig(input, Config{StrictMode: true})
	strict := []expectedToken{
		{LET_STRICT, "let"}, {PRIVATE, "private"}, {STATIC, "static"},
		{IMPLEMENTS, "implements"}, {INTERFACE, "interface"}, {PACKAGE, "package"},
		{PROTECTED, "protected"}, {PUBLIC, "public"},
	}
	for i, exp := range strict {
		tok := l.NextToken()
		if tok.Kind != exp.kind || tok.Literal != exp.literal {
			t.Fatalf("strict test[%d] - expected (%q, %q), got (%q, %q)",
				i, exp.kind, exp.literal, tok.Kind, tok.Literal)
		}
	}
}

func TestLegacyOctalStrictMode(t *testing.T) {
	l := NewLexerWithConfig("017", Config{StrictMode: true})
	first := l.NextToken()
	second := l.NextToken()
	if first.Kind != INTEGER || first.Literal != "0" {
		t.Errorf("expected INTEGER \"0\", got (%q, %q)", first.Kind, first.Literal)
	}
	if second.Kind != INTEGER || second.Literal != "17" {
		t.Errorf("expected INTEGER \"17\", got (%q, %q)", second.Kind, second.Literal)
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		{`"hello"`, []expectedToken{{STRING, `"hello"`}}},
		{`'world'`, []expectedToken{{STRING, `'world'`}}},
		{`"a\nb\t\\"`, []expectedToken{{STRING, `"a\nb\t\\"`}}},
		{`"esc \x41 A \u{1F600}"`, []expectedToken{{STRING, `"esc \x41 A \u{1F600}"`}}},
		{`'it\'s'`, []expectedToken{{STRING, `'it\'s'`}}},
	}
	for _, tt := range tests {
		assertTokens(t, tt.input, tt.expected)
	}
}

func TestMalformedStrings(t *testing.T) {
	tests := []string{
		"'abc",      // unterminated at EOF
		"\"a\nb\"",  // raw line terminator
		`"bad \x1"`, // truncated hex escape
		`"bad \u12"`,
		`'\x`,    // input ends at the escape introducer
		`"abc\x`, // same, with a body before it
	}
	for _, input := range tests {
		l := NewLexer(input)
		tok := l.NextToken()
		if tok.Kind != ILLEGAL {
			t.Errorf("input %q: expected ILLEGAL, got %q (literal %q)", input, tok.Kind, tok.Literal)
		}
		if tok.Pos != 0 || len(tok.Literal) == 0 {
			t.Errorf("input %q: ILLEGAL token should carry the offending span, got %q at %d",
				input, tok.Literal, tok.Pos)
		}
	}
}

func TestConsoleHeads(t *testing.T) {
	assertTokens(t, "console.log(1) console.error(2) console.warn(3) console.info(4) console.success(5)",
		[]expectedToken{
			{CONSOLE_LOG, "console.log"}, {LPAREN, "("}, {INTEGER, "1"}, {RPAREN, ")"},
			{CONSOLE_ERROR, "console.error"}, {LPAREN, "("}, {INTEGER, "2"}, {RPAREN, ")"},
			{CONSOLE_WARN, "console.warn"}, {LPAREN, "("}, {INTEGER, "3"}, {RPAREN, ")"},
			{CONSOLE_INFO, "console.info"}, {LPAREN, "("}, {INTEGER, "4"}, {RPAREN, ")"},
			{CONSOLE_SUCCESS, "console.success"}, {LPAREN, "("}, {INTEGER, "5"}, {RPAREN, ")"},
		})

	// unknown member: console stays a plain identifier
	assertTokens(t, "console.table(1)", []expectedToken{
		{IDENT, "console"}, {DOT, "."}, {IDENT, "table"},
		{LPAREN, "("}, {INTEGER, "1"}, {RPAREN, ")"},
	})
}

func TestPrintKeyword(t *testing.T) {
	assertTokens(t, `print("hi")`, []expectedToken{
		{PRINT, "print"}, {LPAREN, "("}, {STRING, `"hi"`}, {RPAREN, ")"},
	})
}

func TestComments(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		{"// line comment\nx", []expectedToken{{IDENT, "x"}}},
		{"/* block */ y", []expectedToken{{IDENT, "y"}}},
		{"/* outer /* inner */ still outer */ z", []expectedToken{{IDENT, "z"}}},
		{"<!-- html comment --> a", []expectedToken{{IDENT, "a"}}},
		{"<![CDATA[ ignored ]]> b", []expectedToken{{IDENT, "b"}}},
		{"/* unterminated", nil},
		{"#!/usr/bin/env oong\nmain", []expectedToken{{IDENT, "main"}}},
	}
	for _, tt := range tests {
		assertTokens(t, tt.input, tt.expected)
	}

	// '#!' anywhere but the start of input is not a comment
	assertTokens(t, "x #! y", []expectedToken{
		{IDENT, "x"}, {HASHTAG, "#"}, {NOT, "!"}, {IDENT, "y"},
	})
}

func TestUnicodeIdentifiers(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		{"héllo", []expectedToken{{IDENT, "héllo"}}},
		{`Abc`, []expectedToken{{IDENT, `Abc`}}},
		{`\u{48}i`, []expectedToken{{IDENT, `\u{48}i`}}},
		{"$dollar _under", []expectedToken{{IDENT, "$dollar"}, {IDENT, "_under"}}},
	}
	for _, tt := range tests {
		assertTokens(t, tt.input, tt.expected)
	}

	// a lone backslash cannot start an identifier
	l := NewLexer(`\`)
	if tok := l.NextToken(); tok.Kind != ILLEGAL {
		t.Errorf("lone backslash: expected ILLEGAL, got %q", tok.Kind)
	}
}

func TestEOFIdempotent(t *testing.T) {
	l := NewLexer("x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Kind != EOF {
			t.Fatalf("call %d after end: expected EOF, got %q", i, tok.Kind)
		}
	}
}

func TestTokenSpansRoundTrip(t *testing.T) {
	input := "var x = 0xFF + `a${b}c` / 'str'   yield"
	l := NewLexer(input)
	for {
		tok := l.NextToken()
		if tok.Kind == EOF {
			break
		}
		if got := input[tok.Pos:tok.End()]; got != tok.Literal {
			t.Errorf("token %q: span [%d,%d) is %q, want literal %q",
				tok.Kind, tok.Pos, tok.End(), got, tok.Literal)
		}
	}
}

func TestContainsLineTerminatorBetween(t *testing.T) {
	src := "a\nb c d e"
	l := NewLexer(src)
	tests := []struct {
		from, to int
		want     bool
	}{
		{0, 3, true},   // covers '\n'
		{2, 5, false},  // "b c"
		{4, 9, true},   // covers U+2028
		{9, 11, false}, // "d e" tail
	}
	for _, tt := range tests {
		if got := l.ContainsLineTerminatorBetween(tt.from, tt.to); got != tt.want {
			t.Errorf("ContainsLineTerminatorBetween(%d, %d) = %v, want %v",
				tt.from, tt.to, got, tt.want)
		}
	}
}
