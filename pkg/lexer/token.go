package lexer

import "fmt"

// TokenKind identifies the lexical category of a token.
type TokenKind string

const (
	// Special
	ILLEGAL TokenKind = "ILLEGAL" // malformed input; Literal carries the offending span
	EOF     TokenKind = "EOF"

	// Identifiers + literals
	IDENT          TokenKind = "IDENT"
	INTEGER        TokenKind = "INTEGER"  // plain decimal integer, carries a parsed value
	DECIMAL        TokenKind = "DECIMAL"  // decimal with fraction and/or exponent
	BIGINT         TokenKind = "BIGINT"   // decimal integer with 'n' suffix
	HEX            TokenKind = "HEX"      // 0x...
	BIGINT_HEX     TokenKind = "BIGINT_HEX"
	OCTAL          TokenKind = "OCTAL"    // 0o...
	OCTAL_LEGACY   TokenKind = "OCTAL_LEGACY" // 0NNN, non-strict mode only
	BIGINT_OCTAL   TokenKind = "BIGINT_OCTAL"
	BINARY         TokenKind = "BINARY" // 0b...
	BIGINT_BINARY  TokenKind = "BIGINT_BINARY"
	STRING         TokenKind = "STRING"
	TEMPLATE_ATOM  TokenKind = "TEMPLATE_ATOM"
	TEMPLATE_START TokenKind = "${" // start of an expression hole inside a template
	BACKTICK       TokenKind = "`"
	REGEX          TokenKind = "REGEX"
	BOOLEAN        TokenKind = "BOOLEAN" // true / false
	NULL           TokenKind = "NULL"

	// Print-like statement heads; the parser keeps the head kind on the
	// statement node so consumers can vary output formatting by origin.
	PRINT           TokenKind = "PRINT"
	CONSOLE_LOG     TokenKind = "CONSOLE_LOG"
	CONSOLE_ERROR   TokenKind = "CONSOLE_ERROR"
	CONSOLE_WARN    TokenKind = "CONSOLE_WARN"
	CONSOLE_INFO    TokenKind = "CONSOLE_INFO"
	CONSOLE_SUCCESS TokenKind = "CONSOLE_SUCCESS"

	// Keywords
	BREAK      TokenKind = "BREAK"
	DO         TokenKind = "DO"
	INSTANCEOF TokenKind = "INSTANCEOF"
	TYPEOF     TokenKind = "TYPEOF"
	CASE       TokenKind = "CASE"
	ELSE       TokenKind = "ELSE"
	NEW        TokenKind = "NEW"
	VAR        TokenKind = "VAR"
	CATCH      TokenKind = "CATCH"
	FINALLY    TokenKind = "FINALLY"
	RETURN     TokenKind = "RETURN"
	VOID       TokenKind = "VOID"
	CONTINUE   TokenKind = "CONTINUE"
	FOR        TokenKind = "FOR"
	SWITCH     TokenKind = "SWITCH"
	WHILE      TokenKind = "WHILE"
	DEBUGGER   TokenKind = "DEBUGGER"
	FUNCTION   TokenKind = "FUNCTION"
	THIS       TokenKind = "THIS"
	WITH       TokenKind = "WITH"
	DEFAULT    TokenKind = "DEFAULT"
	IF         TokenKind = "IF"
	THROW      TokenKind = "THROW"
	DELETE     TokenKind = "DELETE"
	IN         TokenKind = "IN"
	TRY        TokenKind = "TRY"
	AS         TokenKind = "AS"
	FROM       TokenKind = "FROM"
	OF         TokenKind = "OF"
	YIELD      TokenKind = "YIELD"
	CLASS      TokenKind = "CLASS"
	ENUM       TokenKind = "ENUM"
	EXTENDS    TokenKind = "EXTENDS"
	SUPER      TokenKind = "SUPER"
	CONST      TokenKind = "CONST"
	EXPORT     TokenKind = "EXPORT"
	IMPORT     TokenKind = "IMPORT"
	ASYNC      TokenKind = "ASYNC"
	AWAIT      TokenKind = "AWAIT"

	// Reserved words recognized only in strict mode; otherwise they lex
	// as plain identifiers.
	IMPLEMENTS TokenKind = "IMPLEMENTS"
	PRIVATE    TokenKind = "PRIVATE"
	PUBLIC     TokenKind = "PUBLIC"
	INTERFACE  TokenKind = "INTERFACE"
	PACKAGE    TokenKind = "PACKAGE"
	PROTECTED  TokenKind = "PROTECTED"
	STATIC     TokenKind = "STATIC"

	// 'let' lexes to one of two kinds so the parser can apply different
	// binding rules per mode.
	LET_STRICT    TokenKind = "LET_STRICT"
	LET_NONSTRICT TokenKind = "LET_NONSTRICT"

	// Punctuation
	LPAREN   TokenKind = "("
	RPAREN   TokenKind = ")"
	LBRACE   TokenKind = "{"
	RBRACE   TokenKind = "}"
	LBRACKET TokenKind = "["
	RBRACKET TokenKind = "]"
	SEMI     TokenKind = ";"
	COMMA    TokenKind = ","
	COLON    TokenKind = ":"
	DOT      TokenKind = "."
	ELLIPSIS TokenKind = "..."
	HASHTAG  TokenKind = "#"
	ARROW    TokenKind = "=>"

	// Operators
	ASSIGN          TokenKind = "="
	EQ              TokenKind = "=="
	STRICT_EQ       TokenKind = "==="
	NOT             TokenKind = "!"
	NOT_EQ          TokenKind = "!="
	STRICT_NOT_EQ   TokenKind = "!=="
	PLUS            TokenKind = "+"
	PLUS_PLUS       TokenKind = "++"
	PLUS_ASSIGN     TokenKind = "+="
	MINUS           TokenKind = "-"
	MINUS_MINUS     TokenKind = "--"
	MINUS_ASSIGN    TokenKind = "-="
	MULTIPLY        TokenKind = "*"
	MULTIPLY_ASSIGN TokenKind = "*="
	POWER           TokenKind = "**"
	POWER_ASSIGN    TokenKind = "**="
	DIVIDE          TokenKind = "/"
	DIVIDE_ASSIGN   TokenKind = "/="
	MODULO          TokenKind = "%"
	MODULO_ASSIGN   TokenKind = "%="
	BIT_NOT         TokenKind = "~"
	BIT_AND         TokenKind = "&"
	BIT_AND_ASSIGN  TokenKind = "&="
	LOGICAL_AND     TokenKind = "&&"
	BIT_OR          TokenKind = "|"
	BIT_OR_ASSIGN   TokenKind = "|="
	LOGICAL_OR      TokenKind = "||"
	BIT_XOR         TokenKind = "^"
	BIT_XOR_ASSIGN  TokenKind = "^="
	LT              TokenKind = "<"
	LE              TokenKind = "<="
	LSHIFT          TokenKind = "<<"
	LSHIFT_ASSIGN   TokenKind = "<<="
	GT              TokenKind = ">"
	GE              TokenKind = ">="
	RSHIFT          TokenKind = ">>"
	RSHIFT_ASSIGN   TokenKind = ">>="
	URSHIFT         TokenKind = ">>>"
	URSHIFT_ASSIGN  TokenKind = ">>>="
	QUESTION        TokenKind = "?"
	QUESTION_DOT    TokenKind = "?."
	COALESCE        TokenKind = "??"
	COALESCE_ASSIGN TokenKind = "??="
)

// Token is a single lexical token. Literal is always the raw source slice
// covering [Pos, Pos+len(Literal)), so re-scanning that span reproduces the
// token. Plain decimal integers additionally carry a parsed value.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     int // 0-based byte offset of the first character

	IntValue int64
	HasInt   bool
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Pos + len(t.Literal)
}

func (t Token) String() string {
	if t.Kind == INTEGER && t.HasInt {
		return fmt.Sprintf("Token(INTEGER(%d), pos=%d)", t.IntValue, t.Pos)
	}
	return fmt.Sprintf("Token(%s %q, pos=%d)", string(t.Kind), t.Literal, t.Pos)
}

var keywords = map[string]TokenKind{
	"print":      PRINT,
	"break":      BREAK,
	"do":         DO,
	"instanceof": INSTANCEOF,
	"typeof":     TYPEOF,
	"case":       CASE,
	"else":       ELSE,
	"new":        NEW,
	"var":        VAR,
	"catch":      CATCH,
	"finally":    FINALLY,
	"return":     RETURN,
	"void":       VOID,
	"continue":   CONTINUE,
	"for":        FOR,
	"switch":     SWITCH,
	"while":      WHILE,
	"debugger":   DEBUGGER,
	"function":   FUNCTION,
	"this":       THIS,
	"with":       WITH,
	"default":    DEFAULT,
	"if":         IF,
	"throw":      THROW,
	"delete":     DELETE,
	"in":         IN,
	"try":        TRY,
	"as":         AS,
	"from":       FROM,
	"of":         OF,
	"yield":      YIELD,
	"class":      CLASS,
	"enum":       ENUM,
	"extends":    EXTENDS,
	"super":      SUPER,
	"const":      CONST,
	"export":     EXPORT,
	"import":     IMPORT,
	"async":      ASYNC,
	"await":      AWAIT,
	"null":       NULL,
	"true":       BOOLEAN,
	"false":      BOOLEAN,
}

// Recognized as keywords only when the lexer is in strict mode.
var strictKeywords = map[string]TokenKind{
	"implements": IMPLEMENTS,
	"private":    PRIVATE,
	"public":     PUBLIC,
	"interface":  INTERFACE,
	"package":    PACKAGE,
	"protected":  PROTECTED,
	"static":     STATIC,
}

// LookupIdent maps identifier text to its token kind, honoring the strict
// mode flag for the reserved-word subset and the two kinds of 'let'.
func LookupIdent(ident string, strict bool) TokenKind {
	if ident == "let" {
		if strict {
			return LET_STRICT
		}
		return LET_NONSTRICT
	}
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	if strict {
		if kind, ok := strictKeywords[ident]; ok {
			return kind
		}
	}
	return IDENT
}

var keywordKinds = func() map[TokenKind]bool {
	m := make(map[TokenKind]bool)
	for _, k := range keywords {
		m[k] = true
	}
	for _, k := range strictKeywords {
		m[k] = true
	}
	m[LET_STRICT] = true
	m[LET_NONSTRICT] = true
	return m
}()

// IsKeyword reports whether kind is a reserved word, including literals
// spelled as words ('true', 'null') and the strict-mode subset.
func IsKeyword(kind TokenKind) bool { return keywordKinds[kind] }

// IsPrintHead reports whether kind starts a print-like statement.
func IsPrintHead(kind TokenKind) bool {
	switch kind {
	case PRINT, CONSOLE_LOG, CONSOLE_ERROR, CONSOLE_WARN, CONSOLE_INFO, CONSOLE_SUCCESS:
		return true
	}
	return false
}

var consoleMethods = map[string]TokenKind{
	"log":     CONSOLE_LOG,
	"error":   CONSOLE_ERROR,
	"warn":    CONSOLE_WARN,
	"info":    CONSOLE_INFO,
	"success": CONSOLE_SUCCESS,
}
