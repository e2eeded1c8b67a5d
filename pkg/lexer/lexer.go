package lexer

// Config carries explicit lexer configuration. Strict mode gates the
// reserved-word subset and legacy octal literals; it is fixed for the
// lifetime of the lexer rather than toggled mid-scan.
type Config struct {
	StrictMode bool
}

// Lexer produces one token at a time from an in-memory source buffer.
// A Lexer is not safe for concurrent use.
type Lexer struct {
	src        string
	pos        int // current byte offset; monotonically non-decreasing
	strict     bool
	inTemplate bool // scanning template-string atoms instead of tokens
}

// NewLexer creates a lexer with default (non-strict) configuration.
func NewLexer(input string) *Lexer {
	return &Lexer{src: input}
}

// NewLexerWithConfig creates a lexer with explicit configuration.
func NewLexerWithConfig(input string, cfg Config) *Lexer {
	return &Lexer{src: input, strict: cfg.StrictMode}
}

// Source returns the underlying source buffer.
func (l *Lexer) Source() string { return l.src }

// StrictMode reports whether the lexer was configured strict.
func (l *Lexer) StrictMode() bool { return l.strict }

// ProcessTemplateCloseBrace resumes template-atom scanning. The parser calls
// this after consuming the '}' that closes an expression hole inside a
// template string.
func (l *Lexer) ProcessTemplateCloseBrace() {
	l.inTemplate = true
}

// ContainsLineTerminatorBetween reports whether any line terminator occurs
// in src[from:to]. The parser uses this for automatic semicolon insertion
// and restricted productions.
func (l *Lexer) ContainsLineTerminatorBetween(from, to int) bool {
	if from >= len(l.src) {
		return false
	}
	p := from
	for p < to && p < len(l.src) {
		if lineTerminatorLength(l.src, p) != 0 {
			return true
		}
		p += utf8SequenceLength(l.src[p])
	}
	return false
}

func (l *Lexer) makeToken(kind TokenKind, start, length int) Token {
	return Token{Kind: kind, Literal: l.src[start : start+length], Pos: start}
}

func (l *Lexer) makeIntToken(start, length int, val int64) Token {
	t := l.makeToken(INTEGER, start, length)
	t.IntValue = val
	t.HasInt = true
	return t
}

// NextToken scans and returns the next token. At end of input it returns an
// EOF token on every call. Malformed input never fails hard; it yields an
// ILLEGAL token carrying the offending span.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.pos
	if l.pos >= len(l.src) {
		return l.makeToken(EOF, len(l.src), 0)
	}

	if l.inTemplate {
		return l.scanTemplateAtom()
	}

	c := l.src[l.pos]
	l.pos++

	// Identifier / keyword: ASCII ident-start, backslash unicode escape,
	// or any non-ASCII lead byte.
	if isIdentStart(c) || c == '\\' || c&0x80 != 0 {
		return l.scanIdentifier(start, c)
	}

	// Numeric literal, including the leading-dot form '.5'.
	if isDigit(c) || (c == '.' && l.pos < len(l.src) && isDigit(l.src[l.pos])) {
		return l.scanNumber(start, c)
	}

	if c == '"' || c == '\'' {
		return l.scanString(start, c)
	}

	switch c {
	case '`':
		l.inTemplate = true
		return l.makeToken(BACKTICK, start, 1)
	case '#':
		return l.makeToken(HASHTAG, start, 1)
	case '(':
		return l.makeToken(LPAREN, start, 1)
	case ')':
		return l.makeToken(RPAREN, start, 1)
	case '{':
		return l.makeToken(LBRACE, start, 1)
	case '}':
		return l.makeToken(RBRACE, start, 1)
	case '[':
		return l.makeToken(LBRACKET, start, 1)
	case ']':
		return l.makeToken(RBRACKET, start, 1)
	case ';':
		return l.makeToken(SEMI, start, 1)
	case ',':
		return l.makeToken(COMMA, start, 1)
	case ':':
		return l.makeToken(COLON, start, 1)
	case '~':
		return l.makeToken(BIT_NOT, start, 1)
	case '.':
		// '...' or '.'
		if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && l.src[l.pos+1] == '.' {
			l.pos += 2
			return l.makeToken(ELLIPSIS, start, 3)
		}
		return l.makeToken(DOT, start, 1)
	case '=':
		// '=>' then '===' then '==' then '='
		if l.peekIs('>') {
			l.pos++
			return l.makeToken(ARROW, start, 2)
		}
		if l.peekIs2('=', '=') {
			l.pos += 2
			return l.makeToken(STRICT_EQ, start, 3)
		}
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(EQ, start, 2)
		}
		return l.makeToken(ASSIGN, start, 1)
	case '!':
		if l.peekIs2('=', '=') {
			l.pos += 2
			return l.makeToken(STRICT_NOT_EQ, start, 3)
		}
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(NOT_EQ, start, 2)
		}
		return l.makeToken(NOT, start, 1)
	case '+':
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(PLUS_ASSIGN, start, 2)
		}
		if l.peekIs('+') {
			l.pos++
			return l.makeToken(PLUS_PLUS, start, 2)
		}
		return l.makeToken(PLUS, start, 1)
	case '-':
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(MINUS_ASSIGN, start, 2)
		}
		if l.peekIs('-') {
			l.pos++
			return l.makeToken(MINUS_MINUS, start, 2)
		}
		return l.makeToken(MINUS, start, 1)
	case '*':
		// '**=' then '**' then '*=' then '*'
		if l.peekIs2('*', '=') {
			l.pos += 2
			return l.makeToken(POWER_ASSIGN, start, 3)
		}
		if l.peekIs('*') {
			l.pos++
			return l.makeToken(POWER, start, 2)
		}
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(MULTIPLY_ASSIGN, start, 2)
		}
		return l.makeToken(MULTIPLY, start, 1)
	case '/':
		if l.regexPossible(start) {
			if tok, ok := l.scanRegularExpression(start); ok {
				return tok
			}
			// not a regex; fall through to division
		}
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(DIVIDE_ASSIGN, start, 2)
		}
		return l.makeToken(DIVIDE, start, 1)
	case '%':
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(MODULO_ASSIGN, start, 2)
		}
		return l.makeToken(MODULO, start, 1)
	case '>':
		// '>>>=' then '>>>' then '>>=' then '>>' then '>=' then '>'
		if l.pos+2 < len(l.src) && l.src[l.pos] == '>' && l.src[l.pos+1] == '>' && l.src[l.pos+2] == '=' {
			l.pos += 3
			return l.makeToken(URSHIFT_ASSIGN, start, 4)
		}
		if l.pos+1 < len(l.src) && l.src[l.pos] == '>' && l.src[l.pos+1] == '>' {
			l.pos += 2
			return l.makeToken(URSHIFT, start, 3)
		}
		if l.peekIs2('>', '=') {
			l.pos += 2
			return l.makeToken(RSHIFT_ASSIGN, start, 3)
		}
		if l.peekIs('>') {
			l.pos++
			return l.makeToken(RSHIFT, start, 2)
		}
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(GE, start, 2)
		}
		return l.makeToken(GT, start, 1)
	case '<':
		// '<<=' then '<<' then '<=' then '<'
		if l.peekIs2('<', '=') {
			l.pos += 2
			return l.makeToken(LSHIFT_ASSIGN, start, 3)
		}
		if l.peekIs('<') {
			l.pos++
			return l.makeToken(LSHIFT, start, 2)
		}
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(LE, start, 2)
		}
		return l.makeToken(LT, start, 1)
	case '&':
		if l.peekIs('&') {
			l.pos++
			return l.makeToken(LOGICAL_AND, start, 2)
		}
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(BIT_AND_ASSIGN, start, 2)
		}
		return l.makeToken(BIT_AND, start, 1)
	case '|':
		if l.peekIs('|') {
			l.pos++
			return l.makeToken(LOGICAL_OR, start, 2)
		}
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(BIT_OR_ASSIGN, start, 2)
		}
		return l.makeToken(BIT_OR, start, 1)
	case '^':
		if l.peekIs('=') {
			l.pos++
			return l.makeToken(BIT_XOR_ASSIGN, start, 2)
		}
		return l.makeToken(BIT_XOR, start, 1)
	case '?':
		// '??=' then '??' then '?.' then '?'
		if l.peekIs2('?', '=') {
			l.pos += 2
			return l.makeToken(COALESCE_ASSIGN, start, 3)
		}
		if l.peekIs('?') {
			l.pos++
			return l.makeToken(COALESCE, start, 2)
		}
		if l.peekIs('.') {
			l.pos++
			return l.makeToken(QUESTION_DOT, start, 2)
		}
		return l.makeToken(QUESTION, start, 1)
	}

	return l.makeToken(ILLEGAL, start, 1)
}

func (l *Lexer) peekIs(ch byte) bool {
	return l.pos < len(l.src) && l.src[l.pos] == ch
}

func (l *Lexer) peekIs2(a, b byte) bool {
	return l.pos+1 < len(l.src) && l.src[l.pos] == a && l.src[l.pos+1] == b
}

// skipWhitespace consumes whitespace, line terminators, the hash-bang line
// and all comment forms before the next token.
func (l *Lexer) skipWhitespace() {
	// optional byte-order mark at the start of input
	if l.pos == 0 && len(l.src) >= 3 &&
		l.src[0] == 0xEF && l.src[1] == 0xBB && l.src[2] == 0xBF {
		l.pos = 3
	}
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\t' || c == '\v' || c == '\f' || c == ' ' || c == 0xA0 {
			l.pos++
			continue
		}
		if lt := lineTerminatorLength(l.src, l.pos); lt != 0 {
			l.pos += lt
			continue
		}
		if l.skipHashBang() {
			continue
		}
		if l.skipSingleLineComment() {
			continue
		}
		if l.skipHTMLComment() {
			continue
		}
		if l.skipCDataComment() {
			continue
		}
		if l.skipMultiLineComment() {
			continue
		}
		break
	}
}

// skipHashBang consumes a '#!' line, only at the start of input (offset 0,
// or 3 when a byte-order mark was present).
func (l *Lexer) skipHashBang() bool {
	if l.pos != 0 && l.pos != 3 {
		return false
	}
	if l.pos == 3 && !(l.src[0] == 0xEF && l.src[1] == 0xBB && l.src[2] == 0xBF) {
		return false
	}
	if l.pos+1 >= len(l.src) || l.src[l.pos] != '#' || l.src[l.pos+1] != '!' {
		return false
	}
	l.pos += 2
	for l.pos < len(l.src) && lineTerminatorLength(l.src, l.pos) == 0 {
		l.pos++
	}
	return true
}

func (l *Lexer) skipSingleLineComment() bool {
	if l.src[l.pos] != '/' || l.pos+1 >= len(l.src) || l.src[l.pos+1] != '/' {
		return false
	}
	l.pos += 2
	for l.pos < len(l.src) && lineTerminatorLength(l.src, l.pos) == 0 {
		l.pos++
	}
	return true
}

// skipMultiLineComment consumes '/* ... */' with nesting. Unterminated
// comments consume to end of input.
func (l *Lexer) skipMultiLineComment() bool {
	if l.src[l.pos] != '/' || l.pos+1 >= len(l.src) || l.src[l.pos+1] != '*' {
		return false
	}
	l.pos += 2
	depth := 1
	for l.pos+1 < len(l.src) {
		if l.src[l.pos] == '/' && l.src[l.pos+1] == '*' {
			depth++
			l.pos += 2
			continue
		}
		if l.src[l.pos] == '*' && l.src[l.pos+1] == '/' {
			l.pos += 2
			depth--
			if depth == 0 {
				return true
			}
			continue
		}
		l.pos++
	}
	l.pos = len(l.src)
	return true
}

// skipHTMLComment consumes '<!-- ... -->'; unterminated consumes to EOF.
func (l *Lexer) skipHTMLComment() bool {
	if l.pos+3 >= len(l.src) {
		return false
	}
	if l.src[l.pos] != '<' || l.src[l.pos+1] != '!' || l.src[l.pos+2] != '-' || l.src[l.pos+3] != '-' {
		return false
	}
	l.pos += 4
	for l.pos+2 < len(l.src) {
		if l.src[l.pos] == '-' && l.src[l.pos+1] == '-' && l.src[l.pos+2] == '>' {
			l.pos += 3
			return true
		}
		l.pos++
	}
	l.pos = len(l.src)
	return true
}

// skipCDataComment consumes '<![CDATA[ ... ]]>'; unterminated consumes to EOF.
func (l *Lexer) skipCDataComment() bool {
	const pat = "<![CDATA["
	if l.pos+len(pat)-1 >= len(l.src) {
		return false
	}
	if l.src[l.pos:l.pos+len(pat)] != pat {
		return false
	}
	l.pos += len(pat)
	for l.pos+2 < len(l.src) {
		if l.src[l.pos] == ']' && l.src[l.pos+1] == ']' && l.src[l.pos+2] == '>' {
			l.pos += 3
			return true
		}
		l.pos++
	}
	l.pos = len(l.src)
	return true
}

// scanTemplateAtom scans raw template-string text until a backtick, a '${'
// expression hole, or end of input. Entering a hole leaves template mode so
// normal tokenizing resumes inside it.
func (l *Lexer) scanTemplateAtom() Token {
	atomStart := l.pos
	for l.pos < len(l.src) {
		switch {
		case l.src[l.pos] == '\\':
			if l.pos+1 >= len(l.src) {
				l.pos++ // trailing backslash at EOF
				continue
			}
			if lc := lineContinuationLength(l.src, l.pos); lc != 0 {
				l.pos += lc
				continue
			}
			esc := l.src[l.pos+1]
			switch {
			case esc == 'x':
				q := l.pos + 2
				if q+1 < len(l.src) && isHexDigitFragment(l.src[q]) && isHexDigitFragment(l.src[q+1]) {
					l.pos = q + 2
					continue
				}
				l.pos += 2
				return l.makeToken(ILLEGAL, atomStart, l.pos-atomStart)
			case esc == 'u':
				if n := unicodeEscapeLength(l.src, l.pos); n != 0 {
					l.pos += n
					continue
				}
				l.pos += 2
				return l.makeToken(ILLEGAL, atomStart, l.pos-atomStart)
			case esc == '0':
				// '\0' is valid unless followed by another digit
				if l.pos+2 < len(l.src) && isDigit(l.src[l.pos+2]) {
					l.pos += 2
					return l.makeToken(ILLEGAL, atomStart, l.pos-atomStart)
				}
				l.pos += 2
				continue
			case esc >= '1' && esc <= '9':
				l.pos += 2
				continue
			case isSingleEscapeChar(esc):
				l.pos += 2
				continue
			case esc == '\r' || esc == '\n' || isUTF8LineSeparator(l.src, l.pos+1):
				l.pos += 2
				return l.makeToken(ILLEGAL, atomStart, l.pos-atomStart)
			default:
				// any other escape character is accepted
				l.pos += 2
				continue
			}
		case l.src[l.pos] == '`':
			if l.pos > atomStart {
				return l.makeToken(TEMPLATE_ATOM, atomStart, l.pos-atomStart)
			}
			start := l.pos
			l.pos++
			l.inTemplate = false
			return l.makeToken(BACKTICK, start, 1)
		case l.src[l.pos] == '$' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '{':
			if l.pos > atomStart {
				return l.makeToken(TEMPLATE_ATOM, atomStart, l.pos-atomStart)
			}
			l.pos += 2
			l.inTemplate = false // normal tokenizing inside the hole
			return l.makeToken(TEMPLATE_START, l.pos-2, 2)
		default:
			l.pos++
		}
	}
	// end of input while in template mode
	if l.pos > atomStart {
		return l.makeToken(TEMPLATE_ATOM, atomStart, l.pos-atomStart)
	}
	return l.makeToken(ILLEGAL, atomStart, 0)
}

// scanIdentifier scans an identifier or keyword. The lead byte has already
// been consumed. Continues over identifier characters, unicode escapes,
// zero-width joiner/non-joiner code points and multi-byte sequences.
func (l *Lexer) scanIdentifier(start int, lead byte) Token {
	if lead == '\\' {
		// the backslash must begin a unicode escape; rewind so the loop
		// below validates it
		l.pos = start
	}
	for l.pos < len(l.src) {
		nc := l.src[l.pos]
		if isIdentPart(nc) {
			l.pos++
			continue
		}
		if nc&0x80 != 0 {
			if isUTF8ZWNJorZWJ(l.src, l.pos) {
				l.pos += 3
				continue
			}
			l.pos += utf8SequenceLength(nc)
			continue
		}
		if nc == '\\' {
			if n := unicodeEscapeLength(l.src, l.pos); n != 0 {
				l.pos += n
				continue
			}
			break
		}
		break
	}
	text := l.src[start:l.pos]
	if text == "\\" {
		return l.makeToken(ILLEGAL, start, 1)
	}
	// console.log / console.error / ... lex as single statement-head tokens
	if text == "console" && l.peekIs('.') {
		if tok, ok := l.scanConsoleHead(start); ok {
			return tok
		}
	}
	kind := LookupIdent(text, l.strict)
	return l.makeToken(kind, start, len(text))
}

// scanConsoleHead tries to extend "console" with ".method" into a
// print-like head token. Restores position when the member is not one of
// the known methods.
func (l *Lexer) scanConsoleHead(start int) (Token, bool) {
	dot := l.pos // at '.'
	p := dot + 1
	nameStart := p
	for p < len(l.src) && isIdentPart(l.src[p]) {
		p++
	}
	kind, ok := consoleMethods[l.src[nameStart:p]]
	if !ok {
		return Token{}, false
	}
	l.pos = p
	return l.makeToken(kind, start, p-start), true
}

// scanNumber scans numeric literals: plain integers with a computed value,
// decimals with fraction/exponent, radix-prefixed forms and their 'n'
// big-integer variants. The lead byte has already been consumed.
func (l *Lexer) scanNumber(start int, lead byte) Token {
	isDecDigit := func(ch byte) bool { return isDigit(ch) || ch == '_' }

	// radix prefixes on a leading '0'
	if lead == '0' && l.pos < len(l.src) {
		switch l.src[l.pos] {
		case 'x', 'X':
			l.pos++
			if !(l.pos < len(l.src) && isHexDigitFragment(l.src[l.pos]) && l.src[l.pos] != '_') {
				// no digit after the prefix: emit the bare '0' and leave
				// the letter for the next token
				l.pos = start + 1
				return l.makeIntToken(start, 1, 0)
			}
			for l.pos < len(l.src) && isHexDigitFragment(l.src[l.pos]) {
				l.pos++
			}
			if l.peekIs('n') {
				l.pos++
				return l.makeToken(BIGINT_HEX, start, l.pos-start)
			}
			return l.makeToken(HEX, start, l.pos-start)
		case 'b', 'B':
			l.pos++
			if !(l.pos < len(l.src) && (l.src[l.pos] == '0' || l.src[l.pos] == '1')) {
				l.pos = start + 1
				return l.makeIntToken(start, 1, 0)
			}
			for l.pos < len(l.src) && (l.src[l.pos] == '0' || l.src[l.pos] == '1' || l.src[l.pos] == '_') {
				l.pos++
			}
			if l.peekIs('n') {
				l.pos++
				return l.makeToken(BIGINT_BINARY, start, l.pos-start)
			}
			return l.makeToken(BINARY, start, l.pos-start)
		case 'o', 'O':
			l.pos++
			if !(l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '7') {
				l.pos = start + 1
				return l.makeIntToken(start, 1, 0)
			}
			for l.pos < len(l.src) && ((l.src[l.pos] >= '0' && l.src[l.pos] <= '7') || l.src[l.pos] == '_') {
				l.pos++
			}
			if l.peekIs('n') {
				l.pos++
				return l.makeToken(BIGINT_OCTAL, start, l.pos-start)
			}
			return l.makeToken(OCTAL, start, l.pos-start)
		}

		// legacy octal 0NNN, outside strict mode only
		if !l.strict && l.src[l.pos] >= '0' && l.src[l.pos] <= '7' {
			for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '7' {
				l.pos++
			}
			if l.peekIs('n') {
				l.pos++
				return l.makeToken(BIGINT_OCTAL, start, l.pos-start)
			}
			return l.makeToken(OCTAL_LEGACY, start, l.pos-start)
		}

		// '0' followed by a decimal digit is not a valid multi-digit
		// integer; emit the '0' alone
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos = start + 1
			return l.makeIntToken(start, 1, 0)
		}
	}

	hasDigitsBeforeDot := isDigit(lead)
	if hasDigitsBeforeDot {
		for l.pos < len(l.src) && isDecDigit(l.src[l.pos]) {
			l.pos++
		}
	}

	isDecimal := false
	if l.peekIs('.') {
		if l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
			isDecimal = true
			l.pos++
			for l.pos < len(l.src) && isDecDigit(l.src[l.pos]) {
				l.pos++
			}
		} else if !hasDigitsBeforeDot {
			// lone '.' with no digits on either side: backtrack to a dot
			l.pos = start + 1
			return l.makeToken(DOT, start, 1)
		}
	}
	if lead == '.' {
		// leading-dot form '.5'
		isDecimal = true
		for l.pos < len(l.src) && isDecDigit(l.src[l.pos]) {
			l.pos++
		}
	}

	// exponent [eE][+-]?[0-9]+
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		expPos := l.pos + 1
		if expPos < len(l.src) && (l.src[expPos] == '+' || l.src[expPos] == '-') {
			expPos++
		}
		if expPos < len(l.src) && isDecDigit(l.src[expPos]) {
			l.pos++
			if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
				l.pos++
			}
			for l.pos < len(l.src) && isDecDigit(l.src[l.pos]) {
				l.pos++
			}
			isDecimal = true
		}
	}

	// big-integer suffix on plain decimal integers
	if !isDecimal && hasDigitsBeforeDot && l.peekIs('n') {
		l.pos++
		return l.makeToken(BIGINT, start, l.pos-start)
	}

	if isDecimal {
		return l.makeToken(DECIMAL, start, l.pos-start)
	}

	// plain integer: compute the value inline, skipping separators
	var val int64
	for i := start; i < l.pos; i++ {
		if l.src[i] == '_' {
			continue
		}
		val = val*10 + int64(l.src[i]-'0')
	}
	return l.makeIntToken(start, l.pos-start, val)
}

// scanString scans a single- or double-quoted string literal. The token text
// is the raw span including quotes. A raw line terminator before the closing
// quote, an invalid escape, or end of input yield an ILLEGAL token.
func (l *Lexer) scanString(start int, quote byte) Token {
	p := l.pos // after the opening quote
	terminated := false
	for p < len(l.src) {
		ch := l.src[p]
		p++
		if ch == quote {
			terminated = true
			break
		}
		if ch == '\\' {
			if lc := lineContinuationLength(l.src, p-1); lc != 0 {
				p += lc - 1
				continue
			}
			if p >= len(l.src) {
				break
			}
			esc := l.src[p]
			switch {
			case esc == 'x':
				q := p + 1
				if q+1 < len(l.src) && isHexDigitFragment(l.src[q]) && isHexDigitFragment(l.src[q+1]) {
					p = q + 2
					continue
				}
				// q+1 may point one past the end when input stops at the 'x'
				l.pos = q + 1
				if l.pos > len(l.src) {
					l.pos = len(l.src)
				}
				return l.makeToken(ILLEGAL, start, l.pos-start)
			case esc == 'u':
				if n := unicodeEscapeLength(l.src, p-1); n != 0 {
					p += n - 1
					continue
				}
				l.pos = p + 1
				return l.makeToken(ILLEGAL, start, l.pos-start)
			case esc == '0' && p+1 < len(l.src) && isDigit(l.src[p+1]):
				// octal-like escape is invalid
				l.pos = p + 1
				return l.makeToken(ILLEGAL, start, l.pos-start)
			case isSingleEscapeChar(esc) || esc == quote:
				p++
				continue
			case esc >= '1' && esc <= '9':
				p++
				continue
			case esc == '\r' || esc == '\n' || isUTF8LineSeparator(l.src, p):
				l.pos = p + 1
				return l.makeToken(ILLEGAL, start, l.pos-start)
			default:
				p++
				continue
			}
		}
		// a raw line terminator makes the string unterminated
		if lineTerminatorLength(l.src, p-1) != 0 {
			break
		}
	}
	l.pos = p
	if terminated {
		return l.makeToken(STRING, start, p-start)
	}
	return l.makeToken(ILLEGAL, start, p-start)
}

// regexPossible decides whether a '/' at tokenStart may begin a regex
// literal. Scanning backward over whitespace, line terminators and comments,
// the previous significant character must be absent (start of input) or one
// of '(', ',', '=', ':', '[', '!', '?', '{', '}'.
func (l *Lexer) regexPossible(tokenStart int) bool {
	if tokenStart == 0 {
		return true
	}
	p := tokenStart - 1
	for p >= 0 {
		ch := l.src[p]
		if ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f' || ch == 0xA0 {
			p--
			continue
		}
		// line terminators: '\n', '\r', and the final byte of U+2028/29
		if ch == '\n' || ch == '\r' {
			p--
			continue
		}
		if p >= 2 && isUTF8LineSeparator(l.src, p-2) {
			p -= 3
			continue
		}
		switch ch {
		case '(', ',', '=', ':', '[', '!', '?', '{', '}':
			return true
		}
		return false
	}
	return true
}

// scanRegularExpression scans a regex literal body and flags. The position
// is just past the opening '/'. Returns false when no regex starts here, so
// the caller falls back to division operators.
func (l *Lexer) scanRegularExpression(start int) (Token, bool) {
	p := l.pos
	firstLen := regexFirstCharLength(l.src, p)
	if firstLen == 0 {
		return Token{}, false
	}
	p += firstLen

	for p < len(l.src) {
		if l.src[p] == '/' {
			p++
			// optional flags: identifier characters or unicode escapes
			for p < len(l.src) {
				fc := l.src[p]
				if isIdentPart(fc) {
					p++
					continue
				}
				if fc == '\\' {
					if n := unicodeEscapeLength(l.src, p); n != 0 {
						p += n
						continue
					}
				}
				break
			}
			l.pos = p
			return l.makeToken(REGEX, start, p-start), true
		}
		clen := regexCharLength(l.src, p)
		if clen == 0 {
			// line terminator or invalid sequence inside the body
			l.pos = p
			return l.makeToken(ILLEGAL, start, p-start), true
		}
		p += clen
	}

	// unterminated regex literal
	l.pos = p
	return l.makeToken(ILLEGAL, start, p-start), true
}
