package lexer

// Scanner primitives: pure byte/codepoint classification over (src, pos).
// Each returns the number of bytes matched, or 0 for no match.

// lineTerminatorLength recognizes '\n', '\r' ('\r\n' counts as one unit)
// and the 3-byte UTF-8 encodings of U+2028/U+2029.
func lineTerminatorLength(src string, pos int) int {
	if pos >= len(src) {
		return 0
	}
	switch src[pos] {
	case '\r':
		if pos+1 < len(src) && src[pos+1] == '\n' {
			return 2
		}
		return 1
	case '\n':
		return 1
	}
	if isUTF8LineSeparator(src, pos) {
		return 3
	}
	return 0
}

// isUTF8LineSeparator detects U+2028 (E2 80 A8) and U+2029 (E2 80 A9).
func isUTF8LineSeparator(src string, pos int) bool {
	if pos+2 >= len(src) {
		return false
	}
	return src[pos] == 0xE2 && src[pos+1] == 0x80 &&
		(src[pos+2] == 0xA8 || src[pos+2] == 0xA9)
}

// isUTF8ZWNJorZWJ detects U+200C (E2 80 8C) and U+200D (E2 80 8D), which
// are valid identifier-continue code points.
func isUTF8ZWNJorZWJ(src string, pos int) bool {
	if pos+2 >= len(src) {
		return false
	}
	return src[pos] == 0xE2 && src[pos+1] == 0x80 &&
		(src[pos+2] == 0x8C || src[pos+2] == 0x8D)
}

// utf8SequenceLength returns the expected sequence length for a UTF-8 lead
// byte. Invalid leads count as a single byte so the scanner always advances.
func utf8SequenceLength(lead byte) int {
	switch {
	case lead&0x80 == 0:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	}
	return 1
}

// lineContinuationLength matches a backslash followed by one-or-more line
// terminators. pos must point at the backslash.
func lineContinuationLength(src string, pos int) int {
	if pos >= len(src) || src[pos] != '\\' {
		return 0
	}
	p := pos + 1
	if lineTerminatorLength(src, p) == 0 {
		return 0
	}
	consumed := 1
	for p < len(src) {
		lt := lineTerminatorLength(src, p)
		if lt == 0 {
			break
		}
		consumed += lt
		p += lt
	}
	return consumed
}

// isHexDigitFragment matches [_0-9a-fA-F]; the underscore is a numeric
// separator allowed inside digit runs.
func isHexDigitFragment(ch byte) bool {
	return ch == '_' ||
		(ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}

// isSingleEscapeChar matches ["\bfnrtv].
func isSingleEscapeChar(ch byte) bool {
	switch ch {
	case '"', '\\', 'b', 'f', 'n', 'r', 't', 'v':
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		ch == '_' || ch == '$'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// Regular-expression fragment scanners.

// regexBackslashSequenceLength matches a backslash escape whose escaped code
// unit is not a line terminator. pos points at the backslash.
func regexBackslashSequenceLength(src string, pos int) int {
	if pos+1 >= len(src) {
		return 0
	}
	if lineTerminatorLength(src, pos+1) != 0 {
		return 0
	}
	n := utf8SequenceLength(src[pos+1])
	if pos+1+(n-1) >= len(src) {
		return 0
	}
	return 1 + n
}

// regexClassLength matches a character class '[...]' including escapes
// inside the class. Returns 0 if unterminated or invalid.
func regexClassLength(src string, pos int) int {
	if pos >= len(src) || src[pos] != '[' {
		return 0
	}
	p := pos + 1
	for p < len(src) {
		switch {
		case src[p] == ']':
			return p - pos + 1
		case src[p] == '\\':
			n := regexBackslashSequenceLength(src, p)
			if n == 0 {
				return 0
			}
			p += n
		case lineTerminatorLength(src, p) != 0:
			return 0
		default:
			p += utf8SequenceLength(src[p])
		}
	}
	return 0
}

// regexFirstCharLength matches a class, a backslash sequence, or any
// non-line-terminator code point other than '/'.
func regexFirstCharLength(src string, pos int) int {
	if pos >= len(src) {
		return 0
	}
	if src[pos] == '[' {
		return regexClassLength(src, pos)
	}
	if src[pos] == '\\' {
		return regexBackslashSequenceLength(src, pos)
	}
	if lineTerminatorLength(src, pos) != 0 {
		return 0
	}
	if src[pos] == '/' {
		return 0
	}
	n := utf8SequenceLength(src[pos])
	if pos+n-1 >= len(src) {
		return 0
	}
	return n
}

// regexCharLength: body characters follow the same rule as the first char.
func regexCharLength(src string, pos int) int {
	return regexFirstCharLength(src, pos)
}

// unicodeEscapeLength matches \uXXXX or \u{X...} starting at the backslash.
func unicodeEscapeLength(src string, pos int) int {
	if pos+1 >= len(src) || src[pos] != '\\' || src[pos+1] != 'u' {
		return 0
	}
	q := pos + 2
	if q+3 < len(src) &&
		isHexDigitFragment(src[q]) && isHexDigitFragment(src[q+1]) &&
		isHexDigitFragment(src[q+2]) && isHexDigitFragment(src[q+3]) {
		return 6
	}
	if q < len(src) && src[q] == '{' {
		r := q + 1
		for r < len(src) && isHexDigitFragment(src[r]) {
			r++
		}
		if r < len(src) && src[r] == '}' && r > q+1 {
			return r + 1 - pos
		}
	}
	return 0
}
