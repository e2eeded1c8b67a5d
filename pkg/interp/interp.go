package interp

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"oong/pkg/errors"
	"oong/pkg/lexer"
	"oong/pkg/parser"
)

// Interpreter is a deliberately small consumer of the parse tree: it
// collects top-level declarations into a flat environment, then renders
// the print statements. It exists to exercise the front end, not to be a
// full evaluator.
type Interpreter struct {
	env   map[string]value
	out   io.Writer
	color bool
}

type valueKind int

const (
	kindUndefined valueKind = iota
	kindNumber
	kindString
	kindBool
	kindNull
	kindObject
)

type value struct {
	kind   valueKind
	text   string
	fields []field // object properties in source order
}

type field struct {
	name string
	val  value
}

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleScalar  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// New creates an interpreter writing to out. Color is off by default.
func New(out io.Writer) *Interpreter {
	return &Interpreter{env: make(map[string]value), out: out}
}

// SetColor toggles ANSI styling of the output.
func (it *Interpreter) SetColor(enabled bool) { it.color = enabled }

// Run walks the program twice: declarations first, then prints, so a
// print may reference a name declared later in the file. A failed write
// to the output surfaces as a RuntimeError.
func (it *Interpreter) Run(prog *parser.Program) error {
	for _, st := range prog.Statements {
		if d, ok := st.(*parser.VarDeclStmt); ok {
			it.env[d.Name] = evalInitializer(d.Value)
		}
	}
	for _, st := range prog.Statements {
		if pr, ok := st.(*parser.PrintStmt); ok {
			if err := it.execPrint(pr); err != nil {
				return err
			}
		}
	}
	return nil
}

func (it *Interpreter) execPrint(ps *parser.PrintStmt) error {
	parts := make([]string, len(ps.Args))
	for i, a := range ps.Args {
		parts[i] = it.renderArg(a)
	}
	line := strings.Join(parts, " ")
	if it.color {
		switch ps.Origin {
		case lexer.CONSOLE_ERROR:
			line = styleError.Render(line)
		case lexer.CONSOLE_WARN:
			line = styleWarn.Render(line)
		case lexer.CONSOLE_INFO:
			line = styleInfo.Render(line)
		case lexer.CONSOLE_SUCCESS:
			line = styleSuccess.Render(line)
		}
	}
	if _, err := fmt.Fprintln(it.out, line); err != nil {
		return &errors.RuntimeError{Msg: "writing output", Cause: err}
	}
	return nil
}

func (it *Interpreter) renderArg(e parser.Expression) string {
	switch a := e.(type) {
	case *parser.Identifier:
		v, ok := it.env[a.Name]
		if !ok {
			return "<undefined>"
		}
		return it.renderValue(v)
	case *parser.CallExpr:
		// calls are not evaluated; show the call shape
		return a.Callee + "()"
	case *parser.Literal:
		return it.renderScalarText(a.Value)
	}
	return e.String()
}

func (it *Interpreter) renderValue(v value) string {
	switch v.kind {
	case kindUndefined:
		return "<undefined>"
	case kindObject:
		parts := make([]string, len(v.fields))
		for i, f := range v.fields {
			parts[i] = f.name + ": " + it.renderValue(f.val)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case kindNumber, kindBool:
		if it.color {
			return styleScalar.Render(v.text)
		}
		return v.text
	}
	return v.text
}

func (it *Interpreter) renderScalarText(text string) string {
	if it.color && (looksNumeric(text) || text == "true" || text == "false") {
		return styleScalar.Render(text)
	}
	return text
}

// evalInitializer turns a retained initializer span into a value. Object
// literals are re-read with a fresh lexer pass over the span.
func evalInitializer(e parser.Expression) value {
	lit, ok := e.(*parser.Literal)
	if !ok || lit == nil {
		return value{kind: kindUndefined, text: "<undefined>"}
	}
	return parseValueText(lit.Value)
}

func parseValueText(raw string) value {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return value{kind: kindUndefined, text: "<undefined>"}
	case raw == "true" || raw == "false":
		return value{kind: kindBool, text: raw}
	case raw == "null":
		return value{kind: kindNull, text: "null"}
	case raw[0] == '{':
		lx := lexer.NewLexer(raw)
		if tok := lx.NextToken(); tok.Kind == lexer.LBRACE {
			return parseObject(lx)
		}
		return value{kind: kindString, text: raw}
	case raw[0] == '"' || raw[0] == '\'':
		return value{kind: kindString, text: trimQuotes(raw)}
	case raw[0] == '`':
		return value{kind: kindString, text: trimQuotes(raw)}
	case looksNumeric(raw):
		return value{kind: kindNumber, text: raw}
	}
	return value{kind: kindString, text: raw}
}

// parseObject reads object properties after the opening brace has been
// consumed. Malformed spans stop early and keep what was read.
func parseObject(lx *lexer.Lexer) value {
	v := value{kind: kindObject}
	for {
		tok := lx.NextToken()
		switch tok.Kind {
		case lexer.RBRACE, lexer.EOF:
			return v
		case lexer.COMMA:
			continue
		}
		name := tok.Literal
		if tok.Kind == lexer.STRING {
			name = trimQuotes(name)
		}
		if colon := lx.NextToken(); colon.Kind != lexer.COLON {
			return v
		}
		v.fields = append(v.fields, field{name: name, val: parsePropertyValue(lx)})
	}
}

func parsePropertyValue(lx *lexer.Lexer) value {
	tok := lx.NextToken()
	switch {
	case tok.Kind == lexer.LBRACE:
		return parseObject(lx)
	case tok.Kind == lexer.LBRACKET:
		return value{kind: kindString, text: readArrayText(lx)}
	case tok.Kind == lexer.STRING:
		return value{kind: kindString, text: trimQuotes(tok.Literal)}
	case tok.Kind == lexer.BOOLEAN:
		return value{kind: kindBool, text: tok.Literal}
	case tok.Kind == lexer.NULL:
		return value{kind: kindNull, text: "null"}
	case tok.Kind == lexer.MINUS:
		next := lx.NextToken()
		return value{kind: kindNumber, text: "-" + next.Literal}
	case isNumericTokenKind(tok.Kind):
		return value{kind: kindNumber, text: tok.Literal}
	}
	return value{kind: kindString, text: tok.Literal}
}

func readArrayText(lx *lexer.Lexer) string {
	var parts []string
	depth := 1
	for depth > 0 {
		tok := lx.NextToken()
		switch tok.Kind {
		case lexer.LBRACKET:
			depth++
		case lexer.RBRACKET:
			depth--
			if depth == 0 {
				continue
			}
		case lexer.EOF:
			depth = 0
			continue
		}
		parts = append(parts, tok.Literal)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func isNumericTokenKind(k lexer.TokenKind) bool {
	switch k {
	case lexer.INTEGER, lexer.DECIMAL, lexer.BIGINT,
		lexer.HEX, lexer.BIGINT_HEX,
		lexer.OCTAL, lexer.OCTAL_LEGACY, lexer.BIGINT_OCTAL,
		lexer.BINARY, lexer.BIGINT_BINARY:
		return true
	}
	return false
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	return err == nil
}
