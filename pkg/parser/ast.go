package parser

import (
	"fmt"
	"strings"

	"oong/pkg/lexer"
)

// Node is the common interface for everything in the tree.
type Node interface {
	String() string
}

// Statement nodes appear in a Program's statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression nodes appear as initializers and print arguments.
type Expression interface {
	Node
	expressionNode()
}

// Type nodes are parsed from variable type annotations.
type Type interface {
	Node
	typeNode()
}

// Program is the root of every successful parse. Single statements are
// still wrapped in a Program so consumers handle exactly one shape.
type Program struct {
	Statements []Statement `yaml:"statements"`
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// VarDeclStmt is a single retained declarator from a variable statement.
// Type and Value are nil when the annotation or initializer is absent.
type VarDeclStmt struct {
	Name  string     `yaml:"name"`
	Type  Type       `yaml:"type,omitempty"`
	Value Expression `yaml:"value,omitempty"`
}

func (s *VarDeclStmt) statementNode() {}
func (s *VarDeclStmt) String() string {
	var sb strings.Builder
	sb.WriteString("var ")
	sb.WriteString(s.Name)
	if s.Type != nil {
		sb.WriteString(": ")
		sb.WriteString(s.Type.String())
	}
	if s.Value != nil {
		sb.WriteString(" = ")
		sb.WriteString(s.Value.String())
	}
	sb.WriteString(";")
	return sb.String()
}

// PrintStmt is a print-like statement. Origin is the head token kind
// (PRINT or one of the CONSOLE_* kinds) so consumers can vary output
// formatting per origin.
type PrintStmt struct {
	Origin lexer.TokenKind `yaml:"origin"`
	Args   []Expression    `yaml:"args"`
}

func (s *PrintStmt) statementNode() {}
func (s *PrintStmt) String() string {
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s);", headText(s.Origin), strings.Join(parts, ", "))
}

func headText(origin lexer.TokenKind) string {
	switch origin {
	case lexer.CONSOLE_LOG:
		return "console.log"
	case lexer.CONSOLE_ERROR:
		return "console.error"
	case lexer.CONSOLE_WARN:
		return "console.warn"
	case lexer.CONSOLE_INFO:
		return "console.info"
	case lexer.CONSOLE_SUCCESS:
		return "console.success"
	}
	return "print"
}

// Literal carries the raw (or, for strings, unquoted) text of a literal
// argument or initializer. Initializer spans are kept verbatim so that a
// consumer can re-interpret structured values like object literals.
type Literal struct {
	Value string `yaml:"value"`
}

func (e *Literal) expressionNode() {}
func (e *Literal) String() string  { return e.Value }

// Identifier is a bare name reference.
type Identifier struct {
	Name string `yaml:"name"`
}

func (e *Identifier) expressionNode() {}
func (e *Identifier) String() string  { return e.Name }

// CallExpr is a bare call used as a print argument, e.g. print(f(1, x)).
type CallExpr struct {
	Callee string       `yaml:"callee"`
	Args   []Expression `yaml:"args"`
}

func (e *CallExpr) expressionNode() {}
func (e *CallExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(parts, ", "))
}

// NamedType is a plain type reference like number or Foo.
type NamedType struct {
	Name string `yaml:"name"`
}

func (t *NamedType) typeNode() {}
func (t *NamedType) String() string { return t.Name }

// GenericType is Base<Args...>.
type GenericType struct {
	Base Type   `yaml:"base"`
	Args []Type `yaml:"args"`
}

func (t *GenericType) typeNode() {}
func (t *GenericType) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Base.String(), strings.Join(parts, ", "))
}

// ArrayType is Element[].
type ArrayType struct {
	Element Type `yaml:"element"`
}

func (t *ArrayType) typeNode() {}
func (t *ArrayType) String() string { return t.Element.String() + "[]" }

// UnionType is A | B | C, flattened left to right.
type UnionType struct {
	Options []Type `yaml:"options"`
}

func (t *UnionType) typeNode() {}
func (t *UnionType) String() string {
	parts := make([]string, len(t.Options))
	for i, o := range t.Options {
		parts[i] = o.String()
	}
	return strings.Join(parts, " | ")
}

// IntersectionType is A & B & C, flattened left to right.
type IntersectionType struct {
	Parts []Type `yaml:"parts"`
}

func (t *IntersectionType) typeNode() {}
func (t *IntersectionType) String() string {
	parts := make([]string, len(t.Parts))
	for i, p := range t.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " & ")
}

// RawType keeps the verbatim source of a structural type the annotation
// grammar does not model field by field, such as object or tuple types.
type RawType struct {
	Raw string `yaml:"raw"`
}

func (t *RawType) typeNode() {}
func (t *RawType) String() string { return t.Raw }
