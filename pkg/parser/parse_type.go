package parser

import (
	"fmt"
	"strings"

	"oong/pkg/lexer"
)

// parseTypeAnnotation parses the type after a ':'. Unions and
// intersections associate left; chains of the same operator flatten into
// a single node.
func (p *Parser) parseTypeAnnotation() (Type, error) {
	t, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	for {
		switch p.kind() {
		case lexer.BIT_OR:
			p.advance()
			rhs, err := p.parsePrimaryType()
			if err != nil {
				return nil, err
			}
			if u, ok := t.(*UnionType); ok {
				u.Options = append(u.Options, rhs)
			} else {
				t = &UnionType{Options: []Type{t, rhs}}
			}
		case lexer.BIT_AND:
			p.advance()
			rhs, err := p.parsePrimaryType()
			if err != nil {
				return nil, err
			}
			if x, ok := t.(*IntersectionType); ok {
				x.Parts = append(x.Parts, rhs)
			} else {
				t = &IntersectionType{Parts: []Type{t, rhs}}
			}
		default:
			return t, nil
		}
	}
}

func (p *Parser) parsePrimaryType() (Type, error) {
	var t Type
	switch {
	case p.kind() == lexer.LPAREN:
		p.advance()
		inner, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		t = inner
	case p.kind() == lexer.LBRACE:
		// object types keep their verbatim source
		raw, err := p.rawBalancedSpan(lexer.LBRACE, lexer.RBRACE)
		if err != nil {
			return nil, err
		}
		t = &RawType{Raw: raw}
	case p.kind() == lexer.LBRACKET:
		// tuple types keep their verbatim source
		raw, err := p.rawBalancedSpan(lexer.LBRACKET, lexer.RBRACKET)
		if err != nil {
			return nil, err
		}
		t = &RawType{Raw: raw}
	case p.kind() == lexer.STRING, isNumericKind(p.kind()),
		p.kind() == lexer.NULL, p.kind() == lexer.BOOLEAN, p.kind() == lexer.VOID:
		// literal types
		t = &NamedType{Name: p.tok().Literal}
		p.advance()
	case p.isIdentLike(), p.kind() == lexer.TYPEOF:
		name := p.identName()
		wasTypeof := p.kind() == lexer.TYPEOF
		p.advance()
		if wasTypeof {
			if !p.isIdentLike() {
				return nil, fmt.Errorf("expected name after 'typeof', found %q", p.describeTok())
			}
			name += " " + p.identName()
			p.advance()
		}
		for p.kind() == lexer.DOT {
			p.advance()
			if !p.isIdentLike() && !lexer.IsKeyword(p.kind()) {
				return nil, fmt.Errorf("expected type name after '.', found %q", p.describeTok())
			}
			name += "." + p.identName()
			p.advance()
		}
		t = &NamedType{Name: name}
		if p.kind() == lexer.LT {
			args, err := p.parseGenericArgs()
			if err != nil {
				return nil, err
			}
			t = &GenericType{Base: t, Args: args}
		}
	default:
		return nil, fmt.Errorf("expected type, found %q", p.describeTok())
	}

	// postfix array suffixes bind tighter than '|' and '&'
	for p.kind() == lexer.LBRACKET {
		m := p.mark()
		p.advance()
		if p.kind() != lexer.RBRACKET {
			p.reset(m)
			break
		}
		p.advance()
		t = &ArrayType{Element: t}
	}
	return t, nil
}

func (p *Parser) parseGenericArgs() ([]Type, error) {
	p.advance() // '<'
	var args []Type
	for {
		a, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.kind() != lexer.COMMA {
			break
		}
		p.advance()
	}
	switch p.kind() {
	case lexer.GT:
		p.advance()
	case lexer.RSHIFT:
		// '>>' closes two nested argument lists; hand the second '>'
		// back by rewriting the buffered token in place
		p.rewriteTok(lexer.Token{Kind: lexer.GT, Literal: ">", Pos: p.tok().Pos + 1})
	case lexer.URSHIFT:
		p.rewriteTok(lexer.Token{Kind: lexer.RSHIFT, Literal: ">>", Pos: p.tok().Pos + 1})
	case lexer.GE:
		p.rewriteTok(lexer.Token{Kind: lexer.ASSIGN, Literal: "=", Pos: p.tok().Pos + 1})
	default:
		return nil, fmt.Errorf("expected '>' to close type arguments, found %q", p.describeTok())
	}
	return args, nil
}

func (p *Parser) rawBalancedSpan(open, close lexer.TokenKind) (string, error) {
	start := p.tok().Pos
	if err := p.skipBalanced(open, close); err != nil {
		return "", err
	}
	return strings.TrimSpace(p.lx.Source()[start:p.prevEnd()]), nil
}
