package parser

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"oong/pkg/lexer"
)

// Expression rules validate structure without building nodes; statements
// retain what a consumer needs (declarators and print arguments) as raw
// spans or resolved shapes.

func (p *Parser) parseExpressionSequence() (bool, error) {
	ok, err := p.parseSingleExpr(false)
	if !ok || err != nil {
		return ok, err
	}
	for p.kind() == lexer.COMMA {
		p.advance()
		if err := p.requireSingleExpression(); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (p *Parser) requireExpressionSequence() error {
	ok, err := p.parseExpressionSequence()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expected expression, found %q", p.describeTok())
	}
	return nil
}

func (p *Parser) parseSingleExpression() (bool, error) {
	return p.parseSingleExpr(false)
}

func (p *Parser) requireSingleExpression() error {
	ok, err := p.parseSingleExpr(false)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expected expression, found %q", p.describeTok())
	}
	return nil
}

func (p *Parser) requireSingleExpressionNoIn() error {
	ok, err := p.parseSingleExpr(true)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expected expression, found %q", p.describeTok())
	}
	return nil
}

// parseSingleExpr validates a unary operand followed by any run of binary,
// assignment and conditional tails. Precedence does not matter for
// validation, so the tails are consumed in one flat loop.
func (p *Parser) parseSingleExpr(noIn bool) (bool, error) {
	ok, err := p.parseUnaryExpression()
	if !ok || err != nil {
		return ok, err
	}
	for {
		k := p.kind()
		if k == lexer.IN && noIn {
			break
		}
		if isBinaryOp(k) || isAssignmentOp(k) {
			opText := p.tok().Literal
			p.advance()
			ok, err := p.parseUnaryExpression()
			if err != nil {
				return true, err
			}
			if !ok {
				return true, fmt.Errorf("expected expression after %q", opText)
			}
			continue
		}
		if k == lexer.QUESTION {
			p.advance()
			if err := p.requireSingleExpression(); err != nil {
				return true, err
			}
			if err := p.expect(lexer.COLON); err != nil {
				return true, err
			}
			if err := p.requireSingleExpression(); err != nil {
				return true, err
			}
			continue
		}
		break
	}
	return true, nil
}

func (p *Parser) parseUnaryExpression() (bool, error) {
	switch p.kind() {
	case lexer.NOT, lexer.BIT_NOT, lexer.PLUS, lexer.MINUS,
		lexer.PLUS_PLUS, lexer.MINUS_MINUS,
		lexer.TYPEOF, lexer.DELETE, lexer.VOID, lexer.AWAIT:
		op := p.tok().Literal
		p.advance()
		ok, err := p.parseUnaryExpression()
		if err != nil {
			return true, err
		}
		if !ok {
			return true, fmt.Errorf("expected expression after %q", op)
		}
		return true, nil
	case lexer.NEW:
		p.advance()
		if p.kind() == lexer.DOT {
			// new.target
			p.advance()
			if !p.isIdentLike() {
				return true, fmt.Errorf("expected property name after 'new.', found %q", p.describeTok())
			}
			p.advance()
			return p.parsePostfix()
		}
		ok, err := p.parseUnaryExpression()
		if err != nil {
			return true, err
		}
		if !ok {
			return true, fmt.Errorf("expected constructor expression after 'new'")
		}
		return true, nil
	}
	ok, err := p.parsePrimaryExpression()
	if !ok || err != nil {
		return ok, err
	}
	return p.parsePostfix()
}

func (p *Parser) parsePrimaryExpression() (bool, error) {
	switch {
	case p.kind() == lexer.ILLEGAL:
		return true, fmt.Errorf("malformed token %q", p.tok().Literal)
	case isNumericKind(p.kind()),
		p.kind() == lexer.STRING, p.kind() == lexer.BOOLEAN, p.kind() == lexer.NULL,
		p.kind() == lexer.THIS, p.kind() == lexer.SUPER:
		p.advance()
		return true, nil
	case p.kind() == lexer.REGEX:
		if p.cfg.ValidateRegex {
			if err := validateRegexLiteral(p.tok().Literal); err != nil {
				return true, err
			}
		}
		p.advance()
		return true, nil
	case p.kind() == lexer.BACKTICK:
		return true, p.parseTemplateLiteral()
	case p.kind() == lexer.LBRACKET:
		return true, p.parseArrayLiteral()
	case p.kind() == lexer.LBRACE:
		return true, p.parseObjectLiteral()
	case p.kind() == lexer.CLASS:
		p.advance()
		if p.isIdentLike() {
			p.advance()
		}
		return true, p.parseClassTail()
	case p.kind() == lexer.FUNCTION:
		return true, p.parseFunctionExpression()
	}

	if p.kind() == lexer.ASYNC {
		m := p.mark()
		p.advance()
		if p.kind() == lexer.FUNCTION && !p.lineTerminatorAhead() {
			return true, p.parseFunctionExpression()
		}
		p.reset(m)
	}

	if ok, err := p.tryArrowFunction(); ok || err != nil {
		return ok, err
	}

	switch {
	case p.kind() == lexer.LPAREN:
		p.advance()
		if err := p.requireExpressionSequence(); err != nil {
			return true, err
		}
		return true, p.expect(lexer.RPAREN)
	case p.isIdentLike():
		p.advance()
		return true, nil
	}
	return false, nil
}

// tryArrowFunction speculatively matches an arrow function head. When no
// '=>' follows, the token index is restored and the caller parses the
// same tokens another way.
func (p *Parser) tryArrowFunction() (bool, error) {
	m := p.mark()
	if p.kind() == lexer.ASYNC {
		p.advance()
		if p.lineTerminatorAhead() {
			p.reset(m)
			return false, nil
		}
	}
	switch {
	case p.kind() == lexer.LPAREN:
		if p.skipBalanced(lexer.LPAREN, lexer.RPAREN) != nil {
			p.reset(m)
			return false, nil
		}
	case p.isIdentLike():
		p.advance()
	default:
		p.reset(m)
		return false, nil
	}
	if p.kind() == lexer.COLON {
		// possible return type between parameters and '=>'
		p.advance()
		if _, err := p.parseTypeAnnotation(); err != nil {
			p.reset(m)
			return false, nil
		}
	}
	if p.kind() != lexer.ARROW || p.lineTerminatorAhead() {
		p.reset(m)
		return false, nil
	}
	p.advance()
	if p.kind() == lexer.LBRACE {
		return true, p.skipBalanced(lexer.LBRACE, lexer.RBRACE)
	}
	if err := p.requireSingleExpression(); err != nil {
		return true, err
	}
	return true, nil
}

func (p *Parser) parseFunctionExpression() error {
	p.advance()
	if p.kind() == lexer.MULTIPLY {
		p.advance()
	}
	if p.isIdentLike() {
		p.advance()
	}
	return p.parseFunctionRemainder()
}

// parsePostfix consumes member access, calls, indexing, tagged templates
// and the postfix increment forms. Postfix '++'/'--' do not attach across
// a line terminator.
func (p *Parser) parsePostfix() (bool, error) {
	for {
		switch p.kind() {
		case lexer.DOT:
			p.advance()
			if p.kind() == lexer.HASHTAG {
				p.advance()
			}
			if !p.isIdentLike() && !lexer.IsKeyword(p.kind()) {
				return true, fmt.Errorf("expected property name after '.', found %q", p.describeTok())
			}
			p.advance()
		case lexer.QUESTION_DOT:
			p.advance()
			switch {
			case p.kind() == lexer.LPAREN:
				if err := p.parseArguments(); err != nil {
					return true, err
				}
			case p.kind() == lexer.LBRACKET:
				if err := p.parseIndex(); err != nil {
					return true, err
				}
			default:
				if p.kind() == lexer.HASHTAG {
					p.advance()
				}
				if !p.isIdentLike() && !lexer.IsKeyword(p.kind()) {
					return true, fmt.Errorf("expected property name after '?.', found %q", p.describeTok())
				}
				p.advance()
			}
		case lexer.LBRACKET:
			if err := p.parseIndex(); err != nil {
				return true, err
			}
		case lexer.LPAREN:
			if err := p.parseArguments(); err != nil {
				return true, err
			}
		case lexer.BACKTICK:
			// tagged template
			if err := p.parseTemplateLiteral(); err != nil {
				return true, err
			}
		case lexer.PLUS_PLUS, lexer.MINUS_MINUS:
			if p.lineTerminatorAhead() {
				return true, nil
			}
			p.advance()
		default:
			return true, nil
		}
	}
}

func (p *Parser) parseIndex() error {
	p.advance()
	if err := p.requireExpressionSequence(); err != nil {
		return err
	}
	return p.expect(lexer.RBRACKET)
}

func (p *Parser) parseArguments() error {
	p.advance()
	for p.kind() != lexer.RPAREN {
		if p.kind() == lexer.ELLIPSIS {
			p.advance()
		}
		if err := p.requireSingleExpression(); err != nil {
			return err
		}
		if p.kind() != lexer.COMMA {
			break
		}
		p.advance()
	}
	return p.expect(lexer.RPAREN)
}

// parseTemplateLiteral consumes a template string. The lexer is already
// in template mode after the opening backtick token; advancing past the
// '}' that closes a hole re-enters it via the hole bookkeeping in advance.
func (p *Parser) parseTemplateLiteral() error {
	p.advance()
	for {
		switch p.kind() {
		case lexer.TEMPLATE_ATOM:
			p.advance()
		case lexer.TEMPLATE_START:
			p.advance()
			if err := p.requireExpressionSequence(); err != nil {
				return err
			}
			if err := p.expect(lexer.RBRACE); err != nil {
				return err
			}
		case lexer.BACKTICK:
			p.advance()
			return nil
		case lexer.ILLEGAL, lexer.EOF:
			return fmt.Errorf("unterminated template string")
		default:
			return fmt.Errorf("unexpected token %q in template string", p.describeTok())
		}
	}
}

func (p *Parser) parseArrayLiteral() error {
	p.advance()
	for p.kind() != lexer.RBRACKET {
		if p.kind() == lexer.COMMA {
			// elision
			p.advance()
			continue
		}
		if p.kind() == lexer.ELLIPSIS {
			p.advance()
		}
		if err := p.requireSingleExpression(); err != nil {
			return err
		}
		if p.kind() != lexer.COMMA {
			break
		}
		p.advance()
	}
	return p.expect(lexer.RBRACKET)
}

func (p *Parser) parseObjectLiteral() error {
	p.advance()
	for p.kind() != lexer.RBRACE {
		if err := p.parsePropertyAssignment(); err != nil {
			return err
		}
		if p.kind() != lexer.COMMA {
			break
		}
		p.advance()
	}
	return p.expect(lexer.RBRACE)
}

func (p *Parser) parsePropertyAssignment() error {
	if p.kind() == lexer.ELLIPSIS {
		p.advance()
		return p.requireSingleExpression()
	}

	// accessors need lookahead: 'get' may also be a property named get
	if p.kind() == lexer.IDENT && (p.tok().Literal == "get" || p.tok().Literal == "set") {
		m := p.mark()
		p.advance()
		if p.propertyNameAhead() {
			if err := p.parsePropertyName(); err != nil {
				return err
			}
			return p.parseFunctionRemainder()
		}
		p.reset(m)
	}

	// async and generator methods
	if p.kind() == lexer.ASYNC || p.kind() == lexer.MULTIPLY {
		m := p.mark()
		if p.kind() == lexer.ASYNC {
			p.advance()
		}
		if p.kind() == lexer.MULTIPLY {
			p.advance()
		}
		if p.cur != m && p.propertyNameAhead() {
			if err := p.parsePropertyName(); err != nil {
				return err
			}
			if p.kind() == lexer.LPAREN {
				return p.parseFunctionRemainder()
			}
		}
		p.reset(m)
	}

	if !p.propertyNameAhead() {
		return fmt.Errorf("expected property name, found %q", p.describeTok())
	}
	if err := p.parsePropertyName(); err != nil {
		return err
	}
	switch p.kind() {
	case lexer.COLON:
		p.advance()
		return p.requireSingleExpression()
	case lexer.LPAREN:
		return p.parseFunctionRemainder()
	case lexer.ASSIGN:
		// cover grammar: default value in a destructuring position
		p.advance()
		return p.requireSingleExpression()
	}
	return nil // shorthand
}

// expressionAhead reports whether the current token can begin an
// expression, used by the restricted productions after return and yield.
func (p *Parser) expressionAhead() bool {
	switch p.kind() {
	case lexer.SEMI, lexer.RBRACE, lexer.EOF,
		lexer.RPAREN, lexer.RBRACKET, lexer.COMMA, lexer.COLON:
		return false
	}
	return true
}

// validateRegexLiteral compiles the pattern body in ECMAScript mode so a
// malformed literal fails at parse time rather than in a consumer.
func validateRegexLiteral(lit string) error {
	end := strings.LastIndexByte(lit, '/')
	if end <= 0 {
		return nil
	}
	body := lit[1:end]
	if _, err := regexp2.Compile(body, regexp2.ECMAScript); err != nil {
		return fmt.Errorf("invalid regular expression /%s/", body)
	}
	return nil
}

func isBinaryOp(k lexer.TokenKind) bool {
	switch k {
	case lexer.PLUS, lexer.MINUS, lexer.MULTIPLY, lexer.DIVIDE, lexer.MODULO, lexer.POWER,
		lexer.EQ, lexer.NOT_EQ, lexer.STRICT_EQ, lexer.STRICT_NOT_EQ,
		lexer.LT, lexer.LE, lexer.GT, lexer.GE,
		lexer.LSHIFT, lexer.RSHIFT, lexer.URSHIFT,
		lexer.BIT_AND, lexer.BIT_OR, lexer.BIT_XOR,
		lexer.LOGICAL_AND, lexer.LOGICAL_OR, lexer.COALESCE,
		lexer.IN, lexer.INSTANCEOF:
		return true
	}
	return false
}

func isAssignmentOp(k lexer.TokenKind) bool {
	switch k {
	case lexer.ASSIGN,
		lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.MULTIPLY_ASSIGN,
		lexer.DIVIDE_ASSIGN, lexer.MODULO_ASSIGN, lexer.POWER_ASSIGN,
		lexer.LSHIFT_ASSIGN, lexer.RSHIFT_ASSIGN, lexer.URSHIFT_ASSIGN,
		lexer.BIT_AND_ASSIGN, lexer.BIT_OR_ASSIGN, lexer.BIT_XOR_ASSIGN,
		lexer.COALESCE_ASSIGN:
		return true
	}
	return false
}
