package parser

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"oong/pkg/errors"
	"oong/pkg/lexer"
)

const debugParser = false

func debugPrint(format string, args ...interface{}) {
	if debugParser {
		fmt.Printf("[Parser Debug] "+format+"\n", args...)
	}
}

// RecoveryMode controls what the parser does with input the grammar
// cannot place.
type RecoveryMode int

const (
	// RecoveryStrict fails on the first unplaceable token.
	RecoveryStrict RecoveryMode = iota
	// RecoverySkipUnknown skips unrecognized tokens at the top level and
	// inside class bodies, always advancing at least one token so the
	// parse terminates.
	RecoverySkipUnknown
)

// Config carries parser options.
type Config struct {
	Recovery      RecoveryMode
	ValidateRegex bool
}

// Parser is a recursive-descent parser over a memoized token stream.
// Tokens are pulled from the lexer once and buffered; speculative rules
// checkpoint and restore an index into the buffer, never the lexer.
type Parser struct {
	lx   *lexer.Lexer
	cfg  Config
	toks []lexer.Token
	cur  int

	// template-hole bookkeeping, applied only when lexing new tokens at
	// the buffer frontier so speculation replays stay consistent
	braceDepth int
	holes      []int

	// journal of buffered tokens rewritten in place (compound '>' splits
	// in type arguments), unwound when a checkpoint restore rewinds over
	// the rewrite so a replay sees the original token
	rewrites []tokenRewrite
}

type tokenRewrite struct {
	idx int
	tok lexer.Token
}

// NewParser creates a parser with default options.
func NewParser(l *lexer.Lexer) *Parser { return NewParserWithConfig(l, Config{}) }

// NewParserWithConfig creates a parser with explicit options.
func NewParserWithConfig(l *lexer.Lexer, cfg Config) *Parser {
	p := &Parser{lx: l, cfg: cfg}
	p.toks = append(p.toks, l.NextToken())
	return p
}

func (p *Parser) tok() lexer.Token      { return p.toks[p.cur] }
func (p *Parser) kind() lexer.TokenKind { return p.toks[p.cur].Kind }

// advance steps to the next token, lexing it on first visit. When the
// token being stepped over is the '}' that closes a template hole, the
// lexer is switched back to template mode before the next token is read.
func (p *Parser) advance() {
	if p.kind() == lexer.EOF {
		return
	}
	p.cur++
	if p.cur < len(p.toks) {
		return
	}
	prev := p.toks[p.cur-1]
	switch prev.Kind {
	case lexer.LBRACE:
		p.braceDepth++
	case lexer.TEMPLATE_START:
		p.holes = append(p.holes, p.braceDepth)
	case lexer.RBRACE:
		if n := len(p.holes); n > 0 && p.braceDepth == p.holes[n-1] {
			p.holes = p.holes[:n-1]
			p.lx.ProcessTemplateCloseBrace()
		} else {
			p.braceDepth--
		}
	}
	p.toks = append(p.toks, p.lx.NextToken())
}

func (p *Parser) mark() int { return p.cur }

func (p *Parser) reset(m int) {
	for n := len(p.rewrites); n > 0; n = len(p.rewrites) {
		r := p.rewrites[n-1]
		if r.idx < m {
			break
		}
		p.toks[r.idx] = r.tok
		p.rewrites = p.rewrites[:n-1]
	}
	p.cur = m
}

// rewriteTok replaces the current buffered token, journaling the original
// so reset can undo it.
func (p *Parser) rewriteTok(tok lexer.Token) {
	p.rewrites = append(p.rewrites, tokenRewrite{idx: p.cur, tok: p.toks[p.cur]})
	p.toks[p.cur] = tok
}

func (p *Parser) prevEnd() int {
	if p.cur == 0 {
		return 0
	}
	return p.toks[p.cur-1].End()
}

// lineTerminatorAhead reports whether a line terminator occurs between
// the previous token and the current one.
func (p *Parser) lineTerminatorAhead() bool {
	return p.lx.ContainsLineTerminatorBetween(p.prevEnd(), p.tok().Pos)
}

func (p *Parser) describeTok() string {
	t := p.tok()
	if t.Kind == lexer.EOF {
		return "end of input"
	}
	return t.Literal
}

func (p *Parser) expect(k lexer.TokenKind) error {
	if p.kind() != k {
		return fmt.Errorf("expected %q, found %q", string(k), p.describeTok())
	}
	p.advance()
	return nil
}

func (p *Parser) syntaxErrorf(format string, args ...interface{}) error {
	return errors.NewSyntaxError(p.lx.Source(), p.tok().Pos, fmt.Sprintf(format, args...))
}

// ruleResult is the outcome of a statement rule. A nil *ruleResult means
// the rule does not apply at the current token and consumed nothing; a
// non-nil result with err set means the rule matched and then hit a
// grammar violation.
type ruleResult struct {
	stmts []Statement
	err   error
}

func done(stmts ...Statement) *ruleResult { return &ruleResult{stmts: stmts} }
func fail(err error) *ruleResult          { return &ruleResult{err: err} }
func failf(format string, args ...interface{}) *ruleResult {
	return &ruleResult{err: fmt.Errorf(format, args...)}
}

// Parse consumes the whole input and returns the Program, or the first
// syntax error. A single statement still comes back wrapped in a Program.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}
	for p.kind() != lexer.EOF {
		start := p.cur
		r := p.parseStatement()
		if r == nil {
			if p.cfg.Recovery == RecoverySkipUnknown {
				debugPrint("skipping unrecognized token %s", p.tok())
				p.advance()
				continue
			}
			return nil, p.syntaxErrorf("unexpected token %q", p.describeTok())
		}
		if r.err != nil {
			return nil, errors.NewSyntaxError(p.lx.Source(), p.tok().Pos, r.err.Error())
		}
		prog.Statements = append(prog.Statements, r.stmts...)
		if p.cur == start {
			// a rule must consume input; advance to guarantee progress
			p.advance()
		}
	}
	return prog, nil
}

// parseStatement tries each statement form in order. Rules that need
// lookahead restore the token index themselves before returning nil.
func (p *Parser) parseStatement() *ruleResult {
	if r := p.parseBlock(); r != nil {
		return r
	}
	if r := p.parseVariableStatement(); r != nil {
		return r
	}
	if r := p.parseClassDeclaration(); r != nil {
		return r
	}
	if r := p.parseFunctionDeclaration(); r != nil {
		return r
	}
	if r := p.parseEmptyStatement(); r != nil {
		return r
	}
	if r := p.parseImportStatement(); r != nil {
		return r
	}
	if r := p.parseExportStatement(); r != nil {
		return r
	}
	if r := p.parsePrintStatement(); r != nil {
		return r
	}
	if r := p.parseLabelledStatement(); r != nil {
		return r
	}
	if r := p.parseExpressionStatement(); r != nil {
		return r
	}
	if r := p.parseIfStatement(); r != nil {
		return r
	}
	if r := p.parseIterationStatement(); r != nil {
		return r
	}
	if r := p.parseContinueStatement(); r != nil {
		return r
	}
	if r := p.parseBreakStatement(); r != nil {
		return r
	}
	if r := p.parseReturnStatement(); r != nil {
		return r
	}
	if r := p.parseYieldStatement(); r != nil {
		return r
	}
	if r := p.parseWithStatement(); r != nil {
		return r
	}
	if r := p.parseSwitchStatement(); r != nil {
		return r
	}
	if r := p.parseThrowStatement(); r != nil {
		return r
	}
	if r := p.parseTryStatement(); r != nil {
		return r
	}
	if r := p.parseDebuggerStatement(); r != nil {
		return r
	}
	return nil
}

// requireStatement parses a statement in a position where one must occur.
func (p *Parser) requireStatement() error {
	r := p.parseStatement()
	if r == nil {
		return fmt.Errorf("expected statement, found %q", p.describeTok())
	}
	return r.err
}

// parseEOS consumes a statement terminator. Besides an explicit ';' the
// terminator may be end of input, an upcoming '}' (left for the enclosing
// block) or a line terminator since the previous token.
func (p *Parser) parseEOS() error {
	switch {
	case p.kind() == lexer.SEMI:
		p.advance()
		return nil
	case p.kind() == lexer.EOF:
		return nil
	case p.kind() == lexer.RBRACE:
		return nil
	case p.lineTerminatorAhead():
		return nil
	}
	return fmt.Errorf("expected ';' or line break, found %q", p.describeTok())
}

func (p *Parser) parseBlock() *ruleResult {
	if p.kind() != lexer.LBRACE {
		return nil
	}
	p.advance()
	for {
		r := p.parseStatement()
		if r == nil {
			break
		}
		if r.err != nil {
			return r
		}
	}
	if err := p.expect(lexer.RBRACE); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseEmptyStatement() *ruleResult {
	if p.kind() != lexer.SEMI {
		return nil
	}
	p.advance()
	return done()
}

func (p *Parser) parseVariableStatement() *ruleResult {
	switch p.kind() {
	case lexer.VAR, lexer.CONST, lexer.LET_STRICT, lexer.LET_NONSTRICT:
	default:
		return nil
	}
	p.advance()
	var stmts []Statement
	for {
		st, err := p.parseVariableDeclaration()
		if err != nil {
			return fail(err)
		}
		if st != nil {
			stmts = append(stmts, st)
		}
		if p.kind() != lexer.COMMA {
			break
		}
		p.advance()
	}
	if err := p.parseEOS(); err != nil {
		return fail(err)
	}
	return done(stmts...)
}

// parseVariableDeclaration parses one declarator: a binding name or
// destructuring pattern, an optional type annotation, and an optional
// initializer. Destructuring declarators are validated but not retained,
// so the returned statement may be nil with a nil error.
func (p *Parser) parseVariableDeclaration() (Statement, error) {
	var name string
	switch {
	case p.isIdentLike():
		name = p.identName()
		p.advance()
	case p.kind() == lexer.LBRACKET:
		if err := p.skipBalanced(lexer.LBRACKET, lexer.RBRACKET); err != nil {
			return nil, err
		}
	case p.kind() == lexer.LBRACE:
		if err := p.skipBalanced(lexer.LBRACE, lexer.RBRACE); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("expected binding name or pattern, found %q", p.describeTok())
	}

	var typ Type
	if p.kind() == lexer.COLON {
		p.advance()
		t, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		typ = t
	}

	var value Expression
	if p.kind() == lexer.ASSIGN {
		p.advance()
		start := p.tok().Pos
		if err := p.requireSingleExpression(); err != nil {
			return nil, err
		}
		// initializers keep their verbatim span so consumers can
		// re-interpret structured values like object literals
		raw := strings.TrimSpace(p.lx.Source()[start:p.prevEnd()])
		value = &Literal{Value: raw}
	}

	if name == "" {
		return nil, nil
	}
	return &VarDeclStmt{Name: name, Type: typ, Value: value}, nil
}

// parseAssignable parses a binding position: a name or a destructuring
// pattern. Used by catch parameters and for-in/of heads.
func (p *Parser) parseAssignable() error {
	switch {
	case p.isIdentLike():
		p.advance()
		return nil
	case p.kind() == lexer.LBRACKET:
		return p.skipBalanced(lexer.LBRACKET, lexer.RBRACKET)
	case p.kind() == lexer.LBRACE:
		return p.skipBalanced(lexer.LBRACE, lexer.RBRACE)
	}
	return fmt.Errorf("expected binding name or pattern, found %q", p.describeTok())
}

func (p *Parser) parseClassDeclaration() *ruleResult {
	if p.kind() != lexer.CLASS {
		return nil
	}
	p.advance()
	if p.isIdentLike() {
		p.advance()
	}
	if err := p.parseClassTail(); err != nil {
		return fail(err)
	}
	return done()
}

// parseClassTail parses the optional extends clause and the class body.
// Under RecoverySkipUnknown, unplaceable body tokens are skipped one at a
// time instead of failing the parse.
func (p *Parser) parseClassTail() error {
	if p.kind() == lexer.EXTENDS {
		p.advance()
		if err := p.requireSingleExpression(); err != nil {
			return err
		}
	}
	if err := p.expect(lexer.LBRACE); err != nil {
		return err
	}
	for p.kind() != lexer.RBRACE && p.kind() != lexer.EOF {
		before := p.cur
		ok, err := p.parseClassElement()
		if err != nil {
			return err
		}
		if !ok {
			if p.cfg.Recovery != RecoverySkipUnknown {
				return fmt.Errorf("unexpected token %q in class body", p.describeTok())
			}
			debugPrint("skipping unrecognized class element token %s", p.tok())
			p.advance()
			continue
		}
		if p.cur == before {
			p.advance()
		}
	}
	return p.expect(lexer.RBRACE)
}

func (p *Parser) parseClassElement() (bool, error) {
	if p.kind() == lexer.SEMI {
		p.advance()
		return true, nil
	}

	// static initialization block
	if p.kind() == lexer.STATIC || (p.kind() == lexer.IDENT && p.tok().Literal == "static") {
		m := p.mark()
		p.advance()
		if p.kind() == lexer.LBRACE {
			return true, p.skipBalanced(lexer.LBRACE, lexer.RBRACE)
		}
		p.reset(m)
	}

	p.skipClassModifiers()

	if p.kind() == lexer.MULTIPLY {
		p.advance()
	}

	// accessors need lookahead: 'get' may also be a member named get
	if p.kind() == lexer.IDENT && (p.tok().Literal == "get" || p.tok().Literal == "set") {
		m := p.mark()
		p.advance()
		if p.classElementNameAhead() {
			if err := p.parseClassElementName(); err != nil {
				return true, err
			}
			return true, p.parseFunctionRemainder()
		}
		p.reset(m)
	}

	if !p.classElementNameAhead() {
		return false, nil
	}
	if err := p.parseClassElementName(); err != nil {
		return true, err
	}

	if p.kind() == lexer.LPAREN {
		return true, p.parseFunctionRemainder()
	}

	// field definition
	if p.kind() == lexer.COLON {
		p.advance()
		if _, err := p.parseTypeAnnotation(); err != nil {
			return true, err
		}
	}
	if p.kind() == lexer.ASSIGN {
		p.advance()
		if err := p.requireSingleExpression(); err != nil {
			return true, err
		}
	}
	if p.kind() == lexer.SEMI {
		p.advance()
		return true, nil
	}
	return true, p.parseEOS()
}

// skipClassModifiers consumes leading member modifiers. A modifier word
// immediately followed by a member tail is the member name itself and is
// left in place.
func (p *Parser) skipClassModifiers() {
	for {
		switch p.kind() {
		case lexer.STATIC, lexer.PRIVATE, lexer.PUBLIC, lexer.PROTECTED, lexer.ASYNC:
		case lexer.IDENT:
			// outside strict mode the modifier words lex as identifiers
			switch p.tok().Literal {
			case "static", "public", "private", "protected":
			default:
				return
			}
		default:
			return
		}
		m := p.mark()
		p.advance()
		switch p.kind() {
		case lexer.LPAREN, lexer.ASSIGN, lexer.COLON, lexer.SEMI, lexer.RBRACE:
			p.reset(m)
			return
		}
	}
}

func (p *Parser) classElementNameAhead() bool {
	switch p.kind() {
	case lexer.HASHTAG:
		return true
	}
	return p.propertyNameAhead()
}

func (p *Parser) parseClassElementName() error {
	if p.kind() == lexer.HASHTAG {
		p.advance()
		if !p.isIdentLike() && !lexer.IsKeyword(p.kind()) {
			return fmt.Errorf("expected private member name after '#', found %q", p.describeTok())
		}
		p.advance()
		return nil
	}
	return p.parsePropertyName()
}

func (p *Parser) propertyNameAhead() bool {
	switch {
	case p.kind() == lexer.LBRACKET, p.kind() == lexer.STRING:
		return true
	case isNumericKind(p.kind()):
		return true
	}
	return p.isIdentLike() || lexer.IsKeyword(p.kind())
}

func (p *Parser) parsePropertyName() error {
	switch {
	case p.kind() == lexer.LBRACKET:
		// computed name
		p.advance()
		if err := p.requireSingleExpression(); err != nil {
			return err
		}
		return p.expect(lexer.RBRACKET)
	case p.kind() == lexer.STRING, isNumericKind(p.kind()):
		p.advance()
		return nil
	case p.isIdentLike(), lexer.IsKeyword(p.kind()):
		p.advance()
		return nil
	}
	return fmt.Errorf("expected property name, found %q", p.describeTok())
}

func (p *Parser) parseFunctionDeclaration() *ruleResult {
	m := p.mark()
	if p.kind() == lexer.ASYNC {
		p.advance()
		if p.kind() != lexer.FUNCTION || p.lineTerminatorAhead() {
			p.reset(m)
			return nil
		}
	}
	if p.kind() != lexer.FUNCTION {
		p.reset(m)
		return nil
	}
	p.advance()
	if p.kind() == lexer.MULTIPLY {
		p.advance()
	}
	if !p.isIdentLike() {
		return failf("expected function name, found %q", p.describeTok())
	}
	p.advance()
	if err := p.parseFunctionRemainder(); err != nil {
		return fail(err)
	}
	return done()
}

// parseFunctionRemainder consumes '(params)' and '{body}' by depth
// counting, with an optional ': type' return annotation between them.
// Nested bodies are not analyzed; only top-level statements are retained.
func (p *Parser) parseFunctionRemainder() error {
	if err := p.skipBalanced(lexer.LPAREN, lexer.RPAREN); err != nil {
		return err
	}
	if p.kind() == lexer.COLON {
		p.advance()
		if _, err := p.parseTypeAnnotation(); err != nil {
			return err
		}
	}
	return p.skipBalanced(lexer.LBRACE, lexer.RBRACE)
}

// skipBalanced consumes a balanced open...close run, counting only the
// given pair. Strings, comments and template atoms reach the parser as
// single tokens, so token-level counting is safe.
func (p *Parser) skipBalanced(open, close lexer.TokenKind) error {
	if p.kind() != open {
		return fmt.Errorf("expected %q, found %q", string(open), p.describeTok())
	}
	depth := 0
	for {
		switch p.kind() {
		case open:
			depth++
		case close:
			depth--
		case lexer.EOF:
			return fmt.Errorf("expected %q before end of input", string(close))
		}
		p.advance()
		if depth == 0 {
			return nil
		}
	}
}

func (p *Parser) parseImportStatement() *ruleResult {
	if p.kind() != lexer.IMPORT {
		return nil
	}
	p.advance()
	switch p.kind() {
	case lexer.STRING:
		p.advance()
	case lexer.ILLEGAL:
		return failf("invalid module specifier %q", p.tok().Literal)
	default:
		if err := p.parseImportFromBlock(); err != nil {
			return fail(err)
		}
	}
	if err := p.parseEOS(); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseImportFromBlock() error {
	// optional default binding
	if p.isIdentLike() {
		p.advance()
		if p.kind() != lexer.COMMA {
			return p.parseFromClause()
		}
		p.advance()
	}
	switch p.kind() {
	case lexer.MULTIPLY:
		p.advance()
		if p.kind() == lexer.AS {
			p.advance()
			if !p.isIdentLike() {
				return fmt.Errorf("expected namespace alias, found %q", p.describeTok())
			}
			p.advance()
		}
	case lexer.LBRACE:
		if err := p.parseModuleItems(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("expected import bindings, found %q", p.describeTok())
	}
	return p.parseFromClause()
}

func (p *Parser) parseFromClause() error {
	if err := p.expect(lexer.FROM); err != nil {
		return err
	}
	switch p.kind() {
	case lexer.STRING:
		p.advance()
		return nil
	case lexer.ILLEGAL:
		return fmt.Errorf("invalid module specifier %q", p.tok().Literal)
	}
	return fmt.Errorf("expected module specifier string, found %q", p.describeTok())
}

// parseModuleItems parses '{ name (as alias)? , ... }' with an optional
// trailing comma. String names cover "export strings" re-export syntax.
func (p *Parser) parseModuleItems() error {
	if err := p.expect(lexer.LBRACE); err != nil {
		return err
	}
	for p.kind() != lexer.RBRACE {
		if !p.isIdentLike() && !lexer.IsKeyword(p.kind()) && p.kind() != lexer.STRING {
			return fmt.Errorf("expected import or export name, found %q", p.describeTok())
		}
		p.advance()
		if p.kind() == lexer.AS {
			p.advance()
			if !p.isIdentLike() && !lexer.IsKeyword(p.kind()) && p.kind() != lexer.STRING {
				return fmt.Errorf("expected alias name, found %q", p.describeTok())
			}
			p.advance()
		}
		if p.kind() != lexer.COMMA {
			break
		}
		p.advance()
	}
	return p.expect(lexer.RBRACE)
}

func (p *Parser) parseExportStatement() *ruleResult {
	if p.kind() != lexer.EXPORT {
		return nil
	}
	p.advance()

	if p.kind() == lexer.DEFAULT {
		p.advance()
		if r := p.parseClassDeclaration(); r != nil {
			return r
		}
		if r := p.parseFunctionDeclaration(); r != nil {
			return r
		}
		if err := p.requireSingleExpression(); err != nil {
			return fail(err)
		}
		if err := p.parseEOS(); err != nil {
			return fail(err)
		}
		return done()
	}

	if p.kind() == lexer.MULTIPLY {
		p.advance()
		if p.kind() == lexer.AS {
			p.advance()
			if !p.isIdentLike() {
				return failf("expected namespace alias, found %q", p.describeTok())
			}
			p.advance()
		}
		if err := p.parseFromClause(); err != nil {
			return fail(err)
		}
		if err := p.parseEOS(); err != nil {
			return fail(err)
		}
		return done()
	}

	if p.kind() == lexer.LBRACE {
		if err := p.parseModuleItems(); err != nil {
			return fail(err)
		}
		if p.kind() == lexer.FROM {
			if err := p.parseFromClause(); err != nil {
				return fail(err)
			}
		}
		if err := p.parseEOS(); err != nil {
			return fail(err)
		}
		return done()
	}

	// exported declaration; retained declarators pass through
	if r := p.parseVariableStatement(); r != nil {
		return r
	}
	if r := p.parseClassDeclaration(); r != nil {
		return r
	}
	if r := p.parseFunctionDeclaration(); r != nil {
		return r
	}
	return failf("expected declaration or export clause after 'export', found %q", p.describeTok())
}

func (p *Parser) parsePrintStatement() *ruleResult {
	if !lexer.IsPrintHead(p.kind()) {
		return nil
	}
	origin := p.kind()
	p.advance()
	if err := p.expect(lexer.LPAREN); err != nil {
		return fail(err)
	}
	var args []Expression
	for p.kind() != lexer.RPAREN {
		arg, err := p.parsePrintArgument()
		if err != nil {
			return fail(err)
		}
		args = append(args, arg)
		if p.kind() != lexer.COMMA {
			break
		}
		p.advance()
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return fail(err)
	}
	if err := p.parseEOS(); err != nil {
		return fail(err)
	}
	return done(&PrintStmt{Origin: origin, Args: args})
}

// parsePrintArgument keeps the argument shapes a consumer can resolve:
// literals (strings arrive unquoted), bare names, and bare calls. Anything
// more structured is validated as an expression and retained verbatim.
func (p *Parser) parsePrintArgument() (Expression, error) {
	t := p.tok()
	switch {
	case t.Kind == lexer.STRING:
		p.advance()
		return &Literal{Value: unquoteString(t.Literal)}, nil
	case isNumericKind(t.Kind), t.Kind == lexer.BOOLEAN, t.Kind == lexer.NULL:
		p.advance()
		return &Literal{Value: t.Literal}, nil
	case t.Kind == lexer.ILLEGAL:
		return nil, fmt.Errorf("malformed token %q", t.Literal)
	}

	if p.isIdentLike() {
		m := p.mark()
		name := p.identName()
		p.advance()
		if p.kind() == lexer.LPAREN {
			p.advance()
			var callArgs []Expression
			for p.kind() != lexer.RPAREN {
				a, err := p.parsePrintArgument()
				if err != nil {
					return nil, err
				}
				callArgs = append(callArgs, a)
				if p.kind() != lexer.COMMA {
					break
				}
				p.advance()
			}
			if err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			if p.kind() == lexer.RPAREN || p.kind() == lexer.COMMA {
				return &CallExpr{Callee: name, Args: callArgs}, nil
			}
			p.reset(m)
		} else if p.kind() == lexer.RPAREN || p.kind() == lexer.COMMA {
			return &Identifier{Name: name}, nil
		} else {
			p.reset(m)
		}
	}

	start := p.tok().Pos
	if err := p.requireSingleExpression(); err != nil {
		return nil, err
	}
	raw := strings.TrimSpace(p.lx.Source()[start:p.prevEnd()])
	return &Literal{Value: raw}, nil
}

func (p *Parser) parseLabelledStatement() *ruleResult {
	if !p.isIdentLike() {
		return nil
	}
	m := p.mark()
	p.advance()
	if p.kind() != lexer.COLON {
		p.reset(m)
		return nil
	}
	p.advance()
	if err := p.requireStatement(); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseExpressionStatement() *ruleResult {
	// '{' opens a block and 'function' starts a declaration; neither
	// begins an expression statement. A leading ILLEGAL token is left
	// for the dispatcher so recovery can skip it.
	if p.kind() == lexer.LBRACE || p.kind() == lexer.FUNCTION || p.kind() == lexer.ILLEGAL {
		return nil
	}
	ok, err := p.parseExpressionSequence()
	if err != nil {
		return fail(err)
	}
	if !ok {
		return nil
	}
	if err := p.parseEOS(); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseIfStatement() *ruleResult {
	if p.kind() != lexer.IF {
		return nil
	}
	p.advance()
	if err := p.expect(lexer.LPAREN); err != nil {
		return fail(err)
	}
	if err := p.requireExpressionSequence(); err != nil {
		return fail(err)
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return fail(err)
	}
	if err := p.requireStatement(); err != nil {
		return fail(err)
	}
	if p.kind() == lexer.ELSE {
		p.advance()
		if err := p.requireStatement(); err != nil {
			return fail(err)
		}
	}
	return done()
}

func (p *Parser) parseIterationStatement() *ruleResult {
	switch p.kind() {
	case lexer.DO:
		p.advance()
		if err := p.requireStatement(); err != nil {
			return fail(err)
		}
		if err := p.expect(lexer.WHILE); err != nil {
			return fail(err)
		}
		if err := p.expect(lexer.LPAREN); err != nil {
			return fail(err)
		}
		if err := p.requireExpressionSequence(); err != nil {
			return fail(err)
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return fail(err)
		}
		if err := p.parseEOS(); err != nil {
			return fail(err)
		}
		return done()
	case lexer.WHILE:
		p.advance()
		if err := p.expect(lexer.LPAREN); err != nil {
			return fail(err)
		}
		if err := p.requireExpressionSequence(); err != nil {
			return fail(err)
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return fail(err)
		}
		if err := p.requireStatement(); err != nil {
			return fail(err)
		}
		return done()
	case lexer.FOR:
		return p.parseForStatement()
	}
	return nil
}

// parseForStatement handles the classic three-clause form and the in/of
// forms. 'in' is suppressed as a binary operator while parsing the
// initializer so 'for (x in y)' is not swallowed by the init expression.
func (p *Parser) parseForStatement() *ruleResult {
	p.advance()
	if p.kind() == lexer.AWAIT {
		p.advance()
	}
	if err := p.expect(lexer.LPAREN); err != nil {
		return fail(err)
	}

	sawDecl := false
	switch p.kind() {
	case lexer.SEMI:
	case lexer.VAR, lexer.CONST, lexer.LET_STRICT, lexer.LET_NONSTRICT:
		sawDecl = true
		p.advance()
		if _, err := p.parseVariableDeclaration(); err != nil {
			return fail(err)
		}
	default:
		if err := p.requireSingleExpressionNoIn(); err != nil {
			return fail(err)
		}
	}

	if p.kind() == lexer.IN || p.kind() == lexer.OF {
		p.advance()
		if err := p.requireSingleExpression(); err != nil {
			return fail(err)
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return fail(err)
		}
		if err := p.requireStatement(); err != nil {
			return fail(err)
		}
		return done()
	}

	for p.kind() == lexer.COMMA {
		p.advance()
		if sawDecl {
			if _, err := p.parseVariableDeclaration(); err != nil {
				return fail(err)
			}
		} else if err := p.requireSingleExpressionNoIn(); err != nil {
			return fail(err)
		}
	}
	if err := p.expect(lexer.SEMI); err != nil {
		return fail(err)
	}
	if p.kind() != lexer.SEMI {
		if err := p.requireExpressionSequence(); err != nil {
			return fail(err)
		}
	}
	if err := p.expect(lexer.SEMI); err != nil {
		return fail(err)
	}
	if p.kind() != lexer.RPAREN {
		if err := p.requireExpressionSequence(); err != nil {
			return fail(err)
		}
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return fail(err)
	}
	if err := p.requireStatement(); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseContinueStatement() *ruleResult {
	if p.kind() != lexer.CONTINUE {
		return nil
	}
	p.advance()
	// label only attaches when no line terminator intervenes
	if p.isIdentLike() && !p.lineTerminatorAhead() {
		p.advance()
	}
	if err := p.parseEOS(); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseBreakStatement() *ruleResult {
	if p.kind() != lexer.BREAK {
		return nil
	}
	p.advance()
	if p.isIdentLike() && !p.lineTerminatorAhead() {
		p.advance()
	}
	if err := p.parseEOS(); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseReturnStatement() *ruleResult {
	if p.kind() != lexer.RETURN {
		return nil
	}
	p.advance()
	// a line terminator ends the statement here: 'return \n x' returns
	// nothing and x becomes its own statement
	if !p.lineTerminatorAhead() && p.expressionAhead() {
		if err := p.requireExpressionSequence(); err != nil {
			return fail(err)
		}
	}
	if err := p.parseEOS(); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseYieldStatement() *ruleResult {
	if p.kind() != lexer.YIELD {
		return nil
	}
	p.advance()
	if !p.lineTerminatorAhead() {
		if p.kind() == lexer.MULTIPLY {
			p.advance()
			if err := p.requireSingleExpression(); err != nil {
				return fail(err)
			}
		} else if p.expressionAhead() {
			if err := p.requireExpressionSequence(); err != nil {
				return fail(err)
			}
		}
	}
	if err := p.parseEOS(); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseWithStatement() *ruleResult {
	if p.kind() != lexer.WITH {
		return nil
	}
	p.advance()
	if err := p.expect(lexer.LPAREN); err != nil {
		return fail(err)
	}
	if err := p.requireExpressionSequence(); err != nil {
		return fail(err)
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return fail(err)
	}
	if err := p.requireStatement(); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseSwitchStatement() *ruleResult {
	if p.kind() != lexer.SWITCH {
		return nil
	}
	p.advance()
	if err := p.expect(lexer.LPAREN); err != nil {
		return fail(err)
	}
	if err := p.requireExpressionSequence(); err != nil {
		return fail(err)
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return fail(err)
	}
	if err := p.expect(lexer.LBRACE); err != nil {
		return fail(err)
	}
	seenDefault := false
	for p.kind() == lexer.CASE || p.kind() == lexer.DEFAULT {
		if p.kind() == lexer.CASE {
			p.advance()
			if err := p.requireExpressionSequence(); err != nil {
				return fail(err)
			}
		} else {
			if seenDefault {
				return failf("duplicate default clause in switch")
			}
			seenDefault = true
			p.advance()
		}
		if err := p.expect(lexer.COLON); err != nil {
			return fail(err)
		}
		for {
			r := p.parseStatement()
			if r == nil {
				break
			}
			if r.err != nil {
				return r
			}
		}
	}
	if err := p.expect(lexer.RBRACE); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseThrowStatement() *ruleResult {
	if p.kind() != lexer.THROW {
		return nil
	}
	p.advance()
	if p.lineTerminatorAhead() {
		return failf("line break not allowed after 'throw'")
	}
	if err := p.requireExpressionSequence(); err != nil {
		return fail(err)
	}
	if err := p.parseEOS(); err != nil {
		return fail(err)
	}
	return done()
}

func (p *Parser) parseTryStatement() *ruleResult {
	if p.kind() != lexer.TRY {
		return nil
	}
	p.advance()
	r := p.parseBlock()
	if r == nil {
		return failf("expected block after 'try', found %q", p.describeTok())
	}
	if r.err != nil {
		return r
	}
	handled := false
	if p.kind() == lexer.CATCH {
		p.advance()
		if p.kind() == lexer.LPAREN {
			p.advance()
			if err := p.parseAssignable(); err != nil {
				return fail(err)
			}
			if err := p.expect(lexer.RPAREN); err != nil {
				return fail(err)
			}
		}
		cb := p.parseBlock()
		if cb == nil {
			return failf("expected block after 'catch', found %q", p.describeTok())
		}
		if cb.err != nil {
			return cb
		}
		handled = true
	}
	if p.kind() == lexer.FINALLY {
		p.advance()
		fb := p.parseBlock()
		if fb == nil {
			return failf("expected block after 'finally', found %q", p.describeTok())
		}
		if fb.err != nil {
			return fb
		}
		handled = true
	}
	if !handled {
		return failf("expected 'catch' or 'finally' after try block")
	}
	return done()
}

func (p *Parser) parseDebuggerStatement() *ruleResult {
	if p.kind() != lexer.DEBUGGER {
		return nil
	}
	p.advance()
	if err := p.parseEOS(); err != nil {
		return fail(err)
	}
	return done()
}

// isIdentLike reports whether the current token can serve as a name in a
// binding or reference position. Soft keywords count; hard reserved words
// do not.
func (p *Parser) isIdentLike() bool {
	switch p.kind() {
	case lexer.IDENT, lexer.AS, lexer.FROM, lexer.OF, lexer.ASYNC,
		lexer.LET_NONSTRICT:
		return true
	}
	return false
}

func isNumericKind(k lexer.TokenKind) bool {
	switch k {
	case lexer.INTEGER, lexer.DECIMAL, lexer.BIGINT,
		lexer.HEX, lexer.BIGINT_HEX,
		lexer.OCTAL, lexer.OCTAL_LEGACY, lexer.BIGINT_OCTAL,
		lexer.BINARY, lexer.BIGINT_BINARY:
		return true
	}
	return false
}

// identName returns the current identifier's text with unicode escapes
// decoded and the result folded to NFC, so spellings that differ only in
// normalization form name the same binding.
func (p *Parser) identName() string {
	raw := p.tok().Literal
	plain := true
	for i := 0; i < len(raw); i++ {
		if raw[i] >= 0x80 || raw[i] == '\\' {
			plain = false
			break
		}
	}
	if plain {
		return raw
	}
	return norm.NFC.String(decodeIdentEscapes(raw))
}

func decodeIdentEscapes(raw string) string {
	if !strings.Contains(raw, "\\") {
		return raw
	}
	var sb strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] != '\\' || i+1 >= len(raw) || raw[i+1] != 'u' {
			sb.WriteByte(raw[i])
			i++
			continue
		}
		j := i + 2
		var hex string
		if j < len(raw) && raw[j] == '{' {
			k := strings.IndexByte(raw[j:], '}')
			if k < 0 {
				sb.WriteByte(raw[i])
				i++
				continue
			}
			hex = raw[j+1 : j+k]
			j += k + 1
		} else if j+4 <= len(raw) {
			hex = raw[j : j+4]
			j += 4
		} else {
			sb.WriteByte(raw[i])
			i++
			continue
		}
		v, err := strconv.ParseUint(strings.ReplaceAll(hex, "_", ""), 16, 32)
		if err != nil {
			sb.WriteString(raw[i:j])
			i = j
			continue
		}
		sb.WriteRune(rune(v))
		i = j
	}
	return sb.String()
}

// unquoteString strips the surrounding quotes from a string token and
// decodes the common escape sequences. Unrecognized escapes keep the
// escaped character verbatim.
func unquoteString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, "\\") {
		return body
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case 'x':
			if i+2 < len(body) {
				if v, err := strconv.ParseUint(body[i+1:i+3], 16, 8); err == nil {
					sb.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			sb.WriteByte('x')
		case 'u':
			if i+1 < len(body) && body[i+1] == '{' {
				if k := strings.IndexByte(body[i+1:], '}'); k > 1 {
					if v, err := strconv.ParseUint(body[i+2:i+1+k], 16, 32); err == nil {
						sb.WriteRune(rune(v))
						i += k + 1
						continue
					}
				}
			} else if i+4 < len(body) {
				if v, err := strconv.ParseUint(body[i+1:i+5], 16, 32); err == nil {
					sb.WriteRune(rune(v))
					i += 4
					continue
				}
			}
			sb.WriteByte('u')
		default:
			// line continuations and identity escapes
			if body[i] == '\n' || body[i] == '\r' {
				if body[i] == '\r' && i+1 < len(body) && body[i+1] == '\n' {
					i++
				}
				continue
			}
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}
