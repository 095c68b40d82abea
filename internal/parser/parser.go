package parser

import (
	"github.com/orizon-lang/kestrel/internal/lexer"
)

// TokenSource is the parser's only contract with the lexer
type TokenSource interface {
	NextToken() lexer.Token
}

// SliceSource replays a fixed token slice. After the slice is exhausted it
// keeps returning EOF.
type SliceSource struct {
	tokens []lexer.Token
	pos    int
}

// NewSliceSource creates a TokenSource over tokens
func NewSliceSource(tokens []lexer.Token) *SliceSource {
	return &SliceSource{tokens: tokens}
}

// NextToken implements TokenSource
func (s *SliceSource) NextToken() lexer.Token {
	if s.pos < len(s.tokens) {
		tok := s.tokens[s.pos]
		s.pos++
		return tok
	}
	return lexer.Token{Type: lexer.TokenEOF}
}

// DefaultMaxDepth bounds expression, block and type nesting
const DefaultMaxDepth = 512

// Option configures a Parser
type Option func(*Parser)

// WithMaxDepth sets the nesting limit. Values below 1 select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		p.maxDepth = n
	}
}

// Parser represents the recursive descent parser.
//
// current and peek form the two-token lookahead window and are only changed by
// nextToken. Once the source yields EOF it is never read again and peek stays
// EOF. errors is append-only. terminated records whether the statement parsed
// last consumed a trailing semicolon; function blocks use it to decide
// implicit return.
type Parser struct {
	source    TokenSource
	current   lexer.Token
	peek      lexer.Token
	exhausted bool
	consumed  int

	errors   ParseErrors
	filename string

	maxDepth      int
	depth         int
	depthReported bool

	terminated bool
}

// NewParser creates a new parser instance
func NewParser(src TokenSource, filename string, opts ...Option) *Parser {
	p := &Parser{
		source:   src,
		filename: filename,
		errors:   make(ParseErrors, 0),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}

	// Read the first two tokens
	p.nextToken()
	p.nextToken()

	return p
}

// New creates a parser reading Kestrel source text
func New(input, filename string, opts ...Option) *Parser {
	return NewParser(lexer.New(input), filename, opts...)
}

// ParseString parses source text in one call
func ParseString(input, filename string, opts ...Option) (*Program, ParseErrors) {
	return New(input, filename, opts...).Parse()
}

// Parse parses the input and returns an AST together with every diagnostic.
// The program is returned even when diagnostics were produced.
func (p *Parser) Parse() (*Program, ParseErrors) {
	program := p.parseProgram()
	return program, p.errors
}

// Errors returns the diagnostics collected so far
func (p *Parser) Errors() ParseErrors {
	return p.errors
}

// Consumed returns how many non-EOF tokens have passed through the cursor
func (p *Parser) Consumed() int {
	return p.consumed
}

// nextToken advances the parser to the next token
func (p *Parser) nextToken() {
	p.current = p.peek
	if p.current.Type != lexer.TokenEOF {
		p.consumed++
	}
	if !p.exhausted {
		p.peek = p.source.NextToken()
		p.exhausted = p.peek.Type == lexer.TokenEOF
	}
}

// currentTokenIs checks if the current token is of the given type
func (p *Parser) currentTokenIs(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

// peekTokenIs checks if the peek token is of the given type
func (p *Parser) peekTokenIs(tokenType lexer.TokenType) bool {
	return p.peek.Type == tokenType
}

// expectPeek advances if the peek token matches the expected type
func (p *Parser) expectPeek(tokenType lexer.TokenType) bool {
	if p.peekTokenIs(tokenType) {
		p.nextToken()
		return true
	}
	p.peekError(tokenType)
	return false
}

// skipSemicolon consumes an optional trailing semicolon and records whether one was present
func (p *Parser) skipSemicolon() {
	p.terminated = false
	if p.peekTokenIs(lexer.TokenSemicolon) {
		p.nextToken()
		p.terminated = true
	}
}

// enter guards recursive productions against unbounded nesting. The limit
// is reported once per parse; every deeper attempt just fails.
func (p *Parser) enter() bool {
	if p.depth >= p.maxDepth {
		if !p.depthReported {
			p.depthReported = true
			p.addError(p.current, "nesting", "maximum nesting depth %d exceeded", p.maxDepth)
		}
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// ====== Grammar Rules ======

// parseProgram parses the entire program. A failed statement is dropped and
// parsing resumes one token later.
func (p *Parser) parseProgram() *Program {
	start := p.current
	statements := make([]Statement, 0)

	for !p.currentTokenIs(lexer.TokenEOF) {
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
		}
		p.nextToken()
	}

	return &Program{
		Span:       SpanBetween(start, p.current),
		Statements: statements,
	}
}

// parseStatement dispatches on the current token
func (p *Parser) parseStatement() Statement {
	switch p.current.Type {
	case lexer.TokenLet:
		return p.parseLetStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenTypeDecl:
		return p.parseTypeStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement parses `let name = expr [;]`
func (p *Parser) parseLetStatement() Statement {
	start := p.current

	if !p.expectPeek(lexer.TokenIdentifier) {
		return nil
	}
	name := &Identifier{Span: TokenToSpan(p.current), Value: p.current.Literal}

	if !p.expectPeek(lexer.TokenAssign) {
		return nil
	}
	p.nextToken()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	p.skipSemicolon()

	return &LetStatement{
		Span:  SpanBetween(start, p.current),
		Name:  name,
		Value: value,
	}
}

// parseReturnStatement parses `return expr [;]`
func (p *Parser) parseReturnStatement() Statement {
	start := p.current
	p.nextToken()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	p.skipSemicolon()

	return &ReturnStatement{
		Span:  SpanBetween(start, p.current),
		Value: value,
	}
}

// parseExpressionStatement parses an expression used as a statement
func (p *Parser) parseExpressionStatement() Statement {
	start := p.current

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	p.skipSemicolon()

	return &ExpressionStatement{
		Span:       SpanBetween(start, p.current),
		Expression: expr,
	}
}

// parseBlock parses statements from the opening brace under current up to the
// matching closing brace, leaving current on `}`. Nested constructs consume
// their own braces. The second result reports whether the last statement
// ended with a semicolon.
func (p *Parser) parseBlock() (*Block, bool) {
	start := p.current
	statements := make([]Statement, 0)
	lastTerminated := false

	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	p.nextToken() // consume opening brace

	for !p.currentTokenIs(lexer.TokenRBrace) && !p.currentTokenIs(lexer.TokenEOF) {
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
			lastTerminated = p.terminated
		}
		p.nextToken()
	}

	if p.currentTokenIs(lexer.TokenEOF) {
		p.currentError(lexer.TokenRBrace)
	}

	return &Block{
		Span:       SpanBetween(start, p.current),
		Statements: statements,
	}, lastTerminated
}
