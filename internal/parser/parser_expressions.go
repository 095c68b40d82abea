package parser

import (
	"strconv"

	"github.com/orizon-lang/kestrel/internal/lexer"
)

// ====== Expression Parsing (Pratt Parser) ======

// Precedence levels for operators, lowest binding first
type Precedence int

const (
	_ Precedence = iota
	LOWEST
	PIPE        // |>
	EQUALS      // == /=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * / % .
	CONS        // :: ++
	PREFIX      // -X !X +X
	BITWISE     // & ^
	CALL        // f(X)
)

// precedences maps token types to their precedence levels.
// Tokens missing from the map bind at LOWEST and end the infix loop.
var precedences = map[lexer.TokenType]Precedence{
	lexer.TokenPipeForward: PIPE,

	lexer.TokenEq: EQUALS,
	lexer.TokenNe: EQUALS,

	lexer.TokenLt: LESSGREATER,
	lexer.TokenGt: LESSGREATER,
	lexer.TokenLe: LESSGREATER,
	lexer.TokenGe: LESSGREATER,

	lexer.TokenPlus:  SUM,
	lexer.TokenMinus: SUM,

	lexer.TokenMul: PRODUCT,
	lexer.TokenDiv: PRODUCT,
	lexer.TokenMod: PRODUCT,
	lexer.TokenDot: PRODUCT,

	lexer.TokenCons:   CONS,
	lexer.TokenConcat: CONS,

	lexer.TokenAmpersand: BITWISE,
	lexer.TokenCaret:     BITWISE,

	lexer.TokenLParen: CALL,
}

// infixOperators maps operator tokens to the AST operator they build
var infixOperators = map[lexer.TokenType]InfixOperator{
	lexer.TokenPlus:        InfixPlus,
	lexer.TokenMinus:       InfixMinus,
	lexer.TokenMul:         InfixProduct,
	lexer.TokenDiv:         InfixDivide,
	lexer.TokenMod:         InfixModulo,
	lexer.TokenDot:         InfixDot,
	lexer.TokenEq:          InfixEqual,
	lexer.TokenNe:          InfixNotEqual,
	lexer.TokenLt:          InfixLessThan,
	lexer.TokenGt:          InfixGreaterThan,
	lexer.TokenLe:          InfixLessEqual,
	lexer.TokenGe:          InfixGreaterEqual,
	lexer.TokenPipeForward: InfixPipe,
	lexer.TokenCons:        InfixCons,
	lexer.TokenConcat:      InfixConcat,
	lexer.TokenAmpersand:   InfixBitAnd,
	lexer.TokenCaret:       InfixBitXor,
}

// peekPrecedence returns the precedence of the peek token
func (p *Parser) peekPrecedence() Precedence {
	if p, ok := precedences[p.peek.Type]; ok {
		return p
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token
func (p *Parser) currentPrecedence() Precedence {
	if p, ok := precedences[p.current.Type]; ok {
		return p
	}
	return LOWEST
}

// parseExpression parses an expression whose operators all bind tighter than
// precedence. Equal precedence stops the loop, so chains associate to the left.
func (p *Parser) parseExpression(precedence Precedence) Expression {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	left := p.parsePrefixExpression()
	if left == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.TokenSemicolon) && precedence < p.peekPrecedence() {
		switch {
		case p.peekTokenIs(lexer.TokenLParen):
			p.nextToken()
			left = p.parseCallExpression(left)
		default:
			if _, ok := infixOperators[p.peek.Type]; !ok {
				return left
			}
			p.nextToken()
			left = p.parseInfixExpression(left)
		}
		if left == nil {
			return nil
		}
	}

	return left
}

// parsePrefixExpression parses the expression form that starts at the current token
func (p *Parser) parsePrefixExpression() Expression {
	switch p.current.Type {
	case lexer.TokenIdentifier:
		return p.parseIdentifier()
	case lexer.TokenIntType, lexer.TokenFloatType, lexer.TokenStringType, lexer.TokenCharType,
		lexer.TokenBoolType, lexer.TokenUnitType, lexer.TokenList, lexer.TokenOption,
		lexer.TokenResult, lexer.TokenMap:
		// built-in type names are plain identifiers in expression context
		return p.parseIdentifier()
	case lexer.TokenInteger:
		return p.parseIntegerLiteral()
	case lexer.TokenFloat:
		return p.parseFloatLiteral()
	case lexer.TokenBool:
		return p.parseBooleanLiteral()
	case lexer.TokenMinus, lexer.TokenBang, lexer.TokenPlus:
		return p.parseUnaryExpression()
	case lexer.TokenLParen:
		return p.parseGroupedExpression()
	case lexer.TokenIf:
		return p.parseIfExpression()
	case lexer.TokenFn:
		return p.parseFunctionLiteral()
	case lexer.TokenSome, lexer.TokenOk, lexer.TokenError:
		return p.parseConstructorExpression()
	case lexer.TokenNone:
		return &NoneExpression{Span: TokenToSpan(p.current)}
	default:
		p.addError(p.current, "expression parsing", "no prefix parse function for %s found", p.current)
		return nil
	}
}

// parseIdentifier parses an identifier
func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Span: TokenToSpan(p.current), Value: p.current.Literal}
}

// parseIntegerLiteral parses an integer literal
func (p *Parser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.current.Literal, 10, 64)
	if err != nil {
		p.addError(p.current, "integer parsing", "could not parse %q as integer", p.current.Literal)
		return nil
	}
	return &Literal{Span: TokenToSpan(p.current), Value: value, Kind: LiteralInteger}
}

// parseFloatLiteral parses a float literal
func (p *Parser) parseFloatLiteral() Expression {
	value, err := strconv.ParseFloat(p.current.Literal, 64)
	if err != nil {
		p.addError(p.current, "float parsing", "could not parse %q as float", p.current.Literal)
		return nil
	}
	return &Literal{Span: TokenToSpan(p.current), Value: value, Kind: LiteralFloat}
}

// parseBooleanLiteral parses a boolean literal
func (p *Parser) parseBooleanLiteral() Expression {
	return &Literal{Span: TokenToSpan(p.current), Value: p.current.Literal == "true", Kind: LiteralBool}
}

var prefixOperators = map[lexer.TokenType]PrefixOperator{
	lexer.TokenMinus: PrefixMinus,
	lexer.TokenBang:  PrefixBang,
	lexer.TokenPlus:  PrefixPlus,
}

// parseUnaryExpression parses unary expressions
func (p *Parser) parseUnaryExpression() Expression {
	start := p.current
	operator := prefixOperators[p.current.Type]

	p.nextToken()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}

	return &PrefixExpression{
		Span:     SpanBetween(start, p.current),
		Operator: operator,
		Right:    operand,
	}
}

// parseGroupedExpression parses `( expr )`
func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.expectPeek(lexer.TokenRParen) {
		return nil
	}

	return exp
}

// parseInfixExpression parses the right operand of the binary operator under current
func (p *Parser) parseInfixExpression(left Expression) Expression {
	operator := infixOperators[p.current.Type]
	precedence := p.currentPrecedence()

	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	return &InfixExpression{
		Span:     Span{Start: left.GetSpan().Start, End: TokenToSpan(p.current).End},
		Left:     left,
		Operator: operator,
		Right:    right,
	}
}

// parseCallExpression parses the argument list after `(` under current
func (p *Parser) parseCallExpression(function Expression) Expression {
	arguments := p.parseCallArguments()
	if arguments == nil {
		return nil
	}

	return &CallExpression{
		Span:      Span{Start: function.GetSpan().Start, End: TokenToSpan(p.current).End},
		Function:  function,
		Arguments: arguments,
	}
}

// parseCallArguments parses comma-separated arguments up to the closing paren.
// It returns nil on failure and an empty slice for `()`.
func (p *Parser) parseCallArguments() []Expression {
	args := make([]Expression, 0)

	if p.peekTokenIs(lexer.TokenRParen) {
		p.nextToken()
		return args
	}

	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if arg == nil {
		return nil
	}
	args = append(args, arg)

	for p.peekTokenIs(lexer.TokenComma) {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}

	if !p.expectPeek(lexer.TokenRParen) {
		return nil
	}

	return args
}

// parseIfExpression parses `if cond { ... } [else { ... }]`
func (p *Parser) parseIfExpression() Expression {
	start := p.current

	p.nextToken()
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}

	if !p.expectPeek(lexer.TokenLBrace) {
		return nil
	}
	consequence, _ := p.parseBlock()
	if consequence == nil {
		return nil
	}

	var alternative *Block
	if p.peekTokenIs(lexer.TokenElse) {
		p.nextToken()
		if !p.expectPeek(lexer.TokenLBrace) {
			return nil
		}
		if alternative, _ = p.parseBlock(); alternative == nil {
			return nil
		}
	}

	return &IfExpression{
		Span:        SpanBetween(start, p.current),
		Condition:   condition,
		Consequence: consequence,
		Alternative: alternative,
	}
}

// parseFunctionLiteral parses both function forms:
//
//	fn x, y -> { stmt; ...; value }
//	fn x -> expr;
//
// A block body must end in a return statement or in an expression statement
// without a semicolon. The single-line body must be followed by a semicolon.
func (p *Parser) parseFunctionLiteral() Expression {
	start := p.current

	params := p.parseFunctionParameters()
	if params == nil {
		return nil
	}

	p.nextToken() // consume the arrow
	p.nextToken()

	if p.currentTokenIs(lexer.TokenLBrace) {
		body, terminated := p.parseBlock()
		if body == nil {
			return nil
		}
		if !p.validateFunctionBlock(start, body, terminated) {
			return nil
		}
		return &FunctionLiteral{
			Span:       SpanBetween(start, p.current),
			Parameters: params,
			Body:       body,
		}
	}

	bodyStart := p.current
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.peekTokenIs(lexer.TokenSemicolon) {
		p.addError(p.peek, "function literal", "single-line function body must end with semicolon, got %s", p.peek)
		return nil
	}
	p.nextToken()

	stmt := &ExpressionStatement{Span: SpanBetween(bodyStart, p.current), Expression: expr}
	return &FunctionLiteral{
		Span:       SpanBetween(start, p.current),
		Parameters: params,
		Body:       &Block{Span: stmt.Span, Statements: []Statement{stmt}},
		Inline:     true,
	}
}

// parseFunctionParameters reads parameters until the arrow is the peek token.
// Commas between parameters are optional. The result is non-nil on success.
func (p *Parser) parseFunctionParameters() []*Parameter {
	params := make([]*Parameter, 0)

	for !p.peekTokenIs(lexer.TokenArrow) {
		p.nextToken()

		switch {
		case p.currentTokenIs(lexer.TokenIdentifier):
			params = append(params, &Parameter{Span: TokenToSpan(p.current), Name: p.current.Literal})
		case p.currentTokenIs(lexer.TokenUnitType):
			params = append(params, &Parameter{Span: TokenToSpan(p.current), IsUnit: true})
		case p.currentTokenIs(lexer.TokenLParen) && p.peekTokenIs(lexer.TokenRParen):
			open := p.current
			p.nextToken()
			params = append(params, &Parameter{Span: SpanBetween(open, p.current), IsUnit: true})
		default:
			p.addError(p.current, "function parameters", "expected identifier in function parameters, got %s", p.current)
			return nil
		}

		if p.peekTokenIs(lexer.TokenComma) {
			p.nextToken()
		}
	}

	return params
}

// validateFunctionBlock checks the implicit-return shape of a block body
func (p *Parser) validateFunctionBlock(start lexer.Token, body *Block, terminated bool) bool {
	if len(body.Statements) == 0 {
		p.addError(start, "function literal", "empty function body")
		return false
	}

	switch body.Statements[len(body.Statements)-1].(type) {
	case *ReturnStatement:
		return true
	case *ExpressionStatement:
		if terminated {
			p.addError(p.current, "function literal", "function block's last expression must not end with semicolon")
			return false
		}
		return true
	default:
		p.addError(p.current, "function literal", "function block must end with expression or return statement")
		return false
	}
}

// parseConstructorExpression parses `Some x`, `Ok x` and `Error x`. The
// operand is parsed at LOWEST, so `Some 1 + 2` wraps the whole sum.
func (p *Parser) parseConstructorExpression() Expression {
	start := p.current

	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	span := SpanBetween(start, p.current)
	switch start.Type {
	case lexer.TokenSome:
		return &SomeExpression{Span: span, Value: value}
	case lexer.TokenOk:
		return &OkExpression{Span: span, Value: value}
	default:
		return &ErrExpression{Span: span, Value: value}
	}
}
