package parser

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/kestrel/internal/lexer"
)

// ErrorKind distinguishes structural from contextual diagnostics
type ErrorKind int

const (
	// UnexpectedToken means a required token was absent at a grammar position
	UnexpectedToken ErrorKind = iota
	// Message is a free-form contextual diagnostic
	Message
)

func (k ErrorKind) String() string {
	if k == UnexpectedToken {
		return "unexpected-token"
	}
	return "message"
}

// ParseError represents a parsing error with context.
// Expected and Actual are only meaningful for UnexpectedToken.
type ParseError struct {
	Kind     ErrorKind
	Position Position
	Expected lexer.TokenType
	Actual   lexer.Token
	Message  string
	Context  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error at %s: %s", e.Position.String(), e.Message)
}

// ParseErrors is the ordered list of diagnostics produced by one parse
type ParseErrors []*ParseError

func (errs ParseErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns nil when there are no diagnostics, so callers can write
// `if err := errs.Err(); err != nil`.
func (errs ParseErrors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// peekError records a peek token mismatch error
func (p *Parser) peekError(expected lexer.TokenType) {
	p.errors = append(p.errors, &ParseError{
		Kind:     UnexpectedToken,
		Position: p.position(p.peek),
		Expected: expected,
		Actual:   p.peek,
		Message:  fmt.Sprintf("expected %s, got %s", expected, p.peek),
		Context:  "token mismatch",
	})
}

// currentError records a mismatch on the current token
func (p *Parser) currentError(expected lexer.TokenType) {
	p.errors = append(p.errors, &ParseError{
		Kind:     UnexpectedToken,
		Position: p.position(p.current),
		Expected: expected,
		Actual:   p.current,
		Message:  fmt.Sprintf("expected %s, got %s", expected, p.current),
		Context:  "token mismatch",
	})
}

// addError adds a free-form diagnostic positioned at tok
func (p *Parser) addError(tok lexer.Token, context, format string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{
		Kind:     Message,
		Position: p.position(tok),
		Actual:   tok,
		Message:  fmt.Sprintf(format, args...),
		Context:  context,
	})
}

func (p *Parser) position(tok lexer.Token) Position {
	pos := TokenToPosition(tok)
	pos.File = p.filename
	return pos
}
