// Package parser implements the Kestrel parser and AST definitions
package parser

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/kestrel/internal/lexer"
)

// Position represents a source code position with file, line, and column information
type Position struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
	Offset int    // Byte offset (0-based)
}

// String returns a string representation of the position
func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a source code span from start to end position
type Span struct {
	Start Position
	End   Position
}

// String returns a string representation of the span
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s-%d", s.Start.String(), s.End.Column)
	}
	return fmt.Sprintf("%s-%d:%d", s.Start.String(), s.End.Line, s.End.Column)
}

// Node represents the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span for this node
	GetSpan() Span
	// String returns a string representation of the node
	String() string
}

// Statement represents all statement nodes
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes
type Expression interface {
	Node
	expressionNode()
}

// TypeDefinition represents the right-hand side of a type declaration
type TypeDefinition interface {
	Node
	typeDefinitionNode()
}

// ====== Program ======

// Program represents the root of the AST. Statements are kept in source order.
type Program struct {
	Span       Span
	Statements []Statement
}

func (p *Program) GetSpan() Span { return p.Span }
func (p *Program) String() string {
	var out strings.Builder
	for i, stmt := range p.Statements {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(stmt.String())
	}
	return out.String()
}

// ====== Statements ======

// LetStatement binds the value of an expression to a name
type LetStatement struct {
	Span  Span
	Name  *Identifier
	Value Expression
}

func (l *LetStatement) GetSpan() Span { return l.Span }
func (l *LetStatement) String() string {
	return fmt.Sprintf("let %s = %s;", l.Name.String(), l.Value.String())
}
func (l *LetStatement) statementNode() {}

// ReturnStatement represents an explicit return
type ReturnStatement struct {
	Span  Span
	Value Expression
}

func (r *ReturnStatement) GetSpan() Span  { return r.Span }
func (r *ReturnStatement) String() string { return fmt.Sprintf("return %s;", r.Value.String()) }
func (r *ReturnStatement) statementNode() {}

// ExpressionStatement represents an expression used as a statement
type ExpressionStatement struct {
	Span       Span
	Expression Expression
}

func (e *ExpressionStatement) GetSpan() Span  { return e.Span }
func (e *ExpressionStatement) String() string { return e.Expression.String() }
func (e *ExpressionStatement) statementNode() {}

// TypeStatement represents a `type Name = ...;` declaration
type TypeStatement struct {
	Span       Span
	Name       *Identifier
	Definition TypeDefinition
}

func (t *TypeStatement) GetSpan() Span { return t.Span }
func (t *TypeStatement) String() string {
	return fmt.Sprintf("type %s = %s;", t.Name.String(), t.Definition.String())
}
func (t *TypeStatement) statementNode() {}

// Block is a brace-delimited statement list. It is not a statement on its own;
// it appears as the body of if expressions and function literals.
type Block struct {
	Span       Span
	Statements []Statement
}

func (b *Block) GetSpan() Span { return b.Span }
func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{ }"
	}
	parts := make([]string, len(b.Statements))
	for i, stmt := range b.Statements {
		parts[i] = stmt.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// ====== Position Conversion Utilities ======

// TokenToPosition converts a lexer.Token to a Position
func TokenToPosition(token lexer.Token) Position {
	return Position{
		Line:   token.Span.Start.Line,
		Column: token.Span.Start.Column,
		Offset: token.Span.Start.Offset,
	}
}

// TokenToSpan converts a lexer.Token to a Span
func TokenToSpan(token lexer.Token) Span {
	return Span{
		Start: TokenToPosition(token),
		End: Position{
			Line:   token.Span.End.Line,
			Column: token.Span.End.Column,
			Offset: token.Span.End.Offset,
		},
	}
}

// SpanBetween creates a span from the start of one token to the end of another
func SpanBetween(start, end lexer.Token) Span {
	return Span{Start: TokenToSpan(start).Start, End: TokenToSpan(end).End}
}
