package parser

import (
	"fmt"
	"strings"
)

// Identifier represents an identifier
type Identifier struct {
	Span  Span
	Value string
}

func (i *Identifier) GetSpan() Span   { return i.Span }
func (i *Identifier) String() string  { return i.Value }
func (i *Identifier) expressionNode() {}

// Literal represents integer, float and boolean literals.
// Value holds an int64, float64 or bool according to Kind.
type Literal struct {
	Span  Span
	Value interface{}
	Kind  LiteralKind
}

type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralBool
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInteger:
		return "integer"
	case LiteralFloat:
		return "float"
	case LiteralBool:
		return "boolean"
	}
	return "unknown"
}

func (l *Literal) GetSpan() Span   { return l.Span }
func (l *Literal) String() string  { return fmt.Sprintf("%v", l.Value) }
func (l *Literal) expressionNode() {}

// PrefixOperator is a unary operator
type PrefixOperator int

const (
	PrefixMinus PrefixOperator = iota
	PrefixBang
	PrefixPlus
)

func (op PrefixOperator) String() string {
	switch op {
	case PrefixMinus:
		return "-"
	case PrefixBang:
		return "!"
	case PrefixPlus:
		return "+"
	}
	return "?"
}

// PrefixExpression represents a unary operator applied to an operand
type PrefixExpression struct {
	Span     Span
	Operator PrefixOperator
	Right    Expression
}

func (p *PrefixExpression) GetSpan() Span { return p.Span }
func (p *PrefixExpression) String() string {
	return fmt.Sprintf("(%s%s)", p.Operator, p.Right.String())
}
func (p *PrefixExpression) expressionNode() {}

// InfixOperator is a binary operator
type InfixOperator int

const (
	InfixPlus InfixOperator = iota
	InfixMinus
	InfixProduct
	InfixDivide
	InfixModulo
	InfixDot
	InfixEqual
	InfixNotEqual
	InfixLessThan
	InfixGreaterThan
	InfixLessEqual
	InfixGreaterEqual
	InfixPipe
	InfixCons
	InfixConcat
	InfixBitAnd
	InfixBitXor
)

var infixOperatorNames = map[InfixOperator]string{
	InfixPlus:         "+",
	InfixMinus:        "-",
	InfixProduct:      "*",
	InfixDivide:       "/",
	InfixModulo:       "%",
	InfixDot:          ".",
	InfixEqual:        "==",
	InfixNotEqual:     "/=",
	InfixLessThan:     "<",
	InfixGreaterThan:  ">",
	InfixLessEqual:    "<=",
	InfixGreaterEqual: ">=",
	InfixPipe:         "|>",
	InfixCons:         "::",
	InfixConcat:       "++",
	InfixBitAnd:       "&",
	InfixBitXor:       "^",
}

func (op InfixOperator) String() string {
	if name, ok := infixOperatorNames[op]; ok {
		return name
	}
	return "?"
}

// InfixExpression represents a binary operation
type InfixExpression struct {
	Span     Span
	Left     Expression
	Operator InfixOperator
	Right    Expression
}

func (i *InfixExpression) GetSpan() Span { return i.Span }
func (i *InfixExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", i.Left.String(), i.Operator, i.Right.String())
}
func (i *InfixExpression) expressionNode() {}

// IfExpression is a value-producing conditional. Alternative is nil when
// there is no else branch.
type IfExpression struct {
	Span        Span
	Condition   Expression
	Consequence *Block
	Alternative *Block
}

func (i *IfExpression) GetSpan() Span { return i.Span }
func (i *IfExpression) String() string {
	var out strings.Builder
	out.WriteString("if ")
	out.WriteString(i.Condition.String())
	out.WriteString(" ")
	out.WriteString(i.Consequence.String())
	if i.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(i.Alternative.String())
	}
	return out.String()
}
func (i *IfExpression) expressionNode() {}

// Parameter is a function literal parameter: a name or the unit marker
type Parameter struct {
	Span   Span
	Name   string
	IsUnit bool
}

func (p *Parameter) GetSpan() Span { return p.Span }
func (p *Parameter) String() string {
	if p.IsUnit {
		return "()"
	}
	return p.Name
}

// FunctionLiteral represents `fn params -> body`. Inline is set for the
// single-line form, whose body holds exactly one expression statement.
type FunctionLiteral struct {
	Span       Span
	Parameters []*Parameter
	Body       *Block
	Inline     bool
}

func (f *FunctionLiteral) GetSpan() Span { return f.Span }
func (f *FunctionLiteral) String() string {
	params := make([]string, len(f.Parameters))
	for i, param := range f.Parameters {
		params[i] = param.String()
	}
	head := "fn " + strings.Join(params, ", ")
	if len(params) == 0 {
		head = "fn"
	}
	if f.Inline && len(f.Body.Statements) == 1 {
		return fmt.Sprintf("%s -> %s;", head, f.Body.Statements[0].String())
	}
	return fmt.Sprintf("%s -> %s", head, f.Body.String())
}
func (f *FunctionLiteral) expressionNode() {}

// CallExpression represents function application
type CallExpression struct {
	Span      Span
	Function  Expression
	Arguments []Expression
}

func (c *CallExpression) GetSpan() Span { return c.Span }
func (c *CallExpression) String() string {
	args := make([]string, len(c.Arguments))
	for i, arg := range c.Arguments {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", c.Function.String(), strings.Join(args, ", "))
}
func (c *CallExpression) expressionNode() {}

// SomeExpression represents `Some x`
type SomeExpression struct {
	Span  Span
	Value Expression
}

func (s *SomeExpression) GetSpan() Span   { return s.Span }
func (s *SomeExpression) String() string  { return fmt.Sprintf("Some(%s)", s.Value.String()) }
func (s *SomeExpression) expressionNode() {}

// NoneExpression represents `None`
type NoneExpression struct {
	Span Span
}

func (n *NoneExpression) GetSpan() Span   { return n.Span }
func (n *NoneExpression) String() string  { return "None" }
func (n *NoneExpression) expressionNode() {}

// OkExpression represents `Ok x`
type OkExpression struct {
	Span  Span
	Value Expression
}

func (o *OkExpression) GetSpan() Span   { return o.Span }
func (o *OkExpression) String() string  { return fmt.Sprintf("Ok(%s)", o.Value.String()) }
func (o *OkExpression) expressionNode() {}

// ErrExpression represents `Error x`
type ErrExpression struct {
	Span  Span
	Value Expression
}

func (e *ErrExpression) GetSpan() Span   { return e.Span }
func (e *ErrExpression) String() string  { return fmt.Sprintf("Error(%s)", e.Value.String()) }
func (e *ErrExpression) expressionNode() {}
