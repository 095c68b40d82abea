package report

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/kestrel/internal/parser"
)

// Node is the serialisable form of an AST node
type Node struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Span     string  `json:"span" yaml:"span"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Operator string  `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    string  `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Diagnostic is the serialisable form of a ParseError
type Diagnostic struct {
	Kind     string `json:"kind" yaml:"kind"`
	Position string `json:"position" yaml:"position"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	Message  string `json:"message" yaml:"message"`
	Context  string `json:"context,omitempty" yaml:"context,omitempty"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
}

// Stats summarises the shape of a parsed program
type Stats struct {
	Statements int            `json:"statements" yaml:"statements"`
	Nodes      int            `json:"nodes" yaml:"nodes"`
	MaxDepth   int            `json:"max_depth" yaml:"max_depth"`
	ByKind     map[string]int `json:"by_kind" yaml:"by_kind"`
}

// Document is the machine-readable report for one file
type Document struct {
	RunID       string       `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	File        string       `json:"file" yaml:"file"`
	Tokens      int          `json:"tokens" yaml:"tokens"`
	Stats       Stats        `json:"stats" yaml:"stats"`
	Program     *Node        `json:"program,omitempty" yaml:"program,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// NewDocument converts a parse result into its serialisable form
func NewDocument(res *Result) *Document {
	doc := &Document{
		RunID:       res.RunID,
		File:        res.File,
		Tokens:      res.Tokens,
		Stats:       Collect(res.Program),
		Diagnostics: make([]Diagnostic, 0, len(res.Errors)),
	}
	if res.Program != nil {
		doc.Program = convert(res.Program)
	}
	for _, err := range res.Errors {
		doc.Diagnostics = append(doc.Diagnostics, NewDiagnostic(err))
	}
	return doc
}

// NewDiagnostic converts one ParseError
func NewDiagnostic(err *parser.ParseError) Diagnostic {
	d := Diagnostic{
		Kind:     err.Kind.String(),
		Position: err.Position.String(),
		Line:     err.Position.Line,
		Column:   err.Position.Column,
		Message:  err.Message,
		Context:  err.Context,
	}
	if err.Kind == parser.UnexpectedToken {
		d.Expected = err.Expected.String()
		d.Actual = err.Actual.String()
	}
	return d
}

// Collect counts the nodes of program by kind
func Collect(program *parser.Program) Stats {
	stats := Stats{ByKind: make(map[string]int)}
	if program == nil {
		return stats
	}
	stats.Statements = len(program.Statements)

	parser.Inspect(program, func(n parser.Node) bool {
		stats.Nodes++
		stats.ByKind[KindOf(n)]++
		return true
	})
	stats.MaxDepth = depth(convert(program))

	return stats
}

// KindOf returns the short type name of an AST node
func KindOf(n parser.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*parser.")
}

func depth(n *Node) int {
	deepest := 0
	for _, child := range n.Children {
		if d := depth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

func convert(n parser.Node) *Node {
	out := &Node{Kind: KindOf(n), Span: n.GetSpan().String()}

	add := func(children ...parser.Node) {
		for _, child := range children {
			out.Children = append(out.Children, convert(child))
		}
	}

	switch n := n.(type) {
	case *parser.Program:
		for _, stmt := range n.Statements {
			add(stmt)
		}
	case *parser.Block:
		for _, stmt := range n.Statements {
			add(stmt)
		}
	case *parser.LetStatement:
		out.Name = n.Name.Value
		add(n.Value)
	case *parser.ReturnStatement:
		add(n.Value)
	case *parser.ExpressionStatement:
		add(n.Expression)
	case *parser.TypeStatement:
		out.Name = n.Name.Value
		add(n.Definition)

	case *parser.Identifier:
		out.Name = n.Value
	case *parser.Literal:
		out.Operator = n.Kind.String()
		out.Value = n.String()
	case *parser.PrefixExpression:
		out.Operator = n.Operator.String()
		add(n.Right)
	case *parser.InfixExpression:
		out.Operator = n.Operator.String()
		add(n.Left, n.Right)
	case *parser.IfExpression:
		add(n.Condition, n.Consequence)
		if n.Alternative != nil {
			add(n.Alternative)
		}
	case *parser.Parameter:
		out.Name = n.String()
	case *parser.FunctionLiteral:
		if n.Inline {
			out.Value = "inline"
		}
		for _, param := range n.Parameters {
			add(param)
		}
		add(n.Body)
	case *parser.CallExpression:
		add(n.Function)
		for _, arg := range n.Arguments {
			add(arg)
		}
	case *parser.SomeExpression:
		add(n.Value)
	case *parser.OkExpression:
		add(n.Value)
	case *parser.ErrExpression:
		add(n.Value)

	case *parser.AliasType:
		add(n.Target)
	case *parser.RecordType:
		for _, field := range n.Fields {
			add(field)
		}
	case *parser.RecordField:
		out.Name = n.Name
		add(n.Type)
	case *parser.UnionType:
		for _, variant := range n.Variants {
			add(variant)
		}
	case *parser.UnionVariant:
		out.Name = n.Name
		if n.Type != nil {
			add(n.Type)
		}
	case *parser.TypeReference:
		out.Name = n.Name
		for _, param := range n.Parameters {
			add(param)
		}
	}

	return out
}
