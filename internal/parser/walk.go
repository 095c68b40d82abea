package parser

// Inspect traverses the AST depth-first starting from node, calling fn for
// each node. If fn returns false, Inspect does not descend into that node.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Inspect(stmt, fn)
		}
	case *Block:
		for _, stmt := range n.Statements {
			Inspect(stmt, fn)
		}

	case *LetStatement:
		Inspect(n.Name, fn)
		Inspect(n.Value, fn)
	case *ReturnStatement:
		Inspect(n.Value, fn)
	case *ExpressionStatement:
		Inspect(n.Expression, fn)
	case *TypeStatement:
		Inspect(n.Name, fn)
		Inspect(n.Definition, fn)

	case *PrefixExpression:
		Inspect(n.Right, fn)
	case *InfixExpression:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *IfExpression:
		Inspect(n.Condition, fn)
		Inspect(n.Consequence, fn)
		if n.Alternative != nil {
			Inspect(n.Alternative, fn)
		}
	case *FunctionLiteral:
		for _, param := range n.Parameters {
			Inspect(param, fn)
		}
		Inspect(n.Body, fn)
	case *CallExpression:
		Inspect(n.Function, fn)
		for _, arg := range n.Arguments {
			Inspect(arg, fn)
		}
	case *SomeExpression:
		Inspect(n.Value, fn)
	case *OkExpression:
		Inspect(n.Value, fn)
	case *ErrExpression:
		Inspect(n.Value, fn)

	case *AliasType:
		Inspect(n.Target, fn)
	case *RecordType:
		for _, field := range n.Fields {
			Inspect(field, fn)
		}
	case *RecordField:
		Inspect(n.Type, fn)
	case *UnionType:
		for _, variant := range n.Variants {
			Inspect(variant, fn)
		}
	case *UnionVariant:
		if n.Type != nil {
			Inspect(n.Type, fn)
		}
	case *TypeReference:
		for _, param := range n.Parameters {
			Inspect(param, fn)
		}
	}
}
