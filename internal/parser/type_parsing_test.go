package parser

import (
	"fmt"
	"strings"
	"testing"
)

// parseTypeDeclaration parses input as a single type declaration
func parseTypeDeclaration(t *testing.T, input string) *TypeStatement {
	t.Helper()

	program := parseSource(t, input)
	if len(program.Statements) != 1 {
		t.Fatalf("Expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*TypeStatement)
	if !ok {
		t.Fatalf("Expected *TypeStatement, got %T", program.Statements[0])
	}
	return stmt
}

func TestUnionTypeDeclaration(t *testing.T) {
	stmt := parseTypeDeclaration(t, "type Shape = | Circle of Float | Rect of List Int | Empty;")

	if stmt.Name.Value != "Shape" {
		t.Errorf("Expected name Shape, got %s", stmt.Name.Value)
	}
	union, ok := stmt.Definition.(*UnionType)
	if !ok {
		t.Fatalf("Expected *UnionType, got %T", stmt.Definition)
	}

	expected := []struct {
		name    string
		payload string
	}{
		{"Circle", "Float"},
		{"Rect", "List Int"},
		{"Empty", ""},
	}
	if len(union.Variants) != len(expected) {
		t.Fatalf("Expected %d variants, got %d", len(expected), len(union.Variants))
	}
	for i, want := range expected {
		variant := union.Variants[i]
		if variant.Name != want.name {
			t.Errorf("variant %d: expected %s, got %s", i, want.name, variant.Name)
		}
		if want.payload == "" {
			if variant.Type != nil {
				t.Errorf("variant %s: expected no payload, got %s", variant.Name, variant.Type)
			}
			continue
		}
		if variant.Type == nil || variant.Type.String() != want.payload {
			t.Errorf("variant %s: expected payload %s, got %v", variant.Name, want.payload, variant.Type)
		}
	}

	if got := stmt.String(); got != "type Shape = | Circle of Float | Rect of List Int | Empty;" {
		t.Errorf("Unexpected rendering %s", got)
	}
}

func TestUnionVariantWithCustomPayload(t *testing.T) {
	stmt := parseTypeDeclaration(t, "type Tree = | Leaf | Node of Tree;")

	union := stmt.Definition.(*UnionType)
	payload := union.Variants[1].Type
	if !payload.IsCustom() || payload.Name != "Tree" {
		t.Errorf("Expected custom payload Tree, got %s (%s)", payload.Name, payload.Builtin)
	}
}

func TestRecordTypeDeclaration(t *testing.T) {
	stmt := parseTypeDeclaration(t, "type Person = { name: string, age: int, tags: List string };")

	record, ok := stmt.Definition.(*RecordType)
	if !ok {
		t.Fatalf("Expected *RecordType, got %T", stmt.Definition)
	}

	expected := []struct {
		name    string
		builtin BuiltinType
		render  string
	}{
		{"name", TypeString, "String"},
		{"age", TypeInt, "Int"},
		{"tags", TypeList, "List String"},
	}
	if len(record.Fields) != len(expected) {
		t.Fatalf("Expected %d fields, got %d", len(expected), len(record.Fields))
	}
	for i, want := range expected {
		field := record.Fields[i]
		if field.Name != want.name {
			t.Errorf("field %d: expected %s, got %s", i, want.name, field.Name)
		}
		if field.Type.Builtin != want.builtin {
			t.Errorf("field %s: expected %s, got %s", field.Name, want.builtin, field.Type.Builtin)
		}
		if got := field.Type.String(); got != want.render {
			t.Errorf("field %s: expected %s, got %s", field.Name, want.render, got)
		}
	}

	if record.Field("age") == nil || record.Field("missing") != nil {
		t.Error("Field lookup returned the wrong result")
	}
}

func TestRecordTypeForms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single field", "type P = { x: int };", "{ x: Int }"},
		{"trailing comma", "type P = { x: int, y: float, };", "{ x: Int, y: Float }"},
		{"empty record", "type P = { };", "{ }"},
		{"all primitives", "type P = { a: int, b: float, c: string, d: char, e: bool, f: unit };",
			"{ a: Int, b: Float, c: String, d: Char, e: Bool, f: Unit }"},
		{"custom field type", "type P = { origin: Point };", "{ origin: Point }"},
		{"nested parametrized", "type P = { m: Option List int };", "{ m: Option (List Int) }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseTypeDeclaration(t, tt.input)
			if got := stmt.Definition.String(); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTypeAliasDeclaration(t *testing.T) {
	tests := []struct {
		input    string
		builtin  BuiltinType
		expected string
	}{
		{"type Id = Int;", TypeInt, "Int"},
		{"type Name = String;", TypeString, "String"},
		{"type Flag = Bool;", TypeBool, "Bool"},
		{"type Nothing = Unit;", TypeUnit, "Unit"},
		{"type Names = List String;", TypeList, "List String"},
		{"type Maybe = Option Int;", TypeOption, "Option Int"},
		{"type Outcome = Result Char;", TypeResult, "Result Char"},
		{"type Index = Map Float;", TypeMap, "Map Float"},
		{"type Grid = List List Int;", TypeList, "List (List Int)"},
		{"type Other = Shape;", TypeCustom, "Shape"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt := parseTypeDeclaration(t, tt.input)
			alias, ok := stmt.Definition.(*AliasType)
			if !ok {
				t.Fatalf("Expected *AliasType, got %T", stmt.Definition)
			}
			if alias.Target.Builtin != tt.builtin {
				t.Errorf("Expected %s, got %s", tt.builtin, alias.Target.Builtin)
			}
			if got := alias.Target.String(); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestLowercaseDeclaredTypeName(t *testing.T) {
	tests := []struct {
		input      string
		name       string
		definition string
	}{
		{"type point = Int;", "point", "*parser.AliasType"},
		{"type shape = | Circle of Float | Empty;", "shape", "*parser.UnionType"},
		{"type pair = { a: int, b: int };", "pair", "*parser.RecordType"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt := parseTypeDeclaration(t, tt.input)
			if stmt.Name.Value != tt.name {
				t.Errorf("Expected name %s, got %s", tt.name, stmt.Name.Value)
			}
			if got := fmt.Sprintf("%T", stmt.Definition); got != tt.definition {
				t.Errorf("Expected %s, got %s", tt.definition, got)
			}
		})
	}

	// the uppercase rule still applies to references
	_, errs := ParseString("type point = point;", "test.kes")
	if len(errs) == 0 || !strings.Contains(errs[0].Message, "custom type identifier 'point'") {
		t.Errorf("Expected a naming diagnostic, got %v", errs)
	}
}

func TestTypeDeclarationErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"lowercase custom reference", "type P = point;", "custom type identifier 'point' must start with uppercase letter"},
		{"uppercase in record", "type P = { x: Int };", "must use the lowercase primitive names"},
		{"lowercase in alias", "type P = int;", "primitive int is only valid in record fields, use Int"},
		{"lowercase in union payload", "type P = | A of float;", "primitive float is only valid in record fields"},
		{"missing record comma", "type P = { x: int y: int };", "expected ,, got IDENTIFIER(y)"},
		{"missing field colon", "type P = { x int };", "expected :, got int"},
		{"missing variant name", "type P = | ;", "expected variant name, got ;"},
		{"bad field name", "type P = { 1: int };", "expected field name, got INTEGER(1)"},
		{"missing semicolon", "type P = Int", "expected ;, got EOF"},
		{"missing assign", "type P Int;", "expected =, got Int"},
		{"not a type", "type P = 5;", "expected type name, got INTEGER(5)"},
		{"parametrized without parameter", "type P = List;", "expected type name, got ;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, errors := ParseString(tt.input, "test.kes")
			if len(errors) == 0 {
				t.Fatalf("Expected errors for %q", tt.input)
			}
			if !strings.Contains(errors[0].Message, tt.message) {
				t.Errorf("Expected first error to contain %q, got %q", tt.message, errors[0].Message)
			}
			for _, stmt := range program.Statements {
				if _, ok := stmt.(*TypeStatement); ok {
					t.Errorf("Failed declaration should not produce a TypeStatement")
				}
			}
		})
	}
}

func TestTypeDeclarationsWithCode(t *testing.T) {
	program := parseSource(t, `
type Shape = | Circle of Float | Square of Float;
type Point = { x: float, y: float };
let origin = 0;
`)

	if len(program.Statements) != 3 {
		t.Fatalf("Expected 3 statements, got %d", len(program.Statements))
	}
	if _, ok := program.Statements[2].(*LetStatement); !ok {
		t.Errorf("Expected trailing let, got %T", program.Statements[2])
	}
}
