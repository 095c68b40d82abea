package parser

import (
	"fmt"
	"strings"
)

// BuiltinType identifies a built-in type constructor. TypeCustom marks a
// user-defined type name.
type BuiltinType int

const (
	TypeCustom BuiltinType = iota
	TypeInt
	TypeFloat
	TypeString
	TypeChar
	TypeBool
	TypeUnit
	TypeList
	TypeOption
	TypeResult
	TypeMap
)

var builtinTypeNames = map[BuiltinType]string{
	TypeInt:    "Int",
	TypeFloat:  "Float",
	TypeString: "String",
	TypeChar:   "Char",
	TypeBool:   "Bool",
	TypeUnit:   "Unit",
	TypeList:   "List",
	TypeOption: "Option",
	TypeResult: "Result",
	TypeMap:    "Map",
}

func (b BuiltinType) String() string {
	if name, ok := builtinTypeNames[b]; ok {
		return name
	}
	return "custom"
}

// IsParametrized reports whether the constructor takes a type parameter
func (b BuiltinType) IsParametrized() bool {
	switch b {
	case TypeList, TypeOption, TypeResult, TypeMap:
		return true
	}
	return false
}

// TypeReference names a type by constructor plus nested parameters.
// Name is the canonical constructor name for built-ins and the source
// identifier for custom types.
type TypeReference struct {
	Span       Span
	Builtin    BuiltinType
	Name       string
	Parameters []*TypeReference
}

func (t *TypeReference) GetSpan() Span { return t.Span }
func (t *TypeReference) String() string {
	if len(t.Parameters) == 0 {
		return t.Name
	}
	var out strings.Builder
	out.WriteString(t.Name)
	for _, param := range t.Parameters {
		out.WriteString(" ")
		if len(param.Parameters) > 0 {
			out.WriteString("(" + param.String() + ")")
		} else {
			out.WriteString(param.String())
		}
	}
	return out.String()
}

// IsCustom reports whether the reference names a user-defined type
func (t *TypeReference) IsCustom() bool { return t.Builtin == TypeCustom }

// AliasType is `type Name = TypeReference;`
type AliasType struct {
	Span   Span
	Target *TypeReference
}

func (a *AliasType) GetSpan() Span       { return a.Span }
func (a *AliasType) String() string      { return a.Target.String() }
func (a *AliasType) typeDefinitionNode() {}

// RecordField is one `name: Type` entry of a record
type RecordField struct {
	Span Span
	Name string
	Type *TypeReference
}

func (f *RecordField) GetSpan() Span  { return f.Span }
func (f *RecordField) String() string { return fmt.Sprintf("%s: %s", f.Name, f.Type.String()) }

// RecordType is `type Name = { field: type, ... };`. Field order is declaration order.
type RecordType struct {
	Span   Span
	Fields []*RecordField
}

func (r *RecordType) GetSpan() Span { return r.Span }
func (r *RecordType) String() string {
	if len(r.Fields) == 0 {
		return "{ }"
	}
	fields := make([]string, len(r.Fields))
	for i, field := range r.Fields {
		fields[i] = field.String()
	}
	return "{ " + strings.Join(fields, ", ") + " }"
}
func (r *RecordType) typeDefinitionNode() {}

// Field returns the field with the given name, or nil
func (r *RecordType) Field(name string) *RecordField {
	for _, field := range r.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// UnionVariant is one `| Name [of Type]` alternative. Type is nil for
// variants without a payload.
type UnionVariant struct {
	Span Span
	Name string
	Type *TypeReference
}

func (v *UnionVariant) GetSpan() Span { return v.Span }
func (v *UnionVariant) String() string {
	if v.Type == nil {
		return v.Name
	}
	return fmt.Sprintf("%s of %s", v.Name, v.Type.String())
}

// UnionType is `type Name = | A | B of T ...;`. Variant order is declaration order.
type UnionType struct {
	Span     Span
	Variants []*UnionVariant
}

func (u *UnionType) GetSpan() Span { return u.Span }
func (u *UnionType) String() string {
	var out strings.Builder
	for i, variant := range u.Variants {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString("| ")
		out.WriteString(variant.String())
	}
	return out.String()
}
func (u *UnionType) typeDefinitionNode() {}
