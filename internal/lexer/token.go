// Package lexer implements the Kestrel lexical analyzer.
package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenIdentifier
	TokenInteger
	TokenFloat
	TokenBool

	// Keywords
	TokenLet
	TokenReturn
	TokenTypeDecl
	TokenFn
	TokenIf
	TokenElse
	TokenOf
	TokenSome
	TokenNone
	TokenOk
	TokenError

	// Type constructors (uppercase vocabulary)
	TokenIntType
	TokenFloatType
	TokenStringType
	TokenCharType
	TokenBoolType
	TokenUnitType
	TokenList
	TokenOption
	TokenResult
	TokenMap

	// Record field primitives (lowercase vocabulary)
	TokenIntPrim
	TokenFloatPrim
	TokenStringPrim
	TokenCharPrim
	TokenBoolPrim
	TokenUnitPrim

	// Operators
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenMod
	TokenDot
	TokenEq
	TokenNe
	TokenLt
	TokenGt
	TokenLe
	TokenGe
	TokenPipeForward
	TokenCons
	TokenConcat
	TokenAmpersand
	TokenCaret
	TokenBang

	// Punctuation
	TokenAssign
	TokenSemicolon
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenPipe
	TokenArrow
)

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset in source
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in the source code
type Span struct {
	Start Position
	End   Position
}

// Token represents a lexical token with position information
type Token struct {
	Type    TokenType
	Literal string
	Span    Span
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenIdentifier, TokenInteger, TokenFloat, TokenBool, TokenIllegal:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	}
	return t.Type.String()
}

// Is reports whether the token has the given type
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// tokenNames provides string representations for token types
var tokenNames = map[TokenType]string{
	TokenEOF:     "EOF",
	TokenIllegal: "ILLEGAL",

	TokenIdentifier: "IDENTIFIER",
	TokenInteger:    "INTEGER",
	TokenFloat:      "FLOAT",
	TokenBool:       "BOOLEAN",

	TokenLet:      "let",
	TokenReturn:   "return",
	TokenTypeDecl: "type",
	TokenFn:       "fn",
	TokenIf:       "if",
	TokenElse:     "else",
	TokenOf:       "of",
	TokenSome:     "Some",
	TokenNone:     "None",
	TokenOk:       "Ok",
	TokenError:    "Error",

	TokenIntType:    "Int",
	TokenFloatType:  "Float",
	TokenStringType: "String",
	TokenCharType:   "Char",
	TokenBoolType:   "Bool",
	TokenUnitType:   "Unit",
	TokenList:       "List",
	TokenOption:     "Option",
	TokenResult:     "Result",
	TokenMap:        "Map",

	TokenIntPrim:    "int",
	TokenFloatPrim:  "float",
	TokenStringPrim: "string",
	TokenCharPrim:   "char",
	TokenBoolPrim:   "bool",
	TokenUnitPrim:   "unit",

	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenMul:         "*",
	TokenDiv:         "/",
	TokenMod:         "%",
	TokenDot:         ".",
	TokenEq:          "==",
	TokenNe:          "/=",
	TokenLt:          "<",
	TokenGt:          ">",
	TokenLe:          "<=",
	TokenGe:          ">=",
	TokenPipeForward: "|>",
	TokenCons:        "::",
	TokenConcat:      "++",
	TokenAmpersand:   "&",
	TokenCaret:       "^",
	TokenBang:        "!",

	TokenAssign:    "=",
	TokenSemicolon: ";",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenComma:     ",",
	TokenColon:     ":",
	TokenPipe:      "|",
	TokenArrow:     "->",
}

// keywords maps reserved words to their token types.
// true/false are handled separately since they produce TokenBool.
var keywords = map[string]TokenType{
	"let":    TokenLet,
	"return": TokenReturn,
	"type":   TokenTypeDecl,
	"fn":     TokenFn,
	"if":     TokenIf,
	"else":   TokenElse,
	"of":     TokenOf,
	"Some":   TokenSome,
	"None":   TokenNone,
	"Ok":     TokenOk,
	"Error":  TokenError,

	"Int":    TokenIntType,
	"Float":  TokenFloatType,
	"String": TokenStringType,
	"Char":   TokenCharType,
	"Bool":   TokenBoolType,
	"Unit":   TokenUnitType,
	"List":   TokenList,
	"Option": TokenOption,
	"Result": TokenResult,
	"Map":    TokenMap,

	"int":    TokenIntPrim,
	"float":  TokenFloatPrim,
	"string": TokenStringPrim,
	"char":   TokenCharPrim,
	"bool":   TokenBoolPrim,
	"unit":   TokenUnitPrim,
}

// LookupIdent checks if identifier is a keyword
func LookupIdent(ident string) TokenType {
	if ident == "true" || ident == "false" {
		return TokenBool
	}
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// IsTypeConstructor reports whether tt is one of the uppercase built-in type names.
func IsTypeConstructor(tt TokenType) bool {
	return tt >= TokenIntType && tt <= TokenMap
}

// IsPrimitive reports whether tt is one of the lowercase record field primitives.
func IsPrimitive(tt TokenType) bool {
	return tt >= TokenIntPrim && tt <= TokenUnitPrim
}
