package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/orizon-lang/kestrel/internal/lexer"
)

// typeVocabulary selects which built-in type names a position accepts.
// Aliases and union payloads use the uppercase constructors (Int, Float, ...);
// record fields use the lowercase primitives (int, float, ...). The
// parametrized constructors List, Option, Result and Map are shared.
type typeVocabulary int

const (
	constructorVocabulary typeVocabulary = iota
	primitiveVocabulary
)

var constructorTypes = map[lexer.TokenType]BuiltinType{
	lexer.TokenIntType:    TypeInt,
	lexer.TokenFloatType:  TypeFloat,
	lexer.TokenStringType: TypeString,
	lexer.TokenCharType:   TypeChar,
	lexer.TokenBoolType:   TypeBool,
	lexer.TokenUnitType:   TypeUnit,
}

var primitiveTypes = map[lexer.TokenType]BuiltinType{
	lexer.TokenIntPrim:    TypeInt,
	lexer.TokenFloatPrim:  TypeFloat,
	lexer.TokenStringPrim: TypeString,
	lexer.TokenCharPrim:   TypeChar,
	lexer.TokenBoolPrim:   TypeBool,
	lexer.TokenUnitPrim:   TypeUnit,
}

var parametrizedTypes = map[lexer.TokenType]BuiltinType{
	lexer.TokenList:   TypeList,
	lexer.TokenOption: TypeOption,
	lexer.TokenResult: TypeResult,
	lexer.TokenMap:    TypeMap,
}

// parseTypeStatement parses `type Name = definition;`
func (p *Parser) parseTypeStatement() Statement {
	start := p.current

	if !p.expectPeek(lexer.TokenIdentifier) {
		return nil
	}
	name := &Identifier{Span: TokenToSpan(p.current), Value: p.current.Literal}

	if !p.expectPeek(lexer.TokenAssign) {
		return nil
	}

	var definition TypeDefinition
	if p.peekTokenIs(lexer.TokenPipe) {
		p.nextToken()
		if union := p.parseUnionType(); union != nil {
			definition = union
		}
	} else {
		p.nextToken()
		if p.currentTokenIs(lexer.TokenLBrace) {
			if record := p.parseRecordType(); record != nil {
				definition = record
			}
		} else if alias := p.parseTypeAlias(); alias != nil {
			definition = alias
		}
	}
	if definition == nil {
		return nil
	}
	p.terminated = true

	return &TypeStatement{
		Span:       SpanBetween(start, p.current),
		Name:       name,
		Definition: definition,
	}
}

// parseUnionType parses `| A [of T] | B ... ;` starting at the first `|`
func (p *Parser) parseUnionType() *UnionType {
	start := p.current
	variants := make([]*UnionVariant, 0)

	for {
		p.nextToken() // move to variant name

		if !p.currentTokenIs(lexer.TokenIdentifier) {
			p.addError(p.current, "union type", "expected variant name, got %s", p.current)
			return nil
		}
		variant := &UnionVariant{Span: TokenToSpan(p.current), Name: p.current.Literal}
		nameTok := p.current

		if p.peekTokenIs(lexer.TokenOf) {
			p.nextToken() // consume 'of'
			p.nextToken() // move to type
			ref := p.parseTypeReference(constructorVocabulary)
			if ref == nil {
				return nil
			}
			variant.Type = ref
			variant.Span = SpanBetween(nameTok, p.current)
		}
		variants = append(variants, variant)

		if !p.peekTokenIs(lexer.TokenPipe) {
			break
		}
		p.nextToken() // consume |
	}

	if !p.expectPeek(lexer.TokenSemicolon) {
		return nil
	}

	return &UnionType{Span: SpanBetween(start, p.current), Variants: variants}
}

// parseRecordType parses `{ name: type, ... };` starting at `{`
func (p *Parser) parseRecordType() *RecordType {
	start := p.current
	fields := make([]*RecordField, 0)

	for !p.peekTokenIs(lexer.TokenRBrace) {
		p.nextToken()

		if !p.currentTokenIs(lexer.TokenIdentifier) {
			p.addError(p.current, "record type", "expected field name, got %s", p.current)
			return nil
		}
		nameTok := p.current

		if !p.expectPeek(lexer.TokenColon) {
			return nil
		}
		p.nextToken()

		ref := p.parseTypeReference(primitiveVocabulary)
		if ref == nil {
			return nil
		}
		fields = append(fields, &RecordField{
			Span: SpanBetween(nameTok, p.current),
			Name: nameTok.Literal,
			Type: ref,
		})

		if p.peekTokenIs(lexer.TokenComma) {
			p.nextToken()
		} else if !p.peekTokenIs(lexer.TokenRBrace) {
			p.peekError(lexer.TokenComma)
			return nil
		}
	}

	if !p.expectPeek(lexer.TokenRBrace) || !p.expectPeek(lexer.TokenSemicolon) {
		return nil
	}

	return &RecordType{Span: SpanBetween(start, p.current), Fields: fields}
}

// parseTypeAlias parses `Type;`
func (p *Parser) parseTypeAlias() *AliasType {
	start := p.current

	target := p.parseTypeReference(constructorVocabulary)
	if target == nil {
		return nil
	}

	if !p.expectPeek(lexer.TokenSemicolon) {
		return nil
	}

	return &AliasType{Span: SpanBetween(start, p.current), Target: target}
}

// parseTypeReference parses a type name at current. Parametrized built-ins
// take exactly one nested parameter from the same vocabulary.
func (p *Parser) parseTypeReference(vocab typeVocabulary) *TypeReference {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	start := p.current

	if builtin, ok := parametrizedTypes[p.current.Type]; ok {
		p.nextToken()
		param := p.parseTypeReference(vocab)
		if param == nil {
			return nil
		}
		return &TypeReference{
			Span:       SpanBetween(start, p.current),
			Builtin:    builtin,
			Name:       builtin.String(),
			Parameters: []*TypeReference{param},
		}
	}

	simple := constructorTypes
	if vocab == primitiveVocabulary {
		simple = primitiveTypes
	}
	if builtin, ok := simple[p.current.Type]; ok {
		return &TypeReference{Span: TokenToSpan(p.current), Builtin: builtin, Name: builtin.String()}
	}

	switch {
	case p.currentTokenIs(lexer.TokenIdentifier):
		if !p.checkTypeName(p.current) {
			return nil
		}
		return &TypeReference{Span: TokenToSpan(p.current), Builtin: TypeCustom, Name: p.current.Literal}
	case vocab == primitiveVocabulary && lexer.IsTypeConstructor(p.current.Type):
		p.addError(p.current, "record type",
			"record field type %s must use the lowercase primitive names (int, float, string, char, bool, unit)", p.current)
	case vocab == constructorVocabulary && lexer.IsPrimitive(p.current.Type):
		p.addError(p.current, "type annotation",
			"primitive %s is only valid in record fields, use %s", p.current, primitiveTypes[p.current.Type])
	default:
		p.addError(p.current, "type annotation", "expected type name, got %s", p.current)
	}
	return nil
}

// checkTypeName reports a diagnostic when a custom type identifier does not
// start with an uppercase letter
func (p *Parser) checkTypeName(tok lexer.Token) bool {
	first, _ := utf8.DecodeRuneInString(tok.Literal)
	if unicode.IsUpper(first) {
		return true
	}
	p.addError(tok, "type naming", "custom type identifier '%s' must start with uppercase letter", tok.Literal)
	return false
}
