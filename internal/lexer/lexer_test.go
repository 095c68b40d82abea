package lexer

import "testing"

func TestBasicTokens(t *testing.T) {
	input := `let add = fn x, y -> {
	x + y
};`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{TokenLet, "let"},
		{TokenIdentifier, "add"},
		{TokenAssign, "="},
		{TokenFn, "fn"},
		{TokenIdentifier, "x"},
		{TokenComma, ","},
		{TokenIdentifier, "y"},
		{TokenArrow, "->"},
		{TokenLBrace, "{"},
		{TokenIdentifier, "x"},
		{TokenPlus, "+"},
		{TokenIdentifier, "y"},
		{TokenRBrace, "}"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `let return type fn if else of Some None Ok Error true false`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{TokenLet, "let"},
		{TokenReturn, "return"},
		{TokenTypeDecl, "type"},
		{TokenFn, "fn"},
		{TokenIf, "if"},
		{TokenElse, "else"},
		{TokenOf, "of"},
		{TokenSome, "Some"},
		{TokenNone, "None"},
		{TokenOk, "Ok"},
		{TokenError, "Error"},
		{TokenBool, "true"},
		{TokenBool, "false"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - expected %s %q, got %s %q",
				i, tt.expectedType, tt.expectedValue, tok.Type, tok.Literal)
		}
	}
}

func TestTypeVocabularies(t *testing.T) {
	input := `Int Float String Char Bool Unit List Option Result Map int float string char bool unit Shape`

	expected := []TokenType{
		TokenIntType, TokenFloatType, TokenStringType, TokenCharType, TokenBoolType, TokenUnitType,
		TokenList, TokenOption, TokenResult, TokenMap,
		TokenIntPrim, TokenFloatPrim, TokenStringPrim, TokenCharPrim, TokenBoolPrim, TokenUnitPrim,
		TokenIdentifier, TokenEOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - expected %s, got %s", i, want, tok.Type)
		}
	}

	for _, tt := range expected[:10] {
		if !IsTypeConstructor(tt) || IsPrimitive(tt) {
			t.Errorf("%s should be a type constructor only", tt)
		}
	}
	for _, tt := range expected[10:16] {
		if !IsPrimitive(tt) || IsTypeConstructor(tt) {
			t.Errorf("%s should be a primitive only", tt)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % . == /= < > <= >= |> :: ++ & ^ ! = ; ( ) { } , : | ->`

	expected := []TokenType{
		TokenPlus, TokenMinus, TokenMul, TokenDiv, TokenMod, TokenDot,
		TokenEq, TokenNe, TokenLt, TokenGt, TokenLe, TokenGe,
		TokenPipeForward, TokenCons, TokenConcat, TokenAmpersand, TokenCaret, TokenBang,
		TokenAssign, TokenSemicolon, TokenLParen, TokenRParen, TokenLBrace, TokenRBrace,
		TokenComma, TokenColon, TokenPipe, TokenArrow, TokenEOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - expected %s, got %s (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected []Token
	}{
		{"42", []Token{{Type: TokenInteger, Literal: "42"}}},
		{"3.14", []Token{{Type: TokenFloat, Literal: "3.14"}}},
		{"1.x", []Token{
			{Type: TokenInteger, Literal: "1"},
			{Type: TokenDot, Literal: "."},
			{Type: TokenIdentifier, Literal: "x"},
		}},
		{"99999999999999999999", []Token{{Type: TokenInteger, Literal: "99999999999999999999"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			for i, want := range tt.expected {
				tok := l.NextToken()
				if tok.Type != want.Type || tok.Literal != want.Literal {
					t.Fatalf("token %d - expected %s %q, got %s %q",
						i, want.Type, want.Literal, tok.Type, tok.Literal)
				}
			}
			if tok := l.NextToken(); tok.Type != TokenEOF {
				t.Fatalf("expected EOF, got %s", tok)
			}
		})
	}
}

func TestCommentsAndIllegal(t *testing.T) {
	input := "// leading comment\nx // trailing\n# y"

	l := New(input)

	tok := l.NextToken()
	if tok.Type != TokenIdentifier || tok.Literal != "x" {
		t.Fatalf("expected identifier x, got %s", tok)
	}

	tok = l.NextToken()
	if tok.Type != TokenIllegal || tok.Literal != "#" {
		t.Fatalf("expected ILLEGAL #, got %s", tok)
	}

	if tok := l.NextToken(); tok.Literal != "y" {
		t.Fatalf("expected identifier y, got %s", tok)
	}
}

func TestEOFIsAbsorbing(t *testing.T) {
	l := New("x")
	l.NextToken()
	for i := 0; i < 5; i++ {
		if tok := l.NextToken(); tok.Type != TokenEOF {
			t.Fatalf("call %d: expected EOF, got %s", i, tok)
		}
	}
}

func TestPositions(t *testing.T) {
	input := "let x =\n  42;"

	tests := []struct {
		literal string
		line    int
		column  int
	}{
		{"let", 1, 1},
		{"x", 1, 5},
		{"=", 1, 7},
		{"42", 2, 3},
		{";", 2, 5},
	}

	l := New(input)
	for _, tt := range tests {
		tok := l.NextToken()
		if tok.Literal != tt.literal {
			t.Fatalf("expected literal %q, got %q", tt.literal, tok.Literal)
		}
		if tok.Span.Start.Line != tt.line || tok.Span.Start.Column != tt.column {
			t.Errorf("%q: expected %d:%d, got %s", tt.literal, tt.line, tt.column, tok.Span.Start)
		}
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("type Point = { x: int };")
	if len(tokens) != 10 {
		t.Fatalf("expected 10 tokens, got %d: %v", len(tokens), tokens)
	}
	if last := tokens[len(tokens)-1]; last.Type != TokenEOF {
		t.Fatalf("expected trailing EOF, got %s", last)
	}
	if empty := Tokenize(""); len(empty) != 1 || empty[0].Type != TokenEOF {
		t.Fatalf("expected single EOF for empty input, got %v", empty)
	}
}
