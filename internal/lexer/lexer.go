package lexer

import (
	"unicode"
	"unicode/utf8"
)

// Lexer turns Kestrel source text into tokens on demand.
// Once the input is exhausted every call to NextToken returns an EOF token.
type Lexer struct {
	input string

	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	width        int  // byte width of ch

	line   int
	column int
}

// New creates a new lexer instance. File names live on the parser, which
// attaches them to diagnostics.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0 // NUL represents EOF
		l.width = 0
	} else {
		l.ch, l.width = utf8.DecodeRuneInString(l.input[l.readPosition:])
	}
	l.readPosition += l.width
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// skipWhitespace skips whitespace characters and line comments
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.getCurrentPosition()

	if l.atEOF() {
		return Token{Type: TokenEOF, Span: Span{Start: start, End: start}}
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			return l.twoCharToken(TokenEq, start)
		}
		return l.oneCharToken(TokenAssign, start)
	case '/':
		if l.peekChar() == '=' {
			return l.twoCharToken(TokenNe, start)
		}
		return l.oneCharToken(TokenDiv, start)
	case '-':
		if l.peekChar() == '>' {
			return l.twoCharToken(TokenArrow, start)
		}
		return l.oneCharToken(TokenMinus, start)
	case '+':
		if l.peekChar() == '+' {
			return l.twoCharToken(TokenConcat, start)
		}
		return l.oneCharToken(TokenPlus, start)
	case '|':
		if l.peekChar() == '>' {
			return l.twoCharToken(TokenPipeForward, start)
		}
		return l.oneCharToken(TokenPipe, start)
	case ':':
		if l.peekChar() == ':' {
			return l.twoCharToken(TokenCons, start)
		}
		return l.oneCharToken(TokenColon, start)
	case '<':
		if l.peekChar() == '=' {
			return l.twoCharToken(TokenLe, start)
		}
		return l.oneCharToken(TokenLt, start)
	case '>':
		if l.peekChar() == '=' {
			return l.twoCharToken(TokenGe, start)
		}
		return l.oneCharToken(TokenGt, start)
	case '*':
		return l.oneCharToken(TokenMul, start)
	case '%':
		return l.oneCharToken(TokenMod, start)
	case '.':
		return l.oneCharToken(TokenDot, start)
	case '&':
		return l.oneCharToken(TokenAmpersand, start)
	case '^':
		return l.oneCharToken(TokenCaret, start)
	case '!':
		return l.oneCharToken(TokenBang, start)
	case ';':
		return l.oneCharToken(TokenSemicolon, start)
	case '(':
		return l.oneCharToken(TokenLParen, start)
	case ')':
		return l.oneCharToken(TokenRParen, start)
	case '{':
		return l.oneCharToken(TokenLBrace, start)
	case '}':
		return l.oneCharToken(TokenRBrace, start)
	case ',':
		return l.oneCharToken(TokenComma, start)
	}

	if isLetter(l.ch) {
		literal := l.readIdentifier()
		return l.newTokenFromPosition(LookupIdent(literal), literal, start)
	}

	if isDigit(l.ch) {
		literal, isFloat := l.readNumber()
		if isFloat {
			return l.newTokenFromPosition(TokenFloat, literal, start)
		}
		return l.newTokenFromPosition(TokenInteger, literal, start)
	}

	return l.oneCharToken(TokenIllegal, start)
}

// oneCharToken consumes the current character as a token of the given type
func (l *Lexer) oneCharToken(tokenType TokenType, start Position) Token {
	literal := string(l.ch)
	l.readChar()
	return l.newTokenFromPosition(tokenType, literal, start)
}

// twoCharToken consumes the current and the next character as a token
func (l *Lexer) twoCharToken(tokenType TokenType, start Position) Token {
	first := l.ch
	l.readChar()
	literal := string(first) + string(l.ch)
	l.readChar()
	return l.newTokenFromPosition(tokenType, literal, start)
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads an integer or float literal.
// A '.' only continues the number when a digit follows it, so `1.x` lexes as
// INTEGER DOT IDENTIFIER.
func (l *Lexer) readNumber() (string, bool) {
	position := l.position
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position], isFloat
}

// newTokenFromPosition creates a token spanning from start to the current position
func (l *Lexer) newTokenFromPosition(tokenType TokenType, literal string, start Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Span: Span{
			Start: start,
			End:   l.getCurrentPosition(),
		},
	}
}

// getCurrentPosition returns current position in source
func (l *Lexer) getCurrentPosition() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

func isLetter(ch rune) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') ||
		(ch >= utf8.RuneSelf && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize lexes the whole input. The returned slice always ends with an EOF token.
func Tokenize(input string) []Token {
	l := New(input)
	tokens := make([]Token, 0, len(input)/2+1)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}
