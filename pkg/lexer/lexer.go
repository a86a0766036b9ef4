// Package lexer turns C- source text into tokens.
package lexer

// MaxLexeme is the longest identifier or number accepted before the scanner
// reports a buffer overflow.
const MaxLexeme = 256

// Lexer tokenizes C- source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int
	column  int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		if l.ch != '/' || l.peekChar() != '*' {
			break
		}
		line, col := l.line, l.column
		if !l.skipComment() {
			return Token{Type: TokenError, Literal: ErrLiteralEOF, Line: line, Column: col}
		}
	}

	tok := Token{Line: l.line, Column: l.column}

	if l.atEOF() {
		tok.Type = TokenEOF
		return tok
	}

	switch l.ch {
	case '+':
		tok = l.newToken(TokenPlus)
	case '-':
		tok = l.newToken(TokenMinus)
	case '*':
		tok = l.newToken(TokenStar)
	case '/':
		tok = l.newToken(TokenSlash)
	case '=':
		tok = l.twoCharToken('=', TokenEq, TokenAssign)
	case '!':
		tok = l.twoCharToken('=', TokenNe, TokenError)
	case '<':
		tok = l.twoCharToken('=', TokenLe, TokenLt)
	case '>':
		tok = l.twoCharToken('=', TokenGe, TokenGt)
	case '(':
		tok = l.newToken(TokenLParen)
	case ')':
		tok = l.newToken(TokenRParen)
	case '{':
		tok = l.newToken(TokenLBrace)
	case '}':
		tok = l.newToken(TokenRBrace)
	case '[':
		tok = l.newToken(TokenLBracket)
	case ']':
		tok = l.newToken(TokenRBracket)
	case ';':
		tok = l.newToken(TokenSemicolon)
	case ',':
		tok = l.newToken(TokenComma)
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readWhile(isLetter)
			tok.Type = LookupIdent(tok.Literal)
			if len(tok.Literal) > MaxLexeme {
				tok.Type, tok.Literal = TokenError, ErrLiteralOverflow
			}
			return tok
		} else if isDigit(l.ch) {
			tok.Type = TokenNum
			tok.Literal = l.readWhile(isDigit)
			if len(tok.Literal) > MaxLexeme {
				tok.Type, tok.Literal = TokenError, ErrLiteralOverflow
			}
			return tok
		}
		tok = l.newToken(TokenError)
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType TokenType) Token {
	return Token{Type: tokenType, Literal: string(l.ch), Line: l.line, Column: l.column}
}

// twoCharToken returns pair when the next character is second, else single
func (l *Lexer) twoCharToken(second byte, pair, single TokenType) Token {
	if l.peekChar() == second {
		tok := Token{Type: pair, Literal: string(l.ch) + string(second), Line: l.line, Column: l.column}
		l.readChar()
		return tok
	}
	return l.newToken(single)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v' {
		l.readChar()
	}
}

// skipComment consumes a /* */ block. It returns false if input ended first.
func (l *Lexer) skipComment() bool {
	l.readChar() // consume /
	l.readChar() // consume *
	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume *
			l.readChar() // consume /
			return true
		}
		l.readChar()
	}
	return false
}

func (l *Lexer) readWhile(pred func(byte) bool) string {
	pos := l.pos
	for !l.atEOF() && pred(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
