package lexer

import (
	"strings"
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `int main(void) { return 42; }`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenInt, "int"},
		{TokenIdent, "main"},
		{TokenLParen, "("},
		{TokenVoid, "void"},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenReturn, "return"},
		{TokenNum, "42"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / = == != < <= > >= , [ ] { } ( ) ;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenSlash, "/"},
		{TokenAssign, "="},
		{TokenEq, "=="},
		{TokenNe, "!="},
		{TokenLt, "<"},
		{TokenLe, "<="},
		{TokenGt, ">"},
		{TokenGe, ">="},
		{TokenComma, ","},
		{TokenLBracket, "["},
		{TokenRBracket, "]"},
		{TokenLBrace, "{"},
		{TokenRBrace, "}"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
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

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `if while else int return void iff Void`
	want := []TokenType{TokenIf, TokenWhile, TokenElse, TokenInt, TokenReturn, TokenVoid, TokenIdent, TokenIdent, TokenEOF}

	l := New(input)
	for i, w := range want {
		if got := l.NextToken().Type; got != w {
			t.Errorf("token %d: got %s, want %s", i, got, w)
		}
	}
}

func TestIdentifiersAreLettersOnly(t *testing.T) {
	l := New(`abc123`)
	tok := l.NextToken()
	if tok.Type != TokenIdent || tok.Literal != "abc" {
		t.Fatalf("got %s %q, want ID \"abc\"", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != TokenNum || tok.Literal != "123" {
		t.Fatalf("got %s %q, want NUM \"123\"", tok.Type, tok.Literal)
	}
}

func TestComments(t *testing.T) {
	input := "/* leading */ x /* multi\nline * / still */ y"
	l := New(input)

	tok := l.NextToken()
	if tok.Type != TokenIdent || tok.Literal != "x" {
		t.Fatalf("got %s %q, want x", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != TokenIdent || tok.Literal != "y" {
		t.Fatalf("got %s %q, want y", tok.Type, tok.Literal)
	}
	if tok.Line != 2 {
		t.Errorf("y on line %d, want 2", tok.Line)
	}
	if l.NextToken().Type != TokenEOF {
		t.Error("expected EOF")
	}
}

func TestErrorTokens(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
	}{
		{"unrecognized character", "@", "@"},
		{"lone bang", "!", "!"},
		{"unterminated comment", "/* never closed", ErrLiteralEOF},
		{"identifier overflow", strings.Repeat("a", MaxLexeme+1), ErrLiteralOverflow},
		{"number overflow", strings.Repeat("9", MaxLexeme+1), ErrLiteralOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.input).NextToken()
			if tok.Type != TokenError {
				t.Fatalf("got %s, want ERROR", tok.Type)
			}
			if tok.Literal != tt.literal {
				t.Errorf("literal = %q, want %q", tok.Literal, tt.literal)
			}
		})
	}
}

func TestLineAndColumn(t *testing.T) {
	l := New("int x;\n  y = 1;")
	want := []struct{ line, col int }{
		{1, 1}, {1, 5}, {1, 6}, {2, 3}, {2, 5}, {2, 7}, {2, 8},
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Line != w.line || tok.Column != w.col {
			t.Errorf("token %d (%s): got %d:%d, want %d:%d", i, tok.Type, tok.Line, tok.Column, w.line, w.col)
		}
	}
}

func TestTokenTypeClassifiers(t *testing.T) {
	for _, tt := range []TokenType{TokenLt, TokenGt, TokenLe, TokenGe, TokenEq, TokenNe} {
		if !tt.IsRelational() || tt.IsMath() {
			t.Errorf("%s should be relational only", tt)
		}
	}
	for _, tt := range []TokenType{TokenPlus, TokenMinus, TokenStar, TokenSlash} {
		if !tt.IsMath() || tt.IsRelational() {
			t.Errorf("%s should be math only", tt)
		}
	}
	if TokenAssign.IsMath() || TokenAssign.IsRelational() {
		t.Error("= is neither math nor relational")
	}
	if TokenType(999).String() != "UNKNOWN" {
		t.Error("unknown token type should print UNKNOWN")
	}
}
