package lexer

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF   TokenType = iota
	TokenError           // unrecognized character, unterminated comment, overflow

	// Literals
	TokenIdent // main, foo, x
	TokenNum   // 42

	// Keywords
	TokenIf     // if
	TokenWhile  // while
	TokenElse   // else
	TokenInt    // int
	TokenReturn // return
	TokenVoid   // void

	// Operators
	TokenPlus   // +
	TokenMinus  // -
	TokenStar   // *
	TokenSlash  // /
	TokenLt     // <
	TokenGt     // >
	TokenLe     // <=
	TokenGe     // >=
	TokenEq     // ==
	TokenNe     // !=
	TokenAssign // =

	// Delimiters
	TokenComma     // ,
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLParen    // (
	TokenRParen    // )
	TokenSemicolon // ;
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenError:     "ERROR",
	TokenIdent:     "ID",
	TokenNum:       "NUM",
	TokenIf:        "if",
	TokenWhile:     "while",
	TokenElse:      "else",
	TokenInt:       "int",
	TokenReturn:    "return",
	TokenVoid:      "void",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSlash:     "/",
	TokenLt:        "<",
	TokenGt:        ">",
	TokenLe:        "<=",
	TokenGe:        ">=",
	TokenEq:        "==",
	TokenNe:        "!=",
	TokenAssign:    "=",
	TokenComma:     ",",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenSemicolon: ";",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsRelational reports whether t is one of < > <= >= == !=
func (t TokenType) IsRelational() bool {
	switch t {
	case TokenLt, TokenGt, TokenLe, TokenGe, TokenEq, TokenNe:
		return true
	}
	return false
}

// IsMath reports whether t is one of + - * /
func (t TokenType) IsMath() bool {
	switch t {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash:
		return true
	}
	return false
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// Literals carried by TokenError for the two special failure modes.
const (
	ErrLiteralOverflow = "Buffer"
	ErrLiteralEOF      = "EOF"
)

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"if":     TokenIf,
	"while":  TokenWhile,
	"else":   TokenElse,
	"int":    TokenInt,
	"return": TokenReturn,
	"void":   TokenVoid,
}

// LookupIdent returns the token type for an identifier (keyword or ID)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
