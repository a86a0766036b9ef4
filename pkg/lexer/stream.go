package lexer

import (
	"fmt"
	"io"

	"github.com/raymyers/cminus/pkg/diag"
)

// MaxErrors is the number of token mismatches tolerated before the stream
// gives up on the input.
const MaxErrors = 32

// Stream is the parser's view of the token sequence: a current token with
// one token of lookahead. Mismatches are reported through the shared
// reporter and never stop the stream from advancing.
type Stream struct {
	l         *Lexer
	curToken  Token
	peekToken Token
	report    *diag.Reporter
	errors    int
	err       error
	trace     io.Writer
}

// NewStream creates a Stream over l. When trace is non-nil every consumed
// token is echoed to it.
func NewStream(l *Lexer, report *diag.Reporter, trace io.Writer) *Stream {
	s := &Stream{l: l, report: report, trace: trace}
	// Read two tokens to initialize curToken and peekToken
	s.nextToken()
	s.nextToken()
	return s
}

func (s *Stream) nextToken() {
	s.curToken = s.peekToken
	if s.err != nil {
		// after a fatal error the stream behaves as if input ended
		s.curToken = Token{Type: TokenEOF, Line: s.curToken.Line, Column: s.curToken.Column}
		s.peekToken = s.curToken
		return
	}
	s.peekToken = s.l.NextToken()
}

// Token returns the current token
func (s *Stream) Token() Token {
	return s.curToken
}

// Peek returns the lookahead token
func (s *Stream) Peek() Token {
	return s.peekToken
}

// IsMatch reports whether the current token has type t
func (s *Stream) IsMatch(t TokenType) bool {
	return s.curToken.Type == t
}

// IsPeekMatch reports whether the lookahead token has type t
func (s *Stream) IsPeekMatch(t TokenType) bool {
	return s.peekToken.Type == t
}

// Match consumes the current token, reporting an error if it is not of
// type t. The stream advances either way.
func (s *Stream) Match(t TokenType) {
	if !s.IsMatch(t) {
		s.mismatch(t.String())
	}
	s.advance()
}

// Skip consumes the current token whatever it is. Error tokens are still
// reported.
func (s *Stream) Skip() {
	if s.IsMatch(TokenError) {
		s.mismatch("")
	}
	s.advance()
}

func (s *Stream) advance() {
	if s.trace != nil && s.err == nil {
		fmt.Fprintf(s.trace, "%s %s %d %d\n", s.curToken.Type, s.curToken.Literal, s.curToken.Line, s.curToken.Column)
	}
	s.nextToken()
}

// Fail reports the current token as unexpected where want was required.
// The token is not consumed.
func (s *Stream) Fail(want string) {
	s.mismatch(want)
}

func (s *Stream) mismatch(want string) {
	if s.err != nil {
		return
	}
	tok := s.curToken
	switch {
	case tok.Type == TokenError && tok.Literal == ErrLiteralOverflow:
		s.report.Errorf(diag.Lexical, tok.Line, tok.Column, "buffer overflow")
	case tok.Type == TokenError && tok.Literal == ErrLiteralEOF:
		s.report.Errorf(diag.Lexical, tok.Line, tok.Column, "unexpected end of file in comment")
	case tok.Type == TokenError:
		s.report.Errorf(diag.Lexical, tok.Line, tok.Column, "unrecognized character %q", tok.Literal)
	default:
		s.report.Errorf(diag.Syntax, tok.Line, tok.Column, "unexpected symbol %s, expected %s", describe(tok), want)
	}
	s.errors++
	if s.errors >= MaxErrors {
		s.err = fmt.Errorf("%w: %d token errors", diag.ErrErrorLimit, s.errors)
	}
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenIdent, TokenNum:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	}
	return tok.Type.String()
}

// Errors returns the number of mismatches reported by this stream
func (s *Stream) Errors() int {
	return s.errors
}

// Err returns the fatal error that stopped the stream, if any
func (s *Stream) Err() error {
	return s.err
}
