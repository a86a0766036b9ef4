// Package parser implements a recursive descent parser for C-
package parser

import (
	"fmt"
	"strconv"

	"github.com/raymyers/cminus/pkg/ast"
	"github.com/raymyers/cminus/pkg/diag"
	"github.com/raymyers/cminus/pkg/lexer"
)

// Parser builds an ast.Tree from a token stream
type Parser struct {
	s      *lexer.Stream
	tree   *ast.Tree
	report *diag.Reporter
	scope  int
	err    error // fatal, stops parsing
}

// New creates a new Parser reading from s. Diagnostics go to report,
// which should be the reporter the stream was created with.
func New(s *lexer.Stream, report *diag.Reporter) *Parser {
	return &Parser{s: s, tree: ast.NewTree(), report: report}
}

// Tree returns the tree built so far
func (p *Parser) Tree() *ast.Tree {
	return p.tree
}

// Err returns the fatal error that stopped parsing, if any
func (p *Parser) Err() error {
	if p.err != nil {
		return p.err
	}
	return p.s.Err()
}

// stopped reports whether parsing cannot make further progress
func (p *Parser) stopped() bool {
	return p.Err() != nil || p.s.IsMatch(lexer.TokenEOF)
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) {
	p.report.Errorf(diag.Syntax, tok.Line, tok.Column, format, args...)
}

func (p *Parser) isTypeSpecifier() bool {
	return p.s.IsMatch(lexer.TokenInt) || p.s.IsMatch(lexer.TokenVoid)
}

// ParseProgram parses a whole translation unit. The returned tree always
// starts with the built-in input and output declarations. A non-nil error
// is fatal; recoverable problems are only counted by the reporter.
func (p *Parser) ParseProgram() (*ast.Tree, error) {
	last := p.builtins()

	for !p.stopped() {
		if !p.isTypeSpecifier() {
			// report once, then skip to something that can start a declaration
			p.s.Match(lexer.TokenInt)
			for !p.stopped() && !p.isTypeSpecifier() {
				p.s.Skip()
			}
			continue
		}
		decl := p.parseDeclaration()
		p.tree.SetNext(last, decl)
		last = decl
	}
	if p.Err() == nil {
		p.s.Match(lexer.TokenEOF)
	}
	return p.tree, p.Err()
}

// builtins links `int input(void)` and `void output(int x)` at the root
// and returns the last of them.
func (p *Parser) builtins() ast.NodeID {
	input := p.tree.NewDecl(ast.DeclFunction, ast.TypeInt, "input", 0, 0, 0)
	output := p.tree.NewDecl(ast.DeclFunction, ast.TypeVoid, "output", 0, 0, 0)
	p.tree.SetChild(output, 0, p.tree.NewDecl(ast.DeclParameter, ast.TypeInt, "x", 0, 0, 0))
	p.tree.SetNext(input, output)
	p.tree.Root = input
	return output
}

// parseDeclaration parses a function or global variable declaration
func (p *Parser) parseDeclaration() ast.NodeID {
	start := p.s.Token()
	typ := ast.TypeInt
	if p.s.IsMatch(lexer.TokenVoid) {
		typ = ast.TypeVoid
	}
	p.s.Match(start.Type)

	name := p.s.Token().Literal
	p.s.Match(lexer.TokenIdent)

	if !p.s.IsMatch(lexer.TokenLParen) {
		return p.finishVarDeclaration(start, typ, name)
	}

	fn := p.tree.NewDecl(ast.DeclFunction, typ, name, start.Line, start.Column, p.scope)
	p.s.Match(lexer.TokenLParen)
	p.scope = 1
	p.tree.SetChild(fn, 0, p.parseParams(name))
	p.s.Match(lexer.TokenRParen)
	if p.Err() == nil {
		p.tree.SetChild(fn, 1, p.parseFunctionBody())
	}
	p.scope = 0
	return fn
}

// parseVarDeclaration parses a local variable declaration
func (p *Parser) parseVarDeclaration() ast.NodeID {
	start := p.s.Token()
	typ := ast.TypeInt
	if p.s.IsMatch(lexer.TokenVoid) {
		typ = ast.TypeVoid
	}
	p.s.Match(start.Type)

	name := p.s.Token().Literal
	p.s.Match(lexer.TokenIdent)
	return p.finishVarDeclaration(start, typ, name)
}

// finishVarDeclaration parses the optional array size and the closing
// semicolon of a variable declaration whose name has been consumed.
func (p *Parser) finishVarDeclaration(start lexer.Token, typ ast.Type, name string) ast.NodeID {
	if typ == ast.TypeVoid {
		p.errorf(start, "variable %s declared with void type", name)
	}
	decl := p.tree.NewDecl(ast.DeclVariable, typ, name, start.Line, start.Column, p.scope)

	if p.s.IsMatch(lexer.TokenLBracket) {
		p.s.Match(lexer.TokenLBracket)
		size := p.parseNumber()
		p.s.Match(lexer.TokenRBracket)
		n := p.tree.Node(decl)
		n.Type = ast.TypeArray
		n.Length = int(p.tree.Node(size).Value)
		p.tree.SetChild(decl, 0, size)
	}
	p.s.Match(lexer.TokenSemicolon)
	return decl
}

// parseParams parses `void` or a comma separated parameter list
func (p *Parser) parseParams(fn string) ast.NodeID {
	if p.s.IsMatch(lexer.TokenVoid) && !p.s.IsPeekMatch(lexer.TokenIdent) {
		p.s.Match(lexer.TokenVoid)
		return ast.None
	}
	if p.s.IsMatch(lexer.TokenRParen) {
		p.s.Fail("void")
		return ast.None
	}

	first := p.parseParam()
	last, count := first, 1
	for p.s.IsMatch(lexer.TokenComma) && p.Err() == nil {
		p.s.Match(lexer.TokenComma)
		param := p.parseParam()
		count++
		if count > ast.MaxParams {
			tok := p.s.Token()
			p.errorf(tok, "function parameter limit (%d) exceeded in declaration of %s", ast.MaxParams, fn)
			p.err = fmt.Errorf("%w: %s", diag.ErrParamLimit, fn)
			return first
		}
		p.tree.SetNext(last, param)
		last = param
	}
	return first
}

func (p *Parser) parseParam() ast.NodeID {
	start := p.s.Token()
	typ := ast.TypeInt
	if p.s.IsMatch(lexer.TokenVoid) {
		typ = ast.TypeVoid
		p.s.Match(lexer.TokenVoid)
	} else {
		p.s.Match(lexer.TokenInt)
	}

	name := p.s.Token().Literal
	p.s.Match(lexer.TokenIdent)
	if typ == ast.TypeVoid {
		p.errorf(start, "parameter %s declared with void type", name)
	}

	param := p.tree.NewDecl(ast.DeclParameter, typ, name, start.Line, start.Column, p.scope)
	if p.s.IsMatch(lexer.TokenLBracket) {
		p.s.Match(lexer.TokenLBracket)
		p.s.Match(lexer.TokenRBracket)
		p.tree.Node(param).Type = ast.TypeArray
	}
	return param
}

// parseFunctionBody parses `{ local-declarations statement-list }`. The
// body's first child holds the locals and its second the statements; a
// function-end marker follows it on the sibling chain.
func (p *Parser) parseFunctionBody() ast.NodeID {
	p.s.Match(lexer.TokenLBrace)
	start := p.s.Token()
	body := p.tree.NewStmt(ast.StmtFuncBody, start.Line, start.Column, p.scope)

	var first, last ast.NodeID = ast.None, ast.None
	for p.isTypeSpecifier() && p.Err() == nil {
		decl := p.parseVarDeclaration()
		if first == ast.None {
			first = decl
		} else {
			p.tree.SetNext(last, decl)
		}
		last = decl
	}
	p.tree.SetChild(body, 0, first)
	p.tree.SetChild(body, 1, p.parseStatementList())

	end := p.s.Token()
	p.tree.SetNext(body, p.tree.NewStmt(ast.StmtFuncEnd, end.Line, end.Column, p.scope))
	p.s.Match(lexer.TokenRBrace)
	return body
}

func (p *Parser) parseStatementList() ast.NodeID {
	var first, last ast.NodeID = ast.None, ast.None
	for !p.s.IsMatch(lexer.TokenRBrace) && !p.stopped() {
		stmt := p.parseStatement()
		if first == ast.None {
			first = stmt
		} else {
			p.tree.SetNext(last, stmt)
		}
		last = stmt
	}
	return first
}

func (p *Parser) parseStatement() ast.NodeID {
	switch p.s.Token().Type {
	case lexer.TokenIf:
		return p.parseSelectionStatement()
	case lexer.TokenWhile:
		return p.parseIterationStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenLBrace:
		return p.parseCompoundStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseSelectionStatement() ast.NodeID {
	tok := p.s.Token()
	node := p.tree.NewStmt(ast.StmtIf, tok.Line, tok.Column, p.scope)
	p.s.Match(lexer.TokenIf)
	p.s.Match(lexer.TokenLParen)
	p.tree.SetChild(node, 0, p.parseExpression())
	p.s.Match(lexer.TokenRParen)
	p.tree.SetChild(node, 1, p.parseStatement())

	if p.s.IsMatch(lexer.TokenElse) {
		p.s.Match(lexer.TokenElse)
		p.tree.SetChild(node, 2, p.parseStatement())
	}
	return node
}

func (p *Parser) parseIterationStatement() ast.NodeID {
	tok := p.s.Token()
	node := p.tree.NewStmt(ast.StmtWhile, tok.Line, tok.Column, p.scope)
	p.s.Match(lexer.TokenWhile)
	p.s.Match(lexer.TokenLParen)
	p.tree.SetChild(node, 0, p.parseExpression())
	p.s.Match(lexer.TokenRParen)
	p.tree.SetChild(node, 1, p.parseStatement())
	return node
}

func (p *Parser) parseReturnStatement() ast.NodeID {
	tok := p.s.Token()
	node := p.tree.NewStmt(ast.StmtReturn, tok.Line, tok.Column, p.scope)
	p.s.Match(lexer.TokenReturn)
	if !p.s.IsMatch(lexer.TokenSemicolon) {
		p.tree.SetChild(node, 0, p.parseSimpleExpression())
	}
	p.s.Match(lexer.TokenSemicolon)
	return node
}

func (p *Parser) parseCompoundStatement() ast.NodeID {
	p.s.Match(lexer.TokenLBrace)
	tok := p.s.Token()
	node := p.tree.NewStmt(ast.StmtCompound, tok.Line, tok.Column, p.scope)
	p.tree.SetChild(node, 0, p.parseStatementList())
	p.s.Match(lexer.TokenRBrace)
	return node
}

// parseExpressionStatement parses `[expression] ;`. An empty statement
// yields an expression statement without a child.
func (p *Parser) parseExpressionStatement() ast.NodeID {
	tok := p.s.Token()
	node := p.tree.NewStmt(ast.StmtExpr, tok.Line, tok.Column, p.scope)
	if !p.s.IsMatch(lexer.TokenSemicolon) {
		p.tree.SetChild(node, 0, p.parseExpression())
	}
	p.s.Match(lexer.TokenSemicolon)
	return node
}

// parseExpression parses `var = expression` or a simple expression. The
// left side is parsed as a simple expression first; it becomes an
// assignment target only if it turned out to be a bare variable.
func (p *Parser) parseExpression() ast.NodeID {
	left := p.parseSimpleExpression()
	if !p.s.IsMatch(lexer.TokenAssign) || !p.tree.IsVar(left) {
		return left
	}

	node := p.tree.NewExpr(ast.ExprAssign, p.s.Token(), p.scope)
	p.s.Match(lexer.TokenAssign)
	p.tree.SetChild(node, 0, left)
	p.tree.SetChild(node, 1, p.parseExpression())
	return node
}

func (p *Parser) parseSimpleExpression() ast.NodeID {
	node := p.parseAdditiveExpression()
	for p.s.Token().Type.IsRelational() {
		op := p.tree.NewExpr(ast.ExprRelational, p.s.Token(), p.scope)
		p.s.Match(p.s.Token().Type)
		p.tree.SetChild(op, 0, node)
		p.tree.SetChild(op, 1, p.parseAdditiveExpression())
		node = op
	}
	return node
}

func (p *Parser) parseAdditiveExpression() ast.NodeID {
	node := p.parseTerm()
	for p.s.IsMatch(lexer.TokenPlus) || p.s.IsMatch(lexer.TokenMinus) {
		op := p.tree.NewExpr(ast.ExprBinary, p.s.Token(), p.scope)
		p.s.Match(p.s.Token().Type)
		p.tree.SetChild(op, 0, node)
		p.tree.SetChild(op, 1, p.parseTerm())
		node = op
	}
	return node
}

func (p *Parser) parseTerm() ast.NodeID {
	node := p.parseFactor()
	for p.s.IsMatch(lexer.TokenStar) || p.s.IsMatch(lexer.TokenSlash) {
		op := p.tree.NewExpr(ast.ExprBinary, p.s.Token(), p.scope)
		p.s.Match(p.s.Token().Type)
		p.tree.SetChild(op, 0, node)
		p.tree.SetChild(op, 1, p.parseFactor())
		node = op
	}
	return node
}

func (p *Parser) parseFactor() ast.NodeID {
	tok := p.s.Token()
	switch tok.Type {
	case lexer.TokenLParen:
		p.s.Match(lexer.TokenLParen)
		node := p.parseExpression()
		p.s.Match(lexer.TokenRParen)
		return node

	case lexer.TokenNum:
		return p.parseNumber()

	case lexer.TokenIdent:
		if p.s.IsPeekMatch(lexer.TokenLParen) {
			node := p.tree.NewExpr(ast.ExprCall, tok, p.scope)
			p.s.Match(lexer.TokenIdent)
			p.s.Match(lexer.TokenLParen)
			p.tree.SetChild(node, 0, p.parseArgs())
			p.s.Match(lexer.TokenRParen)
			return node
		}
		node := p.tree.NewExpr(ast.ExprVariable, tok, p.scope)
		p.s.Match(lexer.TokenIdent)
		if p.s.IsMatch(lexer.TokenLBracket) {
			p.s.Match(lexer.TokenLBracket)
			p.tree.SetChild(node, 0, p.parseAdditiveExpression())
			p.s.Match(lexer.TokenRBracket)
		}
		return node
	}

	if tok.Type == lexer.TokenError {
		p.s.Skip()
		return p.parseFactor()
	}
	// leave the token for the caller's Match to consume
	p.s.Fail("expression")
	return p.tree.NewNumber(0, tok.Line, tok.Column, p.scope)
}

func (p *Parser) parseArgs() ast.NodeID {
	if p.s.IsMatch(lexer.TokenRParen) {
		return ast.None
	}
	first := p.parseExpression()
	last := first
	for p.s.IsMatch(lexer.TokenComma) && p.Err() == nil {
		p.s.Match(lexer.TokenComma)
		arg := p.parseExpression()
		p.tree.SetNext(last, arg)
		last = arg
	}
	return first
}

// parseNumber consumes an integer literal. Values that do not fit in 32
// bits are reported and read as zero.
func (p *Parser) parseNumber() ast.NodeID {
	tok := p.s.Token()
	var value int64
	if tok.Type == lexer.TokenNum {
		v, err := strconv.ParseInt(tok.Literal, 10, 32)
		if err != nil {
			p.errorf(tok, "integer literal %s out of range", tok.Literal)
		} else {
			value = v
		}
	}
	p.s.Match(lexer.TokenNum)
	return p.tree.NewNumber(int32(value), tok.Line, tok.Column, p.scope)
}
