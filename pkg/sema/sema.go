// Package sema performs semantic analysis of a parsed C- tree: it fills the
// symbol table scope by scope, resolves every reference and checks types,
// calls and return statements.
package sema

import (
	"io"

	"github.com/raymyers/cminus/pkg/ast"
	"github.com/raymyers/cminus/pkg/diag"
	"github.com/raymyers/cminus/pkg/symtab"
)

// Analyzer walks a tree once, annotating references in place
type Analyzer struct {
	tree     *ast.Tree
	table    *symtab.Table
	report   *diag.Reporter
	mainSeen bool
	refs     map[ast.NodeID]bool // references already resolved, and whether they succeeded
}

// New creates an Analyzer for tree. When trace is non-nil the symbol table
// is dumped to it at every scope transition.
func New(tree *ast.Tree, report *diag.Reporter, trace io.Writer) *Analyzer {
	return &Analyzer{
		tree:   tree,
		table:  symtab.New(report, trace),
		report: report,
		refs:   make(map[ast.NodeID]bool),
	}
}

// Analyze checks the whole tree. Errors are reported and counted; only the
// parameter limit stops the walk and is returned.
func Analyze(tree *ast.Tree, report *diag.Reporter, trace io.Writer) error {
	return New(tree, report, trace).Run()
}

// Run performs the analysis
func (a *Analyzer) Run() error {
	if a.tree.Root == ast.None {
		return nil
	}
	if err := a.table.OpenGlobal(a.tree); err != nil {
		return err
	}
	if err := a.walk(a.tree.Root); err != nil {
		return err
	}
	if !a.mainSeen {
		a.report.Errorf(diag.Semantic, 0, 0, "main function not declared")
	}
	return nil
}

// Table returns the symbol table in its final (global scope) state
func (a *Analyzer) Table() *symtab.Table {
	return a.table
}

func (a *Analyzer) errorf(id ast.NodeID, format string, args ...any) {
	n := a.tree.Node(id)
	a.report.Errorf(diag.Semantic, n.Line, n.Column, format, args...)
}

// isBuiltin reports whether id is one of the two declarations the parser
// synthesizes at the head of the tree
func (a *Analyzer) isBuiltin(id ast.NodeID) bool {
	return id == a.tree.Root || id == a.tree.Next(a.tree.Root)
}

// walk visits id, then its children, then the rest of its sibling chain
func (a *Analyzer) walk(id ast.NodeID) error {
	for ; id != ast.None; id = a.tree.Next(id) {
		if err := a.visit(id); err != nil {
			return err
		}
		for i := 0; i < ast.MaxChildren; i++ {
			if err := a.walk(a.tree.Child(id, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Analyzer) visit(id ast.NodeID) error {
	t := a.tree
	switch {
	case t.IsFuncDecl(id):
		if a.isBuiltin(id) {
			return nil
		}
		return a.function(id)
	case t.IsFuncEnd(id):
		a.table.EndScope()
	case t.IsVarDecl(id):
		if t.Node(id).Scope == 0 {
			_, err := a.table.Insert(t, id)
			return err
		}
	case t.IsMathOp(id):
		a.mathOp(id)
	case t.IsRelational(id):
		a.relational(id)
	case t.IsAssign(id):
		a.assignment(id)
	case t.IsCall(id), t.IsVar(id):
		a.ref(id)
	}
	return nil
}

func (a *Analyzer) function(id ast.NodeID) error {
	n := a.tree.Node(id)
	if a.mainSeen {
		a.errorf(id, "function %s declared after main", n.Name)
	}
	if _, ok := a.table.Lookup(n.Name, n.Scope); ok {
		a.errorf(id, "function %s previously declared", n.Name)
	}
	if a.tree.IsMainDecl(id) {
		if n.Type != ast.TypeVoid {
			a.errorf(id, "main must be declared void")
		}
		if a.tree.Child(id, 0) != ast.None {
			a.errorf(id, "main must not take parameters")
		}
		a.mainSeen = true
	}
	if err := a.table.StartScope(a.tree, id); err != nil {
		return err
	}
	a.checkReturns(id, a.tree.Child(id, 1))
	return nil
}

// ref resolves a variable or call reference and annotates it. Each
// reference is resolved and diagnosed only once, however many parent
// checks ask about it.
func (a *Analyzer) ref(id ast.NodeID) bool {
	if ok, done := a.refs[id]; done {
		return ok
	}
	t := a.tree
	n := t.Node(id)
	e, ok := a.table.Resolve(t, id)
	isCall := t.IsCall(id)
	switch {
	case !ok && isCall:
		a.errorf(id, "undeclared function %s", n.Name)
	case !ok:
		a.errorf(id, "undeclared variable %s", n.Name)
	case isCall && !e.IsFunc():
		a.errorf(id, "%s is not a function", n.Name)
		ok = false
	case !isCall && e.IsFunc():
		a.errorf(id, "invalid use of function %s", n.Name)
		ok = false
	case !isCall && t.Child(id, 0) != ast.None && e.Type != ast.TypeArray:
		a.errorf(id, "%s is not an array", n.Name)
		ok = false
	}
	a.refs[id] = ok
	if !ok {
		return false
	}
	t.Annotate(id, e.Resolution())
	if isCall {
		a.table.CheckCall(t, id, e)
	}
	return true
}

// valueType returns the type id yields when used as an operand. It is
// false for references that could not be resolved.
func (a *Analyzer) valueType(id ast.NodeID) (ast.Type, bool) {
	t := a.tree
	if t.IsVar(id) || t.IsCall(id) {
		if !a.ref(id) {
			return ast.TypeVoid, false
		}
		return t.Node(id).Type, true
	}
	return ast.TypeInt, true
}

func (a *Analyzer) voidOperand(id ast.NodeID) {
	a.errorf(id, "invalid use of void type: %s", a.tree.Node(id).Name)
}

func (a *Analyzer) mathOp(id ast.NodeID) {
	t := a.tree
	t.Node(id).Type = ast.TypeInt
	left, right := t.Child(id, 0), t.Child(id, 1)
	if t.IsRelational(left) || t.IsRelational(right) {
		a.errorf(id, "invalid use of relational operator")
	}

	lt, lok := a.valueType(left)
	rt, rok := a.valueType(right)
	if !lok || !rok {
		return
	}
	if lt == ast.TypeVoid {
		a.voidOperand(left)
	}
	if rt == ast.TypeVoid {
		a.voidOperand(right)
	}
	// an array name denotes its base address
	if lt == ast.TypeArray {
		lt = ast.TypeInt
	}
	if rt == ast.TypeArray {
		rt = ast.TypeInt
	}
	if lt != rt {
		a.errorf(id, "type mismatch in %s expression", t.Node(id).Op)
	}
}

func (a *Analyzer) relational(id ast.NodeID) {
	t := a.tree
	t.Node(id).Type = ast.TypeInt
	for _, c := range []ast.NodeID{t.Child(id, 0), t.Child(id, 1)} {
		if typ, ok := a.valueType(c); ok && t.IsCall(c) && typ == ast.TypeVoid {
			a.voidOperand(c)
		}
	}
}

func (a *Analyzer) assignment(id ast.NodeID) {
	t := a.tree
	t.Node(id).Type = ast.TypeInt
	left, right := t.Child(id, 0), t.Child(id, 1)

	if typ, ok := a.valueType(left); ok && typ == ast.TypeArray {
		a.errorf(left, "invalid assignment to array %s", t.Node(left).Name)
	}
	if t.IsRelational(right) {
		a.errorf(right, "cannot assign relational expression")
	}
	if typ, ok := a.valueType(right); ok && typ == ast.TypeVoid {
		a.voidOperand(right)
	}
}

// checkReturns validates every return statement below id against the
// declared return type of fn
func (a *Analyzer) checkReturns(fn, id ast.NodeID) {
	t := a.tree
	for ; id != ast.None && !t.IsFuncEnd(id); id = t.Next(id) {
		if t.IsReturn(id) {
			a.checkReturn(fn, id)
		}
		for _, c := range t.Node(id).Children {
			a.checkReturns(fn, c)
		}
	}
}

func (a *Analyzer) checkReturn(fn, ret ast.NodeID) {
	t := a.tree
	name := t.Node(fn).Name
	value := t.Child(ret, 0)

	switch t.Node(fn).Type {
	case ast.TypeVoid:
		if value != ast.None {
			a.errorf(ret, "void function %s returns a value", name)
		}
	case ast.TypeInt:
		if value == ast.None {
			a.errorf(ret, "integer function %s returns no value", name)
			return
		}
		if typ, ok := a.valueType(value); ok && typ != ast.TypeInt {
			a.errorf(ret, "integer function %s does not return an integer", name)
		}
	}
}
