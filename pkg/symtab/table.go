// Package symtab implements the scoped symbol table: a chained hash table
// of declarations plus an insertion log that lets a scope be undone exactly.
package symtab

import (
	"fmt"
	"io"

	"github.com/raymyers/cminus/pkg/ast"
	"github.com/raymyers/cminus/pkg/diag"
)

// Size is the number of hash buckets
const Size = 211

// boundary separates scopes in the insertion log
const boundary = "$"

// Table is a scoped symbol table. Each bucket lists its entries most
// recently inserted first, so the innermost visible declaration of a name
// is always found before any it shadows.
type Table struct {
	buckets [Size][]Entry
	log     []string
	frames  []int // log index of each open scope's boundary
	report  *diag.Reporter
	trace   io.Writer
}

// New creates an empty table. When trace is non-nil the whole table is
// dumped to it at every scope transition.
func New(report *diag.Reporter, trace io.Writer) *Table {
	return &Table{report: report, trace: trace}
}

func hash(name string) int {
	key := 0
	for i := 0; i < len(name); i++ {
		key = ((key + int(name[i])) << 2) % Size
	}
	return key
}

// Insert adds the declaration id. A name already declared in the same
// scope is reported and not inserted; one declared in an outer scope is
// shadowed. The error is non-nil only for the fatal parameter limit.
func (t *Table) Insert(tree *ast.Tree, id ast.NodeID) (bool, error) {
	e, err := NewEntry(tree, id)
	if err != nil {
		return false, err
	}
	if t.declaredIn(e.Name, e.Scope) {
		n := tree.Node(id)
		t.report.Errorf(diag.Semantic, n.Line, n.Column, "%s already declared in this scope", e.Name)
		return false, nil
	}
	t.push(e)
	return true, nil
}

func (t *Table) push(e Entry) {
	key := hash(e.Name)
	t.buckets[key] = append([]Entry{e}, t.buckets[key]...)
	t.log = append(t.log, e.Name)
}

func (t *Table) declaredIn(name string, scope int) bool {
	for _, e := range t.buckets[hash(name)] {
		if e.Name == name && e.Scope == scope {
			return true
		}
	}
	return false
}

// Lookup returns the innermost entry for name visible from scope
func (t *Table) Lookup(name string, scope int) (Entry, bool) {
	for _, e := range t.buckets[hash(name)] {
		if e.Name == name && e.Scope <= scope {
			return e, true
		}
	}
	return Entry{}, false
}

// Resolve finds the declaration a reference node refers to. It does not
// touch the tree; callers record the result with
// tree.Annotate(id, e.Resolution()).
func (t *Table) Resolve(tree *ast.Tree, id ast.NodeID) (Entry, bool) {
	n := tree.Node(id)
	return t.Lookup(n.Name, n.Scope)
}

// CheckCall validates the arguments of call against the signature of fn.
// Variable and call arguments are resolved and annotated on the way. At
// most one mismatch is reported per call.
func (t *Table) CheckCall(tree *ast.Tree, call ast.NodeID, fn Entry) bool {
	args := tree.Siblings(tree.Child(call, 0))
	if len(args) != len(fn.Params) {
		t.callMismatch(tree, call)
		return false
	}
	for i, arg := range args {
		typ, known := t.argType(tree, arg)
		if known && typ != fn.Params[i] {
			t.callMismatch(tree, call)
			return false
		}
	}
	return true
}

func (t *Table) callMismatch(tree *ast.Tree, call ast.NodeID) {
	n := tree.Node(call)
	t.report.Errorf(diag.Semantic, n.Line, n.Column, "call does not match declaration: %s", n.Name)
}

// argType returns the type an argument passes. Unresolvable references
// report false and are left to the caller to diagnose.
func (t *Table) argType(tree *ast.Tree, arg ast.NodeID) (ast.Type, bool) {
	if !tree.IsVar(arg) && !tree.IsCall(arg) {
		return ast.TypeInt, true
	}
	e, ok := t.Resolve(tree, arg)
	if !ok {
		return ast.TypeVoid, false
	}
	tree.Annotate(arg, e.Resolution())
	return tree.Node(arg).Type, true
}

// PushScope opens a new scope
func (t *Table) PushScope() {
	t.frames = append(t.frames, len(t.log))
	t.log = append(t.log, boundary)
}

// PopScope removes every entry inserted since the matching PushScope, in
// reverse order of insertion.
func (t *Table) PopScope() {
	if len(t.frames) == 0 {
		return
	}
	mark := t.frames[len(t.frames)-1]
	t.frames = t.frames[:len(t.frames)-1]
	for i := len(t.log) - 1; i > mark; i-- {
		t.remove(t.log[i])
	}
	t.log = t.log[:mark]
}

// remove drops the most recent entry for name
func (t *Table) remove(name string) {
	key := hash(name)
	b := t.buckets[key]
	for i, e := range b {
		if e.Name == name {
			t.buckets[key] = append(b[:i:i], b[i+1:]...)
			return
		}
	}
}

// Depth returns the number of open scopes above the global one
func (t *Table) Depth() int {
	return len(t.frames)
}

// Len returns the number of entries in the table
func (t *Table) Len() int {
	n := 0
	for _, b := range t.buckets {
		n += len(b)
	}
	return n
}

// OpenGlobal enters the built-in declarations that head the tree
func (t *Table) OpenGlobal(tree *ast.Tree) error {
	for _, id := range []ast.NodeID{tree.Root, tree.Next(tree.Root)} {
		if id == ast.None {
			break
		}
		if _, err := t.Insert(tree, id); err != nil {
			return err
		}
	}
	t.dump()
	return nil
}

// StartScope enters function fn: the function itself goes into the
// global scope unless that name is already taken there (the caller reports
// the redeclaration), then a new scope receives its parameters and locals.
// Parameters are numbered from 0 in order; locals get ascending frame
// offsets, an array taking one slot per element. Both are written back
// onto the declaration nodes.
func (t *Table) StartScope(tree *ast.Tree, fn ast.NodeID) error {
	n := tree.Node(fn)
	if !t.declaredIn(n.Name, n.Scope) {
		if _, err := t.Insert(tree, fn); err != nil {
			return err
		}
	}
	t.PushScope()

	for i, p := range tree.Siblings(tree.Child(fn, 0)) {
		if i >= ast.MaxParams {
			return fmt.Errorf("%w: %s", diag.ErrParamLimit, tree.Node(fn).Name)
		}
		tree.Node(p).ParamIndex = i
		if _, err := t.Insert(tree, p); err != nil {
			return err
		}
	}

	offset := 0
	for _, l := range tree.Siblings(tree.Child(tree.Child(fn, 1), 0)) {
		if !tree.IsVarDecl(l) {
			break
		}
		local := tree.Node(l)
		local.Offset = offset
		if local.Type == ast.TypeArray {
			offset += local.Length
		} else {
			offset++
		}
		if _, err := t.Insert(tree, l); err != nil {
			return err
		}
	}
	t.dump()
	return nil
}

// EndScope leaves the current function scope
func (t *Table) EndScope() {
	t.PopScope()
	t.dump()
}

func (t *Table) dump() {
	if t.trace != nil {
		t.Dump(t.trace)
	}
}

// Dump writes every entry, bucket by bucket
func (t *Table) Dump(w io.Writer) {
	fmt.Fprintln(w)
	for _, b := range t.buckets {
		for _, e := range b {
			e.dump(w)
		}
	}
}
