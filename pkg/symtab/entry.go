package symtab

import (
	"fmt"
	"io"

	"github.com/raymyers/cminus/pkg/ast"
	"github.com/raymyers/cminus/pkg/diag"
)

// Entry is the table's record of one declaration. Entries are copied out
// of the table by value and never change once inserted.
type Entry struct {
	Name       string
	Decl       ast.DeclKind
	Type       ast.Type
	Scope      int
	Params     []ast.Type // parameter types of a function
	Length     int        // element count of an array variable
	ParamIndex int
	Offset     int
}

// NewEntry projects the declaration id into an Entry. A function with more
// than ast.MaxParams parameters yields diag.ErrParamLimit.
func NewEntry(tree *ast.Tree, id ast.NodeID) (Entry, error) {
	n := tree.Node(id)
	e := Entry{
		Name:       n.Name,
		Decl:       n.Decl,
		Type:       n.Type,
		Scope:      n.Scope,
		Length:     n.Length,
		ParamIndex: n.ParamIndex,
		Offset:     n.Offset,
	}
	if !tree.IsFuncDecl(id) {
		return e, nil
	}
	for p := tree.Child(id, 0); p != ast.None; p = tree.Next(p) {
		if len(e.Params) == ast.MaxParams {
			return e, fmt.Errorf("%w: %s", diag.ErrParamLimit, e.Name)
		}
		e.Params = append(e.Params, tree.Node(p).Type)
	}
	return e, nil
}

// IsFunc reports whether the entry declares a function
func (e Entry) IsFunc() bool {
	return e.Decl == ast.DeclFunction
}

// Resolution is what a reference to this entry learns about it
func (e Entry) Resolution() ast.Resolution {
	return ast.Resolution{
		Type:       e.Type,
		DeclScope:  e.Scope,
		ParamIndex: e.ParamIndex,
		Offset:     e.Offset,
		Length:     e.Length,
	}
}

func (e Entry) dump(w io.Writer) {
	fmt.Fprintf(w, "%s %s %s Scope = %d", e.Decl, e.Type, e.Name, e.Scope)
	if len(e.Params) > 0 {
		fmt.Fprintf(w, " Parameters:")
		for _, p := range e.Params {
			fmt.Fprintf(w, " %s", p)
		}
	}
	if e.Type == ast.TypeArray && e.Decl == ast.DeclVariable {
		fmt.Fprintf(w, " Array Size: %d", e.Length)
	}
	if e.ParamIndex != ast.NotParam {
		fmt.Fprintf(w, " Param: %d", e.ParamIndex)
	} else if e.Scope > 0 && e.Decl == ast.DeclVariable {
		fmt.Fprintf(w, " Offset: %d", e.Offset)
	}
	fmt.Fprintln(w)
}
