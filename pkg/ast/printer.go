package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes a tree in the indented one-node-per-line debug format
type Printer struct {
	w    io.Writer
	tree *Tree
}

// NewPrinter creates a new tree printer
func NewPrinter(w io.Writer, tree *Tree) *Printer {
	return &Printer{w: w, tree: tree}
}

// PrintTree prints every node reachable from the root. Children are
// indented three columns deeper than their parent; siblings share a column.
func (p *Printer) PrintTree() {
	fmt.Fprintln(p.w)
	p.print(p.tree.Root, 0)
	fmt.Fprintln(p.w)
}

// PrintFrom prints the sibling chain starting at id, without the blank
// lines PrintTree adds around the whole tree
func (p *Printer) PrintFrom(id NodeID) {
	p.print(id, 0)
}

func (p *Printer) print(id NodeID, indent int) {
	for ; id != None; id = p.tree.Next(id) {
		fmt.Fprint(p.w, strings.Repeat(" ", indent))
		fmt.Fprintln(p.w, p.tree.Describe(id))
		for _, c := range p.tree.Node(id).Children {
			p.print(c, indent+3)
		}
	}
}

// Describe renders a single node without its children
func (t *Tree) Describe(id NodeID) string {
	n := t.nodes[id]
	switch n.Kind {
	case KindDecl:
		return fmt.Sprintf("%s %s %s %s", n.Kind, n.Name, n.Decl, n.Type)
	case KindStmt:
		if n.Stmt == StmtFuncBody {
			return fmt.Sprintf("%s %s", n.Stmt, n.Kind)
		}
		return fmt.Sprintf("%s %s", n.Kind, n.Stmt)
	case KindExpr:
		switch n.Expr {
		case ExprNumber:
			return fmt.Sprintf("%s %s %d", n.Kind, n.Expr, n.Value)
		case ExprVariable, ExprCall:
			return fmt.Sprintf("%s %s %s", n.Kind, n.Expr, n.Name)
		case ExprBinary, ExprRelational:
			return fmt.Sprintf("%s %s %s", n.Kind, n.Expr, n.Op)
		}
		return fmt.Sprintf("%s %s", n.Kind, n.Expr)
	}
	return n.Kind.String()
}
