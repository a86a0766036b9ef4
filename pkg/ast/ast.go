// Package ast defines the C- syntax tree.
//
// Nodes live in an arena owned by a Tree and refer to each other by NodeID.
// Every node has up to three child slots and one Next slot that chains the
// members of a sequence (parameters, locals, statements, arguments,
// top-level declarations). Later passes annotate nodes in place: the
// semantic analyzer records resolved types, parameter indices and frame
// offsets, and constant folding swaps operator subtrees for literals.
package ast

import "github.com/raymyers/cminus/pkg/lexer"

// NodeID addresses a node in its Tree
type NodeID int32

// None is the empty handle
const None NodeID = -1

// MaxChildren is the number of child slots per node
const MaxChildren = 3

// MaxParams is the largest number of parameters a function may declare.
// It doubles as the ParamIndex of nodes that are not parameters.
const MaxParams = 8

// NotParam is the ParamIndex of a node that does not denote a parameter
const NotParam = MaxParams

// Kind is the top-level node category
type Kind uint8

const (
	KindDecl Kind = iota
	KindStmt
	KindExpr
	KindFree // released by folding
)

// DeclKind distinguishes declarations
type DeclKind uint8

const (
	DeclFunction DeclKind = iota
	DeclVariable
	DeclParameter
)

// StmtKind distinguishes statements
type StmtKind uint8

const (
	StmtIf StmtKind = iota
	StmtWhile
	StmtReturn
	StmtExpr
	StmtCompound
	StmtFuncBody
	StmtFuncEnd // marks the close of a function scope
)

// ExprKind distinguishes expressions
type ExprKind uint8

const (
	ExprNumber ExprKind = iota
	ExprVariable
	ExprAssign
	ExprBinary
	ExprCall
	ExprRelational
)

// Type is a C- value type
type Type uint8

const (
	TypeVoid Type = iota
	TypeInt
	TypeArray
)

var kindNames = []string{"Declaration", "Statement", "Expression", "Free"}
var declNames = []string{"Function", "Variable", "Parameter"}
var stmtNames = []string{"If", "While", "Return", "Expression", "Compound", "Function", "Function End"}
var exprNames = []string{"Number", "Variable", "Assignment", "Operator", "Call", "Operator"}
var typeNames = []string{"void", "int", "int[]"}

func (k Kind) String() string     { return name(kindNames, int(k)) }
func (k DeclKind) String() string { return name(declNames, int(k)) }
func (k StmtKind) String() string { return name(stmtNames, int(k)) }
func (k ExprKind) String() string { return name(exprNames, int(k)) }
func (t Type) String() string     { return name(typeNames, int(t)) }

func name(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return "?"
}

// Node is one element of the tree. Only the fields meaningful for its
// kind are set.
type Node struct {
	Kind Kind
	Decl DeclKind
	Stmt StmtKind
	Expr ExprKind

	Name  string          // declared or referenced identifier
	Type  Type            // declared type, or resolved type of an expression
	Op    lexer.TokenType // operator of ExprBinary / ExprRelational
	Value int32           // literal of ExprNumber

	Line, Column int
	Scope        int // lexical scope id at construction: 0 global, 1 function

	Children [MaxChildren]NodeID
	Next     NodeID

	// Set by semantic analysis.
	Resolved   bool
	DeclScope  int // scope of the declaration a reference resolved to
	ParamIndex int // NotParam unless the node is or refers to a parameter
	Offset     int // frame slot of a local, in words
	Length     int // element count of an array declaration or reference
}

// Tree is the arena holding every node of one compilation
type Tree struct {
	nodes []Node
	Root  NodeID
}

// NewTree creates an empty tree
func NewTree() *Tree {
	return &Tree{Root: None}
}

// Len returns the number of allocated nodes, including released ones
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node for id. The pointer is invalidated by the next
// allocation.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

func (t *Tree) alloc(n Node) NodeID {
	for i := range n.Children {
		n.Children[i] = None
	}
	n.Next = None
	n.ParamIndex = NotParam
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// NewDecl allocates a declaration node
func (t *Tree) NewDecl(kind DeclKind, typ Type, name string, line, col, scope int) NodeID {
	return t.alloc(Node{Kind: KindDecl, Decl: kind, Type: typ, Name: name, Line: line, Column: col, Scope: scope})
}

// NewStmt allocates a statement node
func (t *Tree) NewStmt(kind StmtKind, line, col, scope int) NodeID {
	return t.alloc(Node{Kind: KindStmt, Stmt: kind, Line: line, Column: col, Scope: scope})
}

// NewExpr allocates an expression node from the token that starts it
func (t *Tree) NewExpr(kind ExprKind, tok lexer.Token, scope int) NodeID {
	n := Node{Kind: KindExpr, Expr: kind, Line: tok.Line, Column: tok.Column, Scope: scope}
	switch kind {
	case ExprVariable, ExprCall:
		n.Name = tok.Literal
	case ExprBinary, ExprRelational:
		n.Op = tok.Type
	}
	return t.alloc(n)
}

// NewNumber allocates an integer literal node
func (t *Tree) NewNumber(value int32, line, col, scope int) NodeID {
	return t.alloc(Node{Kind: KindExpr, Expr: ExprNumber, Type: TypeInt, Value: value, Line: line, Column: col, Scope: scope})
}

// Child returns child slot i of id, or None
func (t *Tree) Child(id NodeID, i int) NodeID {
	if id == None {
		return None
	}
	return t.nodes[id].Children[i]
}

// SetChild stores child in slot i of id
func (t *Tree) SetChild(id NodeID, i int, child NodeID) {
	t.nodes[id].Children[i] = child
}

// Next returns the sibling following id, or None
func (t *Tree) Next(id NodeID) NodeID {
	if id == None {
		return None
	}
	return t.nodes[id].Next
}

// SetNext links next after id
func (t *Tree) SetNext(id, next NodeID) {
	t.nodes[id].Next = next
}

// Siblings returns id followed by every node on its Next chain
func (t *Tree) Siblings(id NodeID) []NodeID {
	var ids []NodeID
	for ; id != None; id = t.nodes[id].Next {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the length of the sibling chain starting at id
func (t *Tree) Count(id NodeID) int {
	n := 0
	for ; id != None; id = t.nodes[id].Next {
		n++
	}
	return n
}

// Release marks id, its children and the rest of its sibling chain as
// free. Released nodes are never reachable from the root again.
func (t *Tree) Release(id NodeID) {
	for id != None {
		n := &t.nodes[id]
		children, next := n.Children, n.Next
		*n = Node{Kind: KindFree, Next: None, Children: [MaxChildren]NodeID{None, None, None}}
		for _, c := range children {
			t.Release(c)
		}
		id = next
	}
}

// Live returns the number of nodes reachable from the root
func (t *Tree) Live() int {
	var count func(NodeID) int
	count = func(id NodeID) int {
		n := 0
		for ; id != None; id = t.nodes[id].Next {
			n++
			for _, c := range t.nodes[id].Children {
				n += count(c)
			}
		}
		return n
	}
	return count(t.Root)
}

// Resolution is what a symbol lookup learns about a reference
type Resolution struct {
	Type       Type
	DeclScope  int
	ParamIndex int
	Offset     int
	Length     int
}

// Annotate copies a resolution onto id. An indexed array reference
// denotes one element and therefore has type int.
func (t *Tree) Annotate(id NodeID, r Resolution) {
	n := &t.nodes[id]
	n.Type = r.Type
	if n.Kind == KindExpr && n.Expr == ExprVariable && n.Children[0] != None {
		n.Type = TypeInt
	}
	n.DeclScope = r.DeclScope
	n.ParamIndex = r.ParamIndex
	n.Offset = r.Offset
	n.Length = r.Length
	n.Resolved = true
}
