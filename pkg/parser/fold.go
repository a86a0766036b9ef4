package parser

import (
	"github.com/raymyers/cminus/pkg/ast"
	"github.com/raymyers/cminus/pkg/diag"
	"github.com/raymyers/cminus/pkg/lexer"
)

// Fold replaces every arithmetic operator whose operands are both literals
// with the literal it evaluates to, repeating until nothing changes.
// Arithmetic wraps at 32 bits and division truncates. A constant division
// by zero is reported and left in the tree. Fold returns the number of
// operators it replaced.
func Fold(tree *ast.Tree, report *diag.Reporter) int {
	f := &folder{tree: tree, report: report, reported: map[ast.NodeID]bool{}}
	total := 0
	for {
		f.changed = 0
		tree.Root = f.fold(tree.Root)
		if f.changed == 0 {
			return total
		}
		total += f.changed
	}
}

type folder struct {
	tree     *ast.Tree
	report   *diag.Reporter
	reported map[ast.NodeID]bool
	changed  int
}

// fold folds the subtree in one slot and returns what the slot should hold
func (f *folder) fold(id ast.NodeID) ast.NodeID {
	if id == ast.None {
		return ast.None
	}
	for i := 0; i < ast.MaxChildren; i++ {
		f.tree.SetChild(id, i, f.fold(f.tree.Child(id, i)))
	}
	f.tree.SetNext(id, f.fold(f.tree.Next(id)))

	if !f.tree.IsMathOp(id) {
		return id
	}
	left, right := f.tree.Child(id, 0), f.tree.Child(id, 1)
	if !f.tree.IsNumber(left) || !f.tree.IsNumber(right) {
		return id
	}

	op := *f.tree.Node(id)
	value, ok := evaluate(op.Op, f.tree.Node(left).Value, f.tree.Node(right).Value)
	if !ok {
		if !f.reported[id] {
			f.reported[id] = true
			f.report.Errorf(diag.Semantic, op.Line, op.Column, "division by zero in constant expression")
		}
		return id
	}

	num := f.tree.NewNumber(value, op.Line, op.Column, op.Scope)
	f.tree.SetNext(num, op.Next)
	f.tree.SetNext(id, ast.None)
	f.tree.Release(id)
	f.changed++
	return num
}

func evaluate(op lexer.TokenType, a, b int32) (int32, bool) {
	switch op {
	case lexer.TokenPlus:
		return a + b, true
	case lexer.TokenMinus:
		return a - b, true
	case lexer.TokenStar:
		return a * b, true
	case lexer.TokenSlash:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}
