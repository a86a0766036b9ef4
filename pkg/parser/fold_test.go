package parser

import (
	"math"
	"testing"

	"github.com/go-test/deep"

	"github.com/raymyers/cminus/pkg/ast"
)

// returned parses `int f(void) { return <expr>; }`, folds it and returns
// the tree and the returned expression
func returned(t *testing.T, expr string) (*ast.Tree, ast.NodeID, int, int) {
	t.Helper()
	tree, r, err := parse("int f(void) { return " + expr + "; }")
	if err != nil || r.Count() != 0 {
		t.Fatalf("parse %q: err=%v diags=%v", expr, err, r.Diagnostics())
	}
	folds := Fold(tree, r)
	ret := tree.Child(tree.Child(userDecls(tree), 1), 1)
	return tree, tree.Child(ret, 0), folds, r.Count()
}

func TestFoldConstants(t *testing.T) {
	tests := []struct {
		expr  string
		want  int32
		folds int
	}{
		{"2 + 3 * 4", 14, 2},
		{"(2 + 3) * 4", 20, 2},
		{"100 / 10 / 5", 2, 2},
		{"7 / 2", 3, 1},
		{"2 - 7", -5, 1},
		{"1 + 2 + 3 + 4", 10, 3},
		{"((8))", 8, 0},
		{"2147483647 + 1", math.MinInt32, 1},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			tree, e, folds, errs := returned(t, tt.expr)
			if errs != 0 {
				t.Fatalf("unexpected diagnostics")
			}
			if !tree.IsNumber(e) {
				t.Fatalf("got %s, want a number", tree.Describe(e))
			}
			if got := tree.Node(e).Value; got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
			if folds != tt.folds {
				t.Errorf("Fold() = %d, want %d", folds, tt.folds)
			}
		})
	}
}

func TestFoldReleasesOperands(t *testing.T) {
	tree, r, _ := parse("int f(void) { return 2 + 3 * 4; }")
	before := tree.Live()
	folds := Fold(tree, r)
	if got := tree.Live(); got != before-2*folds {
		t.Errorf("Live = %d, want %d", got, before-2*folds)
	}
}

func TestFoldLeavesVariables(t *testing.T) {
	// (x + 1) + 2 is left associative, so nothing is constant
	tree, e, folds, _ := returned(t, "x + 1 + 2")
	if folds != 0 {
		t.Errorf("Fold() = %d, want 0", folds)
	}
	if !tree.IsMathOp(e) {
		t.Errorf("got %s, want operator", tree.Describe(e))
	}

	tree, e, folds, _ = returned(t, "x + 1 * 2")
	if folds != 1 {
		t.Errorf("Fold() = %d, want 1", folds)
	}
	if right := tree.Child(e, 1); !tree.IsNumber(right) || tree.Node(right).Value != 2 {
		t.Errorf("right operand = %s, want Number 2", tree.Describe(right))
	}
}

func TestFoldPreservesSiblings(t *testing.T) {
	tree, r, _ := parse("void main(void) { g(1 + 1, 2 * 3, x); }")
	Fold(tree, r)
	stmt := tree.Child(tree.Child(userDecls(tree), 1), 1)
	call := tree.Child(stmt, 0)

	want := []string{
		"Expression Call g",
		"   Expression Number 2",
		"   Expression Number 6",
		"   Expression Variable x",
	}
	if diff := deep.Equal(printLines(tree, call), want); diff != nil {
		t.Error(diff)
	}
}

func TestFoldDivisionByZero(t *testing.T) {
	tree, r, _ := parse("int f(void) { return 4 / 0 + 2 * 3; }")
	folds := Fold(tree, r)

	if folds != 1 {
		t.Errorf("Fold() = %d, want 1", folds)
	}
	if r.Count() != 1 {
		t.Fatalf("got %d diagnostics, want 1", r.Count())
	}
	if msg := r.Diagnostics()[0].Msg; msg != "division by zero in constant expression" {
		t.Errorf("unexpected message %q", msg)
	}

	ret := tree.Child(tree.Child(userDecls(tree), 1), 1)
	want := []string{
		"Statement Return",
		"   Expression Operator +",
		"      Expression Operator /",
		"         Expression Number 4",
		"         Expression Number 0",
		"      Expression Number 6",
	}
	if diff := deep.Equal(printLines(tree, ret), want); diff != nil {
		t.Error(diff)
	}
}
