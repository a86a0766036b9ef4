// Package codegen translates a validated, annotated C- tree into MIPS
// assembly for the SPIM simulator.
//
// Expressions are evaluated into $t0. The left operand of a binary
// operator is held in $s<depth> while the right operand is evaluated;
// past the eighth level operands spill to the stack.
package codegen

import (
	"errors"
	"fmt"

	"github.com/raymyers/cminus/pkg/asm"
	"github.com/raymyers/cminus/pkg/ast"
	"github.com/raymyers/cminus/pkg/lexer"
)

// ErrHasErrors is returned when earlier passes reported errors
var ErrHasErrors = errors.New("errors present, cannot generate code")

// SPIM syscall service numbers
const (
	sysPrintInt  = 1
	sysReadInt   = 5
	sysPrintChar = 11
)

// Generator holds state shared by every function of one compilation
type Generator struct {
	tree       *ast.Tree
	labelCount int
}

// Generate translates tree into an assembly program. errCount is the
// number of errors reported so far; code is only generated when it is 0.
func Generate(tree *ast.Tree, errCount int) (*asm.Program, error) {
	if errCount > 0 {
		return nil, fmt.Errorf("%w: %d error(s)", ErrHasErrors, errCount)
	}
	g := &Generator{tree: tree}
	return g.program(), nil
}

func (g *Generator) program() *asm.Program {
	t := g.tree
	prog := &asm.Program{}
	for _, id := range t.Siblings(t.Root) {
		if id == t.Root || id == t.Next(t.Root) {
			continue // input and output are lowered to syscalls
		}
		n := t.Node(id)
		switch {
		case t.IsVarDecl(id):
			prog.Globals = append(prog.Globals, asm.GlobVar{
				Name: n.Name,
				Size: words(n.Length) * asm.WordSize,
			})
		case t.IsFuncDecl(id):
			prog.Functions = append(prog.Functions, g.function(id))
		}
	}
	return prog
}

// newLabel returns the next value of the per-compilation label counter
func (g *Generator) newLabel() int {
	g.labelCount++
	return g.labelCount
}

// funcContext holds state while translating one function
type funcContext struct {
	g     *Generator
	tree  *ast.Tree
	frame Frame
	exit  asm.Label
	code  []asm.Instruction
}

func (g *Generator) function(id ast.NodeID) asm.Function {
	name := g.tree.Node(id).Name
	ctx := &funcContext{
		g:     g,
		tree:  g.tree,
		frame: NewFrame(g.tree, id),
		exit:  asm.Label(name + "_exit"),
	}
	ctx.stmts(ctx.tree.Child(ctx.tree.Child(id, 1), 1))

	// the body decides how many $s registers the frame must preserve
	fn := asm.NewFunction(name)
	for _, inst := range ctx.frame.Prologue() {
		fn.Append(inst)
	}
	for _, inst := range ctx.code {
		fn.Append(inst)
	}
	fn.AppendLabel(ctx.exit)
	for _, inst := range ctx.frame.Epilogue() {
		fn.Append(inst)
	}
	return *fn
}

func (c *funcContext) emit(insts ...asm.Instruction) {
	c.code = append(c.code, insts...)
}

func (c *funcContext) label(l asm.Label) {
	c.emit(asm.LabelDef{Name: l})
}

// --- Statements ---

func (c *funcContext) stmts(id ast.NodeID) {
	for ; id != ast.None; id = c.tree.Next(id) {
		c.stmt(id)
	}
}

func (c *funcContext) stmt(id ast.NodeID) {
	t := c.tree
	n := t.Node(id)
	if n.Kind != ast.KindStmt {
		return
	}
	switch n.Stmt {
	case ast.StmtExpr:
		if e := t.Child(id, 0); e != ast.None {
			c.expr(e, 0)
		}
	case ast.StmtCompound:
		c.stmts(t.Child(id, 0))
	case ast.StmtIf:
		c.ifStmt(id)
	case ast.StmtWhile:
		c.whileStmt(id)
	case ast.StmtReturn:
		if e := t.Child(id, 0); e != ast.None {
			c.expr(e, 0)
			c.emit(asm.MOVE{Rd: asm.V0, Rs: asm.T0})
		}
		c.emit(asm.J{Target: c.exit})
	}
}

func (c *funcContext) ifStmt(id ast.NodeID) {
	t := c.tree
	n := c.g.newLabel()
	elseLabel := asm.Label(fmt.Sprintf("ELSE%d", n))
	endLabel := asm.Label(fmt.Sprintf("END_IF%d", n))

	c.branchIfFalse(t.Child(id, 0), elseLabel)
	c.stmts(t.Child(id, 1))
	if alt := t.Child(id, 2); alt != ast.None {
		c.emit(asm.J{Target: endLabel})
		c.label(elseLabel)
		c.stmts(alt)
	} else {
		c.label(elseLabel)
	}
	c.label(endLabel)
}

func (c *funcContext) whileStmt(id ast.NodeID) {
	t := c.tree
	n := c.g.newLabel()
	top := asm.Label(fmt.Sprintf("L%d", n))
	end := asm.Label(fmt.Sprintf("L_END%d", n))

	c.label(top)
	c.branchIfFalse(t.Child(id, 0), end)
	c.stmts(t.Child(id, 1))
	c.emit(asm.J{Target: top})
	c.label(end)
}

// branchIfFalse jumps to target when the condition id does not hold. A
// relational condition compiles to one branch on the inverse comparison;
// anything else is tested against zero.
func (c *funcContext) branchIfFalse(id ast.NodeID, target asm.Label) {
	t := c.tree
	if t.IsRelational(id) {
		left := c.operands(id, 0)
		c.emit(asm.B{Cond: condOf(t.Node(id).Op).Negate(), Rs: left, Rt: asm.T0, Target: target})
		return
	}
	c.expr(id, 0)
	c.emit(asm.BEQZ{Rs: asm.T0, Target: target})
}

// --- Expressions ---

// expr evaluates id into $t0. depth is the number of operands currently
// held by enclosing expressions.
func (c *funcContext) expr(id ast.NodeID, depth int) {
	t := c.tree
	n := t.Node(id)
	if n.Kind != ast.KindExpr {
		return
	}
	switch n.Expr {
	case ast.ExprNumber:
		c.emit(asm.LI{Rt: asm.T0, Imm: n.Value})
	case ast.ExprVariable:
		c.load(id, depth)
	case ast.ExprAssign:
		c.assign(id, depth)
	case ast.ExprCall:
		c.call(id, depth)
	case ast.ExprBinary:
		left := c.operands(id, depth)
		switch n.Op {
		case lexer.TokenPlus:
			c.emit(asm.ADD{Rd: asm.T0, Rs: left, Rt: asm.T0})
		case lexer.TokenMinus:
			c.emit(asm.SUB{Rd: asm.T0, Rs: left, Rt: asm.T0})
		case lexer.TokenStar:
			c.emit(asm.MUL{Rd: asm.T0, Rs: left, Rt: asm.T0})
		case lexer.TokenSlash:
			c.emit(asm.DIV{Rd: asm.T0, Rs: left, Rt: asm.T0})
		}
	case ast.ExprRelational:
		left := c.operands(id, depth)
		c.emit(asm.SET{Cond: condOf(n.Op), Rd: asm.T0, Rs: left, Rt: asm.T0})
	}
}

// operands evaluates both children of a binary node. The right operand
// ends up in $t0; the returned register holds the left one.
func (c *funcContext) operands(id ast.NodeID, depth int) asm.Reg {
	c.expr(c.tree.Child(id, 0), depth)
	c.hold(depth)
	c.expr(c.tree.Child(id, 1), depth+1)
	return c.release(depth, asm.T1)
}

// hold keeps $t0 at the given depth while other code runs
func (c *funcContext) hold(depth int) {
	if depth < len(asm.SavedRegs) {
		if depth >= c.frame.Saved {
			c.frame.Saved = depth + 1
		}
		c.emit(asm.MOVE{Rd: asm.SavedRegs[depth], Rs: asm.T0})
		return
	}
	c.emit(
		asm.ADDI{Rt: asm.SP, Rs: asm.SP, Imm: -asm.WordSize},
		asm.SW{Rt: asm.T0, Offset: 0, Base: asm.SP},
	)
}

// release returns the register holding the value kept by hold. Spilled
// values are popped into scratch.
func (c *funcContext) release(depth int, scratch asm.Reg) asm.Reg {
	if depth < len(asm.SavedRegs) {
		return asm.SavedRegs[depth]
	}
	c.emit(
		asm.LW{Rt: scratch, Offset: 0, Base: asm.SP},
		asm.ADDI{Rt: asm.SP, Rs: asm.SP, Imm: asm.WordSize},
	)
	return scratch
}

// load reads a variable reference into $t0. An array name without an
// index evaluates to the array's base address.
func (c *funcContext) load(id ast.NodeID, depth int) {
	n := c.tree.Node(id)
	switch {
	case c.tree.Child(id, 0) != ast.None:
		c.elementAddress(id, depth)
		c.emit(asm.LW{Rt: asm.T0, Offset: 0, Base: asm.T1})
	case n.Type == ast.TypeArray:
		c.baseAddress(id, asm.T0)
	case n.ParamIndex != ast.NotParam:
		c.emit(asm.LW{Rt: asm.T0, Offset: c.frame.ParamOffset(n.ParamIndex), Base: asm.FP})
	case n.DeclScope == 0:
		c.emit(asm.LWG{Rt: asm.T0, Label: asm.Label(n.Name)})
	default:
		c.emit(asm.LW{Rt: asm.T0, Offset: c.frame.LocalOffset(n.Offset, 1), Base: asm.FP})
	}
}

// store writes $t0 to a scalar variable
func (c *funcContext) store(id ast.NodeID) {
	n := c.tree.Node(id)
	switch {
	case n.ParamIndex != ast.NotParam:
		c.emit(asm.SW{Rt: asm.T0, Offset: c.frame.ParamOffset(n.ParamIndex), Base: asm.FP})
	case n.DeclScope == 0:
		c.emit(asm.SWG{Rt: asm.T0, Label: asm.Label(n.Name)})
	default:
		c.emit(asm.SW{Rt: asm.T0, Offset: c.frame.LocalOffset(n.Offset, 1), Base: asm.FP})
	}
}

// baseAddress puts the address of element 0 of an array reference in dst
func (c *funcContext) baseAddress(id ast.NodeID, dst asm.Reg) {
	n := c.tree.Node(id)
	switch {
	case n.ParamIndex != ast.NotParam:
		// array parameters are passed by address
		c.emit(asm.LW{Rt: dst, Offset: c.frame.ParamOffset(n.ParamIndex), Base: asm.FP})
	case n.DeclScope == 0:
		c.emit(asm.LA{Rt: dst, Label: asm.Label(n.Name)})
	default:
		c.emit(asm.ADDI{Rt: dst, Rs: asm.FP, Imm: c.frame.LocalOffset(n.Offset, n.Length)})
	}
}

// elementAddress leaves the address of an indexed array element in $t1
func (c *funcContext) elementAddress(id ast.NodeID, depth int) {
	c.expr(c.tree.Child(id, 0), depth)
	c.emit(asm.SLL{Rd: asm.T0, Rt: asm.T0, Shamt: 2})
	c.baseAddress(id, asm.T1)
	c.emit(asm.ADD{Rd: asm.T1, Rs: asm.T1, Rt: asm.T0})
}

func (c *funcContext) assign(id ast.NodeID, depth int) {
	t := c.tree
	target, value := t.Child(id, 0), t.Child(id, 1)
	c.expr(value, depth)
	if t.Child(target, 0) == ast.None {
		c.store(target)
		return
	}
	c.hold(depth)
	c.elementAddress(target, depth+1)
	v := c.release(depth, asm.T0)
	c.emit(asm.SW{Rt: v, Offset: 0, Base: asm.T1})
	if v != asm.T0 {
		c.emit(asm.MOVE{Rd: asm.T0, Rs: v})
	}
}

// call evaluates a call into $t0. Arguments are written, first argument
// highest, into a stack area reserved for this call.
func (c *funcContext) call(id ast.NodeID, depth int) {
	t := c.tree
	n := t.Node(id)
	args := t.Siblings(t.Child(id, 0))

	switch n.Name {
	case "input":
		c.emit(
			asm.LI{Rt: asm.V0, Imm: sysReadInt},
			asm.SYSCALL{},
			asm.MOVE{Rd: asm.T0, Rs: asm.V0},
		)
		return
	case "output":
		c.expr(args[0], depth)
		c.emit(
			asm.MOVE{Rd: asm.A0, Rs: asm.T0},
			asm.LI{Rt: asm.V0, Imm: sysPrintInt},
			asm.SYSCALL{},
			asm.LI{Rt: asm.A0, Imm: '\n'},
			asm.LI{Rt: asm.V0, Imm: sysPrintChar},
			asm.SYSCALL{},
		)
		return
	}

	area := int32(len(args)) * asm.WordSize
	if area > 0 {
		c.emit(asm.ADDI{Rt: asm.SP, Rs: asm.SP, Imm: -area})
	}
	for i, arg := range args {
		c.expr(arg, depth)
		c.emit(asm.SW{Rt: asm.T0, Offset: int32(len(args)-1-i) * asm.WordSize, Base: asm.SP})
	}
	c.emit(asm.JAL{Target: asm.Label(n.Name)})
	if area > 0 {
		c.emit(asm.ADDI{Rt: asm.SP, Rs: asm.SP, Imm: area})
	}
	c.emit(asm.MOVE{Rd: asm.T0, Rs: asm.V0})
}

func condOf(op lexer.TokenType) asm.Cond {
	switch op {
	case lexer.TokenLt:
		return asm.CondLT
	case lexer.TokenLe:
		return asm.CondLE
	case lexer.TokenGt:
		return asm.CondGT
	case lexer.TokenGe:
		return asm.CondGE
	case lexer.TokenEq:
		return asm.CondEQ
	}
	return asm.CondNE
}
