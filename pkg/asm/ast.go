// Package asm defines the MIPS assembly representation.
// This is the final output of the compiler, printed as SPIM-compatible text.
package asm

// WordSize is the size in bytes of every C- value
const WordSize = 4

// Reg is a MIPS general purpose register
type Reg int

const (
	Zero Reg = iota
	AT
	V0
	V1
	A0
	A1
	A2
	A3
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	S0
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	T8
	T9
	K0
	K1
	GP
	SP
	FP
	RA
)

var regNames = [...]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

func (r Reg) String() string {
	if r >= 0 && int(r) < len(regNames) {
		return "$" + regNames[r]
	}
	return "$?"
}

// SavedRegs are the callee-saved registers, in allocation order
var SavedRegs = []Reg{S0, S1, S2, S3, S4, S5, S6, S7}

// Cond is a signed integer comparison
type Cond int

const (
	CondEQ Cond = iota
	CondNE
	CondLT
	CondLE
	CondGT
	CondGE
)

var condNames = [...]string{"eq", "ne", "lt", "le", "gt", "ge"}

func (c Cond) String() string {
	if c >= 0 && int(c) < len(condNames) {
		return condNames[c]
	}
	return "?"
}

// Negate returns the condition that holds exactly when c does not
func (c Cond) Negate() Cond {
	switch c {
	case CondEQ:
		return CondNE
	case CondNE:
		return CondEQ
	case CondLT:
		return CondGE
	case CondLE:
		return CondGT
	case CondGT:
		return CondLE
	case CondGE:
		return CondLT
	}
	return c
}

// Label represents a branch target label
type Label string

// --- Instruction Interface ---

// Instruction is the interface for MIPS instructions
type Instruction interface {
	implInstruction()
}

// --- Arithmetic ---

// ADD - Add (rd = rs + rt)
type ADD struct {
	Rd, Rs, Rt Reg
}

// ADDI - Add immediate
type ADDI struct {
	Rt, Rs Reg
	Imm    int32
}

// SUB - Subtract
type SUB struct {
	Rd, Rs, Rt Reg
}

// MUL - Multiply, low 32 bits (pseudo-instruction)
type MUL struct {
	Rd, Rs, Rt Reg
}

// DIV - Signed divide, quotient (three operand pseudo-instruction)
type DIV struct {
	Rd, Rs, Rt Reg
}

// SLL - Shift left logical by a constant
type SLL struct {
	Rd, Rt Reg
	Shamt  int
}

// SET - Set rd to 1 if rs <cond> rt, else 0 (slt is native, the rest are
// pseudo-instructions)
type SET struct {
	Cond       Cond
	Rd, Rs, Rt Reg
}

// --- Moves and loads ---

// LI - Load immediate
type LI struct {
	Rt  Reg
	Imm int32
}

// LA - Load address of a label
type LA struct {
	Rt    Reg
	Label Label
}

// MOVE - Copy register
type MOVE struct {
	Rd, Rs Reg
}

// LW - Load word from base + offset
type LW struct {
	Rt     Reg
	Offset int32
	Base   Reg
}

// SW - Store word to base + offset
type SW struct {
	Rt     Reg
	Offset int32
	Base   Reg
}

// LWG - Load word from a data label
type LWG struct {
	Rt    Reg
	Label Label
}

// SWG - Store word to a data label
type SWG struct {
	Rt    Reg
	Label Label
}

// --- Control flow ---

// B - Conditional branch on comparing two registers
type B struct {
	Cond   Cond
	Rs, Rt Reg
	Target Label
}

// BEQZ - Branch if zero
type BEQZ struct {
	Rs     Reg
	Target Label
}

// J - Jump
type J struct {
	Target Label
}

// JAL - Jump and link (call)
type JAL struct {
	Target Label
}

// JR - Jump to register (return)
type JR struct {
	Rs Reg
}

// SYSCALL - SPIM system call, service number in $v0
type SYSCALL struct{}

// LabelDef - Label definition (pseudo-instruction)
type LabelDef struct {
	Name Label
}

// --- Marker methods for Instruction interface ---

func (ADD) implInstruction()      {}
func (ADDI) implInstruction()     {}
func (SUB) implInstruction()      {}
func (MUL) implInstruction()      {}
func (DIV) implInstruction()      {}
func (SLL) implInstruction()      {}
func (SET) implInstruction()      {}
func (LI) implInstruction()       {}
func (LA) implInstruction()       {}
func (MOVE) implInstruction()     {}
func (LW) implInstruction()       {}
func (SW) implInstruction()       {}
func (LWG) implInstruction()      {}
func (SWG) implInstruction()      {}
func (B) implInstruction()        {}
func (BEQZ) implInstruction()     {}
func (J) implInstruction()        {}
func (JAL) implInstruction()      {}
func (JR) implInstruction()       {}
func (SYSCALL) implInstruction()  {}
func (LabelDef) implInstruction() {}

// --- Function and Program ---

// Function represents an assembly function
type Function struct {
	Name string
	Code []Instruction
}

// GlobVar represents a zero-initialized global variable
type GlobVar struct {
	Name string
	Size int // bytes
}

// Program represents a complete assembly program
type Program struct {
	Globals   []GlobVar
	Functions []Function
}

// NewFunction creates a new assembly function
func NewFunction(name string) *Function {
	return &Function{
		Name: name,
		Code: make([]Instruction, 0),
	}
}

// Append adds an instruction to the function
func (f *Function) Append(inst Instruction) {
	f.Code = append(f.Code, inst)
}

// AppendLabel adds a label definition
func (f *Function) AppendLabel(name Label) {
	f.Code = append(f.Code, LabelDef{Name: name})
}
