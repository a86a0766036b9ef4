package asm

import (
	"bytes"
	"strings"
	"testing"
)

func printOne(inst Instruction) string {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printInstruction(inst)
	return buf.String()
}

func TestPrintArithmeticInstructions(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
		want string
	}{
		{"ADD", ADD{Rd: T0, Rs: S0, Rt: T0}, "\tadd\t$t0, $s0, $t0\n"},
		{"ADDI", ADDI{Rt: SP, Rs: SP, Imm: -16}, "\taddi\t$sp, $sp, -16\n"},
		{"SUB", SUB{Rd: T0, Rs: S1, Rt: T0}, "\tsub\t$t0, $s1, $t0\n"},
		{"MUL", MUL{Rd: T0, Rs: S0, Rt: T0}, "\tmul\t$t0, $s0, $t0\n"},
		{"DIV", DIV{Rd: T0, Rs: S0, Rt: T0}, "\tdiv\t$t0, $s0, $t0\n"},
		{"SLL", SLL{Rd: T0, Rt: T0, Shamt: 2}, "\tsll\t$t0, $t0, 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := printOne(tt.inst); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintSetInstructions(t *testing.T) {
	tests := []struct {
		cond Cond
		want string
	}{
		{CondLT, "\tslt\t$t0, $s0, $t0\n"},
		{CondLE, "\tsle\t$t0, $s0, $t0\n"},
		{CondGT, "\tsgt\t$t0, $s0, $t0\n"},
		{CondGE, "\tsge\t$t0, $s0, $t0\n"},
		{CondEQ, "\tseq\t$t0, $s0, $t0\n"},
		{CondNE, "\tsne\t$t0, $s0, $t0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.cond.String(), func(t *testing.T) {
			got := printOne(SET{Cond: tt.cond, Rd: T0, Rs: S0, Rt: T0})
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintLoadStoreInstructions(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
		want string
	}{
		{"LI", LI{Rt: T0, Imm: 42}, "\tli\t$t0, 42\n"},
		{"LI negative", LI{Rt: T0, Imm: -7}, "\tli\t$t0, -7\n"},
		{"LA", LA{Rt: T0, Label: "arr"}, "\tla\t$t0, arr\n"},
		{"MOVE", MOVE{Rd: V0, Rs: T0}, "\tmove\t$v0, $t0\n"},
		{"LW", LW{Rt: T0, Offset: -8, Base: FP}, "\tlw\t$t0, -8($fp)\n"},
		{"SW", SW{Rt: RA, Offset: 4, Base: SP}, "\tsw\t$ra, 4($sp)\n"},
		{"LW zero offset", LW{Rt: T0, Offset: 0, Base: T1}, "\tlw\t$t0, 0($t1)\n"},
		{"LWG", LWG{Rt: T0, Label: "x"}, "\tlw\t$t0, x\n"},
		{"SWG", SWG{Rt: T0, Label: "x"}, "\tsw\t$t0, x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := printOne(tt.inst); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintBranchInstructions(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
		want string
	}{
		{"BGE", B{Cond: CondGE, Rs: S0, Rt: T0, Target: "ELSE1"}, "\tbge\t$s0, $t0, ELSE1\n"},
		{"BNE", B{Cond: CondNE, Rs: S0, Rt: T0, Target: "L_END2"}, "\tbne\t$s0, $t0, L_END2\n"},
		{"BEQZ", BEQZ{Rs: T0, Target: "ELSE3"}, "\tbeqz\t$t0, ELSE3\n"},
		{"J", J{Target: "main_exit"}, "\tj\tmain_exit\n"},
		{"JAL", JAL{Target: "f"}, "\tjal\tf\n"},
		{"JR", JR{Rs: RA}, "\tjr\t$ra\n"},
		{"SYSCALL", SYSCALL{}, "\tsyscall\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := printOne(tt.inst); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintLabelDef(t *testing.T) {
	if got, want := printOne(LabelDef{Name: "L1"}), "L1:\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintFunction(t *testing.T) {
	fn := NewFunction("f")
	fn.Append(LI{Rt: T0, Imm: 5})
	fn.AppendLabel("f_exit")
	fn.Append(JR{Rs: RA})

	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printFunction(*fn)

	want := "f:\n\tli\t$t0, 5\nf_exit:\n\tjr\t$ra\n\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintProgram(t *testing.T) {
	prog := &Program{
		Globals: []GlobVar{{Name: "x", Size: 4}, {Name: "arr", Size: 40}},
		Functions: []Function{
			{Name: "f", Code: []Instruction{JR{Rs: RA}}},
			{Name: "main", Code: []Instruction{JR{Rs: RA}}},
		},
	}
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProgram(prog)
	out := buf.String()

	for _, want := range []string{"\t.data\n", "x:\t.space\t4\n", "arr:\t.space\t40\n", "f:\n", "main:\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, ".text"); n != 1 {
		t.Errorf("expected one .text directive, got %d", n)
	}
	if strings.Index(out, ".data") > strings.Index(out, ".text") {
		t.Errorf(".data should precede .text")
	}
	if strings.Index(out, "f:") > strings.Index(out, "main:") {
		t.Errorf("functions should print in order")
	}
}

func TestPrintProgramNoGlobals(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProgram(&Program{Functions: []Function{{Name: "main"}}})
	if got := buf.String(); !strings.HasPrefix(got, "\t.data\n\n\t.text\n") {
		t.Errorf("unexpected prologue: %q", got)
	}
}
