package asm

import "testing"

func TestCondString(t *testing.T) {
	tests := []struct {
		cond Cond
		want string
	}{
		{CondEQ, "eq"},
		{CondNE, "ne"},
		{CondLT, "lt"},
		{CondLE, "le"},
		{CondGT, "gt"},
		{CondGE, "ge"},
		{Cond(100), "?"}, // invalid
	}
	for _, tt := range tests {
		if got := tt.cond.String(); got != tt.want {
			t.Errorf("Cond(%d).String() = %q, want %q", tt.cond, got, tt.want)
		}
	}
}

func TestCondNegate(t *testing.T) {
	tests := []struct {
		cond Cond
		want Cond
	}{
		{CondEQ, CondNE},
		{CondNE, CondEQ},
		{CondLT, CondGE},
		{CondLE, CondGT},
		{CondGT, CondLE},
		{CondGE, CondLT},
	}
	for _, tt := range tests {
		if got := tt.cond.Negate(); got != tt.want {
			t.Errorf("%s.Negate() = %s, want %s", tt.cond, got, tt.want)
		}
		if got := tt.cond.Negate().Negate(); got != tt.cond {
			t.Errorf("%s negated twice = %s", tt.cond, got)
		}
	}
}

func TestRegString(t *testing.T) {
	tests := []struct {
		reg  Reg
		want string
	}{
		{Zero, "$zero"},
		{V0, "$v0"},
		{A0, "$a0"},
		{T0, "$t0"},
		{T9, "$t9"},
		{S0, "$s0"},
		{S7, "$s7"},
		{SP, "$sp"},
		{FP, "$fp"},
		{RA, "$ra"},
		{Reg(-1), "$?"},
		{Reg(40), "$?"},
	}
	for _, tt := range tests {
		if got := tt.reg.String(); got != tt.want {
			t.Errorf("Reg(%d).String() = %q, want %q", tt.reg, got, tt.want)
		}
	}
}

func TestSavedRegs(t *testing.T) {
	if len(SavedRegs) != 8 {
		t.Fatalf("expected 8 saved registers, got %d", len(SavedRegs))
	}
	for i, r := range SavedRegs {
		if r != S0+Reg(i) {
			t.Errorf("SavedRegs[%d] = %s, want %s", i, r, S0+Reg(i))
		}
	}
}

func TestInstructionInterface(t *testing.T) {
	// Verify all instruction types implement Instruction interface
	instructions := []Instruction{
		ADD{}, ADDI{}, SUB{}, MUL{}, DIV{}, SLL{}, SET{},
		LI{}, LA{}, MOVE{}, LW{}, SW{}, LWG{}, SWG{},
		B{}, BEQZ{}, J{}, JAL{}, JR{}, SYSCALL{},
		LabelDef{},
	}
	for _, inst := range instructions {
		if inst == nil {
			t.Errorf("instruction is nil")
		}
	}
}

func TestNewFunction(t *testing.T) {
	fn := NewFunction("main")
	if fn.Name != "main" {
		t.Errorf("Name = %q, want %q", fn.Name, "main")
	}
	if len(fn.Code) != 0 {
		t.Errorf("expected empty code, got %d instructions", len(fn.Code))
	}
}

func TestFunctionAppend(t *testing.T) {
	fn := NewFunction("f")
	fn.Append(LI{Rt: T0, Imm: 5})
	fn.Append(JR{Rs: RA})
	if len(fn.Code) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(fn.Code))
	}
	if _, ok := fn.Code[0].(LI); !ok {
		t.Errorf("expected LI, got %T", fn.Code[0])
	}
}

func TestFunctionAppendLabel(t *testing.T) {
	fn := NewFunction("f")
	fn.AppendLabel("f_exit")
	ld, ok := fn.Code[0].(LabelDef)
	if !ok {
		t.Fatalf("expected LabelDef, got %T", fn.Code[0])
	}
	if ld.Name != "f_exit" {
		t.Errorf("Name = %q, want %q", ld.Name, "f_exit")
	}
}
