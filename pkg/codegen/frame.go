package codegen

import (
	"github.com/raymyers/cminus/pkg/asm"
	"github.com/raymyers/cminus/pkg/ast"
)

// MIPS frame layout (called function's view):
//
//	+---------------------------+
//	| arg 0                     |  +P*4 from FP
//	| ...                       |
//	| arg P-1                   |  +4 from FP
//	+---------------------------+  <- SP at the call
//	| old FP                    |  slot 0, FP points here
//	| RA                        |  slot 1
//	| locals                    |  slots 2 .. 2+L-1
//	| saved $s registers        |  slots 2+L .. 2+L+K-1
//	+---------------------------+  <- SP
//
// Slot k is at -4k from FP. Arrays occupy consecutive slots and grow
// toward higher addresses, so element 0 sits in the array's last slot.

// reservedSlots holds the saved frame pointer and return address
const reservedSlots = 2

// Frame describes the activation record of one function
type Frame struct {
	Params int // incoming arguments
	Locals int // local words, arrays counted by length
	Saved  int // $s registers preserved by the prologue
}

// NewFrame computes the frame of a function declaration from its
// parameter list and local declarations
func NewFrame(tree *ast.Tree, fn ast.NodeID) Frame {
	f := Frame{Params: tree.Count(tree.Child(fn, 0))}
	body := tree.Child(fn, 1)
	for _, decl := range tree.Siblings(tree.Child(body, 0)) {
		f.Locals += words(tree.Node(decl).Length)
	}
	return f
}

// words returns the slots taken by a declaration of the given length
func words(length int) int {
	if length > 0 {
		return length
	}
	return 1
}

// Size returns the number of bytes the prologue reserves
func (f Frame) Size() int32 {
	return int32(reservedSlots+f.Locals+f.Saved) * asm.WordSize
}

func slot(k int) int32 {
	return -int32(k) * asm.WordSize
}

// FPOffset is where the caller's frame pointer is saved
func (f Frame) FPOffset() int32 { return slot(0) }

// RAOffset is where the return address is saved
func (f Frame) RAOffset() int32 { return slot(1) }

// ParamOffset returns the FP-relative offset of parameter i
func (f Frame) ParamOffset(i int) int32 {
	return int32(f.Params-i) * asm.WordSize
}

// LocalOffset returns the FP-relative address of the first word of a
// local declared at memory offset off with the given length
func (f Frame) LocalOffset(off, length int) int32 {
	return slot(reservedSlots + off + words(length) - 1)
}

// SavedOffset returns where saved register k is stored
func (f Frame) SavedOffset(k int) int32 {
	return slot(reservedSlots + f.Locals + k)
}

// Prologue reserves the frame, saves FP, RA and the $s registers and
// points FP at the old frame pointer slot
func (f Frame) Prologue() []asm.Instruction {
	size := f.Size()
	code := []asm.Instruction{
		asm.ADDI{Rt: asm.SP, Rs: asm.SP, Imm: -size},
		asm.SW{Rt: asm.FP, Offset: size - asm.WordSize, Base: asm.SP},
		asm.SW{Rt: asm.RA, Offset: size - 2*asm.WordSize, Base: asm.SP},
		asm.ADDI{Rt: asm.FP, Rs: asm.SP, Imm: size - asm.WordSize},
	}
	for k := 0; k < f.Saved; k++ {
		code = append(code, asm.SW{Rt: asm.SavedRegs[k], Offset: f.SavedOffset(k), Base: asm.FP})
	}
	return code
}

// Epilogue undoes Prologue and returns to the caller
func (f Frame) Epilogue() []asm.Instruction {
	var code []asm.Instruction
	for k := 0; k < f.Saved; k++ {
		code = append(code, asm.LW{Rt: asm.SavedRegs[k], Offset: f.SavedOffset(k), Base: asm.FP})
	}
	return append(code,
		asm.LW{Rt: asm.RA, Offset: f.RAOffset(), Base: asm.FP},
		asm.ADDI{Rt: asm.SP, Rs: asm.FP, Imm: asm.WordSize},
		asm.LW{Rt: asm.FP, Offset: f.FPOffset(), Base: asm.FP},
		asm.JR{Rs: asm.RA},
	)
}
