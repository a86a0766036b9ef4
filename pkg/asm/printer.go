package asm

import (
	"fmt"
	"io"
)

// Printer outputs MIPS assembly in SPIM syntax
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new assembly printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram outputs an entire program: a .data section with one
// .space directive per global, then a single .text section
func (p *Printer) PrintProgram(prog *Program) {
	fmt.Fprintf(p.w, "\t.data\n")
	for _, g := range prog.Globals {
		fmt.Fprintf(p.w, "%s:\t.space\t%d\n", g.Name, g.Size)
	}
	fmt.Fprintf(p.w, "\n\t.text\n")
	fmt.Fprintf(p.w, "\t.globl\tmain\n")
	for _, f := range prog.Functions {
		p.printFunction(f)
	}
}

func (p *Printer) printFunction(f Function) {
	fmt.Fprintf(p.w, "%s:\n", f.Name)
	for _, inst := range f.Code {
		p.printInstruction(inst)
	}
	fmt.Fprintf(p.w, "\n")
}

func (p *Printer) printInstruction(inst Instruction) {
	switch i := inst.(type) {
	case ADD:
		fmt.Fprintf(p.w, "\tadd\t%s, %s, %s\n", i.Rd, i.Rs, i.Rt)
	case ADDI:
		fmt.Fprintf(p.w, "\taddi\t%s, %s, %d\n", i.Rt, i.Rs, i.Imm)
	case SUB:
		fmt.Fprintf(p.w, "\tsub\t%s, %s, %s\n", i.Rd, i.Rs, i.Rt)
	case MUL:
		fmt.Fprintf(p.w, "\tmul\t%s, %s, %s\n", i.Rd, i.Rs, i.Rt)
	case DIV:
		fmt.Fprintf(p.w, "\tdiv\t%s, %s, %s\n", i.Rd, i.Rs, i.Rt)
	case SLL:
		fmt.Fprintf(p.w, "\tsll\t%s, %s, %d\n", i.Rd, i.Rt, i.Shamt)
	case SET:
		fmt.Fprintf(p.w, "\ts%s\t%s, %s, %s\n", i.Cond, i.Rd, i.Rs, i.Rt)

	case LI:
		fmt.Fprintf(p.w, "\tli\t%s, %d\n", i.Rt, i.Imm)
	case LA:
		fmt.Fprintf(p.w, "\tla\t%s, %s\n", i.Rt, i.Label)
	case MOVE:
		fmt.Fprintf(p.w, "\tmove\t%s, %s\n", i.Rd, i.Rs)
	case LW:
		fmt.Fprintf(p.w, "\tlw\t%s, %d(%s)\n", i.Rt, i.Offset, i.Base)
	case SW:
		fmt.Fprintf(p.w, "\tsw\t%s, %d(%s)\n", i.Rt, i.Offset, i.Base)
	case LWG:
		fmt.Fprintf(p.w, "\tlw\t%s, %s\n", i.Rt, i.Label)
	case SWG:
		fmt.Fprintf(p.w, "\tsw\t%s, %s\n", i.Rt, i.Label)

	case B:
		fmt.Fprintf(p.w, "\tb%s\t%s, %s, %s\n", i.Cond, i.Rs, i.Rt, i.Target)
	case BEQZ:
		fmt.Fprintf(p.w, "\tbeqz\t%s, %s\n", i.Rs, i.Target)
	case J:
		fmt.Fprintf(p.w, "\tj\t%s\n", i.Target)
	case JAL:
		fmt.Fprintf(p.w, "\tjal\t%s\n", i.Target)
	case JR:
		fmt.Fprintf(p.w, "\tjr\t%s\n", i.Rs)
	case SYSCALL:
		fmt.Fprintf(p.w, "\tsyscall\n")

	case LabelDef:
		fmt.Fprintf(p.w, "%s:\n", i.Name)

	default:
		fmt.Fprintf(p.w, "\t# unknown instruction %T\n", inst)
	}
}
