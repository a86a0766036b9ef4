package casebook

import (
	"testing"

	"github.com/nalgeon/be"
)

const fence = "```"

func TestExtractBasic(t *testing.T) {
	markdown := `# Folding

Some prose.

## Test: folded add
` + fence + `cminus
void main(void) { output(2 + 3); }
` + fence + `
` + fence + `asm
li $t0, 5
syscall
` + fence + `
` + fence + `asm-not
add $t0, $s0, $t0
` + fence + `

## Test: missing main
` + fence + `cminus
int x;
` + fence + `
` + fence + `errors
main function not declared
` + fence

	cases, err := Extract(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	c := cases[0]
	be.Equal(t, c.Name, "folded add")
	be.Equal(t, c.Input, "void main(void) { output(2 + 3); }")
	be.Equal(t, len(c.Assertions), 2)
	be.Equal(t, c.Assertions[0].Type, AssertAsm)
	be.Equal(t, c.Assertions[0].Lines, []string{"li $t0, 5", "syscall"})
	be.Equal(t, c.Assertions[0].Line, 10)
	be.Equal(t, c.Assertions[1].Type, AssertAsmNot)

	be.Equal(t, cases[1].Name, "missing main")
	be.Equal(t, cases[1].Assertions[0].Type, AssertErrors)
}

func TestExtractPlainFencesAllowed(t *testing.T) {
	markdown := fence + `
not a test
` + fence + `
## Test: ok
` + fence + `cminus
void main(void) { }
` + fence + `
` + fence + `asm
jr $ra
` + fence
	cases, err := Extract(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 1)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			"fence outside test",
			fence + "cminus\nvoid main(void) { }\n" + fence,
			"fence found outside of test case",
		},
		{
			"unknown language",
			"## Test: x\n" + fence + "cminus\nint x;\n" + fence + "\n" + fence + "python\nprint()\n" + fence,
			"unknown fence language 'python'",
		},
		{
			"two inputs",
			"## Test: x\n" + fence + "cminus\nint x;\n" + fence + "\n" + fence + "cminus\nint y;\n" + fence,
			"multiple input fences",
		},
		{
			"no input",
			"## Test: x\n" + fence + "asm\njr $ra\n" + fence,
			"has no input fence",
		},
		{
			"no assertions",
			"## Test: x\n" + fence + "cminus\nint x;\n" + fence,
			"has no assertion fences",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.markdown)
			be.Err(t, err, tt.want)
		})
	}
}

func TestCheckAsmInOrder(t *testing.T) {
	out := "main:\n\tli\t$t0, 5\n\tsw\t$t0, -8($fp)\n\tjr\t$ra\n"
	a := Assertion{Type: AssertAsm, Lines: []string{"li $t0, 5", "jr $ra"}}
	be.Equal(t, len(a.Check(out, nil)), 0)

	a.Lines = []string{"jr $ra", "li $t0, 5"}
	be.Equal(t, len(a.Check(out, nil)), 1)
}

func TestCheckAsmNot(t *testing.T) {
	out := "\tli\t$t0, 5\n"
	a := Assertion{Type: AssertAsmNot, Lines: []string{"add $t0, $s0, $t0", "li $t0, 5"}}
	be.Equal(t, len(a.Check(out, nil)), 1)
}

func TestCheckErrors(t *testing.T) {
	a := Assertion{Type: AssertErrors, Lines: []string{"undeclared variable y"}}
	be.Equal(t, len(a.Check("", []string{"undeclared variable y"})), 0)
	be.Equal(t, len(a.Check("", nil)), 1)
	be.Equal(t, len(a.Check("", []string{"x already declared in this scope"})), 1)
}
