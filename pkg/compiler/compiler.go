// Package compiler runs the C- pipeline: parse, fold constants, analyze
// and generate MIPS assembly.
package compiler

import (
	"fmt"
	"io"

	"github.com/raymyers/cminus/pkg/asm"
	"github.com/raymyers/cminus/pkg/ast"
	"github.com/raymyers/cminus/pkg/codegen"
	"github.com/raymyers/cminus/pkg/diag"
	"github.com/raymyers/cminus/pkg/lexer"
	"github.com/raymyers/cminus/pkg/parser"
	"github.com/raymyers/cminus/pkg/sema"
)

// Options configures one compilation
type Options struct {
	// Debug receives every consumed token, the symbol table at each scope
	// transition and the parse tree. Nil disables the dumps.
	Debug io.Writer
	// Diag receives one line per diagnostic. Nil discards them.
	Diag io.Writer
}

// Result is everything a compilation produced. Program is nil unless the
// compilation succeeded.
type Result struct {
	Tree        *ast.Tree
	Program     *asm.Program
	Diagnostics []diag.Diagnostic
	Folds       int // operator nodes replaced by constant folding
}

// Errors returns the number of reported errors
func (r *Result) Errors() int {
	return len(r.Diagnostics)
}

// WriteAssembly prints the generated program
func (r *Result) WriteAssembly(w io.Writer) {
	if r.Program != nil {
		asm.NewPrinter(w).PrintProgram(r.Program)
	}
}

// Compile compiles one C- source text. A non-nil error means no assembly
// was produced: it wraps diag.ErrParamLimit, diag.ErrErrorLimit or
// codegen.ErrHasErrors.
func Compile(src string, opts Options) (*Result, error) {
	report := diag.NewReporter(opts.Diag)
	res := &Result{}
	defer func() { res.Diagnostics = report.Diagnostics() }()

	stream := lexer.NewStream(lexer.New(src), report, opts.Debug)
	tree, err := parser.New(stream, report).ParseProgram()
	res.Tree = tree
	if err != nil {
		return res, fmt.Errorf("parse: %w", err)
	}
	res.Folds = parser.Fold(tree, report)

	if opts.Debug != nil {
		ast.NewPrinter(opts.Debug, tree).PrintTree()
	}

	if err := sema.Analyze(tree, report, opts.Debug); err != nil {
		return res, fmt.Errorf("analyze: %w", err)
	}

	prog, err := codegen.Generate(tree, report.Count())
	if err != nil {
		return res, err
	}
	res.Program = prog
	return res, nil
}
