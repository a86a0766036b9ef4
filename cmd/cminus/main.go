package main

import (
	"fmt"
	"io"
	"os"

	"github.com/raymyers/cminus/pkg/compiler"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// defaultOutput is the assembly file written when -o is not given
const defaultOutput = "output.asm"

var (
	debug      bool   // dump tokens, symbol tables and the parse tree
	outputPath string // assembly destination
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cminus <file>",
		Short: "cminus compiles C- programs to MIPS assembly",
		Long: `cminus compiles a C- source file to MIPS assembly for the SPIM
simulator. All lexical, syntax and semantic errors are reported before
the compiler gives up; no assembly is written when any were found.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doCompile(args[0], out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// usage problems print the usage to stderr
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(errOut, "cminus: %v\n%s", err, cmd.UsageString())
		return err
	})
	rootCmd.Args = func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(1)(cmd, args); err != nil {
			fmt.Fprintf(errOut, "cminus: %v\n%s", err, cmd.UsageString())
			return err
		}
		return nil
	}

	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "Dump tokens, symbol tables and the parse tree")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", defaultOutput, "Write assembly to this file")

	return rootCmd
}

// doCompile compiles filename and writes the assembly to outputPath
func doCompile(filename string, out, errOut io.Writer) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "cminus: error reading %s: %v\n", filename, err)
		return err
	}

	opts := compiler.Options{Diag: errOut}
	if debug {
		opts.Debug = out
	}
	res, err := compiler.Compile(string(content), opts)
	if err != nil {
		fmt.Fprintf(errOut, "cminus: %s: %v\n", filename, err)
		return err
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(errOut, "cminus: error creating %s: %v\n", outputPath, err)
		return err
	}
	defer outFile.Close()
	res.WriteAssembly(outFile)
	return nil
}
