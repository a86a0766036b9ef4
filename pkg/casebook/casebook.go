// Package casebook extracts end-to-end compiler cases from Markdown.
//
// A case starts at a heading of the form "Test: <name>" and holds one
// cminus fence with the source plus one or more assertion fences:
//
//	asm      lines that must appear in the output, in order
//	asm-not  lines that must not appear anywhere in the output
//	errors   one line per expected diagnostic, matched as a substring
//
// Assembly lines are compared with whitespace collapsed, so "li $t0, 5"
// matches the tab-separated printer output.
package casebook

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputFence is the fence language of a case's source program
const InputFence = "cminus"

// AssertionType is the fence language of an assertion
type AssertionType string

const (
	AssertAsm    AssertionType = "asm"
	AssertAsmNot AssertionType = "asm-not"
	AssertErrors AssertionType = "errors"
)

// Assertion is one assertion fence of a case
type Assertion struct {
	Type  AssertionType
	Lines []string // non-blank lines of the fence, trimmed
	Line  int      // line of the fence in the Markdown file
}

// Case is one compiler test extracted from Markdown
type Case struct {
	Name       string
	Input      string
	Assertions []Assertion
}

// Extract parses a Markdown document and returns every case in order
func Extract(markdown string) ([]Case, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var cur *Case
	finish := func() error {
		if cur == nil {
			return nil
		}
		if err := validate(cur); err != nil {
			return err
		}
		cases = append(cases, *cur)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			cur = &Case{Name: strings.TrimPrefix(heading, "Test: ")}

		case *ast.FencedCodeBlock:
			lang := string(n.Language(source))
			line := lineNumber(n, source)
			if lang == "" {
				return ast.WalkContinue, nil // prose examples
			}
			if cur == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, lang)
			}
			content := fenceContent(n, source)
			switch AssertionType(lang) {
			case AssertAsm, AssertAsmNot, AssertErrors:
				cur.Assertions = append(cur.Assertions, Assertion{
					Type:  AssertionType(lang),
					Lines: nonBlankLines(content),
					Line:  line,
				})
			default:
				if lang != InputFence {
					return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, lang, cur.Name)
				}
				if cur.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", line, cur.Name)
				}
				cur.Input = strings.TrimRight(content, "\n")
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown: %w", err)
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func validate(c *Case) error {
	if c.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", c.Name)
	}
	if len(c.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", c.Name)
	}
	return nil
}

// Check verifies one assertion against the printed assembly and the
// diagnostic messages of a compilation, returning one message per failure
func (a Assertion) Check(asmText string, diagnostics []string) []string {
	var failures []string
	switch a.Type {
	case AssertAsm:
		lines := normalizedLines(asmText)
		i := 0
		for _, want := range a.Lines {
			want = normalize(want)
			for i < len(lines) && lines[i] != want {
				i++
			}
			if i == len(lines) {
				failures = append(failures, fmt.Sprintf("line %d: %q not found in order", a.Line, want))
				return failures
			}
			i++
		}
	case AssertAsmNot:
		lines := normalizedLines(asmText)
		for _, bad := range a.Lines {
			bad = normalize(bad)
			for _, l := range lines {
				if l == bad {
					failures = append(failures, fmt.Sprintf("line %d: unexpected %q", a.Line, bad))
					break
				}
			}
		}
	case AssertErrors:
		if len(diagnostics) != len(a.Lines) {
			failures = append(failures, fmt.Sprintf("line %d: got %d diagnostics %q, want %d", a.Line, len(diagnostics), diagnostics, len(a.Lines)))
			return failures
		}
		for i, want := range a.Lines {
			if !strings.Contains(diagnostics[i], want) {
				failures = append(failures, fmt.Sprintf("line %d: diagnostic %d is %q, want it to contain %q", a.Line, i, diagnostics[i], want))
			}
		}
	}
	return failures
}

func normalize(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

func normalizedLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = normalize(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func nonBlankLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// nodeText returns the plain text of a heading
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// lineNumber returns the 1-based line of a node's first content line
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}
