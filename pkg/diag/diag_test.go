package diag

import (
	"bytes"
	"testing"
)

func TestReporterCountsAndEchoes(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Errorf(Syntax, 3, 7, "unexpected symbol %s", "]")
	r.Errorf(Semantic, 4, 1, "undeclared variable '%s'", "y")

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
	if r.CountKind(Semantic) != 1 {
		t.Errorf("CountKind(Semantic) = %d, want 1", r.CountKind(Semantic))
	}
	want := "error: line 3, col 7: unexpected symbol ]\nerror: line 4, col 1: undeclared variable 'y'\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReporterNilWriter(t *testing.T) {
	r := NewReporter(nil)
	r.Errorf(Lexical, 1, 1, "bad")
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}
	if got := r.Diagnostics()[0].String(); got != "line 1, col 1: bad" {
		t.Errorf("String() = %q", got)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Lexical, "lexical"},
		{Syntax, "syntax"},
		{Semantic, "semantic"},
		{Kind(42), "?"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDiagnosticWithoutPosition(t *testing.T) {
	d := Diagnostic{Kind: Semantic, Msg: "main function not declared"}
	if got := d.String(); got != "main function not declared" {
		t.Errorf("String() = %q", got)
	}
}
