package lisp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEvalBasic(t *testing.T) {
	r := New()
	defer r.Close()

	got, err := r.Eval("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "3" {
		t.Fatalf("got %q; want 3", got)
	}
}

func TestPreludeHelpers(t *testing.T) {
	r := New()
	defer r.Close()

	cases := map[string]string{
		"(not '())":           "t",
		"(not 5)":             "()",
		"(list2 'a 'b)":       "(a b)",
		"(second '(a b c))":   "b",
	}
	for in, want := range cases {
		got, err := r.Eval(in)
		if err != nil {
			t.Fatalf("Eval(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("Eval(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestNoPrelude(t *testing.T) {
	r := New(WithNoPrelude())
	defer r.Close()

	if _, err := r.Eval("(not t)"); err == nil {
		t.Fatal("expected UnboundError for 'not' with prelude disabled")
	}
}

func TestCustomPrelude(t *testing.T) {
	r := New(WithPrelude("(set 'greeting 'hello)"))
	defer r.Close()

	got, err := r.Eval("greeting")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Fatalf("got %q; want hello", got)
	}
}

func TestEvalAllContinuesAfterError(t *testing.T) {
	r := New()
	defer r.Close()

	results := r.EvalAll(strings.NewReader("(+ 1 2) (car 5) (+ 3 4)"))
	if len(results) != 3 {
		t.Fatalf("len(results) = %d; want 3", len(results))
	}
	if results[0].Err != nil || results[0].Text != "3" {
		t.Fatalf("results[0] = %+v; want Text=3", results[0])
	}
	if results[1].Err == nil {
		t.Fatal("results[1] should have failed (car of non-pair)")
	}
	if results[2].Err != nil || results[2].Text != "7" {
		t.Fatalf("results[2] = %+v; want Text=7", results[2])
	}
}

func TestEvalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lisp")
	content := "(set 'x 10)\n(* x 2)\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New()
	defer r.Close()

	results, err := r.EvalFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[1].Text != "20" {
		t.Fatalf("got %+v; want second result 20", results)
	}
}

func TestHistoryRecording(t *testing.T) {
	dir := t.TempDir()
	r := New(WithHistory(filepath.Join(dir, "hist.db")))
	defer r.Close()

	if _, err := r.Eval("(+ 1 1)"); err != nil {
		t.Fatal(err)
	}
	entries, err := r.history.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Line != "(+ 1 1)" {
		t.Fatalf("got %+v; want one entry '(+ 1 1)'", entries)
	}
}
