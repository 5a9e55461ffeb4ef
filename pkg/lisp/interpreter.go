package lisp

import (
	"fmt"
	"io"
	"os"

	"mclisp/internal/eval"
	"mclisp/internal/history"
	"mclisp/internal/printer"
	"mclisp/internal/reader"
	"mclisp/internal/scanner"
)

// Runtime wraps an eval.Evaluator with prelude loading and optional history
// persistence, the public surface a CLI driver is built on.
type Runtime struct {
	evaluator *eval.Evaluator

	historyPath string
	history     *history.Store
	session     string

	noPrelude bool
	prelude   string
}

// New creates a Runtime, seeding its evaluator with DefaultPrelude (or a
// custom prelude) unless WithNoPrelude is given.
func New(opts ...Option) *Runtime {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}

	r.evaluator = eval.New()

	if r.historyPath != "" {
		if h, err := history.Open(r.historyPath); err == nil {
			r.history = h
			r.session = history.NewSession()
		}
	}

	if !r.noPrelude {
		prelude := r.prelude
		if prelude == "" {
			prelude = DefaultPrelude
		}
		// Prelude forms are treated as trusted source: a failure while
		// loading DefaultPrelude or a WithPrelude source panics rather than
		// being swallowed.
		if err := r.loadSource(prelude); err != nil {
			panic(fmt.Sprintf("lisp: prelude failed to load: %v", err))
		}
	}

	return r
}

func (r *Runtime) loadSource(source string) error {
	rd := reader.NewFromString(source)
	for {
		done, err := rd.Done()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		form, err := rd.Read()
		if err != nil {
			return err
		}
		if _, err := r.evaluator.EvalTopLevel(form); err != nil {
			return err
		}
	}
}

// Eval reads one top-level form from input, evaluates it, and returns its
// printed result.
func (r *Runtime) Eval(input string) (string, error) {
	if r.history != nil {
		r.history.Record(r.session, input)
	}
	v, err := r.evaluator.EvalString(input)
	if err != nil {
		return "", err
	}
	return printer.Print(v), nil
}

// Result is one form's outcome from EvalAll: either Text is set, or Err is.
type Result struct {
	Text string
	Err  error
}

// EvalAll reads every top-level form from r and evaluates them in sequence.
// An evaluation error is recorded in that form's Result and evaluation
// continues with the next form. A read (syntax) error is recorded as the
// last Result and ends the stream: no later form is read.
func (r *Runtime) EvalAll(in io.Reader) []Result {
	rd := reader.New(scanner.New(in))
	var results []Result
	for {
		done, err := rd.Done()
		if err != nil {
			results = append(results, Result{Err: err})
			return results
		}
		if done {
			return results
		}
		form, err := rd.Read()
		if err != nil {
			results = append(results, Result{Err: err})
			return results
		}
		v, err := r.evaluator.EvalTopLevel(form)
		if err != nil {
			results = append(results, Result{Err: err})
			continue
		}
		results = append(results, Result{Text: printer.Print(v)})
	}
}

// EvalFile opens path and evaluates every form in it via EvalAll.
func (r *Runtime) EvalFile(path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.EvalAll(f), nil
}

// Evaluator exposes the underlying eval.Evaluator, e.g. so a driver can
// inspect the environment between forms.
func (r *Runtime) Evaluator() *eval.Evaluator { return r.evaluator }

// RecentLines returns up to n of the most recently submitted lines, oldest
// first, for a REPL's history recall. It returns nil if no history store is
// configured.
func (r *Runtime) RecentLines(n int) []string {
	entries := r.RecentEntries(n)
	if entries == nil {
		return nil
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line
	}
	return lines
}

// RecentEntries returns up to n of the most recently submitted history
// entries, oldest first, for a REPL's :history command. It returns nil if no
// history store is configured.
func (r *Runtime) RecentEntries(n int) []history.Entry {
	if r.history == nil {
		return nil
	}
	entries, err := r.history.Recent(n)
	if err != nil {
		return nil
	}
	return entries
}

// FormatHistoryEntry renders one history entry with a relative timestamp,
// e.g. "3 minutes ago    (+ 1 2)" (the time is padded to 16 columns).
func (r *Runtime) FormatHistoryEntry(e history.Entry) string {
	return fmt.Sprintf("%-16s %s", history.FormatRelative(e), e.Line)
}

// Close releases the history store, if one was configured.
func (r *Runtime) Close() error {
	if r.history != nil {
		return r.history.Close()
	}
	return nil
}
