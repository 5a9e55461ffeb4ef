// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Command lisp is the reference driver for the interpreter.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"mclisp/pkg/lisp"
)

func main() {
	var (
		evalStr   = flag.String("e", "", "evaluate one expression and exit")
		historyDB = flag.String("history", "", "path to a SQLite history database")
		noPrelude = flag.Bool("no-prelude", false, "skip loading the default prelude")
	)
	flag.Parse()

	var opts []lisp.Option
	if *historyDB != "" {
		opts = append(opts, lisp.WithHistory(*historyDB))
	}
	if *noPrelude {
		opts = append(opts, lisp.WithNoPrelude())
	}

	runtime := lisp.New(opts...)
	defer runtime.Close()

	switch {
	case *evalStr != "":
		runAndExit(runtime, func() []lisp.Result {
			result, err := runtime.Eval(*evalStr)
			return []lisp.Result{{Text: result, Err: err}}
		})

	case flag.NArg() > 0:
		runAndExit(runtime, func() []lisp.Result {
			results, err := runtime.EvalFile(flag.Arg(0))
			if err != nil {
				return []lisp.Result{{Err: err}}
			}
			return results
		})

	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		runAndExit(runtime, func() []lisp.Result {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return []lisp.Result{{Err: err}}
			}
			return runtime.EvalAll(bytes.NewReader(data))
		})

	default:
		runREPL(runtime)
	}
}

// runAndExit prints every result, exiting 1 if any form failed (exit 0 on
// success; nonzero when a required file is unreadable or a form errors).
func runAndExit(runtime *lisp.Runtime, produce func() []lisp.Result) {
	exitCode := 0
	for _, r := range produce() {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", r.Err)
			exitCode = 1
			continue
		}
		if r.Text != "" {
			fmt.Println(r.Text)
		}
	}
	os.Exit(exitCode)
}
