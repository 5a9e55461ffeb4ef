package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"mclisp/internal/reader"
	"mclisp/pkg/lisp"
)

func printBanner() {
	fmt.Println("mclisp REPL (Ctrl+D to exit)")
	fmt.Println()
}

func runREPL(runtime *lisp.Runtime) {
	printBanner()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		runBasicREPL(runtime)
		return
	}
	runRawREPL(runtime)
}

// runBasicREPL handles non-TTY input: it still honors the multi-line
// continuation rule (read a possibly multi-line form, continuing until
// parentheses balance), just without raw-mode editing.
func runBasicREPL(runtime *lisp.Runtime) {
	in := bufio.NewReader(os.Stdin)
	var form strings.Builder

	for {
		if form.Len() == 0 {
			fmt.Print(">>> ")
		} else {
			fmt.Print("... ")
		}

		line, err := in.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}

		if form.Len() == 0 && strings.TrimSpace(line) == ":history" {
			printHistory(runtime)
			continue
		}

		form.WriteString(line)

		if !readyToEval(form.String()) {
			continue
		}
		evalAndPrint(runtime, form.String())
		form.Reset()
	}
}

// readyToEval reports whether text should be handed to the evaluator: it is
// non-blank and either its parentheses balance or it has an extra ')' (which
// the evaluator then reports as a syntax error).
func readyToEval(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	depth, extra := reader.Balance(text)
	return extra || depth <= 0
}

// printHistory implements the REPL's :history meta-command, listing
// recorded lines with a relative timestamp.
func printHistory(runtime *lisp.Runtime) {
	entries := runtime.RecentEntries(20)
	if len(entries) == 0 {
		fmt.Print("(no history recorded)\r\n")
		return
	}
	for _, e := range entries {
		fmt.Print(runtime.FormatHistoryEntry(e) + "\r\n")
	}
}

func evalAndPrint(runtime *lisp.Runtime, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	result, err := runtime.Eval(text)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if result != "" {
		fmt.Println(result)
	}
}

// runRawREPL handles TTY input: raw-mode line editing with cursor movement
// and history recall (Up/Down), reading one byte at a time off the raw
// terminal.
func runRawREPL(runtime *lisp.Runtime) {
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		runBasicREPL(runtime)
		return
	}
	defer term.Restore(fd, oldState)

	history := runtime.RecentLines(200)
	var form strings.Builder

	for {
		prompt := "\r\n>>> "
		if form.Len() > 0 {
			prompt = "\r\n... "
		}
		fmt.Print(prompt)

		line, eof := readLineRaw(fd, history)
		if eof {
			fmt.Print("\r\n")
			return
		}
		if form.Len() == 0 && strings.TrimSpace(line) == ":history" {
			printHistory(runtime)
			continue
		}
		if line != "" {
			history = append(history, line)
		}
		form.WriteString(line)
		form.WriteString("\n")

		if !readyToEval(form.String()) {
			continue
		}
		text := strings.TrimSpace(form.String())
		form.Reset()
		if text == "" {
			continue
		}

		result, err := runtime.Eval(text)
		if err != nil {
			fmt.Printf("Error: %v\r\n", err)
			continue
		}
		if result != "" {
			fmt.Print(strings.ReplaceAll(result, "\n", "\r\n"))
		}
	}
}

// readLineRaw reads one line in raw mode, supporting cursor movement,
// backspace, and Up/Down history recall. Returns the line and whether EOF
// was encountered.
func readLineRaw(fd int, history []string) (string, bool) {
	var line []rune
	cursor := 0
	historyIdx := len(history) // one past the newest entry: "not browsing"
	buf := make([]byte, 1)

	redraw := func(from int) {
		fmt.Print("\x1b[K")
		for i := from; i < len(line); i++ {
			fmt.Print(string(line[i]))
		}
		if cursor < len(line) {
			fmt.Printf("\x1b[%dD", len(line)-cursor)
		}
	}

	setLine := func(s string) {
		fmt.Printf("\x1b[%dD\x1b[K", cursor)
		line = []rune(s)
		cursor = len(line)
		fmt.Print(s)
	}

	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return string(line), true
		}
		b := buf[0]

		switch b {
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", true
			}
			if cursor < len(line) {
				line = append(line[:cursor], line[cursor+1:]...)
				redraw(cursor)
			}

		case 0x03: // Ctrl+C
			fmt.Print("^C\r\n")
			return "", false

		case 0x0d, 0x0a: // Enter
			fmt.Print("\r\n")
			return string(line), false

		case 0x7f, 0x08: // Backspace
			if cursor > 0 {
				cursor--
				line = append(line[:cursor], line[cursor+1:]...)
				fmt.Print("\b")
				redraw(cursor)
			}

		case 0x1b: // ESC: arrow-key sequence
			next := make([]byte, 1)
			if n, err := os.Stdin.Read(next); err != nil || n == 0 {
				continue
			}
			if next[0] != '[' {
				continue
			}
			arrow := make([]byte, 1)
			if n, err := os.Stdin.Read(arrow); err != nil || n == 0 {
				continue
			}
			switch arrow[0] {
			case 'A': // Up: older history entry
				if historyIdx > 0 {
					historyIdx--
					setLine(history[historyIdx])
				}
			case 'B': // Down: newer history entry, or clear at the end
				if historyIdx < len(history)-1 {
					historyIdx++
					setLine(history[historyIdx])
				} else if historyIdx == len(history)-1 {
					historyIdx++
					setLine("")
				}
			case 'C':
				if cursor < len(line) {
					cursor++
					fmt.Print("\x1b[C")
				}
			case 'D':
				if cursor > 0 {
					cursor--
					fmt.Print("\x1b[D")
				}
			}

		case 0x01: // Ctrl+A
			if cursor > 0 {
				fmt.Printf("\x1b[%dD", cursor)
				cursor = 0
			}

		case 0x05: // Ctrl+E
			if cursor < len(line) {
				fmt.Printf("\x1b[%dC", len(line)-cursor)
				cursor = len(line)
			}

		case 0x0b: // Ctrl+K
			if cursor < len(line) {
				line = line[:cursor]
				fmt.Print("\x1b[K")
			}

		case 0x15: // Ctrl+U
			if cursor > 0 {
				fmt.Printf("\x1b[%dD", cursor)
				line = line[cursor:]
				cursor = 0
				redraw(0)
			}

		default:
			if b >= 0x20 && b < 0x7f {
				r := rune(b)
				line = insertRune(line, cursor, r)
				cursor++
				fmt.Print(string(r))
				if cursor < len(line) {
					redraw(cursor)
				}
			} else if b >= 0x80 {
				r := readUTF8Rune(b)
				line = insertRune(line, cursor, r)
				cursor++
				fmt.Print(string(r))
				if cursor < len(line) {
					redraw(cursor)
				}
			}
		}
	}
}

func insertRune(line []rune, at int, r rune) []rune {
	out := make([]rune, 0, len(line)+1)
	out = append(out, line[:at]...)
	out = append(out, r)
	out = append(out, line[at:]...)
	return out
}

// readUTF8Rune reads the continuation bytes of a multi-byte UTF-8 sequence
// whose lead byte is b.
func readUTF8Rune(b byte) rune {
	buf := []byte{b}
	numBytes := 0
	switch {
	case b&0xE0 == 0xC0:
		numBytes = 1
	case b&0xF0 == 0xE0:
		numBytes = 2
	case b&0xF8 == 0xF0:
		numBytes = 3
	}
	cont := make([]byte, 1)
	for i := 0; i < numBytes; i++ {
		n, err := os.Stdin.Read(cont)
		if err != nil || n == 0 {
			break
		}
		buf = append(buf, cont[0])
	}
	r := []rune(string(buf))
	if len(r) == 0 {
		return 0
	}
	return r[0]
}
