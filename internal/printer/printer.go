// Package printer renders value.Value trees back to their textual form.
// Printing and internal/reader are inverses: read(print(v)) reproduces v for
// every value built from atoms, numbers and proper lists. An improper pair
// prints in dotted form, which reads back as a proper list containing a "."
// atom.
package printer

import (
	"strconv"
	"strings"

	"mclisp/internal/value"
)

// Print renders v as text.
func Print(v value.Value) string {
	var b strings.Builder
	write(&b, v)
	return b.String()
}

func write(b *strings.Builder, v value.Value) {
	switch t := v.(type) {
	case *value.Atom:
		b.WriteString(t.Name)

	case *value.Integer:
		b.WriteString(strconv.FormatInt(int64(t.Val), 10))

	case *value.Float:
		writeFloat(b, t.Val)

	case *value.Pair:
		writePair(b, t)

	case *value.Primitive:
		b.WriteString("#<primitive:")
		b.WriteString(t.Name)
		b.WriteByte('>')

	case *value.Closure:
		writeClosure(b, t)

	default:
		b.WriteString("#<unknown>")
	}
}

// writeFloat always prints a decimal point so the printed form can never be
// misread as an Integer on the next parse.
func writeFloat(b *strings.Builder, f float32) {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.Contains(s, ".") {
		if i := strings.IndexAny(s, "eE"); i >= 0 {
			s = s[:i] + ".0" + s[i:]
		} else {
			s += ".0"
		}
	}
	b.WriteString(s)
}

func writePair(b *strings.Builder, p *value.Pair) {
	if value.IsEmptyList(p) {
		b.WriteString("()")
		return
	}
	b.WriteByte('(')
	write(b, p.Head)
	rest := p.Tail
	for {
		if value.IsEmptyList(rest) {
			break
		}
		next, ok := rest.(*value.Pair)
		if !ok {
			// improper list: print the dotted tail
			b.WriteString(" . ")
			write(b, rest)
			break
		}
		b.WriteByte(' ')
		write(b, next.Head)
		rest = next.Tail
	}
	b.WriteByte(')')
}

func writeClosure(b *strings.Builder, c *value.Closure) {
	if c.IsMacro {
		b.WriteString("(macro (")
	} else {
		b.WriteString("(lambda (")
	}
	for i, p := range c.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	b.WriteString(") ")
	write(b, c.Body)
	b.WriteByte(')')
}
