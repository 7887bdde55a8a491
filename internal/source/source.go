// Package source holds program text and turns 1-indexed (line, column)
// positions into human-readable caret diagnostics.
package source

import (
	"strings"
)

// Position is a 1-indexed (line, column) pair.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return "[" + itoa(p.Line) + ", " + itoa(p.Column) + "]"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Buffer wraps a program's source text and lazily splits it into lines for
// diagnostic rendering.
type Buffer struct {
	Name string
	Text string

	lines []string
}

// New creates a Buffer over the given source text, naming it (usually the
// file path) for diagnostics.
func New(name, text string) *Buffer {
	return &Buffer{Name: name, Text: text}
}

func (b *Buffer) splitLines() []string {
	if b.lines == nil {
		b.lines = strings.Split(b.Text, "\n")
	}
	return b.lines
}

// Line returns the 1-indexed source line, or "" if out of range.
func (b *Buffer) Line(n int) string {
	lines := b.splitLines()
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Snippet renders a two-line diagnostic: the source line, followed by a
// caret under the offending column. Out-of-range positions degrade to a
// best-effort rendering instead of failing.
func (b *Buffer) Snippet(pos Position) string {
	line := b.Line(pos.Line)
	col := pos.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return line + "\n" + caret
}
