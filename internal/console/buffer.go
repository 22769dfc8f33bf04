package console

import (
	"strings"

	"github.com/rileyhilliard/tfui/internal/ansi"
)

// Span is a run of text with the style state it was drawn with.
type Span struct {
	Text   string
	Styles ansi.StyleState
}

// Line is one logical line of the buffer.
type Line []Span

// Text returns the line's visible text.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Buffer is an in-memory Surface backing the TUI log view. The scrollback is
// not bounded.
type Buffer struct {
	lines []Line
	// open is true while the last line has not received its "\n".
	open   bool
	scroll bool
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append implements Surface.
func (b *Buffer) Append(text string, styles ansi.StyleState) {
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		if part != "" {
			if !b.open {
				b.lines = append(b.lines, nil)
				b.open = true
			}
			last := len(b.lines) - 1
			b.lines[last] = append(b.lines[last], Span{Text: part, Styles: styles})
		}
		if i < len(parts)-1 {
			if !b.open {
				b.lines = append(b.lines, nil)
			}
			b.open = false
		}
	}
}

// DeleteLastLine implements Surface.
func (b *Buffer) DeleteLastLine() {
	if len(b.lines) == 0 {
		return
	}
	b.lines = b.lines[:len(b.lines)-1]
	b.open = false
}

// ScrollToEnd implements Surface. The view picks the request up through
// TakeScroll.
func (b *Buffer) ScrollToEnd() {
	b.scroll = true
}

// TakeScroll reports whether a scroll-to-end was requested since the last
// call and clears the request.
func (b *Buffer) TakeScroll() bool {
	s := b.scroll
	b.scroll = false
	return s
}

// Len returns the number of lines, including an unterminated last line.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Lines returns the buffer's lines. Callers must not modify them.
func (b *Buffer) Lines() []Line {
	return b.lines
}

// Text returns the plain text of every line joined by newlines.
func (b *Buffer) Text() string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.Text()
	}
	return strings.Join(out, "\n")
}

// Render returns every line styled through s, joined by newlines.
func (b *Buffer) Render(s *Styler) string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, span := range l {
			sb.WriteString(s.Render(span.Text, span.Styles))
		}
	}
	return sb.String()
}

// Reset clears the buffer.
func (b *Buffer) Reset() {
	b.lines = nil
	b.open = false
	b.scroll = true
}
