package console

import (
	"strings"

	"github.com/rileyhilliard/tfui/internal/ansi"
	"github.com/rileyhilliard/tfui/internal/output"
)

// Renderer turns a raw byte stream into styled lines on a Surface. Chunks may
// split anywhere; only complete lines reach the surface.
//
// A line terminated by "\r" is drawn and marked as in progress. The next line
// deletes it before drawing, so "A\rB\n" leaves a single line "B". Intermediate
// progress frames are lost, which is intended.
//
// Renderer is not safe for concurrent use. Feed it from the UI goroutine.
type Renderer struct {
	surface Surface
	table   *ansi.StyleTable
	pending string
	// overwrite is set while the last drawn line ended in "\r".
	overwrite bool
	lines     int
}

// NewRenderer creates a renderer drawing into surface with table.
func NewRenderer(surface Surface, table *ansi.StyleTable) *Renderer {
	return &Renderer{surface: surface, table: table}
}

// Write buffers chunk and renders every line it completes.
func (r *Renderer) Write(chunk string) {
	r.pending += chunk
	for {
		line, term, ok := r.cut()
		if !ok {
			return
		}
		r.render(line, term)
	}
}

// Consume writes the content of each queued line in order.
func (r *Renderer) Consume(lines []output.QueuedLine) {
	for _, l := range lines {
		r.Write(l.Content)
	}
}

// Flush renders any buffered partial line as a finished line and closes an
// in-progress carriage-return line. Call it before output from a new process
// starts.
func (r *Renderer) Flush() {
	rest := strings.ReplaceAll(r.pending, "\r", "")
	r.pending = ""
	if ansi.Strip(rest) != "" {
		r.render(rest, '\n')
		return
	}
	if r.overwrite {
		r.overwrite = false
		r.surface.Append("\n", nil)
		r.surface.ScrollToEnd()
	}
}

// Pending returns the buffered text that has not formed a line yet.
func (r *Renderer) Pending() string {
	return r.pending
}

// Lines returns how many lines have been processed.
func (r *Renderer) Lines() int {
	return r.lines
}

// cut removes the next complete line from the buffer. "\r\n" is one newline.
// A "\r" at the very end waits for the next chunk, since it may be half of a
// "\r\n" split across writes.
func (r *Renderer) cut() (line string, term byte, ok bool) {
	idx := strings.IndexAny(r.pending, "\r\n")
	if idx < 0 {
		return "", 0, false
	}

	line = r.pending[:idx]
	if r.pending[idx] == '\n' {
		r.pending = r.pending[idx+1:]
		return line, '\n', true
	}

	if idx == len(r.pending)-1 {
		return "", 0, false
	}
	if r.pending[idx+1] == '\n' {
		r.pending = r.pending[idx+2:]
		return line, '\n', true
	}
	r.pending = r.pending[idx+1:]
	return line, '\r', true
}

func (r *Renderer) render(line string, term byte) {
	r.lines++

	if r.overwrite {
		r.surface.DeleteLastLine()
		r.overwrite = false
	}

	drawn := false
	for _, seg := range r.table.ParseLine(line) {
		if seg.Text == "" {
			continue
		}
		r.surface.Append(seg.Text, seg.Styles)
		drawn = true
	}

	if term == '\r' {
		r.overwrite = drawn
	} else {
		r.surface.Append("\n", nil)
	}

	r.surface.ScrollToEnd()
}
