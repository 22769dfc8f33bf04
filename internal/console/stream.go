package console

import (
	"io"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/tfui/internal/ansi"
)

// StreamSurface draws straight to a terminal or pipe for headless runs.
// Deleting a line is only possible while it is still unterminated; the cursor
// returns to column zero and the line is erased.
type StreamSurface struct {
	w      io.Writer
	styler *Styler
	open   bool
	err    error
}

// NewStreamSurface writes styled output to w. Color support is detected from
// w by lipgloss.
func NewStreamSurface(w io.Writer, table *ansi.StyleTable) *StreamSurface {
	return &StreamSurface{
		w:      w,
		styler: NewStyler(table, lipgloss.NewRenderer(w)),
	}
}

// SetColorProfile forces a color profile instead of detecting one from w.
func (s *StreamSurface) SetColorProfile(p termenv.Profile) {
	s.styler.SetColorProfile(p)
}

// Append implements Surface.
func (s *StreamSurface) Append(text string, styles ansi.StyleState) {
	if text == "" {
		return
	}
	if text == "\n" {
		s.write("\n")
		s.open = false
		return
	}
	s.write(s.styler.Render(text, styles))
	s.open = text[len(text)-1] != '\n'
}

// DeleteLastLine implements Surface.
func (s *StreamSurface) DeleteLastLine() {
	if !s.open {
		return
	}
	s.write("\r" + xansi.EraseEntireLine)
	s.open = false
}

// ScrollToEnd implements Surface. A stream is always at its end.
func (s *StreamSurface) ScrollToEnd() {}

// Err returns the first write error, if any.
func (s *StreamSurface) Err() error {
	return s.err
}

func (s *StreamSurface) write(text string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, text)
}
