package console

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/tfui/internal/ansi"
)

// Styler converts style states into lipgloss styles for one renderer,
// caching by state so repeated states are built once.
type Styler struct {
	table    *ansi.StyleTable
	renderer *lipgloss.Renderer
	cache    map[string]lipgloss.Style
}

// NewStyler creates a Styler. A nil renderer uses lipgloss' default.
func NewStyler(table *ansi.StyleTable, renderer *lipgloss.Renderer) *Styler {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return &Styler{
		table:    table,
		renderer: renderer,
		cache:    make(map[string]lipgloss.Style),
	}
}

// SetColorProfile overrides the renderer's detected profile and drops
// cached styles.
func (s *Styler) SetColorProfile(p termenv.Profile) {
	s.renderer.SetColorProfile(p)
	s.cache = make(map[string]lipgloss.Style)
}

// Style returns the lipgloss style for state.
func (s *Styler) Style(state ansi.StyleState) lipgloss.Style {
	key := stateKey(state)
	if st, ok := s.cache[key]; ok {
		return st
	}

	spec := s.table.Resolve(state)
	st := s.renderer.NewStyle()
	if spec.Foreground != "" {
		st = st.Foreground(lipgloss.Color(spec.Foreground))
	}
	if spec.Background != "" {
		st = st.Background(lipgloss.Color(spec.Background))
	}
	if spec.Bold != nil {
		st = st.Bold(*spec.Bold)
	}
	if spec.Underline != nil {
		st = st.Underline(*spec.Underline)
	}

	s.cache[key] = st
	return st
}

// Render styles text for state. Unstyled text is returned unchanged.
func (s *Styler) Render(text string, state ansi.StyleState) string {
	if len(state) == 0 {
		return text
	}
	return s.Style(state).Render(text)
}

func stateKey(state ansi.StyleState) string {
	var key string
	for _, c := range state {
		key += string(c) + ";"
	}
	return key
}
