package ansi

import (
	"regexp"
	"strings"
)

// sgrPattern matches a complete SGR escape: ESC [ <params> m.
var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StyleState is the ordered list of codes active while parsing one line.
type StyleState []StyleCode

// Clone returns an independent copy.
func (s StyleState) Clone() StyleState {
	if s == nil {
		return nil
	}
	return append(StyleState(nil), s...)
}

// IsReset reports whether the state is exactly the reset style.
func (s StyleState) IsReset() bool {
	return len(s) == 1 && s[0] == ResetCode
}

// Segment is a run of visible text sharing one style state.
type Segment struct {
	Text   string
	Styles StyleState
}

// ParseLine splits line into styled segments. Escape sequences are consumed;
// concatenating the segment texts yields the line with SGR escapes removed.
// Style state starts empty for every line. A line without escapes is always
// one segment, even when it is empty.
func (t *StyleTable) ParseLine(line string) []Segment {
	locs := sgrPattern.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return []Segment{{Text: line}}
	}

	var (
		segments []Segment
		state    StyleState
		pos      int
	)

	emit := func(text string) {
		if text == "" {
			return
		}
		segments = append(segments, Segment{Text: text, Styles: state.Clone()})
	}

	for _, loc := range locs {
		emit(line[pos:loc[0]])
		// strip the leading ESC[ and trailing m
		state = t.applySGR(line[loc[0]+2 : loc[1]-1])
		pos = loc[1]
	}
	emit(line[pos:])

	return segments
}

// applySGR builds the state selected by one escape sequence. Each sequence
// replaces the previous state outright; codes are not merged across sequences.
func (t *StyleTable) applySGR(params string) StyleState {
	if params == "" {
		return StyleState{ResetCode}
	}

	var state StyleState
	for _, raw := range strings.Split(params, ";") {
		code := StyleCode(raw)
		switch {
		case code == ResetCode:
			state = StyleState{ResetCode}
		case t.Has(code):
			state = append(state, code)
		}
	}
	return state
}

// Strip removes SGR escapes from line.
func Strip(line string) string {
	return sgrPattern.ReplaceAllString(line, "")
}
