package ansi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_PlainText(t *testing.T) {
	table := DefaultStyleTable()

	for _, line := range []string{"hello", "Terraform has been successfully initialized!", "  spaced  ", "tab\there"} {
		segs := table.ParseLine(line)
		require.Len(t, segs, 1, "line %q", line)
		assert.Equal(t, line, segs[0].Text)
		assert.Empty(t, segs[0].Styles)
	}
}

func TestParseLine_EmptyLine(t *testing.T) {
	assert.Equal(t, []Segment{{Text: ""}}, DefaultStyleTable().ParseLine(""))
}

func TestParseLine_OnlyEscapes(t *testing.T) {
	assert.Empty(t, DefaultStyleTable().ParseLine("\x1b[32m\x1b[0m"))
}

func TestParseLine_Segments(t *testing.T) {
	table := DefaultStyleTable()

	tests := []struct {
		name string
		line string
		want []Segment
	}{
		{
			name: "single color",
			line: "\x1b[32mSuccess\x1b[0m done",
			want: []Segment{
				{Text: "Success", Styles: StyleState{"32"}},
				{Text: " done", Styles: StyleState{"0"}},
			},
		},
		{
			name: "leading text keeps empty style",
			line: "Plan: \x1b[1m1 to add\x1b[0m",
			want: []Segment{
				{Text: "Plan: ", Styles: nil},
				{Text: "1 to add", Styles: StyleState{"1"}},
			},
		},
		{
			name: "style replaced not merged",
			line: "\x1b[31;1mRed-Bold\x1b[32mGreen",
			want: []Segment{
				{Text: "Red-Bold", Styles: StyleState{"31", "1"}},
				{Text: "Green", Styles: StyleState{"32"}},
			},
		},
		{
			name: "unknown code is dropped",
			line: "\x1b[99mHello",
			want: []Segment{
				{Text: "Hello", Styles: nil},
			},
		},
		{
			name: "unknown code does not affect known codes",
			line: "\x1b[99;4;007mWarn",
			want: []Segment{
				{Text: "Warn", Styles: StyleState{"4"}},
			},
		},
		{
			name: "empty params mean reset",
			line: "\x1b[1mbold\x1b[mplain",
			want: []Segment{
				{Text: "bold", Styles: StyleState{"1"}},
				{Text: "plain", Styles: StyleState{"0"}},
			},
		},
		{
			name: "adjacent escapes emit no empty segment",
			line: "\x1b[0m\x1b[1m\x1b[32mApply complete!\x1b[0m",
			want: []Segment{
				{Text: "Apply complete!", Styles: StyleState{"32"}},
			},
		},
		{
			name: "reset then color in one sequence",
			line: "\x1b[0;31mError",
			want: []Segment{
				{Text: "Error", Styles: StyleState{"0", "31"}},
			},
		},
		{
			name: "non-SGR escapes stay literal",
			line: "\x1b[2Kcleared",
			want: []Segment{
				{Text: "\x1b[2Kcleared", Styles: nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.ParseLine(tt.line))
		})
	}
}

func TestParseLine_ResetWins(t *testing.T) {
	table := DefaultStyleTable()

	prefixes := []string{"", "\x1b[31m", "\x1b[1;4m", "\x1b[33;1;4m", "\x1b[99m", "\x1b[32m\x1b[4m"}
	for _, prefix := range prefixes {
		segs := table.ParseLine(prefix + "x\x1b[0my")
		last := segs[len(segs)-1]
		assert.Equal(t, "y", last.Text)
		assert.True(t, last.Styles.IsReset(), "prefix %q left %v", prefix, last.Styles)
	}
}

func TestParseLine_SegmentsAreSnapshots(t *testing.T) {
	table := DefaultStyleTable()

	segs := table.ParseLine("\x1b[31;1mA\x1b[32mB")
	require.Len(t, segs, 2)

	segs[1].Styles[0] = "34"
	assert.Equal(t, StyleState{"31", "1"}, segs[0].Styles)
}

func TestParseLine_ConcatenationMatchesStrip(t *testing.T) {
	table := DefaultStyleTable()
	line := "\x1b[1m\x1b[32m+\x1b[0m resource \"null_resource\" \"x\" {\x1b[4mid\x1b[0m}"

	var b strings.Builder
	for _, s := range table.ParseLine(line) {
		b.WriteString(s.Text)
	}
	assert.Equal(t, Strip(line), b.String())
	assert.Equal(t, "+ resource \"null_resource\" \"x\" {id}", b.String())
}
