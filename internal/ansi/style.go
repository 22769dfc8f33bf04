package ansi

// StyleCode is an SGR parameter as it appears in an escape sequence ("0", "31", ...).
type StyleCode string

// ResetCode clears every other active code.
const ResetCode StyleCode = "0"

// Color is a hex color understood by the render sink.
type Color string

// Palette used by the default table.
const (
	Black   Color = "#000000"
	Red     Color = "#FF0000"
	Green   Color = "#00FF00"
	Yellow  Color = "#FFFF00"
	Blue    Color = "#0000FF"
	Magenta Color = "#FF00FF"
	Cyan    Color = "#00FFFF"
	White   Color = "#FFFFFF"
)

// DefaultBackground is applied to every spec that does not set its own.
const DefaultBackground = Black

// StyleSpec is the display style bound to one code. Nil/empty fields leave the
// attribute to whatever other active codes (or the sink default) say.
type StyleSpec struct {
	Foreground Color
	Background Color
	Bold       *bool
	Underline  *bool
}

// StyleTable maps SGR codes to styles. It is built once and never mutated, so a
// single table can be shared by the parser and every renderer.
type StyleTable struct {
	specs map[StyleCode]StyleSpec
}

// NewStyleTable copies specs into an immutable table, filling in the black
// background on entries that leave it unset.
func NewStyleTable(specs map[StyleCode]StyleSpec) *StyleTable {
	t := &StyleTable{specs: make(map[StyleCode]StyleSpec, len(specs))}
	for code, spec := range specs {
		if spec.Background == "" {
			spec.Background = DefaultBackground
		}
		t.specs[code] = spec
	}
	return t
}

// DefaultStyleTable covers reset, the eight standard foreground colors, bold
// and underline.
func DefaultStyleTable() *StyleTable {
	on := true
	return NewStyleTable(map[StyleCode]StyleSpec{
		"0":  {Foreground: White, Background: Black},
		"30": {Foreground: Black},
		"31": {Foreground: Red},
		"32": {Foreground: Green},
		"33": {Foreground: Yellow},
		"34": {Foreground: Blue},
		"35": {Foreground: Magenta},
		"36": {Foreground: Cyan},
		"37": {Foreground: White},
		"1":  {Bold: &on},
		"4":  {Underline: &on},
	})
}

// Lookup returns the spec for code.
func (t *StyleTable) Lookup(code StyleCode) (StyleSpec, bool) {
	spec, ok := t.specs[code]
	return spec, ok
}

// Has reports whether code is known.
func (t *StyleTable) Has(code StyleCode) bool {
	_, ok := t.specs[code]
	return ok
}

// Resolve folds the specs of every active code into one, later codes winning.
func (t *StyleTable) Resolve(state StyleState) StyleSpec {
	var out StyleSpec
	for _, code := range state {
		spec, ok := t.specs[code]
		if !ok {
			continue
		}
		if spec.Foreground != "" {
			out.Foreground = spec.Foreground
		}
		if spec.Background != "" {
			out.Background = spec.Background
		}
		if spec.Bold != nil {
			out.Bold = spec.Bold
		}
		if spec.Underline != nil {
			out.Underline = spec.Underline
		}
	}
	return out
}
