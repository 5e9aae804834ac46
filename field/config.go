package field

import (
	"github.com/iw2rmb/quill/mode"
	"github.com/iw2rmb/quill/render"
)

// Font is the subset of font settings the shaper and measure need.
type Font struct {
	Family string
	Size   float32
	// LineHeight is absolute. Zero means 1.2 × Size.
	LineHeight float32
}

func (f Font) EffectiveLineHeight() float32 {
	if f.LineHeight > 0 {
		return f.LineHeight
	}
	return f.Size * 1.2
}

// Alignment positions each visual line horizontally inside the field.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseAlignment maps a config name to an Alignment.
func ParseAlignment(s string) (Alignment, bool) {
	switch s {
	case "", "start", "left":
		return AlignStart, true
	case "center":
		return AlignCenter, true
	case "end", "right":
		return AlignEnd, true
	default:
		return AlignStart, false
	}
}

// Prompt is the placeholder shown while the field is empty (whitespace
// included).
type Prompt struct {
	Text string
	// Font overrides the field font when set.
	Font *Font
	// Color overrides the field text color when set.
	Color *render.Color
}

// Config configures one Field.
type Config struct {
	// Initial text. It is not validated and not recorded in history.
	Text string

	Mode     mode.InputMode
	MaxChars int
	Filter   mode.Filter

	Prompt *Prompt

	Font      Font
	TextColor render.Color
	Style     render.Style
	Alignment Alignment
	// Lines is the number of text lines the field measures to in FreeText
	// mode. Single-line modes always measure one line.
	Lines float32

	ClearOnSubmit         bool
	DeactivateOnSubmit    bool
	AllowOverwrite        bool
	Enabled               bool
	ActivateOnPointerDown bool

	// Forwarded to buffer.Options.
	HistoryLimit int
}

func DefaultConfig() Config {
	return Config{
		Mode:                  mode.Default(),
		Font:                  Font{Size: 20, LineHeight: 20},
		TextColor:             render.RGB(0xff, 0xff, 0xff),
		Style:                 render.DefaultStyle(),
		Lines:                 1,
		ClearOnSubmit:         true,
		DeactivateOnSubmit:    true,
		AllowOverwrite:        true,
		Enabled:               true,
		ActivateOnPointerDown: true,
	}
}

// Validator returns the edit gate derived from the config.
func (c Config) Validator() mode.Validator {
	return mode.Validator{Mode: c.Mode, MaxChars: c.MaxChars, Filter: c.Filter}
}

func (c Config) promptFont() Font {
	if c.Prompt != nil && c.Prompt.Font != nil {
		return *c.Prompt.Font
	}
	return c.Font
}

func (c Config) promptColor() render.Color {
	if c.Prompt != nil && c.Prompt.Color != nil {
		return *c.Prompt.Color
	}
	return c.TextColor
}

// lines returns the measured line count.
func (c Config) lines() float32 {
	if c.Mode.IsSingleLine() || c.Lines <= 0 {
		return 1
	}
	return c.Lines
}
