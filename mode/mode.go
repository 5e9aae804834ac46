// Package mode defines per-field input modes and the validator that gates
// every prospective edit of a field.
package mode

// Kind identifies the grammar and line behavior of a field.
type Kind uint8

const (
	// FreeText is multi-line text that wraps according to its WrapPolicy.
	FreeText Kind = iota
	// SingleLineText is unrestricted text on one horizontally scrolling line.
	SingleLineText
	// Integer accepts an optional leading '-' followed by digits.
	Integer
	// Decimal accepts an optional leading '-', digits and at most one '.'.
	Decimal
	// Hexadecimal accepts hexadecimal digits only, without a sign.
	Hexadecimal
)

func (k Kind) String() string {
	switch k {
	case FreeText:
		return "text"
	case SingleLineText:
		return "single-line"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hex"
	default:
		return "unknown"
	}
}

// ParseKind maps the names returned by Kind.String back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "text", "":
		return FreeText, true
	case "single-line", "singleline", "line":
		return SingleLineText, true
	case "integer", "int":
		return Integer, true
	case "decimal":
		return Decimal, true
	case "hex", "hexadecimal":
		return Hexadecimal, true
	default:
		return FreeText, false
	}
}

// WrapPolicy controls how long logical lines are laid out.
//
// WrapNone keeps one visual run per logical line and scrolls horizontally.
type WrapPolicy uint8

const (
	WrapNone WrapPolicy = iota
	WrapGlyph
	WrapWord
	WrapWordOrGlyph
)

// ParseWrap maps a config name to a WrapPolicy.
func ParseWrap(s string) (WrapPolicy, bool) {
	switch s {
	case "none":
		return WrapNone, true
	case "glyph":
		return WrapGlyph, true
	case "word":
		return WrapWord, true
	case "word-or-glyph", "":
		return WrapWordOrGlyph, true
	default:
		return WrapWordOrGlyph, false
	}
}

func (w WrapPolicy) String() string {
	switch w {
	case WrapNone:
		return "none"
	case WrapGlyph:
		return "glyph"
	case WrapWord:
		return "word"
	case WrapWordOrGlyph:
		return "word-or-glyph"
	default:
		return "unknown"
	}
}

// InputMode is a Kind plus, for FreeText, its wrap policy.
type InputMode struct {
	Kind Kind
	wrap WrapPolicy
}

// Text returns a multi-line FreeText mode.
func Text(wrap WrapPolicy) InputMode { return InputMode{Kind: FreeText, wrap: wrap} }

func SingleLine() InputMode { return InputMode{Kind: SingleLineText} }
func Int() InputMode        { return InputMode{Kind: Integer} }
func Dec() InputMode        { return InputMode{Kind: Decimal} }
func Hex() InputMode        { return InputMode{Kind: Hexadecimal} }

// Default is FreeText wrapping at word boundaries, falling back to glyphs.
func Default() InputMode { return Text(WrapWordOrGlyph) }

// Wrap returns the effective wrap policy. Single-line kinds never wrap.
func (m InputMode) Wrap() WrapPolicy {
	if m.Kind == FreeText {
		return m.wrap
	}
	return WrapNone
}

// IsSingleLine reports whether the mode keeps all text on one line.
func (m InputMode) IsSingleLine() bool { return m.Kind != FreeText }

// Accepts reports whether text is a valid (possibly intermediate) value for
// the mode's grammar.
func (m InputMode) Accepts(text string) bool {
	switch m.Kind {
	case Integer:
		return acceptsInteger(text)
	case Decimal:
		return acceptsDecimal(text)
	case Hexadecimal:
		return acceptsHex(text)
	default:
		return true
	}
}

func acceptsInteger(s string) bool {
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func acceptsDecimal(s string) bool {
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	dot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isDigit(c):
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}

func acceptsHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && !(c >= 'a' && c <= 'f') && !(c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
