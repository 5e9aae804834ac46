package render

import (
	"time"

	"github.com/iw2rmb/quill/caret"
)

// Style controls caret and selection painting for a field.
type Style struct {
	CaretColor Color
	// CaretWidth is the line caret width in logical units; it is multiplied by
	// the frame's scale factor.
	CaretWidth  float32
	CaretRadius float32
	// CaretHeight is the caret height as a fraction of the line height.
	CaretHeight float32

	SelectionColor Color
	// SelectedTextColor tints glyphs inside the selection. Nil keeps the
	// base text color.
	SelectedTextColor *Color
	// OverwriteTextColor paints the glyph under a block caret.
	OverwriteTextColor Color

	BlinkInterval time.Duration
}

func DefaultStyle() Style {
	return Style{
		CaretColor:         MustHex("#9ca3af"),
		CaretWidth:         3,
		CaretHeight:        1,
		SelectionColor:     MustHex("#87ceeb"),
		OverwriteTextColor: RGB(0, 0, 0),
		BlinkInterval:      caret.DefaultInterval,
	}
}
