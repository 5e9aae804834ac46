package field

import (
	"github.com/iw2rmb/quill/mode"
	"github.com/iw2rmb/quill/render"
)

// ShapeRequest is everything that determines a layout.
type ShapeRequest struct {
	Text      string
	Wrap      mode.WrapPolicy
	Font      Font
	Width     float32
	Alignment Alignment
	Scale     float32
}

// Shaper turns text into positioned glyphs.
//
// Implementations must set Glyph.Line and Glyph.Byte to the logical position
// each glyph came from, group glyphs by run in ascending order, and make every
// AtlasRef they hand out resolvable through Atlas before Shape returns.
type Shaper interface {
	Shape(req ShapeRequest) render.Layout
	Atlas() render.Atlas
}

// layoutKey is the part of a ShapeRequest besides the text. A change forces a
// reshape even when the text is clean.
type layoutKey struct {
	wrap      mode.WrapPolicy
	font      Font
	width     float32
	alignment Alignment
	scale     float32
}

func keyOf(req ShapeRequest) layoutKey {
	return layoutKey{
		wrap:      req.Wrap,
		font:      req.Font,
		width:     req.Width,
		alignment: req.Alignment,
		scale:     req.Scale,
	}
}
