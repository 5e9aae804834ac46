package render

// PrimitiveKind tells the painter how to draw a Primitive.
type PrimitiveKind uint8

const (
	// PrimitiveSelection is a filled highlight rectangle.
	PrimitiveSelection PrimitiveKind = iota
	// PrimitiveGlyph copies Source from the atlas into Rect, tinted by Color.
	PrimitiveGlyph
	// PrimitiveCaret is a filled, optionally rounded rectangle.
	PrimitiveCaret
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveSelection:
		return "selection"
	case PrimitiveGlyph:
		return "glyph"
	case PrimitiveCaret:
		return "caret"
	default:
		return "unknown"
	}
}

// Primitive is one paint command in screen space. Painters must clip Rect to
// Clip.
type Primitive struct {
	Kind  PrimitiveKind
	Rect  Rect
	Clip  Rect
	Color Color

	// Line and Byte locate glyphs and the caret in the logical text.
	Line int
	Byte int

	// Glyph fields.
	Atlas  AtlasRef
	Source Rect
	Prompt bool

	// Caret fields.
	Radius float32
	Block  bool
}
