package render

// AtlasRef identifies a rasterized glyph in the shaper's atlas.
type AtlasRef uint32

// Atlas resolves glyph references to atlas regions. Shapers populate it
// before handing out a Layout that refers to it.
type Atlas interface {
	Lookup(ref AtlasRef) (Rect, bool)
}

// Glyph is one shaped, positioned cluster.
//
// Position is the top-left corner relative to the field's content origin,
// before scrolling. Line and Byte point back at the logical text; Length is
// the cluster's byte length. Run indexes Layout.Runs.
type Glyph struct {
	Position Vec2
	Size     Vec2
	Atlas    AtlasRef

	Span   int
	Line   int
	Byte   int
	Length int
	Run    int
}

// LineRun is one visual line. A logical line wraps into one or more runs
// covering [StartByte, EndByte) of it.
type LineRun struct {
	Line      int
	Top       float32
	Left      float32
	Width     float32
	StartByte int
	EndByte   int
}

// Layout is the output of shaping one text.
type Layout struct {
	Glyphs     []Glyph
	Runs       []LineRun
	Size       Vec2
	LineHeight float32
}

// RunGlyphs returns the glyphs of run i. Glyphs are grouped by run in
// ascending order.
func (l Layout) RunGlyphs(i int) []Glyph {
	start := -1
	for gi, g := range l.Glyphs {
		if g.Run == i && start < 0 {
			start = gi
		}
		if g.Run > i {
			if start < 0 {
				return nil
			}
			return l.Glyphs[start:gi]
		}
	}
	if start < 0 {
		return nil
	}
	return l.Glyphs[start:]
}

// GlyphAt returns the glyph starting at byte off of line.
func (l Layout) GlyphAt(line, off int) (Glyph, bool) {
	for _, g := range l.Glyphs {
		if g.Line == line && g.Byte == off {
			return g, true
		}
	}
	return Glyph{}, false
}

// RunAt returns the index of the visual run holding byte off of line. A position
// on a wrap boundary belongs to the later run; the end of a line belongs to
// its last run.
func (l Layout) RunAt(line, off int) (int, bool) {
	found := -1
	for i, r := range l.Runs {
		if r.Line != line {
			if found >= 0 {
				break
			}
			continue
		}
		if off >= r.StartByte {
			found = i
		}
	}
	return found, found >= 0
}

// CaretPoint returns the layout-space x and line top of a caret before byte
// off of line. A caret on a glyph sits at its left edge; otherwise it follows
// the last glyph of the run holding the position.
func (l Layout) CaretPoint(line, off int) (x, top float32, ok bool) {
	if g, found := l.GlyphAt(line, off); found {
		top = g.Position.Y
		if g.Run >= 0 && g.Run < len(l.Runs) {
			top = l.Runs[g.Run].Top
		}
		return g.Position.X, top, true
	}
	ri, found := l.RunAt(line, off)
	if !found {
		return 0, 0, false
	}
	run := l.Runs[ri]
	x = run.Left
	for _, g := range l.RunGlyphs(ri) {
		if g.Line == line && g.Byte < off {
			x = max(x, g.Position.X+g.Size.X)
		}
	}
	return x, run.Top, true
}
