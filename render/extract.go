package render

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/quill/buffer"
)

// Source is the buffer state extraction reads. *buffer.Buffer implements it.
type Source interface {
	Selection() (buffer.Range, bool)
	Cursor() buffer.Pos
	Overwrite() bool
	Scroll() buffer.Scroll
	CaretVisible(interval time.Duration) bool
	IsEmpty() bool
}

// Input is everything one field contributes to a frame.
type Input struct {
	Layout Layout
	// Prompt is the shaped prompt; nil when the field has none.
	Prompt *Layout
	Buffer Source
	Atlas  Atlas

	Style       Style
	TextColor   Color
	PromptColor Color

	Active  bool
	Enabled bool
	Visible bool

	// Bounds is the field's screen rectangle. Glyph positions are relative to
	// Bounds.Min.
	Bounds Rect
	// Clip is the ancestor clip rectangle, if any.
	Clip *Rect
	// Scale converts logical units (caret width) to layout units. Zero means 1.
	Scale float32
}

// Extract turns a field's layout and buffer state into paint commands:
// selection rectangles first, then glyphs (buffer or prompt), then the caret.
// It does not modify the buffer.
func Extract(in Input) []Primitive {
	if !in.Visible || in.Buffer == nil || in.Bounds.IsEmpty() {
		return nil
	}
	clip := in.Bounds
	if in.Clip != nil {
		clip = clip.Intersect(*in.Clip)
	}
	if clip.IsEmpty() {
		return nil
	}

	scale := in.Scale
	if scale <= 0 {
		scale = 1
	}
	scroll := in.Buffer.Scroll()
	caretOn := in.Active && in.Enabled &&
		!in.Style.CaretColor.IsFullyTransparent() &&
		in.Buffer.CaretVisible(in.Style.BlinkInterval)
	e := extractor{
		in:      in,
		clip:    clip,
		origin:  in.Bounds.Min.Sub(Vec2{X: scroll.X, Y: scroll.Y}),
		scale:   scale,
		caretOn: caretOn,
	}

	if in.Prompt != nil && in.Buffer.IsEmpty() {
		e.promptGlyphs(*in.Prompt)
	} else {
		sel, hasSel := in.Buffer.Selection()
		if hasSel {
			e.selection(sel)
		}
		e.glyphs(sel, hasSel)
	}
	if e.caretOn {
		e.caret()
	}
	return e.out
}

type extractor struct {
	in      Input
	clip    Rect
	origin  Vec2
	scale   float32
	caretOn bool

	out []Primitive
}

func (e *extractor) emit(p Primitive) {
	if !p.Rect.Overlaps(e.clip) {
		return
	}
	p.Clip = e.clip
	e.out = append(e.out, p)
}

// selection emits one rectangle per visual run touched by sel. Every rect is
// widened by one unit on each side, and rects after the first grow by one
// unit vertically so a multi-line highlight has no seams.
func (e *extractor) selection(sel buffer.Range) {
	n := 0
	for i, run := range e.in.Layout.Runs {
		r, ok := e.runSelection(i, run, sel)
		if !ok {
			continue
		}
		r.Min.X--
		r.Max.X++
		if n > 0 {
			r.Min.Y -= 0.5
			r.Max.Y += 0.5
		}
		n++
		e.emit(Primitive{
			Kind:  PrimitiveSelection,
			Rect:  r.Translate(e.origin),
			Color: e.in.Style.SelectionColor,
		})
	}
}

func (e *extractor) runSelection(i int, run LineRun, sel buffer.Range) (Rect, bool) {
	lh := e.in.Layout.LineHeight
	var minX, maxX float32
	found := false
	for _, g := range e.in.Layout.RunGlyphs(i) {
		if !sel.Contains(buffer.Pos{Line: g.Line, Byte: g.Byte}) {
			continue
		}
		left, right := g.Position.X, g.Position.X+g.Size.X
		if !found {
			minX, maxX, found = left, right, true
			continue
		}
		minX = min(minX, left)
		maxX = max(maxX, right)
	}
	if found {
		return Rect{Min: Vec2{X: minX, Y: run.Top}, Max: Vec2{X: maxX, Y: run.Top + lh}}, true
	}

	// An empty line inside the selection still shows a small block.
	if run.StartByte == run.EndByte && sel.Contains(buffer.Pos{Line: run.Line, Byte: run.StartByte}) {
		return RectAt(Vec2{X: run.Left, Y: run.Top}, Vec2{X: lh / 2, Y: lh}), true
	}
	return Rect{}, false
}

func (e *extractor) glyphs(sel buffer.Range, hasSel bool) {
	st := e.in.Style
	cur := e.in.Buffer.Cursor()
	overwrite := e.caretOn && e.in.Buffer.Overwrite()

	selColor := e.in.TextColor
	if st.SelectedTextColor != nil {
		selColor = *st.SelectedTextColor
	}

	for _, g := range e.in.Layout.Glyphs {
		color := e.in.TextColor
		switch {
		case overwrite && g.Line == cur.Line && g.Byte == cur.Byte:
			color = st.OverwriteTextColor
		case hasSel && sel.Contains(buffer.Pos{Line: g.Line, Byte: g.Byte}):
			color = selColor
		}
		e.glyph(g, e.origin, color, false)
	}
}

// promptGlyphs draws the prompt unscrolled.
func (e *extractor) promptGlyphs(l Layout) {
	for _, g := range l.Glyphs {
		e.glyph(g, e.in.Bounds.Min, e.in.PromptColor, true)
	}
}

func (e *extractor) glyph(g Glyph, origin Vec2, color Color, prompt bool) {
	var (
		src Rect
		ok  bool
	)
	if e.in.Atlas != nil {
		src, ok = e.in.Atlas.Lookup(g.Atlas)
	}
	if !ok {
		missingGlyph(g, prompt)
		return
	}
	e.emit(Primitive{
		Kind:   PrimitiveGlyph,
		Rect:   RectAt(origin.Add(g.Position), g.Size),
		Color:  color,
		Atlas:  g.Atlas,
		Source: src,
		Line:   g.Line,
		Byte:   g.Byte,
		Prompt: prompt,
	})
}

// caret emits a line caret before the cursor's cluster, or in overwrite mode
// a block as wide as that cluster. Either is centered on the line box.
func (e *extractor) caret() {
	l := e.in.Layout
	st := e.in.Style
	cur := e.in.Buffer.Cursor()
	lh := l.LineHeight

	x, top, _ := l.CaretPoint(cur.Line, cur.Byte)
	under, hasUnder := l.GlyphAt(cur.Line, cur.Byte)

	block := e.in.Buffer.Overwrite() && hasUnder
	width := st.CaretWidth * e.scale
	if block {
		width = under.Size.X
	}
	height := lh * st.CaretHeight
	y := top + (lh-height)/2

	e.emit(Primitive{
		Kind:   PrimitiveCaret,
		Rect:   RectAt(e.origin.Add(Vec2{X: x, Y: y}), Vec2{X: width, Y: height}),
		Color:  st.CaretColor,
		Radius: st.CaretRadius,
		Block:  block,
		Line:   cur.Line,
		Byte:   cur.Byte,
	})
}

// missingGlyph reports a layout that refers to an atlas entry the shaper
// never populated.
func missingGlyph(g Glyph, prompt bool) {
	log.Error().
		Uint32("atlas", uint32(g.Atlas)).
		Int("line", g.Line).
		Int("byte", g.Byte).
		Bool("prompt", prompt).
		Msg("glyph missing from atlas")
	if strictAtlas {
		panic(fmt.Sprintf("render: glyph %d at %d:%d missing from atlas", g.Atlas, g.Line, g.Byte))
	}
}
