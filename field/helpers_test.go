package field

import (
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/quill/render"
)

const cellW = 10

// gridShaper lays text out one rune per fixed-width cell without wrapping.
type gridShaper struct {
	calls int
}

func (s *gridShaper) Shape(req ShapeRequest) render.Layout {
	s.calls++
	lh := req.Font.EffectiveLineHeight()
	l := render.Layout{LineHeight: lh}
	for li, line := range strings.Split(req.Text, "\n") {
		top := float32(li) * lh
		var x float32
		for off, r := range line {
			l.Glyphs = append(l.Glyphs, render.Glyph{
				Position: render.Vec2{X: x, Y: top},
				Size:     render.Vec2{X: cellW, Y: lh},
				Atlas:    render.AtlasRef(r),
				Line:     li,
				Byte:     off,
				Length:   utf8.RuneLen(r),
				Run:      li,
			})
			x += cellW
		}
		l.Runs = append(l.Runs, render.LineRun{Line: li, Top: top, Width: x, EndByte: len(line)})
		l.Size.X = max(l.Size.X, x)
	}
	l.Size.Y = float32(len(l.Runs)) * lh
	return l
}

func (s *gridShaper) Atlas() render.Atlas { return anyAtlas{} }

type anyAtlas struct{}

func (anyAtlas) Lookup(ref render.AtlasRef) (render.Rect, bool) {
	return render.RectAt(render.Vec2{X: float32(ref)}, render.Vec2{X: cellW, Y: 20}), true
}

func newTestHost() (*Host, *gridShaper) {
	s := &gridShaper{}
	return NewHost(s), s
}

func place(f *Field, x, y, w, h float32) {
	f.SetBounds(render.RectAt(render.Vec2{X: x, Y: y}, render.Vec2{X: w, Y: h}), nil, true)
}

func textConfig(text string) Config {
	cfg := DefaultConfig()
	cfg.Text = text
	return cfg
}

func kinds(prims []render.Primitive, k render.PrimitiveKind) []render.Primitive {
	var out []render.Primitive
	for _, p := range prims {
		if p.Kind == k {
			out = append(out, p)
		}
	}
	return out
}
