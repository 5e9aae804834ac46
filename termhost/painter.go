package termhost

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/quill/render"
)

// Painter rasterizes primitives onto a grid of terminal cells.
type Painter struct {
	Atlas *CellAtlas
	// Base styles every cell before primitive colors are applied.
	Base lipgloss.Style
}

type paintCell struct {
	text string
	cont bool // covered by the wide glyph to its left
	fg   *render.Color
	bg   *render.Color
}

type grid struct {
	w, h  int
	cells []paintCell
}

func newGrid(w, h int) *grid {
	return &grid{w: max(w, 0), h: max(h, 0), cells: make([]paintCell, max(w, 0)*max(h, 0))}
}

func (g *grid) at(x, y int) *paintCell {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return nil
	}
	return &g.cells[y*g.w+x]
}

// Paint draws prims in order onto a width×height grid and returns it as
// newline-separated rows.
func (p Painter) Paint(width, height int, prims []render.Primitive) string {
	g := newGrid(width, height)
	for _, prim := range prims {
		switch prim.Kind {
		case render.PrimitiveSelection:
			p.fill(g, prim, true)
		case render.PrimitiveGlyph:
			p.glyph(g, prim)
		case render.PrimitiveCaret:
			p.fill(g, prim, false)
		}
	}
	return p.render(g)
}

// span converts [lo, hi) in layout units to whole cells. A cell is covered
// when the interval reaches past its midpoint; a non-empty interval always
// covers at least one cell.
func span(lo, hi float32) (int, int) {
	start := int(math.Floor(float64(lo) + 0.5))
	end := int(math.Ceil(float64(hi) - 0.5))
	if hi > lo && end <= start {
		end = start + 1
	}
	return start, end
}

// clipSpan intersects a cell span with the primitive's clip rectangle.
func clipSpan(x0, x1, y0, y1 int, clip render.Rect) (int, int, int, int) {
	cx0, cx1 := span(clip.Min.X, clip.Max.X)
	cy0, cy1 := span(clip.Min.Y, clip.Max.Y)
	return max(x0, cx0), min(x1, cx1), max(y0, cy0), min(y1, cy1)
}

// fill paints a rectangle's background. Selection rects carry one unit of
// horizontal padding for pixel hosts; on a cell grid it would highlight a
// whole extra cell on each side, so it is removed here.
func (p Painter) fill(g *grid, prim render.Primitive, padded bool) {
	r := prim.Rect
	if padded {
		r.Min.X++
		r.Max.X--
	}
	x0, x1 := span(r.Min.X, r.Max.X)
	y0, y1 := span(r.Min.Y, r.Max.Y)
	x0, x1, y0, y1 = clipSpan(x0, x1, y0, y1, prim.Clip)

	color := prim.Color
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := g.at(x, y)
			if c == nil {
				continue
			}
			c.bg = &color
		}
	}
}

func (p Painter) glyph(g *grid, prim render.Primitive) {
	text := " "
	if p.Atlas != nil {
		if s, ok := p.Atlas.Cluster(prim.Atlas); ok {
			text = s
		}
	}
	x0, x1 := span(prim.Rect.Min.X, prim.Rect.Max.X)
	y0, _ := span(prim.Rect.Min.Y, prim.Rect.Max.Y)
	cx0, cx1, cy0, cy1 := clipSpan(x0, x1, y0, y0+1, prim.Clip)
	if cy0 >= cy1 || cx0 != x0 || cx1 != x1 {
		// Partially clipped glyphs are dropped rather than cut in half.
		return
	}

	w := x1 - x0
	if text == "\t" || runewidth.StringWidth(text) != w {
		text = padCluster(text, w)
	}

	color := prim.Color
	for x := x0; x < x1; x++ {
		c := g.at(x, y0)
		if c == nil {
			continue
		}
		c.fg = &color
		if x == x0 {
			c.text, c.cont = text, false
		} else {
			c.text, c.cont = "", true
		}
	}
}

// padCluster fits a cluster to w cells: tabs become spaces, narrow clusters
// are padded on the right.
func padCluster(text string, w int) string {
	if text == "\t" {
		return strings.Repeat(" ", w)
	}
	if d := w - runewidth.StringWidth(text); d > 0 {
		return text + strings.Repeat(" ", d)
	}
	return text
}

func (p Painter) render(g *grid) string {
	rows := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		var sb strings.Builder
		var run strings.Builder
		var runStyle *lipgloss.Style
		var runKey string

		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(runStyle.Render(run.String()))
			run.Reset()
		}

		for x := 0; x < g.w; x++ {
			c := g.cells[y*g.w+x]
			if c.cont {
				continue
			}
			st, key := p.cellStyle(c)
			if runStyle == nil || key != runKey {
				flush()
				runStyle, runKey = &st, key
			}
			if c.text == "" {
				run.WriteByte(' ')
			} else {
				run.WriteString(c.text)
			}
		}
		flush()
		rows[y] = sb.String()
	}
	return strings.Join(rows, "\n")
}

func (p Painter) cellStyle(c paintCell) (lipgloss.Style, string) {
	st := p.Base
	key := ""
	if c.fg != nil && !c.fg.IsFullyTransparent() {
		st = st.Foreground(lipgloss.Color(c.fg.Hex()))
		key += "f" + c.fg.Hex()
	}
	if c.bg != nil && !c.bg.IsFullyTransparent() {
		st = st.Background(lipgloss.Color(c.bg.Hex()))
		key += "b" + c.bg.Hex()
	}
	return st, key
}
