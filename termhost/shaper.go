package termhost

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/iw2rmb/quill/field"
	"github.com/iw2rmb/quill/internal/grapheme"
	"github.com/iw2rmb/quill/mode"
	"github.com/iw2rmb/quill/render"
)

const defaultTabWidth = 4

// CellShaper lays text out on a monospace cell grid: one layout unit is one
// terminal cell and every line is one unit tall. Font and Scale in the
// request are ignored.
type CellShaper struct {
	// TabWidth is the distance between tab stops. Zero means 4.
	TabWidth int

	atlas *CellAtlas
}

func NewCellShaper() *CellShaper {
	return &CellShaper{atlas: NewCellAtlas()}
}

func (s *CellShaper) Atlas() render.Atlas { return s.atlas }

// CellAtlas returns the concrete atlas, which the painter needs to turn
// references back into text.
func (s *CellShaper) CellAtlas() *CellAtlas { return s.atlas }

type cell struct {
	off     int
	text    string
	width   int
	space   bool
	canWrap bool // a line-break opportunity precedes this cell
}

func (s *CellShaper) Shape(req field.ShapeRequest) render.Layout {
	if s.atlas == nil {
		s.atlas = NewCellAtlas()
	}
	width := int(req.Width)
	l := render.Layout{LineHeight: 1}

	for li, line := range strings.Split(req.Text, "\n") {
		cells := s.cells(line)
		for _, span := range wrapCells(cells, req.Wrap, width) {
			s.appendRun(&l, li, line, cells[span[0]:span[1]], span, len(cells), req.Alignment, width)
		}
	}
	l.Size.Y = float32(len(l.Runs))
	return l
}

// cells splits line into grapheme clusters with cell widths and line-break
// opportunities.
func (s *CellShaper) cells(line string) []cell {
	breaks := lineBreaks(line)
	tab := s.TabWidth
	if tab <= 0 {
		tab = defaultTabWidth
	}

	var out []cell
	col := 0
	off := 0
	state := -1
	rest := line
	for len(rest) > 0 {
		var c string
		c, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := cellWidth(c, col, tab)
		out = append(out, cell{
			off:     off,
			text:    c,
			width:   w,
			space:   grapheme.IsSpace(c),
			canWrap: breaks[off],
		})
		col += w
		off += len(c)
	}
	return out
}

func cellWidth(cluster string, col, tab int) int {
	if cluster == "\t" {
		return tab - col%tab
	}
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		w = uniseg.StringWidth(cluster)
	}
	return max(w, 1)
}

// lineBreaks returns the byte offsets where uniseg allows a line break.
func lineBreaks(line string) map[int]bool {
	out := make(map[int]bool)
	off := 0
	state := -1
	rest := line
	for len(rest) > 0 {
		var seg string
		seg, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		off += len(seg)
		if len(rest) > 0 {
			out[off] = true
		}
	}
	return out
}

// wrapCells splits cells into [start, end) runs no wider than width.
// Whitespace may hang past the edge. WrapWord never splits a word and lets it
// overflow; WrapWordOrGlyph splits a word only when it alone exceeds width.
func wrapCells(cells []cell, wrap mode.WrapPolicy, width int) [][2]int {
	if len(cells) == 0 || width <= 0 || wrap == mode.WrapNone {
		return [][2]int{{0, len(cells)}}
	}

	var runs [][2]int
	for start := 0; start < len(cells); {
		used := 0
		i := start
		lastBreak := -1
		for i < len(cells) {
			c := cells[i]
			if i > start && c.canWrap {
				lastBreak = i
			}
			if used > 0 && used+c.width > width && !c.space {
				break
			}
			used += c.width
			i++
		}

		if i < len(cells) && wrap != mode.WrapGlyph && !cells[i].canWrap {
			switch {
			case lastBreak > start:
				i = lastBreak
			case wrap == mode.WrapWord:
				for i < len(cells) && !cells[i].canWrap {
					i++
				}
			}
		}
		if i <= start {
			i = start + 1
		}
		runs = append(runs, [2]int{start, i})
		start = i
	}
	return runs
}

func (s *CellShaper) appendRun(l *render.Layout, li int, line string, cells []cell, span [2]int, total int, align field.Alignment, width int) {
	ri := len(l.Runs)
	top := float32(ri)

	w := 0
	for _, c := range cells {
		w += c.width
	}
	left := 0
	if width > w {
		switch align {
		case field.AlignCenter:
			left = (width - w) / 2
		case field.AlignEnd:
			left = width - w
		}
	}

	startByte, endByte := 0, len(line)
	if len(cells) > 0 {
		startByte = cells[0].off
	}
	if span[1] < total {
		endByte = cells[len(cells)-1].off + len(cells[len(cells)-1].text)
	}

	x := left
	for _, c := range cells {
		l.Glyphs = append(l.Glyphs, render.Glyph{
			Position: render.Vec2{X: float32(x), Y: top},
			Size:     render.Vec2{X: float32(c.width), Y: 1},
			Atlas:    s.atlas.Intern(c.text, c.width),
			Line:     li,
			Byte:     c.off,
			Length:   len(c.text),
			Run:      ri,
		})
		x += c.width
	}
	l.Runs = append(l.Runs, render.LineRun{
		Line:      li,
		Top:       top,
		Left:      float32(left),
		Width:     float32(w),
		StartByte: startByte,
		EndByte:   endByte,
	})
	l.Size.X = max(l.Size.X, float32(left+w))
}
