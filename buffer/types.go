package buffer

import "github.com/iw2rmb/quill/internal/grapheme"

// Pos points into the logical document.
type Pos struct {
	Line int
	Byte int
}

// Range is a half-open span in document coordinates: [Start, End).
type Range struct {
	Start Pos
	End   Pos
}

// Scroll is the field's scroll offset in layout units.
type Scroll struct {
	X float32
	Y float32
}

func ComparePos(a, b Pos) int {
	if a.Line < b.Line {
		return -1
	}
	if a.Line > b.Line {
		return 1
	}
	if a.Byte < b.Byte {
		return -1
	}
	if a.Byte > b.Byte {
		return 1
	}
	return 0
}

// NormalizeRange orders r so that Start <= End.
func NormalizeRange(r Range) Range {
	if ComparePos(r.Start, r.End) <= 0 {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether p lies in the normalized [Start, End).
func (r Range) Contains(p Pos) bool {
	r = NormalizeRange(r)
	return ComparePos(r.Start, p) <= 0 && ComparePos(p, r.End) < 0
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampPos clamps p into lines and snaps it back to a rune boundary.
func ClampPos(p Pos, lines []string) Pos {
	if len(lines) == 0 {
		return Pos{}
	}
	line := clampInt(p.Line, 0, len(lines)-1)
	text := lines[line]
	off := grapheme.Floor(text, clampInt(p.Byte, 0, len(text)))
	return Pos{Line: line, Byte: off}
}

func ClampRange(r Range, lines []string) Range {
	return Range{
		Start: ClampPos(r.Start, lines),
		End:   ClampPos(r.End, lines),
	}
}
