package render

// Vec2 is a point or extent in layout units.
type Vec2 struct {
	X float32
	Y float32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Rect is an axis-aligned rectangle with Min inclusive and Max exclusive.
type Rect struct {
	Min Vec2
	Max Vec2
}

// RectAt builds a rectangle from its top-left corner and size.
func RectAt(pos, size Vec2) Rect {
	return Rect{Min: pos, Max: pos.Add(size)}
}

func (r Rect) Width() float32  { return r.Max.X - r.Min.X }
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }
func (r Rect) Size() Vec2      { return Vec2{X: r.Width(), Y: r.Height()} }

// IsEmpty reports whether r covers no area.
func (r Rect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Intersect returns the overlap of r and o; the result is empty when they are
// disjoint.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Min: Vec2{X: max(r.Min.X, o.Min.X), Y: max(r.Min.Y, o.Min.Y)},
		Max: Vec2{X: min(r.Max.X, o.Max.X), Y: min(r.Max.Y, o.Max.Y)},
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool { return !r.Intersect(o).IsEmpty() }
