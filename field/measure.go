package field

import "github.com/iw2rmb/quill/render"

// Constraints are the sizing inputs a layout pass offers a field. Zero means
// unset for every field.
type Constraints struct {
	// Known is a width the layout pass has already fixed.
	Known float32
	// Width, MinWidth and MaxWidth are the field's own size styling.
	Width    float32
	MinWidth float32
	MaxWidth float32
	// Available is the parent's available width.
	Available float32
}

// Measure returns the field's desired size. Width resolves to the first of
// Known, Width, MinWidth and Available that is set, clamped by MinWidth and
// MaxWidth. Height is lines × line height × scale.
func (f *Field) Measure(c Constraints, scale float32) render.Vec2 {
	if scale <= 0 {
		scale = 1
	}
	var w float32
	for _, v := range []float32{c.Known, c.Width, c.MinWidth, c.Available} {
		if v > 0 {
			w = v
			break
		}
	}
	if c.MinWidth > 0 {
		w = max(w, c.MinWidth)
	}
	if c.MaxWidth > 0 {
		w = min(w, c.MaxWidth)
	}
	h := f.cfg.lines() * f.cfg.Font.EffectiveLineHeight() * scale
	return render.Vec2{X: w, Y: h}
}
