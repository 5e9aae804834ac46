package field

import (
	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/focus"
	"github.com/iw2rmb/quill/render"
)

// PointerKind identifies a pointer gesture.
type PointerKind uint8

const (
	PointerPress PointerKind = iota
	PointerDrag
	PointerRelease
)

// PointerEvent is a pointer gesture in screen coordinates.
type PointerEvent struct {
	Kind PointerKind
	Pos  render.Vec2
	// Extend asks a press to extend the selection (shift-click).
	Extend bool
}

// Subscription routes one gesture kind on one field to a handler.
type Subscription struct {
	Field   focus.ID
	Kind    PointerKind
	Handler func(f *Field, ev PointerEvent)
}

// Subscriptions is the per-field pointer handler table. Host registers a
// press and a drag entry for every field it creates.
type Subscriptions struct {
	entries []Subscription
}

// Register adds a handler for kind on field id.
func (s *Subscriptions) Register(id focus.ID, kind PointerKind, fn func(*Field, PointerEvent)) {
	s.entries = append(s.entries, Subscription{Field: id, Kind: kind, Handler: fn})
}

// Unregister drops every entry for field id.
func (s *Subscriptions) Unregister(id focus.ID) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Field != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// For returns the entries registered for field id.
func (s *Subscriptions) For(id focus.ID) []Subscription {
	var out []Subscription
	for _, e := range s.entries {
		if e.Field == id {
			out = append(out, e)
		}
	}
	return out
}

func (s *Subscriptions) dispatch(f *Field, ev PointerEvent) bool {
	handled := false
	for _, e := range s.entries {
		if e.Field == f.id && e.Kind == ev.Kind {
			e.Handler(f, ev)
			handled = true
		}
	}
	return handled
}

// Pointer delivers a pointer event. A press outside every field deactivates
// the active field; drags and releases go to the field that took the press.
func (h *Host) Pointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerPress:
		f, ok := h.FieldAt(ev.Pos)
		if !ok {
			h.pressed = 0
			h.focus.Clear()
			return false
		}
		h.pressed = f.id
		return h.subs.dispatch(f, ev)
	case PointerDrag, PointerRelease:
		f, ok := h.byID[h.pressed]
		if !ok {
			return false
		}
		if ev.Kind == PointerRelease {
			h.pressed = 0
		}
		return h.subs.dispatch(f, ev)
	default:
		return false
	}
}

func (h *Host) onPress(f *Field, ev PointerEvent) {
	if !f.cfg.Enabled {
		return
	}
	if !h.focus.IsActive(f.id) {
		// A press on another field moves focus away from the current one.
		if id, ok := h.focus.Active(); ok && id != f.id {
			h.focus.Clear()
		}
		if !f.cfg.ActivateOnPointerDown {
			return
		}
		h.Activate(f.id)
	}

	p := f.HitTest(ev.Pos)
	if ev.Extend {
		anchor := f.buf.Cursor()
		if a, ok := f.buf.Anchor(); ok {
			anchor = a
		}
		f.dragAnchor = anchor
		f.Queue(Select(anchor, p))
		return
	}
	f.dragAnchor = p
	f.Queue(SetCursor(p))
}

func (h *Host) onDrag(f *Field, ev PointerEvent) {
	if !f.cfg.Enabled || !h.focus.IsActive(f.id) {
		return
	}
	f.Queue(Select(f.dragAnchor, f.HitTest(ev.Pos)))
}

// HitTest maps a screen point to the nearest cursor position using the last
// shaped layout. Points left of a glyph's midpoint land before it.
func (f *Field) HitTest(p render.Vec2) buffer.Pos {
	l := f.layout
	if len(l.Runs) == 0 {
		return buffer.Pos{}
	}
	s := f.buf.Scroll()
	local := p.Sub(f.bounds.Min).Add(render.Vec2{X: s.X, Y: s.Y})

	ri := 0
	for i, r := range l.Runs {
		if local.Y >= r.Top {
			ri = i
		}
	}
	run := l.Runs[ri]
	for _, g := range l.RunGlyphs(ri) {
		if local.X < g.Position.X+g.Size.X/2 {
			return buffer.Pos{Line: g.Line, Byte: g.Byte}
		}
	}
	return buffer.Pos{Line: run.Line, Byte: run.EndByte}
}
