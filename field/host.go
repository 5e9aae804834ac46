package field

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/quill/focus"
	"github.com/iw2rmb/quill/render"
)

// SubmitEvent is emitted when a field's text is submitted.
type SubmitEvent struct {
	Field focus.ID
	Text  string
}

// FieldFrame is one field's paint output for a frame.
type FieldFrame struct {
	Field      focus.ID
	Primitives []render.Primitive
}

// Frame is the result of Host.Frame.
type Frame struct {
	Fields  []FieldFrame
	Submits []SubmitEvent
}

// Primitives concatenates every field's primitives in field order.
func (fr Frame) Primitives() []render.Primitive {
	var out []render.Primitive
	for _, f := range fr.Fields {
		out = append(out, f.Primitives...)
	}
	return out
}

// Host owns a set of fields, the active-field slot and the pointer
// subscription table, and runs the per-frame pipeline over them.
//
// Host is not safe for concurrent use.
type Host struct {
	shaper Shaper
	focus  focus.Tracker
	subs   Subscriptions

	fields []*Field
	byID   map[focus.ID]*Field
	nextID focus.ID

	scale    float32
	pressed  focus.ID
	onSubmit []func(SubmitEvent)
}

// NewHost returns an empty host shaping text with s.
func NewHost(s Shaper) *Host {
	return &Host{
		shaper: s,
		byID:   make(map[focus.ID]*Field),
		scale:  1,
	}
}

// Add creates a field and registers its pointer subscriptions.
func (h *Host) Add(cfg Config) *Field {
	h.nextID++
	f := newField(h.nextID, cfg)
	h.fields = append(h.fields, f)
	h.byID[f.id] = f
	h.subs.Register(f.id, PointerPress, h.onPress)
	h.subs.Register(f.id, PointerDrag, h.onDrag)
	return f
}

// Remove drops a field, its subscriptions and, if it was active, the focus.
func (h *Host) Remove(id focus.ID) {
	f, ok := h.byID[id]
	if !ok {
		return
	}
	delete(h.byID, id)
	for i, x := range h.fields {
		if x == f {
			h.fields = append(h.fields[:i], h.fields[i+1:]...)
			break
		}
	}
	h.subs.Unregister(id)
	h.focus.Deactivate(id)
}

func (h *Host) Field(id focus.ID) (*Field, bool) {
	f, ok := h.byID[id]
	return f, ok
}

// Fields returns the fields in creation order.
func (h *Host) Fields() []*Field { return append([]*Field(nil), h.fields...) }

// Focus exposes the active-field slot, e.g. to observe changes.
func (h *Host) Focus() *focus.Tracker { return &h.focus }

// Subscriptions exposes the pointer subscription table.
func (h *Host) Subscriptions() *Subscriptions { return &h.subs }

// Active returns the active field.
func (h *Host) Active() (*Field, bool) {
	id, ok := h.focus.Active()
	if !ok {
		return nil, false
	}
	return h.Field(id)
}

// Activate makes id the active field, deactivating the previous one. Disabled
// and unknown fields cannot be activated.
func (h *Host) Activate(id focus.ID) bool {
	f, ok := h.byID[id]
	if !ok || !f.cfg.Enabled {
		return false
	}
	if prev, replaced := h.focus.Activate(id); replaced {
		log.Debug().Uint64("field", uint64(id)).Uint64("prev", uint64(prev)).Msg("field activated")
	}
	f.buf.ResetBlink()
	return true
}

// Deactivate clears the active slot if id holds it.
func (h *Host) Deactivate(id focus.ID) bool { return h.focus.Deactivate(id) }

// Send queues intents for field id.
func (h *Host) Send(id focus.ID, intents ...Intent) bool {
	f, ok := h.byID[id]
	if !ok {
		return false
	}
	f.Queue(intents...)
	return true
}

// SendActive queues intents for the active field, if any.
func (h *Host) SendActive(intents ...Intent) bool {
	id, ok := h.focus.Active()
	if !ok {
		return false
	}
	return h.Send(id, intents...)
}

// Submit requests a submission of field id during the next frame.
func (h *Host) Submit(id focus.ID) bool { return h.Send(id, Submit()) }

// OnSubmit registers fn to receive every submission after it is applied.
func (h *Host) OnSubmit(fn func(SubmitEvent)) {
	if fn != nil {
		h.onSubmit = append(h.onSubmit, fn)
	}
}

// SetScale sets the physical-per-logical scale factor.
func (h *Host) SetScale(s float32) {
	if s > 0 {
		h.scale = s
	}
}

// Frame runs one frame for every field: blink, pending set-text, queued
// intents in arrival order, reshape, scroll-to-cursor, contents mirror and
// extraction, in that order. Edits applied in this frame therefore leave the
// caret visible.
func (h *Host) Frame(dt time.Duration) Frame {
	var out Frame
	for _, f := range h.fields {
		if h.focus.IsActive(f.id) {
			f.buf.AdvanceBlink(dt)
		}

		before, wasShaped := f.buf.Version(), f.shaped
		f.buf.ApplyPending()
		out.Submits = append(out.Submits, f.applyIntents(h)...)

		f.reshape(h.shaper, h.scale)
		if !wasShaped || f.buf.Version() != before {
			f.followCursor()
		} else {
			f.buf.SetScroll(f.clampScroll(f.buf.Scroll()))
		}
		f.refreshContents()

		out.Fields = append(out.Fields, FieldFrame{Field: f.id, Primitives: f.extract(h)})
	}

	for _, ev := range out.Submits {
		for _, fn := range h.onSubmit {
			fn(ev)
		}
	}
	return out
}

// FieldAt returns the topmost visible field whose bounds contain p. Later
// fields are drawn over earlier ones.
func (h *Host) FieldAt(p render.Vec2) (*Field, bool) {
	var hit *Field
	for _, f := range h.fields {
		if f.visible && containsPoint(f.bounds, p) {
			hit = f
		}
	}
	return hit, hit != nil
}

func containsPoint(r render.Rect, p render.Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}
