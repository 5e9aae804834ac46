package field

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/focus"
	"github.com/iw2rmb/quill/mode"
	"github.com/iw2rmb/quill/render"
)

// Field is one editable text input: a buffer, its queued intents, the last
// shaped layout and the geometry the host assigned to it.
type Field struct {
	id  focus.ID
	cfg Config
	buf *buffer.Buffer

	queue []Intent

	layout    render.Layout
	key       layoutKey
	shaped    bool
	prompt    *render.Layout
	promptKey layoutKey
	promptFor string

	bounds  render.Rect
	clip    *render.Rect
	visible bool

	contents string
	scale    float32
	// dragAnchor is where the current pointer drag started.
	dragAnchor buffer.Pos
}

func newField(id focus.ID, cfg Config) *Field {
	text := flatten(cfg.Mode, cfg.Text)
	f := &Field{
		id:  id,
		cfg: cfg,
		buf: buffer.New(text, buffer.Options{
			HistoryLimit: cfg.HistoryLimit,
			Validator:    cfg.Validator(),
		}),
		visible:  true,
		contents: text,
	}
	if cfg.Prompt != nil {
		f.buf.SetPrompt(cfg.Prompt.Text)
	}
	return f
}

func (f *Field) ID() focus.ID           { return f.id }
func (f *Field) Config() Config         { return f.cfg }
func (f *Field) Buffer() *buffer.Buffer { return f.buf }

// Text returns the live buffer text.
func (f *Field) Text() string { return f.buf.Text() }

// Contents returns the text as of the end of the last frame.
func (f *Field) Contents() string { return f.contents }

// SetText queues a replace-all request applied at the start of the next frame.
func (f *Field) SetText(text string) { f.buf.QueueText(flatten(f.cfg.Mode, text)) }

// Clear queues an empty replace-all request.
func (f *Field) Clear() { f.buf.QueueText("") }

// Layout returns the layout shaped during the last frame.
func (f *Field) Layout() render.Layout { return f.layout }

func (f *Field) Bounds() render.Rect { return f.bounds }

// SetBounds places the field on screen. clip is the ancestor clip rectangle,
// nil when there is none. An invisible field produces no primitives.
func (f *Field) SetBounds(bounds render.Rect, clip *render.Rect, visible bool) {
	f.bounds = bounds
	f.clip = clip
	f.visible = visible
}

// SetEnabled toggles whether the field accepts edits and activation.
func (f *Field) SetEnabled(on bool) { f.cfg.Enabled = on }

// Queue appends intents to be applied during the next frame.
func (f *Field) Queue(intents ...Intent) {
	f.queue = append(f.queue, intents...)
}

// applyIntents drains the queue in arrival order and returns any submissions.
func (f *Field) applyIntents(h *Host) []SubmitEvent {
	var submits []SubmitEvent
	queue := f.queue
	f.queue = nil
	for _, in := range queue {
		if !f.cfg.Enabled && in.Kind != IntentSetText && in.Kind != IntentScroll {
			log.Debug().Uint64("field", uint64(f.id)).Stringer("intent", in.Kind).Msg("intent dropped: field disabled")
			continue
		}
		if in.Kind == IntentSubmit {
			submits = append(submits, f.submit(h))
			continue
		}
		f.apply(in)
	}
	return submits
}

func (f *Field) apply(in Intent) {
	b := f.buf
	switch in.Kind {
	case IntentInsert:
		if p, ok := in.Payload.(InsertPayload); ok {
			b.InsertText(flatten(f.cfg.Mode, p.Text))
		}
	case IntentDelete:
		if p, ok := in.Payload.(DeletePayload); ok {
			b.Delete(p.Unit, p.Dir)
		}
	case IntentMove:
		if p, ok := in.Payload.(MovePayload); ok {
			b.Move(p.Move)
		}
	case IntentSelect:
		if p, ok := in.Payload.(SelectPayload); ok {
			b.SetSelection(p.Anchor, p.Cursor)
		}
	case IntentSelectAll:
		b.SelectAll()
	case IntentSetCursor:
		if p, ok := in.Payload.(SetCursorPayload); ok {
			b.SetCursor(p.Pos)
		}
	case IntentToggleOverwrite:
		if f.cfg.AllowOverwrite {
			b.SetOverwrite(!b.Overwrite())
		}
	case IntentScroll:
		if p, ok := in.Payload.(ScrollPayload); ok {
			s := b.Scroll()
			b.SetScroll(f.clampScroll(buffer.Scroll{X: s.X + p.Delta.X, Y: s.Y + p.Delta.Y}))
		}
	case IntentUndo:
		b.Undo()
	case IntentRedo:
		b.Redo()
	case IntentSetText:
		if p, ok := in.Payload.(SetTextPayload); ok {
			b.SetText(flatten(f.cfg.Mode, p.Text))
		}
	}
}

// flatten keeps single-line fields on one line: line breaks become spaces.
func flatten(m mode.InputMode, s string) string {
	if !m.IsSingleLine() {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}

func (f *Field) submit(h *Host) SubmitEvent {
	ev := SubmitEvent{Field: f.id, Text: f.buf.Text()}
	log.Debug().Uint64("field", uint64(f.id)).Int("chars", f.buf.CharCount()).Msg("field submitted")
	if f.cfg.ClearOnSubmit && !f.buf.Clear() {
		log.Warn().Uint64("field", uint64(f.id)).Msg("clear on submit rejected by validator")
	}
	if f.cfg.DeactivateOnSubmit {
		h.focus.Deactivate(f.id)
	}
	return ev
}

// reshape refreshes the layouts when the text is dirty or any shaping input
// changed, so extraction never reads a stale layout.
func (f *Field) reshape(s Shaper, scale float32) {
	f.scale = scale
	req := ShapeRequest{
		Text:      f.buf.Text(),
		Wrap:      f.cfg.Mode.Wrap(),
		Font:      f.cfg.Font,
		Width:     f.bounds.Width(),
		Alignment: f.cfg.Alignment,
		Scale:     scale,
	}
	if key := keyOf(req); !f.shaped || f.buf.Dirty() || key != f.key {
		f.layout = s.Shape(req)
		f.key = key
		f.shaped = true
		f.buf.MarkClean()
	}

	if f.cfg.Prompt == nil || f.buf.Prompt() == "" {
		f.prompt = nil
		return
	}
	req.Text = f.buf.Prompt()
	req.Font = f.cfg.promptFont()
	if key := keyOf(req); f.prompt == nil || key != f.promptKey || req.Text != f.promptFor {
		l := s.Shape(req)
		f.prompt = &l
		f.promptKey = key
		f.promptFor = req.Text
	}
}

// followCursor scrolls the minimum amount that brings the caret into view.
func (f *Field) followCursor() {
	l := f.layout
	cur := f.buf.Cursor()
	x, top, ok := l.CaretPoint(cur.Line, cur.Byte)
	if !ok {
		return
	}
	view := f.bounds.Size()
	s := f.buf.Scroll()
	cw := f.caretWidth()

	if x < s.X {
		s.X = x
	} else if x+cw > s.X+view.X {
		s.X = x + cw - view.X
	}
	if top < s.Y {
		s.Y = top
	} else if top+l.LineHeight > s.Y+view.Y {
		s.Y = top + l.LineHeight - view.Y
	}
	f.buf.SetScroll(f.clampScroll(s))
}

// clampScroll keeps the view within the content. A single-line field never
// scrolls vertically.
func (f *Field) clampScroll(s buffer.Scroll) buffer.Scroll {
	view := f.bounds.Size()
	size := f.layout.Size
	s.X = clampFloat(s.X, 0, max(0, size.X+f.caretWidth()-view.X))
	if f.cfg.Mode.IsSingleLine() {
		s.Y = 0
	} else {
		s.Y = clampFloat(s.Y, 0, max(0, size.Y-view.Y))
	}
	return s
}

// caretWidth is the room the caret needs past the last glyph.
func (f *Field) caretWidth() float32 {
	scale := f.scale
	if scale <= 0 {
		scale = 1
	}
	return f.cfg.Style.CaretWidth * scale
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (f *Field) refreshContents() {
	if text := f.buf.Text(); text != f.contents {
		f.contents = text
	}
}

func (f *Field) extract(h *Host) []render.Primitive {
	in := render.Input{
		Layout:      f.layout,
		Prompt:      f.prompt,
		Buffer:      f.buf,
		Atlas:       h.shaper.Atlas(),
		Style:       f.cfg.Style,
		TextColor:   f.cfg.TextColor,
		PromptColor: f.cfg.promptColor(),
		Active:      h.focus.IsActive(f.id),
		Enabled:     f.cfg.Enabled,
		Visible:     f.visible,
		Bounds:      f.bounds,
		Clip:        f.clip,
		Scale:       h.scale,
	}
	return render.Extract(in)
}
