package buffer

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/quill/caret"
)

// Validator decides whether the full text produced by an edit is acceptable.
// mode.Validator satisfies it.
type Validator interface {
	Check(candidate string) error
}

type Options struct {
	// HistoryLimit caps the number of Change records kept.
	// Zero selects the default (1000); negative disables history.
	HistoryLimit int
	Validator    Validator
	Prompt       string
}

const defaultHistoryLimit = 1000

type selectionState struct {
	active bool
	anchor Pos
}

// Buffer is the editable state of one field: text, cursor, selection anchor,
// scroll offset, overwrite flag, dirty flag and edit history.
type Buffer struct {
	lines   []string
	version uint64

	cursor Pos
	sel    selectionState

	scroll    Scroll
	overwrite bool
	dirty     bool
	pending   *string
	prompt    string
	blink     caret.Blink

	opt  Options
	hist History
}

// New creates a buffer holding text with the cursor at its end. The initial
// text is not recorded in history and is not validated.
func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = defaultHistoryLimit
	}
	b := &Buffer{
		lines:  splitLines(text),
		dirty:  true,
		prompt: opt.Prompt,
		opt:    opt,
		hist:   History{limit: opt.HistoryLimit},
	}
	b.cursor = b.endPos()
	return b
}

// Text joins the logical lines with '\n'.
func (b *Buffer) Text() string { return strings.Join(b.lines, "\n") }

// Lines returns a copy of the logical lines.
func (b *Buffer) Lines() []string { return append([]string(nil), b.lines...) }

func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of line i, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// CharCount returns the number of characters (runes, line breaks included).
func (b *Buffer) CharCount() int {
	n := len(b.lines) - 1
	for _, l := range b.lines {
		n += utf8.RuneCountInString(l)
	}
	return n
}

// IsEmpty reports whether the buffer has no characters or only whitespace.
// This is the condition for showing the prompt.
func (b *Buffer) IsEmpty() bool {
	for _, l := range b.lines {
		if strings.IndexFunc(l, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0 {
			return false
		}
	}
	return true
}

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() Pos { return b.cursor }

// SetCursor moves the cursor to p (clamped) and collapses any selection.
func (b *Buffer) SetCursor(p Pos) {
	b.blink.Reset()
	next := ClampPos(p, b.lines)
	if next == b.cursor && !b.sel.active {
		return
	}
	b.cursor = next
	b.sel = selectionState{}
	b.version++
}

// Selection returns the normalized selection, if it is non-empty.
func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.cursor})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// Anchor returns the fixed end of the selection, if one is set. The anchor
// may equal the cursor while a selection is being extended.
func (b *Buffer) Anchor() (Pos, bool) {
	return b.sel.anchor, b.sel.active
}

// SetSelection places the anchor and the cursor. Equal positions leave an
// anchor without a visible selection.
func (b *Buffer) SetSelection(anchor, cursor Pos) {
	b.blink.Reset()
	next := selectionState{active: true, anchor: ClampPos(anchor, b.lines)}
	cur := ClampPos(cursor, b.lines)
	if next == b.sel && cur == b.cursor {
		return
	}
	b.sel = next
	b.cursor = cur
	b.version++
}

// SelectAll selects the whole document with the cursor at its end.
func (b *Buffer) SelectAll() {
	b.SetSelection(Pos{}, b.endPos())
}

func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	b.sel = selectionState{}
	b.version++
}

// SelectedText returns the text covered by the selection.
func (b *Buffer) SelectedText() string {
	r, ok := b.Selection()
	if !ok {
		return ""
	}
	text := b.Text()
	return text[b.offset(r.Start):b.offset(r.End)]
}

func (b *Buffer) Overwrite() bool { return b.overwrite }

// SetOverwrite toggles whether inserts replace the following characters.
func (b *Buffer) SetOverwrite(on bool) {
	if b.overwrite == on {
		return
	}
	b.overwrite = on
	b.version++
}

// Dirty reports whether the text changed since the last MarkClean, i.e.
// whether the shaped layout is stale.
func (b *Buffer) Dirty() bool { return b.dirty }
func (b *Buffer) MarkClean()  { b.dirty = false }
func (b *Buffer) MarkDirty()  { b.dirty = true }

func (b *Buffer) Scroll() Scroll { return b.scroll }

func (b *Buffer) SetScroll(s Scroll) {
	if s.X < 0 {
		s.X = 0
	}
	if s.Y < 0 {
		s.Y = 0
	}
	b.scroll = s
}

func (b *Buffer) Prompt() string { return b.prompt }

func (b *Buffer) SetPrompt(text string) { b.prompt = text }

// AdvanceBlink adds one frame of elapsed time to the caret blink timer.
func (b *Buffer) AdvanceBlink(dt time.Duration) { b.blink.Advance(dt) }

// ResetBlink restarts the caret's visible phase, e.g. on activation.
func (b *Buffer) ResetBlink() { b.blink.Reset() }

// Blink returns the caret blink timer.
func (b *Buffer) Blink() caret.Blink { return b.blink }

// CaretVisible reports whether the blink timer is in its on phase.
func (b *Buffer) CaretVisible(interval time.Duration) bool {
	return b.blink.Visible(interval)
}

// History exposes the change log for inspection.
func (b *Buffer) History() *History { return &b.hist }

func (b *Buffer) accept(candidate string) bool {
	if b.opt.Validator == nil {
		return true
	}
	if err := b.opt.Validator.Check(candidate); err != nil {
		log.Debug().Err(err).Int("chars", utf8.RuneCountInString(candidate)).Msg("edit rejected")
		return false
	}
	return true
}

// touch records a text mutation.
func (b *Buffer) touch() {
	b.version++
	b.dirty = true
	b.blink.Reset()
}

func (b *Buffer) endPos() Pos {
	last := len(b.lines) - 1
	return Pos{Line: last, Byte: len(b.lines[last])}
}

// offset converts p to a byte offset in Text().
func (b *Buffer) offset(p Pos) int {
	off := 0
	for i := 0; i < p.Line && i < len(b.lines); i++ {
		off += len(b.lines[i]) + 1
	}
	return off + p.Byte
}

// posAt converts a byte offset in Text() to a Pos.
func (b *Buffer) posAt(off int) Pos {
	for i, l := range b.lines {
		if off <= len(l) {
			return Pos{Line: i, Byte: off}
		}
		off -= len(l) + 1
	}
	return b.endPos()
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
