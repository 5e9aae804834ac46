package buffer

import (
	"strings"

	"github.com/iw2rmb/quill/internal/grapheme"
)

// DeleteUnit selects how much text Delete removes when nothing is selected.
type DeleteUnit uint8

const (
	DeleteChar DeleteUnit = iota
	DeleteWord
	DeleteSelection
)

// Direction is the side of the cursor a deletion works on.
type Direction uint8

const (
	Backward Direction = iota
	Forward
)

// SetText replaces all content, clears the selection and puts the cursor at
// the end. It reports false when the validator rejects text.
func (b *Buffer) SetText(text string) bool {
	before := b.Snapshot()
	version := b.version
	if !b.accept(text) {
		return false
	}
	b.lines = splitLines(text)
	b.cursor = b.endPos()
	b.sel = selectionState{}
	if b.Snapshot() == before {
		b.blink.Reset()
		return true
	}
	b.commit(ChangeReplace, before, version)
	return true
}

// Clear empties the buffer.
func (b *Buffer) Clear() bool { return b.SetText("") }

// QueueText records a replace-all request applied by the next ApplyPending.
// A later request overrides an earlier one.
func (b *Buffer) QueueText(text string) {
	b.pending = &text
}

// HasPending reports whether a replace-all request is waiting.
func (b *Buffer) HasPending() bool { return b.pending != nil }

// ApplyPending applies and drops the queued replace-all request.
func (b *Buffer) ApplyPending() bool {
	if b.pending == nil {
		return false
	}
	text := *b.pending
	b.pending = nil
	return b.SetText(text)
}

// InsertText inserts s at the cursor, or replaces the active selection.
//
// In overwrite mode without a selection, the graphemes of s (up to its first
// line break) replace the same number of graphemes following the cursor on
// the current line.
func (b *Buffer) InsertText(s string) bool {
	if r, ok := b.Selection(); ok {
		return b.replace(ChangeInsert, r, s)
	}
	if s == "" {
		return false
	}

	r := Range{Start: b.cursor, End: b.cursor}
	if b.overwrite {
		first := s
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			first = s[:i]
		}
		line := b.lines[b.cursor.Line]
		r.End.Byte = grapheme.Advance(line, b.cursor.Byte, grapheme.Count(first))
	}
	return b.replace(ChangeInsert, r, s)
}

// Delete removes the selection if there is one, otherwise one character or
// one word in dir. Deleting past the start or end of the buffer is a no-op.
func (b *Buffer) Delete(unit DeleteUnit, dir Direction) bool {
	if r, ok := b.Selection(); ok {
		return b.replace(ChangeDelete, r, "")
	}
	if unit == DeleteSelection {
		return false
	}

	var target Pos
	switch {
	case unit == DeleteWord && dir == Backward:
		target = b.moveWord(b.cursor, DirLeft)
	case unit == DeleteWord:
		target = b.moveWord(b.cursor, DirRight)
	case dir == Backward:
		target = b.moveChar(b.cursor, DirLeft)
	default:
		target = b.moveChar(b.cursor, DirRight)
	}
	if target == b.cursor {
		return false
	}
	return b.replace(ChangeDelete, Range{Start: b.cursor, End: target}, "")
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() bool { return b.Delete(DeleteChar, Backward) }

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() bool { return b.Delete(DeleteChar, Forward) }

// replace swaps the text in r for text if the validator accepts the result.
// The cursor lands after the inserted text and the selection is cleared,
// even when the resulting text equals the old one.
func (b *Buffer) replace(kind ChangeKind, r Range, text string) bool {
	r = NormalizeRange(ClampRange(r, b.lines))
	if r.IsEmpty() && text == "" {
		return false
	}
	before := b.Snapshot()
	version := b.version

	start, end := b.offset(r.Start), b.offset(r.End)
	candidate := before.Text[:start] + text + before.Text[end:]
	if !b.accept(candidate) {
		return false
	}

	b.lines = splitLines(candidate)
	b.cursor = b.posAt(start + len(text))
	b.sel = selectionState{}
	b.commit(kind, before, version)
	return true
}
