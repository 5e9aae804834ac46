package buffer

// History is a log of Change records with a cursor separating applied entries
// from redoable ones.
type History struct {
	entries []Change
	applied int
	limit   int
}

// NewHistory returns an empty log keeping at most limit entries
// (limit <= 0: nothing is kept).
func NewHistory(limit int) *History { return &History{limit: limit} }

// Commit appends c after the applied entries and discards any redo history.
func (h *History) Commit(c Change) {
	if h.limit <= 0 {
		return
	}
	h.entries = append(h.entries[:h.applied], c)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.applied = len(h.entries)
}

// Undo steps the cursor back and returns the change to invert.
func (h *History) Undo() (Change, bool) {
	if h.applied == 0 {
		return Change{}, false
	}
	h.applied--
	return h.entries[h.applied], true
}

// Redo steps the cursor forward and returns the change to reapply.
func (h *History) Redo() (Change, bool) {
	if h.applied >= len(h.entries) {
		return Change{}, false
	}
	c := h.entries[h.applied]
	h.applied++
	return c, true
}

func (h *History) CanUndo() bool { return h.applied > 0 }
func (h *History) CanRedo() bool { return h.applied < len(h.entries) }

// Len returns the number of recorded entries, applied or not.
func (h *History) Len() int { return len(h.entries) }

// Applied returns the number of entries currently applied.
func (h *History) Applied() int { return h.applied }

// Clear drops every entry.
func (h *History) Clear() {
	h.entries = nil
	h.applied = 0
}

func (b *Buffer) CanUndo() bool { return b.hist.CanUndo() }
func (b *Buffer) CanRedo() bool { return b.hist.CanRedo() }

// Undo restores the state before the most recent applied change.
func (b *Buffer) Undo() bool {
	c, ok := b.hist.Undo()
	if !ok {
		return false
	}
	b.restore(c.Before)
	b.touch()
	return true
}

// Redo reapplies the next undone change.
func (b *Buffer) Redo() bool {
	c, ok := b.hist.Redo()
	if !ok {
		return false
	}
	b.restore(c.After)
	b.touch()
	return true
}
