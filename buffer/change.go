package buffer

// ChangeKind identifies the edit that produced a Change.
type ChangeKind uint8

const (
	ChangeInsert ChangeKind = iota
	ChangeDelete
	ChangeReplace
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Snapshot is the restorable part of a buffer: text, cursor and selection
// anchor. Two buffers with equal snapshots render and edit identically.
type Snapshot struct {
	Text      string
	Cursor    Pos
	Anchor    Pos
	HasAnchor bool
}

// Change is one reversible edit: undo restores Before, redo restores After.
type Change struct {
	Kind          ChangeKind
	Before        Snapshot
	After         Snapshot
	VersionBefore uint64
	VersionAfter  uint64
}

// Snapshot captures the current restorable state.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{
		Text:      b.Text(),
		Cursor:    b.cursor,
		Anchor:    b.sel.anchor,
		HasAnchor: b.sel.active,
	}
}

func (b *Buffer) restore(s Snapshot) {
	b.lines = splitLines(s.Text)
	b.cursor = ClampPos(s.Cursor, b.lines)
	if !s.HasAnchor {
		b.sel = selectionState{}
		return
	}
	b.sel = selectionState{active: true, anchor: ClampPos(s.Anchor, b.lines)}
}

// commit finishes a text mutation that started from before.
func (b *Buffer) commit(kind ChangeKind, before Snapshot, versionBefore uint64) {
	b.touch()
	b.hist.Commit(Change{
		Kind:          kind,
		Before:        before,
		After:         b.Snapshot(),
		VersionBefore: versionBefore,
		VersionAfter:  b.version,
	})
}
