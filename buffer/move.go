package buffer

import "github.com/iw2rmb/quill/internal/grapheme"

type MoveUnit int

const (
	MoveChar MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, keeps the anchor fixed and moves only the cursor end
}

// Move moves the cursor. Without Extend the selection collapses to the new
// cursor; with Extend the anchor is kept (or created at the old cursor).
func (b *Buffer) Move(m Move) {
	b.blink.Reset()

	prevCursor := b.cursor
	prevSel := b.sel
	nextCursor := ClampPos(b.moveCursor(prevCursor, m), b.lines)

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active {
			anchor = prevSel.anchor
		}
		nextSel = selectionState{active: true, anchor: anchor}
	}

	if prevCursor == nextCursor && prevSel == nextSel {
		return
	}
	b.cursor = nextCursor
	b.sel = nextSel
	b.version++
}

func (b *Buffer) moveCursor(p Pos, m Move) Pos {
	switch m.Unit {
	case MoveChar:
		return b.moveChar(p, m.Dir)
	case MoveWord:
		return b.moveWord(p, m.Dir)
	case MoveLine:
		return b.moveLine(p, m.Dir)
	case MoveDoc:
		return b.moveDoc(p, m.Dir)
	default:
		return p
	}
}

func (b *Buffer) moveChar(p Pos, dir MoveDir) Pos {
	line := b.lines[p.Line]
	lastLine := len(b.lines) - 1

	switch dir {
	case DirLeft:
		if p.Byte > 0 {
			return Pos{Line: p.Line, Byte: grapheme.Prev(line, p.Byte)}
		}
		if p.Line == 0 {
			return p
		}
		return Pos{Line: p.Line - 1, Byte: len(b.lines[p.Line-1])}
	case DirRight:
		if p.Byte < len(line) {
			return Pos{Line: p.Line, Byte: grapheme.Next(line, p.Byte)}
		}
		if p.Line == lastLine {
			return p
		}
		return Pos{Line: p.Line + 1}
	default:
		return b.moveLine(p, dir)
	}
}

// moveWord stays on the current line unless the cursor is already at its
// edge, in which case it crosses the line break like a character move.
func (b *Buffer) moveWord(p Pos, dir MoveDir) Pos {
	line := b.lines[p.Line]

	switch dir {
	case DirLeft:
		if p.Byte == 0 {
			return b.moveChar(p, DirLeft)
		}
		return Pos{Line: p.Line, Byte: prevWordBoundary(line, p.Byte)}
	case DirRight:
		if p.Byte == len(line) {
			return b.moveChar(p, DirRight)
		}
		return Pos{Line: p.Line, Byte: nextWordBoundary(line, p.Byte)}
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveLine(p Pos, dir MoveDir) Pos {
	lastLine := len(b.lines) - 1

	switch dir {
	case DirHome:
		return Pos{Line: p.Line}
	case DirEnd:
		return Pos{Line: p.Line, Byte: len(b.lines[p.Line])}
	case DirUp:
		if p.Line == 0 {
			return p
		}
		return b.sameColumn(p, p.Line-1)
	case DirDown:
		if p.Line == lastLine {
			return p
		}
		return b.sameColumn(p, p.Line+1)
	case DirLeft:
		return b.moveChar(p, DirLeft)
	case DirRight:
		return b.moveChar(p, DirRight)
	default:
		return p
	}
}

func (b *Buffer) moveDoc(p Pos, dir MoveDir) Pos {
	switch dir {
	case DirHome, DirUp, DirLeft:
		return Pos{}
	case DirEnd, DirDown, DirRight:
		return b.endPos()
	default:
		return p
	}
}

// sameColumn keeps the grapheme column of p on line target, clamped to the
// line's length.
func (b *Buffer) sameColumn(p Pos, target int) Pos {
	col := grapheme.Count(b.lines[p.Line][:p.Byte])
	line := b.lines[target]
	return Pos{Line: target, Byte: grapheme.Advance(line, 0, col)}
}

// Word boundary rules:
// - skip whitespace, then skip non-whitespace
// - operates on a single logical line
func prevWordBoundary(line string, off int) int {
	i := off
	for i > 0 {
		j := grapheme.Prev(line, i)
		if !grapheme.IsSpace(line[j:i]) {
			break
		}
		i = j
	}
	for i > 0 {
		j := grapheme.Prev(line, i)
		if grapheme.IsSpace(line[j:i]) {
			break
		}
		i = j
	}
	return i
}

func nextWordBoundary(line string, off int) int {
	i := off
	for i < len(line) {
		j := grapheme.Next(line, i)
		if !grapheme.IsSpace(line[i:j]) {
			break
		}
		i = j
	}
	for i < len(line) {
		j := grapheme.Next(line, i)
		if grapheme.IsSpace(line[i:j]) {
			break
		}
		i = j
	}
	return i
}
