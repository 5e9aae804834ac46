package field

import (
	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/render"
)

// IntentKind identifies the semantic action requested by input handling.
type IntentKind uint8

const (
	IntentInsert IntentKind = iota
	IntentDelete
	IntentMove
	IntentSelect
	IntentSelectAll
	IntentSetCursor
	IntentToggleOverwrite
	IntentScroll
	IntentUndo
	IntentRedo
	IntentSubmit
	IntentSetText
)

func (k IntentKind) String() string {
	switch k {
	case IntentInsert:
		return "insert"
	case IntentDelete:
		return "delete"
	case IntentMove:
		return "move"
	case IntentSelect:
		return "select"
	case IntentSelectAll:
		return "select-all"
	case IntentSetCursor:
		return "set-cursor"
	case IntentToggleOverwrite:
		return "toggle-overwrite"
	case IntentScroll:
		return "scroll"
	case IntentUndo:
		return "undo"
	case IntentRedo:
		return "redo"
	case IntentSubmit:
		return "submit"
	case IntentSetText:
		return "set-text"
	default:
		return "unknown"
	}
}

// Intent is one queued edit request. Payload is one of the *Payload types
// below, or nil for kinds that carry nothing.
type Intent struct {
	Kind    IntentKind
	Payload any
}

// InsertPayload describes an insert action.
type InsertPayload struct {
	Text string
}

// DeletePayload describes a delete action.
type DeletePayload struct {
	Unit buffer.DeleteUnit
	Dir  buffer.Direction
}

// MovePayload describes a cursor move. Extend moves select.
type MovePayload struct {
	Move buffer.Move
}

// SelectPayload places both selection ends.
type SelectPayload struct {
	Anchor buffer.Pos
	Cursor buffer.Pos
}

// SetCursorPayload places the cursor and collapses the selection.
type SetCursorPayload struct {
	Pos buffer.Pos
}

// ScrollPayload scrolls the view by Delta layout units without moving the
// cursor.
type ScrollPayload struct {
	Delta render.Vec2
}

// SetTextPayload replaces all text.
type SetTextPayload struct {
	Text string
}

func Insert(text string) Intent {
	return Intent{Kind: IntentInsert, Payload: InsertPayload{Text: text}}
}

func Delete(unit buffer.DeleteUnit, dir buffer.Direction) Intent {
	return Intent{Kind: IntentDelete, Payload: DeletePayload{Unit: unit, Dir: dir}}
}

func MoveCursor(m buffer.Move) Intent {
	return Intent{Kind: IntentMove, Payload: MovePayload{Move: m}}
}

func Select(anchor, cursor buffer.Pos) Intent {
	return Intent{Kind: IntentSelect, Payload: SelectPayload{Anchor: anchor, Cursor: cursor}}
}

func SelectAll() Intent { return Intent{Kind: IntentSelectAll} }

func SetCursor(p buffer.Pos) Intent {
	return Intent{Kind: IntentSetCursor, Payload: SetCursorPayload{Pos: p}}
}

func ToggleOverwrite() Intent { return Intent{Kind: IntentToggleOverwrite} }

func ScrollBy(dx, dy float32) Intent {
	return Intent{Kind: IntentScroll, Payload: ScrollPayload{Delta: render.Vec2{X: dx, Y: dy}}}
}

func Undo() Intent   { return Intent{Kind: IntentUndo} }
func Redo() Intent   { return Intent{Kind: IntentRedo} }
func Submit() Intent { return Intent{Kind: IntentSubmit} }

func SetText(text string) Intent {
	return Intent{Kind: IntentSetText, Payload: SetTextPayload{Text: text}}
}
