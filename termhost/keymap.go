package termhost

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/field"
)

// KeyMap defines the terminal key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	WordLeft, WordRight                       key.Binding
	ShiftWordLeft, ShiftWordRight             key.Binding
	Home, End                                 key.Binding
	DocStart, DocEnd                          key.Binding
	SelectAll                                 key.Binding

	Backspace, Delete         key.Binding
	WordBackspace, WordDelete key.Binding
	Enter                     key.Binding
	Submit                    key.Binding
	Overwrite                 key.Binding

	Undo, Redo       key.Binding
	Copy, Cut, Paste key.Binding

	NextField, PrevField key.Binding
	Quit                 key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		// Terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:       key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt/ctrl+←", "word left")),
		WordRight:      key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt/ctrl+→", "word right")),
		ShiftWordLeft:  key.NewBinding(key.WithKeys("ctrl+shift+left", "alt+shift+left"), key.WithHelp("ctrl+shift+←", "select word left")),
		ShiftWordRight: key.NewBinding(key.WithKeys("ctrl+shift+right", "alt+shift+right"), key.WithHelp("ctrl+shift+→", "select word right")),

		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),
		DocStart:  key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "start")),
		DocEnd:    key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "end")),
		SelectAll: key.NewBinding(key.WithKeys("alt+a"), key.WithHelp("alt+a", "select all")),

		Backspace:     key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:        key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		WordBackspace: key.NewBinding(key.WithKeys("alt+backspace", "ctrl+w"), key.WithHelp("ctrl+w", "delete word left")),
		WordDelete:    key.NewBinding(key.WithKeys("alt+delete", "alt+d"), key.WithHelp("alt+d", "delete word right")),
		Enter:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline / submit")),
		Submit:        key.NewBinding(key.WithKeys("ctrl+s", "alt+enter"), key.WithHelp("ctrl+s", "submit")),
		Overwrite:     key.NewBinding(key.WithKeys("insert"), key.WithHelp("ins", "overwrite")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+q"), key.WithHelp("esc", "quit")),
	}
}

// Action is a key outcome that needs more than the field's own state.
type Action uint8

const (
	ActionNone Action = iota
	ActionCopy
	ActionCut
	ActionPaste
	ActionNextField
	ActionPrevField
	ActionQuit
)

// Translate maps a key to intents for the active field, or to an Action the
// model handles itself. Enter submits a single-line field and inserts a line
// break otherwise.
func (km KeyMap) Translate(msg tea.KeyMsg, singleLine bool) ([]field.Intent, Action) {
	// Paste events always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		return []field.Intent{field.Insert(string(msg.Runes))}, ActionNone
	}

	move := func(unit buffer.MoveUnit, dir buffer.MoveDir, extend bool) []field.Intent {
		return []field.Intent{field.MoveCursor(buffer.Move{Unit: unit, Dir: dir, Extend: extend})}
	}

	switch {
	case key.Matches(msg, km.Quit):
		return nil, ActionQuit
	case key.Matches(msg, km.NextField):
		return nil, ActionNextField
	case key.Matches(msg, km.PrevField):
		return nil, ActionPrevField

	case key.Matches(msg, km.Left):
		return move(buffer.MoveChar, buffer.DirLeft, false), ActionNone
	case key.Matches(msg, km.Right):
		return move(buffer.MoveChar, buffer.DirRight, false), ActionNone
	case key.Matches(msg, km.Up):
		return move(buffer.MoveLine, buffer.DirUp, false), ActionNone
	case key.Matches(msg, km.Down):
		return move(buffer.MoveLine, buffer.DirDown, false), ActionNone

	case key.Matches(msg, km.ShiftLeft):
		return move(buffer.MoveChar, buffer.DirLeft, true), ActionNone
	case key.Matches(msg, km.ShiftRight):
		return move(buffer.MoveChar, buffer.DirRight, true), ActionNone
	case key.Matches(msg, km.ShiftUp):
		return move(buffer.MoveLine, buffer.DirUp, true), ActionNone
	case key.Matches(msg, km.ShiftDown):
		return move(buffer.MoveLine, buffer.DirDown, true), ActionNone

	case key.Matches(msg, km.WordLeft):
		return move(buffer.MoveWord, buffer.DirLeft, false), ActionNone
	case key.Matches(msg, km.WordRight):
		return move(buffer.MoveWord, buffer.DirRight, false), ActionNone
	case key.Matches(msg, km.ShiftWordLeft):
		return move(buffer.MoveWord, buffer.DirLeft, true), ActionNone
	case key.Matches(msg, km.ShiftWordRight):
		return move(buffer.MoveWord, buffer.DirRight, true), ActionNone

	case key.Matches(msg, km.Home):
		return move(buffer.MoveLine, buffer.DirHome, false), ActionNone
	case key.Matches(msg, km.End):
		return move(buffer.MoveLine, buffer.DirEnd, false), ActionNone
	case key.Matches(msg, km.DocStart):
		return move(buffer.MoveDoc, buffer.DirHome, false), ActionNone
	case key.Matches(msg, km.DocEnd):
		return move(buffer.MoveDoc, buffer.DirEnd, false), ActionNone
	case key.Matches(msg, km.SelectAll):
		return []field.Intent{field.SelectAll()}, ActionNone

	case key.Matches(msg, km.Backspace):
		return []field.Intent{field.Delete(buffer.DeleteChar, buffer.Backward)}, ActionNone
	case key.Matches(msg, km.Delete):
		return []field.Intent{field.Delete(buffer.DeleteChar, buffer.Forward)}, ActionNone
	case key.Matches(msg, km.WordBackspace):
		return []field.Intent{field.Delete(buffer.DeleteWord, buffer.Backward)}, ActionNone
	case key.Matches(msg, km.WordDelete):
		return []field.Intent{field.Delete(buffer.DeleteWord, buffer.Forward)}, ActionNone
	case key.Matches(msg, km.Submit):
		return []field.Intent{field.Submit()}, ActionNone
	case key.Matches(msg, km.Enter):
		if singleLine {
			return []field.Intent{field.Submit()}, ActionNone
		}
		return []field.Intent{field.Insert("\n")}, ActionNone
	case key.Matches(msg, km.Overwrite):
		return []field.Intent{field.ToggleOverwrite()}, ActionNone

	case key.Matches(msg, km.Undo):
		return []field.Intent{field.Undo()}, ActionNone
	case key.Matches(msg, km.Redo):
		return []field.Intent{field.Redo()}, ActionNone

	case key.Matches(msg, km.Copy):
		return nil, ActionCopy
	case key.Matches(msg, km.Cut):
		return nil, ActionCut
	case key.Matches(msg, km.Paste):
		return nil, ActionPaste
	}

	switch {
	case msg.Type == tea.KeySpace:
		return []field.Intent{field.Insert(" ")}, ActionNone
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
		return []field.Intent{field.Insert(string(msg.Runes))}, ActionNone
	}
	return nil, ActionNone
}

// ShortHelp lists the bindings shown in the demo footer.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.NextField, km.Submit, km.Undo, km.Copy, km.Paste, km.Quit}
}
