package buffer

import (
	"strings"
	"testing"

	"github.com/iw2rmb/quill/mode"
)

func TestBuffer_InsertText_MultiLine(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(Pos{Line: 0, Byte: 1})

	if !b.InsertText("X\nY") {
		t.Fatalf("expected insert to be accepted")
	}
	if got, want := b.Text(), "aX\nYb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Cursor(); got != (Pos{Line: 1, Byte: 1}) {
		t.Fatalf("cursor=%v, want (1,1)", got)
	}
}

func TestBuffer_InsertText_ReplacesSelection(t *testing.T) {
	b := New("hello", Options{})
	b.SetSelection(Pos{Line: 0, Byte: 0}, Pos{Line: 0, Byte: 5})

	b.InsertText("hi")
	if got, want := b.Text(), "hi"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared after insert")
	}
	if got := b.Cursor(); got != (Pos{Line: 0, Byte: 2}) {
		t.Fatalf("cursor=%v, want (0,2)", got)
	}
}

func TestBuffer_InsertText_EmptyWithSelectionDeletes(t *testing.T) {
	b := New("hello", Options{})
	b.SetSelection(Pos{Line: 0, Byte: 1}, Pos{Line: 0, Byte: 3})

	if !b.InsertText("") {
		t.Fatalf("expected empty insert over selection to delete it")
	}
	if got, want := b.Text(), "hlo"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	v := b.Version()
	if b.InsertText("") {
		t.Fatalf("empty insert without selection must be a no-op")
	}
	if b.Version() != v {
		t.Fatalf("no-op insert bumped version")
	}
}

func TestBuffer_Overwrite_ReplacesNextCharacter(t *testing.T) {
	b := New("abc", Options{})
	b.SetOverwrite(true)
	b.SetCursor(Pos{Line: 0, Byte: 1})

	b.InsertText("x")
	if got, want := b.Text(), "axc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Cursor(); got != (Pos{Line: 0, Byte: 2}) {
		t.Fatalf("cursor=%v, want (0,2)", got)
	}
}

func TestBuffer_Overwrite_SameCharacterAdvancesCursor(t *testing.T) {
	b := New("abc", Options{})
	b.SetOverwrite(true)
	b.SetCursor(Pos{Line: 0, Byte: 1})

	if !b.InsertText("b") {
		t.Fatalf("expected overwrite with the same character to apply")
	}
	if got, want := b.Text(), "abc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Cursor(); got != (Pos{Line: 0, Byte: 2}) {
		t.Fatalf("cursor=%v, want (0,2)", got)
	}
	if !b.Undo() {
		t.Fatalf("expected undo to be available")
	}
	if got := b.Cursor(); got != (Pos{Line: 0, Byte: 1}) {
		t.Fatalf("cursor after undo=%v, want (0,1)", got)
	}
}

func TestBuffer_InsertText_SameTextClearsSelection(t *testing.T) {
	b := New("hello", Options{})
	b.SelectAll()

	if !b.InsertText("hello") {
		t.Fatalf("expected replacing the selection to apply")
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("selection survived insert")
	}
	if got := b.Cursor(); got != (Pos{Line: 0, Byte: 5}) {
		t.Fatalf("cursor=%v, want (0,5)", got)
	}
	if got, want := b.Text(), "hello"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Overwrite_NeverConsumesLineBreak(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetOverwrite(true)
	b.SetCursor(Pos{Line: 0, Byte: 1})

	b.InsertText("xyz")
	if got, want := b.Text(), "axyz\ncd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Overwrite_ReplacesWholeCluster(t *testing.T) {
	b := New("aéc", Options{})
	b.SetOverwrite(true)
	b.SetCursor(Pos{Line: 0, Byte: 1})

	b.InsertText("x")
	if got, want := b.Text(), "axc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_DeleteBackward_JoinsLinesAtLineStart(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(Pos{Line: 1, Byte: 0})

	if !b.DeleteBackward() {
		t.Fatalf("expected delete to apply")
	}
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Cursor(); got != (Pos{Line: 0, Byte: 2}) {
		t.Fatalf("cursor=%v, want (0,2)", got)
	}
}

func TestBuffer_DeleteForward_JoinsLinesAtLineEnd(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(Pos{Line: 0, Byte: 2})

	b.DeleteForward()
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Cursor(); got != (Pos{Line: 0, Byte: 2}) {
		t.Fatalf("cursor=%v, want (0,2)", got)
	}
}

func TestBuffer_Delete_PastBoundaryIsNoOp(t *testing.T) {
	b := New("ab", Options{})

	if b.DeleteForward() {
		t.Fatalf("delete forward at end must be a no-op")
	}
	b.SetCursor(Pos{})
	v := b.Version()
	if b.DeleteBackward() {
		t.Fatalf("delete backward at start must be a no-op")
	}
	if b.Delete(DeleteWord, Backward) {
		t.Fatalf("word delete backward at start must be a no-op")
	}
	if b.Version() != v {
		t.Fatalf("no-op delete bumped version")
	}
	if b.CanUndo() {
		t.Fatalf("no-op delete recorded history")
	}
}

func TestBuffer_Delete_SelectionFirst(t *testing.T) {
	b := New("one\ntwo\nthree", Options{})
	b.SetSelection(Pos{Line: 0, Byte: 1}, Pos{Line: 2, Byte: 2})

	b.Delete(DeleteWord, Forward)
	if got, want := b.Text(), "oree"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Cursor(); got != (Pos{Line: 0, Byte: 1}) {
		t.Fatalf("cursor=%v, want (0,1)", got)
	}
}

func TestBuffer_Delete_SelectionUnitWithoutSelection(t *testing.T) {
	b := New("abc", Options{})
	if b.Delete(DeleteSelection, Backward) {
		t.Fatalf("expected no-op without a selection")
	}
}

func TestBuffer_DeleteBackward_RemovesWholeGraphemeCluster(t *testing.T) {
	b := New("aé", Options{})

	b.DeleteBackward()
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_DeleteWord(t *testing.T) {
	b := New("foo bar  ", Options{})

	b.Delete(DeleteWord, Backward)
	if got, want := b.Text(), "foo "; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	b.SetCursor(Pos{})
	b.Delete(DeleteWord, Forward)
	if got, want := b.Text(), " "; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Validator_GrammarRejectionLeavesTextUnchanged(t *testing.T) {
	cases := []struct {
		name   string
		mode   mode.InputMode
		text   string
		insert string
	}{
		{"integer letter", mode.Int(), "12", "a"},
		{"integer second sign", mode.Int(), "-1", "-"},
		{"decimal second dot", mode.Dec(), "1.5", "."},
		{"hex sign", mode.Hex(), "ff", "-"},
		{"hex non-digit", mode.Hex(), "ff", "g"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(tc.text, Options{Validator: mode.Validator{Mode: tc.mode}})
			v := b.Version()

			if b.InsertText(tc.insert) {
				t.Fatalf("expected %q to be rejected", tc.insert)
			}
			if got := b.Text(); got != tc.text {
				t.Fatalf("text=%q, want %q", got, tc.text)
			}
			if b.Version() != v {
				t.Fatalf("rejected edit bumped version")
			}
			if b.CanUndo() {
				t.Fatalf("rejected edit recorded history")
			}
		})
	}
}

func TestBuffer_Validator_AcceptsIntermediateStates(t *testing.T) {
	b := New("", Options{Validator: mode.Validator{Mode: mode.Int()}})
	if !b.InsertText("-") {
		t.Fatalf("bare '-' must be accepted")
	}
	if !b.InsertText("42") {
		t.Fatalf("digits must be accepted")
	}
	if got, want := b.Text(), "-42"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Validator_MaxCharsExactFit(t *testing.T) {
	b := New("abc", Options{Validator: mode.Validator{Mode: mode.Default(), MaxChars: 5}})

	if b.InsertText("def") {
		t.Fatalf("insert exceeding the cap must be rejected")
	}
	if got, want := b.Text(), "abc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if !b.InsertText("de") {
		t.Fatalf("insert reaching the cap exactly must be accepted")
	}
	if got, want := b.Text(), "abcde"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if b.InsertText("f") {
		t.Fatalf("insert past a full buffer must be rejected")
	}

	// Replacing a selection only counts the result.
	b.SelectAll()
	if !b.InsertText("vwxyz") {
		t.Fatalf("replacement of equal length must be accepted")
	}
}

func TestBuffer_Validator_Filter(t *testing.T) {
	noSpaces := mode.FilterFunc(func(s string) bool { return !strings.Contains(s, " ") })
	b := New("ab", Options{Validator: mode.Validator{Mode: mode.SingleLine(), Filter: noSpaces}})

	if b.InsertText(" ") {
		t.Fatalf("expected filter to reject a space")
	}
	if !b.InsertText("c") {
		t.Fatalf("expected filter to accept a letter")
	}
}

func TestBuffer_SetText_ValidatedAndUndoable(t *testing.T) {
	b := New("1", Options{Validator: mode.Validator{Mode: mode.Int()}})

	if b.SetText("x1") {
		t.Fatalf("expected SetText to be validated")
	}
	if got, want := b.Text(), "1"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	b.SetCursor(Pos{})
	if !b.SetText("123") {
		t.Fatalf("expected SetText to be accepted")
	}
	if got := b.Cursor(); got != (Pos{Line: 0, Byte: 3}) {
		t.Fatalf("cursor=%v, want end", got)
	}

	b.Undo()
	if got, want := b.Text(), "1"; got != want {
		t.Fatalf("after undo text=%q, want %q", got, want)
	}
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("after undo cursor=%v, want (0,0)", got)
	}
}

func TestBuffer_Clear(t *testing.T) {
	b := New("abc", Options{Validator: mode.Validator{Mode: mode.Hex()}})
	b.SelectAll()
	if !b.Clear() {
		t.Fatalf("expected clear to be accepted")
	}
	if !b.IsEmpty() || b.Text() != "" {
		t.Fatalf("text=%q, want empty", b.Text())
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestBuffer_QueueText_LastRequestWins(t *testing.T) {
	b := New("a", Options{})
	b.QueueText("first")
	b.QueueText("second")

	if b.Text() != "a" || !b.HasPending() {
		t.Fatalf("queued text must not apply before ApplyPending")
	}
	if !b.ApplyPending() {
		t.Fatalf("expected pending text to apply")
	}
	if got, want := b.Text(), "second"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if b.HasPending() || b.ApplyPending() {
		t.Fatalf("pending request must be consumed")
	}
}
