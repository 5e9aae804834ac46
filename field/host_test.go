package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/focus"
	"github.com/iw2rmb/quill/mode"
	"github.com/iw2rmb/quill/render"
)

func TestHost_ActivationIsExclusive(t *testing.T) {
	h, _ := newTestHost()
	a := h.Add(DefaultConfig())
	b := h.Add(DefaultConfig())

	var changes [][2]focus.ID
	h.Focus().OnChange(func(prev, next focus.ID) {
		changes = append(changes, [2]focus.ID{prev, next})
	})

	require.True(t, h.Activate(a.ID()))
	require.True(t, h.Activate(b.ID()))

	active, ok := h.Active()
	require.True(t, ok)
	assert.Equal(t, b.ID(), active.ID())
	assert.False(t, h.Focus().IsActive(a.ID()))
	assert.Equal(t, [][2]focus.ID{{0, a.ID()}, {a.ID(), b.ID()}}, changes)
}

func TestHost_DisabledFieldCannotActivateOrEdit(t *testing.T) {
	h, _ := newTestHost()
	cfg := textConfig("ab")
	cfg.Enabled = false
	f := h.Add(cfg)
	place(f, 0, 0, 100, 20)

	assert.False(t, h.Activate(f.ID()))

	h.Send(f.ID(), Insert("x"), Delete(buffer.DeleteChar, buffer.Backward))
	h.Frame(0)
	assert.Equal(t, "ab", f.Text())

	f.SetText("programmatic")
	h.Frame(0)
	assert.Equal(t, "programmatic", f.Text())
}

func TestHost_FrameAppliesIntentsInOrder(t *testing.T) {
	h, _ := newTestHost()
	f := h.Add(DefaultConfig())
	place(f, 0, 0, 200, 20)

	h.Send(f.ID(),
		Insert("ab"),
		MoveCursor(buffer.Move{Unit: buffer.MoveChar, Dir: buffer.DirLeft}),
		Insert("X"),
	)
	h.Frame(0)
	assert.Equal(t, "aXb", f.Text())
}

func TestHost_PendingSetTextRunsBeforeIntents(t *testing.T) {
	h, _ := newTestHost()
	f := h.Add(textConfig("old"))
	place(f, 0, 0, 200, 20)

	f.SetText("hello")
	h.Send(f.ID(), Insert("!"))
	h.Frame(0)
	assert.Equal(t, "hello!", f.Text())
}

func TestHost_SubmitClearsAndDeactivates(t *testing.T) {
	h, _ := newTestHost()
	f := h.Add(DefaultConfig())
	place(f, 0, 0, 200, 20)
	require.True(t, h.Activate(f.ID()))

	var got []SubmitEvent
	h.OnSubmit(func(ev SubmitEvent) { got = append(got, ev) })

	h.SendActive(Insert("hi"), Submit())
	frame := h.Frame(0)

	want := []SubmitEvent{{Field: f.ID(), Text: "hi"}}
	assert.Equal(t, want, frame.Submits)
	assert.Equal(t, want, got)
	assert.Equal(t, "", f.Text())
	assert.Equal(t, "", f.Contents())
	assert.False(t, h.Focus().IsActive(f.ID()))
}

func TestHost_SubmitRequestKeepsTextWhenConfigured(t *testing.T) {
	h, _ := newTestHost()
	cfg := textConfig("keep")
	cfg.ClearOnSubmit = false
	cfg.DeactivateOnSubmit = false
	f := h.Add(cfg)
	place(f, 0, 0, 200, 20)
	h.Activate(f.ID())

	require.True(t, h.Submit(f.ID()))
	frame := h.Frame(0)

	require.Len(t, frame.Submits, 1)
	assert.Equal(t, "keep", frame.Submits[0].Text)
	assert.Equal(t, "keep", f.Text())
	assert.True(t, h.Focus().IsActive(f.ID()))
}

func TestHost_SubmitKeepsTextWhenFilterRejectsClear(t *testing.T) {
	h, _ := newTestHost()
	cfg := textConfig("keep")
	cfg.Filter = mode.FilterFunc(func(s string) bool { return s != "" })
	f := h.Add(cfg)
	place(f, 0, 0, 200, 20)
	require.True(t, h.Activate(f.ID()))

	h.SendActive(Submit())
	frame := h.Frame(0)

	require.Len(t, frame.Submits, 1)
	assert.Equal(t, "keep", frame.Submits[0].Text)
	assert.Equal(t, "keep", f.Text())
	assert.False(t, f.Buffer().CanUndo())
	assert.False(t, h.Focus().IsActive(f.ID()), "submit still deactivates")
}

func TestHost_SingleLineInsertFlattensLineBreaks(t *testing.T) {
	h, _ := newTestHost()
	cfg := DefaultConfig()
	cfg.Mode = mode.SingleLine()
	f := h.Add(cfg)
	place(f, 0, 0, 200, 20)

	h.Send(f.ID(), Insert("a\nb\r\nc"))
	h.Frame(0)
	assert.Equal(t, "a b c", f.Text())
}

func TestHost_SingleLineSetTextFlattensLineBreaks(t *testing.T) {
	h, _ := newTestHost()
	cfg := DefaultConfig()
	cfg.Mode = mode.SingleLine()
	cfg.Text = "one\ntwo"
	f := h.Add(cfg)
	place(f, 0, 0, 200, 20)
	assert.Equal(t, "one two", f.Text(), "initial text")

	f.SetText("first\nsecond")
	h.Frame(0)
	assert.Equal(t, "first second", f.Text())
	assert.Equal(t, 1, f.Buffer().LineCount())
	assert.Len(t, f.Layout().Runs, 1)

	h.Send(f.ID(), SetText("a\r\nb"))
	h.Frame(0)
	assert.Equal(t, "a b", f.Text())
	assert.Equal(t, 1, f.Buffer().LineCount())
}

func TestHost_ToggleOverwriteHonorsConfig(t *testing.T) {
	h, _ := newTestHost()
	cfg := textConfig("abc")
	cfg.AllowOverwrite = false
	f := h.Add(cfg)
	g := h.Add(textConfig("abc"))

	h.Send(f.ID(), ToggleOverwrite())
	h.Send(g.ID(), ToggleOverwrite())
	h.Frame(0)

	assert.False(t, f.Buffer().Overwrite())
	assert.True(t, g.Buffer().Overwrite())
}

func TestHost_ContentsMirrorUpdatesAtFrameEnd(t *testing.T) {
	h, _ := newTestHost()
	f := h.Add(textConfig("a"))
	place(f, 0, 0, 200, 20)

	h.Send(f.ID(), Insert("b"))
	assert.Equal(t, "a", f.Contents())

	h.Frame(0)
	assert.Equal(t, "ab", f.Contents())
}

func TestHost_UndoRedoIntents(t *testing.T) {
	h, _ := newTestHost()
	f := h.Add(DefaultConfig())
	place(f, 0, 0, 200, 20)

	h.Send(f.ID(), Insert("a"), Insert("b"), Undo())
	h.Frame(0)
	assert.Equal(t, "a", f.Text())

	h.Send(f.ID(), Redo())
	h.Frame(0)
	assert.Equal(t, "ab", f.Text())
}

func TestHost_ReshapesOnlyWhenNeeded(t *testing.T) {
	h, s := newTestHost()
	f := h.Add(textConfig("abc"))
	place(f, 0, 0, 200, 20)

	h.Frame(0)
	require.Equal(t, 1, s.calls)

	h.Frame(0)
	assert.Equal(t, 1, s.calls, "clean frame must not reshape")

	h.Send(f.ID(), MoveCursor(buffer.Move{Unit: buffer.MoveChar, Dir: buffer.DirLeft}))
	h.Frame(0)
	assert.Equal(t, 1, s.calls, "cursor move must not reshape")

	place(f, 0, 0, 150, 20)
	h.Frame(0)
	assert.Equal(t, 2, s.calls, "width change must reshape")

	h.Send(f.ID(), Insert("x"))
	h.Frame(0)
	assert.Equal(t, 3, s.calls, "edit must reshape")
	assert.Len(t, f.Layout().Glyphs, 4)
}

func TestHost_SingleLineScrollFollowsCursor(t *testing.T) {
	h, _ := newTestHost()
	cfg := textConfig("abcdefghij")
	cfg.Mode = mode.SingleLine()
	f := h.Add(cfg)
	place(f, 0, 0, 50, 20)

	h.Frame(0)
	assert.Equal(t, buffer.Scroll{X: 53}, f.Buffer().Scroll())

	h.Send(f.ID(), MoveCursor(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome}))
	h.Frame(0)
	assert.Equal(t, buffer.Scroll{}, f.Buffer().Scroll())
}

func TestHost_ManualScrollSticksWhileCursorIsStill(t *testing.T) {
	h, _ := newTestHost()
	f := h.Add(textConfig("1\n2\n3\n4"))
	place(f, 0, 0, 100, 40)

	h.Frame(0)
	require.Equal(t, float32(40), f.Buffer().Scroll().Y)

	h.Send(f.ID(), ScrollBy(0, -20))
	h.Frame(0)
	assert.Equal(t, float32(20), f.Buffer().Scroll().Y)

	h.Send(f.ID(), ScrollBy(0, -500))
	h.Frame(0)
	assert.Equal(t, float32(0), f.Buffer().Scroll().Y, "scroll clamps at the top")
}

func TestHost_CaretOnlyOnActiveField(t *testing.T) {
	h, _ := newTestHost()
	a := h.Add(textConfig("a"))
	b := h.Add(textConfig("b"))
	place(a, 0, 0, 100, 20)
	place(b, 0, 30, 100, 20)
	h.Activate(b.ID())

	frame := h.Frame(0)
	require.Len(t, frame.Fields, 2)
	assert.Empty(t, kinds(frame.Fields[0].Primitives, render.PrimitiveCaret))
	assert.Len(t, kinds(frame.Fields[1].Primitives, render.PrimitiveCaret), 1)
}

func TestHost_BlinkAdvancesOnlyForActiveFieldAndResetsOnEdit(t *testing.T) {
	h, _ := newTestHost()
	f := h.Add(textConfig("a"))
	place(f, 0, 0, 100, 20)
	h.Activate(f.ID())
	interval := f.Config().Style.BlinkInterval

	frame := h.Frame(interval)
	assert.Empty(t, kinds(frame.Primitives(), render.PrimitiveCaret), "caret off after one interval")

	h.SendActive(Insert("b"))
	frame = h.Frame(interval)
	assert.Len(t, kinds(frame.Primitives(), render.PrimitiveCaret), 1, "edit resets the blink")
}

func TestHost_PromptUsesOwnColor(t *testing.T) {
	h, _ := newTestHost()
	cfg := DefaultConfig()
	gray := render.RGB(0x80, 0x80, 0x80)
	cfg.Prompt = &Prompt{Text: "Name", Color: &gray}
	f := h.Add(cfg)
	place(f, 0, 0, 100, 20)

	glyphs := kinds(h.Frame(0).Primitives(), render.PrimitiveGlyph)
	require.Len(t, glyphs, 4)
	for _, g := range glyphs {
		assert.True(t, g.Prompt)
		assert.Equal(t, gray, g.Color)
	}

	h.Send(f.ID(), Insert("x"))
	glyphs = kinds(h.Frame(0).Primitives(), render.PrimitiveGlyph)
	require.Len(t, glyphs, 1)
	assert.False(t, glyphs[0].Prompt)
	assert.Equal(t, cfg.TextColor, glyphs[0].Color)
}

func TestHost_RemoveDropsFieldAndFocus(t *testing.T) {
	h, _ := newTestHost()
	f := h.Add(DefaultConfig())
	h.Activate(f.ID())

	h.Remove(f.ID())
	_, ok := h.Field(f.ID())
	assert.False(t, ok)
	_, ok = h.Active()
	assert.False(t, ok)
	assert.Empty(t, h.Subscriptions().For(f.ID()))
	assert.False(t, h.Send(f.ID(), Insert("x")))
}
