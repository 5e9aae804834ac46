package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/render"
)

func pointerHost(t *testing.T) (*Host, *Field, *Field) {
	t.Helper()
	h, _ := newTestHost()
	a := h.Add(textConfig("abc"))
	b := h.Add(textConfig("hello"))
	place(a, 0, 0, 100, 20)
	place(b, 0, 30, 100, 20)
	h.Frame(0)
	return h, a, b
}

func TestPointer_PressActivatesAndPlacesCursor(t *testing.T) {
	h, _, b := pointerHost(t)

	require.True(t, h.Pointer(PointerEvent{Kind: PointerPress, Pos: render.Vec2{X: 24, Y: 35}}))
	assert.True(t, h.Focus().IsActive(b.ID()))

	h.Frame(0)
	assert.Equal(t, buffer.Pos{Line: 0, Byte: 2}, b.Buffer().Cursor())
}

func TestPointer_DragSelects(t *testing.T) {
	h, _, b := pointerHost(t)

	h.Pointer(PointerEvent{Kind: PointerPress, Pos: render.Vec2{X: 24, Y: 35}})
	h.Pointer(PointerEvent{Kind: PointerDrag, Pos: render.Vec2{X: 44, Y: 35}})
	h.Pointer(PointerEvent{Kind: PointerRelease, Pos: render.Vec2{X: 44, Y: 35}})
	h.Frame(0)

	assert.Equal(t, "ll", b.Buffer().SelectedText())
	assert.Equal(t, buffer.Pos{Line: 0, Byte: 4}, b.Buffer().Cursor())

	frame := h.Frame(0)
	assert.Len(t, kinds(frame.Fields[1].Primitives, render.PrimitiveSelection), 1)
}

func TestPointer_ShiftPressExtendsFromCursor(t *testing.T) {
	h, _, b := pointerHost(t)
	h.Activate(b.ID())

	h.Pointer(PointerEvent{Kind: PointerPress, Pos: render.Vec2{X: 14, Y: 35}, Extend: true})
	h.Frame(0)

	assert.Equal(t, "ello", b.Buffer().SelectedText())
}

func TestPointer_PressOutsideClearsFocus(t *testing.T) {
	h, _, b := pointerHost(t)
	h.Activate(b.ID())

	assert.False(t, h.Pointer(PointerEvent{Kind: PointerPress, Pos: render.Vec2{X: 500, Y: 500}}))
	_, ok := h.Active()
	assert.False(t, ok)
}

func TestPointer_PressOnOtherFieldMovesFocus(t *testing.T) {
	h, a, b := pointerHost(t)
	h.Activate(a.ID())

	h.Pointer(PointerEvent{Kind: PointerPress, Pos: render.Vec2{X: 5, Y: 35}})
	assert.False(t, h.Focus().IsActive(a.ID()))
	assert.True(t, h.Focus().IsActive(b.ID()))
}

func TestPointer_NoActivationWhenDisabledByConfig(t *testing.T) {
	h, _ := newTestHost()
	a := h.Add(textConfig("abc"))
	cfg := textConfig("hello")
	cfg.ActivateOnPointerDown = false
	b := h.Add(cfg)
	place(a, 0, 0, 100, 20)
	place(b, 0, 30, 100, 20)
	h.Frame(0)
	h.Activate(a.ID())

	h.Pointer(PointerEvent{Kind: PointerPress, Pos: render.Vec2{X: 5, Y: 35}})
	_, ok := h.Active()
	assert.False(t, ok, "press elsewhere still drops the previous focus")

	h.Frame(0)
	assert.Equal(t, buffer.Pos{Line: 0, Byte: 5}, b.Buffer().Cursor())
}

func TestPointer_InvisibleFieldIsNotHit(t *testing.T) {
	h, _, b := pointerHost(t)
	b.SetBounds(b.Bounds(), nil, false)

	assert.False(t, h.Pointer(PointerEvent{Kind: PointerPress, Pos: render.Vec2{X: 24, Y: 35}}))
	assert.False(t, h.Focus().IsActive(b.ID()))
}

func TestField_HitTest(t *testing.T) {
	h, _ := newTestHost()
	f := h.Add(textConfig("ab\ncdef"))
	place(f, 10, 10, 100, 40)
	h.Frame(0)

	tests := []struct {
		name string
		p    render.Vec2
		want buffer.Pos
	}{
		{"left of first glyph", render.Vec2{X: 0, Y: 15}, buffer.Pos{Line: 0, Byte: 0}},
		{"right half of a", render.Vec2{X: 17, Y: 15}, buffer.Pos{Line: 0, Byte: 1}},
		{"past line end", render.Vec2{X: 90, Y: 15}, buffer.Pos{Line: 0, Byte: 2}},
		{"second line", render.Vec2{X: 31, Y: 35}, buffer.Pos{Line: 1, Byte: 2}},
		{"below last line", render.Vec2{X: 90, Y: 200}, buffer.Pos{Line: 1, Byte: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.HitTest(tt.p))
		})
	}
}
