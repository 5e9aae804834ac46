// Package termhost runs quill fields in a terminal with Bubble Tea.
//
// One terminal cell is one layout unit. CellShaper lays text out in cells
// using grapheme clusters and East Asian widths, Painter turns a frame's
// primitives back into styled rows with lipgloss, and Model wires keys,
// mouse, clipboard and the blink tick to a field.Host.
package termhost
