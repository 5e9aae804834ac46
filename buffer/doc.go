// Package buffer implements the editable document behind a text field.
//
// Positions are (Line, Byte): a 0-based logical line and a byte offset into
// that line's UTF-8 text, always on a rune boundary. Ranges are half-open
// [Start, End) in document order.
//
// Every accepted mutation goes through the optional Validator and is recorded
// as a Change in the buffer's History; rejected mutations leave the buffer
// untouched and record nothing.
package buffer
