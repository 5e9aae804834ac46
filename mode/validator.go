package mode

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrTooLong is returned when a candidate exceeds the length cap.
	ErrTooLong = errors.New("mode: text exceeds max chars")
	// ErrGrammar is returned when the mode grammar rejects a candidate.
	ErrGrammar = errors.New("mode: text rejected by input mode")
	// ErrFiltered is returned when the custom filter rejects a candidate.
	ErrFiltered = errors.New("mode: text rejected by filter")
)

// Validator gates prospective edits: length cap, then mode grammar, then the
// optional custom filter.
type Validator struct {
	Mode InputMode
	// MaxChars caps the text length in characters (runes, line breaks
	// included). Zero means no cap.
	MaxChars int
	Filter   Filter
}

// Check returns nil when candidate is acceptable, or the first rule it breaks.
func (v Validator) Check(candidate string) error {
	if v.MaxChars > 0 && utf8.RuneCountInString(candidate) > v.MaxChars {
		return ErrTooLong
	}
	if !v.Mode.Accepts(candidate) {
		return ErrGrammar
	}
	if v.Filter != nil && !v.Filter.Accept(candidate) {
		return ErrFiltered
	}
	return nil
}

// Accept reports whether Check passes.
func (v Validator) Accept(candidate string) bool { return v.Check(candidate) == nil }
