package termhost

import "github.com/atotto/clipboard"

// Clipboard provides clipboard integration for copy, cut and paste.
//
// Errors must not crash the UI; the model logs and ignores them.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// SystemClipboard uses the OS clipboard (pbcopy, xclip/xsel, wl-clipboard or
// the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }
func (SystemClipboard) WriteText(s string) error  { return clipboard.WriteAll(s) }

// MemoryClipboard keeps text in process. It stands in for the system
// clipboard where none is available.
type MemoryClipboard struct {
	text string
}

func (c *MemoryClipboard) ReadText() (string, error) { return c.text, nil }
func (c *MemoryClipboard) WriteText(s string) error  { c.text = s; return nil }

// DetectClipboard returns the system clipboard when the platform supports
// it, else an in-memory one.
func DetectClipboard() Clipboard {
	if clipboard.Unsupported {
		return &MemoryClipboard{}
	}
	return SystemClipboard{}
}
