//go:build quilldebug

package render

// Debug builds treat a glyph missing from the atlas as fatal.
const strictAtlas = true
