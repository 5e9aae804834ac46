//go:build !quilldebug

package render

const strictAtlas = false
