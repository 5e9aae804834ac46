package termhost

import "github.com/iw2rmb/quill/render"

// CellAtlas interns grapheme clusters. A terminal has no glyph bitmaps, so an
// atlas entry is the cluster text itself plus its intrinsic cell width; the
// region returned by Lookup is a one-row strip at x = ref.
type CellAtlas struct {
	entries []atlasEntry
	index   map[string]render.AtlasRef
}

type atlasEntry struct {
	cluster string
	width   int
}

func NewCellAtlas() *CellAtlas {
	return &CellAtlas{index: make(map[string]render.AtlasRef)}
}

// Intern returns the reference for cluster, adding it on first use.
func (a *CellAtlas) Intern(cluster string, width int) render.AtlasRef {
	if ref, ok := a.index[cluster]; ok {
		return ref
	}
	ref := render.AtlasRef(len(a.entries))
	a.entries = append(a.entries, atlasEntry{cluster: cluster, width: width})
	a.index[cluster] = ref
	return ref
}

func (a *CellAtlas) Lookup(ref render.AtlasRef) (render.Rect, bool) {
	if int(ref) >= len(a.entries) {
		return render.Rect{}, false
	}
	e := a.entries[ref]
	return render.RectAt(render.Vec2{X: float32(ref)}, render.Vec2{X: float32(e.width), Y: 1}), true
}

// Cluster returns the text interned under ref.
func (a *CellAtlas) Cluster(ref render.AtlasRef) (string, bool) {
	if int(ref) >= len(a.entries) {
		return "", false
	}
	return a.entries[ref].cluster, true
}

// Len returns the number of interned clusters.
func (a *CellAtlas) Len() int { return len(a.entries) }
