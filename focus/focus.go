// Package focus holds the single active-field slot shared by all fields.
//
// A Tracker is an explicit value owned by whoever manages focus (field.Host in
// this module); nothing here is process-global.
package focus

// ID identifies a field. The zero ID is never assigned to a field.
type ID uint64

// Tracker stores at most one active field.
type Tracker struct {
	active ID
	ok     bool

	onChange []func(prev, next ID)
}

// Active returns the active field, if any.
func (t *Tracker) Active() (ID, bool) { return t.active, t.ok }

// IsActive reports whether id is the active field.
func (t *Tracker) IsActive(id ID) bool { return t.ok && t.active == id }

// Activate makes id the active field and returns the field it replaced.
// Activating the already-active field is a no-op.
func (t *Tracker) Activate(id ID) (prev ID, replaced bool) {
	if t.ok && t.active == id {
		return 0, false
	}
	prev, replaced = t.active, t.ok
	t.active, t.ok = id, true
	t.notify(prev, id)
	return prev, replaced
}

// Deactivate clears the slot only if id currently holds it.
func (t *Tracker) Deactivate(id ID) bool {
	if !t.IsActive(id) {
		return false
	}
	t.Clear()
	return true
}

// Clear empties the slot.
func (t *Tracker) Clear() {
	if !t.ok {
		return
	}
	prev := t.active
	t.active, t.ok = 0, false
	t.notify(prev, 0)
}

// OnChange registers fn to run after every change of the active field.
// A zero ID means "none".
func (t *Tracker) OnChange(fn func(prev, next ID)) {
	if fn != nil {
		t.onChange = append(t.onChange, fn)
	}
}

func (t *Tracker) notify(prev, next ID) {
	for _, fn := range t.onChange {
		fn(prev, next)
	}
}
