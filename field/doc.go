// Package field ties the editing core together for a set of text inputs.
//
// A Host owns fields, the single active-field slot and a pointer
// subscription table. Input sources queue Intents; once per frame Host.Frame
// applies them in arrival order, reshapes dirty fields through a Shaper,
// keeps the cursor in view and extracts draw primitives with render.Extract.
package field
