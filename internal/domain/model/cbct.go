package model

import "sort"

// CTSize is a cone-beam field-of-view choice.
type CTSize string

const (
	CTSize5x5   CTSize = "5x5"
	CTSize8x8   CTSize = "8x8"
	CTSize12x8  CTSize = "12x8"
	CTSize16x13 CTSize = "16x13"
)

var ctSizes = map[CTSize]struct{}{
	CTSize5x5:   {},
	CTSize8x8:   {},
	CTSize12x8:  {},
	CTSize16x13: {},
}

// ValidCTSize reports whether v is one of the fixed CT choices.
func ValidCTSize(v CTSize) bool {
	_, ok := ctSizes[v]
	return ok
}

// CBCT is the cone-beam sub-selection: one optional CT size plus a set of
// tooth identifiers. Both are orthogonal to the main study selection; an
// empty CT with an empty tooth set means no CBCT was requested.
type CBCT struct {
	CT    CTSize `json:"ct,omitempty"`
	Teeth []int  `json:"teeth"`
}

// Empty reports whether no CBCT was requested.
func (c CBCT) Empty() bool {
	return c.CT == "" && len(c.Teeth) == 0
}

// SetCT replaces the single current CT choice. Unknown values clear it.
func (c *CBCT) SetCT(v CTSize) {
	if !ValidCTSize(v) {
		c.CT = ""
		return
	}
	c.CT = v
}

// ToggleTooth adds the tooth to the selection, or removes it when present.
func (c *CBCT) ToggleTooth(id int) {
	for i, t := range c.Teeth {
		if t == id {
			c.Teeth = append(c.Teeth[:i], c.Teeth[i+1:]...)
			return
		}
	}
	c.Teeth = append(c.Teeth, id)
}

// Normalize returns the sub-selection with teeth sorted ascending and a
// non-nil slice, ready for rendering and persistence.
func (c CBCT) Normalize() CBCT {
	out := CBCT{CT: c.CT, Teeth: make([]int, len(c.Teeth))}
	if !ValidCTSize(out.CT) {
		out.CT = ""
	}
	copy(out.Teeth, c.Teeth)
	sort.Ints(out.Teeth)
	return out
}
