package aliases

import (
	"iter"
	"maps"
	"slices"
)

// IDMarker is the placeholder rune of id fragments. Inserted fragments end
// with it, and the rune at a variation's insert point is replaced by it.
const IDMarker = '-'

// Variation is a delta against a shared base: an optional id fragment,
// extra tags and block states.
type Variation struct {
	// ID is the id fragment; empty means the variation has none.
	ID string
	// InsertPoint is the rune index in ID where inserted fragments go, or -1.
	InsertPoint int
	Tags        []string
	States      map[string]string
}

// NewVariation creates a variation. Tags and states are copied.
func NewVariation(id string, insertPoint int, tags []string, states map[string]string) Variation {
	return Variation{
		ID:          id,
		InsertPoint: insertPoint,
		Tags:        slices.Clone(tags),
		States:      maps.Clone(states),
	}
}

// InsertID composes inserted into the id fragment of v.
//
// The last rune of inserted is a marker and is dropped. Without an own
// fragment or without a valid insert point the stripped fragment replaces
// the id; otherwise it replaces the rune at InsertPoint.
func (v Variation) InsertID(inserted string) string {
	if inserted == "" {
		return v.ID
	}
	stripped := []rune(inserted)
	stripped = stripped[:len(stripped)-1]
	if v.ID == "" {
		return string(stripped)
	}

	own := []rune(v.ID)
	if v.InsertPoint < 0 || v.InsertPoint >= len(own) {
		return string(stripped)
	}

	out := make([]rune, 0, len(own)+len(stripped))
	out = append(out, own[:v.InsertPoint]...)
	out = append(out, stripped...)
	out = append(out, own[v.InsertPoint+1:]...)
	return string(out)
}

// Merge composes v on top of other. Tags of other come first, states of v
// override those of other and the id of other is inserted into the id of v.
// The result has no insert point.
func (v Variation) Merge(other Variation) Variation {
	tags := make([]string, 0, len(other.Tags)+len(v.Tags))
	tags = append(tags, other.Tags...)
	tags = append(tags, v.Tags...)

	states := make(map[string]string, len(other.States)+len(v.States))
	maps.Copy(states, other.States)
	maps.Copy(states, v.States)

	return Variation{
		ID:          v.InsertID(other.ID),
		InsertPoint: -1,
		Tags:        tags,
		States:      states,
	}
}

// WithInsertPoint returns a copy of v whose insert point is the first
// occurrence of marker in its id, or -1.
func (v Variation) WithInsertPoint(marker rune) Variation {
	v.InsertPoint = slices.Index([]rune(v.ID), marker)
	return v
}

// VariationGroup is an insertion-ordered list of keyed variations.
// Keys may repeat.
type VariationGroup struct {
	Keys   []string
	Values []Variation
}

// NewVariationGroup creates an empty group.
func NewVariationGroup() *VariationGroup {
	return &VariationGroup{}
}

// Put appends a variation under key.
func (g *VariationGroup) Put(key string, value Variation) {
	g.Keys = append(g.Keys, key)
	g.Values = append(g.Values, value)
}

// Len returns the number of entries.
func (g *VariationGroup) Len() int {
	return len(g.Keys)
}

// All iterates the entries in declaration order.
func (g *VariationGroup) All() iter.Seq2[string, Variation] {
	return func(yield func(string, Variation) bool) {
		for i, key := range g.Keys {
			if !yield(key, g.Values[i]) {
				return
			}
		}
	}
}
