package aliases

import (
	"slices"

	"github.com/TPGamesNL/Skript/pkg/core"
)

// ItemType is the group of descriptors registered under one alias name.
// A provider owns each group once and references it from both the singular
// and the plural key.
type ItemType struct {
	types []*core.ItemData
}

// Types returns the descriptors of the group in registration order.
func (t *ItemType) Types() []*core.ItemData {
	return slices.Clone(t.types)
}

// Len returns the number of descriptors.
func (t *ItemType) Len() int {
	return len(t.types)
}

// Contains reports whether an exact-or-better match of item is in the group.
func (t *ItemType) Contains(item *core.ItemData) bool {
	for _, existing := range t.types {
		if item.MatchAlias(existing).IsAtLeast(core.QualityExact) {
			return true
		}
	}
	return false
}

// merge appends the descriptors that are not yet in the group.
func (t *ItemType) merge(items []*core.ItemData) {
	for _, item := range items {
		if !t.Contains(item) {
			t.types = append(t.types, item)
		}
	}
}
