package aliases

import (
	"slices"

	"github.com/TPGamesNL/Skript/pkg/core"
)

// AliasData is the canonical record of one distinct item.
type AliasData struct {
	item        *core.ItemData
	name        core.MaterialName
	minecraftID string
	related     *core.EntityData

	seq int
}

// NewAliasData creates a canonical record. related may be nil.
func NewAliasData(item *core.ItemData, name core.MaterialName, minecraftID string, related *core.EntityData) *AliasData {
	return &AliasData{
		item:        item,
		name:        name,
		minecraftID: minecraftID,
		related:     related,
	}
}

// Item returns the canonical descriptor.
func (a *AliasData) Item() *core.ItemData { return a.item }

// Name returns the display name of the item.
func (a *AliasData) Name() core.MaterialName { return a.name }

// MinecraftID returns the id the item was defined with.
func (a *AliasData) MinecraftID() string { return a.minecraftID }

// RelatedEntity returns the related entity, or nil.
func (a *AliasData) RelatedEntity() *core.EntityData { return a.related }

// Match is the result of a canonical index lookup.
// Data is nil when nothing suitable was found.
type Match struct {
	Quality core.MatchQuality
	Data    *AliasData
}

// Found reports whether the match carries a record.
func (m Match) Found() bool {
	return m.Data != nil
}

// materialEntry holds the records of one material.
type materialEntry struct {
	// defaultItem is the record of the plain material, if one was registered.
	defaultItem *AliasData
	// typed holds every other record in registration order.
	typed []*AliasData
}

// candidates returns the records of the entry in registration order.
func (e *materialEntry) candidates() []*AliasData {
	all := make([]*AliasData, 0, len(e.typed)+1)
	if e.defaultItem != nil {
		all = append(all, e.defaultItem)
	}
	all = append(all, e.typed...)
	slices.SortFunc(all, func(a, b *AliasData) int { return a.seq - b.seq })
	return all
}

// AliasesMap deduplicates descriptors and stores the canonical record of
// each distinct item. Records are bucketed by material; matching inside a
// bucket is a scan graded by MatchQuality.
type AliasesMap struct {
	entries map[core.Material]*materialEntry
	nextSeq int
	count   int
}

// NewAliasesMap creates an empty canonical index.
func NewAliasesMap() *AliasesMap {
	return &AliasesMap{
		entries: make(map[core.Material]*materialEntry),
	}
}

// best returns the best matching record among candidates for item.
// On equal quality the first registered record wins.
func best(candidates []*AliasData, item *core.ItemData) (core.MatchQuality, *AliasData) {
	bestQuality := core.QualityDifferent
	var bestData *AliasData
	for _, candidate := range candidates {
		quality := candidate.item.MatchAlias(item)
		if bestData == nil || quality.IsBetter(bestQuality) {
			bestQuality = quality
			bestData = candidate
		}
	}
	return bestQuality, bestData
}

// ExactMatch finds the record whose descriptor matches item exactly.
// Absence, including a nil item, is reported as QualityDifferent with no
// data.
func (m *AliasesMap) ExactMatch(item *core.ItemData) Match {
	if item == nil {
		return Match{Quality: core.QualityDifferent}
	}
	entry, ok := m.entries[item.Material()]
	if !ok {
		return Match{Quality: core.QualityDifferent}
	}
	quality, data := best(entry.candidates(), item)
	if data == nil || !quality.IsAtLeast(core.QualityExact) {
		return Match{Quality: quality}
	}
	return Match{Quality: quality, Data: data}
}

// MatchAlias resolves an arbitrary descriptor to its closest record.
//
// Exact matches win. Otherwise the best typed record is returned if it
// matches better than QualitySameMaterial, and the record of the plain
// material is the fallback.
func (m *AliasesMap) MatchAlias(item *core.ItemData) Match {
	if item == nil {
		return Match{Quality: core.QualityDifferent}
	}
	if exact := m.ExactMatch(item); exact.Found() {
		return exact
	}
	entry, ok := m.entries[item.Material()]
	if !ok {
		return Match{Quality: core.QualityDifferent}
	}

	quality, data := best(entry.typed, item)
	if data != nil && quality.IsBetter(core.QualitySameMaterial) {
		return Match{Quality: quality, Data: data}
	}
	if entry.defaultItem == nil {
		return Match{Quality: core.QualitySameMaterial}
	}
	return Match{Quality: entry.defaultItem.item.MatchAlias(item), Data: entry.defaultItem}
}

// Add stores a canonical record. If an exact-or-better record already
// exists the index is left unchanged and the existing record is returned
// with false.
func (m *AliasesMap) Add(data *AliasData) (*AliasData, bool) {
	if existing := m.ExactMatch(data.item); existing.Found() {
		return existing.Data, false
	}

	material := data.item.Material()
	entry, ok := m.entries[material]
	if !ok {
		entry = &materialEntry{}
		m.entries[material] = entry
	}

	data.seq = m.nextSeq
	m.nextSeq++
	m.count++

	if entry.defaultItem == nil && data.item.Kind() == core.KindMaterial && data.item.Flags() == 0 {
		entry.defaultItem = data
	} else {
		entry.typed = append(entry.typed, data)
	}
	return data, true
}

// Records returns all records in registration order.
func (m *AliasesMap) Records() []*AliasData {
	all := make([]*AliasData, 0, m.count)
	for _, entry := range m.entries {
		all = append(all, entry.candidates()...)
	}
	slices.SortFunc(all, func(a, b *AliasData) int { return a.seq - b.seq })
	return all
}

// Len returns the number of records.
func (m *AliasesMap) Len() int {
	return m.count
}

// Clear removes all records.
func (m *AliasesMap) Clear() {
	m.entries = make(map[core.Material]*materialEntry)
	m.nextSeq = 0
	m.count = 0
}
