package aliases

import (
	"testing"

	"github.com/TPGamesNL/Skript/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stone  = core.Material{Key: "minecraft:stone", Block: true}
	oakLog = core.Material{Key: "minecraft:oak_log", Block: true}
	sword  = core.Material{Key: "minecraft:diamond_sword", MaxDamage: 1561}
)

func plainItem(m core.Material) *core.ItemData {
	return core.NewAliasItemData(core.NewItemStack(m), nil, 0)
}

func stateItem(m core.Material, states map[string]string) *core.ItemData {
	return core.NewAliasItemData(core.NewItemStack(m), core.NewBlockValues(states), core.FlagChangedState)
}

func damagedItem(m core.Material, damage int) *core.ItemData {
	stack := core.NewItemStack(m)
	stack.SetDamage(damage)
	return core.NewAliasItemData(stack, nil, core.FlagChangedDurability)
}

func record(item *core.ItemData, singular string) *AliasData {
	return NewAliasData(item, core.MaterialName{Material: item.Material(), Singular: singular, Plural: singular + "s"}, item.Material().Key, nil)
}

func TestAliasesMap_ExactMatch(t *testing.T) {
	m := NewAliasesMap()
	m.Add(record(plainItem(stone), "stone"))
	m.Add(record(stateItem(oakLog, map[string]string{"axis": "y"}), "upright log"))

	tests := []struct {
		name        string
		item        *core.ItemData
		wantQuality core.MatchQuality
		wantName    string
	}{
		{name: "equal plain item", item: plainItem(stone), wantQuality: core.QualityExact, wantName: "stone"},
		{name: "equal block state", item: stateItem(oakLog, map[string]string{"axis": "y"}), wantQuality: core.QualityExact, wantName: "upright log"},
		{name: "conflicting block state", item: stateItem(oakLog, map[string]string{"axis": "x"}), wantQuality: core.QualitySameMaterial},
		{name: "plain log against state", item: plainItem(oakLog), wantQuality: core.QualitySameItem},
		{name: "unknown material", item: plainItem(sword), wantQuality: core.QualityDifferent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.ExactMatch(tt.item)
			assert.Equal(t, tt.wantQuality, got.Quality)
			if tt.wantName == "" {
				assert.False(t, got.Found(), "below exact should carry no record")
				return
			}
			require.True(t, got.Found())
			assert.Equal(t, tt.wantName, got.Data.Name().Singular)
		})
	}
}

func TestAliasesMap_Add_RejectsDuplicates(t *testing.T) {
	m := NewAliasesMap()

	first, added := m.Add(record(plainItem(stone), "stone"))
	require.True(t, added)

	existing, added := m.Add(record(plainItem(stone), "rock"))
	assert.False(t, added)
	assert.Same(t, first, existing)
	assert.Equal(t, 1, m.Len())
}

func TestAliasesMap_MatchAlias(t *testing.T) {
	m := NewAliasesMap()
	m.Add(record(plainItem(oakLog), "log"))
	m.Add(record(stateItem(oakLog, map[string]string{"axis": "y"}), "upright log"))
	m.Add(record(damagedItem(sword, 10), "used sword"))

	t.Run("partial block state prefers the typed record", func(t *testing.T) {
		got := m.MatchAlias(stateItem(oakLog, map[string]string{"axis": "y", "waterlogged": "false"}))
		require.True(t, got.Found())
		assert.Equal(t, core.QualitySameItem, got.Quality)
		assert.Equal(t, "upright log", got.Data.Name().Singular)
	})

	t.Run("conflicting state falls back to default", func(t *testing.T) {
		got := m.MatchAlias(stateItem(oakLog, map[string]string{"axis": "z"}))
		require.True(t, got.Found())
		assert.Equal(t, core.QualitySameItem, got.Quality, "plain log is still a same-item match")
		assert.Equal(t, "log", got.Data.Name().Singular)
	})

	t.Run("no default record", func(t *testing.T) {
		got := m.MatchAlias(damagedItem(sword, 11))
		assert.Equal(t, core.QualitySameMaterial, got.Quality)
		assert.False(t, got.Found())
	})

	t.Run("unknown material", func(t *testing.T) {
		got := m.MatchAlias(plainItem(stone))
		assert.Equal(t, core.QualityDifferent, got.Quality)
		assert.False(t, got.Found())
	})
}

func TestAliasesMap_MatchAlias_TieKeepsFirstRegistered(t *testing.T) {
	m := NewAliasesMap()
	m.Add(record(stateItem(oakLog, map[string]string{"axis": "y"}), "first"))
	m.Add(record(stateItem(oakLog, map[string]string{"lit": "true"}), "second"))
	m.Add(record(stateItem(oakLog, map[string]string{"axis": "y", "lit": "true", "big": "yes"}), "third"))

	// {axis:y, lit:true} is a same-item match of all three records.
	query := stateItem(oakLog, map[string]string{"axis": "y", "lit": "true"})
	for range 5 {
		got := m.MatchAlias(query)
		require.True(t, got.Found())
		assert.Equal(t, core.QualitySameItem, got.Quality)
		assert.Equal(t, "first", got.Data.Name().Singular)
	}
}

func TestAliasesMap_NilItem(t *testing.T) {
	m := NewAliasesMap()
	m.Add(record(plainItem(stone), "stone"))

	for name, got := range map[string]Match{
		"exact": m.ExactMatch(nil),
		"alias": m.MatchAlias(nil),
	} {
		assert.Equal(t, core.QualityDifferent, got.Quality, name)
		assert.False(t, got.Found(), name)
	}
}

func TestAliasesMap_RecordsAndClear(t *testing.T) {
	m := NewAliasesMap()
	m.Add(record(stateItem(oakLog, map[string]string{"axis": "y"}), "upright log"))
	m.Add(record(plainItem(stone), "stone"))
	m.Add(record(plainItem(oakLog), "log"))

	var names []string
	for _, r := range m.Records() {
		names = append(names, r.Name().Singular)
	}
	assert.Equal(t, []string{"upright log", "stone", "log"}, names, "records keep registration order")

	m.Clear()
	assert.Zero(t, m.Len())
	assert.Empty(t, m.Records())
	assert.False(t, m.ExactMatch(plainItem(stone)).Found())
}
