package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStone = Material{Key: "minecraft:stone", Block: true}
	testLog   = Material{Key: "minecraft:oak_log", Block: true}
	testSword = Material{Key: "minecraft:diamond_sword", MaxDamage: 1561}
)

func stateData(m Material, states map[string]string) *ItemData {
	return NewItemData(NewItemStack(m), NewBlockValues(states), FlagChangedState)
}

func TestItemData_MatchAlias(t *testing.T) {
	damaged := func(damage int) *ItemData {
		s := NewItemStack(testSword)
		s.SetDamage(damage)
		return NewItemData(s, nil, FlagChangedDurability)
	}
	tagged := func(tags map[string]any) *ItemData {
		s := NewItemStack(testSword)
		s.Tags = tags
		return NewItemData(s, nil, FlagChangedTags)
	}
	plain := NewItemData(NewItemStack(testStone), nil, 0)

	tests := []struct {
		name string
		a, b *ItemData
		want MatchQuality
	}{
		{"same pointer", plain, plain, QualityIdentical},
		{"nil other", plain, nil, QualityDifferent},
		{"different material", plain, NewItemData(NewItemStack(testLog), nil, 0), QualityDifferent},
		{"equal plain", plain, NewItemData(NewItemStack(testStone), nil, 0), QualityExact},
		{"alias mark is ignored", plain, NewAliasItemData(NewItemStack(testStone), nil, 0), QualityExact},
		{"equal damage", damaged(5), damaged(5), QualityExact},
		{"different damage", damaged(5), damaged(6), QualitySameMaterial},
		{"damaged against plain", damaged(5), NewItemData(NewItemStack(testSword), nil, 0), QualitySameMaterial},
		{"equal tags", tagged(map[string]any{"a": 1.0}), tagged(map[string]any{"a": 1.0}), QualityExact},
		{"different tags", tagged(map[string]any{"a": 1.0}), tagged(map[string]any{"a": 2.0}), QualitySameMaterial},
		{"nil and empty tags", tagged(nil), tagged(map[string]any{}), QualityExact},
		{"flags only", NewItemData(NewItemStack(testStone), nil, FlagChangedTags), plain, QualitySameItem},
		{"state against plain", stateData(testLog, map[string]string{"axis": "y"}), NewItemData(NewItemStack(testLog), nil, 0), QualitySameItem},
		{"equal states", stateData(testLog, map[string]string{"axis": "y"}), stateData(testLog, map[string]string{"axis": "y"}), QualityExact},
		{"subset states", stateData(testLog, map[string]string{"axis": "y"}), stateData(testLog, map[string]string{"axis": "y", "lit": "true"}), QualitySameItem},
		{"conflicting states", stateData(testLog, map[string]string{"axis": "y"}), stateData(testLog, map[string]string{"axis": "x"}), QualitySameMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.MatchAlias(tt.b))
		})
	}
}

func TestItemData_MatchAlias_Symmetric(t *testing.T) {
	items := []*ItemData{
		NewItemData(NewItemStack(testLog), nil, 0),
		stateData(testLog, map[string]string{"axis": "y"}),
		stateData(testLog, map[string]string{"axis": "x"}),
		stateData(testLog, map[string]string{"axis": "y", "lit": "true"}),
		NewItemData(NewItemStack(testStone), nil, 0),
	}
	for _, a := range items {
		for _, b := range items {
			assert.Equal(t, a.MatchAlias(b), b.MatchAlias(a), "%s vs %s", a, b)
		}
	}
}

func TestItemData_BlockValues(t *testing.T) {
	plain := NewItemData(NewItemStack(testStone), nil, 0)
	assert.Equal(t, KindMaterial, plain.Kind())

	_, err := plain.BlockValues()
	var wrong *WrongVariantError
	require.True(t, errors.As(err, &wrong))
	assert.Equal(t, KindBlockState, wrong.Want)
	assert.Equal(t, KindMaterial, wrong.Got)
	assert.Contains(t, err.Error(), "block_state")

	withState := stateData(testLog, map[string]string{"axis": "y"})
	assert.Equal(t, KindBlockState, withState.Kind())
	block, err := withState.BlockValues()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"axis": "y"}, block.States())
}

func TestItemData_IsImmutable(t *testing.T) {
	states := map[string]string{"axis": "y"}
	stack := NewItemStack(testSword)
	stack.Tags = map[string]any{"a": 1.0}

	d := NewItemData(stack, NewBlockValues(states), FlagChangedState)
	states["axis"] = "x"
	stack.Tags["a"] = 2.0

	block, err := d.BlockValues()
	require.NoError(t, err)
	assert.Equal(t, "y", block.States()["axis"])
	assert.Equal(t, 1.0, d.Stack().Tags["a"])

	out := d.Stack()
	out.Tags["a"] = 3.0
	block.States()["axis"] = "z"
	assert.Equal(t, 1.0, d.Stack().Tags["a"])
	assert.Equal(t, "y", block.States()["axis"])
}

func TestItemData_NestedTagsAreImmutable(t *testing.T) {
	stack := NewItemStack(testSword)
	stack.Tags = map[string]any{
		"display": map[string]any{"Name": "a"},
		"Lore":    []any{"first", map[string]any{"text": "b"}},
	}

	a := NewItemData(stack, nil, FlagChangedTags)
	b := NewItemData(stack, nil, FlagChangedTags)
	require.Equal(t, QualityExact, a.MatchAlias(b))

	stack.Tags["display"].(map[string]any)["Name"] = "input"

	out := a.Stack()
	out.Tags["display"].(map[string]any)["Name"] = "mutated"
	lore := out.Tags["Lore"].([]any)
	lore[0] = "changed"
	lore[1].(map[string]any)["text"] = "changed"

	assert.Equal(t, QualityExact, a.MatchAlias(b))
	got := a.Stack().Tags
	assert.Equal(t, "a", got["display"].(map[string]any)["Name"])
	assert.Equal(t, []any{"first", map[string]any{"text": "b"}}, got["Lore"])
}

func TestItemFlags_Has(t *testing.T) {
	f := FlagChangedState | FlagChangedTags
	assert.True(t, f.Has(FlagChangedState))
	assert.True(t, f.Has(FlagChangedTags))
	assert.True(t, f.Has(FlagChangedState|FlagChangedTags))
	assert.False(t, f.Has(FlagChangedDurability))
	assert.False(t, f.Has(FlagChangedState|FlagChangedDurability))
}

func TestNames(t *testing.T) {
	assert.Equal(t, AliasName{Singular: "sheep", Plural: "sheep"}, NewAliasName("sheep", "", 0))
	assert.Equal(t, "stones", NewAliasName("stone", "stones", 1).Plural)

	n := MaterialName{Material: testStone, Singular: "stone", Plural: "stones"}
	assert.Equal(t, "stones", n.Form(true))
	assert.Equal(t, "stone", n.Form(false))
	assert.Equal(t, "stone", n.String())

	var nilEntity *EntityData
	assert.Empty(t, nilEntity.String())
	assert.Equal(t, "minecraft:pig", (&EntityData{Type: "minecraft:pig", Name: "pig"}).String())
}
