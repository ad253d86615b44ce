package loader

import (
	"errors"
	"testing"

	"github.com/TPGamesNL/Skript/pkg/aliases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groups(defs map[string][]VariationDef) GroupLookup {
	return func(name string) (*aliases.VariationGroup, bool) {
		d, ok := defs[name]
		if !ok {
			return nil, false
		}
		return buildGroup(d), true
	}
}

func TestExpand(t *testing.T) {
	lookup := groups(map[string][]VariationDef{
		"colour": {
			{Key: "white", ID: "white_-"},
			{Key: "red", ID: "red_-"},
		},
		"kind": {
			{Key: "wool", ID: "wool-"},
			{Key: "bed", ID: "bed-", States: map[string]string{"part": "foot"}},
		},
		"axis": {
			{Key: "", States: map[string]string{"axis": "y"}},
			{Key: "sideways", States: map[string]string{"axis": "x"}},
		},
	})

	t.Run("no references", func(t *testing.T) {
		got, err := Expand(AliasDef{Name: "stone", ID: "minecraft:stone"}, lookup)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "stone", got[0].Name)
		assert.Equal(t, "stones", got[0].Plural, "plural defaults to name plus s")
		assert.Equal(t, "minecraft:stone", got[0].Variation.ID)
	})

	t.Run("one group splices ids", func(t *testing.T) {
		got, err := Expand(AliasDef{Name: "{colour} wool", Plural: "{colour} wool", ID: "minecraft:-wool"}, lookup)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "white wool", got[0].Name)
		assert.Equal(t, "minecraft:white_wool", got[0].Variation.ID)
		assert.Equal(t, "red wool", got[1].Name)
		assert.Equal(t, "minecraft:red_wool", got[1].Variation.ID)
	})

	t.Run("two groups are a cartesian product", func(t *testing.T) {
		got, err := Expand(AliasDef{Name: "{colour} {kind}", ID: "minecraft:-"}, lookup)
		require.NoError(t, err)

		var names, ids []string
		for _, e := range got {
			names = append(names, e.Name)
			ids = append(ids, e.Variation.ID)
		}
		assert.Equal(t, []string{"white wool", "white bed", "red wool", "red bed"}, names)
		assert.Equal(t, []string{"minecraft:white_wool", "minecraft:white_bed", "minecraft:red_wool", "minecraft:red_bed"}, ids)
		assert.Equal(t, map[string]string{"part": "foot"}, got[1].Variation.States)
		assert.Equal(t, "white beds", got[1].Plural)
	})

	t.Run("empty key collapses whitespace", func(t *testing.T) {
		got, err := Expand(AliasDef{Name: "{axis} oak log", ID: "minecraft:oak_log"}, lookup)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "oak log", got[0].Name)
		assert.Equal(t, "minecraft:oak_log", got[0].Variation.ID, "groups without ids keep the entry id")
		assert.Equal(t, "sideways oak log", got[1].Name)
		assert.Equal(t, map[string]string{"axis": "x"}, got[1].Variation.States)
	})

	t.Run("entry states win over group states", func(t *testing.T) {
		got, err := Expand(AliasDef{Name: "{axis} log", ID: "minecraft:oak_log", States: map[string]string{"axis": "z"}}, lookup)
		require.NoError(t, err)
		for _, e := range got {
			assert.Equal(t, "z", e.Variation.States["axis"])
		}
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := Expand(AliasDef{Name: "{size} stone", ID: "minecraft:stone"}, lookup)
		var unknown *UnknownGroupError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "size", unknown.Group)
	})
}
