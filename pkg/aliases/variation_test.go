package aliases

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestVariation_InsertID(t *testing.T) {
	tests := []struct {
		name      string
		variation Variation
		inserted  string
		want      string
	}{
		{
			name:      "nothing inserted keeps own id",
			variation: NewVariation("minecraft:-wool", 10, nil, nil),
			inserted:  "",
			want:      "minecraft:-wool",
		},
		{
			name:      "nothing inserted into nothing",
			variation: NewVariation("", -1, nil, nil),
			inserted:  "",
			want:      "",
		},
		{
			name:      "no own fragment takes inserted",
			variation: NewVariation("", -1, nil, nil),
			inserted:  "Y-",
			want:      "Y",
		},
		{
			name:      "no insert point overwrites",
			variation: NewVariation("base", -1, nil, nil),
			inserted:  "Y-",
			want:      "Y",
		},
		{
			name:      "splice replaces placeholder",
			variation: NewVariation("a_b", 1, nil, nil),
			inserted:  "X-",
			want:      "aXb",
		},
		{
			name:      "splice at start",
			variation: NewVariation("-wool", 0, nil, nil),
			inserted:  "white_-",
			want:      "white_wool",
		},
		{
			name:      "splice at end",
			variation: NewVariation("minecraft:oak_-", 14, nil, nil),
			inserted:  "log-",
			want:      "minecraft:oak_log",
		},
		{
			name:      "insert point out of range overwrites",
			variation: NewVariation("abc", 7, nil, nil),
			inserted:  "Z-",
			want:      "Z",
		},
		{
			name:      "multi-byte runes",
			variation: NewVariation("ä-ö", 1, nil, nil),
			inserted:  "ü-",
			want:      "äüö",
		},
		{
			name:      "marker only inserts empty fragment",
			variation: NewVariation("a-b", 1, nil, nil),
			inserted:  "-",
			want:      "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.variation.InsertID(tt.inserted))
		})
	}
}

func TestVariation_Merge(t *testing.T) {
	base := NewVariation("a_b", 1, []string{"t1"}, map[string]string{"k": "v1", "only": "base"})
	other := NewVariation("X-", -1, []string{"t2"}, map[string]string{"k": "v2", "extra": "other"})

	merged := base.Merge(other)

	assert.Equal(t, "aXb", merged.ID)
	assert.Equal(t, -1, merged.InsertPoint, "merged variations have no insert point")
	assert.Equal(t, []string{"t2", "t1"}, merged.Tags, "tags of the argument come first")
	assert.Equal(t, map[string]string{"k": "v1", "only": "base", "extra": "other"}, merged.States,
		"states of the receiver override the argument")

	// Inputs are untouched.
	assert.Equal(t, []string{"t1"}, base.Tags)
	assert.Equal(t, map[string]string{"k": "v2", "extra": "other"}, other.States)
}

func TestVariation_Merge_WithoutIDs(t *testing.T) {
	entry := NewVariation("minecraft:oak_log", -1, nil, map[string]string{"axis": "y"})
	facing := NewVariation("", -1, []string{`{"a":1}`}, map[string]string{"axis": "x", "lit": "true"})

	merged := entry.Merge(facing)

	assert.Equal(t, "minecraft:oak_log", merged.ID, "absent inserted id keeps own id")
	assert.Equal(t, map[string]string{"axis": "y", "lit": "true"}, merged.States)
	assert.Equal(t, []string{`{"a":1}`}, merged.Tags)
}

func TestVariation_WithInsertPoint(t *testing.T) {
	assert.Equal(t, 10, NewVariation("minecraft:-wool", -1, nil, nil).WithInsertPoint(IDMarker).InsertPoint)
	assert.Equal(t, -1, NewVariation("minecraft:stone", 3, nil, nil).WithInsertPoint(IDMarker).InsertPoint)
	assert.Equal(t, 1, NewVariation("ä-", -1, nil, nil).WithInsertPoint(IDMarker).InsertPoint, "index counts runes")
}

func TestVariation_ChainedComposition(t *testing.T) {
	entry := NewVariation("minecraft:-_-", -1, nil, nil).WithInsertPoint(IDMarker)
	colour := NewVariation("red-", -1, nil, nil)
	kind := NewVariation("wool-", -1, nil, nil)

	step := entry.Merge(colour).WithInsertPoint(IDMarker)
	assert.Equal(t, "minecraft:red_-", step.ID)

	final := step.Merge(kind)
	assert.Equal(t, "minecraft:red_wool", final.ID)
}

func TestVariationGroup(t *testing.T) {
	g := NewVariationGroup()
	g.Put("white", NewVariation("white_-", -1, nil, nil))
	g.Put("red", NewVariation("red_-", -1, nil, nil))
	g.Put("white", NewVariation("snow_-", -1, nil, nil))

	assert.Equal(t, 3, g.Len(), "duplicate keys are kept")

	var keys, ids []string
	for key, v := range g.All() {
		keys = append(keys, key)
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"white", "red", "white"}, keys)
	assert.Equal(t, []string{"white_-", "red_-", "snow_-"}, ids)

	var first []string
	for key := range g.All() {
		first = append(first, key)
		break
	}
	assert.Equal(t, []string{"white"}, first)
}

func TestVariation_MergeProperties(t *testing.T) {
	genStrings := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,4}`), 0, 5)
	genStates := rapid.MapOfN(rapid.StringMatching(`[a-c]`), rapid.StringMatching(`[0-9]`), 0, 3)

	rapid.Check(t, func(r *rapid.T) {
		a := NewVariation("", -1, genStrings.Draw(r, "aTags"), genStates.Draw(r, "aStates"))
		b := NewVariation("", -1, genStrings.Draw(r, "bTags"), genStates.Draw(r, "bStates"))

		merged := a.Merge(b)

		if len(merged.Tags) != len(a.Tags)+len(b.Tags) {
			r.Fatalf("merged %d tags, want %d", len(merged.Tags), len(a.Tags)+len(b.Tags))
		}
		for i, tag := range b.Tags {
			if merged.Tags[i] != tag {
				r.Fatalf("tag %d = %q, want %q", i, merged.Tags[i], tag)
			}
		}
		for k, v := range a.States {
			if merged.States[k] != v {
				r.Fatalf("state %q = %q, receiver value %q should win", k, merged.States[k], v)
			}
		}
		for k, v := range b.States {
			if _, overridden := a.States[k]; !overridden && merged.States[k] != v {
				r.Fatalf("state %q = %q, want %q", k, merged.States[k], v)
			}
		}
		if merged.InsertPoint != -1 {
			r.Fatalf("insert point = %d, want -1", merged.InsertPoint)
		}
	})
}

func TestVariation_InsertIDSpliceLength(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		own := rapid.StringMatching(`[a-z_]{1,12}`).Draw(r, "own")
		point := rapid.IntRange(0, utf8.RuneCountInString(own)-1).Draw(r, "point")
		inserted := rapid.StringMatching(`[a-z]{0,6}`).Draw(r, "inserted") + "-"

		got := NewVariation(own, point, nil, nil).InsertID(inserted)

		want := utf8.RuneCountInString(own) - 1 + utf8.RuneCountInString(inserted) - 1
		if utf8.RuneCountInString(got) != want {
			r.Fatalf("InsertID(%q) into %q@%d = %q, want %d runes", inserted, own, point, got, want)
		}
	})
}
