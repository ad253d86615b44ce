package catalog

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/TPGamesNL/Skript/pkg/aliases"
	"github.com/TPGamesNL/Skript/pkg/core"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Snapshot is a point-in-time copy of one provider's tables.
type Snapshot struct {
	ID         string
	CreatedAt  time.Time
	Platform   string
	Generation uint64
	Records    []Record
	Aliases    []Alias
}

// Record is one canonical item.
type Record struct {
	Seq           int
	MinecraftID   string
	Material      string
	Kind          string
	Singular      string
	Plural        string
	Gender        int
	Damage        int
	States        string // JSON object, empty when the item has no block values
	Tags          string // JSON object, empty when the item has no tags
	Flags         int
	RelatedEntity string
}

// Alias is one alias name and the items it resolves to.
type Alias struct {
	Name      string
	ItemCount int
	Materials []string
}

// NewSnapshot captures the local tables of p. Parent providers are not
// included.
func NewSnapshot(p *aliases.Provider, generation uint64) (*Snapshot, error) {
	snap := &Snapshot{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Generation: generation,
	}
	if platform := p.Platform(); platform != nil {
		snap.Platform = platform.Name()
	}

	for i, data := range p.Records() {
		rec, err := newRecord(i, data)
		if err != nil {
			return nil, err
		}
		snap.Records = append(snap.Records, rec)
	}

	for _, name := range p.Names() {
		t, ok := p.Alias(name)
		if !ok {
			continue
		}
		var materials []string
		for _, item := range t.Types() {
			materials = append(materials, item.Material().Key)
		}
		slices.Sort(materials)
		snap.Aliases = append(snap.Aliases, Alias{
			Name:      name,
			ItemCount: t.Len(),
			Materials: slices.Compact(materials),
		})
	}
	return snap, nil
}

func newRecord(seq int, data *aliases.AliasData) (Record, error) {
	item := data.Item()
	stack := item.Stack()
	name := data.Name()

	rec := Record{
		Seq:         seq,
		MinecraftID: data.MinecraftID(),
		Material:    item.Material().Key,
		Kind:        item.Kind().String(),
		Singular:    name.Singular,
		Plural:      name.Plural,
		Gender:      name.Gender,
		Damage:      stack.Damage,
		Flags:       int(item.Flags()),
	}
	if entity := data.RelatedEntity(); entity != nil {
		rec.RelatedEntity = entity.Type
	}

	if item.Kind() == core.KindBlockState {
		block, err := item.BlockValues()
		if err != nil {
			return Record{}, err
		}
		states, err := encodeJSON(block.States())
		if err != nil {
			return Record{}, fmt.Errorf("failed to encode states of %s: %w", rec.MinecraftID, err)
		}
		rec.States = states
	}
	if len(stack.Tags) > 0 {
		tags, err := encodeJSON(stack.Tags)
		if err != nil {
			return Record{}, fmt.Errorf("failed to encode tags of %s: %w", rec.MinecraftID, err)
		}
		rec.Tags = tags
	}
	return rec, nil
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MaterialList joins the materials of an alias for storage.
func (a Alias) MaterialList() string {
	return strings.Join(a.Materials, ",")
}
