package platform

import (
	_ "embed"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/TPGamesNL/Skript/pkg/core"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// VanillaName is the registry name of the vanilla platform.
const VanillaName = "vanilla"

// DefaultNamespace is prepended to ids given without a namespace.
const DefaultNamespace = "minecraft"

var (
	//go:embed data/materials.yaml
	materialsYAML []byte

	//go:embed data/entities.yaml
	entitiesYAML []byte
)

type materialTable struct {
	Materials []materialDef `yaml:"materials"`
}

type materialDef struct {
	ID        string              `yaml:"id"`
	Block     bool                `yaml:"block"`
	MaxDamage int                 `yaml:"max_damage"`
	States    map[string][]string `yaml:"states"`
}

type entityTable struct {
	Entities []string `yaml:"entities"`
}

// knownMaterial is a material with the block states it accepts.
type knownMaterial struct {
	material core.Material
	states   map[string][]string
}

// Vanilla is the built-in platform backed by embedded material and entity
// tables.
type Vanilla struct {
	materials map[string]knownMaterial
	entities  map[string]struct{}
	logger    *slog.Logger
}

// NewVanilla creates the vanilla platform from its embedded tables.
func NewVanilla(logger *slog.Logger) (*Vanilla, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var mt materialTable
	if err := yaml.Unmarshal(materialsYAML, &mt); err != nil {
		return nil, fmt.Errorf("failed to decode material table: %w", err)
	}
	var et entityTable
	if err := yaml.Unmarshal(entitiesYAML, &et); err != nil {
		return nil, fmt.Errorf("failed to decode entity table: %w", err)
	}

	v := &Vanilla{
		materials: make(map[string]knownMaterial, len(mt.Materials)),
		entities:  make(map[string]struct{}, len(et.Entities)),
		logger:    logger,
	}
	for _, def := range mt.Materials {
		key := NormalizeID(def.ID)
		if _, dup := v.materials[key]; dup {
			return nil, fmt.Errorf("duplicate material %q in material table", key)
		}
		v.materials[key] = knownMaterial{
			material: core.Material{Key: key, Block: def.Block, MaxDamage: def.MaxDamage},
			states:   def.States,
		}
	}
	for _, id := range et.Entities {
		v.entities[NormalizeID(id)] = struct{}{}
	}

	logger.Debug("vanilla platform loaded",
		slog.Int("materials", len(v.materials)),
		slog.Int("entities", len(v.entities)))
	return v, nil
}

// NormalizeID lower-cases id and adds the default namespace if it has none.
func NormalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" || strings.Contains(id, ":") {
		return id
	}
	return DefaultNamespace + ":" + id
}

// Name returns the registry name of the platform.
func (v *Vanilla) Name() string {
	return VanillaName
}

// ResolveMaterial looks up a material by id.
func (v *Vanilla) ResolveMaterial(id string) (core.Material, bool) {
	known, ok := v.materials[NormalizeID(id)]
	if !ok {
		return core.Material{}, false
	}
	return known.material, true
}

// Materials returns every known material, sorted by key.
func (v *Vanilla) Materials() []core.Material {
	out := make([]core.Material, 0, len(v.materials))
	for _, key := range slices.Sorted(maps.Keys(v.materials)) {
		out = append(out, v.materials[key].material)
	}
	return out
}

// CreateBlockValues validates states against the material and returns block
// values for them. Non-block materials and empty states yield nil.
func (v *Vanilla) CreateBlockValues(material core.Material, states map[string]string, _ *core.ItemStack, _ core.ItemFlags) (core.BlockValues, error) {
	if !material.Block || len(states) == 0 {
		return nil, nil
	}

	known := v.materials[material.Key]
	for _, key := range slices.Sorted(maps.Keys(states)) {
		allowed, ok := known.states[key]
		if !ok || !slices.Contains(allowed, states[key]) {
			return nil, &InvalidStateError{
				Material: material.Key,
				Key:      key,
				Value:    states[key],
				Allowed:  allowed,
			}
		}
	}
	return core.NewBlockValues(states), nil
}

// ApplyTag decodes a JSON tag payload and merges it into the stack tags.
func (v *Vanilla) ApplyTag(stack *core.ItemStack, tag string) (core.ItemFlags, error) {
	payload, err := v.DecodePayload(tag)
	if err != nil {
		return 0, err
	}
	if len(payload) == 0 {
		return 0, nil
	}
	if stack.Tags == nil {
		stack.Tags = make(map[string]any, len(payload))
	}
	mergeTags(stack.Tags, payload)
	return core.FlagChangedTags, nil
}

// DecodePayload decodes a JSON object.
func (v *Vanilla) DecodePayload(raw string) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode payload %q: %w", raw, err)
	}
	return out, nil
}

// ResolveEntity looks up an entity type by name. Spaces in name are read
// as underscores.
func (v *Vanilla) ResolveEntity(name string) (*core.EntityData, bool) {
	id := NormalizeID(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	if _, ok := v.entities[id]; !ok {
		return nil, false
	}
	return &core.EntityData{Type: id, Name: name}, true
}

// mergeTags deep-merges src into dst. Nested objects are merged key by key;
// every other value in src replaces the one in dst.
func mergeTags(dst, src map[string]any) {
	for k, sv := range src {
		srcMap, srcIsMap := sv.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			merged := maps.Clone(dstMap)
			mergeTags(merged, srcMap)
			dst[k] = merged
			continue
		}
		dst[k] = sv
	}
}

// InvalidStateError is returned for a block state the material does not accept.
type InvalidStateError struct {
	Material string
	Key      string
	Value    string
	Allowed  []string
}

func (e *InvalidStateError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("%s has no block state %q", e.Material, e.Key)
	}
	return fmt.Sprintf("invalid value %q for block state %q of %s (allowed: %s)",
		e.Value, e.Key, e.Material, strings.Join(e.Allowed, ", "))
}
