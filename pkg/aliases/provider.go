// Package aliases resolves human-readable alias names to canonical item
// descriptors.
//
// A Provider owns a name → ItemType table, a table of variation groups and a
// canonical AliasesMap. Providers can be chained: lookups that miss locally
// are delegated to the parent, so a child scope can shadow names of its
// parent without modifying it.
//
// Providers are not safe for concurrent mutation. They are filled during a
// sequential load phase and read afterwards; callers that reload while
// reading must synchronize externally.
package aliases

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/TPGamesNL/Skript/pkg/core"
	"github.com/TPGamesNL/Skript/pkg/spi"
)

// RelatedEntityState is the block state key that names a related entity.
// It is consumed during registration and never becomes a block state.
const RelatedEntityState = "relatedEntity"

// Provider provides aliases on top of a platform.
type Provider struct {
	// parent receives lookups that miss locally. Nil for the global provider.
	parent *Provider

	aliases    map[string]*ItemType
	variations map[string]*VariationGroup
	index      *AliasesMap

	// materials seen by this provider, in first-seen order.
	materials    []core.Material
	materialSeen map[core.Material]struct{}

	platform spi.Platform
	logger   *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProvider creates an empty provider. A nil platform is inherited from
// the parent.
func NewProvider(expectedCount int, parent *Provider, platform spi.Platform, opts ...Option) *Provider {
	if platform == nil && parent != nil {
		platform = parent.platform
	}
	p := &Provider{
		parent:       parent,
		aliases:      make(map[string]*ItemType, expectedCount),
		variations:   make(map[string]*VariationGroup, expectedCount/20),
		index:        NewAliasesMap(),
		materialSeen: make(map[core.Material]struct{}),
		platform:     platform,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parent returns the parent provider, or nil.
func (p *Provider) Parent() *Provider {
	return p.parent
}

// Platform returns the platform the provider resolves ids against.
func (p *Provider) Platform() spi.Platform {
	return p.platform
}

// ParseMojangson decodes a structured tag payload into a map.
func (p *Provider) ParseMojangson(raw string) (map[string]any, error) {
	return p.platform.DecodePayload(raw)
}

// AddAlias registers an alias.
//
// If id names a known alias its descriptors are reused. Otherwise id is a
// platform material id; tags and block states are applied and the resulting
// descriptor is deduplicated through the canonical index. The first alias
// registered for an item becomes its canonical name.
//
// A failed call leaves the provider unchanged.
func (p *Provider) AddAlias(name core.AliasName, id string, tags []string, blockStates map[string]string) error {
	typeOfID, known := p.Alias(id)

	var datas []*core.ItemData
	var related *core.EntityData
	var material core.Material
	if known {
		datas = typeOfID.Types()
	} else {
		var ok bool
		material, ok = p.platform.ResolveMaterial(id)
		if !ok {
			return &InvalidMinecraftIDError{Name: name, ID: id}
		}

		states := maps.Clone(blockStates)
		if entityName, ok := states[RelatedEntityState]; ok {
			delete(states, RelatedEntityState)
			related, _ = p.platform.ResolveEntity(entityName)
		}

		data, err := p.buildItemData(material, tags, states)
		if err != nil {
			return fmt.Errorf("failed to build alias %q: %w", name.Singular, err)
		}

		if canonical := p.index.ExactMatch(data); canonical.Found() {
			p.logger.Debug("deduplicated alias item",
				slog.String("alias", name.Singular),
				slog.String("id", id),
				slog.String("canonical", canonical.Data.MinecraftID()))
			data = canonical.Data.Item()
		}
		datas = []*core.ItemData{data}
	}

	if !known {
		if _, seen := p.materialSeen[material]; !seen {
			p.materialSeen[material] = struct{}{}
			p.materials = append(p.materials, material)
		}
		data := datas[0]
		materialName := core.MaterialName{
			Material: data.Material(),
			Singular: name.Singular,
			Plural:   name.Plural,
			Gender:   name.Gender,
		}
		p.index.Add(NewAliasData(data, materialName, id, related))
	}

	p.mergeGroup(name, datas)
	return nil
}

// buildItemData applies tags and states to a fresh stack of material.
func (p *Provider) buildItemData(material core.Material, tags []string, states map[string]string) (*core.ItemData, error) {
	stack := core.NewItemStack(material)
	var flags core.ItemFlags
	if len(tags) > 0 {
		var err error
		flags, err = ApplyTags(p.platform, &stack, tags)
		if err != nil {
			return nil, err
		}
	}

	block, err := p.platform.CreateBlockValues(material, states, &stack, flags)
	if err != nil {
		return nil, fmt.Errorf("failed to create block values: %w", err)
	}
	if block != nil {
		flags |= core.FlagChangedState
	}
	return core.NewAliasItemData(stack, block, flags), nil
}

// mergeGroup adds datas to the group registered under name, creating the
// group under both name forms if neither exists.
func (p *Provider) mergeGroup(name core.AliasName, datas []*core.ItemData) {
	group, ok := p.aliases[name.Singular]
	if !ok {
		group, ok = p.aliases[name.Plural]
	}
	if !ok {
		group = &ItemType{}
		p.aliases[name.Singular] = group
		p.aliases[name.Plural] = group
	}
	group.merge(datas)
}

// AddVariationGroup stores a variation group under name.
func (p *Provider) AddVariationGroup(name string, group *VariationGroup) {
	p.variations[name] = group
}

// VariationGroup returns the variation group stored under name.
// Only this provider is searched.
func (p *Provider) VariationGroup(name string) (*VariationGroup, bool) {
	g, ok := p.variations[name]
	return g, ok
}

// Alias returns the group registered under alias, searching parents when
// this provider has none.
func (p *Provider) Alias(alias string) (*ItemType, bool) {
	for cur := p; cur != nil; cur = cur.parent {
		if t, ok := cur.aliases[alias]; ok {
			return t, true
		}
	}
	return nil, false
}

// AliasData returns the canonical record for item, searching parents when
// this provider has none.
func (p *Provider) AliasData(item *core.ItemData) (*AliasData, bool) {
	for cur := p; cur != nil; cur = cur.parent {
		if m := cur.index.MatchAlias(item); m.Found() {
			return m.Data, true
		}
	}
	return nil, false
}

// MinecraftID returns the id the canonical record of item was defined with.
func (p *Provider) MinecraftID(item *core.ItemData) (string, bool) {
	data, ok := p.AliasData(item)
	if !ok {
		return "", false
	}
	return data.MinecraftID(), true
}

// MaterialName returns the canonical display name of item.
func (p *Provider) MaterialName(item *core.ItemData) (core.MaterialName, bool) {
	data, ok := p.AliasData(item)
	if !ok {
		return core.MaterialName{}, false
	}
	return data.Name(), true
}

// RelatedEntity returns the entity related to item.
func (p *Provider) RelatedEntity(item *core.ItemData) (*core.EntityData, bool) {
	data, ok := p.AliasData(item)
	if !ok || data.RelatedEntity() == nil {
		return nil, false
	}
	return data.RelatedEntity(), true
}

// HasAliasForMaterial reports whether this provider registered an alias for
// material. Parents are not consulted.
func (p *Provider) HasAliasForMaterial(material core.Material) bool {
	_, ok := p.materialSeen[material]
	return ok
}

// Materials returns the materials this provider registered aliases for.
func (p *Provider) Materials() []core.Material {
	return slices.Clone(p.materials)
}

// ClearAliases removes every alias, variation group and canonical record.
func (p *Provider) ClearAliases() {
	clear(p.aliases)
	clear(p.variations)
	p.index.Clear()
	p.materials = nil
	clear(p.materialSeen)
}

// AliasCount returns the number of alias names, counting singular and
// plural forms separately.
func (p *Provider) AliasCount() int {
	return len(p.aliases)
}

// Names returns the local alias names in sorted order.
func (p *Provider) Names() []string {
	return slices.Sorted(maps.Keys(p.aliases))
}

// Records returns the local canonical records in registration order.
func (p *Provider) Records() []*AliasData {
	return p.index.Records()
}
