package core

import (
	"fmt"
	"maps"
	"reflect"
)

// =============================================================================
// Material and ItemStack
// =============================================================================

// Material is a platform material handle.
// It is comparable and may be used as a map key.
type Material struct {
	Key       string // namespaced id, e.g. "minecraft:stone"
	Block     bool   // true if the material can be placed as a block
	MaxDamage int    // 0 for items without durability
}

// String returns the material key.
func (m Material) String() string {
	return m.Key
}

// ItemStack is the platform resource an alias descriptor is built from.
type ItemStack struct {
	Material Material
	Damage   int
	Tags     map[string]any
}

// NewItemStack creates an undamaged stack without tags.
func NewItemStack(material Material) ItemStack {
	return ItemStack{Material: material}
}

// SetDamage sets the durability damage of the stack.
func (s *ItemStack) SetDamage(damage int) {
	s.Damage = damage
}

// Clone returns a copy of the stack whose tags, including nested objects
// and lists, can be modified freely.
func (s ItemStack) Clone() ItemStack {
	c := s
	if s.Tags != nil {
		c.Tags = cloneTagMap(s.Tags)
	}
	return c
}

func cloneTagMap(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = cloneTagValue(v)
	}
	return c
}

func cloneTagValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneTagMap(v)
	case []any:
		c := make([]any, len(v))
		for i, e := range v {
			c[i] = cloneTagValue(e)
		}
		return c
	default:
		return v
	}
}

// =============================================================================
// ItemFlags
// =============================================================================

// ItemFlags records which mutations were applied to a descriptor.
type ItemFlags int

// Mutation flags. Each bit is set independently.
const (
	// FlagChangedState marks a descriptor whose block state was changed.
	FlagChangedState ItemFlags = 1 << iota
	// FlagChangedDurability marks a descriptor whose damage was set.
	FlagChangedDurability
	// FlagChangedTags marks a descriptor with applied tag payloads.
	FlagChangedTags
)

// Has reports whether all bits of flag are set.
func (f ItemFlags) Has(flag ItemFlags) bool {
	return f&flag == flag
}

// =============================================================================
// BlockValues
// =============================================================================

// BlockValues holds the block state of a state-bearing descriptor.
type BlockValues interface {
	// States returns a copy of the state map.
	States() map[string]string
	// Match grades how closely other matches these values.
	Match(other BlockValues) MatchQuality
}

// stateValues is the state-map implementation of BlockValues.
type stateValues struct {
	states map[string]string
}

// NewBlockValues creates block values from a state map.
// The map is copied.
func NewBlockValues(states map[string]string) BlockValues {
	return &stateValues{states: maps.Clone(states)}
}

func (v *stateValues) States() map[string]string {
	return maps.Clone(v.states)
}

// Match returns QualityExact for equal states, QualitySameItem when one state
// map is contained in the other and QualitySameMaterial on any conflict.
func (v *stateValues) Match(other BlockValues) MatchQuality {
	if other == nil {
		return QualitySameItem
	}
	theirs := other.States()
	if maps.Equal(v.states, theirs) {
		return QualityExact
	}
	if containsStates(v.states, theirs) || containsStates(theirs, v.states) {
		return QualitySameItem
	}
	return QualitySameMaterial
}

// containsStates reports whether every entry of sub is present in super.
func containsStates(super, sub map[string]string) bool {
	for k, v := range sub {
		if sv, ok := super[k]; !ok || sv != v {
			return false
		}
	}
	return true
}

// =============================================================================
// ItemData
// =============================================================================

// Kind identifies the variant of an ItemData.
type Kind int

// ItemData variants.
const (
	// KindMaterial is a plain material, optionally with damage or tags.
	KindMaterial Kind = iota
	// KindBlockState is a material with block values attached.
	KindBlockState
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindMaterial:
		return "material"
	case KindBlockState:
		return "block_state"
	default:
		return "unknown"
	}
}

// WrongVariantError is returned by typed accessors called on the wrong variant.
type WrongVariantError struct {
	Want Kind
	Got  Kind
}

func (e *WrongVariantError) Error() string {
	return fmt.Sprintf("item data is a %s variant, not %s", e.Got, e.Want)
}

// ItemData is the structural identity of one concrete item.
// It is immutable after construction.
type ItemData struct {
	stack   ItemStack
	block   BlockValues
	flags   ItemFlags
	isAlias bool
}

// NewItemData creates a descriptor. A nil block yields the material variant.
func NewItemData(stack ItemStack, block BlockValues, flags ItemFlags) *ItemData {
	return &ItemData{
		stack: stack.Clone(),
		block: block,
		flags: flags,
	}
}

// NewAliasItemData creates a descriptor marked as defined by an alias.
func NewAliasItemData(stack ItemStack, block BlockValues, flags ItemFlags) *ItemData {
	d := NewItemData(stack, block, flags)
	d.isAlias = true
	return d
}

// Kind returns the variant of the descriptor.
func (d *ItemData) Kind() Kind {
	if d.block != nil {
		return KindBlockState
	}
	return KindMaterial
}

// Material returns the base material.
func (d *ItemData) Material() Material {
	return d.stack.Material
}

// Stack returns a copy of the underlying item stack.
func (d *ItemData) Stack() ItemStack {
	return d.stack.Clone()
}

// Flags returns the applied mutation flags.
func (d *ItemData) Flags() ItemFlags {
	return d.flags
}

// IsAlias reports whether the descriptor was created from an alias definition.
func (d *ItemData) IsAlias() bool {
	return d.isAlias
}

// BlockValues returns the block values of a KindBlockState descriptor.
func (d *ItemData) BlockValues() (BlockValues, error) {
	if d.block == nil {
		return nil, &WrongVariantError{Want: KindBlockState, Got: KindMaterial}
	}
	return d.block, nil
}

// MatchAlias grades how closely other matches this descriptor.
func (d *ItemData) MatchAlias(other *ItemData) MatchQuality {
	if d == other {
		return QualityIdentical
	}
	if d == nil || other == nil {
		return QualityDifferent
	}
	if d.stack.Material != other.stack.Material {
		return QualityDifferent
	}

	quality := QualityExact

	if d.stack.Damage != other.stack.Damage {
		quality = minQuality(quality, QualitySameMaterial)
	}
	if !tagsEqual(d.stack.Tags, other.stack.Tags) {
		quality = minQuality(quality, QualitySameMaterial)
	}
	if d.flags != other.flags {
		quality = minQuality(quality, QualitySameItem)
	}

	switch {
	case d.block == nil && other.block == nil:
	case d.block == nil || other.block == nil:
		quality = minQuality(quality, QualitySameItem)
	default:
		quality = minQuality(quality, d.block.Match(other.block))
	}

	return quality
}

// String returns a short human-readable form of the descriptor.
func (d *ItemData) String() string {
	if d.block != nil {
		return fmt.Sprintf("%s%v", d.stack.Material.Key, d.block.States())
	}
	return d.stack.Material.Key
}

// tagsEqual treats nil and empty tag maps as equal.
func tagsEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
