// Package spi provides Service Provider Interface types for platform
// collaborators of the alias provider, so platforms can be implemented
// without depending on the alias engine itself.
package spi

import "github.com/TPGamesNL/Skript/pkg/core"

// MaterialResolver maps raw platform ids to materials.
type MaterialResolver interface {
	// ResolveMaterial returns the material for id and true,
	// or false if the platform does not recognize the id.
	ResolveMaterial(id string) (core.Material, bool)
}

// ResourceConstructor builds platform state values for a descriptor.
type ResourceConstructor interface {
	// CreateBlockValues converts block states into platform block values.
	// A nil result means the descriptor carries no block state.
	CreateBlockValues(material core.Material, states map[string]string, stack *core.ItemStack, flags core.ItemFlags) (core.BlockValues, error)
}

// TagApplier applies opaque tag payloads to item stacks.
type TagApplier interface {
	// ApplyTag applies one tag payload and returns the mutation flags it caused.
	ApplyTag(stack *core.ItemStack, tag string) (core.ItemFlags, error)
}

// EntityResolver resolves related entity names.
type EntityResolver interface {
	// ResolveEntity returns the entity for name and true, or false if unknown.
	ResolveEntity(name string) (*core.EntityData, bool)
}

// PayloadDecoder decodes structured tag payloads.
type PayloadDecoder interface {
	DecodePayload(raw string) (map[string]any, error)
}

// Platform bundles every collaborator an alias provider needs.
type Platform interface {
	MaterialResolver
	ResourceConstructor
	TagApplier
	EntityResolver
	PayloadDecoder

	// Name returns the registry name of the platform.
	Name() string
}
