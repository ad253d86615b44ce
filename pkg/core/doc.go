// Package core defines the shared language of the alias engine.
//
// This package contains:
//   - Item identity types (Material, ItemStack, ItemData, BlockValues)
//   - The MatchQuality ordering used to grade descriptor equivalence
//   - Naming types (AliasName, MaterialName) and related entities
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
