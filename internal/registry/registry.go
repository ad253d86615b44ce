// Package registry holds the loaded global alias provider and the script
// scopes derived from it, and synchronizes access to them.
//
// Providers themselves are not safe for concurrent use. The registry takes a
// write lock for every mutation and a read lock for every lookup, and hands
// out snapshots rather than live groups.
package registry

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/TPGamesNL/Skript/pkg/aliases"
	"github.com/TPGamesNL/Skript/pkg/core"
)

// scopeCapacity is the expected alias count of a script scope.
const scopeCapacity = 16

// Registry maps scope names to providers. The empty scope name is the
// global provider.
type Registry struct {
	mu sync.RWMutex

	global *aliases.Provider

	// scopes maps script names to child providers of global.
	scopes map[string]*aliases.Provider

	// generation is incremented by every Swap.
	generation uint64

	logger *slog.Logger
}

// New creates a registry around a loaded global provider.
func New(global *aliases.Provider, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		global: global,
		scopes: make(map[string]*aliases.Provider),
		logger: logger,
	}
}

// Global returns the global provider.
func (r *Registry) Global() *aliases.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.global
}

// Generation returns the number of swaps so far.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation
}

// Swap replaces the global provider and drops every scope, since their
// parent is gone. The previous provider is returned.
func (r *Registry) Swap(global *aliases.Provider) *aliases.Provider {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.global
	dropped := len(r.scopes)
	r.global = global
	r.scopes = make(map[string]*aliases.Provider)
	r.generation++

	r.logger.Info("alias provider swapped",
		slog.Uint64("generation", r.generation),
		slog.Int("aliases", global.AliasCount()),
		slog.Int("dropped_scopes", dropped))
	return old
}

// Define runs fn with the provider of scope under the write lock, creating
// the scope as a child of the global provider if needed.
func (r *Registry) Define(scope string, fn func(p *aliases.Provider) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.scopeLocked(scope))
}

// DropScope removes a scope. Dropping an unknown scope is a no-op.
func (r *Registry) DropScope(scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scopes, scope)
}

// Scopes returns the names of all scopes (sorted).
func (r *Registry) Scopes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.scopes))
}

// Resolve returns the descriptors registered under name in scope. Unknown
// scopes resolve against the global provider.
func (r *Registry) Resolve(scope, name string) ([]*core.ItemData, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.providerLocked(scope).Alias(name)
	if !ok {
		return nil, false
	}
	return it.Types(), true
}

// Resolution is the result of resolving one name.
type Resolution struct {
	Name  string
	Items []*core.ItemData
}

// ResolveAll resolves names in scope. Found names are returned in input
// order, deduplicated; unknown names are returned separately.
func (r *Registry) ResolveAll(scope string, names []string) (found []Resolution, unknown []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.providerLocked(scope)
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if it, ok := p.Alias(name); ok {
			found = append(found, Resolution{Name: name, Items: it.Types()})
		} else {
			unknown = append(unknown, name)
		}
	}
	return found, unknown
}

// Describe returns the canonical record of item as seen from scope.
func (r *Registry) Describe(scope string, item *core.ItemData) (*aliases.AliasData, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providerLocked(scope).AliasData(item)
}

// Names returns the alias names visible in scope, local names first.
func (r *Registry) Names(scope string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	seen := make(map[string]struct{})
	for p := r.providerLocked(scope); p != nil; p = p.Parent() {
		for _, name := range p.Names() {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	return names
}

// Count returns the number of alias names of the global provider.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.global.AliasCount()
}

// providerLocked returns the provider of scope, or global if the scope does
// not exist. r.mu must be held.
func (r *Registry) providerLocked(scope string) *aliases.Provider {
	if p, ok := r.scopes[scope]; ok {
		return p
	}
	return r.global
}

// scopeLocked returns the provider of scope, creating it if needed.
// r.mu must be held for writing.
func (r *Registry) scopeLocked(scope string) *aliases.Provider {
	if scope == "" {
		return r.global
	}
	if p, ok := r.scopes[scope]; ok {
		return p
	}
	p := aliases.NewProvider(scopeCapacity, r.global, nil, aliases.WithLogger(r.logger))
	r.scopes[scope] = p
	r.logger.Debug("created alias scope", slog.String("scope", scope))
	return p
}
