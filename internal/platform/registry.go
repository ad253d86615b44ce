// Package platform provides the platform implementations alias providers
// resolve ids against, and a registry to select them by name.
package platform

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/TPGamesNL/Skript/pkg/spi"
)

// Factory creates a platform. A nil logger means discard.
type Factory func(logger *slog.Logger) (spi.Platform, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a platform factory to the registry.
// A later registration under the same name replaces the earlier one.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// RegisterBuiltins registers the platforms shipped with this module.
// It is safe to call more than once.
func RegisterBuiltins() {
	Register(VanillaName, func(logger *slog.Logger) (spi.Platform, error) {
		return NewVanilla(logger)
	})
}

// Get retrieves a platform factory by name.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// New creates a platform by name.
func New(name string, logger *slog.Logger) (spi.Platform, error) {
	if name == "" {
		return nil, fmt.Errorf("platform not specified")
	}

	factory, ok := Get(name)
	if !ok {
		return nil, &UnknownPlatformError{
			Name:      name,
			Available: List(),
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p, err := factory(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create platform %q: %w", name, err)
	}
	return p, nil
}

// List returns all registered platform names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a platform is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// UnknownPlatformError is returned when an unknown platform is requested.
type UnknownPlatformError struct {
	Name      string
	Available []string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unknown platform %q\nAvailable platforms: %v\nHint: Check platform in skaliases.yaml", e.Name, e.Available)
}
