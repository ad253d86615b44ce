package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/TPGamesNL/Skript/pkg/aliases"
	"github.com/TPGamesNL/Skript/pkg/core"
	"golang.org/x/sync/errgroup"
)

// Loader registers definition files with a provider.
type Loader struct {
	provider *aliases.Provider
	strict   bool
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithStrict makes the first failing definition abort the load.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

// WithLogger sets the logger for skipped definitions.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a loader for provider.
func New(provider *aliases.Provider, opts ...Option) *Loader {
	l := &Loader{
		provider: provider,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result summarizes a load.
type Result struct {
	Files      int     // files parsed
	Groups     int     // variation groups registered
	Aliases    int     // expanded aliases registered
	Duplicates int     // expanded names that were already registered
	Skipped    int     // definitions or files skipped in lenient mode
	Errors     []error // errors of skipped definitions
}

// Err joins the errors of skipped definitions, or returns nil.
func (r *Result) Err() error {
	return errors.Join(r.Errors...)
}

// Discover returns the definition files under dirs in lexical order.
func Discover(dirs ...string) ([]string, error) {
	var paths []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != dir && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsDefinitionFile(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan alias directory %s: %w", dir, err)
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// IsDefinitionFile reports whether path has a definition file extension.
func IsDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadDirs discovers and loads every definition file under dirs.
func (l *Loader) LoadDirs(ctx context.Context, dirs ...string) (*Result, error) {
	paths, err := Discover(dirs...)
	if err != nil {
		return nil, err
	}
	return l.LoadFiles(ctx, paths)
}

// LoadFiles parses paths concurrently and registers them in order: the
// variation groups of every file first, then the aliases.
//
// In strict mode the first error is returned. Otherwise failing files and
// definitions are logged, skipped and collected in the result.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) (*Result, error) {
	files, parseErrs, err := parseAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	parsed := make([]*File, 0, len(files))
	for i, f := range files {
		if parseErrs[i] != nil {
			if err := l.skip(result, parseErrs[i], slog.String("file", paths[i])); err != nil {
				return result, err
			}
			continue
		}
		parsed = append(parsed, f)
	}
	result.Files = len(parsed)

	for _, f := range parsed {
		for _, name := range slices.Sorted(maps.Keys(f.Variations)) {
			l.provider.AddVariationGroup(name, buildGroup(f.Variations[name]))
			result.Groups++
		}
	}

	for _, f := range parsed {
		for _, def := range f.Aliases {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := l.register(f, def, result); err != nil {
				return result, err
			}
		}
	}

	l.logger.Debug("aliases loaded",
		slog.Int("files", result.Files),
		slog.Int("groups", result.Groups),
		slog.Int("aliases", result.Aliases),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

// register expands def and adds every resulting alias.
func (l *Loader) register(f *File, def AliasDef, result *Result) error {
	expanded, err := Expand(def, l.provider.VariationGroup)
	if err != nil {
		return l.skip(result, &RegistrationError{File: f.Path, Alias: def.Name, Err: err},
			slog.String("file", f.Path), slog.String("alias", def.Name))
	}

	for _, e := range expanded {
		if _, exists := l.provider.Alias(e.Name); exists {
			result.Duplicates++
		}
		v := e.Variation
		name := core.NewAliasName(e.Name, e.Plural, e.Gender)
		if err := l.provider.AddAlias(name, v.ID, v.Tags, v.States); err != nil {
			err = &RegistrationError{File: f.Path, Alias: e.Name, Err: err}
			if serr := l.skip(result, err, slog.String("file", f.Path), slog.String("alias", e.Name)); serr != nil {
				return serr
			}
			continue
		}
		result.Aliases++
	}
	return nil
}

// skip records err in lenient mode and returns it in strict mode.
func (l *Loader) skip(result *Result, err error, attrs ...any) error {
	if l.strict {
		return err
	}
	result.Skipped++
	result.Errors = append(result.Errors, err)
	l.logger.Warn("skipping alias definition", append(attrs, slog.String("error", err.Error()))...)
	return nil
}

// parseAll parses paths concurrently. Per-file parse errors are returned by
// index; the returned error is only set when ctx is cancelled.
func parseAll(ctx context.Context, paths []string) ([]*File, []error, error) {
	files := make([]*File, len(paths))
	parseErrs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			files[i], parseErrs[i] = ParseFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to parse alias definitions: %w", err)
	}
	return files, parseErrs, nil
}

// buildGroup converts definitions into a variation group.
func buildGroup(defs []VariationDef) *aliases.VariationGroup {
	group := aliases.NewVariationGroup()
	for _, def := range defs {
		group.Put(def.Key, aliases.NewVariation(def.ID, -1, def.Tags, def.States))
	}
	return group
}
