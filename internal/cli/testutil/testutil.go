// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/TPGamesNL/Skript/internal/cli/config"
	"github.com/TPGamesNL/Skript/internal/cli/output"
)

// Definition files of the alias fixture project.
const (
	fixtureBlocks = `variations:
  colour:
    - {key: white, id: white_-}
    - {key: red, id: red_-}
  axis:
    - {key: upright, states: {axis: y}}
    - {key: sideways, states: {axis: x}}
aliases:
  - {name: stone, id: "minecraft:stone"}
  - {name: "{colour} wool", id: "minecraft:-wool"}
  - {name: oak log, id: "minecraft:oak_log"}
  - {name: "{axis} oak log", id: "minecraft:oak_log"}
`
	fixtureItems = `aliases:
  - {name: pig spawn egg, id: "minecraft:pig_spawn_egg", states: {relatedEntity: pig}}
  - {name: diamond sword, id: "minecraft:diamond_sword"}
  - {name: rock, id: stone}
`
	fixtureBroken = `aliases:
  - {name: ruby, id: "minecraft:ruby"}
`
)

// SetupAliasProject creates a temporary project with an aliases/en
// directory holding valid definitions. With broken set, a definition with
// an unknown id is added.
func SetupAliasProject(t *testing.T, broken bool) string {
	t.Helper()

	tmpDir := t.TempDir()
	langDir := filepath.Join(tmpDir, "aliases", "en")
	if err := os.MkdirAll(langDir, 0o750); err != nil {
		t.Fatalf("failed to create directory %s: %v", langDir, err)
	}

	files := map[string]string{
		"blocks.yaml": fixtureBlocks,
		"items.yml":   fixtureItems,
	}
	if broken {
		files["broken.yaml"] = fixtureBroken
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(langDir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererAuto creates a new test renderer with auto mode detection.
// In tests, non-TTY defaults to markdown output.
func NewTestRendererAuto() *TestRenderer {
	return NewTestRenderer(output.ModeAuto, false)
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the combined stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	// Check for balanced code fences
	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	// Check that headers have content
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}

// AssertOutputMode checks that the renderer output matches expected mode characteristics.
func AssertOutputMode(t *testing.T, tr *TestRenderer, expectedMode output.OutputMode) {
	t.Helper()

	combinedOutput := tr.Output() + tr.ErrorOutput()

	switch expectedMode {
	case output.ModeMarkdown:
		AssertNoANSI(t, combinedOutput)
		// Markdown mode should not contain ANSI codes
	case output.ModeText:
		// Text mode may contain ANSI codes if TTY
		// No specific assertion needed
	case output.ModeJSON:
		AssertNoANSI(t, combinedOutput)
		// JSON mode should not contain ANSI codes
	}
}

// NewTestConfig returns a config for the fixture project at root.
func NewTestConfig(root string, mode output.OutputMode) *config.Config {
	cfg := config.Default()
	cfg.AliasDirs = []string{filepath.Join(root, "aliases")}
	cfg.Output = string(mode)
	cfg.Catalog.Path = filepath.Join(root, ".skaliases", "catalog.db")
	return cfg
}
