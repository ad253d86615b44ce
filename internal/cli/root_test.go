package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/TPGamesNL/Skript/internal/cli/commands"
	"github.com/TPGamesNL/Skript/internal/cli/testutil"
	"github.com/TPGamesNL/Skript/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	platform.RegisterBuiltins()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	root := NewRootCmd()
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Subcommands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"check", "lookup", "match", "list", "repl", "export", "watch", "version", "completion"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "alias-dir", "language", "platform", "strict", "catalog", "debounce", "log-level", "verbose", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRoot_LookupWithFlags(t *testing.T) {
	project := testutil.SetupAliasProject(t, false)
	t.Chdir(t.TempDir())

	out, _, err := runRoot(t, "--alias-dir", filepath.Join(project, "aliases"), "-o", "json", "lookup", "red wool")
	require.NoError(t, err)

	var results []commands.LookupResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "minecraft:red_wool", results[0].Items[0].MinecraftID)
}

func TestRoot_ConfigFile(t *testing.T) {
	project := testutil.SetupAliasProject(t, false)
	require.NoError(t, os.WriteFile(filepath.Join(project, "skaliases.yaml"),
		[]byte("alias_dirs: [aliases]\noutput: markdown\n"), 0o600))
	t.Chdir(project)

	out, _, err := runRoot(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "- **Aliases**: 9")
}

func TestRoot_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := runRoot(t, "-o", "xml", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRoot_UnknownPlatform(t *testing.T) {
	project := testutil.SetupAliasProject(t, false)
	t.Chdir(project)

	_, _, err := runRoot(t, "--platform", "bedrock", "check")
	require.Error(t, err)
	var unknown *platform.UnknownPlatformError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bedrock", unknown.Name)
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "skaliases")

	_, _, err = runRoot(t, "completion", "tcsh")
	require.Error(t, err)
}
