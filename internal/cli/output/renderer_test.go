package output

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newBuffered(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{"", false, ModeMarkdown},
		{ModeText, false, ModeText},
		{ModeMarkdown, true, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+map[bool]string{true: "tty", false: "pipe"}[tt.isTTY], func(t *testing.T) {
			r, _, _ := newBuffered(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTerminal(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_PipedOutputHasNoANSI(t *testing.T) {
	r, out, errOut := newBuffered(ModeText, false)
	r.Header(1, "Aliases")
	r.Success("loaded")
	r.Muted("quiet")
	r.Warning("careful")
	r.Error("broken")
	r.StatusLine("stone", "success", "minecraft:stone")

	assert.False(t, ansiPattern.MatchString(out.String()+errOut.String()))
	assert.Contains(t, out.String(), "✓ loaded")
	assert.Contains(t, errOut.String(), "! careful")
	assert.Contains(t, errOut.String(), "✗ broken")
	assert.Contains(t, out.String(), "stone (minecraft:stone)")
}

func TestRenderer_MarkdownHeaderAndStatus(t *testing.T) {
	r, out, _ := newBuffered(ModeMarkdown, false)
	r.Header(2, "Files")
	r.StatusLine("a.yaml", "failed", "")

	assert.Equal(t, "## Files\n\n- failed: a.yaml\n", out.String())
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newBuffered(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]any{"name": "stone", "count": 2}))
	assert.Equal(t, "{\n  \"count\": 2,\n  \"name\": \"stone\"\n}\n", out.String())
}

func TestRenderer_Table(t *testing.T) {
	headers := []string{"Name", "ID"}
	rows := [][]string{{"stone", "minecraft:stone"}, {"dirt", "minecraft:dirt"}}

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newBuffered(ModeMarkdown, false)
		r.Table(headers, rows)
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "| Name | ID |", lines[0])
		assert.Contains(t, lines[2], "| stone | minecraft:stone |")
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newBuffered(ModeText, false)
		r.Table(headers, rows)
		assert.Contains(t, out.String(), "┌")
		assert.Contains(t, out.String(), "minecraft:dirt")
	})

	t.Run("empty", func(t *testing.T) {
		r, out, _ := newBuffered(ModeText, false)
		r.Table(headers, nil)
		assert.Equal(t, "(0 rows)\n", out.String())
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(1, "Title"))
	assert.Equal(t, "### Sub", FormatHeader(3, "Sub"))
	assert.Equal(t, "# Low", FormatHeader(0, "Low"))
	assert.Equal(t, "###### Deep", FormatHeader(9, "Deep"))
	assert.Equal(t, "- **ID**: minecraft:stone", FormatKeyValue("ID", "minecraft:stone"))
}
