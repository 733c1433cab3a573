package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mindlayout/pkg/errors"
)

func TestMarginLookup(t *testing.T) {
	th := Default()

	assert.Equal(t, 100.0, th.MarginX(1))
	assert.Equal(t, 40.0, th.MarginY(1))
	assert.Equal(t, 50.0, th.MarginX(2))
	assert.Equal(t, 10.0, th.MarginY(7))
	assert.Equal(t, th.DefaultMargin, th.Margin(-1))
}

func TestUniform(t *testing.T) {
	th := Uniform(30, 20)
	for layer := 0; layer < 5; layer++ {
		assert.Equal(t, 30.0, th.MarginX(layer))
		assert.Equal(t, 20.0, th.MarginY(layer))
	}
}

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
line_style = "curve"
expand_btn_size = 16

[default_margin]
x = 60
y = 8

[colors]
line = "#ff0000"
`)
	th, err := Parse(data, "toml")
	require.NoError(t, err)

	assert.Equal(t, LineCurve, th.LineStyle)
	assert.Equal(t, 16.0, th.ExpandBtnSize)
	assert.Equal(t, Margin{X: 60, Y: 8}, th.DefaultMargin)
	assert.Equal(t, "#ff0000", th.Colors.Line)
	// Unset fields come from the defaults.
	assert.Equal(t, Default().Colors.NodeFill, th.Colors.NodeFill)
	assert.Equal(t, Default().Margins, th.Margins)
	assert.Equal(t, Default().FontSize, th.FontSize)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
line_style: direct
node_use_line_style: true
margins:
  - {x: 0, y: 0}
  - {x: 80, y: 30}
`)
	th, err := Parse(data, "yaml")
	require.NoError(t, err)

	assert.Equal(t, LineDirect, th.LineStyle)
	assert.True(t, th.NodeUseLineStyle)
	assert.Equal(t, 80.0, th.MarginX(1))
	assert.Equal(t, Default().DefaultMargin, th.DefaultMargin)
}

func TestParseJSON(t *testing.T) {
	th, err := Parse([]byte(`{"line_style":"straight","font_size":18}`), "json")
	require.NoError(t, err)
	assert.Equal(t, 18.0, th.FontSize)
}

func TestParseKeepsExplicitZero(t *testing.T) {
	tests := []struct {
		format string
		data   string
	}{
		{"toml", "expand_btn_size = 0\n[default_margin]\nx = 0\ny = 5\n"},
		{"yaml", "expand_btn_size: 0\ndefault_margin: {x: 0, y: 5}\n"},
		{"json", `{"expand_btn_size": 0, "default_margin": {"x": 0, "y": 5}}`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			th, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Zero(t, th.ExpandBtnSize)
			assert.Equal(t, Margin{X: 0, Y: 5}, th.DefaultMargin)
			assert.Equal(t, Default().GeneralizationNodeMargin, th.GeneralizationNodeMargin)
		})
	}
}

func TestWithDefaultsFillsZeroFields(t *testing.T) {
	th, err := WithDefaults(Theme{LineStyle: LineCurve})
	require.NoError(t, err)
	assert.Equal(t, LineCurve, th.LineStyle)
	assert.Equal(t, Default().ExpandBtnSize, th.ExpandBtnSize)
	assert.Equal(t, Default().Colors, th.Colors)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"bad line style", `line_style = "wavy"`, "toml"},
		{"negative margin", "default_margin:\n  x: -1\n  y: 2\n", "yaml"},
		{"negative table margin", "margins:\n  - {x: 1, y: -3}\n", "yaml"},
		{"malformed toml", `line_style = `, "toml"},
		{"unknown format", `{}`, "ini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidTheme), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yml")
	require.NoError(t, os.WriteFile(path, []byte("expand_btn_size: 12\n"), 0o644))

	th, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12.0, th.ExpandBtnSize)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	require.NoError(t, err)

	th, err := Parse(data, "toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), th)
}
