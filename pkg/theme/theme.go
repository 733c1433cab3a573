// Package theme holds the visual configuration consumed by the layout
// engine and the sinks: the per-layer margin table, the connector style and
// the sizes of auxiliary elements, plus the colors used when drawing.
//
// A [Theme] is an immutable value once loaded. [Load] reads a TOML or YAML
// file on top of [Default] and validates the result.
package theme

// LineStyle selects the connector geometry.
type LineStyle string

// Connector styles.
const (
	LineStraight LineStyle = "straight"
	LineDirect   LineStyle = "direct"
	LineCurve    LineStyle = "curve"
)

// LineStyles lists the supported connector styles.
var LineStyles = []LineStyle{LineStraight, LineDirect, LineCurve}

// Margin is the spacing used for one layer: X along the growth axis of
// horizontal trees, Y between siblings.
type Margin struct {
	X float64 `json:"x" toml:"x" yaml:"x" validate:"gte=0"`
	Y float64 `json:"y" toml:"y" yaml:"y" validate:"gte=0"`
}

// Theme is the layout and drawing configuration.
type Theme struct {
	// Margins holds explicit margins per layer index. Layers beyond the
	// table use DefaultMargin.
	Margins       []Margin `json:"margins,omitempty" toml:"margins" yaml:"margins,omitempty" validate:"dive"`
	DefaultMargin Margin   `json:"default_margin" toml:"default_margin" yaml:"default_margin"`

	LineStyle        LineStyle `json:"line_style" toml:"line_style" yaml:"line_style" validate:"oneof=straight direct curve"`
	NodeUseLineStyle bool      `json:"node_use_line_style,omitempty" toml:"node_use_line_style" yaml:"node_use_line_style,omitempty"`

	ExpandBtnSize            float64 `json:"expand_btn_size" toml:"expand_btn_size" yaml:"expand_btn_size" validate:"gte=0"`
	GeneralizationLineMargin float64 `json:"generalization_line_margin" toml:"generalization_line_margin" yaml:"generalization_line_margin" validate:"gte=0"`
	GeneralizationNodeMargin float64 `json:"generalization_node_margin" toml:"generalization_node_margin" yaml:"generalization_node_margin" validate:"gte=0"`

	Colors    Colors  `json:"colors" toml:"colors" yaml:"colors"`
	FontSize  float64 `json:"font_size" toml:"font_size" yaml:"font_size" validate:"gt=0"`
	LineWidth float64 `json:"line_width" toml:"line_width" yaml:"line_width" validate:"gt=0"`
}

// Colors are CSS color strings used by the sinks.
type Colors struct {
	Background     string `json:"background" toml:"background" yaml:"background" validate:"required"`
	Line           string `json:"line" toml:"line" yaml:"line" validate:"required"`
	RootFill       string `json:"root_fill" toml:"root_fill" yaml:"root_fill" validate:"required"`
	NodeFill       string `json:"node_fill" toml:"node_fill" yaml:"node_fill" validate:"required"`
	NodeStroke     string `json:"node_stroke" toml:"node_stroke" yaml:"node_stroke" validate:"required"`
	RootText       string `json:"root_text" toml:"root_text" yaml:"root_text" validate:"required"`
	Text           string `json:"text" toml:"text" yaml:"text" validate:"required"`
	Generalization string `json:"generalization" toml:"generalization" yaml:"generalization" validate:"required"`
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Margins: []Margin{
			{X: 0, Y: 0},
			{X: 100, Y: 40},
		},
		DefaultMargin:            Margin{X: 50, Y: 10},
		LineStyle:                LineStraight,
		ExpandBtnSize:            20,
		GeneralizationLineMargin: 0,
		GeneralizationNodeMargin: 20,
		Colors: Colors{
			Background:     "#fafafa",
			Line:           "#549688",
			RootFill:       "#549688",
			NodeFill:       "#ffffff",
			NodeStroke:     "#549688",
			RootText:       "#ffffff",
			Text:           "#222222",
			Generalization: "#fff7e6",
		},
		FontSize:  13,
		LineWidth: 1,
	}
}

// Uniform returns the default theme with the same margin on every layer.
func Uniform(x, y float64) Theme {
	t := Default()
	t.Margins = nil
	t.DefaultMargin = Margin{X: x, Y: y}
	return t
}

// Margin returns the margin for layerIndex.
func (t Theme) Margin(layerIndex int) Margin {
	if layerIndex >= 0 && layerIndex < len(t.Margins) {
		return t.Margins[layerIndex]
	}
	return t.DefaultMargin
}

// MarginX returns the growth-axis margin for layerIndex.
func (t Theme) MarginX(layerIndex int) float64 { return t.Margin(layerIndex).X }

// MarginY returns the sibling margin for layerIndex.
func (t Theme) MarginY(layerIndex int) float64 { return t.Margin(layerIndex).Y }
