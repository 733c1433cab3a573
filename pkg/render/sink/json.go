package sink

import (
	"encoding/json"

	"github.com/matzehuels/mindlayout/pkg/core/layout"
	"github.com/matzehuels/mindlayout/pkg/theme"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	padding float64
	theme   *theme.Theme
}

// WithJSONPadding sets the padding used for the recorded frame.
func WithJSONPadding(p float64) JSONOption { return func(r *jsonRenderer) { r.padding = p } }

// WithJSONTheme embeds the theme so the output can be redrawn identically.
func WithJSONTheme(t theme.Theme) JSONOption { return func(r *jsonRenderer) { r.theme = &t } }

type jsonOutput struct {
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	OriginX float64      `json:"origin_x"`
	OriginY float64      `json:"origin_y"`
	Theme   *theme.Theme `json:"theme,omitempty"`
	*layout.Export
}

// RenderJSON exports the layout with the frame it would be drawn in.
func RenderJSON(x *layout.Export, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{padding: DefaultPadding}
	for _, opt := range opts {
		opt(&r)
	}
	f := frame(x, r.padding)
	out := jsonOutput{
		Width:   f.Width(),
		Height:  f.Height(),
		OriginX: f.Left,
		OriginY: f.Top,
		Theme:   r.theme,
		Export:  x,
	}
	return json.MarshalIndent(out, "", "  ")
}
