package layout

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/mindlayout/pkg/core/geometry"
)

// Export is the serializable form of a Result. Sinks render from it and
// the cache and HTTP API store and return it.
type Export struct {
	Strategy        string                 `json:"strategy"`
	LineStyle       string                 `json:"line_style"`
	Bounds          geometry.Rect          `json:"bounds"`
	Nodes           []ExportNode           `json:"nodes"`
	Connectors      []ExportConnector      `json:"connectors"`
	ExpandButtons   []ExportButton         `json:"expand_buttons,omitempty"`
	Generalizations []ExportGeneralization `json:"generalizations,omitempty"`
}

// ExportNode is one positioned node.
type ExportNode struct {
	ID        int     `json:"id"`
	ContentID string  `json:"content_id,omitempty"`
	Text      string  `json:"text"`
	Left      float64 `json:"left"`
	Top       float64 `json:"top"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Layer     int     `json:"layer"`
	Dir       string  `json:"dir,omitempty"`
	Parent    int     `json:"parent"`
	Root      bool    `json:"root,omitempty"`
	Expanded  bool    `json:"expanded"`
	Custom    bool    `json:"custom,omitempty"`
}

// Box returns the node rectangle.
func (n ExportNode) Box() geometry.Rect { return geometry.Box(n.Left, n.Top, n.Width, n.Height) }

// ExportConnector is one connector with its SVG path data.
type ExportConnector struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Kind string `json:"kind"`
	D    string `json:"d"`
}

// ExportButton is an expand button. X/Y is the anchor, see ExpandButton.
type ExportButton struct {
	Node     int     `json:"node"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Expanded bool    `json:"expanded"`
}

// ExportGeneralization is a summary node with its bracket path.
type ExportGeneralization struct {
	Node   int     `json:"node"`
	Text   string  `json:"text"`
	D      string  `json:"d"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Export converts the result to its serializable form.
func (r *Result) Export() *Export {
	x := &Export{
		Strategy:   r.Strategy.String(),
		LineStyle:  string(r.LineStyle),
		Bounds:     r.Bounds,
		Nodes:      []ExportNode{},
		Connectors: make([]ExportConnector, 0, len(r.Connectors)),
	}
	if r.Tree != nil {
		for i := range r.Tree.Nodes {
			n := &r.Tree.Nodes[i]
			x.Nodes = append(x.Nodes, ExportNode{
				ID:        int(n.ID),
				ContentID: n.Content.Data.ID,
				Text:      n.Content.Data.Text,
				Left:      n.Left,
				Top:       n.Top,
				Width:     n.Width,
				Height:    n.Height,
				Layer:     n.LayerIndex,
				Dir:       n.Dir.String(),
				Parent:    int(n.Parent),
				Root:      n.IsRoot,
				Expanded:  n.Expanded,
				Custom:    n.HasCustomPosition(),
			})
		}
	}
	for _, c := range r.Connectors {
		x.Connectors = append(x.Connectors, ExportConnector{
			From: int(c.From),
			To:   int(c.To),
			Kind: c.Kind.String(),
			D:    c.Path.String(),
		})
	}
	for _, b := range r.ExpandButtons {
		x.ExpandButtons = append(x.ExpandButtons, ExportButton{
			Node:     int(b.Node),
			X:        b.Position.X,
			Y:        b.Position.Y,
			Size:     b.Size,
			Expanded: r.Tree.Nodes[b.Node].Expanded,
		})
	}
	for _, g := range r.Generalizations {
		x.Generalizations = append(x.Generalizations, ExportGeneralization{
			Node:   int(g.Node),
			Text:   g.Text,
			D:      g.Line.String(),
			Left:   g.Left,
			Top:    g.Top,
			Width:  g.Width,
			Height: g.Height,
		})
	}
	return x
}

// WriteJSON writes x as indented JSON.
func (x *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(x)
}

// ReadExport decodes an Export written by WriteJSON.
func ReadExport(r io.Reader) (*Export, error) {
	var x Export
	if err := json.NewDecoder(r).Decode(&x); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return &x, nil
}
