package layout

import (
	"github.com/matzehuels/mindlayout/pkg/core/geometry"
	"github.com/matzehuels/mindlayout/pkg/theme"
)

// ConnectorKind distinguishes per-child edges from the shared trunk and bus
// of the organization straight style.
type ConnectorKind uint8

// Connector kinds.
const (
	ConnectorEdge ConnectorKind = iota
	ConnectorTrunk
	ConnectorBus
)

func (k ConnectorKind) String() string {
	switch k {
	case ConnectorTrunk:
		return "trunk"
	case ConnectorBus:
		return "bus"
	default:
		return "edge"
	}
}

// MarshalText encodes the kind name.
func (k ConnectorKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Connector is one drawn line. To is NoParent for trunks and buses.
type Connector struct {
	From NodeID
	To   NodeID
	Kind ConnectorKind
	Path geometry.Path
}

// ExpandButton is the expand/collapse control of a node with children.
// Offset is relative to the node's top-left corner; Position is absolute.
// The button spans ExpandBtnSize to the right of the anchor and is
// vertically centered on it.
type ExpandButton struct {
	Node     NodeID
	Offset   geometry.Point
	Position geometry.Point
	Size     float64
}

// Center returns the center of the button.
func (b ExpandButton) Center() geometry.Point {
	return geometry.Point{X: b.Position.X + b.Size/2, Y: b.Position.Y}
}

// GeneralizationPlacement is the summary node of a subtree and its bracket.
type GeneralizationPlacement struct {
	Node   NodeID
	Text   string
	Line   geometry.Path
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Box returns the summary node rectangle.
func (g GeneralizationPlacement) Box() geometry.Rect {
	return geometry.Box(g.Left, g.Top, g.Width, g.Height)
}

// Result is the output of one layout pass.
type Result struct {
	Tree            *Tree
	Strategy        Kind
	LineStyle       theme.LineStyle
	Connectors      []Connector
	ExpandButtons   []ExpandButton
	Generalizations []GeneralizationPlacement
	// Bounds encloses nodes, buttons and generalizations.
	Bounds geometry.Rect
}

// Root returns the resolved root node, or nil for an empty result.
func (r *Result) Root() *Node {
	if r == nil || r.Tree == nil {
		return nil
	}
	return r.Tree.RootNode()
}

// ConnectorsFrom returns the connectors drawn for parent.
func (r *Result) ConnectorsFrom(parent NodeID) []Connector {
	var out []Connector
	for _, c := range r.Connectors {
		if c.From == parent {
			out = append(out, c)
		}
	}
	return out
}
