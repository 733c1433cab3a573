package layout

import (
	"strings"

	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/errors"
)

// Kind selects a layout strategy.
type Kind uint8

// Supported strategies.
const (
	Logical Kind = iota
	MindMap
	OrganizationStructure
)

// Kinds lists the strategies by their canonical names.
var Kinds = []Kind{Logical, MindMap, OrganizationStructure}

func (k Kind) String() string {
	switch k {
	case Logical:
		return "logical"
	case MindMap:
		return "mindmap"
	case OrganizationStructure:
		return "organization"
	default:
		return "unknown"
	}
}

// MarshalText encodes the canonical name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText accepts any name ParseKind accepts.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseKind resolves a strategy name. Matching ignores case, dashes and
// underscores, and accepts the long forms ("logicalStructure",
// "organizationStructure") as well as "org".
func ParseKind(s string) (Kind, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	switch norm {
	case "logical", "logicalstructure":
		return Logical, nil
	case "mindmap":
		return MindMap, nil
	case "organization", "organizationstructure", "org":
		return OrganizationStructure, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidStrategy,
		"unknown layout strategy %q (must be logical, mindmap or organization)", s)
}

// Axis names a coordinate of a layout node box.
type Axis uint8

const (
	// AxisTop moves nodes vertically.
	AxisTop Axis = iota
	// AxisLeft moves nodes horizontally.
	AxisLeft
)

// Strategy is the configuration record that turns the shared engine into
// one of the layout variants.
type Strategy struct {
	Kind Kind

	// Cross is the axis siblings are distributed along.
	Cross Axis

	// Bidirectional strategies assign a Dir to first-level children and
	// keep separate left and right aggregates.
	Bidirectional bool

	// place positions a freshly created non-root node on the growth axis.
	place func(e *engine, n, parent *Node, siblingIndex int)

	// connect emits the connectors from a parent to its visible children.
	connect func(e *engine, parent *Node) []Connector

	// expandButton returns the button offset relative to the node box.
	expandButton func(e *engine, n *Node) (x, y float64)

	// generalize places the summary bracket of a subtree.
	generalize func(e *engine, n *Node, g *tree.Generalization) GeneralizationPlacement
}

// StrategyFor returns the record of a strategy kind.
func StrategyFor(k Kind) Strategy {
	switch k {
	case MindMap:
		return Strategy{
			Kind:          MindMap,
			Cross:         AxisTop,
			Bidirectional: true,
			place:         placeBidirectional,
			connect:       connectHorizontal,
			expandButton:  expandButtonSide,
			generalize:    generalizeSide,
		}
	case OrganizationStructure:
		return Strategy{
			Kind:         OrganizationStructure,
			Cross:        AxisLeft,
			place:        placeBelow,
			connect:      connectVertical,
			expandButton: expandButtonBelow,
			generalize:   generalizeBelow,
		}
	default:
		return Strategy{
			Kind:         Logical,
			Cross:        AxisTop,
			place:        placeRight,
			connect:      connectHorizontal,
			expandButton: expandButtonSide,
			generalize:   generalizeSide,
		}
	}
}

func placeRight(e *engine, n, parent *Node, _ int) {
	if n.HasCustomPosition() {
		return
	}
	n.Left = parent.Left + parent.Width + e.marginX(n.LayerIndex)
}

func placeBelow(e *engine, n, parent *Node, _ int) {
	if n.HasCustomPosition() {
		return
	}
	n.Top = parent.Top + parent.Height + e.marginX(n.LayerIndex)
}

// placeBidirectional assigns the direction once, at the first level below
// the root, from the sibling parity; deeper nodes inherit it.
func placeBidirectional(e *engine, n, parent *Node, siblingIndex int) {
	switch {
	case parent.Dir != DirNone:
		n.Dir = parent.Dir
	case siblingIndex%2 == 0:
		n.Dir = DirRight
	default:
		n.Dir = DirLeft
	}
	if n.HasCustomPosition() {
		return
	}
	if n.Dir == DirRight {
		n.Left = parent.Left + parent.Width + e.marginX(n.LayerIndex)
	} else {
		n.Left = parent.Left - e.marginX(n.LayerIndex) - n.Width
	}
}
