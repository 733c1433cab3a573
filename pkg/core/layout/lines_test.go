package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mindlayout/pkg/core/geometry"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/theme"
)

func styled(kind Kind, style theme.LineStyle, useLine bool) Config {
	cfg := config(kind, 30, 20)
	cfg.Theme.LineStyle = style
	cfg.Theme.NodeUseLineStyle = useLine
	return cfg
}

func points(p geometry.Path) []geometry.Point {
	var out []geometry.Point
	for _, s := range p {
		out = append(out, s.Points[len(s.Points)-1])
	}
	return out
}

func assertPoints(t *testing.T, want []geometry.Point, got geometry.Path) {
	t.Helper()
	pts := points(got)
	require.Len(t, pts, len(want), "path %s", got)
	for i := range want {
		assert.InDelta(t, want[i].X, pts[i].X, eps, "point %d x of %s", i, got)
		assert.InDelta(t, want[i].Y, pts[i].Y, eps, "point %d y of %s", i, got)
	}
}

func edge(t *testing.T, res *Result, from, to string) Connector {
	t.Helper()
	f, c := node(t, res, from), node(t, res, to)
	for _, conn := range res.ConnectorsFrom(f.ID) {
		if conn.To == c.ID {
			return conn
		}
	}
	t.Fatalf("no connector %s -> %s", from, to)
	return Connector{}
}

func chain() *tree.Node {
	return tree.Sized("root", 100, 40,
		tree.Sized("a", 80, 30,
			tree.Sized("b", 80, 30,
				tree.Sized("c", 80, 30),
			),
		),
	)
}

func TestStraightConnectors(t *testing.T) {
	res := Compute(chain(), styled(Logical, theme.LineStraight, false))

	root := edge(t, res, "root", "a")
	assert.Equal(t, []geometry.Op{geometry.OpMove, geometry.OpLine, geometry.OpLine, geometry.OpLine}, root.Path.Ops())
	// From the root's right edge, a stub of (30-20)*0.6, then into the child.
	assertPoints(t, []geometry.Point{{X: 550, Y: 300}, {X: 556, Y: 300}, {X: 556, Y: 300}, {X: 580, Y: 300}}, root.Path)

	// Non-root lines start past the expand button.
	ab := edge(t, res, "a", "b")
	assert.InDelta(t, 580+80+20, ab.Path.Start().X, eps)
	assert.InDelta(t, node(t, res, "b").Left, ab.Path.End().X, eps)
	assert.Equal(t, ConnectorEdge, ab.Kind)
}

func TestDirectConnectors(t *testing.T) {
	res := Compute(chain(), styled(Logical, theme.LineDirect, false))

	assertPoints(t, []geometry.Point{{X: 500, Y: 300}, {X: 580, Y: 300}}, edge(t, res, "root", "a").Path)
	assertPoints(t, []geometry.Point{{X: 680, Y: 300}, {X: 690, Y: 300}}, edge(t, res, "a", "b").Path)
}

func TestCurveConnectors(t *testing.T) {
	res := Compute(chain(), styled(Logical, theme.LineCurve, false))

	fromRoot := edge(t, res, "root", "a").Path
	deep := edge(t, res, "b", "c").Path
	assert.Equal(t, []geometry.Op{geometry.OpMove, geometry.OpQuad}, fromRoot.Ops())
	assert.Equal(t, []geometry.Op{geometry.OpMove, geometry.OpCubic}, deep.Ops())
	assert.Equal(t, []geometry.Op{geometry.OpMove, geometry.OpCubic}, edge(t, res, "a", "b").Path.Ops())

	// The root curve starts at the root center.
	assert.Equal(t, geometry.Point{X: 500, Y: 300}, fromRoot.Start())
}

func TestNodeUseLineStyle(t *testing.T) {
	res := Compute(chain(), styled(Logical, theme.LineDirect, true))

	a, b := node(t, res, "a"), node(t, res, "b")
	ab := edge(t, res, "a", "b").Path
	assert.Equal(t, []geometry.Op{geometry.OpMove, geometry.OpLine, geometry.OpLine}, ab.Ops())
	assertPoints(t, []geometry.Point{
		{X: a.Left + a.Width + 20, Y: a.Top + a.Height},
		{X: b.Left, Y: b.Top + b.Height},
		{X: b.Left + b.Width, Y: b.Top + b.Height},
	}, ab)

	// Root lines keep their vertical start.
	assert.InDelta(t, 300, edge(t, res, "root", "a").Path.Start().Y, eps)
}

func TestMindMapLeftConnector(t *testing.T) {
	root := tree.Sized("root", 100, 40,
		tree.Sized("right", 60, 20),
		tree.Sized("left", 60, 20),
	)
	res := Compute(root, styled(MindMap, theme.LineStraight, false))

	l := node(t, res, "left")
	p := edge(t, res, "root", "left").Path
	assert.InDelta(t, 450, p.Start().X, eps)
	assert.InDelta(t, 450-6, p[1].Points[0].X, eps)
	assert.InDelta(t, l.Left+l.Width, p.End().X, eps)
}

func TestOrganizationStraightConnectors(t *testing.T) {
	root := tree.Sized("root", 100, 40,
		tree.Sized("a", 60, 20, tree.Sized("a1", 60, 20)),
		tree.Sized("b", 60, 20),
	)
	cfg := styled(OrganizationStructure, theme.LineStraight, false)
	cfg.Theme = theme.Uniform(30, 10)
	res := Compute(root, cfg)

	conns := res.ConnectorsFrom(res.Root().ID)
	require.Len(t, conns, 4)

	var trunk, bus Connector
	for _, c := range conns {
		switch c.Kind {
		case ConnectorTrunk:
			trunk = c
		case ConnectorBus:
			bus = c
		}
	}
	assert.Equal(t, NoParent, trunk.To)
	assertPoints(t, []geometry.Point{{X: 500, Y: 320}, {X: 500, Y: 341}}, trunk.Path)
	assertPoints(t, []geometry.Point{{X: 465, Y: 341}, {X: 535, Y: 341}}, bus.Path)
	assertPoints(t, []geometry.Point{{X: 465, Y: 341}, {X: 465, Y: 350}}, edge(t, res, "root", "a").Path)

	// Below a non-root node the trunk starts under the expand button.
	a := node(t, res, "a")
	for _, c := range res.ConnectorsFrom(a.ID) {
		if c.Kind == ConnectorTrunk {
			assert.InDelta(t, a.Top+a.Height+a.ExpandBtnSize, c.Path.Start().Y, eps)
		}
	}
}

func TestOrganizationCurveConnector(t *testing.T) {
	root := tree.Sized("root", 100, 40, tree.Sized("a", 60, 20), tree.Sized("b", 60, 20))
	cfg := styled(OrganizationStructure, theme.LineCurve, false)
	cfg.Theme = theme.Uniform(30, 10)
	cfg.Theme.LineStyle = theme.LineCurve
	res := Compute(root, cfg)

	require.Len(t, res.ConnectorsFrom(res.Root().ID), 2)
	p := edge(t, res, "root", "a").Path
	require.Equal(t, []geometry.Op{geometry.OpMove, geometry.OpQuad}, p.Ops())
	assert.Equal(t, geometry.Point{X: 500, Y: 320}, p.Start())
	assert.Equal(t, geometry.Point{X: 480, Y: 335}, p[1].Points[0])
	assert.Equal(t, geometry.Point{X: 465, Y: 350}, p.End())
}

func TestExpandButtons(t *testing.T) {
	t.Run("logical", func(t *testing.T) {
		res := Compute(chain(), styled(Logical, theme.LineStraight, false))
		require.Len(t, res.ExpandButtons, 2, "a and b have children, c and the root do not")

		b := res.ExpandButtons[0]
		assert.Equal(t, node(t, res, "a").ID, b.Node)
		assert.Equal(t, geometry.Point{X: 80, Y: 15}, b.Offset)
		assert.Equal(t, geometry.Point{X: 660, Y: 300}, b.Position)
		assert.Equal(t, geometry.Point{X: 670, Y: 300}, b.Center())
	})

	t.Run("line style", func(t *testing.T) {
		res := Compute(chain(), styled(Logical, theme.LineStraight, true))
		assert.Equal(t, geometry.Point{X: 80, Y: 30}, res.ExpandButtons[0].Offset)
	})

	t.Run("mindmap left", func(t *testing.T) {
		root := tree.Sized("root", 100, 40,
			tree.Sized("r", 60, 20),
			tree.Sized("l", 60, 20, tree.Sized("l1", 60, 20)),
		)
		res := Compute(root, styled(MindMap, theme.LineStraight, false))
		require.Len(t, res.ExpandButtons, 1)
		assert.Equal(t, geometry.Point{X: -20, Y: 10}, res.ExpandButtons[0].Offset)
	})

	t.Run("organization", func(t *testing.T) {
		root := tree.Sized("root", 100, 40, tree.Sized("a", 60, 20, tree.Sized("a1", 60, 20)))
		res := Compute(root, styled(OrganizationStructure, theme.LineStraight, false))
		require.Len(t, res.ExpandButtons, 1)
		assert.Equal(t, geometry.Point{X: 20, Y: 30}, res.ExpandButtons[0].Offset)
	})

	t.Run("collapsed", func(t *testing.T) {
		root := chain()
		root.Children[0].Data.Expand = false
		res := Compute(root, styled(Logical, theme.LineStraight, false))
		require.Len(t, res.ExpandButtons, 1)
		assert.Equal(t, node(t, res, "a").ID, res.ExpandButtons[0].Node)
	})
}

func summarized() *tree.Node {
	a := tree.Sized("a", 80, 30, tree.Sized("a1", 80, 30), tree.Sized("a2", 80, 30))
	a.Data.Generalization = &tree.Generalization{Text: "sum", Width: 40, Height: 20}
	return a
}

func TestGeneralization(t *testing.T) {
	t.Run("logical", func(t *testing.T) {
		res := Compute(tree.Sized("root", 100, 40, summarized()), styled(Logical, theme.LineStraight, false))
		require.Len(t, res.Generalizations, 1)

		g := res.Generalizations[0]
		a, a1 := node(t, res, "a"), node(t, res, "a1")
		r := res.Tree.SubtreeBounds(a.ID)
		assert.Equal(t, a1.Left+a1.Width, r.Right)

		assert.Equal(t, "sum", g.Text)
		assert.Equal(t, []geometry.Op{geometry.OpMove, geometry.OpQuad}, g.Line.Ops())
		assert.Equal(t, geometry.Point{X: r.Right, Y: r.Top}, g.Line.Start())
		assert.Equal(t, geometry.Point{X: r.Right, Y: r.Bottom}, g.Line.End())
		assert.Equal(t, r.Right+20, g.Left)
		assert.InDelta(t, r.CenterY(), g.Top+g.Height/2, eps)
		assert.GreaterOrEqual(t, res.Bounds.Right, g.Left+g.Width)
	})

	t.Run("mindmap left", func(t *testing.T) {
		root := tree.Sized("root", 100, 40, tree.Sized("r", 60, 20), summarized())
		res := Compute(root, styled(MindMap, theme.LineStraight, false))
		require.Len(t, res.Generalizations, 1)

		g := res.Generalizations[0]
		r := res.Tree.SubtreeBounds(node(t, res, "a").ID)
		assert.Equal(t, r.Left, g.Line.Start().X)
		assert.Less(t, g.Line[1].Points[0].X, r.Left)
		assert.Equal(t, r.Left-20-40, g.Left)
	})

	t.Run("organization", func(t *testing.T) {
		res := Compute(tree.Sized("root", 100, 40, summarized()), styled(OrganizationStructure, theme.LineStraight, false))
		require.Len(t, res.Generalizations, 1)

		g := res.Generalizations[0]
		r := res.Tree.SubtreeBounds(node(t, res, "a").ID)
		assert.Equal(t, geometry.Point{X: r.Left, Y: r.Bottom}, g.Line.Start())
		assert.Equal(t, r.Bottom+20, g.Top)
		assert.InDelta(t, r.CenterX(), g.Left+g.Width/2, eps)
	})
}

func TestGeneralizationLineMargin(t *testing.T) {
	themed := func(kind Kind) Config {
		cfg := styled(kind, theme.LineStraight, false)
		cfg.Theme.GeneralizationLineMargin = 6
		cfg.Theme.GeneralizationNodeMargin = 20
		return cfg
	}

	t.Run("logical", func(t *testing.T) {
		res := Compute(tree.Sized("root", 100, 40, summarized()), themed(Logical))
		g := res.Generalizations[0]
		r := res.Tree.SubtreeBounds(node(t, res, "a").ID)
		assert.Equal(t, r.Right+6, g.Line.Start().X)
		assert.Equal(t, r.Right+20, g.Left, "the node margin counts from the subtree edge")
	})

	t.Run("mindmap right", func(t *testing.T) {
		root := tree.Sized("root", 100, 40, summarized(), tree.Sized("l", 60, 20))
		res := Compute(root, themed(MindMap))
		g := res.Generalizations[0]
		r := res.Tree.SubtreeBounds(node(t, res, "a").ID)
		assert.Equal(t, DirRight, node(t, res, "a").Dir)
		assert.Equal(t, r.Right+6, g.Line.Start().X)
		assert.InDelta(t, r.Right+6+20, g.Left, eps, "the node margin counts from the bracket")
	})

	t.Run("mindmap left", func(t *testing.T) {
		root := tree.Sized("root", 100, 40, tree.Sized("r", 60, 20), summarized())
		res := Compute(root, themed(MindMap))
		g := res.Generalizations[0]
		r := res.Tree.SubtreeBounds(node(t, res, "a").ID)
		assert.Equal(t, r.Left-6, g.Line.Start().X)
		assert.InDelta(t, r.Left-6-20-40, g.Left, eps)
	})

	t.Run("organization", func(t *testing.T) {
		res := Compute(tree.Sized("root", 100, 40, summarized()), themed(OrganizationStructure))
		g := res.Generalizations[0]
		r := res.Tree.SubtreeBounds(node(t, res, "a").ID)
		assert.Equal(t, r.Bottom+6, g.Line.Start().Y)
		assert.Equal(t, r.Bottom+20, g.Top, "the node margin counts from the subtree edge")
	})
}

func TestCurveStartPastParent(t *testing.T) {
	curved := func(kind Kind) Config {
		cfg := styled(kind, theme.LineCurve, false)
		cfg.Theme.ExpandBtnSize = 8
		return cfg
	}

	t.Run("logical follows the button", func(t *testing.T) {
		res := Compute(chain(), curved(Logical))
		a := node(t, res, "a")
		assert.InDelta(t, a.Left+a.Width+8, edge(t, res, "a", "b").Path.Start().X, eps)
	})

	t.Run("mindmap right uses a fixed gap", func(t *testing.T) {
		res := Compute(chain(), curved(MindMap))
		a := node(t, res, "a")
		require.Equal(t, DirRight, a.Dir)
		assert.InDelta(t, a.Left+a.Width+20, edge(t, res, "a", "b").Path.Start().X, eps)
	})

	t.Run("mindmap left follows the button", func(t *testing.T) {
		root := tree.Sized("root", 100, 40,
			tree.Sized("r", 60, 20),
			tree.Sized("l", 60, 20, tree.Sized("l1", 60, 20)),
		)
		res := Compute(root, curved(MindMap))
		l := node(t, res, "l")
		require.Equal(t, DirLeft, l.Dir)
		assert.InDelta(t, l.Left-8, edge(t, res, "l", "l1").Path.Start().X, eps)
	})
}
