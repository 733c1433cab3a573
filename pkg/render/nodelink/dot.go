package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindlayout/pkg/core/layout"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes layer, direction and box size in node labels.
	// When false, only the node text is shown.
	Detailed bool
}

// ToDOT converts a layout export to Graphviz DOT format. The resulting DOT
// string can be rendered using [RenderSVG].
//
// Graphviz computes its own positions; the export contributes the visible
// nodes, their parent links and the growth direction (top to bottom for the
// organization strategy, left to right otherwise). Collapsed nodes are drawn
// with a dashed outline.
func ToDOT(x *layout.Export, opts Options) string {
	rankdir := "LR"
	if x.Strategy == layout.OrganizationStructure.String() {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range x.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range x.Nodes {
		if n.Root {
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.Parent, n.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n layout.ExportNode, detailed bool) string {
	if !detailed {
		return n.Text
	}
	parts := []string{fmt.Sprintf("layer: %d", n.Layer)}
	if n.Dir != "" {
		parts = append(parts, "dir: "+n.Dir)
	}
	parts = append(parts, fmt.Sprintf("box: %gx%g", n.Width, n.Height))
	return n.Text + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n layout.ExportNode, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Root:
		attrs = append(attrs, "fillcolor=\"#549688\"", "fontcolor=white", "penwidth=2")
	case !n.Expanded:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
