// Package pkg provides the core libraries for Mindlayout.
//
// # Overview
//
// Mindlayout positions the nodes of a content tree as a mind map, a logical
// structure diagram or an organization chart, and renders the result. The
// pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (content trees, geometry, the layout engine)
//  2. [theme] - Margins, line style and colors
//  3. [render] - Sinks turning a layout into SVG, PNG, JSON and Graphviz
//  4. [pipeline] - Orchestration (prepare → layout → render) with caching
//  5. [cache], [store] - Layout caching and saved maps
//  6. [server] - HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	JSON/YAML content tree
//	         ↓
//	    [core/tree] package (read, validate, measure)
//	         ↓
//	    [core/layout] package (base, cross axis, overflow, connectors)
//	         ↓
//	    [render] packages (SVG, PNG, JSON, DOT)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/mindlayout/pkg/core/layout"
//	    "github.com/matzehuels/mindlayout/pkg/core/tree"
//	    "github.com/matzehuels/mindlayout/pkg/render/sink"
//	)
//
//	root, _ := tree.ReadFile("plan.yaml")
//	tree.NewMeasurer().Apply(root)
//
//	res := layout.Compute(root, layout.DefaultConfig())
//	svg := sink.RenderSVG(res.Export())
//
// # Main Packages
//
// [core/tree] - Content nodes, the generic depth-first walker, file I/O and
// text measurement.
//
// [core/layout] - The layout engine: one arena of layout nodes, three
// strategy records, and a driver that runs layouts on a worker goroutine.
//
// [pipeline] - Options, validation and the cache-aware [pipeline.Runner]
// shared by the CLI and the HTTP API.
//
// [errors] - Error codes with user-facing messages and HTTP status mapping.
//
// [observability] - Hooks for layout, render, cache and HTTP events.
package pkg
