package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mindlayout/pkg/core/layout"
	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/observability"
	"github.com/matzehuels/mindlayout/pkg/render/nodelink"
	"github.com/matzehuels/mindlayout/pkg/render/sink"
	"github.com/matzehuels/mindlayout/pkg/theme"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; x is only read.
func Render(ctx context.Context, x *layout.Export, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	t, err := opts.ResolveTheme()
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, x, format, opts, t)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, x *layout.Export, format string, opts Options, t theme.Theme) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithTheme(t), sink.WithPadding(opts.Padding)}
		if opts.Title != "" {
			svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
		}
		return sink.RenderSVG(x, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(x,
			sink.WithPNGTheme(t),
			sink.WithPNGPadding(opts.Padding),
			sink.WithScale(opts.Scale))
	case FormatJSON:
		return sink.RenderJSON(x, sink.WithJSONTheme(t), sink.WithJSONPadding(opts.Padding))
	case FormatDOT:
		return []byte(nodelink.ToDOT(x, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatGraphviz:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(x, nodelink.Options{Detailed: opts.Detailed}))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}
