package pipeline

import (
	"context"

	"github.com/matzehuels/mindlayout/pkg/core/layout"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
)

// GenerateLayout lays out root on a fresh driver and returns the export.
// Each call owns its arena, so concurrent calls share no layout state.
func GenerateLayout(ctx context.Context, root *tree.Node, opts Options) (*layout.Export, error) {
	cfg, err := opts.LayoutConfig()
	if err != nil {
		return nil, err
	}

	d := layout.NewDriver(layout.WithLogger(opts.Logger))
	defer d.Close()

	res, err := d.Layout(ctx, root, cfg, nil).Wait(ctx)
	if err != nil {
		return nil, err
	}
	return res.Export(), nil
}
