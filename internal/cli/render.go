package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	layoutFlags
	output   string  // output file, or base path for multiple formats
	formats  string  // comma-separated formats
	scale    float64 // PNG scale factor
	padding  float64 // frame padding around the bounds
	title    string  // optional diagram title
	detailed bool    // show layer, direction and box in DOT labels
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [tree.json|tree.yaml]",
		Short: "Render a content tree to SVG, PNG, JSON or Graphviz",
		Long: `Render a content tree in one or more output formats.

Formats:
  svg       themed SVG drawing of nodes, connectors and expand buttons
  png       rasterized drawing (see --scale)
  json      positioned layout with the resolved theme
  dot       Graphviz DOT source of the tree
  graphviz  SVG rendered by Graphviz from the DOT source

With a single format and no -o, the output path is derived from the input
file name. With several formats, -o is used as the base path and each
format adds its own extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output formats (comma-separated): svg, png, json, dot, graphviz")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().Float64Var(&opts.padding, "padding", pipeline.DefaultPadding, "padding around the drawing")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show layer, direction and box size in DOT labels")
	opts.layoutFlags.register(cmd)

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		formats := make([]string, 0, len(pipeline.ValidFormats))
		for f := range pipeline.ValidFormats {
			formats = append(formats, f)
		}
		slices.Sort(formats)
		return formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// pipelineOptions converts the flags into pipeline options.
func (o *renderOpts) pipelineOptions() pipeline.Options {
	opts := o.layoutFlags.options()
	opts.Formats = pipeline.ParseFormats(o.formats)
	opts.Scale = o.scale
	opts.Padding = o.padding
	opts.Title = o.title
	opts.Detailed = o.detailed
	return opts
}

// runRender loads the tree, runs the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, w io.Writer, input string, o *renderOpts) error {
	opts := o.pipelineOptions()
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}

	root, err := loadTree(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	runner, err := c.newRunner(o.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = loggerFromContext(ctx)

	sp := startSpinner(ctx, c.out, fmt.Sprintf("Laying out %s as %s",
		plural(tree.CountVisible(root), "visible node"), strings.Join(opts.Formats, ", ")))

	result, err := runner.Execute(ctx, root, opts)
	if err != nil {
		sp.fail(w, "Render failed")
		return err
	}
	if ctx.Err() != nil {
		sp.stop()
		return ctx.Err()
	}

	sp.setMessage("Writing " + plural(len(opts.Formats), "file"))
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, o.output)
	sp.stop()
	if err != nil {
		return err
	}

	say(w, markOK, "Rendered %s layout", StyleHighlight.Render(result.Layout.Strategy))
	for _, p := range paths {
		wrote(w, p)
	}
	printSummary(w, mapSummary{
		Strategy: result.Layout.Strategy,
		Nodes:    result.Stats.NodeCount,
		Visible:  result.Stats.VisibleCount,
		Measured: result.Stats.Measured,
		Cached:   result.CacheInfo.LayoutHit,
	})
	return nil
}

// writeArtifacts writes each rendered format to disk and returns the paths
// in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	if len(formats) == 1 && output != "" {
		if err := writeOutput(output, artifacts[formats[0]]); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}

	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return nil, fmt.Errorf("missing %s output", format)
		}
		path := formatPath(base, format)
		if path == input {
			return nil, fmt.Errorf("output %s would overwrite the input", path)
		}
		if err := writeOutput(path, data); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
