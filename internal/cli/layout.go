package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindlayout/pkg/core/tree"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [tree.json|tree.yaml]",
		Short: "Compute node positions for a content tree",
		Long: `Compute node positions for a content tree.

The layout command reads a content tree (JSON or YAML), measures unsized
nodes, runs the selected layout strategy and writes the positioned nodes,
connectors, expand buttons and generalizations as JSON. The output is the
same document 'render -f json' embeds.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the tree, computes the layout and writes the export.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, input string, flags layoutFlags, output string) error {
	root, err := loadTree(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts := flags.options()
	opts.Logger = logger

	prog := newProgress(logger)
	x, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, root, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Laid out %d nodes (%s)", len(x.Nodes), x.Strategy))

	var buf bytes.Buffer
	if err := x.WriteJSON(&buf); err != nil {
		return err
	}
	if err := writeOutput(output, buf.Bytes()); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	if output == "" || output == "-" {
		return nil
	}
	say(w, markOK, "Layout complete")
	wrote(w, output)
	printSummary(w, mapSummary{
		Strategy: x.Strategy,
		Nodes:    tree.Count(root),
		Visible:  tree.CountVisible(root),
		Cached:   cacheHit,
	})
	fmt.Fprintln(w)
	suggest(w, "Render", appName+" render "+input+" -s "+x.Strategy)
	return nil
}
