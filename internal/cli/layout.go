package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxlayout/pkg/pipeline"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

// layoutCommand creates the layout command for computing box geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute the layout of a box document",
		Long: `Compute the layout of a box document.

The layout command reads a .toml, .yaml or .json document, maps every box with
its geometry manager and runs a display update. The output is a layout.json file
(same format as 'render -f json') holding the final rectangles of every box,
which 'render' and 'inspect' accept in place of the document.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")

	return cmd
}

// runLayout reads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache, refresh bool) error {
	data, format, err := readDocument(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Format: format, Refresh: refresh, Logger: c.Logger}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	res, cacheHit, err := runner.LayoutWithCacheInfo(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := outputPath(output, input, pipeline.FormatJSON, true)
	if err := scene.WriteResultFile(res, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(len(res.Boxes), 0, cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+path)

	return nil
}
