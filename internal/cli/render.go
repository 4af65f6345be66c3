package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxlayout/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path (multiple)
	formats []string // output formats: svg, png, json, dot, tree
	padding bool     // outline outer and inner rectangles
	labels  bool     // draw box labels
	scale   float64  // PNG scale factor
	noCache bool
	refresh bool
}

// renderCommand creates the render command. It accepts either a document,
// which is laid out first, or a layout.json written by the layout command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale, labels: true}

	cmd := &cobra.Command{
		Use:   "render [document|layout.json]",
		Short: "Render a box document or a computed layout",
		Long: `Render a box document or a computed layout.

Documents (.toml, .yaml, .json) are laid out first; files ending in .layout.json
are rendered as saved. Formats:
  svg   boxes as filled rectangles
  png   the same picture rasterised
  json  the layout result
  dot   the box hierarchy as Graphviz DOT
  tree  the box hierarchy drawn by Graphviz as SVG`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot, tree (comma-separated)")
	cmd.Flags().BoolVar(&opts.padding, "padding", false, "outline outer and inner rectangles")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw box labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached outputs exist")

	return cmd
}

func (o renderOpts) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Refresh: o.refresh,
		Formats: o.formats,
		Padding: o.padding,
		Labels:  o.labels,
		Scale:   o.scale,
	}
}

// runRender produces every requested format and writes each to its file.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	popts := opts.pipelineOptions()
	popts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	var (
		artifacts map[string][]byte
		boxes     int
		cached    bool
		elapsed   time.Duration
	)
	if isResultFile(input) {
		data, err := os.ReadFile(input)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("load layout %s: %w", input, err)
		}
		artifacts, err = pipeline.RenderFromResultData(ctx, data, popts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
	} else {
		data, format, err := readDocument(input)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("load document %s: %w", input, err)
		}
		runner, err := c.newRunner(opts.noCache)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()

		popts.Format = format
		result, err := runner.Execute(ctx, data, popts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		artifacts = result.Artifacts
		boxes = result.Stats.BoxCount
		cached = result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
		elapsed = result.Stats.LayoutTime + result.Stats.RenderTime
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var paths []string
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) == 1)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		c.Logger.Debug("wrote output", "format", format, "path", path, "bytes", len(artifacts[format]))
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	if boxes > 0 {
		printStats(boxes, elapsed, cached)
	}
	return nil
}
