package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxlayout/pkg/pipeline"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

const debounceWindow = 250 * time.Millisecond

// watchCommand creates the watch command, which re-renders a document each
// time it is saved.
func (c *CLI) watchCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale, labels: true}

	cmd := &cobra.Command{
		Use:   "watch [document]",
		Short: "Re-render a document whenever it changes",
		Long: `Re-render a document whenever it changes.

The document is laid out and rendered once, then again after every save. A
document that fails to load or lay out is reported and the previous outputs are
kept until the next good save. Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot, tree (comma-separated)")
	cmd.Flags().BoolVar(&opts.padding, "padding", false, "outline outer and inner rectangles")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw box labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// watchSession holds the last good layout of a watched document.
type watchSession struct {
	path   string
	opts   renderOpts
	runner *pipeline.Runner
	logger *log.Logger
	last   *scene.Result
}

// reload lays the document out again and rewrites its outputs. On error
// the previous layout stays current. It returns the IDs of boxes whose
// geometry changed since the last good reload.
func (s *watchSession) reload(ctx context.Context) ([]string, error) {
	data, format, err := readDocument(s.path)
	if err != nil {
		return nil, err
	}
	popts := s.opts.pipelineOptions()
	popts.Format = format
	popts.Logger = s.logger

	res, err := s.runner.Layout(ctx, data, popts)
	if err != nil {
		return nil, err
	}
	artifacts, err := s.runner.Render(ctx, res, popts)
	if err != nil {
		return nil, err
	}
	for _, format := range s.opts.formats {
		path := outputPath(s.opts.output, s.path, format, len(s.opts.formats) == 1)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
	}

	changed := changedBoxes(s.last, res)
	if s.last != nil {
		s.logger.Debug("layout diff", "diff", cmp.Diff(s.last, res))
	}
	s.last = res
	return changed, nil
}

// changedBoxes lists the boxes of next that are new or differ from prev,
// followed by the boxes of prev that are gone.
func changedBoxes(prev, next *scene.Result) []string {
	old := map[string]scene.BoxResult{}
	if prev != nil {
		for _, b := range prev.Boxes {
			old[b.ID] = b
		}
	}
	var out []string
	for _, b := range next.Boxes {
		if ob, ok := old[b.ID]; !ok || !cmp.Equal(ob, b) {
			out = append(out, b.ID)
		}
		delete(old, b.ID)
	}
	if prev != nil {
		for _, b := range prev.Boxes {
			if _, gone := old[b.ID]; gone {
				out = append(out, b.ID)
			}
		}
	}
	return out
}

func (c *CLI) runWatch(ctx context.Context, input string, opts renderOpts) error {
	target, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", input, err)
	}
	target = filepath.Clean(target)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch document: %w", err)
	}
	defer watcher.Close()
	// Editors often replace the file on save, so the directory is watched.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch document dir: %w", err)
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	s := &watchSession{path: target, opts: opts, runner: runner, logger: logger}
	c.reportReload(ctx, s)
	printInfo("Watching %s (Ctrl+C to stop)", input)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			printNewline()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerCh = timer.C
			} else {
				timer.Reset(debounceWindow)
			}
		case <-timerCh:
			timer, timerCh = nil, nil
			c.reportReload(ctx, s)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

func (c *CLI) reportReload(ctx context.Context, s *watchSession) {
	prog := newProgress(s.logger)
	name := filepath.Base(s.path)
	changed, err := s.reload(ctx)
	if err != nil {
		prog.failed("reload rejected", err, "document", name)
		printWarning("Rejected %s: %v", name, err)
		if s.last != nil {
			printDetail("Keeping the previous layout")
		}
		return
	}
	printChanges(changed)
	prog.done("reloaded", "document", name, "changed", len(changed))
}
