package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/boxlayout/pkg/layout"
	"github.com/matzehuels/boxlayout/pkg/observability"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

// Layout decodes a document, builds its box tree and lays it out.
// It does not touch any cache; see Runner.LayoutWithCacheInfo.
func Layout(ctx context.Context, data []byte, opts Options) (*scene.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnDecodeStart(ctx, opts.Format, len(data))
	doc, err := scene.Decode(data, opts.Format)
	if err != nil {
		hooks.OnDecodeComplete(ctx, opts.Format, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnDecodeComplete(ctx, opts.Format, doc.Count(), time.Since(start), nil)

	s, err := scene.Build(doc)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	hooks.OnLayoutStart(ctx, s.Name, s.Len())
	stats, err := s.Layout(ctx, layout.WithLogger(opts.Logger))
	hooks.OnLayoutComplete(ctx, s.Name, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("laid out document",
		"name", s.Name,
		"boxes", stats.Boxes,
		"placed", stats.Placed,
		"managers", stats.Managers)
	return s.Result(), nil
}
