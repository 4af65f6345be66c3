package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/boxlayout/pkg/observability"
	"github.com/matzehuels/boxlayout/pkg/render/sink"
	"github.com/matzehuels/boxlayout/pkg/render/tree"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, res *scene.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	artifacts, err := renderFormats(ctx, res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, res *scene.Result, opts Options) (map[string][]byte, error) {
	sinkOpts := buildSinkOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(res, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(res, sinkOpts...)
		case FormatJSON:
			data, err = scene.MarshalResult(res)
		case FormatDOT:
			data = []byte(tree.ToDOT(res))
		case FormatTree:
			data, err = tree.RenderSVG(ctx, tree.ToDOT(res))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSinkOptions(opts Options) []sink.Option {
	var out []sink.Option
	if opts.Padding {
		out = append(out, sink.WithPadding())
	}
	if opts.Labels {
		out = append(out, sink.WithLabels())
	}
	if opts.Scale > 0 {
		out = append(out, sink.WithScale(opts.Scale))
	}
	return out
}

// RenderFromResultData renders output from a serialized result, such as
// one written by the json format.
func RenderFromResultData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	res, err := scene.UnmarshalResult(data)
	if err != nil {
		return nil, fmt.Errorf("parse result: %w", err)
	}
	return Render(ctx, res, opts)
}
