package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxlayout/pkg/cache"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
	"github.com/matzehuels/boxlayout/pkg/observability"
)

const dialog = `
name = "dialog"
width = 200
height = 100
inpad = 10

[[children]]
id = "title"
height = 20
manager = "grid"
options = { column = 0, row = 0, columnspan = 2, fill = "x" }

[[children]]
id = "ok"
width = 60
height = 24
options = { column = 0, row = 1 }

[[children]]
id = "cancel"
width = 80
height = 24
options = { column = 1, row = 1, padx = 4 }
`

func TestRunnerExecute(t *testing.T) {
	mem := cache.NewMemoryCache()
	r := NewRunner(mem, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON, FormatDOT}}

	first, err := r.Execute(ctx, []byte(dialog), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if first.Stats.BoxCount != 4 || first.DocHash == "" {
		t.Errorf("first run stats = %+v hash = %q", first.Stats, first.DocHash)
	}
	for _, f := range opts.Formats {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}

	// Grid: column 0 is 60 wide, column 1 is 88 (80 + padx 4 on each side).
	title, _ := first.Layout.Find("title")
	if want := geom.R(10, 10, 148, 20); title.Rect != want {
		t.Errorf("title = %v, want %v", title.Rect, want)
	}
	cancel, _ := first.Layout.Find("cancel")
	if want := geom.R(74, 30, 80, 24); cancel.Rect != want {
		t.Errorf("cancel = %v, want %v", cancel.Rect, want)
	}

	second, err := r.Execute(ctx, []byte(dialog), opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if diff := cmp.Diff(first.Layout, second.Layout); diff != "" {
		t.Errorf("cached layout differs (-first +second):\n%s", diff)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	refreshed, err := r.Execute(ctx, []byte(dialog), Options{Formats: opts.Formats, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", refreshed.CacheInfo)
	}
}

func TestRunnerRenderPartialCache(t *testing.T) {
	r := NewRunner(cache.NewMemoryCache(), nil, nil)
	ctx := context.Background()

	res, err := r.Layout(ctx, []byte(dialog), Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if _, hit, err := r.RenderWithCacheInfo(ctx, res, Options{Formats: []string{FormatSVG}}); err != nil || hit {
		t.Fatalf("RenderWithCacheInfo(svg) hit = %v, err = %v", hit, err)
	}
	_, hit, err := r.RenderWithCacheInfo(ctx, res, Options{Formats: []string{FormatSVG, FormatDOT}})
	if err != nil {
		t.Fatalf("RenderWithCacheInfo(svg, dot) error = %v", err)
	}
	if hit {
		t.Error("render with an uncached format should report a miss")
	}
}

func TestRunnerErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		doc  string
		opts Options
		code errors.Code
	}{
		{"bad toml", "width = [", Options{}, errors.ErrCodeInvalidFormat},
		{"no manager", "[[children]]\nid = \"a\"\n", Options{}, errors.ErrCodeConfiguration},
		{"place without x", "[[children]]\nmanager = \"place\"\noptions = { y = 0 }\n", Options{}, errors.ErrCodeConfiguration},
		{"bad output format", "", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, []byte(tt.doc), tt.opts)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Execute() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRenderFromResultData(t *testing.T) {
	ctx := context.Background()
	res, err := Layout(ctx, []byte(dialog), Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	artifacts, err := Render(ctx, res, Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	again, err := RenderFromResultData(ctx, artifacts[FormatJSON], Options{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("RenderFromResultData() error = %v", err)
	}
	if dot := string(again[FormatDOT]); !strings.Contains(dot, `"root" -> "cancel";`) {
		t.Errorf("dot output missing edge:\n%s", dot)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnDecodeComplete(_ context.Context, format string, _ int, _ time.Duration, _ error) {
	h.events = append(h.events, "decode:"+format)
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, name string, _ time.Duration, _ error) {
	h.events = append(h.events, "layout:"+name)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, _ error) {
	h.events = append(h.events, "render:"+strings.Join(formats, ","))
}

func TestPipelineHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), []byte(dialog), Options{Formats: []string{FormatDOT}}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := []string{"decode:toml", "layout:dialog", "render:dot"}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("hook events mismatch (-want +got):\n%s", diff)
	}
}
