// Package pipeline provides the decode → layout → render pipeline shared by
// the CLI and the API server.
//
// By centralizing this logic, every entry point lays documents out and
// renders them the same way, with the same caching.
//
// # Architecture
//
// The pipeline consists of two cached stages:
//
//  1. Layout: decode a document (TOML, YAML or JSON), build its box tree
//     and run a display update, producing a [scene.Result]
//  2. Render: turn a result into artifacts (SVG, PNG, JSON, DOT, tree SVG)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    Format:  "toml",
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	res, hit, err := runner.LayoutWithCacheInfo(ctx, data, opts)
//	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, res, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxlayout/pkg/cache"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

// DefaultScale is the default PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatTree = "tree" // hierarchy diagram rendered to SVG by Graphviz
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatTree: true,
}

// Extension returns the file extension for an output format.
func Extension(format string) string {
	switch format {
	case FormatJSON:
		return ".layout.json"
	case FormatTree:
		return ".tree.svg"
	}
	return "." + format
}

// ContentType returns the MIME type of an output format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatTree:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Format  string `json:"format,omitempty"`  // document format: toml, yaml or json
	Refresh bool   `json:"refresh,omitempty"` // bypass cached layouts and artifacts

	// Render options
	Formats []string `json:"formats,omitempty"`
	Padding bool     `json:"padding,omitempty"` // outline outer and inner rectangles
	Labels  bool     `json:"labels,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG only

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the laid-out box tree.
	Layout *scene.Result

	// DocHash is the content hash of the input document.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BoxCount   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, json, dot, tree)", format)
	}
	return nil
}

// ValidateFormats checks that all output formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDocumentFormat checks that a document format is supported.
func ValidateDocumentFormat(format string) error {
	if !slices.Contains(scene.Formats, format) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid document format: %q (must be one of: %s)", format, strings.Join(scene.Formats, ", "))
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout.
func (o *Options) SetLayoutDefaults() {
	if o.Format == "" {
		o.Format = scene.FormatTOML
	}
	o.Format = strings.ToLower(o.Format)
	if o.Format == "yml" {
		o.Format = scene.FormatYAML
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateDocumentFormat(o.Format)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid scale: %v (must be positive)", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Format: o.Format}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Options that do not affect a format are left out so that, for example,
// changing the PNG scale keeps cached SVGs valid.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG:
		k.Padding = o.Padding
		k.Labels = o.Labels
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
