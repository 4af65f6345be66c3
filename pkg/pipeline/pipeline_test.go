package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxlayout/pkg/cache"
	"github.com/matzehuels/boxlayout/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"dot", false},
		{"tree", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_INPUT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Format != "toml" {
		t.Errorf("Format = %q, want toml", opts.Format)
	}
	if diff := cmp.Diff([]string{FormatSVG}, opts.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"yml alias", Options{Format: "YML"}, false},
		{"json document", Options{Format: "json", Formats: []string{"json", "dot"}}, false},
		{"unknown document format", Options{Format: "xml"}, true},
		{"unknown output format", Options{Formats: []string{"pdf"}}, true},
		{"negative scale", Options{Scale: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Format: "yaml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	opts.Formats = []string{"bogus"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op, got %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Padding: true, Labels: true, Scale: 3}

	tests := []struct {
		format string
		want   cache.ArtifactKeyOpts
	}{
		{FormatSVG, cache.ArtifactKeyOpts{Format: "svg", Padding: true, Labels: true}},
		{FormatPNG, cache.ArtifactKeyOpts{Format: "png", Padding: true, Labels: true, Scale: 3}},
		{FormatJSON, cache.ArtifactKeyOpts{Format: "json"}},
		{FormatTree, cache.ArtifactKeyOpts{Format: "tree"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, opts.ArtifactKeyOpts(tt.format)); diff != "" {
			t.Errorf("ArtifactKeyOpts(%s) mismatch (-want +got):\n%s", tt.format, diff)
		}
	}
}

func TestExtensionAndContentType(t *testing.T) {
	tests := []struct {
		format, ext, mime string
	}{
		{FormatSVG, ".svg", "image/svg+xml"},
		{FormatPNG, ".png", "image/png"},
		{FormatJSON, ".layout.json", "application/json"},
		{FormatDOT, ".dot", "text/vnd.graphviz"},
		{FormatTree, ".tree.svg", "image/svg+xml"},
	}
	for _, tt := range tests {
		if got := Extension(tt.format); got != tt.ext {
			t.Errorf("Extension(%s) = %q, want %q", tt.format, got, tt.ext)
		}
		if got := ContentType(tt.format); got != tt.mime {
			t.Errorf("ContentType(%s) = %q, want %q", tt.format, got, tt.mime)
		}
	}
}
