package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/boxlayout/pkg/errors"
)

// Document formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Formats lists the supported document formats.
var Formats = []string{FormatTOML, FormatYAML, FormatJSON}

// Document describes a root box (the display) and the tree beneath it.
type Document struct {
	Name       string  `toml:"name" yaml:"name" json:"name"`
	Width      int     `toml:"width" yaml:"width" json:"width"`
	Height     int     `toml:"height" yaml:"height" json:"height"`
	Inpad      Padding `toml:"inpad" yaml:"inpad" json:"inpad,omitempty"`
	Background string  `toml:"background" yaml:"background" json:"background,omitempty"`
	Children   []Node  `toml:"children" yaml:"children" json:"children,omitempty"`
}

// Node describes one box and how it is mapped into its parent.
//
// Manager names the parent's geometry manager ("pack", "grid", "place").
// It may be omitted once a sibling has set it. Options holds the manager
// options of this box, keyed as in manager.Keys. A hidden node is created
// but never mapped, so it takes no part in layout.
type Node struct {
	ID       string         `toml:"id" yaml:"id" json:"id,omitempty"`
	Label    string         `toml:"label" yaml:"label" json:"label,omitempty"`
	Width    int            `toml:"width" yaml:"width" json:"width,omitempty"`
	Height   int            `toml:"height" yaml:"height" json:"height,omitempty"`
	Inpad    Padding        `toml:"inpad" yaml:"inpad" json:"inpad,omitempty"`
	Outpad   Padding        `toml:"outpad" yaml:"outpad" json:"outpad,omitempty"`
	Color    string         `toml:"color" yaml:"color" json:"color,omitempty"`
	Manager  string         `toml:"manager" yaml:"manager" json:"manager,omitempty"`
	Options  map[string]any `toml:"options" yaml:"options" json:"options,omitempty"`
	Hidden   bool           `toml:"hidden" yaml:"hidden" json:"hidden,omitempty"`
	Children []Node         `toml:"children" yaml:"children" json:"children,omitempty"`
}

// Padding is a padding list that may be written as a single number.
type Padding []int

// UnmarshalTOML implements toml.Unmarshaler.
func (p *Padding) UnmarshalTOML(v any) error {
	return p.set(v)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Padding) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return p.set(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Padding) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return p.set(v)
}

func (p *Padding) set(v any) error {
	if n, ok := number(v); ok {
		*p = Padding{n}
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return fmt.Errorf("padding must be a number or a list of numbers, got %T", v)
	}
	out := make(Padding, 0, len(list))
	for _, item := range list {
		n, ok := number(item)
		if !ok {
			return fmt.Errorf("padding must be a number or a list of numbers, got %v", item)
		}
		out = append(out, n)
	}
	*p = out
	return nil
}

func number(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// FormatFromPath returns the document format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer document format from %q (want .toml, .yaml, .yml or .json)", path)
}

// Decode parses a document in the given format. Unknown fields are errors.
func Decode(data []byte, format string) (*Document, error) {
	var doc Document
	switch strings.ToLower(format) {
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown field %q", undecoded[0].String())
		}
	case FormatYAML, "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	return &doc, nil
}

// ReadFile reads and decodes the document at path, inferring the format
// from its extension.
func ReadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data, format)
}

// Count returns the number of nodes in the document, the root excluded.
func (d *Document) Count() int {
	var count func([]Node) int
	count = func(nodes []Node) int {
		n := len(nodes)
		for _, c := range nodes {
			n += count(c.Children)
		}
		return n
	}
	return count(d.Children)
}
