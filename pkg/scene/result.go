package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/boxlayout/pkg/box"
	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/geom"
)

// Result is the serializable outcome of a layout: every mapped box with
// its final rectangles, in pre-order.
type Result struct {
	Name       string      `json:"name,omitempty" bson:"name,omitempty"`
	Width      int         `json:"width" bson:"width"`
	Height     int         `json:"height" bson:"height"`
	Background string      `json:"background,omitempty" bson:"background,omitempty"`
	Boxes      []BoxResult `json:"boxes" bson:"boxes"`
}

// BoxResult is one laid-out box. Kind is the manager of the box's own
// children, empty for leaves.
type BoxResult struct {
	ID     string    `json:"id" bson:"id"`
	Label  string    `json:"label,omitempty" bson:"label,omitempty"`
	Parent string    `json:"parent,omitempty" bson:"parent,omitempty"`
	Depth  int       `json:"depth" bson:"depth"`
	Kind   string    `json:"kind,omitempty" bson:"kind,omitempty"`
	Color  string    `json:"color,omitempty" bson:"color,omitempty"`
	Rect   geom.Rect `json:"rect" bson:"rect"`
	Inner  geom.Rect `json:"inner" bson:"inner"`
	Outer  geom.Rect `json:"outer" bson:"outer"`
}

// DisplayLabel returns the label, falling back to the ID.
func (b BoxResult) DisplayLabel() string {
	if b.Label != "" {
		return b.Label
	}
	return b.ID
}

// Find returns the box with the given ID.
func (r *Result) Find(id string) (BoxResult, bool) {
	for _, b := range r.Boxes {
		if b.ID == id {
			return b, true
		}
	}
	return BoxResult{}, false
}

// Result snapshots the current geometry of the scene.
func (s *Scene) Result() *Result {
	rb, _ := s.arena.Get(s.root)
	res := &Result{
		Name:       s.Name,
		Width:      rb.Rect().W,
		Height:     rb.Rect().H,
		Background: s.Background,
	}
	_ = s.arena.Walk(s.root, func(b *box.Box, depth int) error {
		br := BoxResult{
			ID:    s.names[b.ID()],
			Label: b.Label,
			Depth: depth,
			Color: b.Color,
			Rect:  b.Rect(),
			Inner: b.InnerRect(),
			Outer: b.OuterRect(),
		}
		if !b.IsRoot() {
			br.Parent = s.names[b.Parent()]
		}
		if b.Kind() != box.None {
			br.Kind = b.Kind().String()
		}
		res.Boxes = append(res.Boxes, br)
		return nil
	})
	return res
}

// MarshalResult serializes a Result to pretty-printed JSON bytes.
func MarshalResult(r *Result) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalResult deserializes JSON bytes into a Result.
func UnmarshalResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal result")
	}
	if len(r.Boxes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "result must contain at least the root box")
	}
	return &r, nil
}

// WriteResultFile writes a Result to a JSON file.
func WriteResultFile(r *Result, path string) error {
	data, err := MarshalResult(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadResultFile reads a Result from a JSON file.
func ReadResultFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalResult(data)
}
