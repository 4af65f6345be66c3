package box

import (
	"reflect"
	"strings"

	"github.com/matzehuels/boxlayout/pkg/errors"
)

// Kind identifies the geometry manager that owns a box's children.
type Kind int

const (
	None Kind = iota
	Pack
	Grid
	Place
)

var kindNames = [...]string{None: "none", Pack: "pack", Grid: "grid", Place: "place"}

func (k Kind) String() string {
	if k < None || k > Place {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves a manager name. The empty string and "none" yield None.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return None, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return None, errors.Configuration("unknown geometry manager %q (want pack, grid or place)", s)
}

// Options is the per-child configuration of one manager kind.
// The concrete types live in the manager package.
type Options interface {
	Kind() Kind
}

// IsNilOptions reports whether opts is nil or a nil pointer. Both mean
// "all defaults".
func IsNilOptions(opts Options) bool {
	if opts == nil {
		return true
	}
	v := reflect.ValueOf(opts)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
