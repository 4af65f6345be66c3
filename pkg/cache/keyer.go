package cache

import "strings"

// LayoutKeyOpts holds the inputs that change a layout result besides the
// document bytes.
type LayoutKeyOpts struct {
	Format string `json:"format"`
}

// ArtifactKeyOpts holds the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Padding bool    `json:"padding"`
	Labels  bool    `json:"labels"`
	Scale   float64 `json:"scale"`
}

// Keyer generates cache keys. Implementations must be deterministic.
type Keyer interface {
	// LayoutKey returns the key of the layout of a document.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of a rendered layout result.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "<type>:<sha256 of the inputs>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}

// KeyType returns the entry type of a key produced by a Keyer
// ("layout", "artifact"), ignoring any scope prefix.
func KeyType(key string) string {
	for _, t := range []string{"layout", "artifact"} {
		if strings.Contains(key, t+":") {
			return t
		}
	}
	return "unknown"
}
