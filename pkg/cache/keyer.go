package cache

import "fmt"

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// ArtifactKey is the key of one rendered output of a draw list.
	ArtifactKey(drawListHash string, opts ArtifactKeyOpts) string
	// GraphKey is the key of a rendered group-graph view.
	GraphKey(dotHash string, opts GraphKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	Title      string  `json:"title,omitempty"`
	Background string  `json:"background,omitempty"`
	Native     bool    `json:"native,omitempty"`
}

// GraphKeyOpts are the options of a group-graph rendering.
type GraphKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes options into keys with a per-stage prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(drawListHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), drawListHash, opts)
}

// GraphKey returns "graph:<format>:<hash>".
func (DefaultKeyer) GraphKey(dotHash string, opts GraphKeyOpts) string {
	return hashKey(fmt.Sprintf("graph:%s", opts.Format), dotHash, opts)
}
