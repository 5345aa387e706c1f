package cache

// ScopedKeyer wraps a Keyer with a prefix for isolation.
// The serve command uses it to keep each document's artifacts apart so a
// document can be invalidated without touching others.
//
// Example usage:
//
//	docKeyer := NewScopedKeyer(NewDefaultKeyer(), "doc:"+id.String()+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(drawListHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(drawListHash, opts)
}

// GraphKey generates a prefixed key for group-graph caching.
func (k *ScopedKeyer) GraphKey(dotHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(dotHash, opts)
}
