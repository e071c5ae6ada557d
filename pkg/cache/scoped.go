package cache

// ScopedKeyer prefixes every key of an inner keyer. The server uses it to
// keep tenants apart in a shared Redis database.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SourceKey(uri, query string) string {
	return k.prefix + k.inner.SourceKey(uri, query)
}

func (k *ScopedKeyer) ViewKey(dataHash string, opts ViewKeyOpts) string {
	return k.prefix + k.inner.ViewKey(dataHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(viewHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(viewHash, opts)
}
