package cache

// ViewKeyOpts are the inputs besides the dataset that change a view model.
type ViewKeyOpts struct {
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Orientation string   `json:"orientation"`
	OptionsHash string   `json:"options_hash,omitempty"`
	Resources   []string `json:"resources,omitempty"`
}

// ArtifactKeyOpts are the inputs besides the view that change a rendered
// artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Theme  string `json:"theme,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SourceKey identifies raw activities fetched from an external store.
	SourceKey(uri, query string) string

	// ViewKey identifies a view model computed from a dataset.
	ViewKey(dataHash string, opts ViewKeyOpts) string

	// ArtifactKey identifies one rendered output of a view model.
	ArtifactKey(viewHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every key component with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SourceKey returns "source:<hash>".
func (DefaultKeyer) SourceKey(uri, query string) string {
	return hashKey("source", uri, query)
}

// ViewKey returns "view:<hash>". The declared resource order matters, so
// the list is hashed as given.
func (DefaultKeyer) ViewKey(dataHash string, opts ViewKeyOpts) string {
	return hashKey("view", dataHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(viewHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", viewHash, opts)
}

var _ Keyer = DefaultKeyer{}
