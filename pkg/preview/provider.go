package preview

import "context"

// TrackInfo is the minimal catalog shape a provider needs to resolve a
// preview: some upstreams key by id, others by a search term.
type TrackInfo struct {
	Id      string
	Name    string
	Artists []string
}

// Metadata is one resolved preview lookup. PreviewURL is nil for the
// normal "no preview available" case; Source tags where (or why not)
// the metadata came from, e.g. "itunes", "itunes-empty", "spotify".
type Metadata struct {
	PreviewURL  *string
	AlbumArtURL *string
	Source      string
}

// Provider resolves preview metadata from an external catalog. A nil
// Metadata with a nil error means the upstream answered and had nothing;
// an error means the upstream itself failed or timed out.
type Provider interface {
	Name() string
	LookupPreview(ctx context.Context, track TrackInfo) (*Metadata, error)
}
