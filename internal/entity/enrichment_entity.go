package entity

// EnrichmentRecord is the cached result of one upstream preview lookup.
// A record with a nil PreviewURL is a valid negative result: the track
// simply has no preview, which is a displayable state, not a fault.
type EnrichmentRecord struct {
	TrackId     string
	PreviewURL  *string
	AlbumArtURL *string
	Source      string
}

// HasPreview reports whether the record carries playable preview audio.
func (r *EnrichmentRecord) HasPreview() bool {
	return r != nil && r.PreviewURL != nil && *r.PreviewURL != ""
}
