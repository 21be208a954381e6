package dto

type PreviewResponse struct {
	TrackId     string  `json:"track_id"`
	PreviewURL  *string `json:"preview_url"`
	AlbumArtURL *string `json:"album_art_url"`
	Source      string  `json:"source"`
}

// PrefetchPreviewMessage is the payload published after a swipe so the
// consumer can warm the enrichment cache for the upcoming track.
type PrefetchPreviewMessage struct {
	TrackId string `json:"track_id"`
}
