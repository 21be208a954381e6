package dto

// TrackResponse is the public card shape for a track, shared by the
// match deck, library, search, and personality endpoints.
type TrackResponse struct {
	Id             string   `json:"id"`
	Name           string   `json:"name"`
	Artists        []string `json:"artists"`
	AlbumName      *string  `json:"album_name,omitempty"`
	PopularityNorm *float64 `json:"popularity_norm,omitempty"`
	Genre          *string  `json:"genre,omitempty"`
	GenreGroup     *string  `json:"genre_group,omitempty"`
	Energy         *float64 `json:"energy,omitempty"`
	Valence        *float64 `json:"valence,omitempty"`
	Danceability   *float64 `json:"danceability,omitempty"`
	PreviewURL     *string  `json:"preview_url,omitempty"`
	AlbumArtURL    *string  `json:"album_art_url,omitempty"`
	PreviewSource  string   `json:"preview_source,omitempty"`
}

type SearchTracksRequest struct {
	Query string `json:"query" validate:"required,min=2"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

type SearchTracksResponse struct {
	Query   string          `json:"query"`
	Results []TrackResponse `json:"results"`
}
