package entity

import "time"

// NumericFeatures lists the normalized audio features used for taste
// aggregation and candidate scoring. All values live in [0, 1].
var NumericFeatures = []string{
	"danceability",
	"energy",
	"acousticness",
	"valence",
	"tempo_norm",
	"instrumentalness",
	"liveness",
	"speechiness",
}

type Track struct {
	Id               string
	Name             string
	NameLowercase    string
	Artists          []string
	AlbumName        *string
	Popularity       *int
	PopularityNorm   *float64
	DurationMs       *int
	Explicit         *bool
	Danceability     *float64
	Energy           *float64
	Valence          *float64
	Acousticness     *float64
	Instrumentalness *float64
	Liveness         *float64
	Speechiness      *float64
	Tempo            *float64
	TempoNorm        *float64
	Genre            *string
	GenreGroup       *string
	CreatedAt        time.Time
}

// FeatureValue resolves one of NumericFeatures by name. Returns nil when
// the catalog record is missing that feature.
func (t *Track) FeatureValue(feature string) *float64 {
	switch feature {
	case "danceability":
		return t.Danceability
	case "energy":
		return t.Energy
	case "acousticness":
		return t.Acousticness
	case "valence":
		return t.Valence
	case "tempo_norm":
		return t.TempoNorm
	case "instrumentalness":
		return t.Instrumentalness
	case "liveness":
		return t.Liveness
	case "speechiness":
		return t.Speechiness
	}
	return nil
}

// GenreKey prefers the coarse genre group over the raw genre label.
func (t *Track) GenreKey() string {
	if t.GenreGroup != nil && *t.GenreGroup != "" {
		return *t.GenreGroup
	}
	if t.Genre != nil {
		return *t.Genre
	}
	return ""
}
