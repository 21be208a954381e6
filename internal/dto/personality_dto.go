package dto

type PersonalityRequest struct {
	Username string `json:"username" validate:"required,min=1,max=128"`
}

type PersonalityMetrics struct {
	AvgEnergy         float64  `json:"avg_energy"`
	AvgValence        float64  `json:"avg_valence"`
	AvgDanceability   float64  `json:"avg_danceability"`
	AvgPopularityNorm float64  `json:"avg_popularity_norm"`
	GenreDiversity    float64  `json:"genre_diversity"`
	TopGenres         []string `json:"top_genres"`
	LikedCount        int      `json:"liked_count"`
}

type PersonalityResponse struct {
	Username             string             `json:"username"`
	ArchetypeId          string             `json:"archetype_id"`
	Title                string             `json:"title"`
	ShortDescription     string             `json:"short_description"`
	LongDescription      string             `json:"long_description"`
	Metrics              PersonalityMetrics `json:"metrics"`
	RepresentativeTracks []TrackResponse    `json:"representative_tracks"`
}
