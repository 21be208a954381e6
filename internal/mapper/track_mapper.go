package mapper

import (
	"music-match-be/internal/entity"
	"music-match-be/internal/model"

	"gorm.io/datatypes"
)

type TrackMapper struct{}

func NewTrackMapper() *TrackMapper {
	return &TrackMapper{}
}

func (m *TrackMapper) ToEntity(t *model.Track) *entity.Track {
	if t == nil {
		return nil
	}
	return &entity.Track{
		Id:               t.Id,
		Name:             t.Name,
		NameLowercase:    t.NameLowercase,
		Artists:          []string(t.Artists),
		AlbumName:        t.AlbumName,
		Popularity:       t.Popularity,
		PopularityNorm:   t.PopularityNorm,
		DurationMs:       t.DurationMs,
		Explicit:         t.Explicit,
		Danceability:     t.Danceability,
		Energy:           t.Energy,
		Valence:          t.Valence,
		Acousticness:     t.Acousticness,
		Instrumentalness: t.Instrumentalness,
		Liveness:         t.Liveness,
		Speechiness:      t.Speechiness,
		Tempo:            t.Tempo,
		TempoNorm:        t.TempoNorm,
		Genre:            t.Genre,
		GenreGroup:       t.GenreGroup,
		CreatedAt:        t.CreatedAt,
	}
}

func (m *TrackMapper) ToModel(t *entity.Track) *model.Track {
	if t == nil {
		return nil
	}
	return &model.Track{
		Id:               t.Id,
		Name:             t.Name,
		NameLowercase:    t.NameLowercase,
		Artists:          datatypes.NewJSONSlice(t.Artists),
		AlbumName:        t.AlbumName,
		Popularity:       t.Popularity,
		PopularityNorm:   t.PopularityNorm,
		DurationMs:       t.DurationMs,
		Explicit:         t.Explicit,
		Danceability:     t.Danceability,
		Energy:           t.Energy,
		Valence:          t.Valence,
		Acousticness:     t.Acousticness,
		Instrumentalness: t.Instrumentalness,
		Liveness:         t.Liveness,
		Speechiness:      t.Speechiness,
		Tempo:            t.Tempo,
		TempoNorm:        t.TempoNorm,
		Genre:            t.Genre,
		GenreGroup:       t.GenreGroup,
		CreatedAt:        t.CreatedAt,
	}
}

func (m *TrackMapper) ToEntities(tracks []*model.Track) []*entity.Track {
	entities := make([]*entity.Track, len(tracks))
	for i, t := range tracks {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
