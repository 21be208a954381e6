package service

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"music-match-be/internal/dto"
	"music-match-be/internal/entity"
	"music-match-be/internal/pkg/apperror"
	"music-match-be/internal/repository/specification"
	"music-match-be/internal/repository/unitofwork"
	"music-match-be/pkg/utils"
)

type ITrackService interface {
	GetTrack(ctx context.Context, trackId string) (*entity.Track, error)
	GetTracksByIds(ctx context.Context, trackIds []string) (map[string]*entity.Track, error)
	GetSeedTracks(ctx context.Context, exclude map[string]bool, size int) ([]string, error)
	Search(ctx context.Context, query string, limit int) (*dto.SearchTracksResponse, error)
}

const (
	seedMinPop      = 0.75
	seedPoolLimit   = 500
	searchPoolLimit = 200
	defaultSearchN  = 10
)

type trackService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTrackService(uowFactory unitofwork.RepositoryFactory) ITrackService {
	return &trackService{uowFactory: uowFactory}
}

func (s *trackService) GetTrack(ctx context.Context, trackId string) (*entity.Track, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	track, err := uow.TrackRepository().FindOne(ctx, specification.ByTrackID{TrackID: trackId})
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, apperror.NewNotFound("track not found")
	}
	return track, nil
}

func (s *trackService) GetTracksByIds(ctx context.Context, trackIds []string) (map[string]*entity.Track, error) {
	result := make(map[string]*entity.Track, len(trackIds))
	if len(trackIds) == 0 {
		return result, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tracks, err := uow.TrackRepository().FindAll(ctx, specification.ByTrackIDs{TrackIDs: trackIds})
	if err != nil {
		return nil, err
	}
	for _, track := range tracks {
		result[track.Id] = track
	}
	return result, nil
}

// GetSeedTracks samples the opening deck: high popularity tracks
// bucketed by genre and drained round-robin, so the first swipes cover
// a spread of genres instead of one dominant bucket.
func (s *trackService) GetSeedTracks(ctx context.Context, exclude map[string]bool, size int) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	pool, err := uow.TrackRepository().FindAll(ctx,
		specification.PopularityAtLeast{Min: seedMinPop},
		specification.OrderBy{Field: "popularity_norm", Desc: true},
		specification.Limit{Limit: seedPoolLimit},
	)
	if err != nil {
		return nil, err
	}

	buckets := map[string][]string{}
	var keys []string
	for _, track := range pool {
		if exclude[track.Id] {
			continue
		}
		key := track.GenreKey()
		if key == "" {
			key = "misc"
		}
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], track.Id)
	}

	for _, key := range keys {
		ids := buckets[key]
		rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	}
	rand.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	// Round-robin drain across genre buckets
	seeds := make([]string, 0, size)
	for len(seeds) < size {
		drained := true
		for _, key := range keys {
			if len(buckets[key]) == 0 {
				continue
			}
			drained = false
			seeds = append(seeds, buckets[key][0])
			buckets[key] = buckets[key][1:]
			if len(seeds) >= size {
				break
			}
		}
		if drained {
			break
		}
	}
	return seeds, nil
}

func (s *trackService) Search(ctx context.Context, query string, limit int) (*dto.SearchTracksResponse, error) {
	normalized := utils.NormalizeQuery(query)
	if len(normalized) < 2 {
		return nil, apperror.NewInvalidInput("query must be at least 2 characters")
	}
	if limit <= 0 {
		limit = defaultSearchN
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	matches, err := uow.TrackRepository().FindAll(ctx,
		specification.NamePrefix{Prefix: normalized},
		specification.Limit{Limit: searchPoolLimit},
	)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		ri, rj := searchRank(matches[i], normalized), searchRank(matches[j], normalized)
		if ri != rj {
			return ri > rj
		}
		return popOf(matches[i]) > popOf(matches[j])
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]dto.TrackResponse, 0, len(matches))
	for _, track := range matches {
		results = append(results, ToTrackResponse(track, nil))
	}
	return &dto.SearchTracksResponse{Query: normalized, Results: results}, nil
}

// searchRank: exact name match beats prefix match; popularity breaks ties.
func searchRank(track *entity.Track, query string) int {
	if track.NameLowercase == query {
		return 2
	}
	if strings.HasPrefix(track.NameLowercase, query) {
		return 1
	}
	return 0
}

func popOf(track *entity.Track) float64 {
	if track.PopularityNorm == nil {
		return 0
	}
	return *track.PopularityNorm
}

// ToTrackResponse builds the shared track card. Enrichment is optional;
// callers that skip the upstream lookup pass nil.
func ToTrackResponse(track *entity.Track, enrichment *entity.EnrichmentRecord) dto.TrackResponse {
	res := dto.TrackResponse{
		Id:             track.Id,
		Name:           track.Name,
		Artists:        track.Artists,
		AlbumName:      track.AlbumName,
		PopularityNorm: track.PopularityNorm,
		Genre:          track.Genre,
		GenreGroup:     track.GenreGroup,
		Energy:         track.Energy,
		Valence:        track.Valence,
		Danceability:   track.Danceability,
	}
	if enrichment != nil {
		res.PreviewURL = enrichment.PreviewURL
		res.AlbumArtURL = enrichment.AlbumArtURL
		res.PreviewSource = enrichment.Source
	}
	return res
}
