package service

import (
	"context"
	"sort"

	"music-match-be/internal/dto"
	"music-match-be/internal/entity"
	"music-match-be/internal/pkg/apperror"
	"music-match-be/pkg/archetype"
	"music-match-be/pkg/utils"
)

type IPersonalityService interface {
	GetPersonality(ctx context.Context, req *dto.PersonalityRequest) (*dto.PersonalityResponse, error)
}

const (
	topGenresLimit       = 5
	representativeTracks = 6
)

type personalityService struct {
	libraryService    ILibraryService
	enrichmentService IEnrichmentService
	classifier        archetype.Classifier
}

func NewPersonalityService(
	libraryService ILibraryService,
	enrichmentService IEnrichmentService,
	classifier archetype.Classifier,
) IPersonalityService {
	return &personalityService{
		libraryService:    libraryService,
		enrichmentService: enrichmentService,
		classifier:        classifier,
	}
}

func (s *personalityService) GetPersonality(ctx context.Context, req *dto.PersonalityRequest) (*dto.PersonalityResponse, error) {
	username := utils.NormalizeUsername(req.Username)
	if username == "" {
		return nil, apperror.NewInvalidInput("username is required")
	}

	entries, err := s.libraryService.FoldLibrary(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperror.NewInsufficientData("not enough liked tracks to build a personality")
	}

	metrics := buildMetrics(entries, topGenres(entries))
	result := s.classifier.Classify(archetype.Metrics{
		AvgEnergy:         metrics.AvgEnergy,
		AvgValence:        metrics.AvgValence,
		AvgPopularityNorm: metrics.AvgPopularityNorm,
		GenreDiversity:    metrics.GenreDiversity,
		TopGenres:         metrics.TopGenres,
	})

	representatives := pickRepresentatives(entries, representativeTracks)
	trackResponses := make([]dto.TrackResponse, 0, len(representatives))
	for _, entry := range representatives {
		enrichment := s.enrichmentService.Resolve(ctx, entry.Track)
		trackResponses = append(trackResponses, ToTrackResponse(entry.Track, enrichment))
	}

	return &dto.PersonalityResponse{
		Username:             username,
		ArchetypeId:          result.Id,
		Title:                result.Title,
		ShortDescription:     result.ShortDescription,
		LongDescription:      result.LongDescription,
		Metrics:              metrics,
		RepresentativeTracks: trackResponses,
	}, nil
}

// topGenres ranks the genres of the current library members by how many
// tracks carry them, breaking ties by which genre was liked first. A
// removed track contributes nothing; the report reflects the library as
// it stands, not the full swipe history.
func topGenres(entries []*entity.LibraryEntry) []string {
	counts := map[string]int{}
	firstLiked := map[string]int{}

	// Entries arrive most-recently-liked first; walk backwards so the
	// earliest like claims the tiebreak.
	for i := len(entries) - 1; i >= 0; i-- {
		genre := entries[i].Track.GenreKey()
		if genre == "" {
			continue
		}
		if _, ok := firstLiked[genre]; !ok {
			firstLiked[genre] = len(entries) - 1 - i
		}
		counts[genre]++
	}

	ranked := make([]string, 0, len(counts))
	for genre := range counts {
		ranked = append(ranked, genre)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstLiked[ranked[i]] < firstLiked[ranked[j]]
	})

	if len(ranked) > topGenresLimit {
		ranked = ranked[:topGenresLimit]
	}
	return ranked
}

func buildMetrics(entries []*entity.LibraryEntry, ranked []string) dto.PersonalityMetrics {
	genres := map[string]bool{}
	for _, entry := range entries {
		if key := entry.Track.GenreKey(); key != "" {
			genres[key] = true
		}
	}

	return dto.PersonalityMetrics{
		AvgEnergy:         featureMean(entries, "energy"),
		AvgValence:        featureMean(entries, "valence"),
		AvgDanceability:   featureMean(entries, "danceability"),
		AvgPopularityNorm: popularityMean(entries),
		GenreDiversity:    float64(len(genres)) / float64(len(entries)),
		TopGenres:         ranked,
		LikedCount:        len(entries),
	}
}

// featureMean averages one feature over the library, defaulting to the
// neutral 0.5 when no track carries the feature.
func featureMean(entries []*entity.LibraryEntry, feature string) float64 {
	sum := 0.0
	count := 0
	for _, entry := range entries {
		if v := entry.Track.FeatureValue(feature); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return 0.5
	}
	return sum / float64(count)
}

func popularityMean(entries []*entity.LibraryEntry) float64 {
	sum := 0.0
	count := 0
	for _, entry := range entries {
		if entry.Track.PopularityNorm != nil {
			sum += *entry.Track.PopularityNorm
			count++
		}
	}
	if count == 0 {
		return 0.5
	}
	return sum / float64(count)
}

func pickRepresentatives(entries []*entity.LibraryEntry, limit int) []*entity.LibraryEntry {
	sorted := make([]*entity.LibraryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return popOfEntry(sorted[i]) > popOfEntry(sorted[j])
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func popOfEntry(entry *entity.LibraryEntry) float64 {
	if entry.Track.PopularityNorm == nil {
		return 0
	}
	return *entry.Track.PopularityNorm
}
