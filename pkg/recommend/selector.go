package recommend

import (
	"context"
	"math/rand"

	"music-match-be/internal/entity"
	"music-match-be/internal/repository/specification"
	"music-match-be/internal/repository/unitofwork"
)

// UserState is everything the selector may consult about a user. Seen
// holds every track the user has ever judged; the selector must never
// return one of those.
type UserState struct {
	Username  string
	Seen      map[string]bool
	TopGenres []string
	Profile   *entity.User
}

// CandidateSelector is the pluggable refined-phase capability: given the
// user's state, produce the next unseen track or report exhaustion.
type CandidateSelector interface {
	NextCandidate(ctx context.Context, state UserState) (string, bool, error)
}

const (
	defaultPoolSize       = 800
	defaultCandidateLimit = 300
	candidateMinPop       = 0.6
)

// Selector is the default CandidateSelector: a popularity-gated pool
// filtered by the user's top genres (with random exploration fill),
// scored by genre weight, feature similarity, and a popularity bonus.
type Selector struct {
	uowFactory     unitofwork.RepositoryFactory
	poolSize       int
	candidateLimit int
}

func NewSelector(uowFactory unitofwork.RepositoryFactory) *Selector {
	return &Selector{
		uowFactory:     uowFactory,
		poolSize:       defaultPoolSize,
		candidateLimit: defaultCandidateLimit,
	}
}

func (s *Selector) NextCandidate(ctx context.Context, state UserState) (string, bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pool, err := uow.TrackRepository().FindAll(ctx,
		specification.PopularityAtLeast{Min: candidateMinPop},
		specification.OrderBy{Field: "popularity_norm", Desc: true},
		specification.Limit{Limit: s.poolSize},
	)
	if err != nil {
		return "", false, err
	}

	candidates, exploration := s.partition(pool, state)
	if len(candidates) < s.candidateLimit && len(exploration) > 0 {
		rand.Shuffle(len(exploration), func(i, j int) {
			exploration[i], exploration[j] = exploration[j], exploration[i]
		})
		fill := s.candidateLimit - len(candidates)
		if fill > len(exploration) {
			fill = len(exploration)
		}
		candidates = append(candidates, exploration[:fill]...)
	}
	if len(candidates) == 0 {
		return "", false, nil
	}

	prefs := BuildFeaturePreferences(state.Profile)
	weights := buildGenreWeightMap(state.TopGenres)

	bestId := ""
	bestScore := -1.0
	for _, track := range candidates {
		score := scoreTrack(track, prefs, weights)
		if score > bestScore {
			bestScore = score
			bestId = track.Id
		}
	}
	return bestId, bestId != "", nil
}

// partition splits the pool into genre-matching candidates and the
// exploration remainder, dropping anything already seen.
func (s *Selector) partition(pool []*entity.Track, state UserState) (candidates, exploration []*entity.Track) {
	allowed := make(map[string]bool, len(state.TopGenres))
	for _, g := range state.TopGenres {
		if g != "" {
			allowed[g] = true
		}
	}

	for _, track := range pool {
		if state.Seen[track.Id] {
			continue
		}
		if allowed[track.GenreKey()] {
			candidates = append(candidates, track)
			if len(candidates) >= s.candidateLimit {
				break
			}
		} else {
			exploration = append(exploration, track)
		}
	}
	return candidates, exploration
}
