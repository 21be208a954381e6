package recommend

import (
	"context"
	"testing"
	"time"

	"music-match-be/internal/entity"
	"music-match-be/internal/repository/contract"
	"music-match-be/internal/repository/specification"
	"music-match-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTrackRepo struct {
	tracks []*entity.Track
}

func (r *stubTrackRepo) Create(context.Context, *entity.Track) error { return nil }
func (r *stubTrackRepo) CreateInBatches(context.Context, []*entity.Track, int) error {
	return nil
}
func (r *stubTrackRepo) FindOne(context.Context, ...specification.Specification) (*entity.Track, error) {
	return nil, nil
}
func (r *stubTrackRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Track, error) {
	minPop := 0.0
	for _, spec := range specs {
		if s, ok := spec.(specification.PopularityAtLeast); ok {
			minPop = s.Min
		}
	}
	var result []*entity.Track
	for _, track := range r.tracks {
		if track.PopularityNorm != nil && *track.PopularityNorm >= minPop {
			result = append(result, track)
		}
	}
	return result, nil
}
func (r *stubTrackRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.tracks)), nil
}

type stubUow struct {
	tracks *stubTrackRepo
}

func (u *stubUow) Begin(context.Context) error               { return nil }
func (u *stubUow) Commit() error                             { return nil }
func (u *stubUow) Rollback() error                           { return nil }
func (u *stubUow) UserRepository() contract.UserRepository   { return nil }
func (u *stubUow) TrackRepository() contract.TrackRepository { return u.tracks }
func (u *stubUow) SwipeRepository() contract.SwipeRepository { return nil }

type stubFactory struct {
	uow *stubUow
}

func (f *stubFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

func candidateTrack(id, genreGroup string, pop, energy float64) *entity.Track {
	return &entity.Track{
		Id:             id,
		Name:           id,
		PopularityNorm: &pop,
		GenreGroup:     &genreGroup,
		Energy:         &energy,
	}
}

func newSelectorFixture(tracks ...*entity.Track) *Selector {
	return NewSelector(&stubFactory{uow: &stubUow{tracks: &stubTrackRepo{tracks: tracks}}})
}

func TestNextCandidatePrefersTopGenre(t *testing.T) {
	selector := newSelectorFixture(
		candidateTrack("pop-hit", "pop", 0.7, 0.5),
		candidateTrack("rock-hit", "rock", 0.9, 0.5),
	)

	user := entity.NewUser("alice", time.Now())
	id, ok, err := selector.NextCandidate(context.Background(), UserState{
		Username:  "alice",
		Seen:      map[string]bool{},
		TopGenres: []string{"pop"},
		Profile:   user,
	})
	require.NoError(t, err)
	require.True(t, ok)
	// Genre weight (0.45) outweighs the popularity edge (0.10)
	assert.Equal(t, "pop-hit", id)
}

func TestNextCandidateSkipsSeenTracks(t *testing.T) {
	selector := newSelectorFixture(
		candidateTrack("t1", "pop", 0.9, 0.5),
		candidateTrack("t2", "pop", 0.8, 0.5),
	)

	id, ok, err := selector.NextCandidate(context.Background(), UserState{
		Username:  "alice",
		Seen:      map[string]bool{"t1": true},
		TopGenres: []string{"pop"},
		Profile:   entity.NewUser("alice", time.Now()),
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "t2", id)
}

func TestNextCandidateExhaustion(t *testing.T) {
	selector := newSelectorFixture(
		candidateTrack("t1", "pop", 0.9, 0.5),
	)

	_, ok, err := selector.NextCandidate(context.Background(), UserState{
		Username:  "alice",
		Seen:      map[string]bool{"t1": true},
		TopGenres: []string{"pop"},
		Profile:   entity.NewUser("alice", time.Now()),
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextCandidateExploresWithoutGenreMatch(t *testing.T) {
	selector := newSelectorFixture(
		candidateTrack("jazz-cut", "jazz", 0.8, 0.5),
	)

	// No jazz in the profile, but exploration still surfaces it
	id, ok, err := selector.NextCandidate(context.Background(), UserState{
		Username:  "alice",
		Seen:      map[string]bool{},
		TopGenres: []string{"pop"},
		Profile:   entity.NewUser("alice", time.Now()),
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "jazz-cut", id)
}
