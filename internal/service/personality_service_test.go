package service

import (
	"context"
	"errors"
	"testing"

	"music-match-be/internal/dto"
	"music-match-be/internal/entity"
	"music-match-be/internal/pkg/apperror"
	"music-match-be/pkg/archetype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPersonalityFixture(t *testing.T) (*fakeRepoFactory, IPersonalityService, ILibraryService) {
	t.Helper()
	factory := newFakeRepoFactory()
	trackService := NewTrackService(factory)
	libraryService := NewLibraryService(factory, trackService, stubEnrichment{})
	svc := NewPersonalityService(libraryService, stubEnrichment{}, archetype.NewRuleClassifier())
	return factory, svc, libraryService
}

func TestPersonalityEmptyLibraryIsInsufficientData(t *testing.T) {
	_, svc, _ := newPersonalityFixture(t)

	_, err := svc.GetPersonality(context.Background(), &dto.PersonalityRequest{Username: "alice"})
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeInsufficientData, appErr.Code)
}

func TestPersonalityMetricsAreLibraryMeans(t *testing.T) {
	factory, svc, lib := newPersonalityFixture(t)
	ctx := context.Background()

	low := testTrack("t1", "Alpha", "pop", 0.9)
	low.Energy = floatPtr(0.2)
	low.Valence = floatPtr(0.4)
	high := testTrack("t2", "Beta", "rock", 0.7)
	high.Energy = floatPtr(0.8)
	high.Valence = floatPtr(0.6)

	require.NoError(t, factory.uow.tracks.Create(ctx, low))
	require.NoError(t, factory.uow.tracks.Create(ctx, high))

	_, err := lib.AddTrack(ctx, &dto.AddLibraryTrackRequest{Username: "alice", TrackId: "t1"})
	require.NoError(t, err)
	_, err = lib.AddTrack(ctx, &dto.AddLibraryTrackRequest{Username: "alice", TrackId: "t2"})
	require.NoError(t, err)

	res, err := svc.GetPersonality(ctx, &dto.PersonalityRequest{Username: "alice"})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, res.Metrics.AvgEnergy, 1e-9)
	assert.InDelta(t, 0.5, res.Metrics.AvgValence, 1e-9)
	assert.InDelta(t, 0.8, res.Metrics.AvgPopularityNorm, 1e-9)
	// Two liked tracks, two distinct genres
	assert.InDelta(t, 1.0, res.Metrics.GenreDiversity, 1e-9)
	assert.Equal(t, 2, res.Metrics.LikedCount)
}

func TestPersonalityTopGenresTieBrokenByFirstLike(t *testing.T) {
	factory, svc, _ := newPersonalityFixture(t)
	ctx := context.Background()

	require.NoError(t, factory.uow.tracks.Create(ctx, testTrack("t1", "Alpha", "rock", 0.9)))
	require.NoError(t, factory.uow.tracks.Create(ctx, testTrack("t2", "Beta", "pop", 0.8)))

	// rock liked first, then pop: equal scores, rock wins the tie
	for _, trackId := range []string{"t1", "t2"} {
		err := factory.uow.swipes.Append(ctx, &entity.SwipeEvent{
			Username:  "alice",
			TrackId:   trackId,
			Direction: entity.DirectionLike,
			Source:    "swipe",
		})
		require.NoError(t, err)
	}

	res, err := svc.GetPersonality(ctx, &dto.PersonalityRequest{Username: "alice"})
	require.NoError(t, err)
	require.Len(t, res.Metrics.TopGenres, 2)
	assert.Equal(t, "rock", res.Metrics.TopGenres[0])
	assert.Equal(t, "pop", res.Metrics.TopGenres[1])
}

func TestPersonalityTopGenresFollowLibraryRemovals(t *testing.T) {
	factory, svc, lib := newPersonalityFixture(t)
	ctx := context.Background()

	require.NoError(t, factory.uow.tracks.Create(ctx, testTrack("p1", "Alpha", "pop", 0.9)))
	require.NoError(t, factory.uow.tracks.Create(ctx, testTrack("p2", "Beta", "pop", 0.8)))
	require.NoError(t, factory.uow.tracks.Create(ctx, testTrack("r1", "Gamma", "rock", 0.7)))

	for _, trackId := range []string{"p1", "p2", "r1"} {
		_, err := lib.AddTrack(ctx, &dto.AddLibraryTrackRequest{Username: "alice", TrackId: trackId})
		require.NoError(t, err)
	}
	for _, trackId := range []string{"p1", "p2"} {
		_, err := lib.RemoveTrack(ctx, "alice", trackId)
		require.NoError(t, err)
	}

	// Both pop tracks are tombstoned; only the current library counts
	res, err := svc.GetPersonality(ctx, &dto.PersonalityRequest{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rock"}, res.Metrics.TopGenres)
	assert.Equal(t, 1, res.Metrics.LikedCount)
}

func TestPersonalityRepresentativeTracksByPopularity(t *testing.T) {
	factory, svc, lib := newPersonalityFixture(t)
	ctx := context.Background()

	pops := []float64{0.3, 0.9, 0.5, 0.7, 0.4, 0.6, 0.8}
	ids := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"}
	for i, id := range ids {
		require.NoError(t, factory.uow.tracks.Create(ctx, testTrack(id, "Track "+id, "pop", pops[i])))
		_, err := lib.AddTrack(ctx, &dto.AddLibraryTrackRequest{Username: "alice", TrackId: id})
		require.NoError(t, err)
	}

	res, err := svc.GetPersonality(ctx, &dto.PersonalityRequest{Username: "alice"})
	require.NoError(t, err)
	require.Len(t, res.RepresentativeTracks, 6)
	assert.Equal(t, "t2", res.RepresentativeTracks[0].Id)
	// The least popular liked track is the one left out
	for _, track := range res.RepresentativeTracks {
		assert.NotEqual(t, "t1", track.Id)
	}
}

func TestPersonalityArchetypeIsDeterministic(t *testing.T) {
	factory, svc, lib := newPersonalityFixture(t)
	ctx := context.Background()

	bright := testTrack("t1", "Alpha", "pop", 0.9)
	bright.Energy = floatPtr(0.8)
	bright.Valence = floatPtr(0.7)
	require.NoError(t, factory.uow.tracks.Create(ctx, bright))
	_, err := lib.AddTrack(ctx, &dto.AddLibraryTrackRequest{Username: "alice", TrackId: "t1"})
	require.NoError(t, err)

	first, err := svc.GetPersonality(ctx, &dto.PersonalityRequest{Username: "alice"})
	require.NoError(t, err)
	second, err := svc.GetPersonality(ctx, &dto.PersonalityRequest{Username: "alice"})
	require.NoError(t, err)

	assert.Equal(t, "sunlit_groove_pilot", first.ArchetypeId)
	assert.Equal(t, first.LongDescription, second.LongDescription)
}
