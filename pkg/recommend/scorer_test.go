package recommend

import (
	"testing"
	"time"

	"music-match-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestBuildFeaturePreferencesNoSignalIsNeutral(t *testing.T) {
	prefs := BuildFeaturePreferences(entity.NewUser("alice", time.Now()))
	for _, feature := range entity.NumericFeatures {
		assert.InDelta(t, 0.5, prefs[feature], 1e-9, feature)
	}
}

func TestBuildFeaturePreferencesNilProfileIsNeutral(t *testing.T) {
	prefs := BuildFeaturePreferences(nil)
	assert.InDelta(t, 0.5, prefs["energy"], 1e-9)
}

func TestBuildFeaturePreferencesLikesOnly(t *testing.T) {
	user := entity.NewUser("alice", time.Now())
	user.LikesCount = 2
	user.FeatureSumsLiked["energy"] = 1.6 // mean 0.8

	prefs := BuildFeaturePreferences(user)
	assert.InDelta(t, 0.8, prefs["energy"], 1e-9)
}

func TestBuildFeaturePreferencesDislikesOnlyInverts(t *testing.T) {
	user := entity.NewUser("alice", time.Now())
	user.DislikesCount = 2
	user.FeatureSumsDisliked["energy"] = 1.6 // disliked mean 0.8

	prefs := BuildFeaturePreferences(user)
	assert.InDelta(t, 0.2, prefs["energy"], 1e-9)
}

func TestBuildFeaturePreferencesBlendsBothSignals(t *testing.T) {
	user := entity.NewUser("alice", time.Now())
	user.LikesCount = 1
	user.DislikesCount = 1
	user.FeatureSumsLiked["energy"] = 0.9
	user.FeatureSumsDisliked["energy"] = 0.2

	// 0.7*0.9 + 0.3*(1-0.2) = 0.87
	prefs := BuildFeaturePreferences(user)
	assert.InDelta(t, 0.87, prefs["energy"], 1e-9)
}

func TestBuildGenreWeightMapRanks(t *testing.T) {
	weights := buildGenreWeightMap([]string{"pop", "rock", "hiphop"})

	assert.InDelta(t, 1.0, weights["pop"], 1e-9)
	assert.InDelta(t, 2.0/3.0, weights["rock"], 1e-9)
	assert.InDelta(t, 1.0/3.0, weights["hiphop"], 1e-9)
	assert.Zero(t, weights["jazz"])
}

func TestFeatureSimilarityPerfectMatch(t *testing.T) {
	track := &entity.Track{
		Energy:  floatPtr(0.6),
		Valence: floatPtr(0.4),
	}
	prefs := map[string]float64{"energy": 0.6, "valence": 0.4}

	assert.InDelta(t, 1.0, featureSimilarity(track, prefs), 1e-9)
}

func TestFeatureSimilaritySkipsMissingFeatures(t *testing.T) {
	track := &entity.Track{Energy: floatPtr(0.5)}
	prefs := map[string]float64{"energy": 0.5, "valence": 0.9}

	// Valence is absent on the track, so only energy counts
	assert.InDelta(t, 1.0, featureSimilarity(track, prefs), 1e-9)
}

func TestScoreTrackPrefersMatchingGenre(t *testing.T) {
	prefs := map[string]float64{"energy": 0.5}
	weights := map[string]float64{"pop": 1.0}

	popTrack := &entity.Track{
		Id:             "p",
		GenreGroup:     strPtr("pop"),
		PopularityNorm: floatPtr(0.7),
		Energy:         floatPtr(0.5),
	}
	rockTrack := &entity.Track{
		Id:             "r",
		GenreGroup:     strPtr("rock"),
		PopularityNorm: floatPtr(0.7),
		Energy:         floatPtr(0.5),
	}

	assert.Greater(t, scoreTrack(popTrack, prefs, weights), scoreTrack(rockTrack, prefs, weights))
}
