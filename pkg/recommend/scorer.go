package recommend

import "music-match-be/internal/entity"

const (
	genreWeight      = 0.45
	featureWeight    = 0.45
	popularityWeight = 0.10
)

// BuildFeaturePreferences derives a target value in [0,1] for each
// numeric feature from the user's swipe aggregates: lean toward the
// liked mean and away from the disliked mean.
func BuildFeaturePreferences(profile *entity.User) map[string]float64 {
	prefs := make(map[string]float64, len(entity.NumericFeatures))
	if profile == nil {
		for _, f := range entity.NumericFeatures {
			prefs[f] = 0.5
		}
		return prefs
	}

	likesN := profile.LikesCount
	dislikesN := profile.DislikesCount

	for _, feature := range entity.NumericFeatures {
		likedSum := profile.FeatureSumsLiked[feature]
		dislikedSum := profile.FeatureSumsDisliked[feature]

		var pref float64
		switch {
		case likesN == 0 && dislikesN == 0:
			pref = 0.5
		case likesN > 0 && dislikesN == 0:
			pref = likedSum / float64(likesN)
		case likesN == 0 && dislikesN > 0:
			// Only negative signal: prefer the opposite region
			pref = 1.0 - dislikedSum/float64(dislikesN)
		default:
			likedMean := likedSum / float64(likesN)
			dislikedMean := dislikedSum / float64(dislikesN)
			pref = 0.7*likedMean + 0.3*(1.0-dislikedMean)
		}

		if pref < 0 {
			pref = 0
		}
		if pref > 1 {
			pref = 1
		}
		prefs[feature] = pref
	}
	return prefs
}

// buildGenreWeightMap turns the ordered top genres into rank weights:
// ["pop","rock","hiphop"] -> {pop: 1.0, rock: 0.66, hiphop: 0.33}.
func buildGenreWeightMap(topGenres []string) map[string]float64 {
	weights := make(map[string]float64, len(topGenres))
	n := len(topGenres)
	for i, g := range topGenres {
		if g == "" {
			continue
		}
		weights[g] = float64(n-i) / float64(n)
	}
	return weights
}

func scoreTrack(track *entity.Track, prefs map[string]float64, genreWeights map[string]float64) float64 {
	genreKey := track.GenreKey()
	if genreKey == "" {
		genreKey = "misc"
	}
	genreScore := genreWeights[genreKey]

	featScore := featureSimilarity(track, prefs)

	popularity := 0.0
	if track.PopularityNorm != nil {
		popularity = *track.PopularityNorm
	}

	return genreWeight*genreScore + featureWeight*featScore + popularityWeight*popularity
}

// featureSimilarity is 1 minus the mean absolute distance between the
// track's features and the preferred values, over features the track has.
func featureSimilarity(track *entity.Track, prefs map[string]float64) float64 {
	simSum := 0.0
	count := 0
	for feature, prefVal := range prefs {
		trackVal := track.FeatureValue(feature)
		if trackVal == nil {
			continue
		}
		diff := *trackVal - prefVal
		if diff < 0 {
			diff = -diff
		}
		sim := 1.0 - diff
		if sim < 0 {
			sim = 0
		}
		simSum += sim
		count++
	}
	if count == 0 {
		return 0.0
	}
	return simSum / float64(count)
}
