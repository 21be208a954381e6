package entity

import (
	"sort"
	"time"
)

// User carries the per-user taste aggregates updated on every swipe.
// The aggregates feed the refined-phase candidate selector; the library
// and personality views are always folded from the ledger instead.
type User struct {
	Username            string
	LikesCount          int
	DislikesCount       int
	LikedGenres         map[string]int
	DislikedGenres      map[string]int
	FeatureSumsLiked    map[string]float64
	FeatureSumsDisliked map[string]float64
	CreatedAt           time.Time
	LastActiveAt        time.Time
}

func NewUser(username string, now time.Time) *User {
	return &User{
		Username:            username,
		LikedGenres:         map[string]int{},
		DislikedGenres:      map[string]int{},
		FeatureSumsLiked:    defaultFeatureMap(),
		FeatureSumsDisliked: defaultFeatureMap(),
		CreatedAt:           now,
		LastActiveAt:        now,
	}
}

func defaultFeatureMap() map[string]float64 {
	m := make(map[string]float64, len(NumericFeatures))
	for _, f := range NumericFeatures {
		m[f] = 0.0
	}
	return m
}

// ApplySwipe folds one swipe into the aggregates.
func (u *User) ApplySwipe(track *Track, liked bool) {
	if liked {
		u.LikesCount++
	} else {
		u.DislikesCount++
	}

	genreKey := track.GenreKey()
	if genreKey != "" {
		genreMap := u.DislikedGenres
		if liked {
			genreMap = u.LikedGenres
		}
		genreMap[genreKey]++
	}

	featureMap := u.FeatureSumsDisliked
	if liked {
		featureMap = u.FeatureSumsLiked
	}
	for _, feature := range NumericFeatures {
		if v := track.FeatureValue(feature); v != nil {
			featureMap[feature] += *v
		}
	}
}

// TopGenres ranks genres by liked count minus half the disliked count.
func (u *User) TopGenres(limit int) []string {
	scores := map[string]float64{}
	for genre, count := range u.LikedGenres {
		if genre == "" {
			continue
		}
		scores[genre] += float64(count)
	}
	for genre, count := range u.DislikedGenres {
		if genre == "" {
			continue
		}
		scores[genre] -= 0.5 * float64(count)
	}

	genres := make([]string, 0, len(scores))
	for genre := range scores {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool {
		if scores[genres[i]] != scores[genres[j]] {
			return scores[genres[i]] > scores[genres[j]]
		}
		return genres[i] < genres[j]
	})

	if len(genres) > limit {
		genres = genres[:limit]
	}
	return genres
}
