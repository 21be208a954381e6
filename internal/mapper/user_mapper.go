package mapper

import (
	"music-match-be/internal/entity"
	"music-match-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Username:            u.Username,
		LikesCount:          u.LikesCount,
		DislikesCount:       u.DislikesCount,
		LikedGenres:         toIntMap(u.LikedGenres),
		DislikedGenres:      toIntMap(u.DislikedGenres),
		FeatureSumsLiked:    toFloatMap(u.FeatureSumsLiked),
		FeatureSumsDisliked: toFloatMap(u.FeatureSumsDisliked),
		CreatedAt:           u.CreatedAt,
		LastActiveAt:        u.LastActiveAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Username:            u.Username,
		LikesCount:          u.LikesCount,
		DislikesCount:       u.DislikesCount,
		LikedGenres:         fromIntMap(u.LikedGenres),
		DislikedGenres:      fromIntMap(u.DislikedGenres),
		FeatureSumsLiked:    fromFloatMap(u.FeatureSumsLiked),
		FeatureSumsDisliked: fromFloatMap(u.FeatureSumsDisliked),
		CreatedAt:           u.CreatedAt,
		LastActiveAt:        u.LastActiveAt,
	}
}

// JSONB round-trips numbers as float64; counts live as ints in the domain.

func toIntMap(raw datatypes.JSONMap) map[string]int {
	out := make(map[string]int, len(raw))
	for k, v := range raw {
		if f, ok := v.(float64); ok {
			out[k] = int(f)
		}
	}
	return out
}

func toFloatMap(raw datatypes.JSONMap) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		if f, ok := v.(float64); ok {
			out[k] = f
		}
	}
	return out
}

func fromIntMap(m map[string]int) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(m))
	for k, v := range m {
		out[k] = float64(v)
	}
	return out
}

func fromFloatMap(m map[string]float64) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
