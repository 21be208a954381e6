package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	Username            string            `gorm:"type:varchar(128);primaryKey"`
	LikesCount          int               `gorm:"not null;default:0"`
	DislikesCount       int               `gorm:"not null;default:0"`
	LikedGenres         datatypes.JSONMap `gorm:"type:jsonb"`
	DislikedGenres      datatypes.JSONMap `gorm:"type:jsonb"`
	FeatureSumsLiked    datatypes.JSONMap `gorm:"type:jsonb"`
	FeatureSumsDisliked datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt           time.Time         `gorm:"autoCreateTime"`
	LastActiveAt        time.Time
}

func (User) TableName() string {
	return "users"
}
