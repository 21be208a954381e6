package model

import (
	"time"

	"gorm.io/datatypes"
)

type Track struct {
	Id               string                      `gorm:"type:varchar(64);primaryKey"`
	Name             string                      `gorm:"type:varchar(512);not null"`
	NameLowercase    string                      `gorm:"type:varchar(512);index"`
	Artists          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	AlbumName        *string                     `gorm:"type:varchar(512)"`
	Popularity       *int
	PopularityNorm   *float64 `gorm:"index"`
	DurationMs       *int
	Explicit         *bool
	Danceability     *float64
	Energy           *float64
	Valence          *float64
	Acousticness     *float64
	Instrumentalness *float64
	Liveness         *float64
	Speechiness      *float64
	Tempo            *float64
	TempoNorm        *float64
	Genre            *string   `gorm:"type:varchar(128)"`
	GenreGroup       *string   `gorm:"type:varchar(64);index"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (Track) TableName() string {
	return "tracks"
}
