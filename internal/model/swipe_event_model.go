package model

import (
	"time"

	"github.com/google/uuid"
)

// SwipeEvent rows are append-only. Seq gives a stable total order for
// folding the ledger even when two events share a timestamp.
type SwipeEvent struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex"`
	Username  string    `gorm:"type:varchar(128);not null;index"`
	TrackId   string    `gorm:"type:varchar(64);not null;index"`
	SessionId string    `gorm:"type:varchar(64)"`
	Direction string    `gorm:"type:varchar(16);not null"`
	Source    string    `gorm:"type:varchar(16)"`
	Phase     string    `gorm:"type:varchar(16)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SwipeEvent) TableName() string {
	return "swipe_events"
}
