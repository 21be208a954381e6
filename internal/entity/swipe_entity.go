package entity

import (
	"time"

	"github.com/google/uuid"
)

type SwipeDirection string

const (
	DirectionLike    SwipeDirection = "like"
	DirectionDislike SwipeDirection = "dislike"
	// DirectionRemoved is the tombstone appended when a track is removed
	// from the library. The original like event is never deleted.
	DirectionRemoved SwipeDirection = "removed"
)

// SwipeEvent is an append-only ledger fact. The latest event per
// (username, track) pair determines current library membership.
type SwipeEvent struct {
	Id        uuid.UUID
	Seq       int64
	Username  string
	TrackId   string
	SessionId string
	Direction SwipeDirection
	Source    string // "swipe" | "manual" | "search"
	Phase     string
	CreatedAt time.Time
}
