package store

import "time"

const (
	PhaseSeed    = "seed"
	PhaseRefined = "refined"

	StatusActive    = "active"
	StatusCompleted = "completed"
)

// MatchSession is the in-memory state of one swipe session. It is only
// mutated by the session engine under the per-session lock; everything
// durable about a session lives in the swipe ledger.
type MatchSession struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Phase    string `json:"phase"`
	Status   string `json:"status"`

	// SeedTrackIds is fixed at creation; Position indexes into it during
	// the seed phase and degrades to a plain swipe counter afterwards.
	SeedTrackIds []string `json:"seed_track_ids"`
	Position     int      `json:"position"`

	// PendingTrackId is the track last handed out by NextTrack and not
	// yet swiped. A repeated NextTrack call returns it unchanged.
	PendingTrackId string `json:"pending_track_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *MatchSession) Completed() bool {
	return s.Status == StatusCompleted
}
