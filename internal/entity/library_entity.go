package entity

import "time"

// LibraryEntry is a derived view row: a track whose latest ledger state
// is a like with no later removal tombstone.
type LibraryEntry struct {
	TrackId string
	Track   *Track
	Source  string
	AddedAt time.Time
}
