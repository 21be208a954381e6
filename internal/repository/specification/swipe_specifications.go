package specification

import "gorm.io/gorm"

// BySwipedTrackID filters ledger events for one track
type BySwipedTrackID struct {
	TrackID string
}

func (s BySwipedTrackID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("track_id = ?", s.TrackID)
}

// LedgerOrder orders ledger events by their append sequence. Folding the
// ledger depends on this total order, not on timestamps.
type LedgerOrder struct{}

func (s LedgerOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}
