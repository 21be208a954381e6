package specification

import "gorm.io/gorm"

// PopularityAtLeast filters tracks with a minimum normalized popularity
type PopularityAtLeast struct {
	Min float64
}

func (s PopularityAtLeast) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("popularity_norm >= ?", s.Min)
}

// NamePrefix matches the lowercase track name column by prefix. The
// caller is expected to have normalized the query already.
type NamePrefix struct {
	Prefix string
}

func (s NamePrefix) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name_lowercase LIKE ?", s.Prefix+"%")
}

// ExcludeTrackIDs drops tracks the user has already judged
type ExcludeTrackIDs struct {
	TrackIDs []string
}

func (s ExcludeTrackIDs) Apply(db *gorm.DB) *gorm.DB {
	if len(s.TrackIDs) == 0 {
		return db
	}
	return db.Where("id NOT IN ?", s.TrackIDs)
}
