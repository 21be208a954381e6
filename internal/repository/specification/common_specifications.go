package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// ByTrackID filters by catalog track id
type ByTrackID struct {
	TrackID string
}

func (s ByTrackID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.TrackID)
}

// ByTrackIDs filters by a list of catalog track ids
type ByTrackIDs struct {
	TrackIDs []string
}

func (s ByTrackIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ?", s.TrackIDs)
}

// ByUsername filters rows owned by a canonical username
type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// Limit caps the result set without an offset
type Limit struct {
	Limit int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit)
}

// FilterBy Generic Filter
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s = ?", s.Field)
	return db.Where(query, s.Value)
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}
