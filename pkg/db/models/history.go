package models

import "time"

// SearchHistoryEntry is a persisted snapshot of a prior search, either a
// raw query string or a serialized tag selection. Used only for replay;
// it never affects evaluation semantics.
type SearchHistoryEntry struct {
	ID uint `gorm:"primaryKey"`

	// Exactly one of RawQuery or TagIDs is set per entry.
	RawQuery   string `gorm:"type:text"`
	TagIDs     string `gorm:"type:text"` // comma-separated tag ids
	Combinator string `gorm:"type:text"` // AND or OR, empty for raw queries

	ExecutedAt time.Time `gorm:"index"`
}
