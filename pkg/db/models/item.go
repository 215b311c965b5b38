package models

import (
	"time"

	"gorm.io/gorm"
)

// Item represents metadata for a tagged file or directory. Items are
// created lazily the first time a path is tagged. Size and ModifiedAt
// are nullable; directories carry no size.
type Item struct {
	ID    uint   `gorm:"primaryKey"`
	Path  string `gorm:"type:text;not null;uniqueIndex"`
	IsDir bool   `gorm:"default:false"`

	// File metadata
	Size       *int64
	ModifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Tags []Tag `gorm:"many2many:item_tags;"`
}
