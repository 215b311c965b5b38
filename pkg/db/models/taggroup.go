package models

import (
	"time"

	"gorm.io/gorm"
)

// TagGroup is a named collection of tags with a display color and order.
// Group names are unique case-insensitively; callers trim before storing.
type TagGroup struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"type:text;not null;uniqueIndex"`
	Color        string `gorm:"type:text"`
	DisplayOrder int    `gorm:"default:0;index:idx_group_order"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Tags []Tag `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}
