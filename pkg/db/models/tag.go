package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag is a single tag value owned by a group. Values are unique within
// their group case-insensitively; callers trim before storing. Search
// matches tags by value across all groups, not scoped to a group.
type Tag struct {
	ID      uint   `gorm:"primaryKey"`
	GroupID uint   `gorm:"not null;index:idx_group_value"`
	Value   string `gorm:"type:text;not null;index:idx_group_value"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Group TagGroup `gorm:"foreignKey:GroupID;references:ID"`
	Items []Item   `gorm:"many2many:item_tags;"`
}
