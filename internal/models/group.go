package models

import "time"

// Group is the top-level remote library container owning items and collections.
// ItemsVersion is the per-group incremental sync cursor; it is advanced only
// after a successful sync pass and excluded from upsert updates.
type Group struct {
	GroupID      uint64 `gorm:"primaryKey;autoIncrement"`
	ExternalID   int64  `gorm:"uniqueIndex:idx_groups_external_id;not null"`
	Name         string `gorm:"size:255;not null"`
	Version      int    `gorm:"not null;default:0"`
	Type         string `gorm:"size:255;not null"`
	Description  string `gorm:"size:255"`
	URL          string `gorm:"size:255"`
	NumItems     int    `gorm:"default:0"`
	ItemsVersion int    `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name for Group
func (Group) TableName() string {
	return "groups"
}
