package models

import "time"

// Collection is a named, hierarchical grouping of items within a group.
// ParentCollection is a nullable self reference; the hierarchy is assumed
// acyclic in well-formed remote data.
type Collection struct {
	CollectionID   uint64 `gorm:"primaryKey;autoIncrement"`
	Key            string `gorm:"uniqueIndex:idx_collections_key;size:255;not null"`
	Version        int    `gorm:"not null;default:0"`
	Name           string `gorm:"size:255"`
	NumCollections int    `gorm:"default:0"`
	NumItems       int    `gorm:"default:0"`

	ParentCollection *string `gorm:"size:255;index"`
	GroupExternalID  int64   `gorm:"index"`

	Relations JSON
	Deleted   int `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Collection
func (Collection) TableName() string {
	return "collections"
}
