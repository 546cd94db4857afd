package models

import "time"

// ItemToCollection is a pure presence/absence associative row: created when a
// fetched item lists a membership not yet persisted, deleted when a persisted
// membership is absent from the item's current remote membership list.
type ItemToCollection struct {
	ItemKey       string `gorm:"primaryKey;size:255"`
	CollectionKey string `gorm:"primaryKey;size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the table name for ItemToCollection
func (ItemToCollection) TableName() string {
	return "item_to_collections"
}

// ItemToTag is declared for schema parity; see Tag.
type ItemToTag struct {
	ItemKey   string `gorm:"primaryKey;size:255"`
	TagName   string `gorm:"primaryKey;size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for ItemToTag
func (ItemToTag) TableName() string {
	return "item_to_tags"
}
