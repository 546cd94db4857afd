package models

import "time"

// Language is created on first observation of an item language and never updated.
type Language struct {
	Name      string `gorm:"primaryKey;size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Language
func (Language) TableName() string {
	return "languages"
}

// Tag is declared for schema parity with the remote catalog; tag reconciliation
// is inert, the flattened tags column on items is the live representation.
type Tag struct {
	Name      string `gorm:"primaryKey;size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Tag
func (Tag) TableName() string {
	return "tags"
}
