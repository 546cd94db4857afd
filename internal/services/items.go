package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/hints"

	"github.com/refsync/refsync/internal/models"
)

// LookupItems returns the item rows for the given keys, in key order. Keys
// without a row are absent from the result, not an error.
func LookupItems(db *gorm.DB, keys []string) ([]models.Item, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	q := db.Model(&models.Item{})
	// The optimizer occasionally prefers a full scan for large IN lists.
	if db.Dialector.Name() == "mysql" {
		q = q.Clauses(hints.UseIndex("idx_items_key"))
	}

	var items []models.Item
	if err := q.Where("key IN ?", keys).Order("key").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("lookup items: %w", err)
	}
	return items, nil
}

// GetItem returns one item row by key.
func GetItem(db *gorm.DB, key string) (*models.Item, error) {
	var item models.Item
	err := db.Where("key = ?", key).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", key, err)
	}
	return &item, nil
}

// AllGroups returns every synced group.
func AllGroups(db *gorm.DB) ([]models.Group, error) {
	var groups []models.Group
	if err := db.Order("external_id").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// GroupCollections returns a group's collections. The group must exist.
func GroupCollections(db *gorm.DB, externalID int64) ([]models.Collection, error) {
	var count int64
	if err := db.Model(&models.Group{}).Where("external_id = ?", externalID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("find group %d: %w", externalID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("not found")
	}

	var collections []models.Collection
	err := db.Where("group_external_id = ?", externalID).Order("key").Find(&collections).Error
	if err != nil {
		return nil, fmt.Errorf("list collections for group %d: %w", externalID, err)
	}
	return collections, nil
}
