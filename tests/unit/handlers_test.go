package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/refsync/refsync/internal/database"
	"github.com/refsync/refsync/internal/handlers"
	"github.com/refsync/refsync/internal/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedData(t *testing.T, db *gorm.DB) {
	t.Helper()
	group := models.Group{ExternalID: 777, Name: "Lab", Type: "PublicOpen", ItemsVersion: 20}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("Failed to seed group: %v", err)
	}
	collections := []models.Collection{
		{Key: "ROOT", Name: "Root", GroupExternalID: 777},
		{Key: "CHILD", Name: "Child", GroupExternalID: 777},
	}
	if err := db.Create(&collections).Error; err != nil {
		t.Fatalf("Failed to seed collections: %v", err)
	}
	items := []models.Item{
		{Key: "ITEM1", ItemType: "JournalArticle", Title: "First", GroupExternalID: 777},
		{Key: "ITEM2", ItemType: "Book", Title: "Second", GroupExternalID: 777},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("Failed to seed items: %v", err)
	}
}

// TestGetItems tests the GET /api/items endpoint
func TestGetItems(t *testing.T) {
	db := setupTestDB(t)
	seedData(t, db)

	app := fiber.New()
	handler := &handlers.ItemsHandler{DB: db}
	app.Get("/api/items", handler.GetItems)

	req := httptest.NewRequest("GET", "/api/items?keys=ITEM1,ITEM2,NOSUCH", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("Expected 2 items, got %d", len(result))
	}
}

// TestGetItemsRequiresKeys tests the key validation on GET /api/items
func TestGetItemsRequiresKeys(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.ItemsHandler{DB: db}
	app.Get("/api/items", handler.GetItems)

	req := httptest.NewRequest("GET", "/api/items", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

// TestGetItem tests the GET /api/items/:key endpoint
func TestGetItem(t *testing.T) {
	db := setupTestDB(t)
	seedData(t, db)

	app := fiber.New()
	handler := &handlers.ItemsHandler{DB: db}
	app.Get("/api/items/:key", handler.GetItem)

	req := httptest.NewRequest("GET", "/api/items/ITEM1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["Key"] != "ITEM1" {
		t.Errorf("Expected item ITEM1, got %v", result["Key"])
	}

	// Unknown key returns 404
	req = httptest.NewRequest("GET", "/api/items/NOSUCH", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

// TestGetGroups tests the GET /api/groups endpoint
func TestGetGroups(t *testing.T) {
	db := setupTestDB(t)
	seedData(t, db)

	app := fiber.New()
	handler := &handlers.GroupsHandler{DB: db}
	app.Get("/api/groups", handler.GetGroups)

	req := httptest.NewRequest("GET", "/api/groups", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("Expected 1 group, got %d", len(result))
	}
}

// TestGetGroupCollections tests the GET /api/groups/:externalId/collections endpoint
func TestGetGroupCollections(t *testing.T) {
	db := setupTestDB(t)
	seedData(t, db)

	app := fiber.New()
	handler := &handlers.GroupsHandler{DB: db}
	app.Get("/api/groups/:externalId/collections", handler.GetGroupCollections)

	req := httptest.NewRequest("GET", "/api/groups/777/collections", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("Expected 2 collections, got %d", len(result))
	}

	// Unknown group returns 404
	req = httptest.NewRequest("GET", "/api/groups/999/collections", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}

	// Non-integer id returns 400
	req = httptest.NewRequest("GET", "/api/groups/abc/collections", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}
