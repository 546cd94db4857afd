package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/refsync/refsync/internal/services"
	"github.com/refsync/refsync/internal/utils"
)

// ItemsHandler handles synced item routes
type ItemsHandler struct {
	DB *gorm.DB
}

// GetItems handles GET /api/items?keys=...
// @Summary Look up items by key
// @Description Get synced item records for a set of keys
// @Tags Items
// @Accept json
// @Produce json
// @Param keys query string true "Comma-separated list of item keys"
// @Success 200 {array} models.Item
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /items [get]
func (h *ItemsHandler) GetItems(c *fiber.Ctx) error {
	keys := parseKeys(c)
	if len(keys) == 0 {
		return utils.ErrorResponse(c, "at least one key is required", fiber.StatusBadRequest, "getItems")
	}

	items, err := services.LookupItems(h.DB, keys)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getItems")
	}

	if len(items) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

// GetItem handles GET /api/items/:key
// @Summary Get one item by key
// @Description Get a single synced item record
// @Tags Items
// @Accept json
// @Produce json
// @Param key path string true "Item key"
// @Success 200 {object} models.Item
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /items/{key} [get]
func (h *ItemsHandler) GetItem(c *fiber.Ctx) error {
	key := c.Params("key")

	item, err := services.GetItem(h.DB, key)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Item '%s' not found", key))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getItem")
	}

	return c.Status(fiber.StatusOK).JSON(item)
}
