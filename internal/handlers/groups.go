package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/refsync/refsync/internal/services"
	"github.com/refsync/refsync/internal/utils"
)

// GroupsHandler handles synced group routes
type GroupsHandler struct {
	DB *gorm.DB
}

// GetGroups handles GET /api/groups
// @Summary List synced groups
// @Description Get every group known to the local database, sync cursors included
// @Tags Groups
// @Accept json
// @Produce json
// @Success 200 {array} models.Group
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /groups [get]
func (h *GroupsHandler) GetGroups(c *fiber.Ctx) error {
	groups, err := services.AllGroups(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getGroups")
	}

	if len(groups) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(groups)
}

// GetGroupCollections handles GET /api/groups/:externalId/collections
// @Summary List a group's collections
// @Description Get the synced collection hierarchy of one group
// @Tags Groups
// @Accept json
// @Produce json
// @Param externalId path int true "Group external ID"
// @Success 200 {array} models.Collection
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /groups/{externalId}/collections [get]
func (h *GroupsHandler) GetGroupCollections(c *fiber.Ctx) error {
	externalID, err := strconv.ParseInt(c.Params("externalId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "externalId must be an integer", fiber.StatusBadRequest, "getGroupCollections")
	}

	collections, err := services.GroupCollections(h.DB, externalID)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, fmt.Sprintf("Group '%d' not found", externalID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getGroupCollections")
	}

	if len(collections) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(collections)
}
