package handlers

import (
	"strconv"
	"strings"

	"github.com/MarinusJvRe/TrophyVault/internal/middleware"
	"github.com/MarinusJvRe/TrophyVault/internal/services"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const trophyNotFound = "trophy not found"

type TrophiesHandler struct {
	Trophies *services.TrophyService
}

func NewTrophiesHandler(db *gorm.DB) *TrophiesHandler {
	return &TrophiesHandler{Trophies: services.NewTrophyService(db)}
}

// List supports ?species= for an exact species and ?featured=true|false.
func (h *TrophiesHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	filter := services.TrophyFilter{Species: strings.TrimSpace(c.Query("species"))}
	if raw := strings.TrimSpace(c.Query("featured")); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return utils.ValidationError(c, map[string]string{"featured": "must be true or false"})
		}
		filter.Featured = &featured
	}

	trophies, err := h.Trophies.List(c.UserContext(), currentUser.ID, filter)
	if err != nil {
		return serviceError(c, err, "trophy_list_failed", trophyNotFound)
	}
	return utils.Success(c, fiber.StatusOK, trophies)
}

func (h *TrophiesHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, trophyNotFound)
	}

	trophy, err := h.Trophies.Get(c.UserContext(), currentUser.ID, id)
	if err != nil {
		return serviceError(c, err, "trophy_get_failed", trophyNotFound)
	}
	return utils.Success(c, fiber.StatusOK, trophy)
}

func (h *TrophiesHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req services.TrophyInput
	if err := parseBody(c, &req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	trophy, err := h.Trophies.Create(c.UserContext(), currentUser.ID, req)
	if err != nil {
		return serviceError(c, err, "trophy_create_failed", trophyNotFound)
	}

	logger.InfoWithUser(currentUser.ID.String(), "trophy_created", map[string]interface{}{
		"trophy_id": trophy.ID.String(),
		"species":   trophy.Species,
	})
	return utils.Success(c, fiber.StatusCreated, trophy)
}

func (h *TrophiesHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, trophyNotFound)
	}

	var req services.TrophyInput
	if err := parseBody(c, &req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	trophy, err := h.Trophies.Update(c.UserContext(), currentUser.ID, id, req)
	if err != nil {
		return serviceError(c, err, "trophy_update_failed", trophyNotFound)
	}
	return utils.Success(c, fiber.StatusOK, trophy)
}

func (h *TrophiesHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, trophyNotFound)
	}

	if err := h.Trophies.Delete(c.UserContext(), currentUser.ID, id); err != nil {
		return serviceError(c, err, "trophy_delete_failed", trophyNotFound)
	}

	logger.InfoWithUser(currentUser.ID.String(), "trophy_deleted", map[string]interface{}{
		"trophy_id": id.String(),
	})
	return utils.NoContent(c)
}
