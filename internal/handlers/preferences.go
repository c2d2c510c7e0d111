package handlers

import (
	"github.com/MarinusJvRe/TrophyVault/internal/middleware"
	"github.com/MarinusJvRe/TrophyVault/internal/services"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PreferencesHandler struct {
	Preferences *services.PreferencesService
}

func NewPreferencesHandler(db *gorm.DB) *PreferencesHandler {
	return &PreferencesHandler{Preferences: services.NewPreferencesService(db)}
}

// Get responds with data null until the user saves preferences once.
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	prefs, err := h.Preferences.Get(c.UserContext(), currentUser.ID)
	if err != nil {
		return serviceError(c, err, "preferences_get_failed", "preferences not found")
	}
	return utils.Success(c, fiber.StatusOK, prefs)
}

func (h *PreferencesHandler) Put(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req services.PreferencesInput
	if err := parseBody(c, &req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	prefs, err := h.Preferences.Upsert(c.UserContext(), currentUser.ID, req)
	if err != nil {
		return serviceError(c, err, "preferences_update_failed", "preferences not found")
	}

	logger.InfoWithUser(currentUser.ID.String(), "preferences_updated", map[string]interface{}{
		"theme":           prefs.Theme,
		"room_visibility": prefs.RoomVisibility,
	})
	return utils.Success(c, fiber.StatusOK, prefs)
}
