package handlers

import (
	"github.com/MarinusJvRe/TrophyVault/internal/middleware"
	"github.com/MarinusJvRe/TrophyVault/internal/services"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatsHandler struct {
	Stats *services.StatsService
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{Stats: services.NewStatsService(db, services.NewRatingService(db))}
}

func (h *StatsHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := h.Stats.ForUser(c.UserContext(), currentUser.ID)
	if err != nil {
		return serviceError(c, err, "stats_failed", "stats not found")
	}
	return utils.Success(c, fiber.StatusOK, stats)
}
