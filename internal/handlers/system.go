package handlers

import (
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Version is set at build time with
// -ldflags "-X github.com/MarinusJvRe/TrophyVault/internal/handlers.Version=1.2.3".
var Version = "dev"

const apiVersion = "v1"

type SystemHandler struct {
	DB           *gorm.DB
	LoginEnabled bool
}

func NewSystemHandler(db *gorm.DB, identity IdentityProvider) *SystemHandler {
	return &SystemHandler{DB: db, LoginEnabled: identity != nil}
}

type serverInfo struct {
	Version    string `json:"version"`
	APIVersion string `json:"apiVersion"`
	Login      string `json:"login"`
}

// Info reports the build and whether browser sign-in is available.
func (h *SystemHandler) Info(c *fiber.Ctx) error {
	login := "disabled"
	if h.LoginEnabled {
		login = "oidc"
	}
	return utils.Success(c, fiber.StatusOK, serverInfo{
		Version:    Version,
		APIVersion: apiVersion,
		Login:      login,
	})
}

// Health answers 503 when the database cannot be reached so load balancers
// stop routing to this instance.
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		logger.Error("health_database_unreachable", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": "unreachable"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok", "database": "ok"})
}
