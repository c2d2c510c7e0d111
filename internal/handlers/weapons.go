package handlers

import (
	"github.com/MarinusJvRe/TrophyVault/internal/middleware"
	"github.com/MarinusJvRe/TrophyVault/internal/services"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const weaponNotFound = "weapon not found"

type WeaponsHandler struct {
	Weapons *services.WeaponService
}

func NewWeaponsHandler(db *gorm.DB) *WeaponsHandler {
	return &WeaponsHandler{Weapons: services.NewWeaponService(db)}
}

func (h *WeaponsHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	weapons, err := h.Weapons.List(c.UserContext(), currentUser.ID)
	if err != nil {
		return serviceError(c, err, "weapon_list_failed", weaponNotFound)
	}
	return utils.Success(c, fiber.StatusOK, weapons)
}

func (h *WeaponsHandler) Get(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, weaponNotFound)
	}

	weapon, err := h.Weapons.Get(c.UserContext(), currentUser.ID, id)
	if err != nil {
		return serviceError(c, err, "weapon_get_failed", weaponNotFound)
	}
	return utils.Success(c, fiber.StatusOK, weapon)
}

func (h *WeaponsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req services.WeaponInput
	if err := parseBody(c, &req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	weapon, err := h.Weapons.Create(c.UserContext(), currentUser.ID, req)
	if err != nil {
		return serviceError(c, err, "weapon_create_failed", weaponNotFound)
	}

	logger.InfoWithUser(currentUser.ID.String(), "weapon_created", map[string]interface{}{
		"weapon_id": weapon.ID.String(),
		"type":      weapon.Type,
	})
	return utils.Success(c, fiber.StatusCreated, weapon)
}

func (h *WeaponsHandler) Update(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, weaponNotFound)
	}

	var req services.WeaponInput
	if err := parseBody(c, &req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	weapon, err := h.Weapons.Update(c.UserContext(), currentUser.ID, id, req)
	if err != nil {
		return serviceError(c, err, "weapon_update_failed", weaponNotFound)
	}
	return utils.Success(c, fiber.StatusOK, weapon)
}

func (h *WeaponsHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, weaponNotFound)
	}

	if err := h.Weapons.Delete(c.UserContext(), currentUser.ID, id); err != nil {
		return serviceError(c, err, "weapon_delete_failed", weaponNotFound)
	}

	logger.InfoWithUser(currentUser.ID.String(), "weapon_deleted", map[string]interface{}{
		"weapon_id": id.String(),
	})
	return utils.NoContent(c)
}
