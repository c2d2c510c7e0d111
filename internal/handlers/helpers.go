package handlers

import (
	"errors"
	"strings"

	"github.com/MarinusJvRe/TrophyVault/internal/services"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// parseBody decodes a JSON body into out. An empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

// serviceError maps a service error onto the response envelope. notFound is
// the message used for ErrNotFound so each resource can name itself.
func serviceError(c *fiber.Ctx, err error, action, notFound string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.ValidationError(c, verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		return utils.Error(c, fiber.StatusNotFound, notFound)
	case errors.Is(err, services.ErrRoomNotFound):
		return utils.Error(c, fiber.StatusNotFound, services.ErrRoomNotFound.Error())
	case errors.Is(err, services.ErrSelfRating):
		return utils.Error(c, fiber.StatusBadRequest, services.ErrSelfRating.Error())
	}

	details := map[string]interface{}{
		"method": c.Method(),
		"path":   c.Path(),
	}
	if userID := logger.GetUserIDFromContext(c); userID != nil {
		logger.ErrorWithUser(*userID, action, err, details)
	} else {
		logger.Error(action, err, details)
	}
	return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
}
