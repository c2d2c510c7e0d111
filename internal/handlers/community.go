package handlers

import (
	"github.com/MarinusJvRe/TrophyVault/internal/middleware"
	"github.com/MarinusJvRe/TrophyVault/internal/services"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CommunityHandler struct {
	Community *services.CommunityService
	Ratings   *services.RatingService
}

func NewCommunityHandler(db *gorm.DB) *CommunityHandler {
	ratings := services.NewRatingService(db)
	return &CommunityHandler{
		Community: services.NewCommunityService(db, ratings),
		Ratings:   ratings,
	}
}

// ListRooms is readable without a session.
func (h *CommunityHandler) ListRooms(c *fiber.Ctx) error {
	rooms, err := h.Community.ListPublicRooms(c.UserContext())
	if err != nil {
		return serviceError(c, err, "community_list_failed", services.ErrRoomNotFound.Error())
	}
	return utils.Success(c, fiber.StatusOK, rooms)
}

func (h *CommunityHandler) GetRoom(c *fiber.Ctx) error {
	owner, err := parseUUID(c.Params("userId"))
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, services.ErrRoomNotFound.Error())
	}

	room, err := h.Community.GetPublicRoom(c.UserContext(), owner)
	if err != nil {
		return serviceError(c, err, "community_room_failed", services.ErrRoomNotFound.Error())
	}
	return utils.Success(c, fiber.StatusOK, room)
}

func (h *CommunityHandler) Rate(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req services.RateInput
	if err := parseBody(c, &req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	rating, err := h.Ratings.Rate(c.UserContext(), currentUser.ID, req)
	if err != nil {
		return serviceError(c, err, "room_rate_failed", services.ErrRoomNotFound.Error())
	}

	logger.InfoWithUser(currentUser.ID.String(), "room_rated", map[string]interface{}{
		"room_owner_id": rating.RoomOwnerID.String(),
		"score":         rating.Score,
	})
	return utils.Success(c, fiber.StatusOK, rating)
}

// MyRoomRating reports community votes on the caller's own room, public or not.
func (h *CommunityHandler) MyRoomRating(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := h.Ratings.Summary(c.UserContext(), currentUser.ID)
	if err != nil {
		return serviceError(c, err, "room_rating_summary_failed", services.ErrRoomNotFound.Error())
	}
	return utils.Success(c, fiber.StatusOK, summary.View())
}
