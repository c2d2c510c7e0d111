package services

import (
	"context"
	"errors"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicRoom is one entry in the community gallery.
type PublicRoom struct {
	UserID          uuid.UUID    `json:"userId"`
	FirstName       *string      `json:"firstName"`
	LastName        *string      `json:"lastName"`
	ProfileImageURL *string      `json:"profileImageUrl"`
	Theme           models.Theme `json:"theme"`
	AvgScore        float64      `json:"avgScore"`
	TotalRatings    int64        `json:"totalRatings"`
	TrophyCount     int64        `json:"trophyCount"`
}

type PublicRoomDetail struct {
	User        models.User            `json:"user"`
	Preferences models.UserPreferences `json:"preferences"`
	Trophies    []models.Trophy        `json:"trophies"`
	Rating      RatingSummary          `json:"rating"`
}

type CommunityService struct {
	DB      *gorm.DB
	Ratings *RatingService
}

func NewCommunityService(db *gorm.DB, ratings *RatingService) *CommunityService {
	return &CommunityService{DB: db, Ratings: ratings}
}

type publicRoomRow struct {
	UserID          uuid.UUID `gorm:"column:user_id"`
	FirstName       *string   `gorm:"column:first_name"`
	LastName        *string   `gorm:"column:last_name"`
	ProfileImageURL *string   `gorm:"column:profile_image_url"`
	Theme           string    `gorm:"column:theme"`
	RatingSum       int64     `gorm:"column:rating_sum"`
	RatingCount     int64     `gorm:"column:rating_count"`
	TrophyCount     int64     `gorm:"column:trophy_count"`
}

// ListPublicRooms returns every public room with its vote aggregate and
// trophy count in a single query. Rooms without votes report 0 rather than
// the completeness heuristic.
func (s *CommunityService) ListPublicRooms(ctx context.Context) ([]PublicRoom, error) {
	ratings := s.DB.Model(&models.RoomRating{}).
		Select("room_owner_id, SUM(score) AS rating_sum, COUNT(*) AS rating_count").
		Group("room_owner_id")
	trophies := s.DB.Model(&models.Trophy{}).
		Select("user_id, COUNT(*) AS trophy_count").
		Group("user_id")

	var rows []publicRoomRow
	err := s.DB.WithContext(ctx).
		Table("user_preferences AS p").
		Select(`u.id AS user_id, u.first_name, u.last_name,
			COALESCE(p.profile_image_url, u.profile_image_url) AS profile_image_url,
			p.theme,
			COALESCE(r.rating_sum, 0) AS rating_sum,
			COALESCE(r.rating_count, 0) AS rating_count,
			COALESCE(t.trophy_count, 0) AS trophy_count`).
		Joins("JOIN users AS u ON u.id = p.user_id").
		Joins("LEFT JOIN (?) AS r ON r.room_owner_id = p.user_id", ratings).
		Joins("LEFT JOIN (?) AS t ON t.user_id = p.user_id", trophies).
		Where("p.room_visibility = ?", models.RoomPublic).
		Order("p.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	rooms := make([]PublicRoom, 0, len(rows))
	for _, row := range rows {
		summary := CommunitySummary{Sum: row.RatingSum, Count: row.RatingCount}
		rooms = append(rooms, PublicRoom{
			UserID:          row.UserID,
			FirstName:       row.FirstName,
			LastName:        row.LastName,
			ProfileImageURL: row.ProfileImageURL,
			Theme:           models.Theme(row.Theme),
			AvgScore:        summary.Average(),
			TotalRatings:    summary.Count,
			TrophyCount:     row.TrophyCount,
		})
	}
	return rooms, nil
}

// GetPublicRoom loads a room for anonymous viewing. Missing users, users
// without preferences and private rooms all yield ErrRoomNotFound.
func (s *CommunityService) GetPublicRoom(ctx context.Context, owner uuid.UUID) (*PublicRoomDetail, error) {
	db := s.DB.WithContext(ctx)

	var detail PublicRoomDetail
	if err := db.First(&detail.User, "id = ?", owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if err := db.First(&detail.Preferences, "user_id = ?", owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !detail.Preferences.IsPublic() {
		return nil, ErrRoomNotFound
	}

	detail.Trophies = make([]models.Trophy, 0)
	if err := db.Where("user_id = ?", owner).Order("created_at DESC").Find(&detail.Trophies).Error; err != nil {
		return nil, err
	}

	summary, err := s.Ratings.Summary(ctx, owner)
	if err != nil {
		return nil, err
	}
	detail.Rating = summary.View()

	// Visitors see the name and avatar only.
	detail.User.Email = nil
	return &detail, nil
}
