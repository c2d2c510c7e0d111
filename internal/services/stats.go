package services

import (
	"context"
	"errors"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stats is the dashboard summary. TotalTrophies counts only scored hunts.
type Stats struct {
	TotalHunts       int64    `json:"totalHunts"`
	TotalTrophies    int64    `json:"totalTrophies"`
	SpeciesCollected int64    `json:"speciesCollected"`
	RecentSpecies    *string  `json:"recentSpecies"`
	RoomRating       *float64 `json:"roomRating"`
	RoomRatingSource *string  `json:"roomRatingSource"`
	RoomRatingCount  int64    `json:"roomRatingCount"`
}

type StatsService struct {
	DB      *gorm.DB
	Ratings *RatingService
}

func NewStatsService(db *gorm.DB, ratings *RatingService) *StatsService {
	return &StatsService{DB: db, Ratings: ratings}
}

func (s *StatsService) ForUser(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	db := s.DB.WithContext(ctx)

	counts, err := s.Ratings.Completeness(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary, err := s.Ratings.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}

	var species int64
	if err := db.Model(&models.Trophy{}).Where("user_id = ?", userID).Distinct("species").Count(&species).Error; err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalHunts:       counts.Total,
		TotalTrophies:    counts.WithScore,
		SpeciesCollected: species,
		RoomRatingCount:  summary.Count,
	}

	var latest models.Trophy
	err = db.Select("species").Where("user_id = ?", userID).Order("created_at DESC").Take(&latest).Error
	switch {
	case err == nil:
		stats.RecentSpecies = &latest.Species
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	rating := ResolveRoomRating(summary, counts)
	stats.RoomRating = rating.Score()
	stats.RoomRatingSource = rating.Source()
	return stats, nil
}
