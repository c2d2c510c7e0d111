package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingKind int

const (
	NoRating RatingKind = iota
	CommunityRating
	HeuristicRating
)

func (k RatingKind) String() string {
	switch k {
	case CommunityRating:
		return "community"
	case HeuristicRating:
		return "auto"
	default:
		return "none"
	}
}

// RoomRating is the resolved visible rating for a room.
type RoomRating struct {
	Kind  RatingKind
	Value float64
	Count int64
}

// Score is nil when the room has no rating at all.
func (r RoomRating) Score() *float64 {
	if r.Kind == NoRating {
		return nil
	}
	v := r.Value
	return &v
}

// Source is "community", "auto" or nil.
func (r RoomRating) Source() *string {
	if r.Kind == NoRating {
		return nil
	}
	s := r.Kind.String()
	return &s
}

// CommunitySummary is the raw vote aggregate for one room owner.
type CommunitySummary struct {
	Sum   int64
	Count int64
}

// Average is the vote mean rounded to two places, or 0 without votes.
func (s CommunitySummary) Average() float64 {
	if s.Count <= 0 {
		return 0
	}
	return roundHundredths(s.Sum*100, s.Count)
}

// CompletenessCounts describes how filled-in a user's trophies are.
type CompletenessCounts struct {
	Total     int64
	WithImage int64
	WithScore int64
	WithNotes int64
}

// Heuristic scores completeness on the 0.5 to 5 scale. Weights are 40% image,
// 35% score and 25% notes, worked in hundredths so halves round predictably.
func (c CompletenessCounts) Heuristic() float64 {
	if c.Total <= 0 {
		return 0
	}
	num := 5 * (40*c.WithImage + 35*c.WithScore + 25*c.WithNotes)
	switch {
	case num < 50*c.Total:
		return 0.5
	case num > 500*c.Total:
		return 5
	}
	return roundHundredths(num, c.Total)
}

// ResolveRoomRating prefers community votes and falls back to the
// completeness heuristic when there are trophies but no votes.
func ResolveRoomRating(summary CommunitySummary, counts CompletenessCounts) RoomRating {
	switch {
	case summary.Count > 0:
		return RoomRating{Kind: CommunityRating, Value: summary.Average(), Count: summary.Count}
	case counts.Total > 0:
		return RoomRating{Kind: HeuristicRating, Value: counts.Heuristic(), Count: 0}
	default:
		return RoomRating{Kind: NoRating}
	}
}

// roundHundredths returns round(num/den)/100 with halves away from zero.
func roundHundredths(num, den int64) float64 {
	q := (2*num + den) / (2 * den)
	if num < 0 {
		q = -((-2*num + den) / (2 * den))
	}
	return float64(q) / 100
}

// RatingSummary is the public shape of a room's community votes.
type RatingSummary struct {
	AvgScore     float64 `json:"avgScore"`
	TotalRatings int64   `json:"totalRatings"`
}

func (s CommunitySummary) View() RatingSummary {
	return RatingSummary{AvgScore: s.Average(), TotalRatings: s.Count}
}

type RateInput struct {
	RoomOwnerID string   `json:"roomOwnerId"`
	Score       *float64 `json:"score"`
}

func (in RateInput) validate() (uuid.UUID, int, error) {
	verr := &ValidationError{}
	ownerID, err := uuid.Parse(strings.TrimSpace(in.RoomOwnerID))
	if err != nil {
		verr.Add("roomOwnerId", "must be a valid id")
	}
	score := 0
	switch {
	case in.Score == nil:
		verr.Add("score", "is required")
	case *in.Score != math.Trunc(*in.Score):
		verr.Add("score", "must be a whole number")
	case *in.Score < models.MinRoomScore || *in.Score > models.MaxRoomScore:
		verr.Add("score", "must be between 1 and 5")
	default:
		score = int(*in.Score)
	}
	return ownerID, score, verr.Err()
}

type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

func (s *RatingService) Summary(ctx context.Context, owner uuid.UUID) (CommunitySummary, error) {
	var row struct {
		RatingSum   int64
		RatingCount int64
	}
	err := s.DB.WithContext(ctx).
		Model(&models.RoomRating{}).
		Select("COALESCE(SUM(score), 0) AS rating_sum, COUNT(*) AS rating_count").
		Where("room_owner_id = ?", owner).
		Scan(&row).Error
	if err != nil {
		return CommunitySummary{}, err
	}
	return CommunitySummary{Sum: row.RatingSum, Count: row.RatingCount}, nil
}

func (s *RatingService) Completeness(ctx context.Context, owner uuid.UUID) (CompletenessCounts, error) {
	var counts CompletenessCounts
	err := s.DB.WithContext(ctx).
		Model(&models.Trophy{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN COALESCE(image_url, '') <> '' THEN 1 ELSE 0 END), 0) AS with_image,
			COALESCE(SUM(CASE WHEN TRIM(COALESCE(score, '')) <> '' THEN 1 ELSE 0 END), 0) AS with_score,
			COALESCE(SUM(CASE WHEN TRIM(COALESCE(notes, '')) <> '' THEN 1 ELSE 0 END), 0) AS with_notes`).
		Where("user_id = ?", owner).
		Scan(&counts).Error
	return counts, err
}

// Resolve computes the rating shown on the owner's dashboard.
func (s *RatingService) Resolve(ctx context.Context, owner uuid.UUID) (RoomRating, error) {
	summary, err := s.Summary(ctx, owner)
	if err != nil {
		return RoomRating{}, err
	}
	counts, err := s.Completeness(ctx, owner)
	if err != nil {
		return RoomRating{}, err
	}
	return ResolveRoomRating(summary, counts), nil
}

// Rate records or replaces rater's vote on a public room.
func (s *RatingService) Rate(ctx context.Context, rater uuid.UUID, in RateInput) (*models.RoomRating, error) {
	ownerID, score, err := in.validate()
	if err != nil {
		return nil, err
	}
	if ownerID == rater {
		return nil, ErrSelfRating
	}

	var stored models.RoomRating
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		public, err := isPublicRoom(tx, ownerID)
		if err != nil {
			return err
		}
		if !public {
			return ErrRoomNotFound
		}

		rating := models.RoomRating{RoomOwnerID: ownerID, RaterID: rater, Score: score}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_owner_id"}, {Name: "rater_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).Create(&rating).Error
		if err != nil {
			return err
		}

		return tx.First(&stored, "room_owner_id = ? AND rater_id = ?", ownerID, rater).Error
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func isPublicRoom(tx *gorm.DB, owner uuid.UUID) (bool, error) {
	var prefs models.UserPreferences
	err := tx.Joins("JOIN users ON users.id = user_preferences.user_id").
		Where("user_preferences.user_id = ? AND user_preferences.room_visibility = ?", owner, models.RoomPublic).
		Select("user_preferences.id").
		First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
