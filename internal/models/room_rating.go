package models

import "github.com/google/uuid"

const (
	MinRoomScore = 1
	MaxRoomScore = 5
)

// RoomRating is one user's vote on another user's room. The composite
// unique index is what keeps concurrent re-ratings from inserting twice.
type RoomRating struct {
	BaseModel
	RoomOwnerID uuid.UUID `json:"roomOwnerId" gorm:"type:uuid;not null;index;uniqueIndex:idx_room_rating_owner_rater"`
	RaterID     uuid.UUID `json:"raterId" gorm:"type:uuid;not null;uniqueIndex:idx_room_rating_owner_rater"`
	Score       int       `json:"score" gorm:"not null;check:chk_room_ratings_score,score >= 1 AND score <= 5"`
}

func (RoomRating) TableName() string {
	return "room_ratings"
}
