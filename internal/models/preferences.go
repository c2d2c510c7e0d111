package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Theme string

const (
	ThemeLodge   Theme = "lodge"
	ThemeManor   Theme = "manor"
	ThemeMinimal Theme = "minimal"
)

func (t Theme) Valid() bool {
	return t == ThemeLodge || t == ThemeManor || t == ThemeMinimal
}

type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
)

func (u Units) Valid() bool {
	return u == UnitsImperial || u == UnitsMetric
}

type RoomVisibility string

const (
	RoomPublic  RoomVisibility = "public"
	RoomPrivate RoomVisibility = "private"
)

func (v RoomVisibility) Valid() bool {
	return v == RoomPublic || v == RoomPrivate
}

const DefaultScoringSystem = "SCI"

// UserPreferences is the single settings row per user. Columns carry the
// first-write defaults so an upsert that omits them still yields a full row.
type UserPreferences struct {
	BaseModel
	UserID           uuid.UUID                   `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	Theme            Theme                       `json:"theme" gorm:"type:varchar(20);not null;default:'lodge'"`
	Pursuit          *string                     `json:"pursuit" gorm:"type:text"`
	ScoringSystem    string                      `json:"scoringSystem" gorm:"type:varchar(50);not null;default:'SCI'"`
	Units            Units                       `json:"units" gorm:"type:varchar(20);not null;default:'imperial'"`
	RoomVisibility   RoomVisibility              `json:"roomVisibility" gorm:"type:varchar(20);not null;default:'private';index"`
	HuntingLocations datatypes.JSONSlice[string] `json:"huntingLocations" gorm:"not null"`
	ProfileImageURL  *string                     `json:"profileImageUrl" gorm:"column:profile_image_url;type:text"`
	IsPremium        bool                        `json:"isPremium" gorm:"not null;default:false"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

// NewUserPreferences returns the defaults written on a user's first save.
func NewUserPreferences(userID uuid.UUID) UserPreferences {
	return UserPreferences{
		UserID:           userID,
		Theme:            ThemeLodge,
		ScoringSystem:    DefaultScoringSystem,
		Units:            UnitsImperial,
		RoomVisibility:   RoomPrivate,
		HuntingLocations: datatypes.JSONSlice[string]{},
	}
}

func (p *UserPreferences) IsPublic() bool {
	return p.RoomVisibility == RoomPublic
}
