package api

import "time"

// User mirrors the backend User model.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Weapon struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Caliber   *string   `json:"caliber"`
	Make      *string   `json:"make"`
	Model     *string   `json:"model"`
	Optic     *string   `json:"optic"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

type Trophy struct {
	ID        string    `json:"id"`
	Species   string    `json:"species"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	Location  string    `json:"location"`
	Score     *string   `json:"score"`
	Method    string    `json:"method"`
	WeaponID  *string   `json:"weaponId"`
	Notes     *string   `json:"notes"`
	ImageURL  *string   `json:"imageUrl"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"createdAt"`
}

type Preferences struct {
	Theme            string   `json:"theme"`
	Pursuit          *string  `json:"pursuit"`
	ScoringSystem    string   `json:"scoringSystem"`
	Units            string   `json:"units"`
	RoomVisibility   string   `json:"roomVisibility"`
	HuntingLocations []string `json:"huntingLocations"`
	ProfileImageURL  *string  `json:"profileImageUrl"`
	IsPremium        bool     `json:"isPremium"`
}

// PreferencesUpdate is the PUT /preferences body. Nil fields are left alone.
type PreferencesUpdate struct {
	Theme          *string `json:"theme,omitempty"`
	Pursuit        *string `json:"pursuit,omitempty"`
	ScoringSystem  *string `json:"scoringSystem,omitempty"`
	Units          *string `json:"units,omitempty"`
	RoomVisibility *string `json:"roomVisibility,omitempty"`
}

type Stats struct {
	TotalHunts       int64    `json:"totalHunts"`
	TotalTrophies    int64    `json:"totalTrophies"`
	SpeciesCollected int64    `json:"speciesCollected"`
	RecentSpecies    *string  `json:"recentSpecies"`
	RoomRating       *float64 `json:"roomRating"`
	RoomRatingSource *string  `json:"roomRatingSource"`
	RoomRatingCount  int64    `json:"roomRatingCount"`
}

type RatingSummary struct {
	AvgScore     float64 `json:"avgScore"`
	TotalRatings int64   `json:"totalRatings"`
}

type PublicRoom struct {
	UserID       string  `json:"userId"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Theme        string  `json:"theme"`
	AvgScore     float64 `json:"avgScore"`
	TotalRatings int64   `json:"totalRatings"`
	TrophyCount  int64   `json:"trophyCount"`
}

// RateRequest is the POST /community/rate body.
type RateRequest struct {
	RoomOwnerID string `json:"roomOwnerId"`
	Score       int    `json:"score"`
}

type Rating struct {
	RoomOwnerID string    `json:"roomOwnerId"`
	RaterID     string    `json:"raterId"`
	Score       int       `json:"score"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UploadResult is returned by POST /profile/upload-image.
type UploadResult struct {
	ImageURL    string      `json:"imageUrl"`
	Preferences Preferences `json:"preferences"`
}

type VersionInfo struct {
	Version    string `json:"version"`
	APIVersion string `json:"apiVersion"`
	Login      string `json:"login"`
}

// APIVersion is the server API revision this client speaks.
const APIVersion = "v1"

// Compatible reports whether the server speaks the client's API revision.
func (v VersionInfo) Compatible() bool {
	return v.APIVersion == APIVersion
}
