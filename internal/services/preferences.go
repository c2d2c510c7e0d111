package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxScoringSystemLength = 50

// PreferencesInput lists the user-editable settings. The premium flag is
// managed server side and is not accepted here.
type PreferencesInput struct {
	Theme            *string   `json:"theme"`
	Pursuit          *string   `json:"pursuit"`
	ScoringSystem    *string   `json:"scoringSystem"`
	Units            *string   `json:"units"`
	RoomVisibility   *string   `json:"roomVisibility"`
	HuntingLocations *[]string `json:"huntingLocations"`
	ProfileImageURL  *string   `json:"profileImageUrl"`
}

func (in *PreferencesInput) UnmarshalJSON(data []byte) error {
	type plain PreferencesInput
	if err := json.Unmarshal(data, (*plain)(in)); err != nil {
		return err
	}
	return nullsAsEmpty(data, map[string]**string{
		"theme":           &in.Theme,
		"pursuit":         &in.Pursuit,
		"scoringSystem":   &in.ScoringSystem,
		"units":           &in.Units,
		"roomVisibility":  &in.RoomVisibility,
		"profileImageUrl": &in.ProfileImageURL,
	})
}

func (in PreferencesInput) Validate() error {
	verr := &ValidationError{}
	if in.Theme != nil && !models.Theme(*in.Theme).Valid() {
		verr.Add("theme", "must be one of lodge, manor, minimal")
	}
	if in.Units != nil && !models.Units(*in.Units).Valid() {
		verr.Add("units", "must be imperial or metric")
	}
	if in.RoomVisibility != nil && !models.RoomVisibility(*in.RoomVisibility).Valid() {
		verr.Add("roomVisibility", "must be public or private")
	}
	if in.ScoringSystem != nil {
		scoring := strings.TrimSpace(*in.ScoringSystem)
		if scoring == "" {
			verr.Add("scoringSystem", "must not be blank")
		} else if len(scoring) > maxScoringSystemLength {
			verr.Add("scoringSystem", "must be at most 50 characters")
		}
	}
	return verr.Err()
}

// apply copies provided values onto row and returns the columns they touch.
func (in PreferencesInput) apply(row *models.UserPreferences) []string {
	var columns []string
	if in.Theme != nil {
		row.Theme = models.Theme(*in.Theme)
		columns = append(columns, "theme")
	}
	if in.Pursuit != nil {
		row.Pursuit = optionalText(in.Pursuit)
		columns = append(columns, "pursuit")
	}
	if in.ScoringSystem != nil {
		row.ScoringSystem = strings.TrimSpace(*in.ScoringSystem)
		columns = append(columns, "scoring_system")
	}
	if in.Units != nil {
		row.Units = models.Units(*in.Units)
		columns = append(columns, "units")
	}
	if in.RoomVisibility != nil {
		row.RoomVisibility = models.RoomVisibility(*in.RoomVisibility)
		columns = append(columns, "room_visibility")
	}
	if in.HuntingLocations != nil {
		locations := datatypes.JSONSlice[string]{}
		for _, loc := range *in.HuntingLocations {
			if loc = strings.TrimSpace(loc); loc != "" {
				locations = append(locations, loc)
			}
		}
		row.HuntingLocations = locations
		columns = append(columns, "hunting_locations")
	}
	if in.ProfileImageURL != nil {
		row.ProfileImageURL = optionalText(in.ProfileImageURL)
		columns = append(columns, "profile_image_url")
	}
	return columns
}

type PreferencesService struct {
	DB *gorm.DB
}

func NewPreferencesService(db *gorm.DB) *PreferencesService {
	return &PreferencesService{DB: db}
}

// Get returns nil without error when the user has never saved preferences.
func (s *PreferencesService) Get(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.DB.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Upsert writes the provided fields in one statement. A first write gets
// defaults for everything omitted; later writes touch only what was sent.
func (s *PreferencesService) Upsert(ctx context.Context, userID uuid.UUID, in PreferencesInput) (*models.UserPreferences, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	row := models.NewUserPreferences(userID)
	columns := in.apply(&row)

	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}}
	if len(columns) == 0 {
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(append(columns, "updated_at"))
	}

	db := s.DB.WithContext(ctx)
	if err := db.Clauses(onConflict).Create(&row).Error; err != nil {
		return nil, err
	}

	var stored models.UserPreferences
	if err := db.First(&stored, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
