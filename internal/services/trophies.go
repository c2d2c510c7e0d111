package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrophyInput struct {
	Species  *string `json:"species"`
	Name     *string `json:"name"`
	Date     *string `json:"date"`
	Location *string `json:"location"`
	Score    *string `json:"score"`
	Method   *string `json:"method"`
	WeaponID *string `json:"weaponId"`
	Notes    *string `json:"notes"`
	ImageURL *string `json:"imageUrl"`
	Featured *bool   `json:"featured"`
}

func (in *TrophyInput) UnmarshalJSON(data []byte) error {
	type plain TrophyInput
	if err := json.Unmarshal(data, (*plain)(in)); err != nil {
		return err
	}
	return nullsAsEmpty(data, map[string]**string{
		"species":  &in.Species,
		"name":     &in.Name,
		"date":     &in.Date,
		"location": &in.Location,
		"score":    &in.Score,
		"method":   &in.Method,
		"weaponId": &in.WeaponID,
		"notes":    &in.Notes,
		"imageUrl": &in.ImageURL,
	})
}

func (in TrophyInput) Validate(partial bool) error {
	verr := &ValidationError{}
	requireText(verr, "species", in.Species, partial)
	requireText(verr, "name", in.Name, partial)
	requireText(verr, "date", in.Date, partial)
	requireText(verr, "location", in.Location, partial)
	if in.Method == nil {
		if !partial {
			verr.Add("method", "is required")
		}
	} else if !models.HuntMethod(*in.Method).Valid() {
		verr.Add("method", "must be one of Rifle, Bow, Muzzleloader")
	}
	if in.WeaponID != nil && strings.TrimSpace(*in.WeaponID) != "" {
		if _, err := uuid.Parse(strings.TrimSpace(*in.WeaponID)); err != nil {
			verr.Add("weaponId", "must be a valid id")
		}
	}
	return verr.Err()
}

// TrophyFilter narrows a trophy listing. Zero values match everything.
type TrophyFilter struct {
	Species  string
	Featured *bool
}

func (f TrophyFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Species != "" {
		db = db.Where("species = ?", f.Species)
	}
	if f.Featured != nil {
		db = db.Where("featured = ?", *f.Featured)
	}
	return db
}

type TrophyService struct {
	DB   *gorm.DB
	repo *OwnedRepository[models.Trophy, *models.Trophy]
}

func NewTrophyService(db *gorm.DB) *TrophyService {
	return &TrophyService{
		DB:   db,
		repo: NewOwnedRepository[models.Trophy, *models.Trophy](db),
	}
}

func (s *TrophyService) List(ctx context.Context, owner uuid.UUID, filter TrophyFilter) ([]models.Trophy, error) {
	return s.repo.List(ctx, owner, filter.scope)
}

func (s *TrophyService) Get(ctx context.Context, owner, id uuid.UUID) (*models.Trophy, error) {
	return s.repo.Get(ctx, owner, id)
}

func (s *TrophyService) Create(ctx context.Context, owner uuid.UUID, in TrophyInput) (*models.Trophy, error) {
	if err := in.Validate(false); err != nil {
		return nil, err
	}
	weaponID, err := s.resolveWeapon(ctx, owner, in.WeaponID)
	if err != nil {
		return nil, err
	}

	trophy := &models.Trophy{
		Species:  strings.TrimSpace(*in.Species),
		Name:     strings.TrimSpace(*in.Name),
		Date:     strings.TrimSpace(*in.Date),
		Location: strings.TrimSpace(*in.Location),
		Score:    optionalText(in.Score),
		Method:   models.HuntMethod(*in.Method),
		WeaponID: weaponID,
		Notes:    optionalText(in.Notes),
		ImageURL: optionalText(in.ImageURL),
	}
	if in.Featured != nil {
		trophy.Featured = *in.Featured
	}

	if err := s.repo.Create(ctx, owner, trophy); err != nil {
		return nil, err
	}
	return trophy, nil
}

func (s *TrophyService) Update(ctx context.Context, owner, id uuid.UUID, in TrophyInput) (*models.Trophy, error) {
	if err := in.Validate(true); err != nil {
		return nil, err
	}

	changes := make(map[string]interface{})
	for column, value := range map[string]*string{
		"species":  in.Species,
		"name":     in.Name,
		"date":     in.Date,
		"location": in.Location,
	} {
		if value != nil {
			changes[column] = strings.TrimSpace(*value)
		}
	}
	if in.Method != nil {
		changes["method"] = models.HuntMethod(*in.Method)
	}
	setOptional(changes, "score", in.Score)
	setOptional(changes, "notes", in.Notes)
	setOptional(changes, "image_url", in.ImageURL)
	if in.Featured != nil {
		changes["featured"] = *in.Featured
	}
	if in.WeaponID != nil {
		weaponID, err := s.resolveWeapon(ctx, owner, in.WeaponID)
		if err != nil {
			return nil, err
		}
		if weaponID == nil {
			changes["weapon_id"] = nil
		} else {
			changes["weapon_id"] = *weaponID
		}
	}

	return s.repo.Update(ctx, owner, id, changes)
}

func (s *TrophyService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return s.repo.Delete(ctx, owner, id)
}

// resolveWeapon turns a client weapon reference into a stored id. Another
// user's weapon is rejected the same way as an unknown one.
func (s *TrophyService) resolveWeapon(ctx context.Context, owner uuid.UUID, raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	weaponID, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"weaponId": "must be a valid id"}}
	}

	var weapon models.Weapon
	err = s.DB.WithContext(ctx).Select("id").First(&weapon, "id = ? AND user_id = ?", weaponID, owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ValidationError{Fields: map[string]string{"weaponId": "must reference one of your weapons"}}
	}
	if err != nil {
		return nil, err
	}
	return &weaponID, nil
}
