package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeaponInput is the writable surface of a weapon. Nil fields are absent
// from the request; an empty string or null clears an optional field.
type WeaponInput struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Caliber  *string `json:"caliber"`
	Make     *string `json:"make"`
	Model    *string `json:"model"`
	Optic    *string `json:"optic"`
	Notes    *string `json:"notes"`
	ImageURL *string `json:"imageUrl"`
}

func (in *WeaponInput) UnmarshalJSON(data []byte) error {
	type plain WeaponInput
	if err := json.Unmarshal(data, (*plain)(in)); err != nil {
		return err
	}
	return nullsAsEmpty(data, map[string]**string{
		"name":     &in.Name,
		"type":     &in.Type,
		"caliber":  &in.Caliber,
		"make":     &in.Make,
		"model":    &in.Model,
		"optic":    &in.Optic,
		"notes":    &in.Notes,
		"imageUrl": &in.ImageURL,
	})
}

// Validate checks the input. Required fields must be present unless partial.
func (in WeaponInput) Validate(partial bool) error {
	verr := &ValidationError{}
	requireText(verr, "name", in.Name, partial)
	if in.Type == nil {
		if !partial {
			verr.Add("type", "is required")
		}
	} else if !models.WeaponType(*in.Type).Valid() {
		verr.Add("type", "must be one of Rifle, Bow, Muzzleloader, Handgun, Shotgun")
	}
	return verr.Err()
}

func (in WeaponInput) changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if in.Name != nil {
		changes["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		changes["type"] = models.WeaponType(*in.Type)
	}
	setOptional(changes, "caliber", in.Caliber)
	setOptional(changes, "make", in.Make)
	setOptional(changes, "model", in.Model)
	setOptional(changes, "optic", in.Optic)
	setOptional(changes, "notes", in.Notes)
	setOptional(changes, "image_url", in.ImageURL)
	return changes
}

type WeaponService struct {
	repo *OwnedRepository[models.Weapon, *models.Weapon]
}

func NewWeaponService(db *gorm.DB) *WeaponService {
	return &WeaponService{repo: NewOwnedRepository[models.Weapon, *models.Weapon](db)}
}

func (s *WeaponService) List(ctx context.Context, owner uuid.UUID) ([]models.Weapon, error) {
	return s.repo.List(ctx, owner)
}

func (s *WeaponService) Get(ctx context.Context, owner, id uuid.UUID) (*models.Weapon, error) {
	return s.repo.Get(ctx, owner, id)
}

func (s *WeaponService) Create(ctx context.Context, owner uuid.UUID, in WeaponInput) (*models.Weapon, error) {
	if err := in.Validate(false); err != nil {
		return nil, err
	}
	weapon := &models.Weapon{
		Name:     strings.TrimSpace(*in.Name),
		Type:     models.WeaponType(*in.Type),
		Caliber:  optionalText(in.Caliber),
		Make:     optionalText(in.Make),
		Model:    optionalText(in.Model),
		Optic:    optionalText(in.Optic),
		Notes:    optionalText(in.Notes),
		ImageURL: optionalText(in.ImageURL),
	}
	if err := s.repo.Create(ctx, owner, weapon); err != nil {
		return nil, err
	}
	return weapon, nil
}

func (s *WeaponService) Update(ctx context.Context, owner, id uuid.UUID, in WeaponInput) (*models.Weapon, error) {
	if err := in.Validate(true); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, owner, id, in.changes())
}

// Delete removes the weapon; trophies that referenced it keep their record
// with the weapon link cleared.
func (s *WeaponService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return s.repo.Delete(ctx, owner, id)
}

func requireText(verr *ValidationError, field string, value *string, partial bool) {
	if value == nil {
		if !partial {
			verr.Add(field, "is required")
		}
		return
	}
	if strings.TrimSpace(*value) == "" {
		verr.Add(field, "must not be blank")
	}
}

func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func setOptional(changes map[string]interface{}, column string, value *string) {
	if value == nil {
		return
	}
	if v := optionalText(value); v != nil {
		changes[column] = *v
		return
	}
	changes[column] = nil
}

// nullsAsEmpty turns an explicit JSON null on the named string fields into
// "", so null clears optional fields and fails required ones.
func nullsAsEmpty(data []byte, fields map[string]**string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, field := range fields {
		if value, ok := raw[key]; ok && bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			empty := ""
			*field = &empty
		}
	}
	return nil
}
