package services

import (
	"context"
	"errors"
	"strings"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Identity is what the provider tells us about a person at login.
type Identity struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// UpsertFromIdentity creates the user on first login and refreshes the
// profile fields on every later one.
func (s *UserService) UpsertFromIdentity(ctx context.Context, identity Identity) (*models.User, error) {
	subject := strings.TrimSpace(identity.Subject)
	if subject == "" {
		return nil, errors.New("identity has no subject")
	}

	user := models.User{
		ExternalID:      subject,
		Email:           optionalText(&identity.Email),
		FirstName:       optionalText(&identity.FirstName),
		LastName:        optionalText(&identity.LastName),
		ProfileImageURL: optionalText(&identity.ProfileImageURL),
	}

	db := s.DB.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, err
	}

	var stored models.User
	if err := db.First(&stored, "external_id = ?", subject).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
