package services

import (
	"testing"
	"time"

	"github.com/MarinusJvRe/TrophyVault/internal/database"
	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open in-memory sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, firstName string) *models.User {
	t.Helper()

	email := firstName + "@example.com"
	user := &models.User{
		ExternalID: uuid.NewString(),
		Email:      &email,
		FirstName:  &firstName,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func setVisibility(t *testing.T, db *gorm.DB, userID uuid.UUID, visibility models.RoomVisibility) *models.UserPreferences {
	t.Helper()

	prefs := models.NewUserPreferences(userID)
	prefs.RoomVisibility = visibility
	require.NoError(t, db.Create(&prefs).Error)
	return &prefs
}

type trophySeed struct {
	species string
	score   string
	notes   string
	image   string
	created time.Time
}

func seedTrophy(t *testing.T, db *gorm.DB, userID uuid.UUID, seed trophySeed) *models.Trophy {
	t.Helper()

	trophy := &models.Trophy{
		UserID:   userID,
		Species:  seed.species,
		Name:     seed.species + " trophy",
		Date:     "2024-05-01",
		Location: "Limpopo",
		Method:   models.HuntMethodRifle,
	}
	if seed.score != "" {
		trophy.Score = &seed.score
	}
	if seed.notes != "" {
		trophy.Notes = &seed.notes
	}
	if seed.image != "" {
		trophy.ImageURL = &seed.image
	}
	if !seed.created.IsZero() {
		trophy.CreatedAt = seed.created
	}
	require.NoError(t, db.Create(trophy).Error)
	return trophy
}

func seedVote(t *testing.T, db *gorm.DB, owner, rater uuid.UUID, score int) {
	t.Helper()
	require.NoError(t, db.Create(&models.RoomRating{RoomOwnerID: owner, RaterID: rater, Score: score}).Error)
}

func strPtr(s string) *string { return &s }

func locations(values ...string) datatypes.JSONSlice[string] {
	return datatypes.JSONSlice[string](values)
}
