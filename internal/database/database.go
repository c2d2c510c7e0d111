package database

import (
	"fmt"

	"github.com/MarinusJvRe/TrophyVault/internal/config"
	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the configured database and brings the schema up to date.
// Postgres is the production target; sqlite serves local single-user runs.
func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "postgresql", "":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath + "?_pragma=foreign_keys(1)")
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table the API touches. Tests call it
// directly against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Weapon{},
		&models.Trophy{},
		&models.UserPreferences{},
		&models.RoomRating{},
	)
}
