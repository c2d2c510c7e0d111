package models

import "github.com/google/uuid"

type HuntMethod string

const (
	HuntMethodRifle        HuntMethod = "Rifle"
	HuntMethodBow          HuntMethod = "Bow"
	HuntMethodMuzzleloader HuntMethod = "Muzzleloader"
)

func (m HuntMethod) Valid() bool {
	switch m {
	case HuntMethodRifle, HuntMethodBow, HuntMethodMuzzleloader:
		return true
	default:
		return false
	}
}

type Trophy struct {
	BaseModel
	UserID   uuid.UUID  `json:"userId" gorm:"type:uuid;not null;index"`
	Species  string     `json:"species" gorm:"type:text;not null;index"`
	Name     string     `json:"name" gorm:"type:text;not null"`
	Date     string     `json:"date" gorm:"type:text;not null"`
	Location string     `json:"location" gorm:"type:text;not null"`
	Score    *string    `json:"score" gorm:"type:text"`
	Method   HuntMethod `json:"method" gorm:"type:varchar(20);not null"`
	WeaponID *uuid.UUID `json:"weaponId" gorm:"type:uuid;index"`
	Notes    *string    `json:"notes" gorm:"type:text"`
	ImageURL *string    `json:"imageUrl" gorm:"column:image_url;type:text"`
	Featured bool       `json:"featured" gorm:"not null;default:false"`
}

func (Trophy) TableName() string {
	return "trophies"
}

func (t *Trophy) SetOwner(id uuid.UUID) {
	t.UserID = id
}
