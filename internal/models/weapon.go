package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeaponType string

const (
	WeaponTypeRifle        WeaponType = "Rifle"
	WeaponTypeBow          WeaponType = "Bow"
	WeaponTypeMuzzleloader WeaponType = "Muzzleloader"
	WeaponTypeHandgun      WeaponType = "Handgun"
	WeaponTypeShotgun      WeaponType = "Shotgun"
)

func (t WeaponType) Valid() bool {
	switch t {
	case WeaponTypeRifle, WeaponTypeBow, WeaponTypeMuzzleloader, WeaponTypeHandgun, WeaponTypeShotgun:
		return true
	default:
		return false
	}
}

// Weapon is an item in a user's safe.
type Weapon struct {
	BaseModel
	UserID   uuid.UUID  `json:"userId" gorm:"type:uuid;not null;index"`
	Name     string     `json:"name" gorm:"type:text;not null"`
	Type     WeaponType `json:"type" gorm:"type:varchar(20);not null"`
	Caliber  *string    `json:"caliber" gorm:"type:text"`
	Make     *string    `json:"make" gorm:"type:text"`
	Model    *string    `json:"model" gorm:"type:text"`
	Optic    *string    `json:"optic" gorm:"type:text"`
	Notes    *string    `json:"notes" gorm:"type:text"`
	ImageURL *string    `json:"imageUrl" gorm:"column:image_url;type:text"`

	Trophies []Trophy `json:"-" gorm:"foreignKey:WeaponID;constraint:OnDelete:SET NULL"`
}

func (Weapon) TableName() string {
	return "weapons"
}

func (w *Weapon) SetOwner(id uuid.UUID) {
	w.UserID = id
}

// BeforeDelete detaches trophies that were taken with this weapon so the
// delete never trips the trophies.weapon_id foreign key.
func (w *Weapon) BeforeDelete(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		return nil
	}
	return tx.Model(&Trophy{}).Where("weapon_id = ?", w.ID).Update("weapon_id", nil).Error
}
