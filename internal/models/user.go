package models

// User mirrors the identity provider's record. ExternalID is the OIDC
// subject; the row is refreshed from the ID token on every login.
type User struct {
	BaseModel
	ExternalID      string  `json:"-" gorm:"type:varchar(255);uniqueIndex;not null"`
	Email           *string `json:"email,omitempty" gorm:"type:varchar(255)"`
	FirstName       *string `json:"firstName" gorm:"type:varchar(100)"`
	LastName        *string `json:"lastName" gorm:"type:varchar(100)"`
	ProfileImageURL *string `json:"profileImageUrl" gorm:"column:profile_image_url;type:text"`

	Weapons     []Weapon         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Trophies    []Trophy         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Preferences *UserPreferences `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	RatingsReceived []RoomRating `json:"-" gorm:"foreignKey:RoomOwnerID;constraint:OnDelete:CASCADE"`
	RatingsGiven    []RoomRating `json:"-" gorm:"foreignKey:RaterID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName joins whatever name parts the provider supplied.
func (u *User) DisplayName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	return name
}
