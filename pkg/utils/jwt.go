package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "trophyvault"

var (
	jwtSecret          = []byte("change-me-in-production")
	jwtExpirationHours = 24 * 7
)

// Claims is the session token body shared by the browser cookie and CLI
// bearer tokens.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func ConfigureJWT(secret string, expirationHours int) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if expirationHours > 0 {
		jwtExpirationHours = expirationHours
	}
}

// SessionTTL is how long an issued token stays valid.
func SessionTTL() time.Duration {
	return time.Duration(jwtExpirationHours) * time.Hour
}

func GenerateToken(user *models.User) (string, error) {
	if user == nil || user.ID == uuid.Nil {
		return "", errors.New("cannot issue token for unsaved user")
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID.String(),
		},
	}
	if user.Email != nil {
		claims.Email = *user.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
