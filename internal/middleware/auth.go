package middleware

import (
	"strings"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// SessionCookie carries the session JWT for browser clients.
const SessionCookie = "tv_session"

type AuthMiddleware struct {
	DB *gorm.DB
}

func NewAuthMiddleware(db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{DB: db}
}

// CORS lets the SPA at frontendURL call the API with its session cookie.
func CORS(frontendURL string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     frontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
	})
}

// RequireAuth accepts a bearer token or the session cookie and rejects the
// request with 401 before any handler runs when neither is valid.
func (a *AuthMiddleware) RequireAuth(c *fiber.Ctx) error {
	tokenString := ""
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if tokenString == authHeader || tokenString == "" {
			logger.Warn("jwt_invalid_format", map[string]interface{}{
				"ip":          c.IP(),
				"path":        c.Path(),
				"auth_header": authHeader[:min(len(authHeader), 20)] + "...",
			})
			return utils.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
		}
	} else {
		tokenString = c.Cookies(SessionCookie)
	}

	if tokenString == "" {
		logger.Warn("jwt_missing_header", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		logger.Warn("jwt_validation_failed", map[string]interface{}{
			"ip":    c.IP(),
			"path":  c.Path(),
			"error": err.Error(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "invalid or expired token")
	}

	var user models.User
	if err := a.DB.WithContext(c.UserContext()).First(&user, "id = ?", claims.UserID).Error; err != nil {
		logger.Warn("jwt_user_not_found", map[string]interface{}{
			"ip":      c.IP(),
			"path":    c.Path(),
			"user_id": claims.UserID,
		})
		return utils.Error(c, fiber.StatusUnauthorized, "user not found")
	}

	c.Locals(currentUserKey, &user)
	c.Locals(logger.UserIDKey, user.ID.String())
	return c.Next()
}

func GetCurrentUser(c *fiber.Ctx) *models.User {
	value := c.Locals(currentUserKey)
	if value == nil {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
