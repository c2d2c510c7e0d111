package handlers

import (
	"context"
	"net/url"
	"time"

	"github.com/MarinusJvRe/TrophyVault/internal/config"
	"github.com/MarinusJvRe/TrophyVault/internal/middleware"
	"github.com/MarinusJvRe/TrophyVault/internal/services"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const stateCookie = "tv_oauth_state"

const stateTTL = 10 * time.Minute

// IdentityProvider is the part of the OIDC flow the handlers drive.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*services.Identity, error)
}

type AuthHandler struct {
	Users    *services.UserService
	Provider IdentityProvider
	Cfg      *config.Config
}

func NewAuthHandler(db *gorm.DB, provider IdentityProvider, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Users:    services.NewUserService(db),
		Provider: provider,
		Cfg:      cfg,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if h.Provider == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "login is not configured")
	}

	state, err := services.GenerateState()
	if err != nil {
		return serviceError(c, err, "login_state_failed", "")
	}

	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/api",
		MaxAge:   int(stateTTL.Seconds()),
		Expires:  time.Now().Add(stateTTL),
		HTTPOnly: true,
		Secure:   h.Cfg.Server.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(h.Provider.AuthCodeURL(state), fiber.StatusFound)
}

func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	if h.Provider == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "login is not configured")
	}

	expected := c.Cookies(stateCookie)
	h.clearCookie(c, stateCookie, "/api")

	if errMsg := c.Query("error"); errMsg != "" {
		return h.loginFailed(c, errMsg)
	}
	state := c.Query("state")
	if expected == "" || state != expected {
		logger.Warn("oidc_state_mismatch", map[string]interface{}{
			"ip": c.IP(),
		})
		return h.loginFailed(c, "invalid login state")
	}
	code := c.Query("code")
	if code == "" {
		return h.loginFailed(c, "authorization code is required")
	}

	identity, err := h.Provider.Exchange(c.UserContext(), code)
	if err != nil {
		logger.Warn("oidc_exchange_failed", map[string]interface{}{
			"ip":    c.IP(),
			"error": err.Error(),
		})
		return h.loginFailed(c, "login failed")
	}

	user, err := h.Users.UpsertFromIdentity(c.UserContext(), *identity)
	if err != nil {
		logger.Error("oidc_user_upsert_failed", err, map[string]interface{}{
			"subject": identity.Subject,
		})
		return h.loginFailed(c, "login failed")
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		logger.Error("session_token_failed", err, map[string]interface{}{
			"user_id": user.ID.String(),
		})
		return h.loginFailed(c, "login failed")
	}

	ttl := utils.SessionTTL()
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.Cfg.Server.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	logger.InfoWithUser(user.ID.String(), "login_success", map[string]interface{}{
		"ip": c.IP(),
	})
	return c.Redirect(h.Cfg.Server.FrontendURL+"/", fiber.StatusFound)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearCookie(c, middleware.SessionCookie, "/")
	return c.Redirect(h.Cfg.Server.FrontendURL+"/", fiber.StatusFound)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.Success(c, fiber.StatusOK, currentUser)
}

func (h *AuthHandler) loginFailed(c *fiber.Ctx, reason string) error {
	return c.Redirect(h.Cfg.Server.FrontendURL+"/?error="+url.QueryEscape(reason), fiber.StatusFound)
}

func (h *AuthHandler) clearCookie(c *fiber.Ctx, name, path string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.Cfg.Server.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
