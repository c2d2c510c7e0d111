package handlers

import (
	"github.com/MarinusJvRe/TrophyVault/internal/config"
	"github.com/MarinusJvRe/TrophyVault/internal/middleware"
	"github.com/MarinusJvRe/TrophyVault/internal/storage"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps is everything the HTTP surface needs. Identity may be nil when no
// OpenID Connect provider is configured.
type Deps struct {
	DB       *gorm.DB
	Store    storage.ObjectStore
	Identity IdentityProvider
	Config   *config.Config
}

func RegisterRoutes(app *fiber.App, deps Deps) {
	authHandler := NewAuthHandler(deps.DB, deps.Identity, deps.Config)
	weaponsHandler := NewWeaponsHandler(deps.DB)
	trophiesHandler := NewTrophiesHandler(deps.DB)
	preferencesHandler := NewPreferencesHandler(deps.DB)
	profileHandler := NewProfileHandler(deps.DB, deps.Store, deps.Config.Upload.MaxImageBytes)
	communityHandler := NewCommunityHandler(deps.DB)
	statsHandler := NewStatsHandler(deps.DB)
	systemHandler := NewSystemHandler(deps.DB, deps.Identity)

	authMiddleware := middleware.NewAuthMiddleware(deps.DB)

	app.Get("/health", systemHandler.Health)
	app.Get("/uploads/*", profileHandler.ServeUpload)

	api := app.Group("/api")
	api.Get("/version", systemHandler.Info)

	api.Get("/login", authHandler.Login)
	api.Get("/callback", authHandler.Callback)
	api.Get("/logout", authHandler.Logout)
	api.Get("/auth/user", authMiddleware.RequireAuth, authHandler.Me)

	weaponRoutes := api.Group("/weapons", authMiddleware.RequireAuth)
	weaponRoutes.Get("/", weaponsHandler.List)
	weaponRoutes.Post("/", weaponsHandler.Create)
	weaponRoutes.Get("/:id", weaponsHandler.Get)
	weaponRoutes.Patch("/:id", weaponsHandler.Update)
	weaponRoutes.Delete("/:id", weaponsHandler.Delete)

	trophyRoutes := api.Group("/trophies", authMiddleware.RequireAuth)
	trophyRoutes.Get("/", trophiesHandler.List)
	trophyRoutes.Post("/", trophiesHandler.Create)
	trophyRoutes.Get("/:id", trophiesHandler.Get)
	trophyRoutes.Patch("/:id", trophiesHandler.Update)
	trophyRoutes.Delete("/:id", trophiesHandler.Delete)

	api.Get("/preferences", authMiddleware.RequireAuth, preferencesHandler.Get)
	api.Put("/preferences", authMiddleware.RequireAuth, preferencesHandler.Put)
	api.Post("/profile/upload-image", authMiddleware.RequireAuth, profileHandler.UploadImage)

	communityRoutes := api.Group("/community")
	communityRoutes.Get("/rooms", communityHandler.ListRooms)
	communityRoutes.Get("/room/:userId", communityHandler.GetRoom)
	communityRoutes.Post("/rate", authMiddleware.RequireAuth, communityHandler.Rate)

	api.Get("/my-room-rating", authMiddleware.RequireAuth, communityHandler.MyRoomRating)
	api.Get("/stats", authMiddleware.RequireAuth, statsHandler.Get)
}
