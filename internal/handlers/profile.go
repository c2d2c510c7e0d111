package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/MarinusJvRe/TrophyVault/internal/middleware"
	"github.com/MarinusJvRe/TrophyVault/internal/services"
	"github.com/MarinusJvRe/TrophyVault/internal/storage"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type ProfileHandler struct {
	Preferences   *services.PreferencesService
	Store         storage.ObjectStore
	MaxImageBytes int64
}

func NewProfileHandler(db *gorm.DB, store storage.ObjectStore, maxImageBytes int64) *ProfileHandler {
	return &ProfileHandler{
		Preferences:   services.NewPreferencesService(db),
		Store:         store,
		MaxImageBytes: maxImageBytes,
	}
}

// UploadImage stores a new avatar and points the caller's preferences at it.
// Every rejection happens before anything is written to the bucket.
func (h *ProfileHandler) UploadImage(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "no image file provided")
	}
	if fileHeader.Size > h.MaxImageBytes {
		return utils.Error(c, fiber.StatusBadRequest, "image exceeds "+humanize.IBytes(uint64(h.MaxImageBytes))+" limit")
	}

	contentType, err := detectImageType(fileHeader)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serviceError(c, err, "profile_image_open_failed", "")
	}
	defer file.Close()

	ctx := c.UserContext()
	objectName := storage.ProfileImageKey(currentUser.ID, fileHeader.Filename, contentType, time.Now())
	if err := h.Store.Upload(ctx, objectName, file, fileHeader.Size, contentType); err != nil {
		return serviceError(c, err, "profile_image_upload_failed", "")
	}

	imageURL := storage.PublicURL(objectName)
	prefs, err := h.Preferences.Upsert(ctx, currentUser.ID, services.PreferencesInput{ProfileImageURL: &imageURL})
	if err != nil {
		h.discard(ctx, objectName)
		return serviceError(c, err, "profile_image_preferences_failed", "")
	}

	logger.InfoWithUser(currentUser.ID.String(), "profile_image_uploaded", map[string]interface{}{
		"object_name":  objectName,
		"size":         fileHeader.Size,
		"content_type": contentType,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"imageUrl":    imageURL,
		"preferences": prefs,
	})
}

func (h *ProfileHandler) discard(ctx context.Context, objectName string) {
	if err := h.Store.Delete(ctx, objectName); err != nil {
		logger.Warn("profile_image_cleanup_failed", map[string]interface{}{
			"object_name": objectName,
			"error":       err.Error(),
		})
	}
}

// ServeUpload streams a stored image back to browsers.
func (h *ProfileHandler) ServeUpload(c *fiber.Ctx) error {
	objectName := path.Clean(c.Params("*"))
	if !strings.HasPrefix(objectName, "profiles/") || strings.Contains(objectName, "..") {
		return utils.Error(c, fiber.StatusNotFound, "file not found")
	}

	reader, info, err := h.Store.Download(c.UserContext(), objectName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "file not found")
		}
		return serviceError(c, err, "upload_serve_failed", "file not found")
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	c.Set("X-Content-Type-Options", "nosniff")
	return c.SendStream(reader, int(info.Size))
}

// detectImageType trusts the declared type only when the bytes agree.
func detectImageType(fileHeader *multipart.FileHeader) (string, error) {
	declared := strings.ToLower(strings.TrimSpace(strings.Split(fileHeader.Header.Get(fiber.HeaderContentType), ";")[0]))
	if !allowedImageTypes[declared] {
		return "", errors.New("only JPEG, PNG, WebP and GIF images are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.New("could not read image")
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", errors.New("could not read image")
	}
	if sniffed := http.DetectContentType(head[:n]); sniffed != declared {
		return "", errors.New("file content does not match its image type")
	}
	return declared, nil
}
