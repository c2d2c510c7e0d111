package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/MarinusJvRe/TrophyVault/internal/config"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrObjectNotFound = errors.New("object not found")

type ObjectInfo struct {
	Size        int64
	ContentType string
}

// ObjectStore is the slice of an S3-style bucket the API needs.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, objectName string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, objectName string) error
	EnsureBucket(ctx context.Context) error
}

// New picks the backend named in cfg.
func New(cfg config.StorageConfig) (ObjectStore, error) {
	var (
		client *MinIOClient
		err    error
	)
	switch cfg.Backend {
	case "minio", "":
		client, err = NewMinIOClient(cfg)
	case "s3":
		client, err = NewS3Client(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ProfileImageKey builds a collision-free object key for an uploaded avatar
// from a readable slug of the base name. The extension follows the verified
// content type; the filename's own extension is used only for unknown types.
func ProfileImageKey(userID uuid.UUID, filename, contentType string, now time.Time) string {
	ext, ok := imageExtensions[contentType]
	if !ok {
		ext = strings.ToLower(path.Ext(filename))
	}
	base := slug.Make(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("profiles/%s/%d-%s%s", userID, now.UnixNano(), base, ext)
}

// PublicURL is the path under which the API serves an object.
func PublicURL(objectName string) string {
	return "/uploads/" + objectName
}
