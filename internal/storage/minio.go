package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/MarinusJvRe/TrophyVault/internal/config"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient talks to any S3-compatible endpoint. The S3 constructor reuses
// it with AWS credentials and a region.
type MinIOClient struct {
	client  *minio.Client
	bucket  string
	region  string
	logName string
}

func NewMinIOClient(cfg config.StorageConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinIOClient{
		client:  client,
		bucket:  cfg.Bucket,
		logName: "minio",
	}, nil
}

func (m *MinIOClient) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	details := map[string]interface{}{
		"object_name":  objectName,
		"size":         size,
		"content_type": contentType,
		"bucket":       m.bucket,
	}

	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		logger.Error(m.logName+"_upload_failed", err, details)
		return err
	}
	logger.Info(m.logName+"_upload_success", details)
	return nil
}

// Download opens the object for streaming. A missing key is ErrObjectNotFound.
func (m *MinIOClient) Download(ctx context.Context, objectName string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		logger.Error(m.logName+"_download_failed", err, map[string]interface{}{
			"object_name": objectName,
			"bucket":      m.bucket,
		})
		return nil, ObjectInfo{}, err
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		logger.Error(m.logName+"_download_stat_failed", err, map[string]interface{}{
			"object_name": objectName,
			"bucket":      m.bucket,
		})
		return nil, ObjectInfo{}, err
	}

	return obj, ObjectInfo{Size: stat.Size, ContentType: stat.ContentType}, nil
}

func (m *MinIOClient) Delete(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		logger.Error(m.logName+"_delete_failed", err, map[string]interface{}{
			"object_name": objectName,
			"bucket":      m.bucket,
		})
		return err
	}
	logger.Info(m.logName+"_delete_success", map[string]interface{}{
		"object_name": objectName,
		"bucket":      m.bucket,
	})
	return nil
}

func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.region}); err != nil {
		return fmt.Errorf("failed creating bucket %s: %w", m.bucket, err)
	}
	logger.Info(m.logName+"_bucket_created", map[string]interface{}{
		"bucket": m.bucket,
	})
	return nil
}
