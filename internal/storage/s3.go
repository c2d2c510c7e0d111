package storage

import (
	"github.com/MarinusJvRe/TrophyVault/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewS3Client connects to AWS S3. Without a static access key it falls back
// to instance or task role credentials.
func NewS3Client(cfg config.StorageConfig) (*MinIOClient, error) {
	var creds *credentials.Credentials
	if cfg.AccessKey == "" {
		creds = credentials.NewIAM("")
	} else {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	return &MinIOClient{
		client:  client,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		logName: "s3",
	}, nil
}
