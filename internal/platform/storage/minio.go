package storage

import (
	"context"
	"fmt"

	"github.com/martinmanurung/cinecheck/internal/platform/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// InitMinIO connects to MinIO and makes sure the poster bucket exists and is public-read.
func InitMinIO(ctx context.Context, cfg config.MinIOConfig) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing minio client: %w", err)
	}

	if _, err := minioClient.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("error verifying minio connection: %w", err)
	}

	if err := ensurePublicBucket(ctx, minioClient, cfg.BucketPosters); err != nil {
		return nil, err
	}

	return minioClient, nil
}

func ensurePublicBucket(ctx context.Context, client *minio.Client, bucketName string) error {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("error checking bucket '%s': %w", bucketName, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("error creating bucket '%s': %w", bucketName, err)
		}
		log.Info().Str("bucket", bucketName).Msg("Bucket created")
	}

	if err := client.SetBucketPolicy(ctx, bucketName, publicReadPolicy(bucketName)); err != nil {
		return fmt.Errorf("error setting policy public-read for bucket '%s': %w", bucketName, err)
	}
	return nil
}

func publicReadPolicy(bucketName string) string {
	return fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, bucketName)
}
