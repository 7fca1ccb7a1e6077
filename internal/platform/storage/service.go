package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

type StorageService struct {
	client        *minio.Client
	bucketPosters string
	publicBaseURL string
}

// NewStorageService builds the poster store. publicBaseURL defaults to the MinIO endpoint.
func NewStorageService(client *minio.Client, bucketPosters, publicBaseURL string) *StorageService {
	if publicBaseURL == "" {
		publicBaseURL = client.EndpointURL().String()
	}
	return &StorageService{
		client:        client,
		bucketPosters: bucketPosters,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// PosterObjectName returns posters/<movieID><ext>.
func PosterObjectName(movieID, ext string) string {
	return path.Join("posters", movieID+strings.ToLower(ext))
}

// UploadPoster stores the poster image and returns its public URL
func (s *StorageService) UploadPoster(ctx context.Context, movieID string, file io.Reader, size int64, contentType, ext string) (string, error) {
	objectName := PosterObjectName(movieID, ext)

	_, err := s.client.PutObject(ctx, s.bucketPosters, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload poster to MinIO: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucketPosters, objectName), nil
}

// DeletePosters removes every poster object stored for a movie
func (s *StorageService) DeletePosters(ctx context.Context, movieID string) error {
	list := func(listCtx context.Context) <-chan minio.ObjectInfo {
		return s.client.ListObjects(listCtx, s.bucketPosters, minio.ListObjectsOptions{
			Prefix:    path.Join("posters", movieID),
			Recursive: true,
		})
	}
	remove := func(ctx context.Context, key string) error {
		return s.client.RemoveObject(ctx, s.bucketPosters, key, minio.RemoveObjectOptions{})
	}
	return removeListed(ctx, list, remove)
}

// removeListed removes each listed object, stopping at the first error. The listing
// context is cancelled on return so the lister goroutine never blocks on a send.
func removeListed(ctx context.Context, list func(context.Context) <-chan minio.ObjectInfo, remove func(context.Context, string) error) error {
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for object := range list(listCtx) {
		if object.Err != nil {
			return object.Err
		}
		if err := remove(ctx, object.Key); err != nil {
			return err
		}
	}

	return nil
}
