package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/xid"
)

const minioScheme = "minio://"

// presignExpiry bounds how long a resolved download URL stays valid.
const presignExpiry = 15 * time.Minute

// MinioStore keeps artifacts in an S3-compatible bucket. Locators look like
// minio://<bucket>/<object> so records stay valid if the endpoint moves.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStore{client: client, bucket: bucket}, nil
}

func (s *MinioStore) Store(ctx context.Context, filename string, data []byte) (string, error) {
	object := xid.New().String() + "-" + sanitizeName(filename)

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return minioScheme + s.bucket + "/" + object, nil
}

func (s *MinioStore) Remove(ctx context.Context, locator string) error {
	bucket, object, err := splitMinioLocator(locator)
	if err != nil {
		return err
	}
	return s.client.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{})
}

func (s *MinioStore) ResolveURL(ctx context.Context, locator string) (string, error) {
	bucket, object, err := splitMinioLocator(locator)
	if err != nil {
		return "", err
	}
	u, err := s.client.PresignedGetObject(ctx, bucket, object, presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}
	return u.String(), nil
}

func splitMinioLocator(locator string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(locator, minioScheme)
	if !ok {
		return "", "", ErrUnknownLocator
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", ErrUnknownLocator
	}
	return bucket, object, nil
}
