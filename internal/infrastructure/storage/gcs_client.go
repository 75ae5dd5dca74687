package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// CloudStorageClient issues pre-signed upload URLs against the listing image
// bucket. Uploads happen out-of-band; the API never proxies file bytes.
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
	expiry     time.Duration
}

func NewCloudStorageClient(ctx context.Context, bucketName string, expiry time.Duration, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
		expiry:     expiry,
	}, nil
}

var contentTypeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AllowedContentType reports whether uploads of this MIME type are accepted.
func AllowedContentType(contentType string) bool {
	_, ok := contentTypeExtensions[contentType]
	return ok
}

// GenerateSignedUploadURL returns a time-limited V4 PUT URL plus the public
// object URL the client should reference once the upload completes.
func (c *CloudStorageClient) GenerateSignedUploadURL(ctx context.Context, contentType, folder string) (uploadURL string, objectURL string, err error) {
	ext, ok := contentTypeExtensions[contentType]
	if !ok {
		return "", "", fmt.Errorf("unsupported content type: %s", contentType)
	}

	objectName := fmt.Sprintf("%s/%s-%s%s", folder, uuid.New().String(), time.Now().Format("20060102150405"), ext)

	opts := &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		ContentType: contentType,
		Expires:     time.Now().Add(c.expiry),
	}

	uploadURL, err = c.client.Bucket(c.bucketName).SignedURL(objectName, opts)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate signed URL: %v", err)
	}

	objectURL = fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName)
	return uploadURL, objectURL, nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
