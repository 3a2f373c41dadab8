// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"mime"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/garrybad/icon-kreatif-cms/internal/config"
)

// BlobStore is the blob-storage collaborator consumed by the upload-backed
// image strategy. Put stores bytes under a key and returns the public URL.
type BlobStore interface {
	Put(key string, data []byte, contentType string) (string, error)
	Delete(key string) error
}

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

func (s *StorageService) Put(key string, data []byte, contentType string) (string, error) {
	if s.s3Client == nil {
		// Local development - simulate blob storage
		return fmt.Sprintf("http://localhost:%s/uploads/%s", s.config.Server.Port, key), nil
	}

	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.publicURL(key), nil
}

func (s *StorageService) Delete(key string) error {
	if s.s3Client == nil {
		logrus.WithField("key", key).Debug("local storage: skipping blob delete")
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (s *StorageService) publicURL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

// GenerateImageKey builds the blob path for one product image:
// products/<slug>/<generated filename>. The uuid keeps concurrent uploads
// for the same product from colliding.
func GenerateImageKey(slug, contentType string) string {
	ext := extensionFor(contentType)
	return fmt.Sprintf("products/%s/%s%s", slug, uuid.New().String(), ext)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}

	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
