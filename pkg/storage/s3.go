package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Uploader is the part of the s3manager uploader S3Storage relies on
type S3Uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Config contains configuration for S3 storage
type S3Config struct {
	Bucket         string
	Region         string
	Endpoint       string // S3-compatible services
	AccessKey      string
	SecretKey      string
	PublicURL      string // served URL prefix, the upload location is used when empty
	ForcePathStyle bool
}

// S3Storage uploads objects to an S3 bucket
type S3Storage struct {
	uploader  S3Uploader
	bucket    string
	publicURL string
}

// NewS3Storage builds an uploader from cfg
func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.ForcePathStyle),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create AWS session: %v", ErrInvalidConfig, err)
	}

	return NewS3StorageWithUploader(s3manager.NewUploader(sess), cfg.Bucket, cfg.PublicURL)
}

// NewS3StorageWithUploader uses a preconfigured uploader
func NewS3StorageWithUploader(uploader S3Uploader, bucket, publicURL string) (*S3Storage, error) {
	if uploader == nil || bucket == "" {
		return nil, ErrInvalidConfig
	}
	return &S3Storage{uploader: uploader, bucket: bucket, publicURL: publicURL}, nil
}

func (s *S3Storage) Save(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if s.publicURL != "" || out == nil || out.Location == "" {
		return joinURL(s.publicURL, key), nil
	}
	return out.Location, nil
}
