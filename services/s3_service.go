package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kendall-kelly/stock-api/config"
	"go.uber.org/zap"
)

// PresignExpiry is how long a presigned image URL stays valid
const PresignExpiry = time.Hour

// ObjectStore is the object storage the image service writes to
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body io.Reader, contentType string) error
	PresignGet(ctx context.Context, key string) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

// S3Service stores objects in a single S3 bucket
type S3Service struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	log     *zap.Logger
}

// NewS3Service builds an S3 client from the AWS settings in cfg. Static
// credentials are used when both keys are set; otherwise the default AWS
// credential chain applies.
func NewS3Service(ctx context.Context, cfg *config.Config, log *zap.Logger) (*S3Service, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)
	return &S3Service{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.AWSS3Bucket,
		log:     log.Named("s3"),
	}, nil
}

// PutObject uploads body under key
func (s *S3Service) PutObject(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	s.log.Debug("Uploaded object", zap.String("bucket", s.bucket), zap.String("key", key))
	return nil
}

// PresignGet returns a URL that grants read access to a private object for PresignExpiry
func (s *S3Service) PresignGet(ctx context.Context, key string) (string, error) {
	request, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = PresignExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return request.URL, nil
}

// DeleteObject removes key from the bucket
func (s *S3Service) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	s.log.Debug("Deleted object", zap.String("bucket", s.bucket), zap.String("key", key))
	return nil
}
