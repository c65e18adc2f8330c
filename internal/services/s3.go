package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"timecard-report/internal/config"
	"timecard-report/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service stores export artifacts in an S3 bucket
type S3Service struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string // Custom endpoint for MinIO/S3-compatible services
}

// NewS3Service creates a new S3 service. A non-empty Endpoint selects
// path-style addressing for MinIO and other S3-compatible stores.
func NewS3Service(ctx context.Context, cfg *config.S3Config) (*S3Service, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint == "" {
			return
		}
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &S3Service{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: endpoint,
	}, nil
}

// PutArtifact uploads an export to S3 and returns its key
func (s *S3Service) PutArtifact(ctx context.Context, userID, taskID string, artifact *models.Artifact) (string, error) {
	key := s.GetArtifactKey(userID, taskID, artifact.Filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(artifact.Data),
		ContentType:        aws.String(artifact.ContentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", artifact.Filename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return key, nil
}

// GetFileURL returns the object URL: <endpoint>/<bucket>/<key> for a
// custom endpoint, the virtual-hosted AWS form otherwise
func (s *S3Service) GetFileURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// GetArtifactKey generates the S3 key for an export
func (s *S3Service) GetArtifactKey(userID, taskID, filename string) string {
	return artifactKey(userID, taskID, filename)
}

// GetObject streams a stored artifact. The content type falls back to
// the one implied by the key's extension.
func (s *S3Service) GetObject(ctx context.Context, key string) (io.ReadCloser, string, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s from S3: %w", key, err)
	}

	contentType := contentTypeFor(key)
	if output.ContentType != nil {
		contentType = *output.ContentType
	}

	return output.Body, contentType, nil
}
