package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 stores receipts in an S3 bucket.
type S3 struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3 creates an S3-backed receipt storage. publicBaseURL overrides the
// default virtual-hosted bucket URL when the bucket sits behind a CDN; it
// may be empty.
func NewS3(client *s3.Client, bucket, publicBaseURL string) *S3 {
	return &S3{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (s *S3) Upload(ctx context.Context, path string, content io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put receipt object: %w", err)
	}

	return s.PublicURL(path), nil
}

func (s *S3) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("delete receipt object: %w", err)
	}

	return nil
}

func (s *S3) PublicURL(path string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", s.publicBaseURL, path)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, path)
}
