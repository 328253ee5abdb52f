// Package storage provides the object store the clothing photos live in.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectStore accepts a binary upload and hands back a durable key that can
// later be turned into a retrievable URL.
type ObjectStore interface {
	Upload(ctx context.Context, file io.Reader, filename, contentType string) (string, error)
	RetrievalURL(ctx context.Context, key string) (string, error)
}

// S3Store implements ObjectStore on an S3 bucket. Reads are served through
// presigned URLs rather than public objects.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewS3Store(ctx context.Context, region, bucket string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	client := s3.NewFromConfig(cfg)
	log.Println("S3 Client Initialized")
	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

// Upload stores the file under uploads/<uuid>_<filename> and returns the key.
func (s *S3Store) Upload(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	objectKey := fmt.Sprintf("uploads/%s_%s", uuid.NewString(), filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}
	return objectKey, nil
}

// RetrievalURL generates a presigned URL for an object key.
func (s *S3Store) RetrievalURL(ctx context.Context, key string) (string, error) {
	request, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(1*time.Hour))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %v", err)
	}
	return request.URL, nil
}
