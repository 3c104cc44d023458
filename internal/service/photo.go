package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pageza/healthtracker/backend/config"
)

// PhotoURLExpiry is how long presigned meal photo links stay valid.
const PhotoURLExpiry = 15 * time.Minute

// PhotoStore keeps meal photos outside the database.
type PhotoStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	URL(ctx context.Context, key string) (string, error)
}

// S3PhotoStore stores photos in a private bucket and hands out presigned
// GET links.
type S3PhotoStore struct {
	s3 *config.S3Config
}

var _ PhotoStore = (*S3PhotoStore)(nil)

func NewS3PhotoStore(s3Config *config.S3Config) *S3PhotoStore {
	return &S3PhotoStore{s3: s3Config}
}

func (s *S3PhotoStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload photo to S3: %w", err)
	}
	return nil
}

func (s *S3PhotoStore) URL(ctx context.Context, key string) (string, error) {
	return s.s3.GeneratePresignedURL(ctx, key, PhotoURLExpiry)
}
