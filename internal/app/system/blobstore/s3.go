package blobstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Store stores blobs in a single S3 bucket. Credentials come from the
// default chain (env vars, shared config, instance role).
type S3Store struct {
	bucket   string
	region   string
	uploader *s3manager.Uploader
	client   *s3.S3
}

// NewS3 builds an S3-backed store.
func NewS3(region, bucket string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("creating aws session: %w", err)
	}
	return &S3Store{
		bucket:   bucket,
		region:   region,
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) error {
	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if len(opts.Metadata) > 0 {
		md := make(map[string]*string, len(opts.Metadata))
		for k, v := range opts.Metadata {
			md[k] = aws.String(v)
		}
		input.Metadata = md
	}

	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
