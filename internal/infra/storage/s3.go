package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/clinic-ledger/internal/config"
)

// S3Archive stores rendered reports in a bucket. A custom endpoint switches
// to path-style addressing for S3-compatible stores.
type S3Archive struct {
	client *s3.Client
	bucket string
}

func NewS3Archive(cfg config.S3Config) *S3Archive {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		)
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Archive{
		client: s3.New(opts),
		bucket: cfg.Bucket,
	}
}

func (a *S3Archive) Put(
	ctx context.Context,
	key string,
	contentType string,
	body []byte,
) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	return err
}
