package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/reyescuts/booking-api/internal/config"
)

// Uploader puts barber photos in S3 and hands back the public URL stored
// on the barber record.
type Uploader struct {
	client       *s3.Client
	bucket       string
	region       string
	publicDomain string
}

func NewUploader(cfg *config.Config) *Uploader {
	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	return &Uploader{
		client:       s3.NewFromConfig(awsCfg),
		bucket:       cfg.S3Bucket,
		region:       cfg.S3Region,
		publicDomain: cfg.S3PublicDomain,
	}
}

func (u *Uploader) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	if u.publicDomain != "" {
		return fmt.Sprintf("https://%s/%s", u.publicDomain, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
