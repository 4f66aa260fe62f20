// Package archive uploads JSON snapshots of a user's news to an S3 compatible
// bucket (CloudFlare R2 in production) before they are bulk deleted.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bilgisen/newz/internal/logger"
	"github.com/bilgisen/newz/internal/models"
)

// Config holds the bucket location and credentials
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// Snapshot is the object written for every archived batch
type Snapshot struct {
	UserID     string        `json:"userId"`
	ArchivedAt time.Time     `json:"archivedAt"`
	Count      int           `json:"count"`
	News       []models.News `json:"news"`
}

// S3Archiver writes snapshots to news/<userId>/<unix-nano>.json
type S3Archiver struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

// NewS3Archiver builds the S3 client. No request is made until the first archive.
func NewS3Archiver(ctx context.Context, cfg Config) (*S3Archiver, error) {
	if cfg.Bucket == "" || cfg.Endpoint == "" {
		return nil, errors.New("archive bucket and endpoint are required")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &S3Archiver{client: client, bucket: cfg.Bucket, now: time.Now}, nil
}

// ArchiveNews uploads news and returns the object key.
func (a *S3Archiver) ArchiveNews(ctx context.Context, userID string, news []models.News) (string, error) {
	now := a.now().UTC()
	body, err := json.Marshal(Snapshot{
		UserID:     userID,
		ArchivedAt: now,
		Count:      len(news),
		News:       news,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("news/%s/%d.json", url.PathEscape(userID), now.UnixNano())
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logger.Component("archive").Debug().
		Str("bucket", a.bucket).
		Str("key", key).
		Int("size", len(body)).
		Msg("Uploaded news snapshot")
	return key, nil
}
