// Package s3 wraps the object storage client and issues presigned GET links
// for content rows that store a bare object key instead of an absolute URL.
package s3

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewClient(cfg Config) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return client, nil
}

// Signer issues time-limited GET links for objects in a single bucket.
type Signer struct {
	client *minio.Client
	bucket string
}

func NewSigner(client *minio.Client, bucket string) (*Signer, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	return &Signer{client: client, bucket: bucket}, nil
}

func (s *Signer) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign get for %s: %w", key, err)
	}

	return signed.String(), nil
}
