// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO stores media on a MinIO server. Buckets are created on first use.
type MinIO struct {
	client    *minio.Client
	endpoint  string
	publicURL string

	mu    sync.Mutex
	ready map[string]bool
}

// NewMinIO creates a MinIO driver. endpoint is host[:port] without a
// scheme; useSSL picks https.
func NewMinIO(endpoint, accessKey, secretKey string, useSSL bool, publicURL string) (*MinIO, error) {
	host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	host = strings.TrimRight(host, "/")

	mc, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}

	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}
	return &MinIO{
		client:    mc,
		endpoint:  scheme + host,
		publicURL: strings.TrimRight(publicURL, "/"),
		ready:     make(map[string]bool),
	}, nil
}

// Put stores an object and returns its public URL.
func (m *MinIO) Put(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) (string, error) {
	if err := m.ensureBucket(ctx, bucket); err != nil {
		return "", err
	}
	_, err := m.client.PutObject(ctx, bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio upload %s/%s: %w", bucket, key, err)
	}
	return objectURL(m.endpoint, m.publicURL, bucket, key), nil
}

func (m *MinIO) ensureBucket(ctx context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ready[bucket] {
		return nil
	}
	if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		// MakeBucket fails when the bucket already exists.
		exists, xerr := m.client.BucketExists(ctx, bucket)
		if xerr != nil || !exists {
			return fmt.Errorf("minio bucket ensure %s: %w", bucket, err)
		}
	}
	m.ready[bucket] = true
	return nil
}
