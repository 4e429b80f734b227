// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides object storage drivers for uploaded site
// media. Two S3-compatible drivers are available: one built on the AWS
// SDK v2 (path-style, for CEPH/Hetzner) and one built on minio-go for
// self-hosted MinIO. Both hand back a public URL for every stored object.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Blob stores an object and returns the URL it can be publicly fetched from.
type Blob interface {
	Put(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) (string, error)
}

// Config selects and configures a blob driver.
type Config struct {
	Driver    string // "s3" or "minio"
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PublicURL string
}

// New builds the driver named by cfg.Driver. Returns (nil, nil) when the
// endpoint or credentials are empty, allowing the app to start without
// storage.
func New(cfg Config) (Blob, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, nil
	}
	switch strings.ToLower(cfg.Driver) {
	case "", "s3":
		return NewS3(cfg.Endpoint, cfg.Region, cfg.AccessKey, cfg.SecretKey, cfg.PublicURL)
	case "minio":
		return NewMinIO(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.UseSSL, cfg.PublicURL)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}

// objectURL builds the public URL for an object. A configured public URL
// (CDN or custom domain) is used as the prefix for every bucket;
// otherwise a path-style endpoint URL is returned.
func objectURL(endpoint, publicURL, bucket, key string) string {
	if publicURL != "" {
		return publicURL + "/" + bucket + "/" + key
	}
	return endpoint + "/" + bucket + "/" + key
}
