// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package remote defines the storage port the content store talks to: a
// singleton document, two row collections, and blob buckets. The
// PostgreSQL adapter lives in internal/store; the in-memory adapter in
// this package backs tests, the "memory" backend, and the offline
// fallback used when the database cannot be reached at startup.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Collection and bucket names.
const (
	CollectionDocument   = "website_content_single"
	CollectionProperties = "properties"
	CollectionProjects   = "construction_projects"

	BucketPropertyImages  = "property-images"
	BucketAvatars         = "avatars"
	BucketProjectImages   = "project-images"
	BucketPageBackgrounds = "page-backgrounds"
	BucketAssets          = "assets"
)

var (
	// ErrNotFound is returned when the document or a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned when the backing service is not configured.
	ErrUnavailable = errors.New("remote store unavailable")
	// ErrUnknownCollection is returned for row operations on an unknown collection.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrUnknownBucket is returned for uploads to an unknown bucket.
	ErrUnknownBucket = errors.New("unknown bucket")
)

// DocumentRow is the stored singleton content document.
type DocumentRow struct {
	ID      int64           `json:"id"`
	Content json.RawMessage `json:"content"`
}

// Row is one stored entity: a store-assigned id plus its opaque payload.
type Row struct {
	ID   int64           `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Client is the capability interface over the remote document, row and
// blob store. Implementations must be safe for concurrent use.
type Client interface {
	GetDocument(ctx context.Context) (*DocumentRow, error)
	InsertDocument(ctx context.Context, doc json.RawMessage) (*DocumentRow, error)
	ReplaceDocument(ctx context.Context, id int64, doc json.RawMessage) error

	ListRows(ctx context.Context, collection string) ([]Row, error)
	InsertRow(ctx context.Context, collection string, data json.RawMessage) (*Row, error)
	GetRow(ctx context.Context, collection string, id int64) (*Row, error)
	UpdateRow(ctx context.Context, collection string, id int64, data json.RawMessage) error
	DeleteRow(ctx context.Context, collection string, id int64) error

	UploadBlob(ctx context.Context, bucket, path, contentType string, body io.Reader, size int64) (string, error)
}

// Durable is implemented by clients that can report whether their writes
// outlive the process. Clients that do not implement it are durable.
type Durable interface {
	Durable() bool
}

// IsDurable reports whether writes through c are persisted.
func IsDurable(c Client) bool {
	if d, ok := c.(Durable); ok {
		return d.Durable()
	}
	return true
}

// CheckCollection returns ErrUnknownCollection unless name is a row collection.
func CheckCollection(name string) error {
	switch name {
	case CollectionProperties, CollectionProjects:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
}

// Buckets lists every known blob bucket.
var Buckets = []string{
	BucketPropertyImages,
	BucketAvatars,
	BucketProjectImages,
	BucketPageBackgrounds,
	BucketAssets,
}

// CheckBucket returns ErrUnknownBucket unless name is a known bucket.
func CheckBucket(name string) error {
	for _, b := range Buckets {
		if b == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownBucket, name)
}
