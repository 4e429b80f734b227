// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides PostgreSQL access for the site service: the
// remote.Client adapter over the content document and row collections,
// document revisions, the cache invalidation log and the admin user store.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"brsite/internal/remote"
	"brsite/internal/storage"
)

// Remote implements remote.Client on PostgreSQL. The document and every
// row payload are stored as jsonb; row ids come from BIGSERIAL columns.
// Blob uploads are delegated to a storage driver.
type Remote struct {
	db   *sql.DB
	blob storage.Blob
}

// NewRemote creates a Remote over db. blob may be nil, in which case
// uploads fail with remote.ErrUnavailable.
func NewRemote(db *sql.DB, blob storage.Blob) *Remote {
	return &Remote{db: db, blob: blob}
}

// GetDocument returns the singleton content row.
func (r *Remote) GetDocument(ctx context.Context) (*remote.DocumentRow, error) {
	row := &remote.DocumentRow{}
	var content []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, content FROM website_content_single ORDER BY id LIMIT 1
	`).Scan(&row.ID, &content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, remote.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	row.Content = content
	return row, nil
}

// InsertDocument creates the singleton content row.
func (r *Remote) InsertDocument(ctx context.Context, doc json.RawMessage) (*remote.DocumentRow, error) {
	row := &remote.DocumentRow{}
	var content []byte
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO website_content_single (content) VALUES ($1::jsonb)
		RETURNING id, content
	`, string(doc)).Scan(&row.ID, &content)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	row.Content = content
	return row, nil
}

// ReplaceDocument overwrites the content of the row with the given id.
// The previous content is kept as a revision in the same transaction.
func (r *Remote) ReplaceDocument(ctx context.Context, id int64, doc json.RawMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ok, err := saveRevision(ctx, tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return remote.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE website_content_single SET content = $1::jsonb, updated_at = NOW() WHERE id = $2
	`, string(doc), id)
	if err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListRows returns every row of a collection ordered by id.
func (r *Remote) ListRows(ctx context.Context, collection string) ([]remote.Row, error) {
	if err := remote.CheckCollection(collection); err != nil {
		return nil, err
	}
	// collection is one of the fixed table names checked above.
	rows, err := r.db.QueryContext(ctx, `SELECT id, data FROM `+collection+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	out := []remote.Row{}
	for rows.Next() {
		var row remote.Row
		var data []byte
		if err := rows.Scan(&row.ID, &data); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", collection, err)
		}
		row.Data = data
		out = append(out, row)
	}
	return out, rows.Err()
}

// InsertRow creates a row and returns it with its assigned id.
func (r *Remote) InsertRow(ctx context.Context, collection string, data json.RawMessage) (*remote.Row, error) {
	if err := remote.CheckCollection(collection); err != nil {
		return nil, err
	}
	row := &remote.Row{}
	var stored []byte
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO `+collection+` (data) VALUES ($1::jsonb) RETURNING id, data
	`, string(data)).Scan(&row.ID, &stored)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	row.Data = stored
	return row, nil
}

// GetRow returns one row by id.
func (r *Remote) GetRow(ctx context.Context, collection string, id int64) (*remote.Row, error) {
	if err := remote.CheckCollection(collection); err != nil {
		return nil, err
	}
	row := &remote.Row{}
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT id, data FROM `+collection+` WHERE id = $1`, id).Scan(&row.ID, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, remote.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", collection, id, err)
	}
	row.Data = data
	return row, nil
}

// UpdateRow replaces the payload of one row.
func (r *Remote) UpdateRow(ctx context.Context, collection string, id int64, data json.RawMessage) error {
	if err := remote.CheckCollection(collection); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE `+collection+` SET data = $1::jsonb, updated_at = NOW() WHERE id = $2
	`, string(data), id)
	if err != nil {
		return fmt.Errorf("update %s %d: %w", collection, id, err)
	}
	return requireAffected(res)
}

// DeleteRow removes one row.
func (r *Remote) DeleteRow(ctx context.Context, collection string, id int64) error {
	if err := remote.CheckCollection(collection); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+collection+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", collection, id, err)
	}
	return requireAffected(res)
}

// UploadBlob stores a file in bucket and returns its public URL.
func (r *Remote) UploadBlob(ctx context.Context, bucket, path, contentType string, body io.Reader, size int64) (string, error) {
	if err := remote.CheckBucket(bucket); err != nil {
		return "", err
	}
	if r.blob == nil {
		return "", fmt.Errorf("upload %s/%s: %w", bucket, path, remote.ErrUnavailable)
	}
	return r.blob.Put(ctx, bucket, path, contentType, body, size)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return remote.ErrNotFound
	}
	return nil
}
