// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// maxRevisions is how many previous versions of the content document are
// kept. Older revisions are pruned whenever a new one is written.
const maxRevisions = 50

// DocumentRevision is a previous version of the content document, written
// just before the document was replaced.
type DocumentRevision struct {
	ID         int64           `json:"id"`
	DocumentID int64           `json:"document_id"`
	Content    json.RawMessage `json:"content,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RevisionStore reads content document revisions.
type RevisionStore struct {
	db *sql.DB
}

// NewRevisionStore creates a new RevisionStore backed by the given database.
func NewRevisionStore(db *sql.DB) *RevisionStore {
	return &RevisionStore{db: db}
}

// List returns the newest revisions without their content.
func (s *RevisionStore) List(ctx context.Context, limit int) ([]DocumentRevision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, created_at
		FROM website_content_revisions
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	revisions := []DocumentRevision{}
	for rows.Next() {
		var r DocumentRevision
		if err := rows.Scan(&r.ID, &r.DocumentID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}

// FindByID returns one revision with its content. Returns nil if not found.
func (s *RevisionStore) FindByID(ctx context.Context, id int64) (*DocumentRevision, error) {
	r := &DocumentRevision{}
	var content []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, content, created_at
		FROM website_content_revisions WHERE id = $1
	`, id).Scan(&r.ID, &r.DocumentID, &content, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find revision: %w", err)
	}
	r.Content = content
	return r, nil
}

// saveRevision copies the current content of document id into the
// revision table and prunes old revisions. It reports false when the
// document does not exist.
func saveRevision(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO website_content_revisions (document_id, content)
		SELECT id, content FROM website_content_single WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("save revision: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return false, err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM website_content_revisions
		WHERE id NOT IN (SELECT id FROM website_content_revisions ORDER BY id DESC LIMIT $1)
	`, maxRevisions)
	if err != nil {
		return false, fmt.Errorf("prune revisions: %w", err)
	}
	return true, nil
}
