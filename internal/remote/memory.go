// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"brsite/internal/storage"
)

// Memory is an in-process Client. In durable mode it behaves like a real
// store with sequential ids. In fallback mode it reports Durable() ==
// false and hands out temporary ids taken from the wall clock in
// milliseconds.
type Memory struct {
	mu      sync.Mutex
	durable bool
	blob    storage.Blob
	now     func() time.Time

	doc    *DocumentRow
	rows   map[string]map[int64]json.RawMessage
	lastID int64
}

// NewMemory returns a durable in-memory client. blob may be nil, in which
// case uploads fail with ErrUnavailable.
func NewMemory(blob storage.Blob) *Memory {
	return newMemory(blob, true)
}

// NewFallback returns a non-durable in-memory client used when the real
// store could not be reached.
func NewFallback(blob storage.Blob) *Memory {
	return newMemory(blob, false)
}

func newMemory(blob storage.Blob, durable bool) *Memory {
	return &Memory{
		durable: durable,
		blob:    blob,
		now:     time.Now,
		rows: map[string]map[int64]json.RawMessage{
			CollectionProperties: {},
			CollectionProjects:   {},
		},
	}
}

// Durable reports whether this client stands in for a real store.
func (m *Memory) Durable() bool {
	return m.durable
}

func (m *Memory) GetDocument(_ context.Context) (*DocumentRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return nil, ErrNotFound
	}
	return &DocumentRow{ID: m.doc.ID, Content: slices.Clone(m.doc.Content)}, nil
}

func (m *Memory) InsertDocument(_ context.Context, doc json.RawMessage) (*DocumentRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc != nil {
		return nil, fmt.Errorf("insert document: singleton row already exists")
	}
	m.doc = &DocumentRow{ID: m.nextID(), Content: slices.Clone(doc)}
	return &DocumentRow{ID: m.doc.ID, Content: slices.Clone(doc)}, nil
}

func (m *Memory) ReplaceDocument(_ context.Context, id int64, doc json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil || m.doc.ID != id {
		return ErrNotFound
	}
	m.doc.Content = slices.Clone(doc)
	return nil
}

// ListRows returns the collection's rows ordered by id.
func (m *Memory) ListRows(_ context.Context, collection string) ([]Row, error) {
	if err := CheckCollection(collection); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int64, 0, len(m.rows[collection]))
	for id := range m.rows[collection] {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Row, 0, len(ids))
	for _, id := range ids {
		out = append(out, Row{ID: id, Data: slices.Clone(m.rows[collection][id])})
	}
	return out, nil
}

func (m *Memory) InsertRow(_ context.Context, collection string, data json.RawMessage) (*Row, error) {
	if err := CheckCollection(collection); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID()
	m.rows[collection][id] = slices.Clone(data)
	return &Row{ID: id, Data: slices.Clone(data)}, nil
}

func (m *Memory) GetRow(_ context.Context, collection string, id int64) (*Row, error) {
	if err := CheckCollection(collection); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.rows[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Row{ID: id, Data: slices.Clone(data)}, nil
}

func (m *Memory) UpdateRow(_ context.Context, collection string, id int64, data json.RawMessage) error {
	if err := CheckCollection(collection); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[collection][id]; !ok {
		return ErrNotFound
	}
	m.rows[collection][id] = slices.Clone(data)
	return nil
}

func (m *Memory) DeleteRow(_ context.Context, collection string, id int64) error {
	if err := CheckCollection(collection); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.rows[collection], id)
	return nil
}

func (m *Memory) UploadBlob(ctx context.Context, bucket, path, contentType string, body io.Reader, size int64) (string, error) {
	if err := CheckBucket(bucket); err != nil {
		return "", err
	}
	if m.blob == nil {
		return "", fmt.Errorf("upload %s/%s: %w", bucket, path, ErrUnavailable)
	}
	return m.blob.Put(ctx, bucket, path, contentType, body, size)
}

// nextID returns a new row id. Must be called with mu held.
func (m *Memory) nextID() int64 {
	next := m.lastID + 1
	if !m.durable {
		if ms := m.now().UnixMilli(); ms > m.lastID {
			next = ms
		}
	}
	m.lastID = next
	return next
}
