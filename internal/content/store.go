// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"brsite/internal/models"
	"brsite/internal/remote"
)

// Messages surfaced through Store.Err. They are shown to admins as is.
const (
	msgRemoteUnavailable = "Remote content unavailable, using local fallback content."
	msgLoadFailed        = "Unable to load remote content, showing fallback content."
	msgNotConfigured     = "Remote store is not configured. Changes will not be persisted."
	msgDocumentNotFound  = "Global content ID not found."
	msgPropertyNotFound  = "Property not found."
	msgProjectNotFound   = "Construction project not found."
)

var (
	ErrDocumentNotFound = errors.New("content document not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrProjectNotFound  = errors.New("construction project not found")
	// ErrNotPersisted is returned by document writes when the store runs
	// on the offline fallback client.
	ErrNotPersisted = errors.New("remote store is not configured")
)

// Snapshot is a consistent view of everything the Store holds.
type Snapshot struct {
	Content    Document                     `json:"content"`
	Properties []models.Property            `json:"properties"`
	Projects   []models.ConstructionProject `json:"constructionProjects"`
	Loading    bool                         `json:"isLoading"`
	Error      string                       `json:"error"`
}

// Store owns the in-memory content document and the property and project
// lists, and keeps them in sync with a remote.Client. Writes are
// serialized so each read-merge-write cycle completes before the next
// starts; there is no version check against the remote store, so the last
// write wins. Failures never panic: they are returned and also recorded
// as a human-readable message available from Err.
type Store struct {
	client   remote.Client
	defaults Document

	writeMu sync.Mutex

	mu         sync.RWMutex
	doc        Document
	properties []models.Property
	projects   []models.ConstructionProject
	loading    bool
	errMsg     string

	// gen changes with every state change, including the error message.
	gen uint64
}

// NewStore creates a Store that serves defaults until Load completes.
func NewStore(client remote.Client, defaults Document) *Store {
	return &Store{
		client:     client,
		defaults:   defaults,
		doc:        defaults,
		properties: []models.Property{},
		projects:   []models.ConstructionProject{},
		loading:    true,
	}
}

// Document returns the current content document. The returned tree is
// shared and must not be modified.
func (s *Store) Document() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Properties returns a copy of the property list.
func (s *Store) Properties() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.properties)
}

// Projects returns a copy of the construction project list.
func (s *Store) Projects() []models.ConstructionProject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

// Loading reports whether a Load is in progress or has not run yet.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message of the last failure, or "" when the last
// operation succeeded.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Property returns the property with the given id.
func (s *Store) Property(id int64) (models.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.properties {
		if p.ID == id {
			return p, true
		}
	}
	return models.Property{}, false
}

// Project returns the construction project with the given id.
func (s *Store) Project(id int64) (models.ConstructionProject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.ConstructionProject{}, false
}

// Generation returns a counter that changes whenever the document, the
// lists, the loading flag or the error message change. Caches of derived
// views key on it so a view built from older state is never served.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Snapshot returns all five accessors read under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Content:    s.doc,
		Properties: slices.Clone(s.properties),
		Projects:   slices.Clone(s.projects),
		Loading:    s.loading,
		Error:      s.errMsg,
	}
}

// Load fetches the document and both collections. A missing document is
// created from the defaults. On any failure the Store falls back to the
// defaults with empty lists and records an error message, so the site
// stays usable; the error is also returned.
func (s *Store) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.gen++
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	if !remote.IsDurable(s.client) {
		slog.Warn("remote store not configured, using local fallback content")
		s.resetToDefaults(msgRemoteUnavailable)
		return nil
	}

	doc, props, projects, err := s.fetch(ctx)
	if err != nil {
		slog.Error("failed to load content", "error", err)
		s.resetToDefaults(msgLoadFailed)
		return fmt.Errorf("load content: %w", err)
	}

	s.mu.Lock()
	s.gen++
	s.doc = doc
	s.properties = props
	s.projects = projects
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) fetch(ctx context.Context) (Document, []models.Property, []models.ConstructionProject, error) {
	row, err := s.client.GetDocument(ctx)
	if errors.Is(err, remote.ErrNotFound) {
		raw, merr := json.Marshal(s.defaults)
		if merr != nil {
			return nil, nil, nil, fmt.Errorf("marshal default document: %w", merr)
		}
		row, err = s.client.InsertDocument(ctx, raw)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("insert default document: %w", err)
		}
		slog.Info("inserted default content document", "id", row.ID)
	} else if err != nil {
		return nil, nil, nil, fmt.Errorf("get document: %w", err)
	}
	doc, err := DecodeDocument(row.Content)
	if err != nil {
		return nil, nil, nil, err
	}

	propRows, err := s.client.ListRows(ctx, remote.CollectionProperties)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list properties: %w", err)
	}
	props := make([]models.Property, 0, len(propRows))
	for _, r := range propRows {
		data, err := decodeData(r.Data)
		if err != nil {
			slog.Warn("skipping unreadable property row", "id", r.ID, "error", err)
			continue
		}
		p, err := DecodeProperty(r.ID, data)
		if err != nil {
			slog.Warn("skipping undecodable property row", "id", r.ID, "error", err)
			continue
		}
		props = append(props, p)
	}

	projectRows, err := s.client.ListRows(ctx, remote.CollectionProjects)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list construction projects: %w", err)
	}
	projects := make([]models.ConstructionProject, 0, len(projectRows))
	for _, r := range projectRows {
		data, err := decodeData(r.Data)
		if err != nil {
			slog.Warn("skipping unreadable project row", "id", r.ID, "error", err)
			continue
		}
		p, err := DecodeProject(r.ID, data)
		if err != nil {
			slog.Warn("skipping undecodable project row", "id", r.ID, "error", err)
			continue
		}
		projects = append(projects, p)
	}
	return doc, props, projects, nil
}

func (s *Store) resetToDefaults(msg string) {
	s.mu.Lock()
	s.gen++
	defer s.mu.Unlock()
	s.doc = s.defaults
	s.properties = []models.Property{}
	s.projects = []models.ConstructionProject{}
	s.loading = false
	s.errMsg = msg
}

// --- Content document ---

// PersistDocument replaces the stored document with doc and, on success,
// makes doc the current document. On failure the current document is
// kept. With the offline fallback client nothing is written and
// ErrNotPersisted is returned.
func (s *Store) PersistDocument(ctx context.Context, doc Document) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.persist(ctx, doc)
}

func (s *Store) persist(ctx context.Context, doc Document) error {
	if !remote.IsDurable(s.client) {
		slog.Error("cannot update content document: remote store is not configured")
		s.setErr(msgNotConfigured)
		return ErrNotPersisted
	}

	row, err := s.client.GetDocument(ctx)
	if errors.Is(err, remote.ErrNotFound) {
		s.setErr(msgDocumentNotFound)
		return ErrDocumentNotFound
	}
	if err != nil {
		s.setErr(err.Error())
		return fmt.Errorf("get document id: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := s.client.ReplaceDocument(ctx, row.ID, raw); err != nil {
		slog.Error("failed to replace content document", "id", row.ID, "error", err)
		if errors.Is(err, remote.ErrNotFound) {
			s.setErr(msgDocumentNotFound)
			return ErrDocumentNotFound
		}
		s.setErr(err.Error())
		return fmt.Errorf("replace document: %w", err)
	}

	s.mu.Lock()
	s.gen++
	s.doc = doc
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

// UpdateSection sets document[section][key] and persists the result.
func (s *Store) UpdateSection(ctx context.Context, section, key string, value any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.persist(ctx, UpdateSection(s.Document(), section, key, value))
}

// UpdateNested sets document[section][nested][key] and persists the result.
func (s *Store) UpdateNested(ctx context.Context, section, nested, key string, value any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.persist(ctx, UpdateNested(s.Document(), section, nested, key, value))
}

// UpdateDeepNested sets document[section][nested1][nested2][key] and
// persists the result.
func (s *Store) UpdateDeepNested(ctx context.Context, section, nested1, nested2, key string, value any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.persist(ctx, UpdateDeepNested(s.Document(), section, nested1, nested2, key, value))
}

// UpdateArrayItem updates matching array elements and persists the
// result. A missing section or non-array target is logged and skipped
// without error or remote write.
func (s *Store) UpdateArrayItem(ctx context.Context, section, arrayKey string, itemID any, itemKey string, value any, nested ...string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	doc, ok := UpdateArrayItem(s.Document(), section, arrayKey, itemID, itemKey, value, nested...)
	if !ok {
		return nil
	}
	return s.persist(ctx, doc)
}

// UpdateAt sets the leaf addressed by a ParsePath expression and persists
// the result. Paths that do not parse are rejected with ErrInvalidPath; an
// item selector that meets a non-array is skipped like UpdateArrayItem.
func (s *Store) UpdateAt(ctx context.Context, path string, value any) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	doc, err := ApplyAt(s.Document(), p, value)
	if errors.Is(err, ErrNotArray) {
		slog.Warn("attempted to update a non-array", "path", path)
		return nil
	}
	if err != nil {
		return err
	}
	return s.persist(ctx, doc)
}

// --- Properties ---

// AddProperty inserts a property and appends it to the list. With the
// offline fallback client the property gets a temporary id and the Store
// reports that the change will not be persisted.
func (s *Store) AddProperty(ctx context.Context, fields map[string]any) (models.Property, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data := NormalizePropertyData(fields)
	delete(data, "id")
	if _, err := DecodeProperty(0, data); err != nil {
		return models.Property{}, err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return models.Property{}, fmt.Errorf("marshal property: %w", err)
	}

	row, err := s.client.InsertRow(ctx, remote.CollectionProperties, raw)
	if err != nil {
		slog.Error("failed to add property", "error", err)
		s.setErr(err.Error())
		return models.Property{}, fmt.Errorf("insert property: %w", err)
	}
	p, err := DecodeProperty(row.ID, data)
	if err != nil {
		return models.Property{}, err
	}

	s.mu.Lock()
	s.gen++
	s.properties = append(slices.Clip(s.properties), p)
	s.errMsg = s.writeMessage("add property")
	s.mu.Unlock()
	return p, nil
}

// UpdateProperty merges patch over the stored property, re-deriving its
// image list, and writes the merged record back under the same id.
func (s *Store) UpdateProperty(ctx context.Context, id int64, patch map[string]any) (models.Property, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	row, err := s.client.GetRow(ctx, remote.CollectionProperties, id)
	if err != nil {
		return models.Property{}, s.rowError("fetch property", id, err, msgPropertyNotFound, ErrPropertyNotFound)
	}
	existing, err := decodeData(row.Data)
	if err != nil {
		return models.Property{}, fmt.Errorf("decode property %d: %w", id, err)
	}

	merged := MergePropertyData(existing, patch)
	p, err := DecodeProperty(id, merged)
	if err != nil {
		return models.Property{}, err
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return models.Property{}, fmt.Errorf("marshal property: %w", err)
	}
	if err := s.client.UpdateRow(ctx, remote.CollectionProperties, id, raw); err != nil {
		return models.Property{}, s.rowError("update property", id, err, msgPropertyNotFound, ErrPropertyNotFound)
	}

	s.mu.Lock()
	s.gen++
	s.properties = replaceByID(s.properties, p, func(p models.Property) int64 { return p.ID })
	s.errMsg = s.writeMessage("update property")
	s.mu.Unlock()
	return p, nil
}

// DeleteProperty removes a property from the remote store and the list.
func (s *Store) DeleteProperty(ctx context.Context, id int64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.client.DeleteRow(ctx, remote.CollectionProperties, id); err != nil {
		return s.rowError("delete property", id, err, msgPropertyNotFound, ErrPropertyNotFound)
	}

	s.mu.Lock()
	s.gen++
	s.properties = slices.DeleteFunc(slices.Clone(s.properties), func(p models.Property) bool { return p.ID == id })
	s.errMsg = s.writeMessage("delete property")
	s.mu.Unlock()
	return nil
}

// --- Construction projects ---

// AddProject inserts a construction project and appends it to the list.
func (s *Store) AddProject(ctx context.Context, fields map[string]any) (models.ConstructionProject, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data := MergeProjectData(nil, fields)
	if _, err := DecodeProject(0, data); err != nil {
		return models.ConstructionProject{}, err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return models.ConstructionProject{}, fmt.Errorf("marshal project: %w", err)
	}

	row, err := s.client.InsertRow(ctx, remote.CollectionProjects, raw)
	if err != nil {
		slog.Error("failed to add construction project", "error", err)
		s.setErr(err.Error())
		return models.ConstructionProject{}, fmt.Errorf("insert project: %w", err)
	}
	p, err := DecodeProject(row.ID, data)
	if err != nil {
		return models.ConstructionProject{}, err
	}

	s.mu.Lock()
	s.gen++
	s.projects = append(slices.Clip(s.projects), p)
	s.errMsg = s.writeMessage("add construction project")
	s.mu.Unlock()
	return p, nil
}

// UpdateProject merges patch over the stored project and writes it back.
func (s *Store) UpdateProject(ctx context.Context, id int64, patch map[string]any) (models.ConstructionProject, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	row, err := s.client.GetRow(ctx, remote.CollectionProjects, id)
	if err != nil {
		return models.ConstructionProject{}, s.rowError("fetch project", id, err, msgProjectNotFound, ErrProjectNotFound)
	}
	existing, err := decodeData(row.Data)
	if err != nil {
		return models.ConstructionProject{}, fmt.Errorf("decode project %d: %w", id, err)
	}

	merged := MergeProjectData(existing, patch)
	p, err := DecodeProject(id, merged)
	if err != nil {
		return models.ConstructionProject{}, err
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return models.ConstructionProject{}, fmt.Errorf("marshal project: %w", err)
	}
	if err := s.client.UpdateRow(ctx, remote.CollectionProjects, id, raw); err != nil {
		return models.ConstructionProject{}, s.rowError("update project", id, err, msgProjectNotFound, ErrProjectNotFound)
	}

	s.mu.Lock()
	s.gen++
	s.projects = replaceByID(s.projects, p, func(p models.ConstructionProject) int64 { return p.ID })
	s.errMsg = s.writeMessage("update construction project")
	s.mu.Unlock()
	return p, nil
}

// DeleteProject removes a construction project from the remote store and
// the list.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.client.DeleteRow(ctx, remote.CollectionProjects, id); err != nil {
		return s.rowError("delete project", id, err, msgProjectNotFound, ErrProjectNotFound)
	}

	s.mu.Lock()
	s.gen++
	s.projects = slices.DeleteFunc(slices.Clone(s.projects), func(p models.ConstructionProject) bool { return p.ID == id })
	s.errMsg = s.writeMessage("delete construction project")
	s.mu.Unlock()
	return nil
}

// --- Media ---

// UploadImage stores an image in bucket under path and returns its
// public URL.
func (s *Store) UploadImage(ctx context.Context, bucket, path, contentType string, body io.Reader, size int64) (string, error) {
	url, err := s.client.UploadBlob(ctx, bucket, path, contentType, body, size)
	if err != nil {
		slog.Error("failed to upload image", "bucket", bucket, "path", path, "error", err)
		s.setErr(err.Error())
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

// --- helpers ---

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	s.gen++
	s.errMsg = msg
	s.mu.Unlock()
}

// writeMessage returns the error message to record after a successful
// row write: none for a real store, a warning for the offline fallback.
func (s *Store) writeMessage(op string) string {
	if remote.IsDurable(s.client) {
		return ""
	}
	slog.Warn("remote store not configured, change kept in memory only", "op", op)
	return msgNotConfigured
}

// rowError records a failed row operation and returns the error to hand
// back to the caller. A missing row maps to notFound.
func (s *Store) rowError(op string, id int64, err error, notFoundMsg string, notFound error) error {
	slog.Error("row operation failed", "op", op, "id", id, "error", err)
	if errors.Is(err, remote.ErrNotFound) {
		s.setErr(notFoundMsg)
		return fmt.Errorf("%s %d: %w", op, id, notFound)
	}
	s.setErr(err.Error())
	return fmt.Errorf("%s %d: %w", op, id, err)
}

// replaceByID returns a new list with the element sharing v's id replaced
// by v, or v appended. list itself is never written.
func replaceByID[T any](list []T, v T, idOf func(T) int64) []T {
	id := idOf(v)
	for i := range list {
		if idOf(list[i]) == id {
			out := slices.Clone(list)
			out[i] = v
			return out
		}
	}
	return append(slices.Clip(list), v)
}
