// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"brsite/internal/cache"
	"brsite/internal/content"
	"brsite/internal/store"
)

// CacheLogger records response cache invalidations. *store.CacheLogStore
// satisfies it.
type CacheLogger interface {
	Log(ctx context.Context, entityType string, entityID int64, action string)
	RecentEntries(ctx context.Context, limit int) ([]store.CacheLogEntry, error)
}

// RevisionReader reads previous versions of the content document.
// *store.RevisionStore satisfies it.
type RevisionReader interface {
	List(ctx context.Context, limit int) ([]store.DocumentRevision, error)
	FindByID(ctx context.Context, id int64) (*store.DocumentRevision, error)
}

// Admin groups the admin API handlers and their dependencies.
type Admin struct {
	store     *content.Store
	cache     *cache.ResponseCache
	cacheLog  CacheLogger
	revisions RevisionReader
}

// NewAdmin creates a new Admin handler group. responseCache, cacheLog and
// revisions may be nil when Valkey or PostgreSQL are not available.
func NewAdmin(contentStore *content.Store, responseCache *cache.ResponseCache, cacheLog CacheLogger, revisions RevisionReader) *Admin {
	return &Admin{
		store:     contentStore,
		cache:     responseCache,
		cacheLog:  cacheLog,
		revisions: revisions,
	}
}

// mutationResponse wraps the result of a successful write. Warning
// carries the store's error message, set when the change was only kept
// in memory.
type mutationResponse struct {
	Data    any    `json:"data,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// State returns everything the store holds.
func (a *Admin) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Snapshot())
}

// Reload re-fetches everything from the remote store.
func (a *Admin) Reload(w http.ResponseWriter, r *http.Request) {
	err := a.store.Load(r.Context())
	a.invalidate(r.Context(), "content", 0, "reload")
	if err != nil {
		slog.Error("reload content failed", "error", err)
		writeJSON(w, http.StatusBadGateway, a.store.Snapshot())
		return
	}
	writeJSON(w, http.StatusOK, a.store.Snapshot())
}

// --- Content document ---

// ReplaceContent replaces the whole content document.
func (a *Admin) ReplaceContent(w http.ResponseWriter, r *http.Request) {
	var doc content.Document
	if err := decodeJSON(w, r, &doc); err != nil || doc == nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	if err := a.store.PersistDocument(r.Context(), doc); err != nil {
		writeStoreError(w, "replace content", err)
		return
	}
	a.contentChanged(w, r, "replace")
}

type sectionRequest struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   any    `json:"value"`
}

// UpdateSection sets content[section][key].
func (a *Admin) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Section == "" || req.Key == "" {
		writeError(w, http.StatusBadRequest, "section and key are required")
		return
	}
	if err := a.store.UpdateSection(r.Context(), req.Section, req.Key, req.Value); err != nil {
		writeStoreError(w, "update section", err)
		return
	}
	a.contentChanged(w, r, "update")
}

type nestedRequest struct {
	Section string `json:"section"`
	Nested  string `json:"nested"`
	Key     string `json:"key"`
	Value   any    `json:"value"`
}

// UpdateNested sets content[section][nested][key].
func (a *Admin) UpdateNested(w http.ResponseWriter, r *http.Request) {
	var req nestedRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Section == "" || req.Nested == "" || req.Key == "" {
		writeError(w, http.StatusBadRequest, "section, nested and key are required")
		return
	}
	if err := a.store.UpdateNested(r.Context(), req.Section, req.Nested, req.Key, req.Value); err != nil {
		writeStoreError(w, "update nested", err)
		return
	}
	a.contentChanged(w, r, "update")
}

type deepNestedRequest struct {
	Section string `json:"section"`
	Nested1 string `json:"nested1"`
	Nested2 string `json:"nested2"`
	Key     string `json:"key"`
	Value   any    `json:"value"`
}

// UpdateDeepNested sets content[section][nested1][nested2][key].
func (a *Admin) UpdateDeepNested(w http.ResponseWriter, r *http.Request) {
	var req deepNestedRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Section == "" || req.Nested1 == "" || req.Nested2 == "" || req.Key == "" {
		writeError(w, http.StatusBadRequest, "section, nested1, nested2 and key are required")
		return
	}
	if err := a.store.UpdateDeepNested(r.Context(), req.Section, req.Nested1, req.Nested2, req.Key, req.Value); err != nil {
		writeStoreError(w, "update deep nested", err)
		return
	}
	a.contentChanged(w, r, "update")
}

type arrayItemRequest struct {
	Section  string   `json:"section"`
	ArrayKey string   `json:"arrayKey"`
	ItemID   any      `json:"itemId"`
	ItemKey  string   `json:"itemKey"`
	Value    any      `json:"value"`
	Nested   []string `json:"nested"`
}

// UpdateArrayItem sets a field on every element of an id-keyed array
// whose id matches.
func (a *Admin) UpdateArrayItem(w http.ResponseWriter, r *http.Request) {
	var req arrayItemRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Section == "" || req.ArrayKey == "" || req.ItemKey == "" || req.ItemID == nil {
		writeError(w, http.StatusBadRequest, "section, arrayKey, itemId and itemKey are required")
		return
	}
	if err := a.store.UpdateArrayItem(r.Context(), req.Section, req.ArrayKey, req.ItemID, req.ItemKey, req.Value, req.Nested...); err != nil {
		writeStoreError(w, "update array item", err)
		return
	}
	a.contentChanged(w, r, "update")
}

type pathRequest struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// UpdatePath sets the leaf addressed by a path such as "aboutUsPage.faqs[#2].answer".
func (a *Admin) UpdatePath(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}
	if err := a.store.UpdateAt(r.Context(), req.Path, req.Value); err != nil {
		writeStoreError(w, "update path", err)
		return
	}
	a.contentChanged(w, r, "update")
}

// contentChanged invalidates cached responses and returns the current
// document.
func (a *Admin) contentChanged(w http.ResponseWriter, r *http.Request, action string) {
	a.invalidate(r.Context(), "content", 0, action)
	writeJSON(w, http.StatusOK, mutationResponse{Data: a.store.Document(), Warning: a.store.Err()})
}

// --- Revisions ---

// Revisions lists previous versions of the content document.
func (a *Admin) Revisions(w http.ResponseWriter, r *http.Request) {
	if a.revisions == nil {
		writeError(w, http.StatusServiceUnavailable, "Revision history requires the database.")
		return
	}
	list, err := a.revisions.List(r.Context(), 50)
	if err != nil {
		slog.Error("list revisions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// RestoreRevision writes a previous version back as the current document.
func (a *Admin) RestoreRevision(w http.ResponseWriter, r *http.Request) {
	if a.revisions == nil {
		writeError(w, http.StatusServiceUnavailable, "Revision history requires the database.")
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid revision id")
		return
	}
	rev, err := a.revisions.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find revision failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if rev == nil {
		writeError(w, http.StatusNotFound, "Revision not found.")
		return
	}
	doc, err := content.DecodeDocument(rev.Content)
	if err != nil {
		slog.Error("decode revision failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Stored revision is not a valid document.")
		return
	}
	if err := a.store.PersistDocument(r.Context(), doc); err != nil {
		writeStoreError(w, "restore revision", err)
		return
	}
	a.contentChanged(w, r, "restore")
}

// --- Properties ---

// PropertyCreate adds a property.
func (a *Admin) PropertyCreate(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decodeJSON(w, r, &fields); err != nil || fields == nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	if msg := validateProperty(fields, false); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	p, err := a.store.AddProperty(r.Context(), fields)
	if err != nil {
		writeStoreError(w, "add property", err)
		return
	}
	a.invalidate(r.Context(), "property", p.ID, "create")
	writeJSON(w, http.StatusCreated, mutationResponse{Data: p, Warning: a.store.Err()})
}

// PropertyUpdate merges the body over a stored property.
func (a *Admin) PropertyUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	var patch map[string]any
	if err := decodeJSON(w, r, &patch); err != nil || patch == nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	if msg := validateProperty(patch, true); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	p, err := a.store.UpdateProperty(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, "update property", err)
		return
	}
	a.invalidate(r.Context(), "property", id, "update")
	writeJSON(w, http.StatusOK, mutationResponse{Data: p, Warning: a.store.Err()})
}

// PropertyDelete removes a property.
func (a *Admin) PropertyDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	if err := a.store.DeleteProperty(r.Context(), id); err != nil {
		writeStoreError(w, "delete property", err)
		return
	}
	a.invalidate(r.Context(), "property", id, "delete")
	writeJSON(w, http.StatusOK, mutationResponse{Warning: a.store.Err()})
}

// --- Construction projects ---

// ProjectCreate adds a construction project.
func (a *Admin) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decodeJSON(w, r, &fields); err != nil || fields == nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	if msg := validateProject(fields, false); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	p, err := a.store.AddProject(r.Context(), fields)
	if err != nil {
		writeStoreError(w, "add project", err)
		return
	}
	a.invalidate(r.Context(), "project", p.ID, "create")
	writeJSON(w, http.StatusCreated, mutationResponse{Data: p, Warning: a.store.Err()})
}

// ProjectUpdate merges the body over a stored project.
func (a *Admin) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var patch map[string]any
	if err := decodeJSON(w, r, &patch); err != nil || patch == nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}
	if msg := validateProject(patch, true); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	p, err := a.store.UpdateProject(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, "update project", err)
		return
	}
	a.invalidate(r.Context(), "project", id, "update")
	writeJSON(w, http.StatusOK, mutationResponse{Data: p, Warning: a.store.Err()})
}

// ProjectDelete removes a construction project.
func (a *Admin) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	if err := a.store.DeleteProject(r.Context(), id); err != nil {
		writeStoreError(w, "delete project", err)
		return
	}
	a.invalidate(r.Context(), "project", id, "delete")
	writeJSON(w, http.StatusOK, mutationResponse{Warning: a.store.Err()})
}

// --- Cache ---

// CacheClear drops every cached public response.
func (a *Admin) CacheClear(w http.ResponseWriter, r *http.Request) {
	deleted := a.cache.InvalidateAll(r.Context())
	if a.cacheLog != nil {
		a.cacheLog.Log(r.Context(), "cache", 0, "clear")
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// CacheLog lists recent cache invalidations, newest first. ?limit caps
// the count (default 50, max 500).
func (a *Admin) CacheLog(w http.ResponseWriter, r *http.Request) {
	if a.cacheLog == nil {
		writeError(w, http.StatusServiceUnavailable, "Cache log requires the database.")
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}
	entries, err := a.cacheLog.RecentEntries(r.Context(), limit)
	if err != nil {
		slog.Error("list cache log failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// invalidate clears cached public responses after a change and records
// it in the cache log. A document edit can change every response, so the
// whole cache goes.
func (a *Admin) invalidate(ctx context.Context, entityType string, entityID int64, action string) {
	a.cache.InvalidateAll(ctx)
	if a.cacheLog != nil {
		a.cacheLog.Log(ctx, entityType, entityID, action)
	}
}
