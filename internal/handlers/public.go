// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"brsite/internal/cache"
	"brsite/internal/content"
	"brsite/internal/metrics"
	"brsite/internal/models"
)

// Public groups the read-only handlers the public site pages call. It
// checks the Valkey response cache before encoding, and stores encoded
// results on miss.
type Public struct {
	store *content.Store
	cache *cache.ResponseCache
}

// NewPublic creates a new Public handler group. responseCache may be nil
// when Valkey is not available.
func NewPublic(store *content.Store, responseCache *cache.ResponseCache) *Public {
	return &Public{store: store, cache: responseCache}
}

// contentResponse is the body of GET /api/content.
type contentResponse struct {
	Content   content.Document `json:"content"`
	IsLoading bool             `json:"isLoading"`
	Error     string           `json:"error"`
}

// Health reports liveness and whether the content store is degraded.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if p.store.Err() != "" {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"error":   p.store.Err(),
		"loading": p.store.Loading(),
	})
}

// Content returns the website content document.
func (p *Public) Content(w http.ResponseWriter, r *http.Request) {
	p.serveCached(w, r, cache.ContentKey(), func() (any, int) {
		return contentResponse{
			Content:   p.store.Document(),
			IsLoading: p.store.Loading(),
			Error:     p.store.Err(),
		}, http.StatusOK
	})
}

// Properties lists properties, optionally filtered by ?type=buy|rent and
// ?featured=true|false.
func (p *Public) Properties(w http.ResponseWriter, r *http.Request) {
	propertyType := r.URL.Query().Get("type")
	if propertyType != "" && !models.PropertyType(propertyType).Valid() {
		writeError(w, http.StatusBadRequest, "type must be buy or rent")
		return
	}
	featured := r.URL.Query().Get("featured")
	if featured != "" && featured != "true" && featured != "false" {
		writeError(w, http.StatusBadRequest, "featured must be true or false")
		return
	}

	p.serveCached(w, r, cache.PropertiesKey(propertyType, featured), func() (any, int) {
		out := []models.Property{}
		for _, prop := range p.store.Properties() {
			if propertyType != "" && string(prop.Type) != propertyType {
				continue
			}
			if featured != "" && prop.IsFeatured != (featured == "true") {
				continue
			}
			out = append(out, prop)
		}
		return out, http.StatusOK
	})
}

// Property returns one property by id.
func (p *Public) Property(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	p.serveCached(w, r, cache.PropertyKey(id), func() (any, int) {
		prop, ok := p.store.Property(id)
		if !ok {
			return map[string]string{"error": "Property not found."}, http.StatusNotFound
		}
		return prop, http.StatusOK
	})
}

// Projects lists the construction portfolio.
func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	p.serveCached(w, r, cache.ProjectsKey(), func() (any, int) {
		list := p.store.Projects()
		if list == nil {
			list = []models.ConstructionProject{}
		}
		return list, http.StatusOK
	})
}

// serveCached writes the cached body for key or builds, encodes and
// caches it. Responses are not cached while the store is still loading.
// The key carries the store generation read before build, so a body
// built from state that a concurrent write has replaced lands under a
// key no later request asks for.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string, build func() (any, int)) {
	ctx := r.Context()
	key = cache.GenerationKey(key, p.store.Generation())
	if cached, ok := p.cache.Get(ctx, key); ok {
		metrics.CacheResult(true)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(cached)
		return
	}
	metrics.CacheResult(false)

	v, status := build()
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode public response failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	body = append(body, '\n')
	if status == http.StatusOK && !p.store.Loading() {
		p.cache.Set(ctx, key, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(status)
	w.Write(body)
}
