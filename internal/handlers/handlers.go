// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the site server.
// Handlers are grouped by concern (public, admin, auth) and receive
// their dependencies through the handler struct. Every response is JSON.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"brsite/internal/content"
	"brsite/internal/remote"
)

// maxJSONBody caps admin request bodies. The whole content document is
// well below this.
const maxJSONBody = 2 << 20

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// writeError sends {"error": msg} with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// storeStatus maps an error from the content store to an HTTP status and
// a message safe to show to admins.
func storeStatus(err error) (int, string) {
	switch {
	case errors.Is(err, content.ErrPropertyNotFound),
		errors.Is(err, content.ErrProjectNotFound),
		errors.Is(err, content.ErrDocumentNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, content.ErrInvalidRecord),
		errors.Is(err, content.ErrInvalidPath),
		errors.Is(err, remote.ErrUnknownBucket):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, content.ErrNotPersisted),
		errors.Is(err, remote.ErrUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusBadGateway, "The remote store rejected the change."
	}
}

// writeStoreError logs err and sends the mapped status.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	status, msg := storeStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
