// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"brsite/internal/remote"
	"brsite/internal/slug"
)

// errBadUploadField is returned by objectKey for malformed form fields.
var errBadUploadField = errors.New("invalid upload field")

// MediaUpload handles a multipart image upload to one of the storage
// buckets and returns the public URL. Form fields: file (required),
// owner (record id or "new") for the per-record buckets, index for
// property images, and section (a content path) for page images and logos.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	if err := remote.CheckBucket(bucket); err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown bucket %q.", bucket))
		return
	}

	// Limit request body to maxUploadSize + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType returns text/xml or text/plain for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if msg := validateUpload(header.Size, contentType); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// Seek back to start after sniffing.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process file.")
		return
	}

	key, err := objectKey(bucket, r.FormValue("owner"), r.FormValue("index"), r.FormValue("section"), header.Filename, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := a.store.UploadImage(r.Context(), bucket, key, contentType, file, header.Size)
	if err != nil {
		writeStoreError(w, "upload image", err)
		return
	}

	slog.Info("image uploaded", "bucket", bucket, "key", key, "size", header.Size)
	writeJSON(w, http.StatusCreated, map[string]any{
		"url":    url,
		"bucket": bucket,
		"key":    key,
		"type":   contentType,
		"size":   header.Size,
	})
}

// objectKey builds the storage key for an upload. Per-record buckets
// group files under the owning record id, or a temporary id for records
// not created yet; page images and logos live at the bucket root and are
// named after the content section they belong to.
func objectKey(bucket, owner, index, section, fileName string, now time.Time) (string, error) {
	ms := now.UnixMilli()
	name := slug.FileName(fileName)

	switch bucket {
	case remote.BucketPropertyImages, remote.BucketAvatars, remote.BucketProjectImages:
		o, err := ownerSegment(owner, ms)
		if err != nil {
			return "", err
		}
		switch bucket {
		case remote.BucketPropertyImages:
			if index == "" {
				index = "0"
			}
			if _, err := strconv.ParseUint(index, 10, 16); err != nil {
				return "", fmt.Errorf("%w: index must be a small number", errBadUploadField)
			}
			return fmt.Sprintf("%s/property-%s-%s-%d-%s", o, o, index, ms, name), nil
		case remote.BucketAvatars:
			return fmt.Sprintf("%s/agent-%s-%d-%s", o, o, ms, name), nil
		default:
			return fmt.Sprintf("%s/project-%s-%d-%s", o, o, ms, name), nil
		}
	case remote.BucketPageBackgrounds, remote.BucketAssets:
		s := slug.Generate(strings.ReplaceAll(section, ".", "-"))
		if s == "" {
			return "", fmt.Errorf("%w: section is required", errBadUploadField)
		}
		prefix := "page"
		if bucket == remote.BucketAssets {
			prefix = "logo"
		}
		return fmt.Sprintf("%s-%s-%d-%s", prefix, s, ms, name), nil
	}
	return "", fmt.Errorf("%w: unknown bucket %q", errBadUploadField, bucket)
}

// ownerSegment returns the record id, or temp-<ms> for a new record.
func ownerSegment(owner string, ms int64) (string, error) {
	if owner == "" || owner == "new" {
		return fmt.Sprintf("temp-%d", ms), nil
	}
	if _, err := strconv.ParseInt(owner, 10, 64); err != nil {
		return "", fmt.Errorf("%w: owner must be a record id or \"new\"", errBadUploadField)
	}
	return owner, nil
}
