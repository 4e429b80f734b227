// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"brsite/internal/models"
)

// Validation limits for record fields and uploads.
const (
	maxTitleLen    = 300
	maxLocationLen = 300
	maxUploadSize  = 10 << 20
)

// allowedImageTypes defines MIME types accepted for upload.
var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// validateTitle checks a title value and returns the first error found.
// required reports whether a missing title is an error.
func validateTitle(fields map[string]any, required bool) string {
	v, ok := fields["title"]
	if !ok {
		if required {
			return "Title is required."
		}
		return ""
	}
	title, isString := v.(string)
	if !isString || strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	return ""
}

// validateLocation checks the optional location field.
func validateLocation(fields map[string]any) string {
	v, ok := fields["location"]
	if !ok {
		return ""
	}
	loc, isString := v.(string)
	if !isString {
		return "Location must be text."
	}
	if utf8.RuneCountInString(loc) > maxLocationLen {
		return "Location is too long (max 300 characters)."
	}
	return ""
}

// validateProperty checks property fields. On create (partial == false)
// the title and type are required; a patch only checks what it carries.
func validateProperty(fields map[string]any, partial bool) string {
	if msg := validateTitle(fields, !partial); msg != "" {
		return msg
	}
	if msg := validateLocation(fields); msg != "" {
		return msg
	}
	v, ok := fields["type"]
	if !ok {
		if !partial {
			return "Type is required (buy or rent)."
		}
		return ""
	}
	t, _ := v.(string)
	if !models.PropertyType(t).Valid() {
		return "Type must be buy or rent."
	}
	return ""
}

// validateProject checks construction project fields.
func validateProject(fields map[string]any, partial bool) string {
	if msg := validateTitle(fields, !partial); msg != "" {
		return msg
	}
	return validateLocation(fields)
}

// validateUpload checks an uploaded file's size and sniffed content type.
func validateUpload(size int64, contentType string) string {
	if size <= 0 {
		return "File is empty."
	}
	if size > maxUploadSize {
		return "File too large. Maximum size is 10 MB."
	}
	if !allowedImageTypes[contentType] {
		return "File type not allowed. Upload a JPEG, PNG, GIF, WebP or SVG image."
	}
	return ""
}
