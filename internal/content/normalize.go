// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"brsite/internal/models"
)

// legacyImageKeys are the per-slot image fields that predate the images
// list, in the order they migrate into it.
var legacyImageKeys = []string{"imageUrl", "mainImage", "galleryImage1", "galleryImage2", "galleryImage3"}

// NormalizePropertyData returns the canonical form of a stored property
// payload. A non-empty images array is kept as is; otherwise images is
// built from the legacy image fields in their fixed order, skipping empty
// values and duplicates. Legacy fields are always removed. Missing tags,
// nearbyAreas and amenities become empty lists and missing parking
// becomes "". raw is not modified and the result is idempotent.
func NormalizePropertyData(raw map[string]any) map[string]any {
	out := maps.Clone(raw)
	if out == nil {
		out = map[string]any{}
	}

	if !nonEmptyList(out["images"]) {
		images := []any{}
		seen := map[string]bool{}
		for _, k := range legacyImageKeys {
			s, ok := out[k].(string)
			if !ok || s == "" || seen[s] {
				continue
			}
			seen[s] = true
			images = append(images, s)
		}
		out["images"] = images
	}
	for _, k := range legacyImageKeys {
		delete(out, k)
	}

	for _, k := range []string{"tags", "nearbyAreas", "amenities"} {
		if out[k] == nil {
			out[k] = []any{}
		}
	}
	if out["parking"] == nil {
		out["parking"] = ""
	}
	return out
}

func nonEmptyList(v any) bool {
	switch l := v.(type) {
	case []any:
		return len(l) > 0
	case []string:
		return len(l) > 0
	}
	return false
}

// MergePropertyData applies patch over an existing stored payload and
// normalizes the result, so legacy image fields on either side end up in
// images and never in the persisted record.
func MergePropertyData(existing, patch map[string]any) map[string]any {
	merged := maps.Clone(existing)
	if merged == nil {
		merged = map[string]any{}
	}
	maps.Copy(merged, patch)
	delete(merged, "id")
	return NormalizePropertyData(merged)
}

// MergeProjectData applies patch over an existing stored project payload.
func MergeProjectData(existing, patch map[string]any) map[string]any {
	merged := maps.Clone(existing)
	if merged == nil {
		merged = map[string]any{}
	}
	maps.Copy(merged, patch)
	delete(merged, "id")
	return merged
}

// ErrInvalidRecord is returned when a property or project payload has a
// field of the wrong type.
var ErrInvalidRecord = errors.New("invalid record")

// DecodeProperty builds a typed property from its row id and normalized
// payload. The row id always wins over any id in the payload.
func DecodeProperty(id int64, data map[string]any) (models.Property, error) {
	var p models.Property
	norm := NormalizePropertyData(data)
	delete(norm, "id")
	if err := remarshal(norm, &p); err != nil {
		return p, fmt.Errorf("decode property %d: %w: %w", id, ErrInvalidRecord, err)
	}
	p.ID = id
	return p, nil
}

// DecodeProject builds a typed construction project from its row id and
// payload.
func DecodeProject(id int64, data map[string]any) (models.ConstructionProject, error) {
	var p models.ConstructionProject
	payload := maps.Clone(data)
	delete(payload, "id")
	if err := remarshal(payload, &p); err != nil {
		return p, fmt.Errorf("decode project %d: %w: %w", id, ErrInvalidRecord, err)
	}
	p.ID = id
	return p, nil
}

// decodeData parses a stored row payload into a generic object.
func decodeData(raw []byte) (map[string]any, error) {
	var data map[string]any
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func remarshal(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
