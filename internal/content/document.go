// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content holds the site content model and everything that edits
// it: the generic document tree, path-addressed partial updates,
// normalization of stored property records, and the Store that keeps the
// in-memory snapshot in sync with the remote store.
package content

import (
	"encoding/json"
	"fmt"

	"brsite/internal/models"
)

// Document is the generic form of the site content document. Objects are
// map[string]any, arrays []any, and leaves are JSON scalars. Values
// reachable from a Document are shared between snapshots and must be
// treated as read-only; edits go through ApplyAt and its wrappers.
type Document map[string]any

// FromModel converts the typed content tree to a Document.
func FromModel(c models.WebsiteContent) (Document, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}
	return DecodeDocument(raw)
}

// DecodeDocument parses a stored JSON document.
func DecodeDocument(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode content document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decode content document: not an object")
	}
	return doc, nil
}

// Decode converts the document to the typed content tree. Keys unknown to
// the typed model are ignored.
func (d Document) Decode() (models.WebsiteContent, error) {
	var c models.WebsiteContent
	raw, err := json.Marshal(d)
	if err != nil {
		return c, fmt.Errorf("marshal content document: %w", err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("decode content document: %w", err)
	}
	return c, nil
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return cloneValue(map[string]any(d)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Document:
		return Document(cloneValue(map[string]any(t)).(map[string]any))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// asObject returns v as an object, or nil when v is not one.
func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Document:
		return map[string]any(t), true
	}
	return nil, false
}

// sameID compares array element ids the way the stored JSON does: strings
// match strings, numbers match numbers by value, and a string never
// equals a number.
func sameID(a, b any) bool {
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok || bok {
		return aok && bok && af == bf
	}
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
