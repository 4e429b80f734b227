// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"errors"
	"log/slog"
)

// UpdateSection sets doc[section][key] = value.
func UpdateSection(doc Document, section, key string, value any) Document {
	return applyOrKeep(doc, []Segment{Key(section), Key(key)}, value)
}

// UpdateNested sets doc[section][nested][key] = value.
func UpdateNested(doc Document, section, nested, key string, value any) Document {
	return applyOrKeep(doc, []Segment{Key(section), Key(nested), Key(key)}, value)
}

// UpdateDeepNested sets doc[section][nested1][nested2][key] = value.
func UpdateDeepNested(doc Document, section, nested1, nested2, key string, value any) Document {
	return applyOrKeep(doc, []Segment{Key(section), Key(nested1), Key(nested2), Key(key)}, value)
}

// UpdateArrayItem sets a field on every element of doc[section][arrayKey]
// whose id equals itemID. With no nested keys the element's itemKey is
// replaced; each nested key descends one more object level below itemKey.
//
// It returns false, and doc unchanged, when the section is missing or
// doc[section][arrayKey] is not an array. An id that matches no element is
// not an error: the array is returned unchanged and the result is true.
func UpdateArrayItem(doc Document, section, arrayKey string, itemID any, itemKey string, value any, nested ...string) (Document, bool) {
	if _, ok := asObject(doc[section]); !ok {
		slog.Warn("array item update on missing section", "section", section, "array", arrayKey)
		return doc, false
	}

	segs := []Segment{Key(section), Key(arrayKey), Item(itemID), Key(itemKey)}
	for _, k := range nested {
		segs = append(segs, Key(k))
	}
	p, err := NewPath(segs...)
	if err != nil {
		slog.Warn("array item update rejected", "path", Path(segs).String(), "error", err)
		return doc, false
	}

	out, err := ApplyAt(doc, p, value)
	if errors.Is(err, ErrNotArray) {
		slog.Warn("attempted to update a non-array", "path", section+"."+arrayKey)
		return doc, false
	}
	if err != nil {
		slog.Warn("array item update failed", "path", p.String(), "error", err)
		return doc, false
	}
	return out, true
}

func applyOrKeep(doc Document, segs []Segment, value any) Document {
	p, err := NewPath(segs...)
	if err == nil {
		var out Document
		out, err = ApplyAt(doc, p, value)
		if err == nil {
			return out
		}
	}
	slog.Warn("content update rejected", "path", Path(segs).String(), "error", err)
	return doc
}
