// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"reflect"
	"testing"
)

func testDoc(t *testing.T) Document {
	t.Helper()
	doc, err := DefaultDocument()
	if err != nil {
		t.Fatalf("DefaultDocument: %v", err)
	}
	return doc
}

func section(doc Document, name string) map[string]any {
	m, _ := asObject(doc[name])
	return m
}

func TestUpdateHelpersDoNotMutateInput(t *testing.T) {
	tests := []struct {
		name string
		fn   func(Document) Document
	}{
		{"section", func(d Document) Document { return UpdateSection(d, "meta", "title", "X") }},
		{"nested", func(d Document) Document { return UpdateNested(d, "homePage", "hero", "title", "X") }},
		{"deep", func(d Document) Document {
			return UpdateDeepNested(d, "homePage", "contactSection", "whatsappCard", "title", "X")
		}},
		{"array item", func(d Document) Document {
			out, _ := UpdateArrayItem(d, "header", "navLinks", "home", "label", "X")
			return out
		}},
		{"array item nested", func(d Document) Document {
			out, _ := UpdateArrayItem(d, "footer", "socialLinks", "facebook", "meta", "X", "a", "b")
			return out
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDoc(t)
			before := doc.Clone()
			out := tt.fn(doc)
			if !reflect.DeepEqual(doc, before) {
				t.Error("input document was modified")
			}
			if reflect.DeepEqual(out, before) {
				t.Error("update had no effect")
			}
		})
	}
}

func TestUpdateSectionSharesUntouchedBranches(t *testing.T) {
	doc := testDoc(t)
	out := UpdateSection(doc, "meta", "title", "New Title")

	if got := section(out, "meta")["title"]; got != "New Title" {
		t.Errorf("meta.title = %v", got)
	}
	if !sameMap(out["header"], doc["header"]) {
		t.Error("header branch was copied")
	}
	if sameMap(out["meta"], doc["meta"]) {
		t.Error("meta branch was not copied")
	}
	if got := section(out, "meta")["description"]; got != section(doc, "meta")["description"] {
		t.Error("sibling field lost")
	}
}

func TestUpdateNestedCreatesMissingIntermediate(t *testing.T) {
	doc := Document{"homePage": map[string]any{}}
	out := UpdateNested(doc, "homePage", "hero", "title", "T")
	want := Document{"homePage": map[string]any{"hero": map[string]any{"title": "T"}}}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %#v", out)
	}
}

func TestUpdateDeepNestedReplacesNonObject(t *testing.T) {
	doc := Document{"homePage": map[string]any{"stats": map[string]any{"experience": "15+"}}}
	out := UpdateDeepNested(doc, "homePage", "stats", "experience", "value", "20+")
	got := out["homePage"].(map[string]any)["stats"].(map[string]any)["experience"]
	if !reflect.DeepEqual(got, map[string]any{"value": "20+"}) {
		t.Errorf("experience = %#v", got)
	}
}

func TestUpdateArrayItemTargetsMatchingID(t *testing.T) {
	first := map[string]any{"id": float64(1), "title": "A"}
	doc := Document{"s": map[string]any{"items": []any{
		first,
		map[string]any{"id": float64(2), "title": "B"},
	}}}

	out, ok := UpdateArrayItem(doc, "s", "items", 2, "title", "C")
	if !ok {
		t.Fatal("UpdateArrayItem returned false")
	}
	items := out["s"].(map[string]any)["items"].([]any)
	want := []any{
		map[string]any{"id": float64(1), "title": "A"},
		map[string]any{"id": float64(2), "title": "C"},
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("items = %#v", items)
	}
	if !sameMap(items[0], first) {
		t.Error("element with id 1 was copied")
	}
}

func TestUpdateArrayItemMissingID(t *testing.T) {
	doc := Document{"s": map[string]any{"items": []any{
		map[string]any{"id": "a", "title": "A"},
	}}}
	before := doc.Clone()

	out, ok := UpdateArrayItem(doc, "s", "items", "zzz", "title", "C")
	if !ok {
		t.Fatal("missing id should not report failure")
	}
	if !reflect.DeepEqual(out, before) {
		t.Errorf("array changed: %#v", out)
	}
}

func TestUpdateArrayItemStringNeverMatchesNumber(t *testing.T) {
	doc := Document{"s": map[string]any{"items": []any{
		map[string]any{"id": float64(1), "title": "A"},
	}}}
	out, _ := UpdateArrayItem(doc, "s", "items", "1", "title", "C")
	if got := out["s"].(map[string]any)["items"].([]any)[0].(map[string]any)["title"]; got != "A" {
		t.Errorf("string id matched numeric id: title = %v", got)
	}
}

func TestUpdateArrayItemUpdatesEveryMatch(t *testing.T) {
	doc := Document{"s": map[string]any{"items": []any{
		map[string]any{"id": "dup", "title": "A"},
		map[string]any{"id": "other", "title": "B"},
		map[string]any{"id": "dup", "title": "C"},
	}}}
	out, _ := UpdateArrayItem(doc, "s", "items", "dup", "title", "Z")
	items := out["s"].(map[string]any)["items"].([]any)
	for _, i := range []int{0, 2} {
		if got := items[i].(map[string]any)["title"]; got != "Z" {
			t.Errorf("items[%d].title = %v", i, got)
		}
	}
	if got := items[1].(map[string]any)["title"]; got != "B" {
		t.Errorf("non-matching element changed: %v", got)
	}
}

func TestUpdateArrayItemNestedKeys(t *testing.T) {
	doc := Document{"s": map[string]any{"items": []any{
		map[string]any{"id": "p", "landmarks": map[string]any{"metro": map[string]any{"title": "Old", "icon": "train"}}},
	}}}

	out, _ := UpdateArrayItem(doc, "s", "items", "p", "landmarks", "New", "metro", "title")
	metro := out["s"].(map[string]any)["items"].([]any)[0].(map[string]any)["landmarks"].(map[string]any)["metro"]
	if !reflect.DeepEqual(metro, map[string]any{"title": "New", "icon": "train"}) {
		t.Errorf("metro = %#v", metro)
	}

	out, _ = UpdateArrayItem(doc, "s", "items", "p", "landmarks", map[string]any{}, "school")
	lm := out["s"].(map[string]any)["items"].([]any)[0].(map[string]any)["landmarks"].(map[string]any)
	if _, ok := lm["school"]; !ok {
		t.Error("one-level nested key not set")
	}
	if _, ok := lm["metro"]; !ok {
		t.Error("sibling nested key lost")
	}
}

func TestUpdateArrayItemNoArray(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{"missing section", Document{}},
		{"missing array", Document{"s": map[string]any{}}},
		{"not an array", Document{"s": map[string]any{"items": "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := UpdateArrayItem(tt.doc, "s", "items", "a", "title", "C")
			if ok {
				t.Error("expected false")
			}
			if !sameMap(out, tt.doc) {
				t.Error("document should be returned unchanged")
			}
		})
	}
}

func TestUpdateSectionRejectsEmptyKey(t *testing.T) {
	doc := testDoc(t)
	if out := UpdateSection(doc, "meta", "", "x"); !sameMap(out, doc) {
		t.Error("empty key should leave the document unchanged")
	}
}
