// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"brsite/internal/models"
)

//go:embed defaults.json
var defaultsJSON []byte

// DefaultContent returns the content the site ships with. It is inserted
// when the remote store has no document yet and served whenever the
// remote content cannot be loaded.
func DefaultContent() (models.WebsiteContent, error) {
	var c models.WebsiteContent
	if err := json.Unmarshal(defaultsJSON, &c); err != nil {
		return c, fmt.Errorf("decode default content: %w", err)
	}
	return c, nil
}

// DefaultDocument returns a fresh generic copy of the default content.
func DefaultDocument() (Document, error) {
	return DecodeDocument(defaultsJSON)
}

// MustDefaultDocument is like DefaultDocument but panics on error. The
// defaults are compiled in, so an error here is a build defect.
func MustDefaultDocument() Document {
	doc, err := DefaultDocument()
	if err != nil {
		panic(err)
	}
	return doc
}
