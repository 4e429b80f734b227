// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PropertyType separates listings shown on the buy and rent pages.
type PropertyType string

const (
	PropertyTypeBuy  PropertyType = "buy"
	PropertyTypeRent PropertyType = "rent"
)

// Valid reports whether t is one of the known listing types.
func (t PropertyType) Valid() bool {
	return t == PropertyTypeBuy || t == PropertyTypeRent
}

// Count is a room count entered through a free numeric input. It accepts
// fractional values ("2.5 baths") and numeric strings, and treats null or
// an empty string as zero.
type Count float64

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*c = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("count: %q is not a number", s)
		}
		*c = Count(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("count: %w", err)
	}
	*c = Count(f)
	return nil
}

// NearbyArea is a named place near a property with a display distance.
type NearbyArea struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// Landmark is one of the fixed landmark slots on the property detail page.
type Landmark struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Landmarks holds the three fixed landmark slots.
type Landmarks struct {
	Metro    Landmark `json:"metro"`
	Hospital Landmark `json:"hospital"`
	School   Landmark `json:"school"`
}

// Property is one real-estate listing. Images is the only source of
// property imagery: index 0 is the thumbnail, index 1 the main detail
// image, and anything after that belongs to the gallery.
type Property struct {
	ID                   int64        `json:"id"`
	Images               []string     `json:"images"`
	Location             string       `json:"location"`
	Title                string       `json:"title"`
	Price                string       `json:"price"`
	Beds                 Count        `json:"beds"`
	Baths                Count        `json:"baths"`
	Area                 string       `json:"area"`
	Furnishing           string       `json:"furnishing"`
	SuitableFor          string       `json:"suitableFor"`
	Status               string       `json:"status"`
	StatusBgClass        string       `json:"statusBgClass"`
	StatusTextColorClass string       `json:"statusTextColorClass"`
	Type                 PropertyType `json:"type"`
	IsFeatured           bool         `json:"isFeatured"`

	Parking     string       `json:"parking"`
	Tags        []string     `json:"tags"`
	NearbyAreas []NearbyArea `json:"nearbyAreas"`
	Amenities   []string     `json:"amenities"`

	Description           string    `json:"description"`
	Features              []string  `json:"features"`
	Landmarks             Landmarks `json:"landmarks"`
	Deposit               string    `json:"deposit"`
	Maintenance           string    `json:"maintenance"`
	Brokerage             string    `json:"brokerage"`
	AgentImage            string    `json:"agentImage"`
	AgentName             string    `json:"agentName"`
	AgentTitle            string    `json:"agentTitle"`
	DetailLocationAddress string    `json:"detailLocationAddress"`
	DetailPriceSuffix     string    `json:"detailPriceSuffix"`
	DetailMaintenanceNote string    `json:"detailMaintenanceNote"`
	DetailViewsText       string    `json:"detailViewsText"`
}

// Thumbnail returns the listing card image, or "" when none is set.
func (p *Property) Thumbnail() string {
	return p.imageAt(0)
}

// MainImage returns the primary detail-page image, falling back to the
// thumbnail when only one image exists.
func (p *Property) MainImage() string {
	if img := p.imageAt(1); img != "" {
		return img
	}
	return p.Thumbnail()
}

// Gallery returns the non-empty gallery images (everything after index 1).
func (p *Property) Gallery() []string {
	var out []string
	for i := 2; i < len(p.Images); i++ {
		if p.Images[i] != "" {
			out = append(out, p.Images[i])
		}
	}
	return out
}

func (p *Property) imageAt(i int) string {
	if i < len(p.Images) {
		return p.Images[i]
	}
	return ""
}

// ConstructionProject is one entry in the construction portfolio gallery.
type ConstructionProject struct {
	ID       int64  `json:"id"`
	Status   string `json:"status"`
	Title    string `json:"title"`
	Location string `json:"location"`
	ImageURL string `json:"imageUrl"`
	Alt      string `json:"alt"`
}
