// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPath is returned when a path cannot address a document leaf.
	ErrInvalidPath = errors.New("invalid content path")
	// ErrNotArray is returned when an item selector lands on a value that
	// is not an array.
	ErrNotArray = errors.New("content path does not address an array")
)

// Segment is one step of a Path: either an object key or an array element
// selected by its id.
type Segment struct {
	key  string
	id   any
	item bool
}

// Key selects the named field of an object.
func Key(name string) Segment {
	return Segment{key: name}
}

// Item selects every element of an array whose "id" equals id.
func Item(id any) Segment {
	return Segment{id: id, item: true}
}

// IsItem reports whether the segment is an array element selector.
func (s Segment) IsItem() bool { return s.item }

func (s Segment) String() string {
	if !s.item {
		return s.key
	}
	if str, ok := s.id.(string); ok {
		return "[" + str + "]"
	}
	return fmt.Sprintf("[#%v]", s.id)
}

// Path addresses one leaf of a Document. Paths are validated when built:
// they start with a key, end with a key, never hold empty keys, and an
// item selector always follows a key.
type Path []Segment

// NewPath validates segs and returns them as a Path.
func NewPath(segs ...Segment) (Path, error) {
	p := Path(segs)
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p Path) validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if p[0].item {
		return fmt.Errorf("%w: %s: must start with a key", ErrInvalidPath, p)
	}
	if p[len(p)-1].item {
		return fmt.Errorf("%w: %s: must end with a key", ErrInvalidPath, p)
	}
	for i, s := range p {
		if s.item {
			if p[i-1].item {
				return fmt.Errorf("%w: %s: item selector must follow a key", ErrInvalidPath, p)
			}
			if !validID(s.id) {
				return fmt.Errorf("%w: %s: item id must be a string or number", ErrInvalidPath, p)
			}
			continue
		}
		if s.key == "" {
			return fmt.Errorf("%w: %s: empty key", ErrInvalidPath, p)
		}
	}
	return nil
}

func validID(id any) bool {
	if _, ok := id.(string); ok {
		return true
	}
	_, ok := toFloat(id)
	return ok
}

// String renders the path in the syntax accepted by ParsePath.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 && !s.item {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// ParsePath parses a dotted path such as
// "homePage.contactSection.whatsappCard.title". A bracketed segment
// selects array elements by id: "header.navLinks[home].label" matches the
// string id "home", "constructionPortfolioPage.faqSection.faqs[#3].answer"
// matches the numeric id 3.
func ParsePath(s string) (Path, error) {
	var segs []Segment
	i := 0
	expectKey := true
	for i < len(s) {
		switch {
		case s[i] == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: %q: unterminated selector", ErrInvalidPath, s)
			}
			seg, err := parseSelector(s[i+1 : i+end])
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPath, s, err)
			}
			segs = append(segs, seg)
			i += end + 1
			expectKey = false
		case s[i] == '.':
			if expectKey {
				return nil, fmt.Errorf("%w: %q: empty key", ErrInvalidPath, s)
			}
			i++
			expectKey = true
			if i == len(s) {
				return nil, fmt.Errorf("%w: %q: trailing dot", ErrInvalidPath, s)
			}
		default:
			if !expectKey {
				return nil, fmt.Errorf("%w: %q: missing dot after selector", ErrInvalidPath, s)
			}
			end := strings.IndexAny(s[i:], ".[")
			if end < 0 {
				end = len(s) - i
			}
			segs = append(segs, Key(s[i:i+end]))
			i += end
			expectKey = false
		}
	}
	return NewPath(segs...)
}

func parseSelector(sel string) (Segment, error) {
	if sel == "" {
		return Segment{}, errors.New("empty selector")
	}
	if num, ok := strings.CutPrefix(sel, "#"); ok {
		if n, err := strconv.ParseInt(num, 10, 64); err == nil {
			return Item(n), nil
		}
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Segment{}, fmt.Errorf("numeric selector %q", sel)
		}
		return Item(f), nil
	}
	return Item(sel), nil
}

// ApplyAt returns a copy of doc with the leaf addressed by p set to
// value. Only the objects and arrays on the way from the root to the leaf
// are copied; every other branch is shared with doc, and doc itself is
// never modified. Missing or non-object intermediates become empty
// objects. An item selector updates every element whose id matches and
// leaves the array unchanged when none does. If an item selector meets a
// value that is not an array, doc is returned with ErrNotArray.
func ApplyAt(doc Document, p Path, value any) (Document, error) {
	if err := p.validate(); err != nil {
		return doc, err
	}
	out, err := setIn(map[string]any(doc), p, value)
	if err != nil {
		return doc, err
	}
	return Document(out), nil
}

func setIn(node any, p Path, value any) (map[string]any, error) {
	obj, _ := asObject(node)
	out := make(map[string]any, len(obj)+1)
	for k, v := range obj {
		out[k] = v
	}

	key := p[0].key
	rest := p[1:]
	switch {
	case len(rest) == 0:
		out[key] = value
	case rest[0].item:
		arr, ok := out[key].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotArray, key)
		}
		updated := make([]any, len(arr))
		for i, el := range arr {
			elem, isObj := asObject(el)
			if !isObj || !sameID(elem["id"], rest[0].id) {
				updated[i] = el
				continue
			}
			next, err := setIn(elem, rest[1:], value)
			if err != nil {
				return nil, err
			}
			updated[i] = next
		}
		out[key] = updated
	default:
		child, err := setIn(out[key], rest, value)
		if err != nil {
			return nil, err
		}
		out[key] = child
	}
	return out, nil
}
