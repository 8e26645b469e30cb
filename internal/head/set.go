// internal/head/set.go
//
// Ordered, de-duplicated element collections for a single render.
//
// Context
// -------
// While a page renders, the component pipeline discovers the styles,
// scripts, and links it needs and pushes them into three Sets owned by the
// render context.  This core never interprets an Element; it only keeps
// insertion order and drops exact duplicates so the layout can emit each
// tag once.
//
// Features
// --------
//   - Add        – append unless an identical element is already present.
//   - Elements   – snapshot in insertion order.
//   - HTML       – concatenated markup for templates.
//
// Notes
// -----
// • A Set belongs to one request; it is not safe for concurrent writes.
// • Oxford commas, two spaces after periods.
package head

import (
	"html/template"
	"sort"
	"strings"
)

// Element is one tag: name, attributes, and inline children.
type Element struct {
	Name     string            // "style", "script", "link"
	Props    map[string]string // attributes
	Children string            // inline content, already safe
}

// key builds a stable identity for de-duplication.  Attribute order is
// irrelevant.
func (e Element) key() string {
	names := make([]string, 0, len(e.Props))
	for k := range e.Props {
		names = append(names, k)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(e.Name)
	for _, k := range names {
		sb.WriteByte(0)
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(e.Props[k])
	}
	sb.WriteByte(0)
	sb.WriteString(e.Children)
	return sb.String()
}

// Set is an insertion-ordered set of Elements.
type Set struct {
	items []Element
	seen  map[string]struct{}
}

// NewSet returns a Set seeded with elems (duplicates dropped).
func NewSet(elems ...Element) *Set {
	s := &Set{seen: make(map[string]struct{}, len(elems))}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Add appends e.  It reports false when an identical element exists.
func (s *Set) Add(e Element) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	k := e.key()
	if _, dup := s.seen[k]; dup {
		return false
	}
	s.seen[k] = struct{}{}
	s.items = append(s.items, e)
	return true
}

// Len reports the number of elements.
func (s *Set) Len() int { return len(s.items) }

// Elements returns a copy in insertion order.
func (s *Set) Elements() []Element {
	out := make([]Element, len(s.items))
	copy(out, s.items)
	return out
}

// HTML renders every element back to back.
func (s *Set) HTML() template.HTML {
	var sb strings.Builder
	for _, e := range s.items {
		writeElement(&sb, e)
	}
	return template.HTML(sb.String())
}

// voidElements never take a closing tag.
var voidElements = map[string]bool{"link": true, "meta": true, "base": true}

func writeElement(sb *strings.Builder, e Element) {
	names := make([]string, 0, len(e.Props))
	for k := range e.Props {
		names = append(names, k)
	}
	sort.Strings(names)

	sb.WriteByte('<')
	sb.WriteString(e.Name)
	for _, k := range names {
		sb.WriteByte(' ')
		sb.WriteString(k)
		if v := e.Props[k]; v != "" {
			sb.WriteString(`="`)
			sb.WriteString(template.HTMLEscapeString(v))
			sb.WriteByte('"')
		}
	}
	sb.WriteByte('>')
	if voidElements[e.Name] {
		return
	}
	sb.WriteString(e.Children)
	sb.WriteString("</")
	sb.WriteString(e.Name)
	sb.WriteByte('>')
}
