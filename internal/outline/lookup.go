package outline

import (
	"regexp"
	"strings"
)

var (
	descLinkRe  = regexp.MustCompile(`\[\[([^\]]*)\]\[([^\]]*)\]\]`)
	plainLinkRe = regexp.MustCompile(`\[\[([^\]]*)\]\]`)
	emphasisRe  = regexp.MustCompile(`([*/=~_+])([^ ][^*/=~_+]*)([*/=~_+])`)
)

// PropertyLocal looks up a property on the entry itself. Keys are
// case-insensitive.
func (e *Entry) PropertyLocal(key string) (string, bool) {
	v, ok := e.props[strings.ToUpper(key)]
	return v, ok
}

// PropertyInherited looks up a property on the entry, its ancestors,
// and finally the document-wide #+PROPERTY keywords.
func (e *Entry) PropertyInherited(key string) (string, bool) {
	upper := strings.ToUpper(key)
	for cur := e; cur != nil; cur = cur.Parent {
		if v, ok := cur.props[upper]; ok {
			return v, true
		}
	}
	v, ok := e.doc.props[upper]
	return v, ok
}

// HeadingText returns the headline text with the task state, priority
// cookie, tags, and inline markup stripped.
func (e *Entry) HeadingText() string {
	return StripMarkup(e.heading)
}

// StripMarkup removes org inline markup from a heading string: links
// collapse to their description (or target), emphasis markers are
// dropped.
func StripMarkup(s string) string {
	s = descLinkRe.ReplaceAllString(s, "$2")
	s = plainLinkRe.ReplaceAllString(s, "$1")
	s = emphasisRe.ReplaceAllStringFunc(s, func(m string) string {
		if m[0] != m[len(m)-1] {
			return m
		}
		return m[1 : len(m)-1]
	})
	return strings.TrimSpace(s)
}

// FindHeading locates an entry by heading text anywhere in the
// document, the way a cross-document heading link is resolved. Exact
// matches on the stripped heading win; otherwise the first entry whose
// heading contains the search string is returned. Returns nil when
// nothing matches.
func (d *Document) FindHeading(search string) *Entry {
	search = strings.TrimSpace(strings.TrimPrefix(search, "*"))
	for _, e := range d.entries {
		if e.HeadingText() == search {
			return e
		}
	}
	for _, e := range d.entries {
		if strings.Contains(e.HeadingText(), search) {
			return e
		}
	}
	return nil
}
