// Package post derives the front-matter metadata of a blog post from
// the properties of its outline entry.
package post

import (
	"strings"
	"time"

	"github.com/obeck/outpost/internal/outline"
	"github.com/obeck/outpost/internal/output"
)

// Property keys read from the post root entry.
const (
	PropLayout     = "EXPORT_JEKYLL_LAYOUT"
	PropCategories = "EXPORT_JEKYLL_CATEGORIES"
	PropFilename   = "filename"
	PropSeries     = "series"
	PropMetaTitle  = "meta_title"
)

// Metadata is the resolved front-matter record for one export.
type Metadata struct {
	Layout    string
	IsPage    bool
	Filename  string // output name without directory or extension
	Time      time.Time
	Tags      []string // reversed from document order
	Series    string
	MetaTitle string // format template with one %s slot for the title
	Title     string
}

// Categories renders the tag list as the category string written into
// the scratch document before export.
func (m *Metadata) Categories() string {
	converted := make([]string, len(m.Tags))
	for i, tag := range m.Tags {
		converted[i] = ConvertTag(tag)
	}
	return strings.Join(converted, " ")
}

// Resolve reads the post root's properties into a Metadata record.
//
// Two side effects write back onto the source entry: an entry without
// a closed or scheduled timestamp is scheduled at now so it does not
// round-trip as unscheduled, and a post without an explicit filename
// gets the synthesized one recorded as a property.
func Resolve(e *outline.Entry, now time.Time) (*Metadata, error) {
	m := &Metadata{
		Layout: "post",
		Title:  e.HeadingText(),
	}
	if v, ok := e.PropertyInherited(PropLayout); ok && v != "" {
		m.Layout = v
	}
	m.IsPage = m.Layout == "page"

	if v, ok := e.PropertyLocal(PropFilename); ok {
		m.Filename = v
	}
	if m.IsPage && m.Filename == "" {
		return nil, output.NewUserError("a page must carry an explicit filename property")
	}

	if v, ok := e.PropertyInherited(PropSeries); ok {
		m.Series = v
	}
	if v, ok := e.PropertyLocal(PropMetaTitle); ok {
		m.MetaTitle = v
	}

	m.Time = resolveTime(e, now)

	// Reverse the tags so export order matches the order they were
	// added in.
	for i := len(e.Tags) - 1; i >= 0; i-- {
		m.Tags = append(m.Tags, e.Tags[i])
	}

	if m.Filename == "" {
		m.Filename = SynthesizeName(m.Title, m.Time)
		e.SetProperty(PropFilename, m.Filename)
	}
	return m, nil
}

// resolveTime picks the closed timestamp, then the scheduled one, then
// falls back to now, scheduling the entry as a side effect.
func resolveTime(e *outline.Entry, now time.Time) time.Time {
	if e.Closed != "" {
		if t, err := outline.ParseTimestamp(e.Closed); err == nil {
			return t
		}
	}
	if e.Scheduled != "" {
		if t, err := outline.ParseTimestamp(e.Scheduled); err == nil {
			return t
		}
	}
	e.SetScheduled(outline.FormatTimestamp(now))
	return now
}
