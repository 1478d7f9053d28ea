// Package outline provides a structural index over org-style outline
// documents: headlines, task states, tags, property drawers, and planning
// lines. Entry content is never interpreted; it passes through verbatim
// to the external exporter.
package outline

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Document is a parsed outline document. Entries hold parent
// back-references; all positions are line indexes into lines.
type Document struct {
	// Path is the file the document was loaded from. Empty for
	// scratch documents built from strings.
	Path string

	lines    []string
	entries  []*Entry
	props    map[string]string // file-level #+PROPERTY: key value
	todoSet  map[string]bool
	modified bool
}

// Entry is one outline headline plus the bounds of its subtree.
type Entry struct {
	doc    *Document
	Parent *Entry

	Level int    // number of leading stars
	Todo  string // task-state keyword, empty if none
	Tags  []string

	// Scheduled and Closed hold the raw timestamp contents from the
	// planning line, e.g. "2021-03-04 Thu 10:00".
	Scheduled string
	Closed    string

	line        int // headline line index
	end         int // exclusive end of subtree
	planning    int // planning line index, -1 if absent
	drawerStart int // :PROPERTIES: line index, -1 if absent
	drawerEnd   int // :END: line index, -1 if absent

	heading string            // headline text after stars, todo, and priority, before tags
	props   map[string]string // property drawer, upper-cased keys
}

var (
	headlineRe = regexp.MustCompile(`^(\*+)[ \t]+(.*)$`)
	priorityRe = regexp.MustCompile(`^\[#[A-Za-z]\][ \t]*`)
	tagsRe     = regexp.MustCompile(`[ \t]+(:[A-Za-z0-9_@#%]+(?::[A-Za-z0-9_@#%]+)*:)[ \t]*$`)
	propLineRe = regexp.MustCompile(`^[ \t]*:([A-Za-z0-9_+-]+):[ \t]*(.*)$`)
	keywordRe  = regexp.MustCompile(`^#\+([A-Za-z_]+):[ \t]*(.*)$`)

	scheduledRe = regexp.MustCompile(`SCHEDULED:[ \t]*[<\[]([^>\]]+)[>\]]`)
	closedRe    = regexp.MustCompile(`CLOSED:[ \t]*[<\[]([^>\]]+)[>\]]`)
)

// defaultTodoKeywords is the task-state set used when the document does
// not declare its own via #+TODO.
var defaultTodoKeywords = []string{"TODO", "NEXT", "WAITING", "DONE", "CANCELLED"}

// LoadFile reads and parses an outline document from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	doc := Parse(string(data))
	doc.Path = path
	return doc, nil
}

// Parse builds a Document from raw outline text.
func Parse(text string) *Document {
	d := &Document{
		lines:   strings.Split(text, "\n"),
		props:   make(map[string]string),
		todoSet: make(map[string]bool),
	}
	d.scanKeywords()
	d.scanEntries()
	return d
}

// scanKeywords collects file-level #+ keywords: the task-state set from
// #+TODO / #+SEQ_TODO and file-wide properties from #+PROPERTY.
func (d *Document) scanKeywords() {
	for _, kw := range defaultTodoKeywords {
		d.todoSet[kw] = true
	}

	for _, line := range d.lines {
		m := keywordRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := strings.ToUpper(m[1])
		switch key {
		case "TODO", "SEQ_TODO", "TYP_TODO":
			d.setTodoKeywords(m[2])
		case "PROPERTY":
			name, value, ok := strings.Cut(strings.TrimSpace(m[2]), " ")
			if ok {
				d.props[strings.ToUpper(name)] = strings.TrimSpace(value)
			}
		}
	}
}

// setTodoKeywords replaces the default task-state set with the declared
// one. The "|" done-separator and "(t)" shortcut cookies are dropped.
func (d *Document) setTodoKeywords(spec string) {
	d.todoSet = make(map[string]bool)
	for _, word := range strings.Fields(spec) {
		if word == "|" {
			continue
		}
		if i := strings.IndexByte(word, '('); i >= 0 {
			word = word[:i]
		}
		if word != "" {
			d.todoSet[word] = true
		}
	}
}

// scanEntries builds the entry tree with parent back-references.
func (d *Document) scanEntries() {
	d.entries = nil
	var stack []*Entry

	for i, line := range d.lines {
		m := headlineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		e := &Entry{
			doc:         d,
			Level:       len(m[1]),
			line:        i,
			planning:    -1,
			drawerStart: -1,
			drawerEnd:   -1,
			props:       make(map[string]string),
		}
		e.parseHeadline(m[2])

		// Pop the stack to the nearest shallower entry; close the
		// subtrees we are leaving.
		for len(stack) > 0 && stack[len(stack)-1].Level >= e.Level {
			stack[len(stack)-1].end = i
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			e.Parent = stack[len(stack)-1]
		}
		stack = append(stack, e)
		d.entries = append(d.entries, e)
	}

	for _, e := range stack {
		e.end = len(d.lines)
	}

	for _, e := range d.entries {
		e.scanBody()
	}
}

// parseHeadline splits the text after the stars into task state,
// priority cookie, heading text, and trailing tags.
func (e *Entry) parseHeadline(text string) {
	if m := tagsRe.FindStringSubmatchIndex(text); m != nil {
		tagStr := text[m[2]:m[3]]
		e.Tags = splitTags(tagStr)
		text = text[:m[0]]
	}

	word, rest, found := strings.Cut(text, " ")
	if found && e.doc.todoSet[word] {
		e.Todo = word
		text = strings.TrimLeft(rest, " \t")
	} else if !found && e.doc.todoSet[text] {
		e.Todo = text
		text = ""
	}

	text = priorityRe.ReplaceAllString(text, "")
	e.heading = strings.TrimSpace(text)
}

// splitTags turns ":a:b:" into ["a", "b"].
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(strings.Trim(s, ":"), ":") {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// scanBody reads the planning line and property drawer directly below
// the headline.
func (e *Entry) scanBody() {
	i := e.line + 1
	if i < e.end {
		line := e.doc.lines[i]
		if scheduledRe.MatchString(line) || closedRe.MatchString(line) || strings.Contains(line, "DEADLINE:") {
			e.planning = i
			if m := scheduledRe.FindStringSubmatch(line); m != nil {
				e.Scheduled = strings.TrimSpace(m[1])
			}
			if m := closedRe.FindStringSubmatch(line); m != nil {
				e.Closed = strings.TrimSpace(m[1])
			}
			i++
		}
	}

	if i < e.end && strings.EqualFold(strings.TrimSpace(e.doc.lines[i]), ":PROPERTIES:") {
		e.drawerStart = i
		for j := i + 1; j < e.end; j++ {
			trimmed := strings.TrimSpace(e.doc.lines[j])
			if strings.EqualFold(trimmed, ":END:") {
				e.drawerEnd = j
				break
			}
			if m := propLineRe.FindStringSubmatch(e.doc.lines[j]); m != nil {
				e.props[strings.ToUpper(m[1])] = strings.TrimSpace(m[2])
			}
		}
		if e.drawerEnd < 0 {
			// Unterminated drawer: ignore it entirely.
			e.drawerStart = -1
			e.props = make(map[string]string)
		}
	}
}

// Entries returns all entries in document order.
func (d *Document) Entries() []*Entry {
	return d.entries
}

// Text returns the current full document text.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// Modified reports whether the document has been edited since parse.
func (d *Document) Modified() bool {
	return d.modified
}

// HeaderText returns everything before the first headline: the shared
// top-of-file region holding document-wide export settings.
func (d *Document) HeaderText() string {
	if len(d.entries) == 0 {
		return d.Text()
	}
	first := d.entries[0].line
	if first == 0 {
		return ""
	}
	return strings.Join(d.lines[:first], "\n") + "\n"
}

// EntryAt returns the deepest entry whose subtree contains the given
// 1-based line number, or nil when the line is before the first
// headline (or out of range).
func (d *Document) EntryAt(line int) *Entry {
	idx := line - 1
	var found *Entry
	for _, e := range d.entries {
		if e.line <= idx && idx < e.end {
			found = e // entries are in document order; the last hit is deepest
		}
	}
	return found
}

// Line returns the 1-based line number of the entry's headline.
func (e *Entry) Line() int {
	return e.line + 1
}

// SubtreeText returns the exact text of the entry's subtree: the
// headline plus all descendant lines.
func (e *Entry) SubtreeText() string {
	text := strings.Join(e.doc.lines[e.line:e.end], "\n")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

// Contains reports whether other lies within e's subtree. An entry
// contains itself.
func (e *Entry) Contains(other *Entry) bool {
	return other != nil && e.doc == other.doc && e.line <= other.line && other.line < e.end
}

// SelfOrAncestorWithTodo walks upward from the entry (including itself)
// to the nearest entry carrying a task-state keyword. Returns nil when
// no ancestor up to the document root has one.
func (e *Entry) SelfOrAncestorWithTodo() *Entry {
	for cur := e; cur != nil; cur = cur.Parent {
		if cur.Todo != "" {
			return cur
		}
	}
	return nil
}
