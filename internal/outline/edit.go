package outline

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var scheduledStampRe = regexp.MustCompile(`SCHEDULED:[ \t]*[<\[][^>\]]*[>\]]`)

// Save writes the document text back to its file when it has been
// modified. Scratch documents (no path) are never written.
func (d *Document) Save() error {
	if !d.modified || d.Path == "" {
		return nil
	}
	if err := os.WriteFile(d.Path, []byte(d.Text()), 0644); err != nil {
		return fmt.Errorf("writing document %s: %w", d.Path, err)
	}
	d.modified = false
	return nil
}

// SetProperty writes a property into the entry's drawer, creating the
// drawer when absent.
func (e *Entry) SetProperty(key, value string) {
	upper := strings.ToUpper(key)
	indent := strings.Repeat(" ", e.Level+1)

	if e.drawerStart >= 0 {
		// Replace an existing line for this key.
		for i := e.drawerStart + 1; i < e.drawerEnd; i++ {
			m := propLineRe.FindStringSubmatch(e.doc.lines[i])
			if m != nil && strings.EqualFold(m[1], key) {
				e.doc.lines[i] = indent + ":" + key + ": " + value
				e.doc.modified = true
				e.props[upper] = value
				return
			}
		}
		// insertLines shifts drawerEnd past the new line for us.
		e.doc.insertLines(e.drawerEnd, []string{indent + ":" + key + ": " + value})
		e.props[upper] = value
		return
	}

	at := e.line + 1
	if e.planning >= 0 {
		at = e.planning + 1
	}
	e.doc.insertLines(at, []string{
		indent + ":PROPERTIES:",
		indent + ":" + key + ": " + value,
		indent + ":END:",
	})
	e.drawerStart = at
	e.drawerEnd = at + 2
	e.props[upper] = value
}

// SetScheduled writes a SCHEDULED stamp onto the entry's planning line,
// creating the line when absent. The raw value is the timestamp
// contents without brackets, e.g. "2021-03-04 Thu 10:00".
func (e *Entry) SetScheduled(raw string) {
	stamp := "SCHEDULED: <" + raw + ">"

	if e.planning >= 0 {
		line := e.doc.lines[e.planning]
		if scheduledStampRe.MatchString(line) {
			e.doc.lines[e.planning] = scheduledStampRe.ReplaceAllString(line, stamp)
		} else {
			e.doc.lines[e.planning] = line + " " + stamp
		}
		e.doc.modified = true
		e.Scheduled = raw
		return
	}

	indent := strings.Repeat(" ", e.Level+1)
	e.doc.insertLines(e.line+1, []string{indent + stamp})
	e.planning = e.line + 1
	e.Scheduled = raw
}

// insertLines splices newLines in before line index at and shifts every
// recorded position accordingly. Subtrees whose headline is above the
// insertion point grow, including when the insertion lands exactly on
// the current subtree end.
func (d *Document) insertLines(at int, newLines []string) {
	n := len(newLines)

	updated := make([]string, 0, len(d.lines)+n)
	updated = append(updated, d.lines[:at]...)
	updated = append(updated, newLines...)
	updated = append(updated, d.lines[at:]...)
	d.lines = updated

	shift := func(pos *int) {
		if *pos >= at {
			*pos += n
		}
	}
	for _, e := range d.entries {
		// Decide both shifts from the pre-mutation headline position:
		// entries at or below the insertion move wholesale, entries
		// whose subtree spans it grow (end is exclusive).
		if e.line >= at {
			e.line += n
			e.end += n
		} else if e.end >= at {
			e.end += n
		}
		if e.planning >= 0 {
			shift(&e.planning)
		}
		if e.drawerStart >= 0 {
			shift(&e.drawerStart)
			shift(&e.drawerEnd)
		}
	}
	d.modified = true
}
