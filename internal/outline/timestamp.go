package outline

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts covers the org timestamp shapes we read back from
// planning lines: date with or without weekday, with or without a
// clock time. Repeater cookies are stripped before parsing.
var timestampLayouts = []string{
	"2006-01-02 Mon 15:04",
	"2006-01-02 15:04",
	"2006-01-02 Mon",
	"2006-01-02",
}

// ParseTimestamp reads the contents of an org timestamp (the part
// between the brackets) into a local time.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	// Drop repeater/delay cookies like "+1w" or "-2d".
	fields := strings.Fields(raw)
	kept := fields[:0]
	for _, f := range fields {
		if strings.HasPrefix(f, "+") || strings.HasPrefix(f, "-") || strings.HasPrefix(f, ".+") {
			continue
		}
		kept = append(kept, f)
	}
	raw = strings.Join(kept, " ")

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// FormatTimestamp renders a time as org timestamp contents, e.g.
// "2021-03-04 Thu 10:00".
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 Mon 15:04")
}
