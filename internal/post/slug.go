package post

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	datePrefixRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)
)

// Slugify lowercases a title and collapses every run of
// non-alphanumeric characters into a single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SynthesizeName builds a post's file name from its title and date:
// parenthetical asides are dropped, the rest is slugified and prefixed
// with the date. "Hello World (draft)" on 2021-03-04 becomes
// "2021-03-04-hello-world".
func SynthesizeName(title string, t time.Time) string {
	title = parentheticalRe.ReplaceAllString(title, "")
	return t.Format("2006-01-02") + "-" + url.PathEscape(Slugify(title))
}

// ConvertTag maps a document tag to a site category token. Tag syntax
// forbids periods and hyphens, so doubled underscores stand for
// periods and single underscores for hyphens: "foo__bar_baz" becomes
// "foo.bar-baz".
func ConvertTag(tag string) string {
	tag = strings.ReplaceAll(tag, "__", ".")
	return strings.ReplaceAll(tag, "_", "-")
}

// StripDatePrefix removes a leading "YYYY-MM-DD-" from a file name.
// Names without the prefix come back unchanged.
func StripDatePrefix(name string) string {
	return datePrefixRe.ReplaceAllString(name, "")
}
