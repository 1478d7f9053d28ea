// Package jekyll post-processes the exporter's front-matter-delimited
// HTML: patching metadata keys and canonicalizing links for the
// deployed site.
package jekyll

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/obeck/outpost/internal/output"
)

const marker = "---"

// PatchSpec carries the metadata fields merged into the exported
// front matter.
type PatchSpec struct {
	Series    string
	MetaTitle string // template, %s expands to Title when present
	Title     string
	IsPage    bool
	Time      time.Time
}

// PatchFrontMatter rewrites the front-matter block of an exported
// document: series and meta_title are inserted after the opening
// marker, then the date line is deleted for pages or rewritten with
// the resolved timestamp for posts.
//
// The insertions must land before the date line is located, since
// they shift everything below them.
func PatchFrontMatter(doc string, spec PatchSpec) (string, error) {
	lines := strings.Split(doc, "\n")

	start, end, err := findMarkers(lines)
	if err != nil {
		return "", err
	}

	var inserts []string
	if spec.Series != "" {
		inserts = append(inserts, fmt.Sprintf("series: %q", spec.Series))
	}
	if spec.MetaTitle != "" {
		inserts = append(inserts, fmt.Sprintf("meta_title: %q", expandMetaTitle(spec.MetaTitle, spec.Title)))
	}
	if len(inserts) > 0 {
		lines = append(lines[:start+1], append(inserts, lines[start+1:]...)...)
		end += len(inserts)
	}

	dateIdx := -1
	for i := end - 1; i > start; i-- {
		if strings.HasPrefix(lines[i], "date:") {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return "", output.NewExporterError("exported front matter has no date line")
	}

	if spec.IsPage {
		lines = append(lines[:dateIdx], lines[dateIdx+1:]...)
	} else {
		lines[dateIdx] = "date: " + spec.Time.Format("2006-01-02 15:04:05")
	}
	return strings.Join(lines, "\n"), nil
}

// expandMetaTitle fills the template's %s slot with the post title. A
// template without a slot is taken verbatim, so fmt never emits
// EXTRA-argument noise into the front matter.
func expandMetaTitle(tpl, title string) string {
	if strings.Contains(tpl, "%s") {
		return strings.Replace(tpl, "%s", title, 1)
	}
	return tpl
}

// findMarkers locates the opening and closing front-matter marker
// lines. A document without both markers is malformed exporter
// output.
func findMarkers(lines []string) (int, int, error) {
	start := -1
	for i, line := range lines {
		if strings.TrimRight(line, " \t") != marker {
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		return start, i, nil
	}
	return 0, 0, output.NewExporterError("exported document has no front matter markers")
}

// FrontMatter extracts and decodes the front-matter block as YAML.
// Used to sanity-check patched output before it is written out.
func FrontMatter(doc string) (map[string]any, error) {
	lines := strings.Split(doc, "\n")
	start, end, err := findMarkers(lines)
	if err != nil {
		return nil, err
	}

	block := strings.Join(lines[start+1:end], "\n")
	var fm map[string]any
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return nil, output.NewExporterErrorWithCause("patched front matter is not valid YAML", err)
	}
	return fm, nil
}
