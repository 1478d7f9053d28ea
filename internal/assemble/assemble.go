// Package assemble builds the scratch source handed to the external
// exporter: the document's shared header plus the post root's subtree,
// with internal links normalized and the category property injected.
package assemble

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/obeck/outpost/internal/outline"
	"github.com/obeck/outpost/internal/post"
)

var (
	imageLinkRe = regexp.MustCompile(`\[\[(file:/images/[^\]\s]+)\]\]`)
	orgLinkRe   = regexp.MustCompile(`\[\[([^\]]+)\](?:\[([^\]]*)\])?\]`)
)

// Assembler normalizes scratch content for one blog checkout.
type Assembler struct {
	// BlogDir is the expanded blog checkout root. file: links into it
	// become root-relative.
	BlogDir string
}

// Build produces the scratch text for exporting root out of doc.
//
// Link handling is best effort: a heading reference that cannot be
// resolved in the source document is left untouched for the exporter
// to deal with.
func (a *Assembler) Build(doc *outline.Document, root *outline.Entry, meta *post.Metadata) string {
	text := doc.HeaderText() + root.SubtreeText()

	text = a.rewriteFileLinks(text)
	text = rewriteImageLinks(text)
	text = rewriteHeadingLinks(text, doc, root)

	if cats := meta.Categories(); cats != "" {
		text = injectCategories(text, cats)
	}
	return text
}

// rewriteFileLinks turns file: references into the blog checkout into
// root-relative file:/ form, so "file:///home/u/blog/bar" becomes
// "file:/bar".
func (a *Assembler) rewriteFileLinks(text string) string {
	for _, dir := range blogDirForms(a.BlogDir) {
		text = strings.ReplaceAll(text, "file://"+dir, "file:")
		text = strings.ReplaceAll(text, "file:"+dir, "file:")
	}
	return text
}

// blogDirForms lists the spellings a document may use for the blog
// directory: the configured path and, when it sits under the home
// directory, the ~-relative form.
func blogDirForms(dir string) []string {
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		return nil
	}
	forms := []string{dir}
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(dir, home+"/") {
		forms = append(forms, "~"+strings.TrimPrefix(dir, home))
	}
	return forms
}

// rewriteImageLinks converts root-relative image links into the
// bracket-delimited literal form the exporter embeds verbatim:
// [[file:/images/x.png]] becomes [file:/images/x.png].
func rewriteImageLinks(text string) string {
	return imageLinkRe.ReplaceAllString(text, "[$1]")
}

// rewriteHeadingLinks resolves cross-references to other headings in
// the source document. The target entry's filename property, minus its
// date prefix, names the deployed page: the link becomes
// [[/name.html][desc]]. Self-references stay put so the exporter's
// same-document anchors keep working.
func rewriteHeadingLinks(text string, doc *outline.Document, root *outline.Entry) string {
	return orgLinkRe.ReplaceAllStringFunc(text, func(link string) string {
		m := orgLinkRe.FindStringSubmatch(link)
		target, desc := m[1], m[2]

		if strings.Contains(target, ":") {
			// Has a protocol; not a heading reference.
			return link
		}

		found := doc.FindHeading(target)
		if found == nil || root.Contains(found) {
			return link
		}
		name, ok := found.PropertyLocal(post.PropFilename)
		if !ok || name == "" {
			return link
		}

		href := "/" + post.StripDatePrefix(name) + ".html"
		if desc == "" {
			desc = target
		}
		return "[[" + href + "][" + desc + "]]"
	})
}

// injectCategories re-parses the scratch text and records the category
// string as a property on its first headline, the post root.
func injectCategories(text, categories string) string {
	scratch := outline.Parse(text)
	entries := scratch.Entries()
	if len(entries) == 0 {
		return text
	}
	entries[0].SetProperty(post.PropCategories, categories)
	return scratch.Text()
}

// OutputPath computes the destination file: posts go under _posts/,
// pages sit at the blog root.
func OutputPath(blogDir, name string, isPage bool) string {
	if isPage {
		return filepath.Join(blogDir, name+".html")
	}
	return filepath.Join(blogDir, "_posts", name+".html")
}
