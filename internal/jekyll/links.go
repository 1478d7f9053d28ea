package jekyll

import (
	"regexp"
	"strings"
)

var localFileRe = regexp.MustCompile(`(href="|src=")file://`)

// Canonicalizer rewrites absolute links back into the site to
// root-relative form. Both passes are plain textual substitution and
// are idempotent: canonical output passes through unchanged.
type Canonicalizer struct {
	// BlogDir is the expanded blog checkout root.
	BlogDir string
	// BaseURL is the deployed site's URL.
	BaseURL string
}

// Canonicalize runs the two link passes over the exported HTML:
// first the file:// scheme is dropped from href/src values, then any
// remaining base-URL or blog-directory prefix collapses to "/".
func (c *Canonicalizer) Canonicalize(html string) string {
	html = localFileRe.ReplaceAllString(html, "$1")

	for _, prefix := range c.prefixes() {
		html = strings.ReplaceAll(html, `href="`+prefix, `href="/`)
		html = strings.ReplaceAll(html, `src="`+prefix, `src="/`)
	}
	return html
}

// prefixes lists the absolute forms to strip, normalized without a
// trailing slash so the rewritten link keeps exactly one leading "/".
func (c *Canonicalizer) prefixes() []string {
	var out []string
	for _, p := range []string{c.BaseURL, c.BlogDir} {
		p = strings.TrimSuffix(p, "/")
		if p != "" && p != "/" {
			out = append(out, p+"/")
		}
	}
	return out
}
