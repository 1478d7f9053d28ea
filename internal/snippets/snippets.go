// Package snippets keeps a small reusable-text history of export
// announcements, ready to paste into commit messages.
package snippets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/obeck/outpost/internal/config"
	"github.com/obeck/outpost/internal/output"
)

const fileName = "snippets"

// History is an append-only snippet file under the config directory.
type History struct {
	path string
}

// NewHistory opens the default snippet history.
func NewHistory() *History {
	return &History{path: filepath.Join(config.Dir(), fileName)}
}

// NewHistoryAt opens a snippet history at an explicit path.
func NewHistoryAt(path string) *History {
	return &History{path: path}
}

// Record pushes the two commit-message snippets for an exported title:
// "UPDATE: <title>" and "POST: <title>". The update form is listed
// first, matching the more common case of re-exporting.
func (h *History) Record(title string) error {
	return h.append("UPDATE: "+title, "POST: "+title)
}

func (h *History) append(entries ...string) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return output.NewSystemErrorWithCause("creating snippet dir", err)
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return output.NewSystemErrorWithCause("opening snippet history", err)
	}
	defer f.Close()

	for _, e := range entries {
		if _, err := fmt.Fprintln(f, e); err != nil {
			return output.NewSystemErrorWithCause("writing snippet history", err)
		}
	}
	return nil
}

// List returns the recorded snippets, most recent first.
func (h *History) List() ([]string, error) {
	data, err := os.ReadFile(h.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, output.NewSystemErrorWithCause("reading snippet history", err)
	}

	var out []string
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] != "" {
			out = append(out, lines[i])
		}
	}
	return out, nil
}
