// Package spell runs a best-effort spellcheck pass over subtree text
// before export. Every failure mode is non-fatal: a missing checker or
// a broken pipe just skips the pass.
package spell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Checker feeds text to an external spellchecker following the
// `aspell list` convention: text on stdin, one misspelled word per
// line on stdout.
type Checker struct {
	command []string
}

// NewChecker builds a Checker for the given argv. An empty argv
// disables checking.
func NewChecker(command []string) *Checker {
	return &Checker{command: command}
}

// Check returns the misspelled words found in text, deduplicated in
// order of first appearance. Any execution failure returns nil.
func (c *Checker) Check(ctx context.Context, text string) []string {
	if len(c.command) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		// Best-effort only.
		return nil
	}

	seen := make(map[string]bool)
	var words []string
	for _, w := range strings.Fields(out.String()) {
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}
