package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/obeck/outpost/internal/snippets"
)

func TestSnippetsCommand(t *testing.T) {
	hist := snippets.NewHistoryAt(filepath.Join(t.TempDir(), "snippets"))
	if err := hist.Record("Hello World"); err != nil {
		t.Fatal(err)
	}

	cmd := newSnippetsCmdInternal(hist)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("snippets failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "POST: Hello World") || !strings.Contains(out, "UPDATE: Hello World") {
		t.Errorf("snippets output missing entries:\n%s", out)
	}
	// Most recent first: POST before UPDATE.
	if strings.Index(out, "POST: Hello World") > strings.Index(out, "UPDATE: Hello World") {
		t.Errorf("snippets not listed most recent first:\n%s", out)
	}
}

func TestSnippetsEmpty(t *testing.T) {
	cmd := newSnippetsCmdInternal(snippets.NewHistoryAt(filepath.Join(t.TempDir(), "none")))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("snippets failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No snippets recorded yet.") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
