package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/obeck/outpost/internal/output"
	"github.com/obeck/outpost/internal/snippets"
)

// fakeExporter returns canned HTML and records the source it was
// handed.
type fakeExporter struct {
	out    string
	err    error
	source string
}

func (f *fakeExporter) Export(_ context.Context, source string) (string, error) {
	f.source = source
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

const fakeExported = `---
layout: post
title: Hello World
date: 2021-01-01 00:00:00
---
<p>See <a href="http://example.org/other">other</a>.</p>
`

// setupExportEnv points config at empty temp dirs and returns the blog
// dir.
func setupExportEnv(t *testing.T) string {
	t.Helper()
	blogDir := t.TempDir()
	t.Setenv("OUTPOST_CONFIG_HOME", t.TempDir())
	t.Setenv("OUTPOST_BLOG_DIR", blogDir)
	t.Setenv("OUTPOST_BASE_URL", "http://example.org/")
	return blogDir
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.org")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runExportCmd(t *testing.T, fake *fakeExporter, args ...string) (string, error) {
	t.Helper()
	hist := snippets.NewHistoryAt(filepath.Join(t.TempDir(), "snippets"))
	cmd := newExportCmdInternal(fake, hist)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append(args, "--no-open"))
	err := cmd.Execute()
	return buf.String(), err
}

func TestExportWritesPost(t *testing.T) {
	blogDir := setupExportEnv(t)
	doc := writeDoc(t, `#+OPTIONS: toc:nil
* TODO Hello World
  SCHEDULED: <2021-03-04 Thu>
  Body with a [[file:`+blogDir+`/images/x.png]] link.
`)
	fake := &fakeExporter{out: fakeExported}

	out, err := runExportCmd(t, fake, doc, "--line", "2")
	if err != nil {
		t.Fatalf("export failed: %v\noutput: %s", err, out)
	}

	// The result names the post root's headline line.
	if !strings.Contains(out, "line 2") {
		t.Errorf("output missing post root line:\n%s", out)
	}

	// Scratch source carries the shared header and normalized links.
	if !strings.Contains(fake.source, "#+OPTIONS: toc:nil") {
		t.Error("exporter source missing shared header")
	}
	if !strings.Contains(fake.source, "[file:/images/x.png]") {
		t.Errorf("image link not normalized in source:\n%s", fake.source)
	}

	outPath := filepath.Join(blogDir, "_posts", "2021-03-04-hello-world.html")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.Contains(string(data), "date: 2021-03-04 00:00:00") {
		t.Errorf("date not patched:\n%s", data)
	}
	if !strings.Contains(string(data), `href="/other"`) {
		t.Errorf("base URL not canonicalized:\n%s", data)
	}

	// The synthesized filename is written back to the source document.
	srcData, err := os.ReadFile(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(srcData), ":filename: 2021-03-04-hello-world") {
		t.Errorf("source document missing filename write-back:\n%s", srcData)
	}
}

func TestExportPageWithoutFilenameFails(t *testing.T) {
	blogDir := setupExportEnv(t)
	doc := writeDoc(t, `* TODO About me
  :PROPERTIES:
  :EXPORT_JEKYLL_LAYOUT: page
  :END:
`)
	fake := &fakeExporter{out: fakeExported}

	_, err := runExportCmd(t, fake, doc, "--line", "1")
	if err == nil {
		t.Fatal("page export without filename should fail")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want user error", output.GetExitCode(err))
	}
	if fake.source != "" {
		t.Error("exporter should not run after a metadata failure")
	}

	// No file may be written on a user error.
	entries, readErr := os.ReadDir(blogDir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("blog dir not empty after failed export: %v", entries)
	}
}

func TestExportPageWithFilename(t *testing.T) {
	blogDir := setupExportEnv(t)
	doc := writeDoc(t, `* TODO About me
  SCHEDULED: <2021-03-04 Thu>
  :PROPERTIES:
  :EXPORT_JEKYLL_LAYOUT: page
  :filename: about
  :END:
`)
	fake := &fakeExporter{out: fakeExported}

	if out, err := runExportCmd(t, fake, doc, "--line", "1"); err != nil {
		t.Fatalf("export failed: %v\noutput: %s", err, out)
	}

	data, err := os.ReadFile(filepath.Join(blogDir, "about.html"))
	if err != nil {
		t.Fatalf("page should land at the blog root: %v", err)
	}
	if strings.Contains(string(data), "date:") {
		t.Errorf("page front matter should not carry a date:\n%s", data)
	}
}

func TestExportOutsideTaskEntryFails(t *testing.T) {
	setupExportEnv(t)
	doc := writeDoc(t, "* Just a heading\n  body\n")

	_, err := runExportCmd(t, &fakeExporter{out: fakeExported}, doc, "--line", "2")
	if err == nil {
		t.Fatal("export outside a task-bearing entry should fail")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want user error", output.GetExitCode(err))
	}
}

func TestExportExporterFailurePropagates(t *testing.T) {
	blogDir := setupExportEnv(t)
	doc := writeDoc(t, "* TODO Post\n  SCHEDULED: <2021-03-04 Thu>\n")
	fake := &fakeExporter{err: output.NewExporterError("exporter blew up")}

	_, err := runExportCmd(t, fake, doc, "--line", "1")
	if err == nil {
		t.Fatal("exporter failure should propagate")
	}
	if output.GetExitCode(err) != output.ExitExporterError {
		t.Errorf("exit code = %d, want exporter class", output.GetExitCode(err))
	}

	if entries, _ := os.ReadDir(blogDir); len(entries) != 0 {
		t.Error("no output may be written when the exporter fails")
	}
}

func TestExportMalformedExporterOutput(t *testing.T) {
	setupExportEnv(t)
	doc := writeDoc(t, "* TODO Post\n  SCHEDULED: <2021-03-04 Thu>\n")
	fake := &fakeExporter{out: "<p>no front matter at all</p>"}

	_, err := runExportCmd(t, fake, doc, "--line", "1")
	if err == nil {
		t.Fatal("missing front matter markers should fail")
	}
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != output.ExitExporterError {
		t.Errorf("error = %v, want exporter class", err)
	}
}
