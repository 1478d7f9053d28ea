// Package main provides the entry point for the outpost CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/obeck/outpost/internal/assemble"
	"github.com/obeck/outpost/internal/config"
	"github.com/obeck/outpost/internal/editor"
	"github.com/obeck/outpost/internal/exporter"
	"github.com/obeck/outpost/internal/jekyll"
	"github.com/obeck/outpost/internal/outline"
	"github.com/obeck/outpost/internal/output"
	"github.com/obeck/outpost/internal/post"
	"github.com/obeck/outpost/internal/snippets"
	"github.com/obeck/outpost/internal/spell"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	return newExportCmdInternal(nil, nil)
}

// newExportCmdInternal creates the export command with optional
// injection points. If exp is nil the configured exporter command
// runs; if history is nil the default snippet history is used.
func newExportCmdInternal(exp exporter.Exporter, history *snippets.History) *cobra.Command {
	var lineFlag int
	var noOpenFlag bool
	var blogDirFlag string
	var baseURLFlag string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the subtree at a line as a blog post",
		Long: `Export one subtree of an outline document as a blog post.

The post root is the nearest entry at or above --line that carries a
task-state keyword. Its properties supply the front matter; the
external exporter renders the HTML.

Examples:
  outpost export notes.org --line 42
  outpost export notes.org --line 42 --no-open
  outpost export notes.org --blog-dir ~/src/blog --base-url https://example.org/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, exportOptions{
				file:     args[0],
				line:     lineFlag,
				noOpen:   noOpenFlag,
				blogDir:  blogDirFlag,
				baseURL:  baseURLFlag,
				exporter: exp,
				history:  history,
			})
		},
	}

	cmd.Flags().IntVar(&lineFlag, "line", 1, "Cursor line in the document (1-based)")
	cmd.Flags().BoolVar(&noOpenFlag, "no-open", false, "Do not open the written file afterward")
	cmd.Flags().StringVar(&blogDirFlag, "blog-dir", "", "Override the configured blog directory")
	cmd.Flags().StringVar(&baseURLFlag, "base-url", "", "Override the configured base URL")

	return cmd
}

type exportOptions struct {
	file     string
	line     int
	noOpen   bool
	blogDir  string
	baseURL  string
	exporter exporter.Exporter
	history  *snippets.History
}

// runExport drives the whole pipeline: locate, resolve, assemble,
// export, patch, canonicalize, write.
func runExport(cmd *cobra.Command, opts exportOptions) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), resolveTTY(cmd, cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		err = output.NewSystemErrorWithCause("loading config", err)
		printer.Error(err)
		return err
	}
	if opts.blogDir != "" {
		cfg.BlogDir = config.ExpandHome(opts.blogDir)
	}
	if opts.baseURL != "" {
		cfg.BaseURL = opts.baseURL
	}

	doc, err := outline.LoadFile(opts.file)
	if err != nil {
		err = output.NewSystemErrorWithCause("loading document", err)
		printer.Error(err)
		return err
	}

	root, err := locatePostRoot(doc, opts.line)
	if err != nil {
		printer.Error(err)
		return err
	}

	meta, err := post.Resolve(root, time.Now())
	if err != nil {
		printer.Error(err)
		return err
	}

	if words := spell.NewChecker(cfg.Spell.Command).Check(ctx, root.SubtreeText()); len(words) > 0 {
		printer.Warn("possible misspellings: %v", words)
	}

	asm := &assemble.Assembler{BlogDir: cfg.BlogDir}
	source := asm.Build(doc, root, meta)

	exp := opts.exporter
	if exp == nil {
		exp = exporter.NewCommand(cfg.Exporter.Command)
	}
	html, err := exp.Export(ctx, source)
	if err != nil {
		printer.Error(err)
		return err
	}

	patched, err := jekyll.PatchFrontMatter(html, jekyll.PatchSpec{
		Series:    meta.Series,
		MetaTitle: meta.MetaTitle,
		Title:     meta.Title,
		IsPage:    meta.IsPage,
		Time:      meta.Time,
	})
	if err != nil {
		printer.Error(err)
		return err
	}
	if _, err := jekyll.FrontMatter(patched); err != nil {
		printer.Error(err)
		return err
	}

	canon := &jekyll.Canonicalizer{BlogDir: cfg.BlogDir, BaseURL: cfg.BaseURL}
	final := canon.Canonicalize(patched)

	outPath := assemble.OutputPath(cfg.BlogDir, meta.Filename, meta.IsPage)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		err = output.NewSystemErrorWithCause("creating output directory", err)
		printer.Error(err)
		return err
	}
	if err := os.WriteFile(outPath, []byte(final), 0644); err != nil {
		err = output.NewSystemErrorWithCause("writing output file", err)
		printer.Error(err)
		return err
	}

	// Persist the scheduled/filename write-backs on the source document.
	if err := doc.Save(); err != nil {
		err = output.NewSystemErrorWithCause("saving source document", err)
		printer.Error(err)
		return err
	}

	hist := opts.history
	if hist == nil {
		hist = snippets.NewHistory()
	}
	if err := hist.Record(meta.Title); err != nil {
		printer.Warn("snippet history not updated: %v", err)
	}

	if !opts.noOpen && !printer.IsJSON() {
		if err := editor.Open(outPath); err != nil {
			printer.Warn("could not open %s: %v", outPath, err)
		}
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"path":   outPath,
			"title":  meta.Title,
			"layout": meta.Layout,
			"name":   meta.Filename,
			"line":   root.Line(),
			"date":   meta.Time.Format("2006-01-02 15:04:05"),
		})
	}
	printer.KeyValue("Exported", meta.Title)
	printer.KeyValue("Root", fmt.Sprintf("%s line %d", opts.file, root.Line()))
	printer.KeyValue("Layout", meta.Layout)
	printer.KeyValue("Path", outPath)
	return nil
}

// locatePostRoot maps a cursor line to the nearest enclosing
// task-bearing entry.
func locatePostRoot(doc *outline.Document, line int) (*outline.Entry, error) {
	entry := doc.EntryAt(line)
	if entry == nil {
		return nil, output.NewUserError("no outline entry at that line")
	}
	root := entry.SelfOrAncestorWithTodo()
	if root == nil {
		return nil, output.NewUserError("not inside a schedulable entry: no enclosing entry carries a task state")
	}
	return root, nil
}
