// Package exporter invokes the external HTML exporter. The exporter is
// a trusted black box: it takes the assembled source and produces a
// front-matter-delimited HTML document.
package exporter

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/obeck/outpost/internal/output"
)

// Exporter turns assembled source text into front-matter-delimited
// HTML.
type Exporter interface {
	Export(ctx context.Context, source string) (string, error)
}

// Command runs a configured argv as the exporter. The argv may carry
// two placeholders: {src} expands to a temp file holding the source,
// {out} to a temp path the command must write its HTML to. Without
// {out} the command's stdout is captured instead.
type Command struct {
	argv []string
}

// NewCommand builds a Command exporter from an argv.
func NewCommand(argv []string) *Command {
	return &Command{argv: argv}
}

// Export writes source to a scratch file, runs the command, and
// returns the produced HTML. Exporter failures map to the external
// tool exit class.
func (c *Command) Export(ctx context.Context, source string) (string, error) {
	if len(c.argv) == 0 {
		return "", output.NewExporterError("no exporter command configured")
	}

	dir, err := os.MkdirTemp("", "outpost-export-*")
	if err != nil {
		return "", output.NewSystemErrorWithCause("creating exporter scratch dir", err)
	}
	defer os.RemoveAll(dir)

	srcPath := filepath.Join(dir, "source.org")
	outPath := filepath.Join(dir, "out.html")
	if err := os.WriteFile(srcPath, []byte(source), 0600); err != nil {
		return "", output.NewSystemErrorWithCause("writing exporter source", err)
	}

	argv := make([]string, len(c.argv))
	usesOutFile := false
	for i, arg := range c.argv {
		arg = strings.ReplaceAll(arg, "{src}", srcPath)
		if strings.Contains(arg, "{out}") {
			arg = strings.ReplaceAll(arg, "{out}", outPath)
			usesOutFile = true
		}
		argv[i] = arg
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := "exporter failed: " + firstLine(stderr.String())
		return "", output.NewExporterErrorWithCause(msg, err)
	}

	if usesOutFile {
		data, err := os.ReadFile(outPath)
		if err != nil {
			return "", output.NewExporterErrorWithCause("exporter produced no output file", err)
		}
		return string(data), nil
	}
	return stdout.String(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "see command output"
	}
	return s
}
