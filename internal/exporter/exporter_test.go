package exporter

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/obeck/outpost/internal/output"
)

func requireSh(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test exporter uses sh")
	}
}

func TestExportStdoutCapture(t *testing.T) {
	requireSh(t)
	e := NewCommand([]string{"sh", "-c", "cat {src}"})

	got, err := e.Export(context.Background(), "---\nlayout: post\n---\nbody\n")
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if !strings.Contains(got, "layout: post") {
		t.Errorf("Export() = %q, want source echoed back", got)
	}
}

func TestExportOutFile(t *testing.T) {
	requireSh(t)
	e := NewCommand([]string{"sh", "-c", "tr a-z A-Z < {src} > {out}"})

	got, err := e.Export(context.Background(), "body text")
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if got != "BODY TEXT" {
		t.Errorf("Export() = %q, want uppercased output file", got)
	}
}

func TestExportCommandFailure(t *testing.T) {
	requireSh(t)
	e := NewCommand([]string{"sh", "-c", "echo broken >&2; exit 9"})

	_, err := e.Export(context.Background(), "src")
	if err == nil {
		t.Fatal("Export() should fail when the command fails")
	}
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != output.ExitExporterError {
		t.Errorf("error = %v, want exporter exit class", err)
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error message should carry stderr: %v", err)
	}
}

func TestExportMissingOutFile(t *testing.T) {
	requireSh(t)
	e := NewCommand([]string{"sh", "-c", "true # ignores {out}"})

	_, err := e.Export(context.Background(), "src")
	if err == nil {
		t.Fatal("Export() should fail when {out} is never written")
	}
	if output.GetExitCode(err) != output.ExitExporterError {
		t.Errorf("exit code = %d, want exporter class", output.GetExitCode(err))
	}
}

func TestExportNoCommand(t *testing.T) {
	e := NewCommand(nil)
	if _, err := e.Export(context.Background(), "src"); err == nil {
		t.Fatal("Export() should fail without a command")
	}
}
