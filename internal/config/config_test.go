package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.BlogDir == "" || strings.HasPrefix(cfg.BlogDir, "~") {
		t.Errorf("BlogDir = %q, want expanded default", cfg.BlogDir)
	}
	if len(cfg.Exporter.Command) == 0 {
		t.Error("Exporter.Command should have a default")
	}
	if len(cfg.Spell.Command) == 0 {
		t.Error("Spell.Command should have a default")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `blog_dir: /srv/blog
base_url: https://example.org/
exporter:
  command: ["org-export", "{src}"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.BlogDir != "/srv/blog" {
		t.Errorf("BlogDir = %q, want /srv/blog", cfg.BlogDir)
	}
	if cfg.BaseURL != "https://example.org/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if len(cfg.Exporter.Command) != 2 || cfg.Exporter.Command[0] != "org-export" {
		t.Errorf("Exporter.Command = %v", cfg.Exporter.Command)
	}
	// Unset sections still get defaults
	if len(cfg.Spell.Command) == 0 {
		t.Error("Spell.Command should default when unset")
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("OUTPOST_BLOG_DIR", "/tmp/override-blog")
	t.Setenv("OUTPOST_BASE_URL", "https://override.example/")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("blog_dir: /srv/blog\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.BlogDir != "/tmp/override-blog" {
		t.Errorf("BlogDir = %q, env override should win", cfg.BlogDir)
	}
	if cfg.BaseURL != "https://override.example/" {
		t.Errorf("BaseURL = %q, env override should win", cfg.BaseURL)
	}
}

func TestLoadFromBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("blog_dir: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail on malformed YAML")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/blog", filepath.Join(home, "blog")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDirRespectsOverride(t *testing.T) {
	t.Setenv("OUTPOST_CONFIG_HOME", "/tmp/outpost-test-config")
	if got := Dir(); got != "/tmp/outpost-test-config" {
		t.Errorf("Dir() = %q, want override", got)
	}
}

func TestDirRespectsXDG(t *testing.T) {
	t.Setenv("OUTPOST_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := Dir(); got != filepath.Join("/tmp/xdg", "outpost") {
		t.Errorf("Dir() = %q, want XDG path", got)
	}
}
