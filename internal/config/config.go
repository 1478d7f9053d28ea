package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the user-set constants for an export run.
// All fields are read-only for the duration of an invocation.
type Config struct {
	// BlogDir is the root of the static-site checkout. Posts land in
	// BlogDir/_posts/, pages at the top level.
	BlogDir string `yaml:"blog_dir"`

	// BaseURL is the deployed site's canonical URL. Links back into the
	// site are rewritten to root-relative form by stripping this prefix.
	BaseURL string `yaml:"base_url"`

	// Exporter configures the external HTML exporter command.
	Exporter ExporterConfig `yaml:"exporter"`

	// Spell configures the optional spellcheck pass. Empty command
	// disables the pass.
	Spell SpellConfig `yaml:"spell"`
}

// ExporterConfig describes how to invoke the external exporter.
// The command's argv may contain the placeholders {src} and {out}:
// {src} is replaced with the path of the assembled source file, {out}
// with the path the exporter should write its HTML document to. When
// {out} does not appear, the exporter's stdout is captured instead.
type ExporterConfig struct {
	Command []string `yaml:"command"`
}

// SpellConfig describes the spellchecker command. The subtree text is
// fed to it on stdin; it is expected to print one misspelled word per
// line (the `aspell list` / `hunspell -l` convention).
type SpellConfig struct {
	Command []string `yaml:"command"`
}

// Default configuration values.
const (
	DefaultBlogDir = "~/Git-Projects/blog/"
	DefaultBaseURL = "http://endlessparentheses.com/"
)

// setDefaults fills in zero-valued fields.
func (c *Config) setDefaults() {
	if c.BlogDir == "" {
		c.BlogDir = DefaultBlogDir
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if len(c.Exporter.Command) == 0 {
		// Batch emacs with the ox-jekyll backend, the same exporter the
		// interactive workflow uses.
		c.Exporter.Command = []string{
			"emacs", "--batch", "--quick", "{src}",
			"--load", "ox-jekyll",
			"--eval", `(org-export-to-file 'jekyll "{out}")`,
		}
	}
	if len(c.Spell.Command) == 0 {
		c.Spell.Command = []string{"aspell", "list"}
	}
}

// Load reads config.yaml from the outpost config directory, applies
// environment overrides (OUTPOST_BLOG_DIR, OUTPOST_BASE_URL), fills in
// defaults, and expands a leading ~ in the blog directory.
// A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(Dir(), "config.yaml"))
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults apply
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if v := os.Getenv("OUTPOST_BLOG_DIR"); v != "" {
		cfg.BlogDir = v
	}
	if v := os.Getenv("OUTPOST_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}

	cfg.setDefaults()
	cfg.BlogDir = ExpandHome(cfg.BlogDir)
	return &cfg, nil
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
