package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/obeck/outpost/internal/config"
	"github.com/obeck/outpost/internal/editor"
	"github.com/obeck/outpost/internal/git"
	"github.com/obeck/outpost/internal/output"
)

// checkStatus is the outcome class of a single health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version string         `json:"version"`
	Blog    []checkResult  `json:"blog"`
	Tools   []checkResult  `json:"tools"`
	Summary *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check export setup health and suggest fixes",
		Long: `Check the export setup and suggest fixes.

Runs health checks across two categories:
  BLOG  - configuration, blog checkout layout, version control state
  TOOLS - exporter, spellchecker, and editor availability

Each check reports:
  Pass    - Check passed successfully
  Warning - Non-critical issue found
  Fail    - Critical issue that needs attention

Examples:
  outpost doctor           # Run all health checks
  outpost doctor --quiet   # Only show failures and warnings
  outpost doctor --json    # Output results as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, quiet)
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Only show failures and warnings")
	return cmd
}

// runDoctor executes the doctor command.
func runDoctor(cmd *cobra.Command, quiet bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), resolveTTY(cmd, cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	cfg, err := config.Load()
	if err != nil {
		err = output.NewSystemErrorWithCause("loading config", err)
		printer.Error(err)
		return err
	}

	result := gatherDoctorChecks(cmd, cfg)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"version": result.Version,
			"blog":    result.Blog,
			"tools":   result.Tools,
			"summary": map[string]any{
				"passed":   result.Summary.Passed,
				"warnings": result.Summary.Warnings,
				"failed":   result.Summary.Failed,
			},
		})
	}

	outputDoctorHuman(printer, result, quiet)
	return nil
}

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(cmd *cobra.Command, cfg *config.Config) *doctorResult {
	result := &doctorResult{
		Version: version,
		Blog:    runBlogChecks(cmd, cfg),
		Tools:   runToolChecks(cfg),
		Summary: &doctorSummary{},
	}

	for _, check := range append(append([]checkResult{}, result.Blog...), result.Tools...) {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}
	return result
}

// runBlogChecks verifies the blog checkout side of the setup.
func runBlogChecks(cmd *cobra.Command, cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 4)
	checks = append(checks, checkConfigFile())
	checks = append(checks, checkBlogDir(cfg))
	checks = append(checks, checkPostsDir(cfg))
	checks = append(checks, checkBlogRepo(cmd, cfg))
	return checks
}

// runToolChecks verifies the external tools the pipeline shells out to.
func runToolChecks(cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 3)
	checks = append(checks, checkCommandOnPath("Exporter", cfg.Exporter.Command, "set exporter.command in config.yaml"))
	checks = append(checks, checkCommandOnPath("Spellchecker", cfg.Spell.Command, "set spell.command in config.yaml, or leave it empty to skip spellcheck"))
	checks = append(checks, checkEditor())
	return checks
}

// checkConfigFile reports whether a config file exists.
func checkConfigFile() checkResult {
	path := filepath.Join(config.Dir(), "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return checkResult{Name: "Config", Status: checkPass, Message: path}
	}
	return checkResult{
		Name:    "Config",
		Status:  checkWarn,
		Message: "no config file, using defaults",
		Hint:    "Create " + path + " to set blog_dir and base_url",
	}
}

// checkBlogDir reports whether the blog checkout exists.
func checkBlogDir(cfg *config.Config) checkResult {
	info, err := os.Stat(cfg.BlogDir)
	if err == nil && info.IsDir() {
		return checkResult{Name: "Blog Directory", Status: checkPass, Message: cfg.BlogDir}
	}
	return checkResult{
		Name:    "Blog Directory",
		Status:  checkFail,
		Message: cfg.BlogDir + " not found",
		Hint:    "Set blog_dir in config.yaml or OUTPOST_BLOG_DIR",
	}
}

// checkPostsDir reports whether the _posts directory exists.
func checkPostsDir(cfg *config.Config) checkResult {
	dir := filepath.Join(cfg.BlogDir, "_posts")
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return checkResult{Name: "Posts Directory", Status: checkPass, Message: dir}
	}
	return checkResult{
		Name:    "Posts Directory",
		Status:  checkWarn,
		Message: dir + " not found",
		Hint:    "It is created on first post export",
	}
}

// checkBlogRepo reports the version-control state of the checkout.
func checkBlogRepo(cmd *cobra.Command, cfg *config.Config) checkResult {
	ctx := cmd.Context()
	if !git.IsRepo(ctx, cfg.BlogDir) {
		return checkResult{
			Name:    "Blog Repository",
			Status:  checkWarn,
			Message: "blog directory is not a git repository",
		}
	}
	if git.HasUncommittedChanges(ctx, cfg.BlogDir) {
		return checkResult{
			Name:    "Blog Repository",
			Status:  checkWarn,
			Message: "uncommitted changes in the blog checkout",
			Hint:    "Run 'outpost snippets' for ready-made commit messages",
		}
	}
	msg := "clean working tree"
	if branch, err := git.CurrentBranch(ctx, cfg.BlogDir); err == nil {
		msg = "clean working tree on " + branch
	}
	return checkResult{Name: "Blog Repository", Status: checkPass, Message: msg}
}

// checkCommandOnPath reports whether a configured command's binary is
// available.
func checkCommandOnPath(name string, argv []string, hint string) checkResult {
	if len(argv) == 0 {
		return checkResult{Name: name, Status: checkWarn, Message: "not configured", Hint: hint}
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return checkResult{
			Name:    name,
			Status:  checkWarn,
			Message: argv[0] + " not found in PATH",
			Hint:    hint,
		}
	}
	return checkResult{Name: name, Status: checkPass, Message: argv[0]}
}

// checkEditor reports whether a review editor can be found.
func checkEditor() checkResult {
	ed, err := editor.Preferred()
	if err != nil {
		return checkResult{
			Name:    "Editor",
			Status:  checkWarn,
			Message: err.Error(),
			Hint:    "Exports still work with --no-open",
		}
	}
	return checkResult{Name: "Editor", Status: checkPass, Message: ed}
}

// outputDoctorHuman outputs the doctor result in human-readable format.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("outpost doctor v%s\n", result.Version)

	printCheckSection(printer, "BLOG", result.Blog, quiet)
	printCheckSection(printer, "TOOLS", result.Tools, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

// printCheckSection prints a section of checks.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	if quiet {
		hasNonPass := false
		for _, check := range checks {
			if check.Status != checkPass {
				hasNonPass = true
				break
			}
		}
		if !hasNonPass {
			return
		}
	}

	printer.Println()
	printer.Println(title)

	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}
		printer.Print("  %s  %s %s\n", statusIcon(check.Status), check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("     -> %s\n", check.Hint)
		}
	}
}

// statusIcon returns the icon for a check status.
func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}
