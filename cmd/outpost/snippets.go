package main

import (
	"github.com/spf13/cobra"

	"github.com/obeck/outpost/internal/output"
	"github.com/obeck/outpost/internal/snippets"
)

// newSnippetsCmd creates the snippets command.
func newSnippetsCmd() *cobra.Command {
	return newSnippetsCmdInternal(nil)
}

// newSnippetsCmdInternal creates the snippets command with optional
// history injection.
func newSnippetsCmdInternal(history *snippets.History) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippets",
		Short: "List commit-message snippets from past exports",
		Long: `List the commit-message snippets recorded by past exports,
most recent first. Each export records an "UPDATE: <title>" and a
"POST: <title>" line to paste into the blog checkout's commit message.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnippets(cmd, history)
		},
	}
	return cmd
}

func runSnippets(cmd *cobra.Command, history *snippets.History) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), resolveTTY(cmd, cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	if history == nil {
		history = snippets.NewHistory()
	}
	entries, err := history.List()
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"snippets": entries})
	}
	if len(entries) == 0 {
		printer.Println("No snippets recorded yet.")
		return nil
	}
	for _, e := range entries {
		printer.Println(e)
	}
	return nil
}
