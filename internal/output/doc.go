// Package output provides structured output handling for the outpost CLI.
//
// This package handles both human-readable and JSON output formats so that
// every command works well for humans and for scripts driving the tool.
//
// # Printer
//
// The Printer is the primary interface for command output. It automatically
// handles format switching based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	// For success output
//	printer.Success(map[string]any{"message": "Exported", "path": outPath})
//
//	// For error output
//	printer.Error(err)
//
//	// For raw output
//	printer.Println("Some text")
//	printer.Print("Formatted: %s\n", value)
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"message": "...", "path": "...", ...}
//	// Error: {"error": "message", "code": N}
//
// # Exit Codes
//
// The package defines standard exit codes and error types:
//
//	output.ExitSuccess       // 0: Success
//	output.ExitUserError     // 1: User error (bad args, no post root, page without filename)
//	output.ExitSystemError   // 2: System error (I/O error, config unreadable)
//	output.ExitExporterError // 3: External exporter failure
//
// # Error Types
//
// Use the error constructors to create properly-coded errors:
//
//	output.NewUserError("point is not inside a schedulable entry")
//	output.NewSystemError("writing post file failed")
//	output.NewExporterError("exporter produced no front matter")
//
// These errors carry exit codes that are used for both JSON error output
// and process exit codes.
package output
