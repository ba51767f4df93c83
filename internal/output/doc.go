// Package output provides structured output handling for the review-cli.
//
// Every command writes through a Printer so that human and JSON output stay
// consistent, and every failure is an *ExitError carrying the process exit code.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Success(map[string]any{"status": "ok"})
//	printer.Error(err)
//	printer.Notice("non-interactive session, using %q", "copilot")
//
// Styles are lipgloss-based and collapse to plain text when output is piped
// or --color never is given.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: Invalid flag, cancelled selection, write failure
//	output.ExitSystemError // 2: git failed while building a report
//
// # Error Types
//
//	output.NewUserError("invalid agent \"foo\"")           // usage
//	output.NewCancelledError()                             // errors.Is(err, output.ErrCancelled)
//	output.NewMaterializationError("write failed", cause)  // errors.Is(err, output.ErrMaterialization)
//	output.NewSystemErrorWithCause("git diff failed", err)
package output
