package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stylint/internal/driver"
	"stylint/internal/report"
)

func newTokenizeCmd(c *cli) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.R|-",
		Short: "Print the token stream of a file",
		Long: `Tokenize prints every token of a file, layout and comments included. Scan errors go to stderr.
With "-" the source is read from stdin as is.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
			if err != nil {
				return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
			}

			display := args[0]
			var result *driver.TokenizeResult
			if display == "-" {
				display = "<stdin>"
				result, err = driver.TokenizeReader(display, cmd.InOrStdin(), maxDiagnostics)
			} else {
				result, err = driver.Tokenize(display, maxDiagnostics)
			}
			if err != nil {
				return fmt.Errorf("tokenization failed: %w", err)
			}

			// Выводим ошибки сканирования в stderr, если есть
			errOut := cmd.ErrOrStderr()
			for _, v := range result.Bag.Items() {
				fmt.Fprintln(errOut, report.FormatViolation(display, v))
			}
			if result.Bag.Truncated() {
				fmt.Fprintf(errOut, "further scan errors suppressed (--max-diagnostics=%d)\n", maxDiagnostics)
			}
			if result.Bag.HasErrors() {
				c.exit = report.ExitFatal
			}

			out := cmd.OutOrStdout()
			switch format {
			case "pretty":
				return report.FormatTokensPretty(out, result.Tokens)
			case "json":
				return report.FormatTokensJSON(out, result.Tokens)
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
