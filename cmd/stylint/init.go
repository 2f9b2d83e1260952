package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stylint/internal/config"
)

func newInitCmd(_ *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default stylint.toml",
		Long: `Init writes stylint.toml with every option at its default value into [dir]
(the current directory when omitted). The directory is created if needed; an
existing config file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}

			// Ensure directory exists
			if st, err := os.Stat(target); err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					return err
				}
				if err = os.MkdirAll(target, 0o755); err != nil {
					return fmt.Errorf("failed to create directory %q: %w", target, err)
				}
			} else if !st.IsDir() {
				return fmt.Errorf("%q is not a directory", target)
			}

			path, err := config.WriteDefault(target)
			if err != nil {
				return err
			}
			rel := path
			if wd, err := os.Getwd(); err == nil {
				if r, err2 := filepath.Rel(wd, path); err2 == nil {
					rel = r
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", rel)
			return nil
		},
	}
}
