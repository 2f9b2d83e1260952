package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stylint/internal/rules"
)

type ruleRow struct {
	ID          string `json:"id"`
	Severity    string `json:"severity"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

func newRulesCmd(_ *cli) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "rules [flags] [path]",
		Short: "List the rules and their effective configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, args)
			if err != nil {
				return err
			}
			active, err := settings.BuildRules()
			if err != nil {
				return err
			}
			enabled := make(map[string]rules.Active, len(active))
			for _, a := range active {
				enabled[a.Rule.ID()] = a
			}

			var rows []ruleRow
			for _, info := range rules.All() {
				row := ruleRow{ID: info.ID, Description: info.Description}
				if a, ok := enabled[info.ID]; ok {
					row.Enabled = true
					row.Severity = a.Severity.String()
				} else if r, err := info.New(settings.RuleOptions()); err == nil {
					row.Severity = r.DefaultSeverity().String()
				}
				rows = append(rows, row)
			}

			switch format {
			case "text":
				return renderRulesText(cmd.OutOrStdout(), rows)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			return fmt.Errorf("unknown format: %s", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json)")
	addConfigFlags(cmd)
	return cmd
}

func renderRulesText(out io.Writer, rows []ruleRow) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tSEVERITY\tENABLED\tDESCRIPTION")
	for _, r := range rows {
		state := "yes"
		if !r.Enabled {
			state = "no"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Severity, state, r.Description)
	}
	return tw.Flush()
}
