package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stylint/internal/config"
)

// addConfigFlags registers the flags that feed config.Overrides.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("config", "", "config file (default: search stylint.toml upwards from the first path)")
	f.Int("max-line-length", 0, "override max_line_length")
	f.String("line-length-mode", "", "override line_length_mode (chars|display)")
	f.Bool("brace-same-line", true, "override brace_same_line")
	f.StringSlice("enable", nil, "enable rules by id")
	f.StringSlice("disable", nil, "disable rules by id")
}

// loadSettings finds and compiles the configuration. Only flags that were set
// explicitly override the file.
func loadSettings(cmd *cobra.Command, paths []string) (*config.Settings, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		start := "."
		if len(paths) > 0 {
			start = paths[0]
		}
		found, ok, err := config.Find(start)
		if err != nil {
			return nil, err
		}
		if ok {
			path = found
		}
	}

	var file *config.File
	if path != "" {
		file, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	var ov config.Overrides
	if flags.Changed("max-line-length") {
		n, err := flags.GetInt("max-line-length")
		if err != nil {
			return nil, err
		}
		ov.MaxLineLength = &n
	}
	if flags.Changed("line-length-mode") {
		mode, err := flags.GetString("line-length-mode")
		if err != nil {
			return nil, err
		}
		ov.LineLengthMode = &mode
	}
	if flags.Changed("brace-same-line") {
		same, err := flags.GetBool("brace-same-line")
		if err != nil {
			return nil, err
		}
		ov.BraceSameLine = &same
	}
	if ov.Enable, err = flags.GetStringSlice("enable"); err != nil {
		return nil, err
	}
	if ov.Disable, err = flags.GetStringSlice("disable"); err != nil {
		return nil, err
	}

	s, err := config.Compile(file, ov)
	if err != nil {
		if path != "" {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		return nil, err
	}
	return s, nil
}
