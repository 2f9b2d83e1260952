package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stylint/internal/prof"
)

// setupProfiling inspects persistent profiling flags and starts the requested
// profilers. The returned session is nil-safe to Stop.
func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cpuProfile == "" && memProfile == "" && tracePath == "" {
		return nil, nil
	}
	return prof.Start(prof.Options{
		CPUProfile:   cpuProfile,
		MemProfile:   memProfile,
		RuntimeTrace: tracePath,
	})
}
