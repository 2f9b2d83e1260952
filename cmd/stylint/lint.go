package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stylint/internal/driver"
	"stylint/internal/observ"
	"stylint/internal/report"
	"stylint/internal/version"
	"stylint/internal/watch"
)

type lintOptions struct {
	format           string
	jobs             int
	warningsAsErrors bool
	noWarnings       bool
	cache            bool
	cacheDir         string
	clearCache       bool
	watch            bool
	debounce         time.Duration
	ui               string
}

func newLintCmd(c *cli) *cobra.Command {
	var opts lintOptions
	cmd := &cobra.Command{
		Use:   "lint [flags] [path...]",
		Short: "Check files and directories against the style rules",
		Long: `Lint tokenizes every file, runs the active rules and reports violations.
Directories are walked recursively. With no paths the current directory is
linted. Exit status: 0 clean, 1 errors found, 2 a file could not be checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLint(cmd, args, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", report.FormatText, fmt.Sprintf("output format %v", report.Formats))
	f.IntVarP(&opts.jobs, "jobs", "j", 0, "max parallel files (0=auto)")
	f.BoolVar(&opts.warningsAsErrors, "warnings-as-errors", false, "report warnings as errors")
	f.BoolVar(&opts.noWarnings, "no-warnings", false, "drop warning-severity violations")
	f.BoolVar(&opts.cache, "cache", false, "reuse results for unchanged files")
	f.StringVar(&opts.cacheDir, "cache-dir", "", "result cache directory (default $XDG_CACHE_HOME/stylint)")
	f.BoolVar(&opts.clearCache, "clear-cache", false, "drop cached results before the run")
	f.BoolVarP(&opts.watch, "watch", "w", false, "re-lint files when they change")
	f.DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "quiet period before re-linting in watch mode")
	f.StringVar(&opts.ui, "ui", "auto", "progress UI (auto|on|off)")
	addConfigFlags(cmd)
	return cmd
}

func (c *cli) runLint(cmd *cobra.Command, args []string, opts lintOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	logger := c.log()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	mode, err := readUIMode(opts.ui)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	settings, err := loadSettings(cmd, paths)
	if err != nil {
		return err
	}
	logger.Debug("settings", zap.String("config", settings.Source()), zap.String("fingerprint", settings.Fingerprint()))

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		defer func() { fmt.Fprint(errOut, timer.Summary()) }()
	}

	stop := timer.Track(observ.PhaseDiscover)
	files, err := driver.Discover(paths, settings)
	stop()
	if errors.Is(err, driver.ErrNoInput) {
		fmt.Fprintf(errOut, "stylint: %v\n", err)
		c.exit = report.ExitFatal
		return nil
	}
	if err != nil {
		return err
	}

	cache, err := openCache(opts, logger)
	if err != nil {
		return err
	}
	linter, err := driver.NewLinter(settings, driver.WithCache(cache), driver.WithLogger(logger))
	if err != nil {
		return err
	}

	color, err := useColor(cmd, out)
	if err != nil {
		return err
	}
	renderer := func() (report.Renderer, error) {
		r, err := report.NewRenderer(report.Options{
			Format: opts.format,
			Pretty: report.PrettyOpts{Color: color},
			Sarif: report.SarifRunMeta{
				ToolName:    "stylint",
				ToolVersion: version.Version,
			},
		})
		if err != nil {
			return nil, err
		}
		return report.WithRules(r, ruleMeta(linter)), nil
	}
	// проверяем формат до начала работы
	if _, err := renderer(); err != nil {
		return err
	}
	policy := report.Policy{WarningsAsErrors: opts.warningsAsErrors, NoWarnings: opts.noWarnings}
	newSink := func(w io.Writer) *report.Sink {
		r, _ := renderer()
		return report.NewSink(w, r, policy, maxDiagnostics)
	}

	stop = timer.Track(observ.PhaseLint)
	sink, err := c.lintBatch(ctx, out, linter, files, opts, mode, newSink)
	stop()
	c.exit = exitFor(sink, err)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if opts.watch && ctx.Err() == nil {
		return c.watchLoop(ctx, cmd, linter, paths, opts, quiet, newSink)
	}
	return nil
}

func (c *cli) lintBatch(ctx context.Context, out io.Writer, linter *driver.Linter, files []string, opts lintOptions, mode uiMode, newSink func(io.Writer) *report.Sink) (*report.Sink, error) {
	if !opts.watch && shouldUseTUI(mode, out, len(files)) {
		return runLintWithUI(ctx, out, linter, files, opts.jobs, newSink)
	}
	sink := newSink(out)
	if err := sink.Begin(); err != nil {
		return sink, err
	}
	err := linter.LintFiles(ctx, files, driver.BatchOptions{Jobs: opts.jobs, Emit: sink.Emit})
	if closeErr := sink.Close(); err == nil {
		err = closeErr
	}
	return sink, err
}

// exitFor: отмена и ошибки записи делают прогон фатальным.
func exitFor(sink *report.Sink, err error) int {
	if err != nil {
		sink.MarkFatal()
	}
	return sink.ExitCode()
}

func (c *cli) watchLoop(ctx context.Context, cmd *cobra.Command, linter *driver.Linter, paths []string, opts lintOptions, quiet bool, newSink func(io.Writer) *report.Sink) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	relint := func(ctx context.Context, changed []string) error {
		if !quiet {
			fmt.Fprintf(errOut, "-- re-linting %d file(s)\n", len(changed))
		}
		sink, err := c.lintBatch(ctx, out, linter, changed, opts, uiModeOff, newSink)
		c.exit = exitFor(sink, err)
		return err
	}
	w, err := watch.New(paths, linter.Settings(), relint, watch.WithLogger(c.log()), watch.WithDebounce(opts.debounce))
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintln(errOut, "-- watching for changes (Ctrl+C to stop)")
	}
	return w.Run(ctx)
}

// openCache: с --cache диск плюс память, в режиме --watch хотя бы память.
func openCache(opts lintOptions, logger *zap.Logger) (driver.Cache, error) {
	var tiers driver.Tiered
	if opts.watch {
		mem, err := driver.NewMemoryCache(4096)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, mem)
	}
	if opts.cache || opts.clearCache {
		dir := opts.cacheDir
		if dir == "" {
			var err error
			if dir, err = driver.DefaultCacheDir("stylint"); err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
		}
		disk, err := driver.OpenDiskCache(dir, logger)
		if err != nil {
			return nil, err
		}
		if opts.clearCache {
			if err := disk.DropAll(); err != nil {
				return nil, fmt.Errorf("clear cache: %w", err)
			}
		}
		if opts.cache {
			tiers = append(tiers, disk)
		}
	}
	if len(tiers) == 0 {
		return nil, nil
	}
	return tiers, nil
}

func ruleMeta(linter *driver.Linter) []report.RuleMeta {
	active := linter.Rules()
	meta := make([]report.RuleMeta, 0, len(active))
	for _, a := range active {
		meta = append(meta, report.RuleMeta{
			ID:           a.Rule.ID(),
			Description:  a.Rule.Description(),
			DefaultLevel: a.Severity.String(),
		})
	}
	return meta
}
