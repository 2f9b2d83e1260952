package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"stylint/internal/prof"
	"stylint/internal/report"
	"stylint/internal/version"
)

// cli holds the state shared by all commands of one invocation.
type cli struct {
	logger  *zap.Logger
	prof    *prof.Session
	exit    int // код выхода, выставленный командой
	verbose bool
	stderr  io.Writer
}

// newRootCmd builds the command tree. Each call returns an independent tree.
func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "stylint",
		Short: "Style linter for the lab's R scripts",
		Long: `stylint checks R-flavoured analysis scripts against the lab's naming and
formatting conventions: identifier case, operator spacing, brace placement,
line length and trailing whitespace.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			c.finish()
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of violations to show (0 = unlimited)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging on stderr")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file")
	pf.String("runtime-trace", "", "write runtime trace to file")

	root.AddCommand(newLintCmd(c))
	root.AddCommand(newTokenizeCmd(c))
	root.AddCommand(newRulesCmd(c))
	root.AddCommand(newInitCmd(c))
	root.AddCommand(newVersionCmd(c))
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if c.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger

	session, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	c.prof = session
	return nil
}

// finish is idempotent: cobra skips PersistentPostRun when RunE fails, so main
// calls it again.
func (c *cli) finish() {
	if c.prof != nil {
		if err := c.prof.Stop(); err != nil {
			fmt.Fprintf(c.stderr, "failed to stop profiling: %v\n", err)
		}
		c.prof = nil
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func (c *cli) log() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stderr: stderr}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	c.finish()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(stderr, "stylint: %v\n", err)
		}
		return report.ExitFatal
	}
	return c.exit
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the writer the output goes to.
func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(w), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}
