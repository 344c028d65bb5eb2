package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/fastcopy/cmd/fastcopy/commands"
	"github.com/walteh/fastcopy/cmd/fastcopy/opts"
	"github.com/walteh/fastcopy/pkg/config"
	"github.com/walteh/fastcopy/pkg/engine"
	"github.com/walteh/fastcopy/pkg/log"
	"github.com/walteh/fastcopy/pkg/progress"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	recursive   bool
	parallel    int
	force       bool
	interactive bool
	check       bool
	quiet       bool
	verbosity   int
	excludes    []string
	configFile  string
)

// errEntriesFailed signals a nonzero exit after the summary already told the
// story; main exits without printing it again.
var errEntriesFailed = errors.New("some entries failed to copy")

// errDestination rejects a missing or non-directory destination before
// anything is scheduled.
var errDestination = errors.New("Destination path does not exist or is not a directory")

// NewRootCmd builds the fastcopy root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fastcopy [flags] SOURCE... DEST",
		Short: "Copy files and directories concurrently",
		Long: `fastcopy copies files and whole directory trees into a destination
directory, several entries at a time. Large files stream through a chunked
copy loop with periodic data syncs, and a progress bar tracks the batch
against a prescanned total.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbosity)
		},
		RunE: runCopy,
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		commands.NewEstimateCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// addRootFlags adds flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "copy directories recursively")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", engine.DefaultParallel, "max concurrent top-level copies")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing destination entries without asking")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask before overwriting existing destination entries")
	cmd.Flags().BoolVarP(&check, "check", "c", false, "reserved: verify entries after copying (currently does nothing)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the progress bar and per-entry output")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "glob pattern of paths to skip, repeatable")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "raise log verbosity, repeatable")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a defaults file (.fastcopy.yaml or .fastcopy.hcl)")
}

// setupLogging configures zerolog based on flags
func setupLogging(verbosity int) {
	level := zerolog.WarnLevel
	switch {
	case verbosity >= 3:
		level = zerolog.TraceLevel
	case verbosity == 2:
		level = zerolog.DebugLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
	zerolog.DefaultContextLogger = &logger
}

// newRootOpts resolves flag values against the defaults file. Explicit flags
// win over file values, file values over built-in defaults.
func newRootOpts(ctx context.Context, cmd *cobra.Command) (*opts.RootOpts, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(ctx, configFile)
	} else {
		cfg, err = config.Discover(ctx)
	}
	if err != nil {
		return nil, errors.Errorf("loading defaults file: %w", err)
	}

	o := &opts.RootOpts{
		Config:      cfg,
		UI:          log.New(os.Stderr, zerolog.GlobalLevel()),
		Parallel:    parallel,
		Recursive:   recursive,
		Force:       force,
		Interactive: interactive,
		Check:       check,
		Quiet:       quiet,
		Exclude:     append(append([]string{}, cfg.Exclude...), excludes...),
	}

	flags := cmd.Flags()
	if !flags.Changed("parallel") && cfg.Parallel > 0 {
		o.Parallel = cfg.Parallel
	}
	if !flags.Changed("force") && cfg.Force {
		o.Force = true
	}
	if !flags.Changed("quiet") && cfg.Quiet {
		o.Quiet = true
	}

	return o, nil
}

// runCopy is the root command: copy every SOURCE into DEST
func runCopy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ctx = zerolog.Ctx(ctx).With().Str("command", "copy").Logger().WithContext(ctx)

	o, err := newRootOpts(ctx, cmd)
	if err != nil {
		return err
	}

	sources := args[:len(args)-1]
	destDir := args[len(args)-1]

	// The destination must already exist as a directory
	info, err := os.Stat(destDir)
	if err != nil || !info.IsDir() {
		return errDestination
	}

	if o.Check {
		zerolog.Ctx(ctx).Debug().Msg("check flag is reserved, no verification performed")
	}

	sources = confirmOverwrites(ctx, o, sources, destDir)

	// Prescan so the bar starts with a meaningful total
	_, totalBytes := engine.EstimateAll(ctx, sources)

	var bar *progress.Bar
	if !o.Quiet && len(sources) > 0 && isatty.IsTerminal(os.Stderr.Fd()) {
		bar, err = progress.StartBar(os.Stderr, int64(totalBytes))
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("progress bar unavailable")
		}
	}

	fileOpts := engine.FileOptions{
		ChunkSize: o.Config.ChunkSizeBytes,
		SyncEvery: o.Config.SyncEveryBytes,
	}
	if bar != nil {
		fileOpts.Sinks = append(fileOpts.Sinks, bar)
	}

	reporter := &consoleReporter{ui: o.UI, bar: bar, lines: !o.Quiet && bar == nil}
	runner := engine.NewRunner(engine.Options{
		Parallel:  o.Parallel,
		Recursive: o.Recursive,
		File:      fileOpts,
		Exclude:   o.Exclude,
		Reporter:  reporter,
	})

	failed := runner.Run(ctx, sources, destDir)

	if bar != nil {
		bar.Finish()
	}
	if !o.Quiet {
		o.UI.Summary()
		if failed {
			o.UI.Error("Copy finished with failures")
		} else {
			o.UI.Success("Copy complete!")
		}
	}

	if failed {
		return errEntriesFailed
	}
	return nil
}

// confirmOverwrites asks before clobbering existing destination entries.
// Declined entries drop out of the batch as skips, not failures. Prompting
// happens up front, before anything is scheduled, so the progress bar never
// fights the prompt for the terminal.
func confirmOverwrites(ctx context.Context, o *opts.RootOpts, sources []string, destDir string) []string {
	if !o.Interactive || o.Force {
		return sources
	}

	kept := make([]string, 0, len(sources))
	for _, source := range sources {
		target := filepath.Join(destDir, filepath.Base(engine.NormalizePath(source)))
		if _, err := os.Lstat(target); err != nil {
			kept = append(kept, source)
			continue
		}
		ok, err := pterm.DefaultInteractiveConfirm.Show(fmt.Sprintf("Overwrite %s?", target))
		if err != nil || !ok {
			o.UI.LogEntryOperation(ctx, log.EntryOperation{
				Source:      source,
				Destination: target,
				Skipped:     true,
				Reason:      "overwrite declined",
			})
			continue
		}
		kept = append(kept, source)
	}
	return kept
}

// 🖥️ consoleReporter bridges runner callbacks to the progress bar and the
// per-entry console lines. While the bar owns the terminal, entry outcomes
// are recorded for the summary instead of printed.
type consoleReporter struct {
	ui    *log.Logger
	bar   *progress.Bar
	lines bool
}

func (r *consoleReporter) EntryStarted(ctx context.Context, source string) {
	if r.bar != nil {
		r.bar.SetCurrentFile(source)
	}
}

func (r *consoleReporter) EntryDone(ctx context.Context, result engine.EntryResult) {
	op := log.EntryOperation{
		Source:      result.Source,
		Destination: result.Destination,
		Bytes:       result.Bytes,
	}
	if result.Err != nil {
		op.Failed = true
		op.Reason = userMessage(result.Err)
	}
	if r.lines {
		r.ui.LogEntryOperation(ctx, op)
	} else {
		r.ui.RecordEntry(op)
	}
}

// userMessage translates engine errors into the messages the tool shows
func userMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrSourceNotFound):
		return "Source path does not exist"
	case errors.Is(err, engine.ErrSourceIsDirectory):
		return "Source path is a directory, but recursive flag is not set"
	case errors.Is(err, engine.ErrDestinationInsideSource):
		return "cannot copy a directory into itself"
	default:
		return err.Error()
	}
}

// TODO(dr.methodical): 🧪 Add tests for the interactive overwrite prompt
// TODO(dr.methodical): 🔧 Wire --check to a real verification pass
