// Package main provides the CLI entry point for logreport.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/logreport/pkg/adapters/filesource"
	"github.com/user/logreport/pkg/adapters/logfile"
	"github.com/user/logreport/pkg/adapters/logger"
	"github.com/user/logreport/pkg/adapters/osfilesystem"
	"github.com/user/logreport/pkg/config"
	"github.com/user/logreport/pkg/matcher"
	"github.com/user/logreport/pkg/orchestrator"
	"github.com/user/logreport/pkg/pipeline"
	"github.com/user/logreport/pkg/ports"
	"github.com/user/logreport/pkg/report"
	"github.com/user/logreport/pkg/stages/extract"
	"github.com/user/logreport/pkg/stages/render"
)

var version = "dev"

// Exit statuses.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// usageError marks failures caused by the invocation itself.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status. The report is the
// only thing written to stdout.
func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	err := app.Run(flagsFirst(args, boolFlagNames(app)))
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(stderr, l10n.F("Error: %s", err))

	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, l10n.T("Run 'logreport --help' for usage."))
		return exitUsage
	}
	return exitFatal
}

// flagsFirst moves options that follow file names in front of them, so that
// "app.log --report x" parses like "--report x app.log". A literal "--" ends
// option handling; everything after it is a file name.
func flagsFirst(args []string, boolFlags map[string]bool) []string {
	if len(args) == 0 {
		return args
	}

	flags := []string{args[0]}
	var files []string
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg == "--":
			files = append(files, rest[i+1:]...)
			i = len(rest)
		case len(arg) > 1 && arg[0] == '-':
			flags = append(flags, arg)
			name := strings.TrimLeft(arg, "-")
			if !strings.Contains(name, "=") && !boolFlags[name] && i+1 < len(rest) {
				i++
				flags = append(flags, rest[i])
			}
		default:
			files = append(files, arg)
		}
	}

	if len(files) == 0 {
		return flags
	}
	return append(append(flags, "--"), files...)
}

// boolFlagNames returns every name and alias of the options that take no value.
func boolFlagNames(app *cli.App) map[string]bool {
	names := make(map[string]bool)
	for _, f := range append([]cli.Flag{cli.HelpFlag, cli.VersionFlag}, app.Flags...) {
		if _, ok := f.(*cli.BoolFlag); !ok {
			continue
		}
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	return names
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "logreport",
		Usage:           l10n.T("Summarize request log lines by handler and severity"),
		UsageText:       l10n.T("logreport [options] FILE..."),
		Version:         version,
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			// Report
			&cli.StringFlag{
				Name:     "report",
				Aliases:  []string{"r"},
				Value:    string(report.KindHandlers),
				Usage:    l10n.T("Report type (handlers)"),
				Category: l10n.T("Report"),
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    l10n.T("YAML configuration file"),
				Category: l10n.T("Report"),
			},

			// Sources
			&cli.StringFlag{
				Name:     "source-policy",
				Value:    filesource.LazySkip.String(),
				Usage:    l10n.T("How unreadable files are handled (lazy, eager)"),
				Category: l10n.T("Sources"),
			},
			&cli.IntFlag{
				Name:     "workers",
				Aliases:  []string{"w"},
				Usage:    l10n.T("Number of files read in parallel (default: number of CPUs)"),
				Category: l10n.T("Sources"),
			},

			// Logging
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Value:    "info",
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"Q"},
				Usage:    l10n.T("Suppress all log output on the console"),
				Category: l10n.T("Logging"),
			},
			&cli.StringFlag{
				Name:     "log-file",
				Usage:    l10n.T("Also write log output to a rotating file"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "timing",
				Usage:    l10n.T("Log elapsed time and memory use of the run"),
				Category: l10n.T("Logging"),
			},
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return usageError{err}
		},
		// Exit statuses are decided by run.
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			return action(c, stdout, stderr)
		},
	}
}

func action(c *cli.Context, stdout, stderr io.Writer) error {
	if c.NArg() == 0 {
		return usageError{errors.New(l10n.T("at least one log file is required"))}
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log, closeLog := newLogger(cfg, c.Bool("quiet"), stderr)
	defer closeLog()

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fsys := osfilesystem.New()
	source := filesource.New(fsys, log, cfg.Policy(), c.Args().Slice())

	// Create stages
	extractStage := extract.NewStage(matcher.New(), log, cfg.Workers)
	renderStage := render.NewStage(report.NewTableFormatter(report.WithPadding(cfg.Padding)), log)

	orch := orchestrator.New(extractStage, renderStage, log)

	entry := orch.Entry()
	if cfg.Timing {
		entry = pipeline.Timed("report", entry, log)
	}

	result, err := entry.Execute(ctx, orchestrator.Config{
		Report: cfg.Report,
		Source: source,
	})
	if err != nil {
		if errors.Is(err, filesource.ErrNoUsableSources) || errors.Is(err, report.ErrUnsupportedKind) {
			return usageError{err}
		}
		return err
	}

	return report.WriteLines(stdout, result.Lines)
}

// loadConfig reads the optional configuration file and applies the flags
// that were set explicitly on top of it.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			if errors.Is(err, config.ErrInvalid) {
				return cfg, usageError{err}
			}
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("report") {
		cfg.Report = c.String("report")
	}
	if c.IsSet("source-policy") {
		cfg.SourcePolicy = c.String("source-policy")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.IsSet("timing") {
		cfg.Timing = c.Bool("timing")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, usageError{err}
	}
	return cfg, nil
}

// newLogger builds the console logger, mirrored into the log file when one is
// configured. Quiet mode silences the console only.
func newLogger(cfg config.Config, quiet bool, stderr io.Writer) (ports.Logger, func()) {
	level := ports.ParseLogLevel(cfg.LogLevel)

	var console *logger.ConsoleLogger
	switch {
	case quiet:
		console = logger.NewWriter(level, io.Discard)
	case stderr == io.Writer(os.Stderr):
		console = logger.NewConsole(level)
	default:
		console = logger.NewWriter(level, stderr)
	}

	if cfg.LogFile == "" {
		return console, func() {}
	}
	file := logfile.New(cfg.LogFile, logfile.DefaultOptions())
	return console.WithMirror(file), func() { file.Close() }
}
