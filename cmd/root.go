// Package cmd provides the root command and CLI setup for halint.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/halint/internal/adapter"
	"github.com/mouse-blink/halint/internal/config"
	"github.com/mouse-blink/halint/internal/controller"
	"github.com/mouse-blink/halint/internal/domain"
	"github.com/mouse-blink/halint/internal/log"
	m "github.com/mouse-blink/halint/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui)
}

// Persistent flags, shared by every subcommand.
var configFlag string
var reportsOutputDirFlag string
var logVerbosityFlag int

// Lint flags. They override the matching config file entries when set.
var (
	formatFlag     string
	countingFlag   string
	filterFlags    []string
	markerFlags    []string
	verboseFlag    int
	parallelFlag   int
	excludeFlags   []string
	extensionsFlag []string
	quietFlag      bool
)

const rootLongDescription = `halint checks C and C++ sources for misplaced copy and constructor
disabling macros: DISALLOW_COPY_AND_ASSIGN and DISALLOW_IMPLICIT_CONSTRUCTORS
must be the last thing in the class they belong to. Unbalanced braces and
unterminated classes, namespaces, comments and literals are reported too.

Settings are read from .halint.yaml in the working directory (or --config)
and flags override them.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - a.cc b.h       lint the named files whatever their extension

The exit status is 1 when any diagnostic was reported or any file could not
be linted.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "halint [paths...]",
		Short:         "C++ lint for class-closing macros",
		Long:          rootLongDescription,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.SetVerbosity(logVerbosityFlag)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// Failures past this point are not usage errors.
			cmd.SilenceUsage = true

			return workflow.Lint(cmd.Context(), domain.LintArgs{
				Paths:      parsePaths(args),
				Exclude:    cfg.Exclude,
				Extensions: cfg.Extensions,
				Threads:    cfg.Parallel,
				Reports:    m.Path(cfg.Reports),
				Options:    cfg.Options(),
				Display:    cfg.Display(),
			})
		},
	}

	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "config file (default "+config.DefaultFile+" if present)")
	cmd.PersistentFlags().StringVarP(&reportsOutputDirFlag, "output", "o", "", "reports directory (default from config, .halint-reports)")
	cmd.PersistentFlags().IntVar(&logVerbosityFlag, "vv", 0, "log verbosity")

	cmd.Flags().StringVar(&formatFlag, "format", "", "diagnostic format: emacs, eclipse, vs7, junit or json")
	cmd.Flags().StringVar(&countingFlag, "counting", "", "summary breakdown: total, toplevel or detailed")
	cmd.Flags().StringArrayVar(&filterFlags, "filter", nil, "category filters such as -build,+build/class (can be repeated)")
	cmd.Flags().StringArrayVar(&markerFlags, "marker", nil, "macro that must close a class (can be repeated, replaces the defaults)")
	cmd.Flags().IntVarP(&verboseFlag, "verbose", "v", 1, "drop diagnostics with a confidence below this (0-5)")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 1, "number of files linted in parallel")
	cmd.Flags().StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().StringSliceVar(&extensionsFlag, "extensions", nil, "file extensions picked up from directories, comma separated")
	cmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "no progress lines and no summary for a clean run")

	return cmd
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return config.Config{}, err
	}

	if reportsOutputDirFlag != "" {
		cfg.Reports = reportsOutputDirFlag
	}

	flags := cmd.Flags()
	if flags.Lookup("format") == nil {
		// Subcommands only carry the persistent flags.
		return cfg, nil
	}

	if flags.Changed("format") {
		cfg.Format = formatFlag
	}

	if flags.Changed("counting") {
		cfg.Counting = countingFlag
	}

	if flags.Changed("filter") {
		cfg.Filters = append(cfg.Filters, filterFlags...)
	}

	if flags.Changed("marker") {
		cfg.Markers = markerFlags
	}

	if flags.Changed("verbose") {
		cfg.Verbose = verboseFlag
	}

	if flags.Changed("parallel") {
		cfg.Parallel = parallelFlag
	}

	if flags.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}

	if flags.Changed("extensions") {
		cfg.Extensions = extensionsFlag
	}

	if flags.Changed("quiet") {
		cfg.Quiet = quietFlag
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, rootCmd)

	stop()
	os.Exit(code)
}

// run executes cmd and maps the outcome to an exit status.
func run(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if !errors.Is(err, domain.ErrViolations) {
		log.Errorf("%v", err)
	}

	return 1
}
