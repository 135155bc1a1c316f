package domain

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/halint/internal/adapter"
	"github.com/mouse-blink/halint/internal/controller"
	"github.com/mouse-blink/halint/internal/domain/rules"
	"github.com/mouse-blink/halint/internal/log"
	m "github.com/mouse-blink/halint/internal/model"
)

// ErrViolations is returned by Lint when any diagnostic survived filtering
// or any file failed.
var ErrViolations = errors.New("lint errors found")

// LintArgs holds the inputs of one lint run.
type LintArgs struct {
	Paths   []m.Path
	Exclude []string
	// Extensions override the adapter's file extensions when set.
	Extensions []string
	Threads    int
	// Reports is the directory the run is saved to. Empty skips saving.
	Reports m.Path
	Options Options
	Display []controller.StartOption
}

// RulesArgs holds the inputs of ListRules.
type RulesArgs struct {
	Display []controller.StartOption
}

// ViewArgs holds the inputs of View.
type ViewArgs struct {
	Reports m.Path
	Display []controller.StartOption
}

// Workflow runs the halint commands.
type Workflow interface {
	Lint(ctx context.Context, args LintArgs) error
	ListRules(args RulesArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	fsAdapter   adapter.SourceFSAdapter
	reportStore adapter.ReportStore
	ui          controller.UI
	now         func() time.Time
	runID       func() string
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(fsAdapter adapter.SourceFSAdapter, reportStore adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		fsAdapter:   fsAdapter,
		reportStore: reportStore,
		ui:          ui,
		now:         time.Now,
		runID:       uuid.NewString,
	}
}

// Lint checks every file under args.Paths. Files are spread over
// args.Threads workers; the context is only consulted between files.
// Results are displayed and saved ordered by path, including a partial run
// cut short by ctx.
func (w *workflow) Lint(ctx context.Context, args LintArgs) error {
	linter, err := NewLinter(args.Options)
	if err != nil {
		return fmt.Errorf("configure linter: %w", err)
	}

	files, err := w.fsAdapter.Get(args.Paths, adapter.FileFilter{
		Exclude:    args.Exclude,
		Extensions: args.Extensions,
	})
	if err != nil {
		return err
	}

	threads := max(args.Threads, 1)
	log.Logf(1, "linting %d files with %d workers", len(files), threads)

	if err := w.ui.Start(args.Display...); err != nil {
		return err
	}
	defer w.ui.Close()

	results, runErr := w.lintFiles(ctx, linter, files, threads)

	report := m.Report{
		RunID:   w.runID(),
		Created: w.now().UTC(),
		Files:   results,
	}

	for _, fr := range report.Files {
		w.ui.DisplayFile(fr)
	}

	summary := report.Summarize()
	w.ui.DisplaySummary(summary)

	if args.Reports != "" {
		path, err := w.reportStore.SaveReport(args.Reports, report)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}

		log.Logf(1, "report %s saved to %s", report.RunID, path)
	}

	if runErr != nil {
		return runErr
	}

	if summary.Total > 0 || summary.Failed > 0 {
		return ErrViolations
	}

	return nil
}

func (w *workflow) lintFiles(ctx context.Context, linter Linter, files []m.File, threads int) ([]m.FileReport, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	results := make([]*m.FileReport, len(files))

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fr := w.lintFile(linter, file)
			results[i] = &fr

			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	done := make([]m.FileReport, 0, len(results))
	for _, fr := range results {
		if fr != nil {
			done = append(done, *fr)
		}
	}

	slices.SortFunc(done, func(a, b m.FileReport) int {
		return strings.Compare(string(a.Source), string(b.Source))
	})

	return done, err
}

// lintFile never fails: read and encoding problems end up in FileReport.Err.
func (w *workflow) lintFile(linter Linter, file m.File) m.FileReport {
	fr := m.FileReport{Source: file.Path, Hash: file.Hash}

	content, err := w.fsAdapter.ReadFile(file.Path)
	if err != nil {
		fr.Err = fmt.Errorf("%w: %w", ErrUnreadable, err).Error()
		log.Logf(1, "%s: %s", file.Path, fr.Err)

		return fr
	}

	diags, err := linter.Lint(file.Path, content)
	if err != nil {
		fr.Err = err.Error()
		log.Logf(1, "%s: %s", file.Path, fr.Err)

		return fr
	}

	fr.Diagnostics = diags
	log.Logf(2, "%s: %d diagnostics", file.Path, len(diags))

	return fr
}

// ListRules displays the catalog of categories.
func (w *workflow) ListRules(args RulesArgs) error {
	if err := w.ui.Start(args.Display...); err != nil {
		return err
	}
	defer w.ui.Close()

	w.ui.DisplayRules(rules.Catalog())

	return nil
}

// View displays the report saved in args.Reports.
func (w *workflow) View(args ViewArgs) error {
	report, err := w.reportStore.LoadReport(args.Reports)
	if err != nil {
		return err
	}

	if err := w.ui.Start(args.Display...); err != nil {
		return err
	}
	defer w.ui.Close()

	return w.ui.DisplayReport(report)
}
