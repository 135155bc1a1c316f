package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/halint/internal/model"
)

var (
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	ruleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// TUI implements UI for a terminal: colored diagnostics while linting and
// an interactive Bubble Tea browser for saved reports. Any format other than
// emacs is meant for tools and is handed to a SimpleUI.
type TUI struct {
	output io.Writer
	input  io.Reader
	cmd    *cobra.Command
	cfg    StartConfig
	plain  *SimpleUI
}

// NewTUI creates a new TUI writing to output. Summaries of document formats
// go to stderr.
func NewTUI(output io.Writer) *TUI {
	cmd := &cobra.Command{}
	cmd.SetOut(output)
	cmd.SetErr(os.Stderr)

	return &TUI{output: output, cmd: cmd, cfg: newStartConfig(nil)}
}

// Start initializes the UI.
func (t *TUI) Start(options ...StartOption) error {
	t.cfg = newStartConfig(options)
	t.plain = nil

	if t.cfg.format != FormatEmacs {
		t.plain = NewSimpleUI(t.cmd)
		return t.plain.Start(options...)
	}

	return nil
}

// Close finalizes the UI.
func (t *TUI) Close() {
	if t.plain != nil {
		t.plain.Close()
	}
}

// DisplayFile prints the diagnostics of one file.
func (t *TUI) DisplayFile(report m.FileReport) {
	if t.plain != nil {
		t.plain.DisplayFile(report)
		return
	}

	if report.Failed() {
		t.printf("%s %s\n", errorStyle.Render("✗"), locationStyle.Render(fmt.Sprintf("%s: %s", report.Source, report.Err)))
	}

	for _, d := range report.Diagnostics {
		t.printf("%s\n", renderDiagnostic(d))
	}
}

// DisplaySummary prints the error counts of a run.
func (t *TUI) DisplaySummary(summary m.Summary) {
	if t.plain != nil {
		t.plain.DisplaySummary(summary)
		return
	}

	if summary.Total == 0 && summary.Failed == 0 {
		if !t.cfg.quiet {
			t.printf("%s %d files clean\n", okStyle.Render("✓"), summary.Files)
		}

		return
	}

	if t.cfg.counting != CountingTotal {
		counts := summary.ByCategory
		if t.cfg.counting == CountingTopLevel {
			counts = topLevelCounts(counts)
		}

		for _, category := range sortedKeys(counts) {
			t.printf("%6d  %s\n", counts[category], ruleStyle.Render(category))
		}
	}

	t.printf("%s\n", errorStyle.Render(fmt.Sprintf("Total errors found: %d", summary.Total)))

	if summary.Failed > 0 {
		t.printf("%s\n", errorStyle.Render(fmt.Sprintf("Files failed: %d of %d", summary.Failed, summary.Files)))
	}
}

// DisplayRules prints the rule catalog.
func (t *TUI) DisplayRules(rules []m.RuleInfo) {
	if t.plain != nil {
		t.plain.DisplayRules(rules)
		return
	}

	t.printf("%s\n\n", titleStyle.Render("halint rules"))

	for _, r := range rules {
		t.printf("  %s  %s\n      %s\n",
			severityStyle(r.Severity).Render(fmt.Sprintf("%-7s", r.Severity)),
			locationStyle.Render(r.Category),
			r.Description,
		)
	}
}

// DisplayReport opens the report browser and blocks until the user quits.
func (t *TUI) DisplayReport(report m.Report) error {
	if t.plain != nil {
		return t.plain.DisplayReport(report)
	}

	return t.run(newReportModel(report))
}

func (t *TUI) run(model tea.Model) error {
	opts := []tea.ProgramOption{tea.WithOutput(t.output)}
	if t.input != nil {
		opts = append(opts, tea.WithInput(t.input))
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("report browser: %w", err)
	}

	return nil
}

func (t *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.output, format, args...)
}

func severityStyle(s m.Severity) lipgloss.Style {
	if s == m.SeverityError {
		return errorStyle
	}

	return warningStyle
}

func renderDiagnostic(d m.Diagnostic) string {
	var sb strings.Builder

	sb.WriteString(locationStyle.Render(fmt.Sprintf("%s:%d:%d:", d.File, d.Line, d.Column)))
	sb.WriteString(" ")
	sb.WriteString(severityStyle(d.Severity).Render(string(d.Severity)))
	sb.WriteString(" ")
	sb.WriteString(d.Message)
	sb.WriteString(" ")
	sb.WriteString(ruleStyle.Render(fmt.Sprintf("[%s] [%d]", d.Rule, d.Confidence)))

	return sb.String()
}
