package controller

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	m "github.com/mouse-blink/halint/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI by writing plain text to the cobra command's
// streams. Diagnostics go to stdout, progress to stderr.
type SimpleUI struct {
	cmd    *cobra.Command
	cfg    StartConfig
	files  []m.FileReport
	closed bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, cfg: newStartConfig(nil)}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	s.cfg = newStartConfig(options)
	s.files = nil
	s.closed = false

	return nil
}

// Close writes buffered junit or json documents.
func (s *SimpleUI) Close() {
	if s.closed {
		return
	}

	s.closed = true

	switch s.cfg.format {
	case FormatJUnit:
		s.printf("%s", junitDocument(s.files))
	case FormatJSON:
		s.printf("%s", jsonDocument(s.files))
	}
}

// DisplayFile prints the diagnostics of one file, or buffers them for a
// document format.
func (s *SimpleUI) DisplayFile(report m.FileReport) {
	if s.cfg.format.Buffered() {
		s.files = append(s.files, report)
		return
	}

	s.writeFile(report)

	if !s.cfg.quiet && !report.Failed() {
		s.eprintf("Done processing %s\n", report.Source)
	}
}

func (s *SimpleUI) writeFile(report m.FileReport) {
	if report.Failed() {
		s.eprintf("%s: %s\n", report.Source, report.Err)
	}

	for _, d := range report.Diagnostics {
		s.printf("%s\n", formatDiagnostic(s.cfg.format, d))
	}
}

// DisplaySummary prints the error counts of a run. Document formats keep
// stdout for the document, so the counts go to stderr.
func (s *SimpleUI) DisplaySummary(summary m.Summary) {
	if s.cfg.quiet && summary.Total == 0 && summary.Failed == 0 {
		return
	}

	out := s.cmd.OutOrStdout()
	if s.cfg.format.Buffered() {
		out = s.cmd.ErrOrStderr()
	}

	_, _ = io.WriteString(out, renderSummary(summary, s.cfg.counting))
}

// DisplayRules prints the rule catalog as a table.
func (s *SimpleUI) DisplayRules(rules []m.RuleInfo) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Category", "Severity", "Reported by", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, r := range rules {
		table.Append([]string{r.Category, string(r.Severity), reportedBy(r), r.Description})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(rules)), "", "", ""})
	table.Render()
	s.printf("%s", tableBuffer.String())
}

// DisplayReport prints a saved report in the configured format.
func (s *SimpleUI) DisplayReport(report m.Report) error {
	if !s.cfg.format.Buffered() {
		s.eprintf("Report %s (%s)\n", report.RunID, report.Created.Format(time.RFC3339))
	}

	for _, f := range report.Files {
		if s.cfg.format.Buffered() {
			s.files = append(s.files, f)
			continue
		}

		s.writeFile(f)
	}

	s.DisplaySummary(report.Summarize())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) eprintf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}

func reportedBy(r m.RuleInfo) string {
	if r.Structural {
		return "scanner"
	}

	return "rule"
}

// formatDiagnostic renders d in one of the line formats.
func formatDiagnostic(format Format, d m.Diagnostic) string {
	switch format {
	case FormatVS7:
		return fmt.Sprintf("%s(%d):  %s  [%s] [%d]", d.File, d.Line, d.Message, d.Rule, d.Confidence)
	case FormatEclipse:
		return fmt.Sprintf("%s:%d: %s: %s  [%s] [%d]", d.File, d.Line, d.Severity, d.Message, d.Rule, d.Confidence)
	default:
		return fmt.Sprintf("%s:%d:  %s  [%s] [%d]", d.File, d.Line, d.Message, d.Rule, d.Confidence)
	}
}

func renderSummary(summary m.Summary, counting Counting) string {
	var sb strings.Builder

	if counting == CountingTotal {
		fmt.Fprintf(&sb, "Total errors found: %d\n", summary.Total)
	} else {
		counts := summary.ByCategory
		if counting == CountingTopLevel {
			counts = topLevelCounts(counts)
		}

		table := tablewriter.NewWriter(&sb)
		table.SetHeader([]string{"Category", "Errors"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

		for _, category := range sortedKeys(counts) {
			table.Append([]string{category, fmt.Sprintf("%d", counts[category])})
		}

		table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.Total)})
		table.Render()
	}

	if summary.Failed > 0 {
		fmt.Fprintf(&sb, "Files failed: %d of %d\n", summary.Failed, summary.Files)
	}

	return sb.String()
}

type junitSuite struct {
	XMLName  xml.Name    `xml:"testsuite"`
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Errors   int         `xml:"errors,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name    string `xml:"name,attr"`
	Failure string `xml:"failure,omitempty"`
	Error   string `xml:"error,omitempty"`
}

// junitDocument has one testcase per file; diagnostics become the failure
// text, unreadable files an error.
func junitDocument(files []m.FileReport) string {
	suite := junitSuite{Name: "halint", Tests: len(files)}

	for _, f := range files {
		c := junitCase{Name: string(f.Source)}

		if f.Failed() {
			suite.Errors++
			c.Error = f.Err
		}

		if len(f.Diagnostics) > 0 {
			suite.Failures++

			lines := make([]string, 0, len(f.Diagnostics))
			for _, d := range f.Diagnostics {
				lines = append(lines, fmt.Sprintf("%d: %s [%s] [%d]", d.Line, d.Message, d.Rule, d.Confidence))
			}

			c.Failure = strings.Join(lines, "\n")
		}

		suite.Cases = append(suite.Cases, c)
	}

	data, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return fmt.Sprintf("<!-- %v -->\n", err)
	}

	return xml.Header + string(data) + "\n"
}

func jsonDocument(files []m.FileReport) string {
	if files == nil {
		files = []m.FileReport{}
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return fmt.Sprintf("{\"error\": %q}\n", err.Error())
	}

	return string(data) + "\n"
}
