package controller

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/halint/internal/model"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	return cmd, &out, &errOut
}

func badFile() m.FileReport {
	return m.FileReport{
		Source: "src/bad.cc",
		Diagnostics: []m.Diagnostic{
			{
				File: "src/bad.cc", Line: 4, Column: 3,
				Rule:     "readability/constructors",
				Message:  "DISALLOW_COPY_AND_ASSIGN should be the last thing in the class",
				Severity: m.SeverityWarning, Confidence: 3,
			},
			{
				File: "src/bad.cc", Line: 9, Column: 1,
				Rule:     "readability/braces",
				Message:  "Unmatched closing brace",
				Severity: m.SeverityError, Confidence: 5,
			},
		},
	}
}

func TestFormatDiagnostic(t *testing.T) {
	d := badFile().Diagnostics[0]

	tests := []struct {
		format Format
		want   string
	}{
		{FormatEmacs, "src/bad.cc:4:  DISALLOW_COPY_AND_ASSIGN should be the last thing in the class  [readability/constructors] [3]"},
		{FormatVS7, "src/bad.cc(4):  DISALLOW_COPY_AND_ASSIGN should be the last thing in the class  [readability/constructors] [3]"},
		{FormatEclipse, "src/bad.cc:4: warning: DISALLOW_COPY_AND_ASSIGN should be the last thing in the class  [readability/constructors] [3]"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, formatDiagnostic(tt.format, d))
		})
	}
}

func TestSimpleUI_DisplayFile_Emacs(t *testing.T) {
	cmd, out, errOut := newTestCmd()
	ui := NewSimpleUI(cmd)
	require.NoError(t, ui.Start())

	ui.DisplayFile(badFile())
	ui.DisplayFile(m.FileReport{Source: "src/blob.cc", Err: "unsupported encoding: NUL byte"})
	ui.Close()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "src/bad.cc:4:  "))
	assert.True(t, strings.HasPrefix(lines[1], "src/bad.cc:9:  Unmatched closing brace"))

	assert.Contains(t, errOut.String(), "Done processing src/bad.cc")
	assert.Contains(t, errOut.String(), "src/blob.cc: unsupported encoding: NUL byte")
	assert.NotContains(t, errOut.String(), "Done processing src/blob.cc")
}

func TestSimpleUI_Quiet(t *testing.T) {
	cmd, out, errOut := newTestCmd()
	ui := NewSimpleUI(cmd)
	require.NoError(t, ui.Start(WithQuiet(true)))

	ui.DisplayFile(m.FileReport{Source: "ok.cc"})
	ui.DisplaySummary(m.Summary{Files: 1, ByCategory: map[string]int{}})
	ui.Close()

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	summary := m.Report{Files: []m.FileReport{badFile(), {Source: "x.cc", Err: "boom"}}}.Summarize()

	t.Run("total", func(t *testing.T) {
		cmd, out, _ := newTestCmd()
		ui := NewSimpleUI(cmd)
		require.NoError(t, ui.Start())

		ui.DisplaySummary(summary)

		assert.Equal(t, "Total errors found: 2\nFiles failed: 1 of 2\n", out.String())
	})

	t.Run("detailed", func(t *testing.T) {
		cmd, out, _ := newTestCmd()
		ui := NewSimpleUI(cmd)
		require.NoError(t, ui.Start(WithCounting(CountingDetailed)))

		ui.DisplaySummary(summary)

		for _, want := range []string{"CATEGORY", "readability/braces", "readability/constructors", "TOTAL", "2"} {
			assert.Contains(t, out.String(), want)
		}
	})

	t.Run("toplevel", func(t *testing.T) {
		cmd, out, _ := newTestCmd()
		ui := NewSimpleUI(cmd)
		require.NoError(t, ui.Start(WithCounting(CountingTopLevel)))

		ui.DisplaySummary(summary)

		assert.Contains(t, out.String(), "readability")
		assert.NotContains(t, out.String(), "readability/braces")
	})

	t.Run("document formats keep stdout clean", func(t *testing.T) {
		cmd, out, errOut := newTestCmd()
		ui := NewSimpleUI(cmd)
		require.NoError(t, ui.Start(WithFormat(FormatJSON)))

		ui.DisplaySummary(summary)

		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "Total errors found: 2")
	})
}

func TestSimpleUI_JUnit(t *testing.T) {
	cmd, out, _ := newTestCmd()
	ui := NewSimpleUI(cmd)
	require.NoError(t, ui.Start(WithFormat(FormatJUnit)))

	ui.DisplayFile(badFile())
	ui.DisplayFile(m.FileReport{Source: "ok.cc"})
	ui.DisplayFile(m.FileReport{Source: "blob.cc", Err: "unsupported encoding"})
	assert.Empty(t, out.String(), "junit is written on Close")

	ui.Close()
	ui.Close()

	var suite junitSuite
	require.NoError(t, xml.Unmarshal(out.Bytes(), &suite))

	assert.Equal(t, "halint", suite.Name)
	assert.Equal(t, 3, suite.Tests)
	assert.Equal(t, 1, suite.Failures)
	assert.Equal(t, 1, suite.Errors)
	require.Len(t, suite.Cases, 3)
	assert.Equal(t, "src/bad.cc", suite.Cases[0].Name)
	assert.Contains(t, suite.Cases[0].Failure, "4: DISALLOW_COPY_AND_ASSIGN should be the last thing in the class [readability/constructors] [3]")
	assert.Empty(t, suite.Cases[1].Failure)
	assert.Equal(t, "unsupported encoding", suite.Cases[2].Error)
}

func TestSimpleUI_JSON(t *testing.T) {
	cmd, out, _ := newTestCmd()
	ui := NewSimpleUI(cmd)
	require.NoError(t, ui.Start(WithFormat(FormatJSON)))
	ui.Close()
	assert.Equal(t, "[]\n", out.String())

	out.Reset()
	require.NoError(t, ui.Start(WithFormat(FormatJSON)))
	ui.DisplayFile(badFile())
	ui.Close()

	var files []m.FileReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &files))
	assert.Equal(t, []m.FileReport{badFile()}, files)
}

func TestSimpleUI_DisplayRules(t *testing.T) {
	cmd, out, _ := newTestCmd()
	ui := NewSimpleUI(cmd)

	ui.DisplayRules([]m.RuleInfo{
		{Category: "readability/braces", Description: "Unbalanced braces", Severity: m.SeverityError, Structural: true},
		{Category: "readability/constructors", Description: "Macro placement", Severity: m.SeverityWarning},
	})

	for _, want := range []string{"CATEGORY", "readability/braces", "scanner", "readability/constructors", "rule", "TOTAL 2"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	cmd, out, errOut := newTestCmd()
	ui := NewSimpleUI(cmd)
	require.NoError(t, ui.Start(WithFormat(FormatVS7)))

	report := m.Report{
		RunID:   "run-1",
		Created: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Files:   []m.FileReport{badFile()},
	}

	require.NoError(t, ui.DisplayReport(report))

	assert.Contains(t, errOut.String(), "Report run-1 (2026-03-01T12:00:00Z)")
	assert.Contains(t, out.String(), "src/bad.cc(4):")
	assert.Contains(t, out.String(), "Total errors found: 2")
	assert.NotContains(t, errOut.String(), "Done processing")
}
