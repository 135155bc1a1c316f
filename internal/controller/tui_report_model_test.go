package controller

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/halint/internal/model"
)

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "", truncateToWidth("hello", 0))
	assert.Equal(t, "hello", truncateToWidth("hello", 10))
	assert.Equal(t, "…", truncateToWidth("hello", 1))
	assert.Equal(t, "h…", truncateToWidth("hello", 2))
}

func TestDiagnosticItem(t *testing.T) {
	d := badFile().Diagnostics[0]
	item := diagnosticItem{diag: d}

	assert.Equal(t, "src/bad.cc:4", item.location())
	assert.Contains(t, item.FilterValue(), "readability/constructors")
	assert.Contains(t, item.FilterValue(), "src/bad.cc")

	failed := diagnosticItem{diag: m.Diagnostic{File: "blob.cc"}, err: "NUL byte"}
	assert.Equal(t, "blob.cc", failed.location())
	assert.Equal(t, "blob.cc NUL byte", failed.FilterValue())
}

func TestReportItems(t *testing.T) {
	report := m.Report{Files: []m.FileReport{
		{Source: "blob.cc", Err: "NUL byte"},
		{Source: "a.cc", Diagnostics: []m.Diagnostic{{Line: 2, Rule: "build/class"}}},
	}}

	items := reportItems(report)
	require.Len(t, items, 2)
	assert.Equal(t, "NUL byte", items[0].err)
	assert.Equal(t, m.Path("a.cc"), items[1].diag.File, "file is filled from the report")
}

func TestReportModel_Lifecycle(t *testing.T) {
	report := m.Report{
		RunID:   "run-42",
		Created: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Files:   []m.FileReport{badFile()},
	}

	model := newReportModel(report)
	assert.Nil(t, model.Init())

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(reportModel)

	view := model.View()
	assert.Contains(t, view, "halint report run-42")
	assert.Contains(t, view, "Diagnostics: 2")
	assert.Contains(t, view, "src/bad.cc:4")

	sel, ok := model.selected()
	require.True(t, ok)
	assert.Equal(t, 4, sel.diag.Line)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(reportModel)

	sel, ok = model.selected()
	require.True(t, ok)
	assert.Equal(t, 9, sel.diag.Line)
	assert.Contains(t, model.View(), "Unmatched closing brace")

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestReportModel_Empty(t *testing.T) {
	model := newReportModel(m.Report{RunID: "clean"})

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := updated.(reportModel).View()

	assert.Contains(t, view, "No diagnostics.")
	assert.Equal(t, 1, strings.Count(view, "halint report clean"))
}
