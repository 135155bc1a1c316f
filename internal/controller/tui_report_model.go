package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/halint/internal/model"
)

// Simple delegate for report list items.
type reportDelegate struct{}

func (d reportDelegate) Height() int  { return 1 }
func (d reportDelegate) Spacing() int { return 0 }
func (d reportDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d reportDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	it, ok := item.(diagnosticItem)
	if !ok {
		return
	}

	const locWidth = 32

	var locStyle, textStyle lipgloss.Style

	if index == l.Index() {
		locStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true).
			Width(locWidth)
		textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6"))
	} else {
		locStyle = locationStyle.Width(locWidth)
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	}

	text := it.diag.Message
	if it.err != "" {
		text = it.err
	}

	width := l.Width() - locWidth - 2

	line := fmt.Sprintf("%s  %s",
		locStyle.Render(truncateToWidth(it.location(), locWidth)),
		textStyle.Render(truncateToWidth(text, width)),
	)
	_, _ = fmt.Fprint(w, line)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// reportModel browses the diagnostics of a saved report.
type reportModel struct {
	width   int
	height  int
	list    list.Model
	runID   string
	created time.Time
	summary m.Summary
}

func newReportModel(report m.Report) reportModel {
	items := reportItems(report)

	listItems := make([]list.Item, 0, len(items))
	for _, it := range items {
		listItems = append(listItems, it)
	}

	l := list.New(listItems, reportDelegate{}, 80, 20)
	l.SetShowPagination(false)
	l.SetShowFilter(true)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.FilterInput.Placeholder = "Filter by path, category or message…"

	return reportModel{
		list:    l,
		runID:   report.RunID,
		created: report.Created,
		summary: report.Summarize(),
	}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height
		rm.list.SetWidth(rm.width)

	case tea.KeyMsg:
		if rm.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return rm, tea.Quit
			}
		} else if msg.String() == "ctrl+c" {
			return rm, tea.Quit
		}

		rm.list, cmd = rm.list.Update(msg)
	}

	return rm, cmd
}

// selected returns the highlighted item, if any.
func (rm reportModel) selected() (diagnosticItem, bool) {
	it, ok := rm.list.SelectedItem().(diagnosticItem)
	return it, ok
}

func (rm reportModel) View() string {
	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Padding(1, 0, 0, 2).Render("halint report " + rm.runID)

	summary := summaryStyle.Render(fmt.Sprintf(
		"Diagnostics: %s   Files: %s   Failed: %s   Run: %s",
		accentStyle.Render(fmt.Sprintf("%d", rm.summary.Total)),
		accentStyle.Render(fmt.Sprintf("%d", rm.summary.Files)),
		accentStyle.Render(fmt.Sprintf("%d", rm.summary.Failed)),
		rm.created.Format(time.RFC3339),
	))

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(rm.width).
		Render("↑/k up • ↓/j down • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		rm.renderTable(),
		rm.renderDetail(),
		footer,
	)
}

func (rm reportModel) renderTable() string {
	if len(rm.list.Items()) == 0 {
		return okStyle.Padding(0, 0, 1, 2).Render("No diagnostics.")
	}

	// Title, summary, detail, footer and borders.
	listHeight := max(rm.height-12, 5)
	listWidth := max(rm.width-6, 20)

	rm.list.SetHeight(listHeight)
	rm.list.SetWidth(listWidth)

	container := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return container.Render(rm.list.View())
}

// renderDetail shows the full text of the selected item, which the list
// may have truncated.
func (rm reportModel) renderDetail() string {
	it, ok := rm.selected()
	if !ok {
		return ""
	}

	style := lipgloss.NewStyle().Padding(0, 0, 0, 2)

	if it.err != "" {
		return style.Render(errorStyle.Render(it.err))
	}

	return style.Render(renderDiagnostic(it.diag))
}
