package controller

import (
	"fmt"

	m "github.com/mouse-blink/halint/internal/model"
)

// List item types.
type diagnosticItem struct {
	diag m.Diagnostic
	// err is set instead of diag for a file that could not be linted.
	err string
}

func (d diagnosticItem) location() string {
	if d.err != "" {
		return string(d.diag.File)
	}

	return fmt.Sprintf("%s:%d", d.diag.File, d.diag.Line)
}

func (d diagnosticItem) FilterValue() string {
	if d.err != "" {
		return string(d.diag.File) + " " + d.err
	}

	return fmt.Sprintf("%s %s %s", d.diag.File, d.diag.Rule, d.diag.Message)
}

func reportItems(report m.Report) []diagnosticItem {
	var items []diagnosticItem

	for _, f := range report.Files {
		if f.Failed() {
			items = append(items, diagnosticItem{diag: m.Diagnostic{File: f.Source}, err: f.Err})
		}

		for _, d := range f.Diagnostics {
			if d.File == "" {
				d.File = f.Source
			}

			items = append(items, diagnosticItem{diag: d})
		}
	}

	return items
}
