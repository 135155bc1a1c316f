package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single finding in a file.
type Diagnostic struct {
	File       Path     `json:"file"`
	Line       int      `json:"line"`
	Column     int      `json:"column"`
	Rule       string   `json:"rule"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	Confidence int      `json:"confidence"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s  [%s] [%d]", d.File, d.Line, d.Column, d.Message, d.Rule, d.Confidence)
}

// TopLevel returns the part of the rule category before the first slash.
func (d Diagnostic) TopLevel() string {
	top, _, _ := strings.Cut(d.Rule, "/")
	return top
}

// CompareDiagnostics orders diagnostics by line, column, rule and message.
func CompareDiagnostics(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
		cmp.Compare(a.Rule, b.Rule),
		cmp.Compare(a.Message, b.Message),
	)
}

// SortDiagnostics sorts in place using CompareDiagnostics.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, CompareDiagnostics)
}
