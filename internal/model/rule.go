package model

// RuleInfo describes a diagnostic category halint can report.
type RuleInfo struct {
	Category    string   `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Severity    Severity `json:"severity" yaml:"severity"`
	// Structural categories are reported by the scanner, not by a rule.
	Structural bool `json:"structural" yaml:"structural"`
}
