package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/halint/internal/model"
)

// ReportFile is the name of the report written into the reports directory.
const ReportFile = "report.yaml"

// ErrNoReport is returned by LoadReport when no run has been saved yet.
var ErrNoReport = errors.New("no saved report")

// ReportStore persists and retrieves lint reports.
type ReportStore interface {
	SaveReport(dir m.Path, report m.Report) (m.Path, error)
	LoadReport(dir m.Path) (m.Report, error)
}

// LocalReportStore keeps the latest report as YAML on disk.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

type reportYAML struct {
	RunID   string           `yaml:"run_id"`
	Created time.Time        `yaml:"created"`
	Files   []fileReportYAML `yaml:"files"`
}

type fileReportYAML struct {
	Source      string           `yaml:"source"`
	Hash        string           `yaml:"hash,omitempty"`
	Error       string           `yaml:"error,omitempty"`
	Diagnostics []diagnosticYAML `yaml:"diagnostics,omitempty"`
}

type diagnosticYAML struct {
	Line       int    `yaml:"line"`
	Column     int    `yaml:"column"`
	Rule       string `yaml:"rule"`
	Message    string `yaml:"message"`
	Severity   string `yaml:"severity"`
	Confidence int    `yaml:"confidence"`
}

// SaveReport writes report to dir/report.yaml, creating dir if needed, and
// returns the file path.
func (rs *LocalReportStore) SaveReport(dir m.Path, report m.Report) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(toReportYAML(report))
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(string(dir), ReportFile)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return m.Path(path), nil
}

// LoadReport reads the report saved in dir.
func (rs *LocalReportStore) LoadReport(dir m.Path) (m.Report, error) {
	path := filepath.Join(string(dir), ReportFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m.Report{}, fmt.Errorf("%w in %s", ErrNoReport, dir)
		}

		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	var decoded reportYAML
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return m.Report{}, fmt.Errorf("parse report %s: %w", path, err)
	}

	return fromReportYAML(decoded), nil
}

func toReportYAML(report m.Report) reportYAML {
	out := reportYAML{
		RunID:   report.RunID,
		Created: report.Created,
		Files:   make([]fileReportYAML, 0, len(report.Files)),
	}

	for _, f := range report.Files {
		fr := fileReportYAML{Source: string(f.Source), Hash: f.Hash, Error: f.Err}
		for _, d := range f.Diagnostics {
			fr.Diagnostics = append(fr.Diagnostics, diagnosticYAML{
				Line:       d.Line,
				Column:     d.Column,
				Rule:       d.Rule,
				Message:    d.Message,
				Severity:   string(d.Severity),
				Confidence: d.Confidence,
			})
		}

		out.Files = append(out.Files, fr)
	}

	return out
}

func fromReportYAML(in reportYAML) m.Report {
	report := m.Report{
		RunID:   in.RunID,
		Created: in.Created,
		Files:   make([]m.FileReport, 0, len(in.Files)),
	}

	for _, f := range in.Files {
		fr := m.FileReport{Source: m.Path(f.Source), Hash: f.Hash, Err: f.Error}
		for _, d := range f.Diagnostics {
			fr.Diagnostics = append(fr.Diagnostics, m.Diagnostic{
				File:       fr.Source,
				Line:       d.Line,
				Column:     d.Column,
				Rule:       d.Rule,
				Message:    d.Message,
				Severity:   m.Severity(d.Severity),
				Confidence: d.Confidence,
			})
		}

		report.Files = append(report.Files, fr)
	}

	return report
}
