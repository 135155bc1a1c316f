package model

import "time"

// FileReport holds the lint outcome for a single file. Err is set when the
// file could not be processed at all; Diagnostics may still be partial.
type FileReport struct {
	Source      Path         `json:"source"`
	Hash        string       `json:"hash,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Err         string       `json:"error,omitempty"`
}

// Failed reports whether the file produced a fatal error.
func (r FileReport) Failed() bool {
	return r.Err != ""
}

// Report is the persisted result of one halint run.
type Report struct {
	RunID   string       `json:"run_id"`
	Created time.Time    `json:"created"`
	Files   []FileReport `json:"files"`
}

// Summary aggregates counts over a run.
type Summary struct {
	Files      int
	Failed     int
	Total      int
	ByCategory map[string]int
}

// Summarize counts diagnostics per category and failed files.
func (r Report) Summarize() Summary {
	s := Summary{Files: len(r.Files), ByCategory: make(map[string]int)}

	for _, f := range r.Files {
		if f.Failed() {
			s.Failed++
		}

		for _, d := range f.Diagnostics {
			s.Total++
			s.ByCategory[d.Rule]++
		}
	}

	return s
}
