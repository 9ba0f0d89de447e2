// Package jsonreport persists pipeline output as JSON files. Every write goes
// through a temp-file-then-rename swap so a crash mid-write never leaves a
// partially written output behind.
package jsonreport

import (
	"encoding/json"
	"os"
	"path/filepath"

	"bytemomo/remora/internal/domain"
)

// SchemaVersion is bumped whenever the categorized-findings schema changes
// incompatibly, so downstream report generation can detect a mismatch.
const SchemaVersion = "1.0"

const (
	CategorizedFile = "categorized_findings.json"
	SummaryFile     = "summary_statistics.json"
	RejectedFile    = "rejected_findings.json"
)

type Writer struct {
	OutDir string
}

func New(out string) *Writer { return &Writer{OutDir: out} }

type categorizedDocument struct {
	SchemaVersion string                      `json:"schema_version"`
	Findings      []domain.CategorizedFinding `json:"findings"`
}

func (w *Writer) WriteCategorized(findings []domain.CategorizedFinding) (string, error) {
	if findings == nil {
		findings = []domain.CategorizedFinding{}
	}
	path := filepath.Join(w.OutDir, CategorizedFile)
	return path, writeJSONAtomic(path, categorizedDocument{
		SchemaVersion: SchemaVersion,
		Findings:      findings,
	})
}

func (w *Writer) WriteSummary(summary domain.Summary) (string, error) {
	path := filepath.Join(w.OutDir, SummaryFile)
	return path, writeJSONAtomic(path, summary)
}

func (w *Writer) WriteRejected(rejected []domain.RejectedFinding) (string, error) {
	if rejected == nil {
		rejected = []domain.RejectedFinding{}
	}
	path := filepath.Join(w.OutDir, RejectedFile)
	return path, writeJSONAtomic(path, struct {
		SchemaVersion string                   `json:"schema_version"`
		Rejected      []domain.RejectedFinding `json:"rejected"`
	}{
		SchemaVersion: SchemaVersion,
		Rejected:      rejected,
	})
}

// writeJSONAtomic marshals fully in memory, writes to a temp file in the
// target directory and renames it into place.
func writeJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
