// Package report writes SynthesisDocument and TrustAnalysis payloads to
// the `reports/` artifact tree (spec.md §6.3). The core pipeline never
// reads or writes these files itself; this package is the one
// collaborator that turns a payload into a named file on disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer renders pipeline payloads to timestamped JSON artifacts.
type Writer struct {
	dir string
	now func() time.Time
}

// New builds a Writer rooted at dir (created on first write if absent).
func New(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// WriteSynthesis writes a SynthesisDocument artifact, returning the path
// written.
func (w *Writer) WriteSynthesis(doc any) (string, error) {
	return w.write("synthesis", doc)
}

// WriteTrustAnalysis writes a TrustAnalysis artifact, returning the path
// written.
func (w *Writer) WriteTrustAnalysis(analysis any) (string, error) {
	return w.write("trust_analysis", analysis)
}

// write marshals payload as indented JSON and names it per §6.3:
// intel_report_<type>_<YYYYMMDD>_<HHMMSS>.json. The HTML newsletter
// renderer named in the same convention is out of scope; only the JSON
// artifact and filename convention are implemented here.
func (w *Writer) write(reportType string, payload any) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s report: %w", reportType, err)
	}

	name := fmt.Sprintf("intel_report_%s_%s.json", reportType, w.now().UTC().Format("20060102_150405"))
	path := filepath.Join(w.dir, name)

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write %s report: %w", reportType, err)
	}

	return path, nil
}
