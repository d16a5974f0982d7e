// Package artifact persists triage outputs as JSON files so a run can be
// inspected or replayed without re-invoking the collaborator.
package artifact

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/user/build-triage/internal/domain"
)

const (
	dirPerm  = 0755
	filePerm = 0644

	resultFile     = "result.json"
	sectionsFile   = "sections.json"
	categoriesFile = "categories.json"
	metaFile       = "meta.json"
	promptFile     = "prompt.txt"
)

// Writer writes triage artifacts into a target directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates an artifact writer rooted at dir, creating it if needed.
func NewWriter(dir string, logger *slog.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating artifact directory %s: %w", dir, err)
	}
	return &Writer{
		dir:    dir,
		logger: logger.With("component", "artifact_writer"),
	}, nil
}

// Dir returns the artifact directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteOutcome persists the full outcome of a triage run: the analysis
// result, the extracted sections, the category histogram, the run metadata,
// and the rendered prompt.
func (w *Writer) WriteOutcome(outcome domain.TriageOutcome) error {
	if err := w.writeJSON(resultFile, outcome.Result); err != nil {
		return err
	}
	if err := w.writeJSON(sectionsFile, outcome.Sections); err != nil {
		return err
	}
	if err := w.writeJSON(categoriesFile, outcome.Metadata.Categories); err != nil {
		return err
	}
	if err := w.writeJSON(metaFile, outcome.Metadata); err != nil {
		return err
	}
	if outcome.Prompt != "" {
		path := filepath.Join(w.dir, promptFile)
		if err := os.WriteFile(path, []byte(outcome.Prompt), filePerm); err != nil {
			return fmt.Errorf("writing %s: %w", promptFile, err)
		}
	}
	w.logger.Info("wrote triage artifacts", "dir", w.dir, "status", outcome.Status)
	return nil
}

func (w *Writer) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(w.dir, name), data, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
