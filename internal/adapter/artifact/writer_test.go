package artifact

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/build-triage/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriter_WriteOutcome(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(filepath.Join(dir, "run-1"), testLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	outcome := domain.TriageOutcome{
		Status: domain.StatusAnalyzed,
		Result: domain.AnalysisResult{
			RootCauses: []domain.RootCause{{
				Cause:      "missing library",
				Evidence:   []domain.Evidence{{Line: 12, Snippet: "cannot find -lssl"}},
				Confidence: domain.ConfidenceHigh,
				NextAction: "install libssl-dev",
			}},
			Summary: []string{"linker failed"},
		},
		Metadata: domain.RunMetadata{
			Backend:      "ollama",
			Model:        "codellama:7b",
			SectionCount: 1,
			Categories:   map[string]int{"linker_missing": 1},
		},
		Sections: []domain.Section{{LineNumber: 12, Headline: "ld: cannot find -lssl", Lines: []string{"ld: cannot find -lssl"}}},
		Prompt:   "prompt text",
	}

	if err := w.WriteOutcome(outcome); err != nil {
		t.Fatalf("WriteOutcome failed: %v", err)
	}

	var result domain.AnalysisResult
	readJSON(t, filepath.Join(w.Dir(), "result.json"), &result)
	if len(result.RootCauses) != 1 || result.RootCauses[0].Cause != "missing library" {
		t.Errorf("unexpected result: %+v", result)
	}

	var sections []domain.Section
	readJSON(t, filepath.Join(w.Dir(), "sections.json"), &sections)
	if len(sections) != 1 || sections[0].LineNumber != 12 {
		t.Errorf("unexpected sections: %+v", sections)
	}

	var categories map[string]int
	readJSON(t, filepath.Join(w.Dir(), "categories.json"), &categories)
	if categories["linker_missing"] != 1 {
		t.Errorf("unexpected categories: %v", categories)
	}

	var meta domain.RunMetadata
	readJSON(t, filepath.Join(w.Dir(), "meta.json"), &meta)
	if meta.Backend != "ollama" || meta.SectionCount != 1 {
		t.Errorf("unexpected metadata: %+v", meta)
	}

	prompt, err := os.ReadFile(filepath.Join(w.Dir(), "prompt.txt"))
	if err != nil {
		t.Fatalf("reading prompt.txt: %v", err)
	}
	if string(prompt) != "prompt text" {
		t.Errorf("prompt.txt = %q", prompt)
	}
}

func TestWriter_NoPromptFile(t *testing.T) {
	w, err := NewWriter(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	if err := w.WriteOutcome(domain.TriageOutcome{Status: domain.StatusNoFailures}); err != nil {
		t.Fatalf("WriteOutcome failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(w.Dir(), "prompt.txt")); !os.IsNotExist(err) {
		t.Error("prompt.txt written for an outcome without a prompt")
	}
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
}
