package analysis

import (
	"strings"
	"testing"

	"github.com/user/build-triage/internal/domain"
)

func TestSynthesize(t *testing.T) {
	sections := []domain.Section{
		{LineNumber: 10, Headline: "error: unknown type name 'foo'", Lines: []string{"ctx", "error: unknown type name 'foo'", "ctx"}},
		{LineNumber: 80, Headline: "error: unknown type name 'foo'", Lines: []string{"error: unknown type name 'foo'"}},
		{LineNumber: 200, Headline: "undefined reference to `bar'", Lines: []string{"linking app", "undefined reference to `bar'"}},
		{LineNumber: 300, Headline: "CMake Error at CMakeLists.txt:5", Lines: []string{"CMake Error at CMakeLists.txt:5"}},
		{LineNumber: 400, Headline: "fourth distinct headline", Lines: []string{"fourth distinct headline"}},
	}

	result := Synthesize(sections, "schema validation failed")

	t.Run("At Most Three Causes", func(t *testing.T) {
		if len(result.RootCauses) != 3 {
			t.Fatalf("expected 3 root causes, got %d", len(result.RootCauses))
		}
	})

	t.Run("Frequency Ranking With Stable Ties", func(t *testing.T) {
		if result.RootCauses[0].Cause != "error: unknown type name 'foo'" {
			t.Errorf("most frequent headline must rank first, got %q", result.RootCauses[0].Cause)
		}
		// The two singletons keep discovery order.
		if result.RootCauses[1].Cause != "undefined reference to `bar'" {
			t.Errorf("tie order broken: %q", result.RootCauses[1].Cause)
		}
		if result.RootCauses[2].Cause != "CMake Error at CMakeLists.txt:5" {
			t.Errorf("tie order broken: %q", result.RootCauses[2].Cause)
		}
	})

	t.Run("Every Cause Has Evidence", func(t *testing.T) {
		for i, rc := range result.RootCauses {
			if len(rc.Evidence) == 0 {
				t.Errorf("root cause %d has no evidence", i)
			}
			if rc.Confidence != domain.ConfidenceLow {
				t.Errorf("root cause %d confidence = %q, want low", i, rc.Confidence)
			}
			if rc.NextAction == "" {
				t.Errorf("root cause %d has no next action", i)
			}
		}
	})

	t.Run("Evidence Points At Error Keyword Line", func(t *testing.T) {
		ev := result.RootCauses[0].Evidence[0]
		// First keyword line in the first matching section sits at offset 1.
		if ev.Line != 11 {
			t.Errorf("evidence line = %d, want 11", ev.Line)
		}
		if ev.Snippet != "error: unknown type name 'foo'" {
			t.Errorf("unexpected snippet %q", ev.Snippet)
		}
	})

	t.Run("Disclaimer Summary", func(t *testing.T) {
		if len(result.Summary) != 3 {
			t.Fatalf("expected 3-line disclaimer, got %d lines", len(result.Summary))
		}
		if !strings.Contains(result.Summary[0], "schema validation failed") {
			t.Errorf("summary must name the failure mode, got %q", result.Summary[0])
		}
		if !strings.Contains(result.Summary[1], "sections.json") {
			t.Errorf("summary must point at the sections artifact, got %q", result.Summary[1])
		}
	})
}

func TestSynthesize_NoKeywordLine(t *testing.T) {
	sections := []domain.Section{
		{LineNumber: 55, Headline: "Target libfoo.so FAILED", Lines: []string{"step 1", "step 2"}},
	}
	result := Synthesize(sections, "empty response")

	if len(result.RootCauses) != 1 {
		t.Fatalf("expected 1 root cause, got %d", len(result.RootCauses))
	}
	ev := result.RootCauses[0].Evidence[0]
	if ev.Line != 55 || ev.Snippet != "Target libfoo.so FAILED" {
		t.Errorf("expected headline fallback evidence, got %+v", ev)
	}
}

func TestSynthesize_AllOtherCategory(t *testing.T) {
	// Sections that categorize as "other" still yield valid causes.
	sections := []domain.Section{
		{LineNumber: 1, Headline: "Segfault in stage 3", Lines: []string{"Segfault in stage 3"}},
		{LineNumber: 9, Headline: "Killed (OOM)", Lines: []string{"Killed (OOM)"}},
	}
	result := Synthesize(sections, "no json block found")

	if len(result.RootCauses) != 2 {
		t.Fatalf("expected 2 root causes, got %d", len(result.RootCauses))
	}
	for _, rc := range result.RootCauses {
		if len(rc.Evidence) == 0 {
			t.Error("every fallback cause needs evidence")
		}
	}
}

func TestSynthesize_LongFieldsTruncated(t *testing.T) {
	long := strings.Repeat("e", 500) + " error " + strings.Repeat("x", 100)
	sections := []domain.Section{
		{LineNumber: 7, Headline: long, Lines: []string{long}},
	}
	result := Synthesize(sections, "empty response")

	rc := result.RootCauses[0]
	if len(rc.Cause) > 120 {
		t.Errorf("cause length %d exceeds 120", len(rc.Cause))
	}
	if len(rc.Evidence[0].Snippet) > 200 {
		t.Errorf("snippet length %d exceeds 200", len(rc.Evidence[0].Snippet))
	}
}
