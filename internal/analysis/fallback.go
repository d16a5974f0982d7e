package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/user/build-triage/internal/domain"
)

const (
	maxFallbackCauses  = 3
	maxCauseLen        = 120
	maxSnippetLen      = 200
	fallbackNextAction = "Re-run with stricter prompt or inspect deterministic section."
)

var evidenceKeywordRE = regexp.MustCompile(`(?i)\berror\b|undefined|cannot find|cmake`)

// Synthesize reconstructs a schema-valid result from the already-computed
// sections when the collaborator's output is missing or invalid. Distinct
// headlines are ranked by frequency (ties keep first-seen order) and the top
// three become root causes, each backed by the first error-indicating context
// line of its section, or by the headline itself when none is found.
func Synthesize(sections []domain.Section, reason string) domain.AnalysisResult {
	type headCount struct {
		headline string
		count    int
	}

	var order []string
	counts := make(map[string]int)
	for _, sec := range sections {
		if sec.Headline == "" {
			continue
		}
		if counts[sec.Headline] == 0 {
			order = append(order, sec.Headline)
		}
		counts[sec.Headline]++
	}

	ranked := make([]headCount, len(order))
	for i, h := range order {
		ranked[i] = headCount{h, counts[h]}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].count > ranked[j].count })
	if len(ranked) > maxFallbackCauses {
		ranked = ranked[:maxFallbackCauses]
	}

	var causes []domain.RootCause
	for _, hc := range ranked {
		sec := sectionByHeadline(sections, hc.headline)
		causes = append(causes, domain.RootCause{
			Cause:      truncate(hc.headline, maxCauseLen),
			Evidence:   []domain.Evidence{evidenceFor(sec)},
			Confidence: domain.ConfidenceLow,
			NextAction: fallbackNextAction,
		})
	}

	return domain.AnalysisResult{
		RootCauses: causes,
		Summary: []string{
			fmt.Sprintf("AI analysis unavailable (%s); using deterministic fallback.", reason),
			"Inspect sections.json for evidence.",
			"Re-run with a JSON-enforcing model or smaller prompt.",
		},
	}
}

func sectionByHeadline(sections []domain.Section, headline string) domain.Section {
	for _, sec := range sections {
		if sec.Headline == headline {
			return sec
		}
	}
	return domain.Section{}
}

// evidenceFor picks the first context line containing an error-indicating
// keyword; the section's own headline and head line number are the fallback.
func evidenceFor(sec domain.Section) domain.Evidence {
	for offset, line := range sec.Lines {
		if evidenceKeywordRE.MatchString(line) {
			return domain.Evidence{
				Line:    sec.LineNumber + offset,
				Snippet: truncate(strings.TrimSpace(line), maxSnippetLen),
			}
		}
	}
	return domain.Evidence{Line: sec.LineNumber, Snippet: truncate(sec.Headline, maxSnippetLen)}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
