package slack

import (
	"fmt"
	"strings"

	"github.com/user/build-triage/internal/domain"
)

const maxCausesInMessage = 3

// FormatBuildFailure renders a triage outcome as a Slack message with the
// summary bullets first and the top root causes below.
func FormatBuildFailure(failure domain.BuildFailure, result domain.AnalysisResult) string {
	var parts []string

	parts = append(parts,
		fmt.Sprintf(":red_circle: *Build Failed: %s/%s*", orUnknown(failure.Repo), orUnknown(failure.Branch)),
		"",
		"*Summary:*",
	)
	for i, line := range result.Summary {
		if i == 3 {
			break
		}
		parts = append(parts, "• "+line)
	}

	if len(result.RootCauses) > 0 {
		parts = append(parts, "", "*Top Root Causes:*")
		for i, cause := range result.RootCauses {
			if i == maxCausesInMessage {
				break
			}
			parts = append(parts, fmt.Sprintf("%d. *%s*", i+1, cause.Cause))
			if len(cause.Evidence) > 0 {
				ev := cause.Evidence[0]
				parts = append(parts, fmt.Sprintf("   Evidence: line %d: %s", ev.Line, ev.Snippet))
			}
			if cause.NextAction != "" {
				parts = append(parts, "   Fix: "+cause.NextAction)
			}
		}
	}

	if failure.BuildURL != "" {
		parts = append(parts, "", fmt.Sprintf("<%s|View Build Log>", failure.BuildURL))
	}

	return strings.Join(parts, "\n")
}

// FormatPRSummary renders an LLM-written pull request summary for Slack.
func FormatPRSummary(pr domain.PullRequest, summary string) string {
	header := fmt.Sprintf("*PR #%d: %s*", pr.Number, pr.Title)
	if pr.HTMLURL != "" {
		header = fmt.Sprintf("*<%s|PR #%d: %s>*", pr.HTMLURL, pr.Number, pr.Title)
	}
	return header + "\n" + summary
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
