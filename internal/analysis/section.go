package analysis

import (
	"strings"

	"github.com/user/build-triage/internal/domain"
)

// sliceWithContext returns lines[start..end] clipped to log bounds, with
// start and end given as 1-indexed line numbers.
func sliceWithContext(lines []string, start, end int) []string {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return nil
	}
	out := make([]string, end-start+1)
	copy(out, lines[start-1:end])
	return out
}

// ExtractSections expands clusters into context-bounded sections under a
// global character budget. Clusters are processed in discovery order and
// capped at maxSections; before a section is committed its full text is
// checked against the remaining budget, then a half-length version, and if
// even that does not fit no further sections are emitted. Sections already
// committed are kept, so the prompt size stays bounded at the cost of
// omitting later clusters.
func ExtractSections(lines []string, clusters [][]int, ctx, maxSections, maxChars int) ([]domain.Section, int) {
	var sections []domain.Section
	totalChars := 0

	if len(clusters) > maxSections {
		clusters = clusters[:maxSections]
	}

	for _, c := range clusters {
		lo := c[0] - ctx
		hi := c[len(c)-1] + ctx
		chunk := sliceWithContext(lines, lo, hi)
		chunkText := strings.TrimSpace(strings.Join(chunk, "\n"))

		head := c[0]
		sec := domain.Section{
			LineNumber: head,
			Headline:   strings.TrimSpace(lines[head-1]),
			Lines:      chunk,
		}

		if totalChars+len(chunkText) > maxChars {
			half := len(chunk) / 2
			if half < 1 {
				half = 1
			}
			truncated := strings.Join(chunk[:half], "\n")
			if totalChars+len(truncated) > maxChars {
				break
			}
			sec.Lines = chunk[:half]
			sec.Truncated = true
			totalChars += len(truncated)
		} else {
			totalChars += len(chunkText)
		}
		sections = append(sections, sec)
	}
	return sections, totalChars
}
