package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/user/build-triage/internal/domain"
)

const promptDivider = "============================================================"

// BuildPrompt renders the build metadata and error sections into the single
// prompt string handed to the text-generation collaborator. The render is a
// pure function of its input: the same payload always yields byte-identical
// output.
func BuildPrompt(sections []domain.Section, buildInfo map[string]string) string {
	var b strings.Builder

	header := []string{
		"ROLE: You are assisting the build infrastructure team with CI build failures.",
		"",
		"TASK: Analyse the provided error sections (already filtered deterministically).",
		"",
		"OUTPUT (valid JSON ONLY):",
		"{",
		`  "root_causes": [`,
		`    { "cause": "string",`,
		`      "evidence": [ { "line": number, "snippet": "string" } ],`,
		`      "confidence": "high|medium|low",`,
		`      "next_action": "string" }`,
		"  ],",
		`  "summary": ["• bullet 1", "• bullet 2", "• bullet 3"]`,
		"}",
		"",
		"REQUIREMENTS:",
		"- Cite at least one exact line number + snippet per root cause.",
		"- Prefer concrete commands/flags over generic advice.",
		"- If uncertain, set confidence to low and state what is missing.",
		"- Do not invent symbols/functions/libraries.",
		"",
		"BUILD INFO:",
	}
	for _, line := range header {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for _, k := range orderedBuildInfoKeys(buildInfo) {
		fmt.Fprintf(&b, "- %s: %s\n", k, buildInfo[k])
	}

	b.WriteString("\nERROR SECTIONS:\n")
	b.WriteString(promptDivider)
	b.WriteByte('\n')

	for i, sec := range sections {
		fmt.Fprintf(&b, "\n--- Error Section %d ---\n", i+1)
		fmt.Fprintf(&b, "Line %d: %s\n", sec.LineNumber, sec.Headline)
		b.WriteString("\nContext:\n")
		for _, line := range sec.Lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	b.WriteString(promptDivider)
	b.WriteString("\nIMPORTANT: Respond with VALID JSON ONLY. No additional commentary.")

	return b.String()
}

// orderedBuildInfoKeys returns the scanned keys in their fixed scan order,
// followed by any caller-supplied extras sorted alphabetically.
func orderedBuildInfoKeys(info map[string]string) []string {
	var keys []string
	known := make(map[string]bool)
	for _, k := range buildInfoKeys {
		known[k.name] = true
		if _, ok := info[k.name]; ok {
			keys = append(keys, k.name)
		}
	}
	var extras []string
	for k := range info {
		if !known[k] {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	return append(keys, extras...)
}
