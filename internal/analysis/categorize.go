package analysis

import (
	"regexp"
	"strings"

	"github.com/user/build-triage/internal/domain"
)

type categoryRule struct {
	name string
	re   *regexp.Regexp
}

// Ordered category matchers. First match wins; a section that matches
// nothing is tagged "other".
var categoryRules = []categoryRule{
	{domain.CategoryLinkerMissing, regexp.MustCompile(`(?i)\b(ld: )?cannot find\b|-l[A-Za-z0-9_\-]+\b`)},
	{domain.CategoryLinkerUndefined, regexp.MustCompile(`(?i)\bundefined reference\b|\bundefined symbol\b`)},
	{domain.CategoryCMakeConfig, regexp.MustCompile(`(?i)\bcmake error\b|\bno rule to make target\b|\bconfiguration error\b`)},
	{domain.CategoryCompilation, regexp.MustCompile(`(?im)\berror:|^\s*\d+\s*errors? generated\b`)},
}

// CategorizeSection assigns exactly one category to a section based on its
// concatenated context lines.
func CategorizeSection(sec domain.Section) string {
	body := strings.Join(sec.Lines, "\n")
	for _, rule := range categoryRules {
		if rule.re.MatchString(body) {
			return rule.name
		}
	}
	return domain.CategoryOther
}

// Categorize classifies each section independently and returns the derived
// category histogram alongside the per-section tags.
func Categorize(sections []domain.Section) ([]string, map[string]int) {
	tags := make([]string, len(sections))
	hist := make(map[string]int)
	for i, sec := range sections {
		cat := CategorizeSection(sec)
		tags[i] = cat
		hist[cat]++
	}
	return tags, hist
}
