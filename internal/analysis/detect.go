package analysis

import (
	"regexp"
	"strings"
)

var ansiRE = regexp.MustCompile(`\x1b[@-_][0-?]*[ -/]*[@-~]`)

// Ordered detection rules over compiler, linker, and build-system output
// conventions. First match wins; a line contributes at most one flag.
var errorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\berror:\s+(.+)`), // gcc/clang style
	regexp.MustCompile(`(?i)\bfatal:\s+(.+)`),
	regexp.MustCompile(`(?i)\bundefined reference to\s+(.+)`),
	regexp.MustCompile(`(?i)\bundefined symbol:\s+(.+)`),
	regexp.MustCompile(`(?i)\bld:\s+cannot find\s+(.+)`),
	regexp.MustCompile(`(?i)\bcannot find\s+(-l\S+|\S+)`),
	regexp.MustCompile(`(?i)\bno rule to make target\b.*`),
	regexp.MustCompile(`(?i)\bcmake error\b:?\s*(.*)`),
	regexp.MustCompile(`(?i)\bconfiguration error\b:?\s*(.*)`),
}

// Generic CI marker rule: an explicit failure keyword together with a
// build-related keyword. The failure keywords are matched case-sensitively on
// purpose; lowercase "failed" shows up in too many benign contexts.
var (
	failureMarkerRE = regexp.MustCompile(`\bFAILED\b|\bFAILURE\b`)
	buildKeywordRE  = regexp.MustCompile(`(?i)test|target|build|link`)
)

// StripANSI removes ANSI escape sequences from a line.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// SplitLines splits raw log text into ANSI-stripped lines. Line numbers used
// throughout the pipeline are 1-indexed positions into this slice.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = StripANSI(l)
	}
	return lines
}

// IsErrorLine reports whether a single ANSI-stripped line matches any
// detection rule.
func IsErrorLine(line string) bool {
	ls := strings.TrimSpace(line)
	for _, re := range errorPatterns {
		if re.MatchString(ls) {
			return true
		}
	}
	if failureMarkerRE.MatchString(ls) && buildKeywordRE.MatchString(ls) {
		return true
	}
	return false
}

// DetectErrorLines returns the 1-indexed numbers of lines that match a
// detection rule, in strictly increasing order.
func DetectErrorLines(lines []string) []int {
	var idxs []int
	for i, line := range lines {
		if IsErrorLine(line) {
			idxs = append(idxs, i+1)
		}
	}
	return idxs
}
