package analysis

import (
	"regexp"
	"strings"
)

// Build metadata is scanned from a bounded header window; CI runners print
// these key:value pairs near the top of the log.
const headerWindow = 40

type buildInfoKey struct {
	name string
	re   *regexp.Regexp
}

// Scan order doubles as the render order in the prompt, so the output stays
// byte-deterministic regardless of map iteration.
var buildInfoKeys = []buildInfoKey{
	{"component", regexp.MustCompile(`(?i)\bcomponent:\s*(.+)`)},
	{"build_id", regexp.MustCompile(`(?i)\bbuild id:\s*(.+)`)},
	{"compiler", regexp.MustCompile(`(?i)\bcompiler:\s*(.+)`)},
	{"branch", regexp.MustCompile(`(?i)\bbranch:\s*(.+)`)},
	{"runner", regexp.MustCompile(`(?i)\brunner:\s*(.+)`)},
}

// ExtractBuildInfo scans the first lines of the log for known key:value
// pairs. The first occurrence of each key wins; absent keys are simply
// omitted.
func ExtractBuildInfo(lines []string) map[string]string {
	header := lines
	if len(header) > headerWindow {
		header = header[:headerWindow]
	}

	info := make(map[string]string)
	for _, line := range header {
		for _, k := range buildInfoKeys {
			if _, done := info[k.name]; done {
				continue
			}
			if m := k.re.FindStringSubmatch(line); m != nil {
				info[k.name] = strings.TrimSpace(m[1])
			}
		}
	}
	return info
}
