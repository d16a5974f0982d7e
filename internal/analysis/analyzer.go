package analysis

import (
	"math"

	"github.com/user/build-triage/internal/domain"
)

// Options are the immutable knobs of one analyzer instance. Construct once
// and share; independent runs share no other state.
type Options struct {
	Window      int // cluster proximity window in lines
	Context     int // symmetric context lines around a cluster
	MaxSections int // hard cap on emitted sections
	MaxChars    int // global character budget across all sections
}

// DefaultOptions mirror the tuning the triage rules were written against.
func DefaultOptions() Options {
	return Options{Window: 8, Context: 5, MaxSections: 10, MaxChars: 12000}
}

// Artifacts is everything the deterministic pipeline derives from one log.
// Every field is fixed once Run returns; downstream stages never mutate it.
type Artifacts struct {
	Lines      []string          `json:"-"`
	BuildInfo  map[string]string `json:"build_info"`
	ErrorLines []int             `json:"error_lines"`
	Clusters   [][]int           `json:"clusters"`
	Sections   []domain.Section  `json:"sections"`
	Categories map[string]int    `json:"categories"`
	Prompt     string            `json:"-"`

	FullChars   int `json:"full_chars"`
	PromptChars int `json:"prompt_chars"`
	SavedChars  int `json:"saved_chars"`
}

// Analyzer runs detection, clustering, extraction, categorization, and
// prompt building as a single synchronous pass. It performs no I/O.
type Analyzer struct {
	opts Options
}

// New creates an Analyzer with the given options.
func New(opts Options) *Analyzer {
	return &Analyzer{opts: opts}
}

// Run executes stages 1-5 over the raw log text. Caller-supplied overrides
// take precedence over metadata scanned from the log header. When no lines
// are flagged, the returned artifacts carry zero sections and an empty
// prompt; the caller must not invoke the collaborator in that case.
func (a *Analyzer) Run(logText string, overrides map[string]string) Artifacts {
	lines := SplitLines(logText)

	buildInfo := ExtractBuildInfo(lines)
	for k, v := range overrides {
		if v != "" {
			buildInfo[k] = v
		}
	}

	errIdxs := DetectErrorLines(lines)
	clusters := Cluster(errIdxs, a.opts.Window)
	sections, _ := ExtractSections(lines, clusters, a.opts.Context, a.opts.MaxSections, a.opts.MaxChars)
	_, hist := Categorize(sections)

	fullChars := 0
	for _, l := range lines {
		fullChars += len(l) + 1
	}

	art := Artifacts{
		Lines:      lines,
		BuildInfo:  buildInfo,
		ErrorLines: errIdxs,
		Clusters:   clusters,
		Sections:   sections,
		Categories: hist,
		FullChars:  fullChars,
	}

	if len(sections) > 0 {
		art.Prompt = BuildPrompt(sections, buildInfo)
		art.PromptChars = len(art.Prompt)
		saved := fullChars - art.PromptChars
		if saved < 0 {
			saved = 0
		}
		art.SavedChars = saved
	}
	return art
}

// Metadata assembles the run record for the given backend identity.
func (art Artifacts) Metadata(backend, model string) domain.RunMetadata {
	return domain.RunMetadata{
		Backend:               backend,
		Model:                 model,
		FullChars:             art.FullChars,
		PromptChars:           art.PromptChars,
		SavedChars:            art.SavedChars,
		EstimatedTokenSavings: EstimateTokens(art.SavedChars),
		SectionCount:          len(art.Sections),
		Categories:            art.Categories,
		BuildInfo:             art.BuildInfo,
	}
}

// EstimateTokens converts a character count to a rough token count, assuming
// one token per 3.5 characters of mixed English and code.
func EstimateTokens(chars int) int {
	n := int(math.Round(float64(chars) / 3.5))
	if n < 1 {
		return 1
	}
	return n
}

// NoFailuresResult is the early, valid terminal state for a log with zero
// flagged lines.
func NoFailuresResult() domain.AnalysisResult {
	return domain.AnalysisResult{
		RootCauses: []domain.RootCause{},
		Summary:    []string{"No errors found in build log"},
	}
}
