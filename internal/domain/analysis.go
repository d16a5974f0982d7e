package domain

// Confidence levels a root cause may carry.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Failure categories assigned by the section categorizer.
const (
	CategoryLinkerMissing   = "linker_missing"
	CategoryLinkerUndefined = "linker_undefined"
	CategoryCMakeConfig     = "cmake_config"
	CategoryCompilation     = "compilation"
	CategoryOther           = "other"
)

// Section is a context-bounded excerpt of the build log built from one
// cluster of flagged lines. Immutable once produced by the extractor.
type Section struct {
	LineNumber int      `json:"line_number"` // 1-indexed head of the cluster
	Headline   string   `json:"headline"`    // text of the head line
	Lines      []string `json:"lines"`       // ordered context slice
	Truncated  bool     `json:"truncated"`   // fewer lines than requested context
}

// Evidence ties a root cause back to a concrete line in the source log.
type Evidence struct {
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

// RootCause is one identified cause of the build failure.
type RootCause struct {
	Cause      string     `json:"cause"`
	Evidence   []Evidence `json:"evidence"`
	Confidence string     `json:"confidence"`
	NextAction string     `json:"next_action"`
}

// AnalysisResult is the final, always schema-valid outcome of a triage run.
// Every root cause carries at least one evidence entry.
type AnalysisResult struct {
	RootCauses []RootCause `json:"root_causes"`
	Summary    []string    `json:"summary"`
}

// RunMetadata records what a triage run did. It is an output artifact only;
// nothing in the core pipeline consumes it.
type RunMetadata struct {
	Backend               string            `json:"backend"`
	Model                 string            `json:"model"`
	FullChars             int               `json:"full_chars"`
	PromptChars           int               `json:"prompt_chars"`
	SavedChars            int               `json:"saved_chars"`
	EstimatedTokenSavings int               `json:"estimated_token_savings"`
	SectionCount          int               `json:"section_count"`
	Categories            map[string]int    `json:"categories"`
	BuildInfo             map[string]string `json:"build_info"`
}

// Triage run statuses.
type TriageStatus string

const (
	StatusAnalyzed   TriageStatus = "analyzed"    // collaborator response validated
	StatusFallback   TriageStatus = "fallback"    // deterministic reconstruction used
	StatusNoFailures TriageStatus = "no_failures" // zero flagged lines, collaborator never invoked
)

// TriageOutcome bundles the result with its artifacts for reporting and
// notification collaborators.
type TriageOutcome struct {
	Status         TriageStatus   `json:"status"`
	Result         AnalysisResult `json:"result"`
	Metadata       RunMetadata    `json:"metadata"`
	Sections       []Section      `json:"sections"`
	Prompt         string         `json:"-"`
	FallbackReason string         `json:"fallback_reason,omitempty"`
}
