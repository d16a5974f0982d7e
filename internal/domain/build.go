package domain

// BuildFailure is a build-failure notification received from CI. Either Log
// carries the raw log text inline or LogPath points at a readable file.
type BuildFailure struct {
	Log      string `json:"log,omitempty"`
	LogPath  string `json:"log_path,omitempty"`
	Repo     string `json:"repo,omitempty"`
	Branch   string `json:"branch,omitempty"`
	Commit   string `json:"commit,omitempty"`
	BuildURL string `json:"build_url,omitempty"`
}

// Overrides returns caller-supplied build metadata. These take precedence
// over values scanned from the log header.
func (b BuildFailure) Overrides() map[string]string {
	m := make(map[string]string)
	if b.Repo != "" {
		m["repo"] = b.Repo
	}
	if b.Branch != "" {
		m["branch"] = b.Branch
	}
	if b.Commit != "" {
		m["commit"] = b.Commit
	}
	return m
}

// PullRequest holds the fields of a GitHub pull request relevant to
// summarization.
type PullRequest struct {
	URL     string
	HTMLURL string
	Number  int
	Title   string
	Body    string
	Author  string
	BaseRef string
	HeadRef string
	Draft   bool
}
