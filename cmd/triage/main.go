// Command triage analyzes a single CI build log from the command line and
// writes the result artifacts to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/user/build-triage/internal/adapter/artifact"
	"github.com/user/build-triage/internal/adapter/llm"
	"github.com/user/build-triage/internal/analysis"
	"github.com/user/build-triage/internal/domain"
	"github.com/user/build-triage/internal/pkg/logger"
	"github.com/user/build-triage/internal/usecase"
)

func main() {
	var (
		logPath  = flag.String("log", "", "path to the build log file (required)")
		backend  = flag.String("backend", llm.BackendOllama, "llm backend: ollama or openai")
		model    = flag.String("model", "", "model name (backend default when empty)")
		outDir   = flag.String("out", "triage-out", "directory for result artifacts")
		repo     = flag.String("repo", "", "repository override for build info")
		branch   = flag.String("branch", "", "branch override for build info")
		commit   = flag.String("commit", "", "commit override for build info")
		timeout  = flag.Duration("timeout", 3*time.Minute, "collaborator call timeout")
		logLevel = flag.String("log-level", "warn", "log level: debug, info, warn, error")

		window      = flag.Int("window", 8, "cluster proximity window in lines")
		contextSize = flag.Int("context", 5, "context lines around each cluster")
		maxSections = flag.Int("max-sections", 10, "maximum number of extracted sections")
		maxChars    = flag.Int("max-chars", 12000, "character budget across all sections")
	)
	flag.Parse()

	log := logger.New(*logLevel)
	slog.SetDefault(log)

	if *logPath == "" {
		fmt.Fprintln(os.Stderr, "error: -log is required")
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot read log file: %v\n", err)
		os.Exit(2)
	}

	generator, err := llm.New(*backend, llm.Options{
		Model:        *model,
		OllamaURL:    os.Getenv("OLLAMA_URL"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	analyzer := analysis.New(analysis.Options{
		Window:      *window,
		Context:     *contextSize,
		MaxSections: *maxSections,
		MaxChars:    *maxChars,
	})
	uc := usecase.NewTriageBuildUseCase(analyzer, generator, nil, nil, log, *timeout)

	overrides := map[string]string{"repo": *repo, "branch": *branch, "commit": *commit}
	outcome := uc.Triage(context.Background(), string(data), overrides)

	writer, err := artifact.NewWriter(*outDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if err := writer.WriteOutcome(outcome); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing artifacts: %v\n", err)
		os.Exit(2)
	}

	printReport(outcome, writer.Dir())

	// A clean log is the only analysis result treated as a non-zero exit; it
	// usually means triage was invoked on the wrong artifact.
	if outcome.Status == domain.StatusNoFailures {
		os.Exit(1)
	}
}

func printReport(outcome domain.TriageOutcome, dir string) {
	divider := "============================================================"

	fmt.Println(divider)
	fmt.Printf("Status: %s\n", outcome.Status)
	if outcome.FallbackReason != "" {
		fmt.Printf("Fallback reason: %s\n", outcome.FallbackReason)
	}
	fmt.Println(divider)

	fmt.Println("Summary:")
	for _, line := range outcome.Result.Summary {
		fmt.Printf("  - %s\n", line)
	}

	if len(outcome.Result.RootCauses) > 0 {
		fmt.Println("\nRoot causes:")
		for i, rc := range outcome.Result.RootCauses {
			fmt.Printf("  %d. %s [%s]\n", i+1, rc.Cause, rc.Confidence)
			for _, ev := range rc.Evidence {
				fmt.Printf("     line %d: %s\n", ev.Line, ev.Snippet)
			}
			if rc.NextAction != "" {
				fmt.Printf("     next: %s\n", rc.NextAction)
			}
		}
	}

	meta := outcome.Metadata
	fmt.Println(divider)
	fmt.Printf("Sections: %d   Prompt: %d chars (of %d, saved %d, ~%d tokens)\n",
		meta.SectionCount, meta.PromptChars, meta.FullChars, meta.SavedChars, meta.EstimatedTokenSavings)
	fmt.Printf("Artifacts: %s\n", dir)
}
