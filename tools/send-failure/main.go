// Command send-failure posts a build log to a running triage service. It is
// a development aid for exercising the /build/failure endpoint end to end.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

func main() {
	targetURL := flag.String("url", "http://localhost:8000/build/failure", "Target triage service URL")
	logPath := flag.String("log", "", "Path to the build log to submit (required)")
	repo := flag.String("repo", "dev/sandbox", "Repository name to report")
	branch := flag.String("branch", "main", "Branch name to report")
	timeout := flag.Duration("timeout", 5*time.Minute, "Request timeout (triage waits on the collaborator)")
	flag.Parse()

	if *logPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*logPath)
	if err != nil {
		log.Fatalf("reading log file: %v", err)
	}

	payload, err := json.Marshal(map[string]string{
		"log":       string(data),
		"repo":      *repo,
		"branch":    *branch,
		"commit":    uuid.NewString()[:8],
		"build_url": fmt.Sprintf("https://ci.local/builds/%s", uuid.NewString()),
	})
	if err != nil {
		log.Fatalf("marshaling payload: %v", err)
	}

	client := &http.Client{Timeout: *timeout}
	resp, err := client.Post(*targetURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("posting build failure: %v", err)
	}
	defer resp.Body.Close()

	log.Printf("status: %s", resp.Status)

	var pretty bytes.Buffer
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		log.Fatalf("decoding response: %v", err)
	}
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		log.Fatalf("formatting response: %v", err)
	}
	fmt.Println(pretty.String())
}
