// Package github implements the source-control collaborator boundary:
// webhook payload extraction and a minimal REST client for PR enrichment.
package github

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/build-triage/internal/domain"
)

// Webhook header names.
const (
	EventHeader     = "X-GitHub-Event"
	SignatureHeader = "X-Hub-Signature-256"
	DeliveryHeader  = "X-GitHub-Delivery"
)

// PR actions that trigger summarization; everything else is acknowledged
// and ignored.
var SummarizedActions = map[string]bool{
	"opened":           true,
	"reopened":         true,
	"synchronize":      true,
	"ready_for_review": true,
}

// VerifySignature checks a GitHub sha256 HMAC signature over the raw payload
// bytes using a constant-time comparison.
func VerifySignature(secret, signature string, payload []byte) bool {
	if !strings.HasPrefix(signature, "sha256=") {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	computed := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(computed))
}

type pullRequestPayload struct {
	Action      string `json:"action"`
	Zen         string `json:"zen"`
	PullRequest *struct {
		URL     string `json:"url"`
		HTMLURL string `json:"html_url"`
		Number  int    `json:"number"`
		Title   string `json:"title"`
		Body    string `json:"body"`
		Draft   bool   `json:"draft"`
		User    struct {
			Login string `json:"login"`
		} `json:"user"`
		Base struct {
			Ref string `json:"ref"`
		} `json:"base"`
		Head struct {
			Ref string `json:"ref"`
		} `json:"head"`
	} `json:"pull_request"`
}

// WebhookEvent is a decoded GitHub webhook body.
type WebhookEvent struct {
	Action      string
	Zen         string
	PullRequest *domain.PullRequest
}

// ParseWebhook decodes a webhook payload into the fields this service acts on.
func ParseWebhook(payload []byte) (WebhookEvent, error) {
	var p pullRequestPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return WebhookEvent{}, fmt.Errorf("decoding webhook payload: %w", err)
	}

	ev := WebhookEvent{Action: p.Action, Zen: p.Zen}
	if p.PullRequest != nil {
		author := p.PullRequest.User.Login
		if author == "" {
			author = "unknown"
		}
		ev.PullRequest = &domain.PullRequest{
			URL:     p.PullRequest.URL,
			HTMLURL: p.PullRequest.HTMLURL,
			Number:  p.PullRequest.Number,
			Title:   p.PullRequest.Title,
			Body:    p.PullRequest.Body,
			Author:  author,
			BaseRef: p.PullRequest.Base.Ref,
			HeadRef: p.PullRequest.Head.Ref,
			Draft:   p.PullRequest.Draft,
		}
	}
	return ev, nil
}
