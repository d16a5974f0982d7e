// Package slack implements the chat-notification collaborator via the Slack
// Web API.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Client posts messages through chat.postMessage and implements
// domain.Notifier.
type Client struct {
	baseURL string
	token   string
	logger  *slog.Logger
	client  *http.Client
}

// NewClient creates a Slack client. baseURL is overridable for tests.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://slack.com/api"
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		logger:  logger.With("component", "slack_client"),
		client:  &http.Client{},
	}
}

type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	TS    string `json:"ts"`
	Error string `json:"error"`
}

// PostMessage posts text to a channel and returns the message timestamp.
func (c *Client) PostMessage(ctx context.Context, channel, text string) (string, error) {
	body, err := json.Marshal(postMessageRequest{Channel: channel, Text: text})
	if err != nil {
		return "", fmt.Errorf("marshaling message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("slack returned status %d", resp.StatusCode)
	}

	var pm postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&pm); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if !pm.OK {
		return "", fmt.Errorf("slack rejected message: %s", pm.Error)
	}

	c.logger.Info("message posted", "channel", channel, "ts", pm.TS)
	return pm.TS, nil
}
