package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Notifier posts a generated report to an external channel.
type Notifier interface {
	NotifyReport(title, body string) error
}

// webhookNotifier posts reports to a Slack-compatible incoming webhook.
type webhookNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewWebhookNotifier creates a Notifier that posts to the given webhook URL.
func NewWebhookNotifier(webhookURL string) Notifier {
	return &webhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

type webhookMessage struct {
	Blocks []webhookBlock `json:"blocks"`
}

type webhookBlock struct {
	Type string       `json:"type"`
	Text *webhookText `json:"text,omitempty"`
}

type webhookText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NotifyReport sends the report text as a message with a plain-text header
// and the report body in a preformatted section.
func (n *webhookNotifier) NotifyReport(title, body string) error {
	if body == "" {
		return nil
	}

	msg := webhookMessage{
		Blocks: []webhookBlock{
			{
				Type: "header",
				Text: &webhookText{Type: "plain_text", Text: title},
			},
			{
				Type: "section",
				Text: &webhookText{Type: "mrkdwn", Text: "```" + body + "```"},
			},
		},
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling webhook message: %w", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
