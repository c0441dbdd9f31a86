// Package slack posts critical-incident notifications to Slack via
// incoming webhooks.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/beacon/internal/incident"
)

const (
	maxDescriptionLen = 2000
	httpTimeout       = 10 * time.Second
)

// Notifier sends incident notifications to a Slack webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
	logger     log.Logger
}

// New creates a new Slack notifier. If webhookURL is empty,
// NotifyCreated is a no-op.
func New(webhookURL string, logger log.Logger) *Notifier {
	if logger == nil {
		logger = log.Nop()
	}
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: httpTimeout},
		logger:     logger,
	}
}

// NotifyCreated posts a newly created incident to the configured Slack
// webhook. If no webhook URL is configured, it returns nil immediately.
func (n *Notifier) NotifyCreated(ctx context.Context, in *incident.Incident) error {
	if n.webhookURL == "" {
		return nil
	}

	msg := buildMessage(in)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("slack: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req) //nolint:gosec // G704: webhookURL is from trusted config, not user input
	if err != nil {
		return fmt.Errorf("slack: post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack: webhook returned %d: %s", resp.StatusCode, string(respBody))
	}

	n.logger.Info(ctx, "incident notification sent", "id", in.ID, "severity", in.Severity)
	return nil
}

func buildMessage(in *incident.Incident) map[string]any {
	return map[string]any{
		"blocks": []map[string]any{
			headerBlock(in),
			{"type": "divider"},
			fieldsBlock(in),
			descriptionBlock(in),
			{"type": "divider"},
			contextBlock(in),
		},
	}
}

func headerBlock(in *incident.Incident) map[string]any {
	text := fmt.Sprintf("%s %s Incident: %s", severityEmoji(in.Severity), in.Severity, in.Title)
	return map[string]any{
		"type": "header",
		"text": map[string]any{
			"type": "plain_text",
			"text": text,
		},
	}
}

func fieldsBlock(in *incident.Incident) map[string]any {
	fields := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Service:* %s", in.AffectedService),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Category:* %s", in.Category),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Status:* %s", in.Status),
		},
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Confidence:* %.2f", in.ConfidenceScore),
		},
	}

	return map[string]any{
		"type":   "section",
		"fields": fields,
	}
}

func descriptionBlock(in *incident.Incident) map[string]any {
	text := fmt.Sprintf("*Description*\n\n%s\n\n*Suggested action*\n%s",
		truncate(in.Description, maxDescriptionLen), in.SuggestedAction)

	return map[string]any{
		"type": "section",
		"text": map[string]any{
			"type": "mrkdwn",
			"text": text,
		},
	}
}

func contextBlock(in *incident.Incident) map[string]any {
	elements := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("beacon • incident %d • %s", in.ID, in.CreatedAt.UTC().Format("2006-01-02 15:04 UTC")),
		},
	}

	return map[string]any{
		"type":     "context",
		"elements": elements,
	}
}

func severityEmoji(sev incident.Severity) string {
	switch sev {
	case incident.SeverityCritical:
		return "\U0001f534" // red circle
	case incident.SeverityHigh:
		return "\U0001f7e0" // orange circle
	case incident.SeverityMedium:
		return "\U0001f7e1" // yellow circle
	default:
		return "\U0001f7e2" // green circle
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
