package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oceaniadigital/lead-relay/pkg/logging"
)

// WebhookSink mirrors selected event types to a chat-notification webhook as
// a JSON POST. Delivery is best-effort: failures are logged locally and never
// surface to the request path.
type WebhookSink struct {
	url    string
	client *http.Client
	logger *logging.Logger
}

// NewWebhookSink creates a sink posting to url. Returns nil when url is
// empty, so callers can wire it unconditionally.
func NewWebhookSink(url string, logger *logging.Logger) *WebhookSink {
	if url == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Append mirrors the record when its type is of interest.
func (s *WebhookSink) Append(rec Record) {
	if s == nil || !s.shouldMirror(rec) {
		return
	}

	msg := struct {
		Text  string `json:"text"`
		Event Record `json:"event"`
	}{
		Text:  fmt.Sprintf("[lead-relay] %s at %s", rec.Type, rec.Timestamp.Format(time.RFC3339)),
		Event: rec,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("webhook sink: marshal failed", "error", err, "type", rec.Type)
		return
	}

	resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(body))
	if err != nil {
		s.logger.Error("webhook sink: post failed", "error", err, "type", rec.Type)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		s.logger.Error("webhook sink: webhook rejected event", "status", resp.StatusCode, "type", rec.Type)
	}
}

// shouldMirror selects errors, CRM exchanges, and failed responses.
func (s *WebhookSink) shouldMirror(rec Record) bool {
	switch rec.Type {
	case TypeError, TypeZohoRequest, TypeZohoResponse, TypeTLSError:
		return true
	case TypeResponse:
		var p ResponsePayload
		if err := json.Unmarshal(rec.Payload, &p); err != nil {
			return false
		}
		return p.Status >= 400
	default:
		return false
	}
}

var _ Sink = (*WebhookSink)(nil)
