package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"judgeapi/config"
)

// EventSink accepts fire-and-forget "an event happened" messages for the
// notification/alert collaborator.
type EventSink interface {
	Publish(event string, payload map[string]interface{})
}

// Notifier is the process-wide sink, replaced in tests
var Notifier EventSink = noopSink{}

// InitNotifier wires the sink against the configured webhook URL
func InitNotifier() {
	if config.WebhookURL != "" {
		Notifier = &webhookSink{
			url:    config.WebhookURL,
			client: &http.Client{Timeout: 5 * time.Second},
		}
	}
}

type noopSink struct{}

func (noopSink) Publish(event string, payload map[string]interface{}) {}

type webhookSink struct {
	url    string
	client *http.Client
}

// Publish posts the event asynchronously; delivery failures are logged and
// never surface to the caller.
func (s *webhookSink) Publish(event string, payload map[string]interface{}) {
	go func() {
		body := map[string]interface{}{
			"event":   event,
			"payload": payload,
			"at":      time.Now().Format(time.RFC3339),
		}
		data, err := json.Marshal(body)
		if err != nil {
			log.Printf("Failed to marshal event %s: %v", event, err)
			return
		}
		resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(data))
		if err != nil {
			log.Printf("Failed to publish event %s: %v", event, err)
			return
		}
		resp.Body.Close()
	}()
}
