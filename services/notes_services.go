package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"judgeapi/config"
)

// NotesCounter reports note/comment counts per story from the adjacent notes
// collaborator, keyed by (group, judge).
type NotesCounter interface {
	CountNotes(groupID, judgeID string) (map[string]int, error)
}

// Notes is the process-wide counter, replaced in tests
var Notes NotesCounter = noopNotes{}

// InitNotes wires the counter against the configured notes service URL
func InitNotes() {
	if config.NotesAPIURL != "" {
		Notes = &httpNotes{
			baseURL: strings.TrimRight(config.NotesAPIURL, "/"),
			client:  &http.Client{Timeout: 5 * time.Second},
		}
	}
}

type noopNotes struct{}

func (noopNotes) CountNotes(groupID, judgeID string) (map[string]int, error) {
	return map[string]int{}, nil
}

type httpNotes struct {
	baseURL string
	client  *http.Client
}

func (n *httpNotes) CountNotes(groupID, judgeID string) (map[string]int, error) {
	endpoint := fmt.Sprintf("%s/notes/counts?group=%s&judge=%s",
		n.baseURL, url.QueryEscape(groupID), url.QueryEscape(judgeID))
	resp, err := n.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch note counts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch note counts: %s", resp.Status)
	}

	var counts map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&counts); err != nil {
		return nil, fmt.Errorf("failed to decode note counts: %w", err)
	}
	return counts, nil
}
