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

// StoryRef is the slice of the content catalog the judging subsystem needs
type StoryRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	URL   string `json:"url"`
}

// ContentResolver looks up submission display metadata from the content catalog
type ContentResolver interface {
	GetStories(ids []string) (map[string]StoryRef, error)
}

// Content is the process-wide resolver, replaced in tests
var Content ContentResolver = noopContent{}

// InitContent wires the resolver against the configured catalog URL.
// Without one, lookups degrade to empty metadata instead of failing.
func InitContent() {
	if config.ContentAPIURL != "" {
		Content = &httpContent{
			baseURL: strings.TrimRight(config.ContentAPIURL, "/"),
			client:  &http.Client{Timeout: 5 * time.Second},
		}
	}
}

type noopContent struct{}

func (noopContent) GetStories(ids []string) (map[string]StoryRef, error) {
	return map[string]StoryRef{}, nil
}

type httpContent struct {
	baseURL string
	client  *http.Client
}

// GetStories fetches all requested stories in a single batch call
func (c *httpContent) GetStories(ids []string) (map[string]StoryRef, error) {
	if len(ids) == 0 {
		return map[string]StoryRef{}, nil
	}

	endpoint := fmt.Sprintf("%s/stories?ids=%s", c.baseURL, url.QueryEscape(strings.Join(ids, ",")))
	resp, err := c.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch stories: %s", resp.Status)
	}

	var refs []StoryRef
	if err := json.NewDecoder(resp.Body).Decode(&refs); err != nil {
		return nil, fmt.Errorf("failed to decode stories: %w", err)
	}

	byID := make(map[string]StoryRef, len(refs))
	for _, ref := range refs {
		byID[ref.ID] = ref
	}
	return byID, nil
}
