package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/kakarot0105/JobBot/internal/model"
	"github.com/kakarot0105/JobBot/internal/normalize"
)

const remoteOKBaseURL = "https://remoteok.com"

// remoteOKListing is one element of the RemoteOK API response. The first
// array element is a legal notice with no position, which is skipped.
type remoteOKListing struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	SalaryMin   int      `json:"salary_min"`
	SalaryMax   int      `json:"salary_max"`
	URL         string   `json:"url"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
}

// RemoteOK fetches listings from the RemoteOK public API. The API returns
// the whole board, so keyword filtering happens client-side against the
// position and tags.
type RemoteOK struct {
	baseURL string
	client  *http.Client
}

// NewRemoteOK creates the RemoteOK adapter.
func NewRemoteOK(client *http.Client) *RemoteOK {
	return &RemoteOK{baseURL: remoteOKBaseURL, client: client}
}

func (s *RemoteOK) Name() string { return "remoteok" }

// Fetch retrieves the full board and keeps listings whose position or tags
// contain any keyword.
func (s *RemoteOK) Fetch(ctx context.Context, keywords []string, location string) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api", nil)
	if err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(resp, fmt.Errorf("remoteok fetch: unexpected status %d", resp.StatusCode))
	}

	var listings []remoteOKListing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}

	var jobs []model.Job
	for _, l := range listings {
		if l.Position == "" {
			continue // legal-notice preamble or malformed entry
		}
		if !matchesAny(keywords, l.Position, strings.Join(l.Tags, " ")) {
			continue
		}

		url := l.URL
		if url == "" && l.Slug != "" {
			url = remoteOKBaseURL + "/remote-jobs/" + l.Slug
		}
		if url == "" {
			continue
		}

		loc := l.Location
		if loc == "" {
			loc = "Remote"
		}

		display := normalize.SalaryRange(l.SalaryMin, l.SalaryMax)
		jobs = append(jobs, model.Job{
			Title:         l.Position,
			Company:       l.Company,
			Location:      loc,
			Type:          model.JobTypeFullTime, // board lists full-time roles only
			SalaryDisplay: display,
			SalaryFloor:   normalize.SalaryFloor(display),
			Source:        s.Name(),
			URL:           url,
			Description:   normalize.Snippet(normalize.StripHTML(l.Description), 200),
		})
	}

	return jobs, nil
}
