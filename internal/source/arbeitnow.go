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

const arbeitnowBaseURL = "https://www.arbeitnow.com"

// arbeitnowListing is one element of the Arbeitnow job-board API response.
type arbeitnowListing struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	CreatedAt   int64    `json:"created_at"`
}

type arbeitnowResponse struct {
	Data []arbeitnowListing `json:"data"`
}

// Arbeitnow fetches listings from the free Arbeitnow board API. Like
// RemoteOK, the API returns the whole board and keywords are matched
// client-side against title and tags.
type Arbeitnow struct {
	baseURL string
	client  *http.Client
}

// NewArbeitnow creates the Arbeitnow adapter.
func NewArbeitnow(client *http.Client) *Arbeitnow {
	return &Arbeitnow{baseURL: arbeitnowBaseURL, client: client}
}

func (s *Arbeitnow) Name() string { return "arbeitnow" }

func (s *Arbeitnow) Fetch(ctx context.Context, keywords []string, location string) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/job-board-api", nil)
	if err != nil {
		return nil, fmt.Errorf("arbeitnow fetch: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arbeitnow fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(resp, fmt.Errorf("arbeitnow fetch: unexpected status %d", resp.StatusCode))
	}

	var anResp arbeitnowResponse
	if err := json.NewDecoder(resp.Body).Decode(&anResp); err != nil {
		return nil, fmt.Errorf("arbeitnow fetch: %w", err)
	}

	var jobs []model.Job
	for _, l := range anResp.Data {
		if l.URL == "" || l.Title == "" {
			continue
		}
		if !matchesAny(keywords, l.Title, strings.Join(l.Tags, " ")) {
			continue
		}

		loc := l.Location
		if l.Remote {
			loc = "Remote"
		}

		jobs = append(jobs, model.Job{
			Title:         l.Title,
			Company:       l.CompanyName,
			Location:      loc,
			Type:          normalize.JobType(strings.Join(l.JobTypes, " ")),
			SalaryDisplay: "Not listed",
			Source:        s.Name(),
			URL:           l.URL,
			Description:   normalize.Snippet(normalize.StripHTML(l.Description), 200),
			PostedAt:      normalize.FromUnix(l.CreatedAt),
		})
	}

	return jobs, nil
}
