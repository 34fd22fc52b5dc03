package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kakarot0105/JobBot/internal/model"
	"github.com/kakarot0105/JobBot/internal/normalize"
)

const findworkBaseURL = "https://findwork.dev"

// findworkResult is one result in the FindWork API response.
type findworkResult struct {
	Role           string `json:"role"`
	CompanyName    string `json:"company_name"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
	URL            string `json:"url"`
	Text           string `json:"text"`
	DatePosted     string `json:"date_posted"`
}

type findworkResponse struct {
	Results []findworkResult `json:"results"`
}

// FindWork fetches listings from the FindWork.dev API (developer and data
// roles). The search endpoint filters server-side by keyword.
type FindWork struct {
	baseURL string
	client  *http.Client
}

// NewFindWork creates the FindWork adapter.
func NewFindWork(client *http.Client) *FindWork {
	return &FindWork{baseURL: findworkBaseURL, client: client}
}

func (s *FindWork) Name() string { return "findwork" }

func (s *FindWork) Fetch(ctx context.Context, keywords []string, location string) ([]model.Job, error) {
	params := url.Values{}
	params.Set("search", strings.Join(keywords, " "))
	params.Set("sort_by", "relevance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/jobs/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("findwork fetch: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("findwork fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(resp, fmt.Errorf("findwork fetch: unexpected status %d", resp.StatusCode))
	}

	var fwResp findworkResponse
	if err := json.NewDecoder(resp.Body).Decode(&fwResp); err != nil {
		return nil, fmt.Errorf("findwork fetch: %w", err)
	}

	jobs := make([]model.Job, 0, len(fwResp.Results))
	for _, r := range fwResp.Results {
		if r.URL == "" || r.Role == "" {
			continue
		}

		loc := r.Location
		if loc == "" {
			loc = "Remote"
		}

		jobs = append(jobs, model.Job{
			Title:         r.Role,
			Company:       r.CompanyName,
			Location:      loc,
			Type:          normalize.JobType(r.EmploymentType),
			SalaryDisplay: "Not listed",
			Source:        "FindWork",
			URL:           r.URL,
			Description:   normalize.Snippet(normalize.StripHTML(r.Text), 200),
			PostedAt:      normalize.ParseTime(r.DatePosted),
		})
	}

	return jobs, nil
}
