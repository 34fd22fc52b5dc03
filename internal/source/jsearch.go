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

const jsearchBaseURL = "https://jsearch.p.rapidapi.com"

// jsearchItem is one result in the JSearch API response.
type jsearchItem struct {
	Title          string  `json:"job_title"`
	Employer       string  `json:"employer_name"`
	City           string  `json:"job_city"`
	State          string  `json:"job_state"`
	MinSalary      float64 `json:"job_min_salary"`
	MaxSalary      float64 `json:"job_max_salary"`
	EmploymentType string  `json:"job_employment_type"`
	Publisher      string  `json:"job_publisher"`
	ApplyLink      string  `json:"job_apply_link"`
	GoogleLink     string  `json:"job_google_link"`
	Description    string  `json:"job_description"`
	PostedAtUTC    string  `json:"job_posted_at_datetime_utc"`
}

type jsearchResponse struct {
	Data []jsearchItem `json:"data"`
}

// JSearch fetches listings from the JSearch RapidAPI aggregator, which
// fronts LinkedIn, Indeed, Glassdoor and ZipRecruiter. Requires an API key.
type JSearch struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewJSearch creates the JSearch adapter.
func NewJSearch(apiKey string, client *http.Client) *JSearch {
	return &JSearch{baseURL: jsearchBaseURL, apiKey: apiKey, client: client}
}

func (s *JSearch) Name() string { return "jsearch" }

// Fetch queries one page of results for the keyword/location pair. The
// aggregator filters server-side, so no client-side keyword pass is needed.
func (s *JSearch) Fetch(ctx context.Context, keywords []string, location string) ([]model.Job, error) {
	loc := location
	if loc == "" {
		loc = "remote"
	}
	query := strings.Join(keywords, " ") + " " + loc

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", "1")
	params.Set("date_posted", "week")
	if containsFold(location, "remote") {
		params.Set("remote_jobs_only", "true")
	} else {
		params.Set("remote_jobs_only", "false")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("jsearch fetch: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", s.apiKey)
	req.Header.Set("X-RapidAPI-Host", "jsearch.p.rapidapi.com")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(resp, fmt.Errorf("jsearch fetch: unexpected status %d", resp.StatusCode))
	}

	var jsResp jsearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&jsResp); err != nil {
		return nil, fmt.Errorf("jsearch fetch: %w", err)
	}

	jobs := make([]model.Job, 0, len(jsResp.Data))
	for _, item := range jsResp.Data {
		jobURL := item.ApplyLink
		if jobURL == "" {
			jobURL = item.GoogleLink
		}
		if jobURL == "" {
			continue
		}

		loc := item.City
		if item.State != "" {
			if loc != "" {
				loc += ", "
			}
			loc += item.State
		}
		if loc == "" {
			loc = "Remote"
		}

		display := normalize.SalaryRange(int(item.MinSalary), int(item.MaxSalary))
		jobs = append(jobs, model.Job{
			Title:         item.Title,
			Company:       item.Employer,
			Location:      loc,
			Type:          normalize.JobType(expandEmploymentType(item.EmploymentType)),
			SalaryDisplay: display,
			SalaryFloor:   normalize.SalaryFloor(display),
			Source:        publisherSource(item.Publisher),
			URL:           jobURL,
			Description:   normalize.Snippet(item.Description, 200),
			PostedAt:      normalize.ParseTime(item.PostedAtUTC),
		})
	}

	return jobs, nil
}

// expandEmploymentType rewrites JSearch's compact enum ("FULLTIME",
// "CONTRACTOR", "PARTTIME") into forms the shared lexicon recognizes.
func expandEmploymentType(t string) string {
	r := strings.NewReplacer("FULLTIME", "full-time", "CONTRACTOR", "contract", "PARTTIME", "part-time")
	return r.Replace(t)
}

// publisherSource attributes a listing to the board it was published on,
// falling back to the raw publisher name.
func publisherSource(publisher string) string {
	switch {
	case containsFold(publisher, "indeed"):
		return "Indeed"
	case containsFold(publisher, "glassdoor"):
		return "Glassdoor"
	case containsFold(publisher, "linkedin"):
		return "LinkedIn"
	case containsFold(publisher, "ziprecruiter"):
		return "ZipRecruiter"
	case publisher != "":
		return publisher
	default:
		return "JSearch"
	}
}
