package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/kakarot0105/JobBot/internal/model"
	"github.com/kakarot0105/JobBot/internal/normalize"
)

const linkedinBaseURL = "https://www.linkedin.com"

// linkedInMaxCards caps how many job cards are taken from one results page.
const linkedInMaxCards = 15

// LinkedIn public job-search pages carry structured card markup that can be
// extracted without authentication.
var (
	linkedInTitleRegex    = regexp.MustCompile(`<a[^>]*class="[^"]*base-card__full-link[^"]*"[^>]*href="([^"]*)"[^>]*>\s*<span[^>]*>([^<]*)</span>`)
	linkedInCompanyRegex  = regexp.MustCompile(`<h4[^>]*class="[^"]*base-search-card__subtitle[^"]*"[^>]*>\s*<a[^>]*>([^<]*)</a>`)
	linkedInLocationRegex = regexp.MustCompile(`<span[^>]*class="[^"]*job-search-card__location[^"]*"[^>]*>([^<]*)</span>`)
)

// LinkedIn scrapes the public (unauthenticated) LinkedIn job search page.
// It is the most fragile of the adapters: markup changes surface as zero
// results, never as errors outside this adapter.
type LinkedIn struct {
	baseURL string
	client  *http.Client
}

// NewLinkedIn creates the LinkedIn public-search adapter.
func NewLinkedIn(client *http.Client) *LinkedIn {
	return &LinkedIn{baseURL: linkedinBaseURL, client: client}
}

func (s *LinkedIn) Name() string { return "linkedin" }

func (s *LinkedIn) Fetch(ctx context.Context, keywords []string, location string) ([]model.Job, error) {
	loc := location
	if loc == "" {
		loc = "United States"
	}
	params := url.Values{}
	params.Set("keywords", strings.Join(keywords, " "))
	params.Set("location", loc)
	params.Set("f_WT", "2") // remote work type
	params.Set("position", "1")
	params.Set("pageNum", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/jobs/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("linkedin fetch: %w", err)
	}
	// A browser user agent is required; the default Go agent gets a login wall.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("linkedin fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(resp, fmt.Errorf("linkedin fetch: unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("linkedin fetch: %w", err)
	}
	page := string(body)

	titles := linkedInTitleRegex.FindAllStringSubmatch(page, linkedInMaxCards)
	companies := linkedInCompanyRegex.FindAllStringSubmatch(page, -1)
	locations := linkedInLocationRegex.FindAllStringSubmatch(page, -1)

	jobs := make([]model.Job, 0, len(titles))
	for i, m := range titles {
		link, title := m[1], strings.TrimSpace(m[2])
		// Tracking parameters vary per request; strip them so the URL is a
		// stable identity key.
		if idx := strings.Index(link, "?"); idx >= 0 {
			link = link[:idx]
		}
		if link == "" || title == "" {
			continue
		}

		company := "N/A"
		if i < len(companies) {
			company = strings.TrimSpace(companies[i][1])
		}
		cardLoc := "Remote"
		if i < len(locations) {
			cardLoc = strings.TrimSpace(locations[i][1])
		}

		jobs = append(jobs, model.Job{
			Title:         normalize.StripHTML(title),
			Company:       normalize.StripHTML(company),
			Location:      cardLoc,
			Type:          model.JobTypeFullTime,
			SalaryDisplay: "Not listed",
			Source:        "LinkedIn",
			URL:           link,
		})
	}

	return jobs, nil
}
