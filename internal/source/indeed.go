package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kakarot0105/JobBot/internal/model"
	"github.com/kakarot0105/JobBot/internal/normalize"
)

const indeedBaseURL = "https://www.indeed.com"

// indeedRSS mirrors the subset of the Indeed RSS feed the adapter reads.
type indeedRSS struct {
	Items []indeedItem `xml:"channel>item"`
}

type indeedItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Indeed fetches listings via the Indeed RSS feed, which needs no API key.
// Item titles arrive as "Title - Company" and are split on the last dash.
type Indeed struct {
	baseURL string
	client  *http.Client
}

// NewIndeed creates the Indeed RSS adapter.
func NewIndeed(client *http.Client) *Indeed {
	return &Indeed{baseURL: indeedBaseURL, client: client}
}

func (s *Indeed) Name() string { return "indeed" }

func (s *Indeed) Fetch(ctx context.Context, keywords []string, location string) ([]model.Job, error) {
	loc := location
	if loc == "" {
		loc = "Remote"
	}
	params := url.Values{}
	params.Set("q", strings.Join(keywords, " "))
	params.Set("l", strings.ReplaceAll(loc, ",", " "))
	params.Set("sort", "date")
	params.Set("limit", "20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/rss?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("indeed fetch: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("indeed fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(resp, fmt.Errorf("indeed fetch: unexpected status %d", resp.StatusCode))
	}

	var feed indeedRSS
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("indeed fetch: %w", err)
	}

	jobs := make([]model.Job, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" || item.Title == "" {
			continue
		}

		title := item.Title
		company := "Indeed Job"
		if idx := strings.LastIndex(title, " - "); idx >= 0 {
			company = strings.TrimSpace(title[idx+3:])
			title = strings.TrimSpace(title[:idx])
		}

		jobs = append(jobs, model.Job{
			Title:         title,
			Company:       company,
			Location:      loc,
			Type:          model.JobTypeFullTime,
			SalaryDisplay: "Not listed",
			Source:        "Indeed",
			URL:           item.Link,
			Description:   normalize.Snippet(normalize.StripHTML(item.Description), 200),
			PostedAt:      normalize.ParseTime(item.PubDate),
		})
	}

	return jobs, nil
}
