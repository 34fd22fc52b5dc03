package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLinkedIn_Fetch(t *testing.T) {
	page := `<html><body>
<div class="base-card">
  <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/data-engineer-at-acme-123?refId=abc&trackingId=xyz">
    <span class="sr-only">Data Engineer</span>
  </a>
  <h4 class="base-search-card__subtitle"><a href="#">Acme Corp</a></h4>
  <span class="job-search-card__location">Austin, TX</span>
</div>
<div class="base-card">
  <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/backend-engineer-at-initech-456?refId=def">
    <span class="sr-only">Backend Engineer</span>
  </a>
  <h4 class="base-search-card__subtitle"><a href="#">Initech</a></h4>
  <span class="job-search-card__location">Remote</span>
</div>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewLinkedIn(srv.Client())
	s.baseURL = srv.URL

	jobs, err := s.Fetch(context.Background(), []string{"engineer"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Data Engineer" {
		t.Errorf("title = %q", j.Title)
	}
	if j.Company != "Acme Corp" {
		t.Errorf("company = %q", j.Company)
	}
	if j.Location != "Austin, TX" {
		t.Errorf("location = %q", j.Location)
	}
	// Tracking parameters are stripped so the URL is stable across fetches.
	if j.URL != "https://www.linkedin.com/jobs/view/data-engineer-at-acme-123" {
		t.Errorf("url = %q", j.URL)
	}
	if j.Source != "LinkedIn" {
		t.Errorf("source = %q", j.Source)
	}
}

func TestLinkedIn_FetchNoCardsYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>layout changed</body></html>`))
	}))
	defer srv.Close()

	s := NewLinkedIn(srv.Client())
	s.baseURL = srv.URL

	jobs, err := s.Fetch(context.Background(), []string{"engineer"}, "")
	if err != nil {
		t.Fatalf("markup drift must yield zero results, not an error: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected 0 jobs, got %d", len(jobs))
	}
}
