package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIndeed_Fetch(t *testing.T) {
	feed := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Indeed Jobs</title>
    <item>
      <title>Data Engineer - Acme Corp</title>
      <link>https://www.indeed.com/viewjob?jk=abc123</link>
      <description>&lt;p&gt;Build pipelines.&lt;/p&gt;</description>
      <pubDate>Mon, 24 Aug 2026 09:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Plain Title Without Company</title>
      <link>https://www.indeed.com/viewjob?jk=def456</link>
      <description>No dash in title.</description>
      <pubDate>Sun, 23 Aug 2026 09:00:00 +0000</pubDate>
    </item>
    <item>
      <title>No Link Item</title>
      <link></link>
    </item>
  </channel>
</rss>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rss" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "data engineer" {
			t.Errorf("query q = %q", q)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feed))
	}))
	defer srv.Close()

	s := NewIndeed(srv.Client())
	s.baseURL = srv.URL

	jobs, err := s.Fetch(context.Background(), []string{"data engineer"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs (linkless item skipped), got %d", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Data Engineer" {
		t.Errorf("title = %q, want company split off", j.Title)
	}
	if j.Company != "Acme Corp" {
		t.Errorf("company = %q", j.Company)
	}
	if j.URL != "https://www.indeed.com/viewjob?jk=abc123" {
		t.Errorf("url = %q", j.URL)
	}
	if j.Description != "Build pipelines." {
		t.Errorf("description = %q", j.Description)
	}
	if j.PostedAt == nil || j.PostedAt.Day() != 24 {
		t.Errorf("posted at = %v", j.PostedAt)
	}

	// No " - " separator keeps the whole title and a placeholder company.
	if jobs[1].Title != "Plain Title Without Company" {
		t.Errorf("title = %q", jobs[1].Title)
	}
	if jobs[1].Company != "Indeed Job" {
		t.Errorf("company = %q", jobs[1].Company)
	}
}

func TestIndeed_FetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewIndeed(srv.Client())
	s.baseURL = srv.URL

	_, err := s.Fetch(context.Background(), []string{"go"}, "")
	if err == nil {
		t.Fatal("expected error for HTTP 403, got nil")
	}
}
