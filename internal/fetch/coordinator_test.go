package fetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/kakarot0105/JobBot/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubSource returns canned jobs after an optional delay, or fails.
type stubSource struct {
	name  string
	jobs  []model.Job
	err   error
	delay time.Duration
	panic bool
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, _ []string, _ string) ([]model.Job, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.panic {
		panic("stub panic")
	}
	return s.jobs, s.err
}

func job(url string) model.Job {
	return model.Job{Title: "Engineer", URL: url}
}

func TestFetchAll_MergesInRegistrationOrder(t *testing.T) {
	// The first source is slower than the second; the merge must still put
	// its jobs first.
	sources := []model.Source{
		&stubSource{name: "a", jobs: []model.Job{job("https://a/1"), job("https://a/2")}, delay: 50 * time.Millisecond},
		&stubSource{name: "b", jobs: []model.Job{job("https://b/1")}},
	}
	c := NewCoordinator(sources, discardLogger())

	got := c.FetchAll(context.Background(), nil, "")
	want := []string{"https://a/1", "https://a/2", "https://b/1"}
	if len(got) != len(want) {
		t.Fatalf("got %d jobs, want %d", len(got), len(want))
	}
	for i, url := range want {
		if got[i].URL != url {
			t.Errorf("merged[%d] = %s, want %s", i, got[i].URL, url)
		}
	}
}

func TestFetchAll_FailedSourceContributesNothing(t *testing.T) {
	sources := []model.Source{
		&stubSource{name: "a", err: errors.New("boom")},
		&stubSource{name: "b", jobs: []model.Job{job("https://b/1")}},
	}
	c := NewCoordinator(sources, discardLogger())

	got := c.FetchAll(context.Background(), nil, "")
	if len(got) != 1 || got[0].URL != "https://b/1" {
		t.Fatalf("got %v, want only the healthy source's job", got)
	}
}

func TestFetchAll_PanickingSourceIsContained(t *testing.T) {
	sources := []model.Source{
		&stubSource{name: "a", panic: true},
		&stubSource{name: "b", jobs: []model.Job{job("https://b/1")}},
	}
	c := NewCoordinator(sources, discardLogger())

	got := c.FetchAll(context.Background(), nil, "")
	if len(got) != 1 || got[0].URL != "https://b/1" {
		t.Fatalf("got %v, want only the healthy source's job", got)
	}
}

func TestFetchAll_TotalOutageYieldsEmpty(t *testing.T) {
	sources := []model.Source{
		&stubSource{name: "a", err: errors.New("down")},
		&stubSource{name: "b", err: errors.New("down")},
	}
	c := NewCoordinator(sources, discardLogger())

	got := c.FetchAll(context.Background(), nil, "")
	if len(got) != 0 {
		t.Fatalf("got %d jobs, want 0", len(got))
	}
}
