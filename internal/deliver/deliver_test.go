package deliver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/kakarot0105/JobBot/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore keeps delivery records in a map. Only the delivery methods matter
// here; profiles and run markers are unused by the tracker.
type memStore struct {
	delivered map[string]bool // key: url|recipient
}

func newMemStore() *memStore {
	return &memStore{delivered: make(map[string]bool)}
}

func (s *memStore) key(url, rid string) string { return url + "|" + rid }

func (s *memStore) IsDelivered(url, rid string) (bool, error) {
	return s.delivered[s.key(url, rid)], nil
}

func (s *memStore) RecordDelivery(job model.Job, rid string) error {
	s.delivered[s.key(job.URL, rid)] = true
	return nil
}

func (s *memStore) HasRunToday(string) (bool, error) { return false, nil }

func (s *memStore) MarkRun(string) error { return nil }

func (s *memStore) GetProfile(string) (*model.PreferenceProfile, error) { return nil, nil }

func (s *memStore) SetProfile(string, model.PreferenceProfile) error { return nil }

// recordingNotifier tracks sent jobs and can fail specific URLs.
type recordingNotifier struct {
	sent    []string
	failURL string
}

func (n *recordingNotifier) Send(_ context.Context, _ string, job model.Job) error {
	if job.URL == n.failURL {
		return errors.New("send failed")
	}
	n.sent = append(n.sent, job.URL)
	return nil
}

func jobs(n int) []model.Job {
	out := make([]model.Job, n)
	for i := range out {
		out[i] = model.Job{
			Title: fmt.Sprintf("Job %d", i),
			URL:   fmt.Sprintf("https://example.com/j/%d", i),
		}
	}
	return out
}

func TestDeliver_AtMostOnceAcrossRuns(t *testing.T) {
	st := newMemStore()
	n := &recordingNotifier{}
	tr := NewTracker(st, n, 10, 0, discardLogger())

	batch := jobs(3)
	count, err := tr.Deliver(context.Background(), "chat-1", batch)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if count != 3 {
		t.Fatalf("first run delivered %d, want 3", count)
	}

	// Second run with the same batch: everything is already recorded.
	count, err = tr.Deliver(context.Background(), "chat-1", batch)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if count != 0 {
		t.Errorf("second run delivered %d, want 0", count)
	}
	if len(n.sent) != 3 {
		t.Errorf("notifier called %d times total, want 3", len(n.sent))
	}
}

func TestDeliver_CapStopsFreshDeliveries(t *testing.T) {
	st := newMemStore()
	n := &recordingNotifier{}
	tr := NewTracker(st, n, 2, 0, discardLogger())

	count, err := tr.Deliver(context.Background(), "chat-1", jobs(5))
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if count != 2 {
		t.Fatalf("delivered %d, want 2 (cap)", count)
	}
	// Highest-ranked jobs go first.
	want := []string{"https://example.com/j/0", "https://example.com/j/1"}
	for i, url := range want {
		if n.sent[i] != url {
			t.Errorf("sent[%d] = %s, want %s", i, n.sent[i], url)
		}
	}
}

func TestDeliver_SkippedDuplicatesDoNotCountTowardCap(t *testing.T) {
	st := newMemStore()
	n := &recordingNotifier{}
	tr := NewTracker(st, n, 2, 0, discardLogger())

	batch := jobs(4)
	// Pre-record the first two as already delivered.
	st.RecordDelivery(batch[0], "chat-1")
	st.RecordDelivery(batch[1], "chat-1")

	count, err := tr.Deliver(context.Background(), "chat-1", batch)
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if count != 2 {
		t.Fatalf("delivered %d, want 2 (skips are free)", count)
	}
	if len(n.sent) != 2 || n.sent[0] != batch[2].URL || n.sent[1] != batch[3].URL {
		t.Errorf("sent = %v, want jobs 2 and 3", n.sent)
	}
}

func TestDeliver_SendFailureLeavesJobEligible(t *testing.T) {
	st := newMemStore()
	batch := jobs(3)
	n := &recordingNotifier{failURL: batch[1].URL}
	tr := NewTracker(st, n, 10, 0, discardLogger())

	count, err := tr.Deliver(context.Background(), "chat-1", batch)
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if count != 2 {
		t.Fatalf("delivered %d, want 2 (one send failed)", count)
	}

	// The failed job has no record and goes out on the next run.
	sent, _ := st.IsDelivered(batch[1].URL, "chat-1")
	if sent {
		t.Fatal("failed send must not be recorded")
	}

	n.failURL = ""
	count, err = tr.Deliver(context.Background(), "chat-1", batch)
	if err != nil {
		t.Fatalf("second Deliver: %v", err)
	}
	if count != 1 {
		t.Errorf("second run delivered %d, want 1 (the previously failed job)", count)
	}
}

func TestDeliver_ContextCancelledStopsBatch(t *testing.T) {
	st := newMemStore()
	n := &recordingNotifier{}
	tr := NewTracker(st, n, 10, 0, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.Deliver(ctx, "chat-1", jobs(3))
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(n.sent) != 0 {
		t.Errorf("notifier called %d times after cancel, want 0", len(n.sent))
	}
}
