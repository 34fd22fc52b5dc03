package deliver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kakarot0105/JobBot/internal/model"
)

// Tracker gates ranked jobs through the at-most-once delivery check. A job
// is handed to the notifier only if no delivery record exists for the
// (url, recipient) pair, and the record is written only after the notifier
// succeeds — a failed send leaves the job eligible for a future run.
type Tracker struct {
	store     model.Store
	notifier  model.Notifier
	maxPerRun int           // cap on fresh deliveries per run per recipient
	sendDelay time.Duration // pause between successive sends
	logger    *slog.Logger
}

// NewTracker creates a delivery tracker.
func NewTracker(store model.Store, notifier model.Notifier, maxPerRun int, sendDelay time.Duration, logger *slog.Logger) *Tracker {
	return &Tracker{
		store:     store,
		notifier:  notifier,
		maxPerRun: maxPerRun,
		sendDelay: sendDelay,
		logger:    logger,
	}
}

// Deliver walks jobs in rank order and sends the undelivered ones, stopping
// after maxPerRun fresh deliveries. Skipped jobs carry no record and stay
// eligible forever. Notifier failures are logged and do not abort the batch;
// store errors surface to the caller.
func (t *Tracker) Deliver(ctx context.Context, recipientID string, jobs []model.Job) (int, error) {
	delivered := 0
	for _, job := range jobs {
		if delivered >= t.maxPerRun {
			break
		}
		if err := ctx.Err(); err != nil {
			return delivered, fmt.Errorf("delivering to %s: %w", recipientID, err)
		}

		sent, err := t.store.IsDelivered(job.URL, recipientID)
		if err != nil {
			return delivered, fmt.Errorf("delivering to %s: %w", recipientID, err)
		}
		if sent {
			continue
		}

		if delivered > 0 && t.sendDelay > 0 {
			select {
			case <-ctx.Done():
				return delivered, fmt.Errorf("delivering to %s: %w", recipientID, ctx.Err())
			case <-time.After(t.sendDelay):
			}
		}

		if err := t.notifier.Send(ctx, recipientID, job); err != nil {
			// No record written: the job remains eligible on the next run.
			t.logger.Error("notification failed",
				"recipient", recipientID,
				"title", job.Title,
				"url", job.URL,
				"error", err,
			)
			continue
		}

		if err := t.store.RecordDelivery(job, recipientID); err != nil {
			return delivered, fmt.Errorf("delivering to %s: %w", recipientID, err)
		}
		delivered++
	}

	t.logger.Info("delivery complete",
		"recipient", recipientID,
		"eligible", len(jobs),
		"delivered", delivered,
	)
	return delivered, nil
}
