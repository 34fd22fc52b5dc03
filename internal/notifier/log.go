package notifier

import (
	"context"
	"log/slog"

	"github.com/kakarot0105/JobBot/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes job deliveries to the given logger as structured
// messages. It is the default when no Telegram token is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each job via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the job. Returns nil (stdout logging does not fail).
func (n *LogNotifier) Send(ctx context.Context, recipientID string, job model.Job) error {
	args := []any{
		"recipient", recipientID,
		"title", job.Title,
		"company", job.Company,
		"location", job.Location,
		"salary", job.SalaryDisplay,
		"url", job.URL,
	}
	if job.PostedAt != nil {
		args = append(args, "posted_at", *job.PostedAt)
	}
	n.logger.Info("new job", args...)
	return nil
}
