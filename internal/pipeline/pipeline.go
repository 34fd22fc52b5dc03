package pipeline

import (
	"context"
	"log/slog"

	"github.com/kakarot0105/JobBot/internal/fetch"
	"github.com/kakarot0105/JobBot/internal/filter"
	"github.com/kakarot0105/JobBot/internal/model"
)

// Pipeline runs one recipient's search: fetch from every source, filter
// against the profile, collapse duplicates, rank. No error return — source
// failures are absorbed by the coordinator and an all-providers-down run is
// a valid empty result, not a fault.
type Pipeline struct {
	coordinator *fetch.Coordinator
	logger      *slog.Logger
}

// New creates a pipeline over the given coordinator.
func New(coordinator *fetch.Coordinator, logger *slog.Logger) *Pipeline {
	return &Pipeline{coordinator: coordinator, logger: logger}
}

// Run produces the ranked list of jobs matching the profile.
func (p *Pipeline) Run(ctx context.Context, profile model.PreferenceProfile) []model.Job {
	fetched := p.coordinator.FetchAll(ctx, profile.Keywords, profile.Location)

	eng := filter.New(profile)
	var matched []model.Job
	for _, job := range fetched {
		if eng.Match(job) {
			matched = append(matched, job)
		}
	}

	deduped := Dedupe(matched)
	ranked := Rank(deduped, profile.Keywords)

	p.logger.Info("pipeline complete",
		"fetched", len(fetched),
		"matched", len(matched),
		"unique", len(deduped),
	)
	return ranked
}
