package pipeline

import (
	"sort"
	"strings"

	"github.com/kakarot0105/JobBot/internal/model"
)

// Score computes a job's relevance against the profile keywords: title hits
// weigh double description hits, remote roles get a bump, and a listing
// that actually states a salary gets a half point over ones that don't.
func Score(job model.Job, keywords []string) float64 {
	title := strings.ToLower(job.Title)
	desc := strings.ToLower(job.Description)

	var score float64
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		if strings.Contains(title, k) {
			score += 2
		}
		if strings.Contains(desc, k) {
			score += 1
		}
	}
	if strings.Contains(strings.ToLower(job.Location), "remote") {
		score += 1
	}
	if job.SalaryFloor > 0 {
		score += 0.5
	}
	return score
}

// Rank returns jobs sorted by score descending. The sort is stable, so ties
// keep their pre-sort relative order, which is source registration order.
func Rank(jobs []model.Job, keywords []string) []model.Job {
	type scored struct {
		job   model.Job
		score float64
	}
	ranked := make([]scored, len(jobs))
	for i, job := range jobs {
		ranked[i] = scored{job: job, score: Score(job, keywords)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]model.Job, len(ranked))
	for i, r := range ranked {
		out[i] = r.job
	}
	return out
}
