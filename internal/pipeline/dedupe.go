package pipeline

import "github.com/kakarot0105/JobBot/internal/model"

// Dedupe keeps the first occurrence of each URL, in order. It runs after
// filtering so that a filtered-out duplicate cannot shadow a surviving one,
// and before ranking so scores are computed once per job.
func Dedupe(jobs []model.Job) []model.Job {
	seen := make(map[string]struct{}, len(jobs))
	out := jobs[:0:0]
	for _, job := range jobs {
		if _, ok := seen[job.URL]; ok {
			continue
		}
		seen[job.URL] = struct{}{}
		out = append(out, job)
	}
	return out
}
