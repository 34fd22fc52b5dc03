package filter

import (
	"strings"
	"time"

	"github.com/kakarot0105/JobBot/internal/model"
)

// Engine applies one recipient's preference profile to canonical jobs.
// Every rule must pass for a job to survive. Rules that depend on inferred
// classifications (level, job type) are permissive on "unknown": absence of
// signal is not rejection.
type Engine struct {
	profile model.PreferenceProfile
	now     func() time.Time
}

// New creates a filter engine bound to one profile.
func New(profile model.PreferenceProfile) *Engine {
	return &Engine{profile: profile, now: time.Now}
}

// Match reports whether the job satisfies every rule of the profile.
func (e *Engine) Match(job model.Job) bool {
	return e.matchKeywords(job) &&
		e.matchLocation(job) &&
		e.matchLevel(job) &&
		e.matchJobType(job) &&
		e.matchRecency(job) &&
		e.matchSalary(job)
}

// matchKeywords requires at least one keyword in the title or description,
// case-insensitive.
func (e *Engine) matchKeywords(job model.Job) bool {
	title := strings.ToLower(job.Title)
	desc := strings.ToLower(job.Description)
	for _, kw := range e.profile.Keywords {
		k := strings.ToLower(kw)
		if strings.Contains(title, k) || strings.Contains(desc, k) {
			return true
		}
	}
	return false
}

// matchLocation applies the location rules: an empty target passes all; a
// "remote" target requires remote/anywhere in the job's location; a US
// target accepts the usual spellings plus remote listings; any other target
// is a plain substring match.
func (e *Engine) matchLocation(job model.Job) bool {
	target := strings.ToLower(e.profile.Location)
	if target == "" {
		return true
	}
	loc := strings.ToLower(job.Location)

	if strings.Contains(target, "remote") {
		if strings.Contains(loc, "remote") || strings.Contains(loc, "anywhere") {
			return true
		}
	}
	if strings.Contains(target, "usa") || strings.Contains(target, "united states") {
		for _, accept := range []string{"united states", "usa", "us", "remote"} {
			if strings.Contains(loc, accept) {
				return true
			}
		}
	}
	if strings.Contains(target, "remote") || strings.Contains(target, "usa") || strings.Contains(target, "united states") {
		return false
	}
	return strings.Contains(loc, target)
}

func (e *Engine) matchLevel(job model.Job) bool {
	if len(e.profile.Levels) == 0 {
		return true
	}
	level := InferLevel(job)
	if level == model.LevelUnknown {
		return true
	}
	for _, l := range e.profile.Levels {
		if l == level {
			return true
		}
	}
	return false
}

func (e *Engine) matchJobType(job model.Job) bool {
	if len(e.profile.JobTypes) == 0 {
		return true
	}
	if job.Type == model.JobTypeUnknown {
		return true
	}
	for _, jt := range e.profile.JobTypes {
		if jt == job.Type {
			return true
		}
	}
	return false
}

// matchRecency checks the posting age against MaxAgeDays in UTC. An undated
// listing passes unless the profile demands strict dates.
func (e *Engine) matchRecency(job model.Job) bool {
	if job.PostedAt == nil {
		return !e.profile.StrictDates
	}
	if e.profile.MaxAgeDays <= 0 {
		return true
	}
	age := e.now().UTC().Sub(job.PostedAt.UTC())
	return age <= time.Duration(e.profile.MaxAgeDays)*24*time.Hour
}

// matchSalary passes unknown floors (0) through: absence of salary data is
// never disqualifying.
func (e *Engine) matchSalary(job model.Job) bool {
	if e.profile.SalaryMin <= 0 {
		return true
	}
	return job.SalaryFloor == 0 || job.SalaryFloor >= e.profile.SalaryMin
}

// levelLexicon maps seniority spelling variants found in titles and
// descriptions to a level.
var levelLexicon = []struct {
	needle string
	level  model.Level
}{
	{"junior", model.LevelJunior},
	{"jr", model.LevelJunior},
	{"entry", model.LevelJunior},
	{"senior", model.LevelSenior},
	{"sr", model.LevelSenior},
	{"lead", model.LevelSenior},
	{"principal", model.LevelSenior},
	{"staff", model.LevelSenior},
	{"mid", model.LevelMid},
	{"intermediate", model.LevelMid},
	{"ii", model.LevelMid},
}

// InferLevel scans title and description for seniority markers. No marker
// means LevelUnknown, which the level rule treats as a pass.
func InferLevel(job model.Job) model.Level {
	text := strings.ToLower(job.Title + " " + job.Description)
	for _, entry := range levelLexicon {
		if strings.Contains(text, entry.needle) {
			return entry.level
		}
	}
	return model.LevelUnknown
}
