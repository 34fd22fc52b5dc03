package normalize

import (
	"strings"

	"github.com/kakarot0105/JobBot/internal/model"
)

// jobTypeLexicon maps spelling variants to a normalized type. Matching is a
// case-insensitive substring scan in declaration order, so the more specific
// variants come first within each group.
var jobTypeLexicon = []struct {
	needle string
	jt     model.JobType
}{
	{"full-time", model.JobTypeFullTime},
	{"full time", model.JobTypeFullTime},
	{"full_time", model.JobTypeFullTime},
	{"fulltime", model.JobTypeFullTime},
	{"contractor", model.JobTypeContract},
	{"contract", model.JobTypeContract},
	{"c2c", model.JobTypeContract},
	{"1099", model.JobTypeContract},
	{"part-time", model.JobTypePartTime},
	{"part time", model.JobTypePartTime},
	{"part_time", model.JobTypePartTime},
	{"parttime", model.JobTypePartTime},
}

// JobType normalizes a provider's free-text employment type. No match means
// unknown, which downstream filters treat permissively.
func JobType(raw string) model.JobType {
	lower := strings.ToLower(raw)
	for _, entry := range jobTypeLexicon {
		if strings.Contains(lower, entry.needle) {
			return entry.jt
		}
	}
	return model.JobTypeUnknown
}
