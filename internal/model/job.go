package model

import (
	"context"
	"time"
)

// JobType is a job's normalized employment type.
type JobType string

const (
	JobTypeFullTime JobType = "full-time"
	JobTypeContract JobType = "contract"
	JobTypePartTime JobType = "part-time"
	JobTypeUnknown  JobType = "unknown"
)

// Level is a seniority level inferred from a job's text.
type Level string

const (
	LevelJunior  Level = "junior"
	LevelMid     Level = "mid"
	LevelSenior  Level = "senior"
	LevelUnknown Level = "unknown"
)

// Job is the unified representation of a listing from any provider.
// URL is the canonical posting URL and the sole equality key across the
// system: two Jobs with the same URL are the same job regardless of which
// provider returned them. A Job with an empty URL never enters the pipeline.
type Job struct {
	Title         string
	Company       string
	Location      string     // free text as given by the provider
	Type          JobType    // normalized employment type
	SalaryDisplay string     // salary text as shown to the user
	SalaryFloor   int        // derived lower bound; 0 means unknown, not zero pay
	Source        string     // provider name
	URL           string     // canonical URL; dedup and delivery key
	Description   string     // truncated plain-text snippet
	PostedAt      *time.Time // nullable (most providers omit it)
}

// PreferenceProfile is one recipient's search criteria.
// Empty Levels/JobTypes mean "no constraint", not "match nothing".
type PreferenceProfile struct {
	Keywords    []string  // OR-matched against title and description
	Location    string    // free text; "remote" and "usa" carry special rules
	SalaryMin   int       // 0 = unset
	Levels      []Level   // empty = any
	JobTypes    []JobType // empty = any
	MaxAgeDays  int       // recency window for dated listings
	StrictDates bool      // if true, undated listings are rejected
}

// Source fetches listings from one external provider and maps them into
// canonical Jobs. Implementations own their request/response contract with
// the upstream service, including a bounded request timeout.
type Source interface {
	Name() string
	Fetch(ctx context.Context, keywords []string, location string) ([]Job, error)
}

// Store is the persistence boundary for delivery tracking, run markers, and
// preference profiles. Delivery records are append-only: once written for a
// (url, recipient) pair they are never mutated or deleted.
type Store interface {
	IsDelivered(url, recipientID string) (bool, error)
	RecordDelivery(job Job, recipientID string) error
	HasRunToday(taskName string) (bool, error)
	MarkRun(taskName string) error
	GetProfile(recipientID string) (*PreferenceProfile, error)
	SetProfile(recipientID string, p PreferenceProfile) error
}

// Notifier sends one job to one recipient. The delivery tracker writes a
// delivery record only when Send returns nil.
type Notifier interface {
	Send(ctx context.Context, recipientID string, job Job) error
}
