package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kakarot0105/JobBot/internal/model"
)

// SQLiteStore persists delivery records, run markers, preference profiles,
// and the delivered jobs themselves. Delivery rows are append-only; their
// presence is the sole authority for "already sent". The store assumes
// single-process access.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			url          TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			company      TEXT,
			location     TEXT,
			job_type     TEXT,
			salary       TEXT,
			salary_floor INTEGER DEFAULT 0,
			source       TEXT,
			description  TEXT,
			posted_at    DATETIME,
			saved_at     DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS deliveries (
			url          TEXT NOT NULL,
			recipient_id TEXT NOT NULL,
			delivered_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (url, recipient_id)
		)`,
		`CREATE TABLE IF NOT EXISTS run_markers (
			task_name    TEXT NOT NULL,
			run_date     TEXT NOT NULL,
			completed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (task_name, run_date)
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			recipient_id TEXT PRIMARY KEY,
			keywords     TEXT NOT NULL,
			location     TEXT NOT NULL,
			salary_min   INTEGER DEFAULT 0,
			levels       TEXT,
			job_types    TEXT,
			max_age_days INTEGER DEFAULT 0,
			strict_dates INTEGER DEFAULT 0,
			updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS applications (
			url          TEXT NOT NULL,
			recipient_id TEXT NOT NULL,
			applied_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (url, recipient_id)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// IsDelivered returns true if the (url, recipient) pair already has a
// delivery record.
func (s *SQLiteStore) IsDelivered(url, recipientID string) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		"SELECT 1 FROM deliveries WHERE url = ? AND recipient_id = ?",
		url, recipientID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking delivery for %s: %w", url, err)
	}
	return true, nil
}

// RecordDelivery saves the job row and appends the delivery record in one
// transaction. Jobs are persisted only here, at delivery time. Repeat calls
// for the same pair are no-ops.
func (s *SQLiteStore) RecordDelivery(job model.Job, recipientID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("recording delivery of %s: %w", job.URL, err)
	}
	defer tx.Rollback()

	var postedAt any
	if job.PostedAt != nil {
		postedAt = job.PostedAt.UTC()
	}
	_, err = tx.Exec(`INSERT OR IGNORE INTO jobs
		(url, title, company, location, job_type, salary, salary_floor, source, description, posted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.URL, job.Title, job.Company, job.Location, string(job.Type),
		job.SalaryDisplay, job.SalaryFloor, job.Source, job.Description, postedAt,
	)
	if err != nil {
		return fmt.Errorf("saving job %s: %w", job.URL, err)
	}

	_, err = tx.Exec(
		"INSERT OR IGNORE INTO deliveries (url, recipient_id) VALUES (?, ?)",
		job.URL, recipientID,
	)
	if err != nil {
		return fmt.Errorf("recording delivery of %s: %w", job.URL, err)
	}

	return tx.Commit()
}

// HasRunToday returns true if the task already has a marker for today's UTC
// date.
func (s *SQLiteStore) HasRunToday(taskName string) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		"SELECT 1 FROM run_markers WHERE task_name = ? AND run_date = ?",
		taskName, todayUTC(),
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking run marker for %s: %w", taskName, err)
	}
	return true, nil
}

// MarkRun records that the task completed for today's UTC date.
func (s *SQLiteStore) MarkRun(taskName string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO run_markers (task_name, run_date) VALUES (?, ?)",
		taskName, todayUTC(),
	)
	if err != nil {
		return fmt.Errorf("marking run for %s: %w", taskName, err)
	}
	return nil
}

func todayUTC() string {
	return time.Now().UTC().Format("2006-01-02")
}

// GetProfile loads a recipient's preference profile, or nil if none is set.
func (s *SQLiteStore) GetProfile(recipientID string) (*model.PreferenceProfile, error) {
	var (
		keywords, location    string
		levels, jobTypes      sql.NullString
		salaryMin, maxAgeDays int
		strictDates           int
	)
	err := s.db.QueryRow(`SELECT keywords, location, salary_min, levels, job_types, max_age_days, strict_dates
		FROM profiles WHERE recipient_id = ?`, recipientID,
	).Scan(&keywords, &location, &salaryMin, &levels, &jobTypes, &maxAgeDays, &strictDates)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile for %s: %w", recipientID, err)
	}

	p := model.PreferenceProfile{
		Location:    location,
		SalaryMin:   salaryMin,
		MaxAgeDays:  maxAgeDays,
		StrictDates: strictDates != 0,
	}
	if err := json.Unmarshal([]byte(keywords), &p.Keywords); err != nil {
		return nil, fmt.Errorf("decoding keywords for %s: %w", recipientID, err)
	}
	if levels.Valid && levels.String != "" {
		if err := json.Unmarshal([]byte(levels.String), &p.Levels); err != nil {
			return nil, fmt.Errorf("decoding levels for %s: %w", recipientID, err)
		}
	}
	if jobTypes.Valid && jobTypes.String != "" {
		if err := json.Unmarshal([]byte(jobTypes.String), &p.JobTypes); err != nil {
			return nil, fmt.Errorf("decoding job types for %s: %w", recipientID, err)
		}
	}
	return &p, nil
}

// SetProfile creates or replaces a recipient's preference profile.
func (s *SQLiteStore) SetProfile(recipientID string, p model.PreferenceProfile) error {
	keywords, err := json.Marshal(p.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords for %s: %w", recipientID, err)
	}
	levels, err := json.Marshal(p.Levels)
	if err != nil {
		return fmt.Errorf("encoding levels for %s: %w", recipientID, err)
	}
	jobTypes, err := json.Marshal(p.JobTypes)
	if err != nil {
		return fmt.Errorf("encoding job types for %s: %w", recipientID, err)
	}

	strict := 0
	if p.StrictDates {
		strict = 1
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO profiles
		(recipient_id, keywords, location, salary_min, levels, job_types, max_age_days, strict_dates)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		recipientID, string(keywords), p.Location, p.SalaryMin,
		string(levels), string(jobTypes), p.MaxAgeDays, strict,
	)
	if err != nil {
		return fmt.Errorf("saving profile for %s: %w", recipientID, err)
	}
	return nil
}

// DeliveredJob is one row of a recipient's delivery history, joined with
// the saved job and the applied flag.
type DeliveredJob struct {
	Job         model.Job
	DeliveredAt time.Time
	Applied     bool
}

// ListDeliveries returns a recipient's delivered jobs, newest first.
func (s *SQLiteStore) ListDeliveries(recipientID string) ([]DeliveredJob, error) {
	rows, err := s.db.Query(`SELECT j.url, j.title, j.company, j.location, j.job_type,
			j.salary, j.salary_floor, j.source, j.description, d.delivered_at,
			EXISTS (SELECT 1 FROM applications a WHERE a.url = j.url AND a.recipient_id = d.recipient_id)
		FROM deliveries d
		JOIN jobs j ON j.url = d.url
		WHERE d.recipient_id = ?
		ORDER BY d.delivered_at DESC`, recipientID)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries for %s: %w", recipientID, err)
	}
	defer rows.Close()

	var out []DeliveredJob
	for rows.Next() {
		var (
			dj      DeliveredJob
			jobType string
			applied int
		)
		err := rows.Scan(&dj.Job.URL, &dj.Job.Title, &dj.Job.Company, &dj.Job.Location,
			&jobType, &dj.Job.SalaryDisplay, &dj.Job.SalaryFloor, &dj.Job.Source,
			&dj.Job.Description, &dj.DeliveredAt, &applied)
		if err != nil {
			return nil, fmt.Errorf("listing deliveries for %s: %w", recipientID, err)
		}
		dj.Job.Type = model.JobType(jobType)
		dj.Applied = applied != 0
		out = append(out, dj)
	}
	return out, rows.Err()
}

// MarkApplied records that the recipient applied to the job. Repeat calls
// are no-ops.
func (s *SQLiteStore) MarkApplied(url, recipientID string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO applications (url, recipient_id) VALUES (?, ?)",
		url, recipientID,
	)
	if err != nil {
		return fmt.Errorf("marking %s as applied: %w", url, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
