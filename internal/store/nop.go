package store

import "github.com/kakarot0105/JobBot/internal/model"

// NopStore backs dry-run mode. Profiles live in memory so the pipeline can
// read them back, but deliveries and run markers are never recorded, so every
// job appears fresh on each run and nothing blocks a trigger.
type NopStore struct {
	profiles map[string]model.PreferenceProfile
}

func NewNopStore() *NopStore {
	return &NopStore{profiles: make(map[string]model.PreferenceProfile)}
}

func (s *NopStore) IsDelivered(url, recipientID string) (bool, error) { return false, nil }

func (s *NopStore) RecordDelivery(job model.Job, recipientID string) error { return nil }

func (s *NopStore) HasRunToday(taskName string) (bool, error) { return false, nil }

func (s *NopStore) MarkRun(taskName string) error { return nil }

func (s *NopStore) GetProfile(id string) (*model.PreferenceProfile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *NopStore) SetProfile(id string, p model.PreferenceProfile) error {
	s.profiles[id] = p
	return nil
}
