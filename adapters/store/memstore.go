package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Viraj281105/ClimateX/internal/impact"
)

// MemStore is an in-memory Store for tests. Implements Store.
type MemStore struct {
	mu      sync.Mutex
	runs    map[string]*Run
	records map[string][]impact.Record
}

// NewMemStore returns a new in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{
		runs:    make(map[string]*Run),
		records: make(map[string][]impact.Record),
	}
}

// SaveRun implements Store.
func (s *MemStore) SaveRun(run *Run, table *impact.Table) error {
	if run == nil || table == nil {
		return errors.New("run and table must be non-nil")
	}
	stampRun(run, table)

	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *run
	s.runs[run.ID] = &cp
	s.records[run.ID] = append([]impact.Record(nil), table.Records...)
	return nil
}

// GetRun implements Store.
func (s *MemStore) GetRun(id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// ListRuns implements Store.
func (s *MemStore) ListRuns() ([]*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Run, 0, len(s.runs))
	for _, r := range s.runs {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetRecords implements Store.
func (s *MemStore) GetRecords(runID string) ([]impact.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, ok := s.records[runID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]impact.Record(nil), recs...), nil
}

// Close implements Store.
func (s *MemStore) Close() error { return nil }

// stampRun fills in identity and derived counters before persisting.
func stampRun(run *Run, table *impact.Table) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Pairs = len(table.Records)
	run.Failed = 0
	for i := range table.Records {
		if table.Records[i].Failed() {
			run.Failed++
		}
	}
}
