package store

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rhyrak/exam-scheduler/internal/scheduler"
	"github.com/rhyrak/exam-scheduler/pkg/model"
)

var ErrNotFound = errors.New("schedule run not found")

// Run is one generated schedule together with the roster it was built from.
type Run struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Roster    *model.Roster
	Result    *scheduler.Result
	Report    *scheduler.Report
}

// Meta is the listing view of a run.
type Meta struct {
	ID        string           `json:"id"`
	Status    scheduler.Status `json:"status"`
	Placed    int              `json:"placed"`
	Unplaced  int              `json:"unplaced"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (r *Run) Meta() Meta {
	m := Meta{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
	if r.Report != nil {
		m.Status = r.Report.Status
		m.Placed = r.Report.Placed
		m.Unplaced = r.Report.Unplaced
	}
	return m
}

// Store keeps schedule runs in memory. Runs handed out are snapshots; a
// replaced run never mutates a value a reader already holds.
type Store struct {
	mu   sync.RWMutex
	runs map[string]*Run
	now  func() time.Time
}

func New() *Store {
	return &Store{runs: make(map[string]*Run), now: time.Now}
}

// Create stores a new run under a fresh id.
func (s *Store) Create(roster *model.Roster, res *scheduler.Result, report *scheduler.Report) *Run {
	now := s.now()
	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Roster:    roster,
		Result:    res,
		Report:    report,
	}
	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()
	return run
}

// Replace swaps the generated schedule of an existing run in one step.
func (s *Store) Replace(id string, res *scheduler.Result, report *scheduler.Report) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	run := &Run{
		ID:        old.ID,
		CreatedAt: old.CreatedAt,
		UpdatedAt: s.now(),
		Roster:    old.Roster,
		Result:    res,
		Report:    report,
	}
	s.runs[id] = run
	return run, nil
}

func (s *Store) Get(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return run, nil
}

// List returns the runs ordered by creation time, oldest first.
func (s *Store) List() []Meta {
	s.mu.RLock()
	out := make([]Meta, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r.Meta())
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b Meta) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return ErrNotFound
	}
	delete(s.runs, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
