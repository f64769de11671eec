package job

import (
	"sync"
	"time"

	"lesson-server/internal/model"
)

// Store is the in-memory job status registry. The filesystem stays the
// source of truth for finished items; the store exists so a client can
// observe a job that is still running or that failed before writing
// anything.
type Store struct {
	mu      sync.RWMutex
	records map[string]model.JobRecord
}

func NewStore() *Store {
	return &Store{records: make(map[string]model.JobRecord)}
}

// Begin registers a fresh record for id, replacing any previous run of
// the same identifier.
func (s *Store) Begin(id string, kind model.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = model.JobRecord{
		ID:        id,
		Kind:      kind,
		Stage:     model.StageReceived,
		UpdatedAt: time.Now(),
	}
}

// Advance moves the job to the given stage.
func (s *Store) Advance(id string, stage model.JobStage) {
	s.update(id, func(r *model.JobRecord) {
		r.Stage = stage
		r.Slide = 0
	})
}

// Rendering marks the job as rasterizing slide number slide of total.
func (s *Store) Rendering(id string, slide, total int) {
	s.update(id, func(r *model.JobRecord) {
		r.Stage = model.StageSlidesRendering
		r.Slide = slide
		r.TotalSlides = total
	})
}

// SetTotal records the slide count once content generation fixed it.
func (s *Store) SetTotal(id string, total int) {
	s.update(id, func(r *model.JobRecord) {
		r.TotalSlides = total
	})
}

// Rename moves a record to a new identifier, keeping the old key
// pointing at the same record so earlier polls keep resolving.
func (s *Store) Rename(oldID, newID string) {
	if oldID == newID {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[oldID]
	if !ok {
		return
	}
	r.ID = newID
	r.UpdatedAt = time.Now()
	s.records[oldID] = r
	s.records[newID] = r
}

// Fail puts the job in its failed terminal state.
func (s *Store) Fail(id string, err error) {
	s.update(id, func(r *model.JobRecord) {
		r.Stage = model.StageFailed
		r.Error = err.Error()
	})
}

// Complete puts the job in its successful terminal state.
func (s *Store) Complete(id string) {
	s.update(id, func(r *model.JobRecord) {
		r.Stage = model.StageComplete
		r.Slide = 0
	})
}

// Get returns the record for id, if any run has been registered.
func (s *Store) Get(id string) (model.JobRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok
}

func (s *Store) update(id string, mutate func(*model.JobRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return
	}
	mutate(&r)
	r.UpdatedAt = time.Now()
	s.records[id] = r
	if r.ID != id {
		s.records[r.ID] = r
	}
}
