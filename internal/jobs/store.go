package jobs

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/healthdata/nutristats/internal/models"
	srvErrors "github.com/healthdata/nutristats/pkg/errors"
)

// Store is the concurrent mapping from job identifier to job record. It is
// the only mutable shared structure between the dispatcher, the workers and
// the status-polling readers; every mutation happens under its mutex.
//
// Records transition running -> done|error exactly once and are never
// evicted for the lifetime of the process.
type Store struct {
	mu      sync.RWMutex
	records map[string]*models.JobRecord
	nextSeq int64
}

func NewStore() *Store {
	return &Store{
		records: make(map[string]*models.JobRecord),
		nextSeq: 1,
	}
}

// Create allocates a fresh identifier and inserts a record with status
// running. Identifiers are never reused.
func (s *Store) Create(req models.RequestSpec) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.nextSeq
	s.nextSeq++

	id := models.JobIDFromSeq(seq)
	s.records[id] = &models.JobRecord{
		ID:        id,
		Seq:       seq,
		Request:   req,
		Status:    models.JobStatusRunning,
		CreatedAt: time.Now(),
	}
	return id
}

// Get returns a copy of the record, or JobNotFoundError if the identifier
// was never issued.
func (s *Store) Get(id string) (models.JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return models.JobRecord{}, srvErrors.NewJobNotFoundError(id)
	}
	return *rec, nil
}

// CompleteSuccess transitions the record to done with the given result. A
// completion on an already terminal record is a logged no-op: each record
// has exactly one writer after creation, so a second completion indicates
// the forced-shutdown path already claimed it.
func (s *Store) CompleteSuccess(id string, result any) {
	s.complete(id, models.JobStatusDone, result, "")
}

// CompleteError transitions the record to error with the given message.
func (s *Store) CompleteError(id string, msg string) {
	s.complete(id, models.JobStatusError, nil, msg)
}

func (s *Store) complete(id string, status models.JobStatus, result any, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		zap.S().Named("job_store").Warnw("completion for unknown job", "job_id", id)
		return
	}
	if rec.Status.Terminal() {
		zap.S().Named("job_store").Warnw("completion for terminal job ignored",
			"job_id", id, "status", rec.Status.Value())
		return
	}

	rec.Status = status
	rec.Result = result
	rec.Error = msg
	rec.CompletedAt = time.Now()
}

// List returns copies of all records ordered by submission sequence.
func (s *Store) List() []models.JobRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.JobRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// FailActive marks every non-terminal record as error with the given
// message. Used only by the forced-shutdown path once the grace period has
// elapsed.
func (s *Store) FailActive(msg string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	now := time.Now()
	for _, rec := range s.records {
		if rec.Status.Terminal() {
			continue
		}
		rec.Status = models.JobStatusError
		rec.Error = msg
		rec.CompletedAt = now
		n++
	}
	return n
}
