package journal

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-contentkit/internal/batch"
)

// MemoryRepository keeps the journal in-memory.
type MemoryRepository struct {
	mu          sync.RWMutex
	runs        map[uuid.UUID]Run
	entries     map[uuid.UUID][]Entry
	broadcaster *broadcaster
}

// NewMemoryRepository constructs an in-memory journal.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		runs:        make(map[uuid.UUID]Run),
		entries:     make(map[uuid.UUID][]Entry),
		broadcaster: newBroadcaster(),
	}
}

// Record stores the report, replacing any earlier copy of the same run.
func (r *MemoryRepository) Record(ctx context.Context, report *batch.Report) error {
	if report == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	run := summarize(report)

	r.mu.Lock()
	r.runs[run.ID] = run
	r.entries[run.ID] = entriesFor(report)
	r.mu.Unlock()

	r.broadcaster.Broadcast(RecordedEvent{Run: run})
	return nil
}

// Runs returns the most recent runs first. A non-positive limit returns all.
func (r *MemoryRepository) Runs(_ context.Context, limit int) ([]Run, error) {
	r.mu.RLock()
	runs := make([]Run, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	r.mu.RUnlock()

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Outcomes returns the journaled outcomes of a run in processing order.
func (r *MemoryRepository) Outcomes(_ context.Context, runID uuid.UUID) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries, ok := r.entries[runID]
	if !ok {
		return nil, ErrRunNotFound
	}
	return append([]Entry(nil), entries...), nil
}

// Subscribe delivers recorded events until the context is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan RecordedEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}
