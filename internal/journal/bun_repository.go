package journal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-contentkit/internal/batch"
)

// BunRepository persists the journal using a Bun-backed database.
type BunRepository struct {
	db          *bun.DB
	broadcaster *broadcaster
}

// NewBunRepository constructs a Bun-backed journal.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:          db,
		broadcaster: newBroadcaster(),
	}
}

// Migrate creates the journal tables when they do not exist yet.
func (r *BunRepository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return errors.New("journal: bun repository requires a database")
	}
	for _, model := range []any{(*runModel)(nil), (*outcomeModel)(nil)} {
		if _, err := r.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Record writes the run and its outcomes in a single transaction. Recording
// the same run twice replaces the earlier rows.
func (r *BunRepository) Record(ctx context.Context, report *batch.Report) error {
	if r.db == nil {
		return errors.New("journal: bun repository requires a database")
	}
	if report == nil {
		return nil
	}
	run := summarize(report)
	runRow := modelFromRun(run)
	outcomeRows := make([]outcomeModel, 0, len(report.Outcomes))
	for _, entry := range entriesFor(report) {
		outcomeRows = append(outcomeRows, modelFromEntry(entry))
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*outcomeModel)(nil)).Where("run_id = ?", run.ID).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*runModel)(nil)).Where("id = ?", run.ID).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(&runRow).Exec(ctx); err != nil {
			return err
		}
		if len(outcomeRows) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&outcomeRows).Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}

	r.broadcaster.Broadcast(RecordedEvent{Run: run})
	return nil
}

// Runs returns the most recent runs first. A non-positive limit returns all.
func (r *BunRepository) Runs(ctx context.Context, limit int) ([]Run, error) {
	if r.db == nil {
		return nil, errors.New("journal: bun repository requires a database")
	}
	var rows []runModel
	query := r.db.NewSelect().Model(&rows).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	runs := make([]Run, 0, len(rows))
	for i := range rows {
		runs = append(runs, modelToRun(&rows[i]))
	}
	return runs, nil
}

// Outcomes returns the journaled outcomes of a run in processing order.
func (r *BunRepository) Outcomes(ctx context.Context, runID uuid.UUID) ([]Entry, error) {
	if r.db == nil {
		return nil, errors.New("journal: bun repository requires a database")
	}
	exists, err := r.db.NewSelect().Model((*runModel)(nil)).Where("id = ?", runID).Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRunNotFound
	}

	var rows []outcomeModel
	if err := r.db.NewSelect().Model(&rows).Where("run_id = ?", runID).Order("sequence ASC").Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, modelToEntry(&rows[i]))
	}
	return entries, nil
}

// Subscribe delivers recorded events until the context is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan RecordedEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

type runModel struct {
	bun.BaseModel `bun:"table:contentkit_runs"`

	ID         uuid.UUID `bun:",pk,type:uuid"`
	Step       string    `bun:"step,notnull"`
	DryRun     bool      `bun:"dry_run,notnull,default:false"`
	StartedAt  time.Time `bun:"started_at,notnull"`
	FinishedAt time.Time `bun:"finished_at,nullzero"`
	Outcomes   int       `bun:"outcomes,notnull,default:0"`
	Changed    int       `bun:"changed,notnull,default:0"`
	Failed     int       `bun:"failed,notnull,default:0"`
}

type outcomeModel struct {
	bun.BaseModel `bun:"table:contentkit_outcomes"`

	ID       int64     `bun:",pk,autoincrement"`
	RunID    uuid.UUID `bun:"run_id,notnull,type:uuid"`
	Sequence int       `bun:"sequence,notnull"`
	Step     string    `bun:"step,notnull"`
	Kind     string    `bun:"kind"`
	Path     string    `bun:"path,notnull"`
	Target   string    `bun:"target"`
	Status   string    `bun:"status,notnull"`
	Reason   string    `bun:"reason"`
	Detail   string    `bun:"detail"`
	Error    string    `bun:"error"`
	At       time.Time `bun:"at,nullzero"`
}

func modelFromRun(run Run) runModel {
	return runModel{
		ID:         run.ID,
		Step:       string(run.Step),
		DryRun:     run.DryRun,
		StartedAt:  run.StartedAt.UTC(),
		FinishedAt: run.FinishedAt.UTC(),
		Outcomes:   run.Outcomes,
		Changed:    run.Changed,
		Failed:     run.Failed,
	}
}

func modelToRun(model *runModel) Run {
	if model == nil {
		return Run{}
	}
	return Run{
		ID:         model.ID,
		Step:       batch.Step(model.Step),
		DryRun:     model.DryRun,
		StartedAt:  model.StartedAt,
		FinishedAt: model.FinishedAt,
		Outcomes:   model.Outcomes,
		Changed:    model.Changed,
		Failed:     model.Failed,
	}
}

func modelFromEntry(entry Entry) outcomeModel {
	outcome := entry.Outcome
	return outcomeModel{
		RunID:    entry.RunID,
		Sequence: entry.Sequence,
		Step:     string(outcome.Step),
		Kind:     outcome.Kind,
		Path:     outcome.Path,
		Target:   outcome.Target,
		Status:   string(outcome.Status),
		Reason:   string(outcome.Reason),
		Detail:   outcome.Detail,
		Error:    entry.Error,
		At:       outcome.At.UTC(),
	}
}

func modelToEntry(model *outcomeModel) Entry {
	entry := Entry{
		RunID:    model.RunID,
		Sequence: model.Sequence,
		Error:    model.Error,
		Outcome: batch.Outcome{
			Step:   batch.Step(model.Step),
			Kind:   model.Kind,
			Path:   model.Path,
			Target: model.Target,
			Status: batch.Status(model.Status),
			Reason: batch.Reason(model.Reason),
			Detail: model.Detail,
			At:     model.At,
		},
	}
	if model.Error != "" {
		entry.Outcome.Err = errors.New(model.Error)
	}
	return entry
}
