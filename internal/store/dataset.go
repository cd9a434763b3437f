package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/healthdata/nutristats/internal/models"
)

// DatasetStore wraps the loaded nutrition dataset. The table is written once
// by Load and is read-only afterwards, so queries run concurrently without
// any further synchronization.
type DatasetStore struct {
	db *sql.DB
}

func NewDatasetStore(db *sql.DB) *DatasetStore {
	return &DatasetStore{db: db}
}

// Load ingests the CSV into the dataset table and returns the number of
// usable rows. It must be called once, before the pool accepts work.
func (s *DatasetStore) Load(ctx context.Context, csvPath string) (int, error) {
	if csvPath == "" {
		return 0, fmt.Errorf("dataset csv path is required")
	}
	if _, err := s.db.ExecContext(ctx, queryLoadDataset, csvPath); err != nil {
		return 0, fmt.Errorf("load dataset from %s: %w", csvPath, err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, queryCountDataset).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Compute runs the statistical operation described by req against the
// dataset. It is the computation capability handed to the worker pool and is
// safe for concurrent use.
func (s *DatasetStore) Compute(ctx context.Context, req models.RequestSpec) (any, error) {
	switch req.Op {
	case models.OpStatesMean:
		return s.StatesMean(ctx, req.Question)
	case models.OpStateMean:
		return s.StateMean(ctx, req.Question, req.State)
	case models.OpBest5:
		return s.BestFive(ctx, req.Question)
	case models.OpWorst5:
		return s.WorstFive(ctx, req.Question)
	case models.OpGlobalMean:
		return s.GlobalMean(ctx, req.Question)
	case models.OpDiffFromMean:
		return s.DiffFromMean(ctx, req.Question)
	case models.OpStateDiffFromMean:
		return s.StateDiffFromMean(ctx, req.Question, req.State)
	case models.OpMeanByCategory:
		return s.MeanByCategory(ctx, req.Question)
	case models.OpStateMeanByCategory:
		return s.StateMeanByCategory(ctx, req.Question, req.State)
	default:
		return nil, fmt.Errorf("unknown operation: %s", req.Op)
	}
}

// StatesMean returns the mean value per state for a question, ascending by
// value.
func (s *DatasetStore) StatesMean(ctx context.Context, question string) (models.OrderedMap, error) {
	builder := sq.Select("state", "AVG(value) AS mean").
		From("dataset").
		Where(sq.Eq{"question": question}).
		GroupBy("state").
		OrderBy("mean ASC")

	return s.stateValues(ctx, builder)
}

// StateMean returns the mean value for a single state, keyed by state name.
func (s *DatasetStore) StateMean(ctx context.Context, question, state string) (models.OrderedMap, error) {
	builder := sq.Select("state", "AVG(value) AS mean").
		From("dataset").
		Where(sq.Eq{"question": question, "state": state}).
		GroupBy("state")

	return s.stateValues(ctx, builder)
}

// BestFive returns the five best-performing states for a question. Lower
// means are better for best-is-min questions, higher means otherwise.
func (s *DatasetStore) BestFive(ctx context.Context, question string) (models.OrderedMap, error) {
	return s.topFive(ctx, question, models.BestIsMin(question))
}

// WorstFive returns the five worst-performing states for a question. Lower
// means are worst for best-is-max questions, higher means otherwise.
func (s *DatasetStore) WorstFive(ctx context.Context, question string) (models.OrderedMap, error) {
	return s.topFive(ctx, question, models.BestIsMax(question))
}

func (s *DatasetStore) topFive(ctx context.Context, question string, ascending bool) (models.OrderedMap, error) {
	order := "mean DESC"
	if ascending {
		order = "mean ASC"
	}
	builder := sq.Select("state", "AVG(value) AS mean").
		From("dataset").
		Where(sq.Eq{"question": question}).
		GroupBy("state").
		OrderBy(order).
		Limit(5)

	return s.stateValues(ctx, builder)
}

// GlobalMean returns the mean over every record matching the question, as
// {"global_mean": v}. The value is null when no rows match.
func (s *DatasetStore) GlobalMean(ctx context.Context, question string) (models.OrderedMap, error) {
	query, args, err := sq.Select("AVG(value)").
		From("dataset").
		Where(sq.Eq{"question": question}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var mean sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&mean); err != nil {
		return nil, err
	}
	return models.OrderedMap{{Key: "global_mean", Value: nullable(mean)}}, nil
}

// DiffFromMean returns, per state, the global mean minus the state mean,
// ordered by state name.
func (s *DatasetStore) DiffFromMean(ctx context.Context, question string) (models.OrderedMap, error) {
	builder := sq.Select("state").
		Column(sq.Alias(
			sq.Expr("(SELECT AVG(value) FROM dataset WHERE question = ?) - AVG(value)", question),
			"diff")).
		From("dataset").
		Where(sq.Eq{"question": question}).
		GroupBy("state").
		OrderBy("state")

	return s.stateValues(ctx, builder)
}

// StateDiffFromMean returns {state: global mean - state mean}.
func (s *DatasetStore) StateDiffFromMean(ctx context.Context, question, state string) (models.OrderedMap, error) {
	query, args, err := sq.Select().
		Column(sq.Expr("(SELECT AVG(value) FROM dataset WHERE question = ?) - AVG(value)", question)).
		From("dataset").
		Where(sq.Eq{"question": question, "state": state}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var diff sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&diff); err != nil {
		return nil, err
	}
	return models.OrderedMap{{Key: state, Value: nullable(diff)}}, nil
}

// MeanByCategory returns the mean per (state, category, segment) group. Keys
// follow the original tuple format "('State', 'Category', 'Segment')".
func (s *DatasetStore) MeanByCategory(ctx context.Context, question string) (models.OrderedMap, error) {
	builder := sq.Select("state", "category", "segment", "AVG(value) AS mean").
		From("dataset").
		Where(sq.Eq{"question": question}).
		GroupBy("state", "category", "segment").
		OrderBy("state", "category", "segment")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := models.OrderedMap{}
	for rows.Next() {
		var state, category, segment string
		var mean float64
		if err := rows.Scan(&state, &category, &segment, &mean); err != nil {
			return nil, err
		}
		key := fmt.Sprintf("('%s', '%s', '%s')", state, category, segment)
		result = append(result, models.Entry{Key: key, Value: mean})
	}
	return result, rows.Err()
}

// StateMeanByCategory returns {state: {"('Category', 'Segment')": mean}} for
// a single state.
func (s *DatasetStore) StateMeanByCategory(ctx context.Context, question, state string) (models.OrderedMap, error) {
	builder := sq.Select("category", "segment", "AVG(value) AS mean").
		From("dataset").
		Where(sq.Eq{"question": question, "state": state}).
		GroupBy("category", "segment").
		OrderBy("category", "segment")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inner := models.OrderedMap{}
	for rows.Next() {
		var category, segment string
		var mean float64
		if err := rows.Scan(&category, &segment, &mean); err != nil {
			return nil, err
		}
		key := fmt.Sprintf("('%s', '%s')", category, segment)
		inner = append(inner, models.Entry{Key: key, Value: mean})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return models.OrderedMap{{Key: state, Value: inner}}, nil
}

func (s *DatasetStore) stateValues(ctx context.Context, builder sq.SelectBuilder) (models.OrderedMap, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := models.OrderedMap{}
	for rows.Next() {
		var state string
		var value float64
		if err := rows.Scan(&state, &value); err != nil {
			return nil, err
		}
		result = append(result, models.Entry{Key: state, Value: value})
	}
	return result, rows.Err()
}

func nullable(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}
