package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/workout"
)

const selectColumns = "SELECT id, name, description, difficulty, target_muscles, goal_type, duration_minutes, active, created_at FROM workout"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new workout Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Workout and its exercises.
// PRE: id is non-empty
// POST: Returns the entity with exercises ordered by sequence, or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Workout, error) {
	return s.getOne(ctx, selectColumns+" WHERE id = ?", id)
}

// GetByName retrieves a Workout by its unique name.
// PRE: name is non-empty
// POST: Returns the entity with exercises ordered by sequence, or ErrNotFound
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Workout, error) {
	return s.getOne(ctx, selectColumns+" WHERE name = ?", name)
}

func (s *SQLiteStore) getOne(ctx context.Context, query string, key string) (domain.Workout, error) {
	entity, err := scanWorkout(s.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Workout{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return domain.Workout{}, err
	}
	exercises, err := s.exercises(ctx, "WHERE workout_id = ?", entity.ID)
	if err != nil {
		return domain.Workout{}, err
	}
	entity.Exercises = exercises[entity.ID]
	return entity, nil
}

// Save persists a Workout and replaces its exercise list in one transaction.
// PRE: entity has been validated
// POST: Workout row upserted; exercises equal entity.Exercises
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Workout) error {
	muscles, err := storage.EncodeJSON(nonNil(entity.TargetMuscles))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "name", "description", "difficulty", "target_muscles", "goal_type", "duration_minutes", "active", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "description=excluded.description", "difficulty=excluded.difficulty", "target_muscles=excluded.target_muscles", "goal_type=excluded.goal_type", "duration_minutes=excluded.duration_minutes", "active=excluded.active"}

	query := fmt.Sprintf(
		"INSERT INTO workout (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	if _, err := tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Description,
		entity.Difficulty,
		muscles,
		entity.GoalType,
		entity.DurationMinutes,
		storage.Bool(entity.Active),
		storage.FormatTime(entity.CreatedAt),
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM workout_exercise WHERE workout_id = ?", entity.ID); err != nil {
		return err
	}
	for _, e := range entity.Exercises {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO workout_exercise (id, workout_id, name, sequence, sets, reps, rest_seconds, warmup) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			e.ID, entity.ID, e.Name, e.Sequence, e.Sets, e.Reps, e.RestSeconds, storage.Bool(e.Warmup),
		); err != nil {
			return fmt.Errorf("failed to save exercise %q: %w", e.Name, err)
		}
	}

	return tx.Commit()
}

// List retrieves workouts in library order (difficulty, then name) with their exercises.
// PRE: filter has valid parameters
// POST: Returns workouts matching the filter
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Workout, error) {
	query := selectColumns
	if filter.ActiveOnly {
		query += " WHERE active = 1"
	}
	query += ` ORDER BY CASE difficulty WHEN 'beginner' THEN 0 WHEN 'intermediate' THEN 1 ELSE 2 END, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	var results []domain.Workout
	for rows.Next() {
		entity, err := scanWorkout(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	exercises, err := s.exercises(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Exercises = exercises[results[i].ID]
	}
	return results, nil
}

// exercises loads exercise rows grouped by workout ID, each group ordered by sequence.
func (s *SQLiteStore) exercises(ctx context.Context, where string, args ...any) (map[string][]domain.Exercise, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, workout_id, name, sequence, sets, reps, rest_seconds, warmup FROM workout_exercise "+where+" ORDER BY workout_id, sequence",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.Exercise)
	for rows.Next() {
		var e domain.Exercise
		var warmup int
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.Sequence, &e.Sets, &e.Reps, &e.RestSeconds, &warmup); err != nil {
			return nil, err
		}
		e.Warmup = warmup == 1
		out[e.WorkoutID] = append(out[e.WorkoutID], e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row scanner) (domain.Workout, error) {
	var entity domain.Workout
	var muscles, createdAt string
	var active int
	if err := row.Scan(&entity.ID, &entity.Name, &entity.Description, &entity.Difficulty, &muscles, &entity.GoalType, &entity.DurationMinutes, &active, &createdAt); err != nil {
		return domain.Workout{}, err
	}
	if err := storage.DecodeJSON(muscles, &entity.TargetMuscles); err != nil {
		return domain.Workout{}, fmt.Errorf("workout %s target_muscles: %w", entity.ID, err)
	}
	entity.Active = active == 1
	t, err := storage.ParseTime(createdAt)
	if err != nil {
		return domain.Workout{}, fmt.Errorf("workout %s created_at: %w", entity.ID, err)
	}
	entity.CreatedAt = t
	return entity, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
