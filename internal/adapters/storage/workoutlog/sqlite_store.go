package workoutlog

import (
	"context"
	"database/sql"
	"fmt"

	"frontdesk/internal/adapters/storage"
	"frontdesk/internal/domain/workout"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new workout log Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save appends a workout log.
// PRE: value has been validated
// POST: Log row written
func (s *SQLiteStore) Save(ctx context.Context, value workout.Log) error {
	muscles, err := storage.EncodeJSON(value.TargetMuscles)
	if err != nil {
		return err
	}
	if value.TargetMuscles == nil {
		muscles = "[]"
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO workout_log (id, member_id, workout_id, workout_name, target_muscles, completed_at, duration_minutes, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		value.ID,
		value.MemberID,
		storage.NullString(value.WorkoutID),
		value.WorkoutName,
		muscles,
		storage.FormatTime(value.CompletedAt),
		value.DurationMinutes,
		storage.NullString(value.Notes),
	)
	return err
}

// ListByMemberID retrieves a member's logs, most recent first.
// PRE: memberID is non-empty
func (s *SQLiteStore) ListByMemberID(ctx context.Context, memberID string) ([]workout.Log, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, member_id, workout_id, workout_name, target_muscles, completed_at, duration_minutes, notes
		FROM workout_log WHERE member_id = ? ORDER BY completed_at DESC, id`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []workout.Log
	for rows.Next() {
		var l workout.Log
		var workoutID, notes sql.NullString
		var muscles, completedAt string
		if err := rows.Scan(&l.ID, &l.MemberID, &workoutID, &l.WorkoutName, &muscles, &completedAt, &l.DurationMinutes, &notes); err != nil {
			return nil, err
		}
		l.WorkoutID = workoutID.String
		l.Notes = notes.String
		if err := storage.DecodeJSON(muscles, &l.TargetMuscles); err != nil {
			return nil, fmt.Errorf("workout log %s target_muscles: %w", l.ID, err)
		}
		if l.CompletedAt, err = storage.ParseTime(completedAt); err != nil {
			return nil, err
		}
		results = append(results, l)
	}
	return results, rows.Err()
}
