package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/profile"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new profile Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByMemberID retrieves the member's Profile.
// PRE: memberID is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByMemberID(ctx context.Context, memberID string) (domain.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT member_id, age, gender, experience, training_days, primary_goal, high_intensity,
			weekly_schedule, height_cm, weight_kg, active, created_at, updated_at
		FROM profile WHERE member_id = ?`, memberID)

	var entity domain.Profile
	var gender sql.NullString
	var height, weight sql.NullFloat64
	var highIntensity, active int
	var schedule, createdAt, updatedAt string
	err := row.Scan(
		&entity.MemberID,
		&entity.Age,
		&gender,
		&entity.Experience,
		&entity.TrainingDays,
		&entity.PrimaryGoal,
		&highIntensity,
		&schedule,
		&height,
		&weight,
		&active,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, memberID)
	}
	if err != nil {
		return domain.Profile{}, err
	}

	entity.Gender = gender.String
	entity.HighIntensity = highIntensity == 1
	entity.Active = active == 1
	if height.Valid {
		entity.HeightCm = &height.Float64
	}
	if weight.Valid {
		entity.WeightKg = &weight.Float64
	}
	entity.WeeklySchedule = map[int][]string{}
	if err := storage.DecodeJSON(schedule, &entity.WeeklySchedule); err != nil {
		return domain.Profile{}, fmt.Errorf("profile %s weekly_schedule: %w", memberID, err)
	}
	if entity.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return domain.Profile{}, err
	}
	if entity.UpdatedAt, err = storage.ParseTime(updatedAt); err != nil {
		return domain.Profile{}, err
	}
	return entity, nil
}

// Save persists a Profile to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); created_at is kept from the first save
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Profile) error {
	schedule := entity.WeeklySchedule
	if schedule == nil {
		schedule = map[int][]string{}
	}
	scheduleJSON, err := storage.EncodeJSON(schedule)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"member_id", "age", "gender", "experience", "training_days", "primary_goal", "high_intensity", "weekly_schedule", "height_cm", "weight_kg", "active", "created_at", "updated_at"}
	placeholders := make([]string, len(fields))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	var updates []string
	for _, f := range fields {
		if f == "member_id" || f == "created_at" {
			continue
		}
		updates = append(updates, f+"=excluded."+f)
	}

	query := fmt.Sprintf(
		"INSERT INTO profile (%s) VALUES (%s) ON CONFLICT(member_id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.MemberID,
		entity.Age,
		storage.NullString(entity.Gender),
		entity.Experience,
		entity.TrainingDays,
		entity.PrimaryGoal,
		storage.Bool(entity.HighIntensity),
		scheduleJSON,
		nullFloat(entity.HeightCm),
		nullFloat(entity.WeightKg),
		storage.Bool(entity.Active),
		storage.FormatTime(entity.CreatedAt),
		storage.FormatTime(entity.UpdatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
