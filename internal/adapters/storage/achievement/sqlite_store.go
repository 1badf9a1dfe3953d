package achievement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/achievement"
)

const selectColumns = "SELECT id, code, name, description, icon, category, hidden, metric, threshold, muscle_group FROM achievement"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new achievement Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByCode retrieves an Achievement by its stable code.
// PRE: code is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByCode(ctx context.Context, code string) (domain.Achievement, error) {
	entity, err := scanAchievement(s.db.QueryRowContext(ctx, selectColumns+" WHERE code = ?", code))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Achievement{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return entity, err
}

// Save persists an Achievement to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Achievement) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "code", "name", "description", "icon", "category", "hidden", "metric", "threshold", "muscle_group"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{"code=excluded.code", "name=excluded.name", "description=excluded.description", "icon=excluded.icon", "category=excluded.category", "hidden=excluded.hidden", "metric=excluded.metric", "threshold=excluded.threshold", "muscle_group=excluded.muscle_group"}

	query := fmt.Sprintf(
		"INSERT INTO achievement (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Code,
		entity.Name,
		entity.Description,
		entity.Icon,
		entity.Category,
		storage.Bool(entity.Hidden),
		entity.Metric,
		entity.Threshold,
		storage.NullString(entity.MuscleGroup),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// List retrieves the whole catalog ordered by category then threshold.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Achievement, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY category, threshold, code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Achievement
	for rows.Next() {
		entity, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Unlock records that a member earned an achievement.
// PRE: value has been validated
// POST: Returns true when a new row was written, false when the pair was already unlocked
// INVARIANT: At most one row per (member, achievement)
func (s *SQLiteStore) Unlock(ctx context.Context, value domain.MemberAchievement) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO member_achievement (id, member_id, achievement_id, unlocked_at) VALUES (?, ?, ?, ?)",
		value.ID, value.MemberID, value.AchievementID, storage.FormatTime(value.UnlockedAt))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// ListUnlocked retrieves a member's unlocks, earliest first.
// PRE: memberID is non-empty
func (s *SQLiteStore) ListUnlocked(ctx context.Context, memberID string) ([]domain.MemberAchievement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, member_id, achievement_id, unlocked_at FROM member_achievement WHERE member_id = ? ORDER BY unlocked_at, id",
		memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.MemberAchievement
	for rows.Next() {
		var entity domain.MemberAchievement
		var unlockedAt string
		if err := rows.Scan(&entity.ID, &entity.MemberID, &entity.AchievementID, &unlockedAt); err != nil {
			return nil, err
		}
		if entity.UnlockedAt, err = storage.ParseTime(unlockedAt); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAchievement(row scanner) (domain.Achievement, error) {
	var entity domain.Achievement
	var hidden int
	var muscle sql.NullString
	if err := row.Scan(&entity.ID, &entity.Code, &entity.Name, &entity.Description, &entity.Icon, &entity.Category, &hidden, &entity.Metric, &entity.Threshold, &muscle); err != nil {
		return domain.Achievement{}, err
	}
	entity.Hidden = hidden == 1
	entity.MuscleGroup = muscle.String
	return entity, nil
}
