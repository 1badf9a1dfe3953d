package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/plan"
)

const selectColumns = "SELECT id, name, duration_days, price_cents, active, created_at FROM plan"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new plan Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Plan by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Plan, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entity, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Plan{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entity, err
}

// GetByName retrieves a Plan by its exact name.
// PRE: name is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Plan, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE name = ? ORDER BY created_at LIMIT 1", name)
	entity, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Plan{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return entity, err
}

// Save persists a Plan to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Plan) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "name", "duration_days", "price_cents", "active", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "duration_days=excluded.duration_days", "price_cents=excluded.price_cents", "active=excluded.active"}

	query := fmt.Sprintf(
		"INSERT INTO plan (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.DurationDays,
		storage.Cents(entity.Price),
		storage.Bool(entity.Active),
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Plan that no pass references.
// PRE: id is non-empty
// POST: Plan removed, or domain.ErrReferenced when passes still point at it
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var refs int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM pass WHERE plan_id = ?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w (%d passes)", domain.ErrReferenced, refs)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM plan WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return tx.Commit()
}

// List retrieves plans ordered by duration then name.
// PRE: filter has valid parameters
// POST: Returns plans matching the filter
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Plan, error) {
	query := selectColumns
	var args []any
	if filter.ActiveOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY duration_days, name"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Plan
	for rows.Next() {
		entity, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(row scanner) (domain.Plan, error) {
	var entity domain.Plan
	var cents int64
	var active int
	var createdAt string
	if err := row.Scan(&entity.ID, &entity.Name, &entity.DurationDays, &cents, &active, &createdAt); err != nil {
		return domain.Plan{}, err
	}
	entity.Price = storage.FromCents(cents)
	entity.Active = active == 1
	t, err := storage.ParseTime(createdAt)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("plan %s created_at: %w", entity.ID, err)
	}
	entity.CreatedAt = t
	return entity, nil
}
