package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/member"
)

const selectColumns = "SELECT id, name, phone, email, account_id, created_at FROM member"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entity, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Member{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entity, err
}

// Save persists a Member to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "name", "phone", "email", "account_id", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "phone=excluded.phone", "email=excluded.email", "account_id=excluded.account_id"}

	query := fmt.Sprintf(
		"INSERT INTO member (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		storage.NullString(entity.Phone),
		storage.NullString(entity.Email),
		storage.NullString(entity.AccountID),
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Member and, through cascades, everything the member owns.
// PRE: id is non-empty
// POST: Member, passes, attendance, profile, achievements and workout logs removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Search finds members whose name or phone contains the query (case-insensitive LIKE).
// PRE: query is non-empty, limit > 0
// POST: Returns matching members ordered by name
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]domain.Member, error) {
	return s.List(ctx, ListFilter{Search: query, Limit: limit})
}

// List retrieves members ordered by name.
// PRE: filter has valid parameters
// POST: Returns members matching the filter; Limit 0 means all
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	query := selectColumns + " WHERE 1=1"
	var args []any
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query += " AND (name LIKE ? OR phone LIKE ?)"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY name, id"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Member
	for rows.Next() {
		entity, err := scanMember(rows)
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

func scanMember(row scanner) (domain.Member, error) {
	var entity domain.Member
	var phone, email, accountID sql.NullString
	var createdAt string
	if err := row.Scan(&entity.ID, &entity.Name, &phone, &email, &accountID, &createdAt); err != nil {
		return domain.Member{}, err
	}
	entity.Phone = phone.String
	entity.Email = email.String
	entity.AccountID = accountID.String
	t, err := storage.ParseTime(createdAt)
	if err != nil {
		return domain.Member{}, fmt.Errorf("member %s created_at: %w", entity.ID, err)
	}
	entity.CreatedAt = t
	return entity, nil
}
