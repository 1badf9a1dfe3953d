package pass

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/pass"
)

const selectColumns = "SELECT id, member_id, plan_id, start_date, end_date, price_cents, status, created_at FROM pass"

// expiredPredicate matches passes that are expired as of the bound date, whether or not
// the stored status has been swept yet.
const expiredPredicate = "(status = 'expired' OR end_date < ?)"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new pass Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Pass by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Pass, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entity, err := scanPass(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Pass{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entity, err
}

// Save persists a Pass to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
// INVARIANT: A stored expired status is never overwritten with active
// INVARIANT: price_cents is written once at insert and never updated
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Pass) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "member_id", "plan_id", "start_date", "end_date", "price_cents", "status", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"start_date=excluded.start_date",
		"end_date=excluded.end_date",
		"status=CASE WHEN pass.status = 'expired' THEN 'expired' ELSE excluded.status END",
	}

	query := fmt.Sprintf(
		"INSERT INTO pass (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		entity.PlanID,
		storage.FormatDate(entity.StartDate),
		storage.FormatDate(entity.EndDate),
		storage.Cents(entity.PriceSnapshot),
		entity.Status,
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListByMemberID retrieves a member's passes, newest sale first.
// PRE: memberID is non-empty
// POST: Returns passes for the member
func (s *SQLiteStore) ListByMemberID(ctx context.Context, memberID string) ([]domain.Pass, error) {
	return s.list(ctx, selectColumns+" WHERE member_id = ? ORDER BY created_at DESC, id", memberID)
}

// ListValidOn returns every pass that grants entry on the given day.
// PRE: none
// POST: Returns passes with status active and start_date <= today <= end_date
func (s *SQLiteStore) ListValidOn(ctx context.Context, today time.Time) ([]domain.Pass, error) {
	day := storage.FormatDate(today)
	return s.list(ctx,
		selectColumns+" WHERE status = 'active' AND start_date <= ? AND end_date >= ? ORDER BY member_id, end_date DESC",
		day, day)
}

// ListExpired returns passes that are expired as of today, most recently ended first.
// PRE: limit >= 0; 0 means no limit
// POST: Returns expired passes
func (s *SQLiteStore) ListExpired(ctx context.Context, today time.Time, limit int) ([]domain.Pass, error) {
	query := selectColumns + " WHERE " + expiredPredicate + " ORDER BY end_date DESC, id"
	args := []any{storage.FormatDate(today)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.list(ctx, query, args...)
}

// SweepExpired flips every active pass whose end date is before today to expired.
// PRE: none
// POST: Returns the number of passes changed
// INVARIANT: Idempotent; a second call on the same day changes nothing
func (s *SQLiteStore) SweepExpired(ctx context.Context, today time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE pass SET status = 'expired' WHERE status = 'active' AND end_date < ?",
		storage.FormatDate(today))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// CountActive returns the number of passes that grant entry today.
// POST: Same predicate as ListValidOn: status active and start_date <= today <= end_date
func (s *SQLiteStore) CountActive(ctx context.Context, today time.Time) (int, error) {
	var n int
	day := storage.FormatDate(today)
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pass WHERE status = 'active' AND start_date <= ? AND end_date >= ?",
		day, day).Scan(&n)
	return n, err
}

// CountExpired returns the number of passes that are expired as of today.
func (s *SQLiteStore) CountExpired(ctx context.Context, today time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pass WHERE "+expiredPredicate,
		storage.FormatDate(today)).Scan(&n)
	return n, err
}

// SumRevenue returns the total of all price snapshots; zero when no pass was sold.
func (s *SQLiteStore) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	var cents int64
	if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(price_cents), 0) FROM pass").Scan(&cents); err != nil {
		return decimal.Zero, err
	}
	return storage.FromCents(cents), nil
}

// SumRevenueOn returns the total of price snapshots for passes sold on the given day.
func (s *SQLiteStore) SumRevenueOn(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	var cents int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(price_cents), 0) FROM pass WHERE SUBSTR(created_at, 1, 10) = ?",
		storage.FormatDate(day)).Scan(&cents)
	if err != nil {
		return decimal.Zero, err
	}
	return storage.FromCents(cents), nil
}

// SalesByPlan returns pass count and revenue for every plan, including plans never sold.
// POST: Ordered by count descending, then plan name ascending
func (s *SQLiteStore) SalesByPlan(ctx context.Context) ([]PlanSales, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT plan.id, plan.name, COUNT(pass.id), COALESCE(SUM(pass.price_cents), 0)
		FROM plan
		LEFT JOIN pass ON pass.plan_id = plan.id
		GROUP BY plan.id, plan.name
		ORDER BY COUNT(pass.id) DESC, plan.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []PlanSales
	for rows.Next() {
		var ps PlanSales
		var cents int64
		if err := rows.Scan(&ps.PlanID, &ps.PlanName, &ps.Count, &cents); err != nil {
			return nil, err
		}
		ps.Revenue = storage.FromCents(cents)
		results = append(results, ps)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Pass, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Pass
	for rows.Next() {
		entity, err := scanPass(rows)
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

func scanPass(row scanner) (domain.Pass, error) {
	var entity domain.Pass
	var start, end, createdAt string
	var cents int64
	if err := row.Scan(&entity.ID, &entity.MemberID, &entity.PlanID, &start, &end, &cents, &entity.Status, &createdAt); err != nil {
		return domain.Pass{}, err
	}
	var err error
	if entity.StartDate, err = storage.ParseDate(start); err != nil {
		return domain.Pass{}, err
	}
	if entity.EndDate, err = storage.ParseDate(end); err != nil {
		return domain.Pass{}, err
	}
	if entity.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return domain.Pass{}, fmt.Errorf("pass %s created_at: %w", entity.ID, err)
	}
	entity.PriceSnapshot = storage.FromCents(cents)
	return entity, nil
}
