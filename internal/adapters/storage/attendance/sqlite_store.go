package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/attendance"
)

const selectColumns = "SELECT id, member_id, pass_id, check_in_time, check_out_time FROM attendance"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Attendance by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Attendance, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entity, err := scanAttendance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Attendance{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entity, err
}

// Save persists an Attendance to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Attendance) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "member_id", "pass_id", "check_in_time", "check_out_time"}
	placeholders := []string{"?", "?", "?", "?", "?"}
	updates := []string{"pass_id=excluded.pass_id", "check_in_time=excluded.check_in_time", "check_out_time=excluded.check_out_time"}

	query := fmt.Sprintf(
		"INSERT INTO attendance (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		storage.NullString(entity.PassID),
		storage.FormatTime(entity.CheckInTime),
		storage.NullTime(entity.CheckOutTime),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListByMemberID retrieves a member's visits, most recent first.
// PRE: memberID is non-empty
// POST: Returns attendance rows for the member
func (s *SQLiteStore) ListByMemberID(ctx context.Context, memberID string) ([]domain.Attendance, error) {
	return s.list(ctx, selectColumns+" WHERE member_id = ? ORDER BY check_in_time DESC, id", memberID)
}

// ListByMemberIDAndDate retrieves a member's visits that started on the given day, most recent first.
// PRE: memberID is non-empty
// POST: Returns attendance rows whose check-in date equals day
func (s *SQLiteStore) ListByMemberIDAndDate(ctx context.Context, memberID string, day time.Time) ([]domain.Attendance, error) {
	return s.list(ctx,
		selectColumns+" WHERE member_id = ? AND SUBSTR(check_in_time, 1, 10) = ? ORDER BY check_in_time DESC, id",
		memberID, storage.FormatDate(day))
}

// ListOnDate retrieves every visit that started on the given day with the member's name.
// POST: Ordered by check-in time
func (s *SQLiteStore) ListOnDate(ctx context.Context, day time.Time) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.member_id, a.pass_id, a.check_in_time, a.check_out_time, m.name
		FROM attendance a
		JOIN member m ON m.id = a.member_id
		WHERE SUBSTR(a.check_in_time, 1, 10) = ?
		ORDER BY a.check_in_time, a.id`, storage.FormatDate(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Visit
	for rows.Next() {
		var v Visit
		var passID, checkOut sql.NullString
		var checkIn string
		if err := rows.Scan(&v.ID, &v.MemberID, &passID, &checkIn, &checkOut, &v.MemberName); err != nil {
			return nil, err
		}
		if err := fillTimes(&v.Attendance, checkIn, checkOut); err != nil {
			return nil, err
		}
		v.PassID = passID.String
		results = append(results, v)
	}
	return results, rows.Err()
}

// CountOnDate returns the number of check-ins on the given day.
func (s *SQLiteStore) CountOnDate(ctx context.Context, day time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance WHERE SUBSTR(check_in_time, 1, 10) = ?",
		storage.FormatDate(day)).Scan(&n)
	return n, err
}

// HourlyCounts returns check-ins per hour of day across all history.
// POST: index is the local hour 0..23 the check-in was recorded at
func (s *SQLiteStore) HourlyCounts(ctx context.Context) ([24]int, error) {
	var counts [24]int
	rows, err := s.db.QueryContext(ctx, `
		SELECT CAST(SUBSTR(check_in_time, 12, 2) AS INTEGER) AS hour, COUNT(*)
		FROM attendance
		GROUP BY hour`)
	if err != nil {
		return counts, err
	}
	defer rows.Close()

	for rows.Next() {
		var hour, n int
		if err := rows.Scan(&hour, &n); err != nil {
			return counts, err
		}
		if hour >= 0 && hour < 24 {
			counts[hour] = n
		}
	}
	return counts, rows.Err()
}

// CheckInTimesByMember returns every member's check-in times, oldest first.
// Members who never visited are absent from the map.
func (s *SQLiteStore) CheckInTimesByMember(ctx context.Context) (map[string][]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT member_id, check_in_time FROM attendance ORDER BY member_id, check_in_time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]time.Time)
	for rows.Next() {
		var memberID, checkIn string
		if err := rows.Scan(&memberID, &checkIn); err != nil {
			return nil, err
		}
		t, err := storage.ParseTime(checkIn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse check_in_time: %w", err)
		}
		out[memberID] = append(out[memberID], t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Attendance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Attendance
	for rows.Next() {
		entity, err := scanAttendance(rows)
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

func scanAttendance(row scanner) (domain.Attendance, error) {
	var entity domain.Attendance
	var passID, checkOut sql.NullString
	var checkIn string
	if err := row.Scan(&entity.ID, &entity.MemberID, &passID, &checkIn, &checkOut); err != nil {
		return domain.Attendance{}, err
	}
	entity.PassID = passID.String
	if err := fillTimes(&entity, checkIn, checkOut); err != nil {
		return domain.Attendance{}, err
	}
	return entity, nil
}

func fillTimes(entity *domain.Attendance, checkIn string, checkOut sql.NullString) error {
	var err error
	if entity.CheckInTime, err = storage.ParseTime(checkIn); err != nil {
		return fmt.Errorf("failed to parse check_in_time: %w", err)
	}
	if entity.CheckOutTime, err = storage.ParseNullTime(checkOut); err != nil {
		return fmt.Errorf("failed to parse check_out_time: %w", err)
	}
	return nil
}
