package member

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/member"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newMember(id, name string) domain.Member {
	return domain.Member{ID: id, Name: name, CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

// TestSQLiteStore_SaveAndGet verifies optional columns round-trip as empty strings.
func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	full := newMember("m1", "Maria Clara")
	full.Phone = "09171234567"
	full.Email = "maria@example.com"
	if err := store.Save(ctx, full); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, newMember("m2", "Jose")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Phone != full.Phone || got.Email != full.Email || !got.CreatedAt.Equal(full.CreatedAt) {
		t.Errorf("got %+v, want %+v", got, full)
	}

	bare, _ := store.GetByID(ctx, "m2")
	if bare.Phone != "" || bare.Email != "" || bare.AccountID != "" {
		t.Errorf("optional fields should be empty, got %+v", bare)
	}
}

// TestSQLiteStore_ListAndSearch verifies name ordering and substring search.
func TestSQLiteStore_ListAndSearch(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()
	for _, m := range []domain.Member{newMember("m1", "Pedro"), newMember("m2", "Andres"), newMember("m3", "Pedrito")} {
		store.Save(ctx, m)
	}

	all, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Andres" {
		t.Errorf("List = %+v", all)
	}

	found, _ := store.Search(ctx, "pedr", 10)
	if len(found) != 2 {
		t.Errorf("Search(pedr) = %d results, want 2", len(found))
	}

	page, _ := store.List(ctx, ListFilter{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].Name != "Pedrito" {
		t.Errorf("page = %+v", page)
	}
}

// TestSQLiteStore_SearchByPhone verifies walk-ins can be found by a phone fragment.
func TestSQLiteStore_SearchByPhone(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	juan := newMember("m1", "Juan")
	juan.Phone = "0917-555-0142"
	maria := newMember("m2", "Maria")
	maria.Phone = "0918-222-7788"
	for _, m := range []domain.Member{juan, maria, newMember("m3", "Nophone")} {
		if err := store.Save(ctx, m); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"555-01", []string{"m1"}},
		{"091", []string{"m1", "m2"}},
		{"mari", []string{"m2"}},
		{"0000", nil},
	}
	for _, tt := range tests {
		found, err := store.Search(ctx, tt.query, 10)
		if err != nil {
			t.Fatalf("Search(%q): %v", tt.query, err)
		}
		var ids []string
		for _, m := range found {
			ids = append(ids, m.ID)
		}
		if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
			t.Errorf("Search(%q) = %v, want %v", tt.query, ids, tt.want)
		}
	}
}

// TestSQLiteStore_DeleteCascades verifies member deletion removes owned rows.
func TestSQLiteStore_DeleteCascades(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()
	store.Save(ctx, newMember("m1", "Juan"))

	stmts := []string{
		`INSERT INTO plan (id, name, duration_days, price_cents, active, created_at) VALUES ('p1', '1-Day Pass', 1, 6000, 1, '2026-03-01T00:00:00Z')`,
		`INSERT INTO pass (id, member_id, plan_id, start_date, end_date, price_cents, status, created_at) VALUES ('s1', 'm1', 'p1', '2026-03-01', '2026-03-01', 6000, 'active', '2026-03-01T08:00:00Z')`,
		`INSERT INTO attendance (id, member_id, pass_id, check_in_time) VALUES ('a1', 'm1', 's1', '2026-03-01T09:00:00Z')`,
		`INSERT INTO profile (member_id, experience, training_days, primary_goal, created_at, updated_at) VALUES ('m1', 'beginner', 3, 'general', '2026-03-01T00:00:00Z', '2026-03-01T00:00:00Z')`,
		`INSERT INTO workout_log (id, member_id, workout_name, completed_at) VALUES ('l1', 'm1', 'Push Day', '2026-03-01T10:00:00Z')`,
	}
	for _, q := range stmts {
		if _, err := db.Exec(q); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
	}

	if err := store.Delete(ctx, "m1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, table := range []string{"pass", "attendance", "profile", "workout_log"} {
		var n int
		db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
		if n != 0 {
			t.Errorf("%s rows after delete = %d, want 0", table, n)
		}
	}
	if _, err := store.GetByID(ctx, "m1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "m1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}
