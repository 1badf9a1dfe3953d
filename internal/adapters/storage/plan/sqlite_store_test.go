package plan

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/plan"
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

func samplePlan(id, name string, days int, price string, active bool) domain.Plan {
	return domain.Plan{
		ID:           id,
		Name:         name,
		DurationDays: days,
		Price:        decimal.RequireFromString(price),
		Active:       active,
		CreatedAt:    time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

// TestSQLiteStore_SaveAndGet verifies a plan round-trips including its price.
func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	p := samplePlan("p1", "3-Day Pass", 3, "150.00", true)
	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != p.Name || got.DurationDays != 3 || !got.Price.Equal(p.Price) || !got.Active {
		t.Errorf("got %+v, want %+v", got, p)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, p.CreatedAt)
	}

	byName, err := store.GetByName(ctx, "3-Day Pass")
	if err != nil || byName.ID != "p1" {
		t.Errorf("GetByName = %+v, %v", byName, err)
	}
}

// TestSQLiteStore_SaveUpdates verifies the upsert path reprices an existing plan.
func TestSQLiteStore_SaveUpdates(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	p := samplePlan("p1", "1-Day Pass", 1, "60.00", true)
	store.Save(ctx, p)
	p.Price = decimal.RequireFromString("75.50")
	p.Active = false
	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save update: %v", err)
	}
	got, _ := store.GetByID(ctx, "p1")
	if got.Price.StringFixed(2) != "75.50" || got.Active {
		t.Errorf("after update got price %s active %v", got.Price.StringFixed(2), got.Active)
	}
}

// TestSQLiteStore_GetMissing verifies ErrNotFound.
func TestSQLiteStore_GetMissing(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	if _, err := store.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestSQLiteStore_List verifies ordering and the active filter.
func TestSQLiteStore_List(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()
	store.Save(ctx, samplePlan("p7", "7-Day Pass", 7, "250", true))
	store.Save(ctx, samplePlan("p1", "1-Day Pass", 1, "60", true))
	store.Save(ctx, samplePlan("p3", "3-Day Pass", 3, "150", false))

	all, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != "p1" || all[1].ID != "p3" || all[2].ID != "p7" {
		t.Errorf("List order = %v", ids(all))
	}

	active, _ := store.List(ctx, ListFilter{ActiveOnly: true})
	if len(active) != 2 {
		t.Errorf("active plans = %v, want 2", ids(active))
	}
}

// TestSQLiteStore_DeleteReferenced verifies a plan with passes cannot be deleted.
func TestSQLiteStore_DeleteReferenced(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()
	store.Save(ctx, samplePlan("p1", "1-Day Pass", 1, "60", true))
	store.Save(ctx, samplePlan("p2", "3-Day Pass", 3, "150", true))
	db.Exec(`INSERT INTO member (id, name, created_at) VALUES ('m1', 'Juan', '2026-03-01T00:00:00Z')`)
	db.Exec(`INSERT INTO pass (id, member_id, plan_id, start_date, end_date, price_cents, status, created_at)
		VALUES ('s1', 'm1', 'p1', '2026-03-01', '2026-03-01', 6000, 'active', '2026-03-01T08:00:00Z')`)

	if err := store.Delete(ctx, "p1"); !errors.Is(err, domain.ErrReferenced) {
		t.Errorf("Delete referenced = %v, want ErrReferenced", err)
	}
	if _, err := store.GetByID(ctx, "p1"); err != nil {
		t.Errorf("referenced plan should survive: %v", err)
	}

	if err := store.Delete(ctx, "p2"); err != nil {
		t.Fatalf("Delete unreferenced: %v", err)
	}
	if _, err := store.GetByID(ctx, "p2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted plan lookup = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "p2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func ids(ps []domain.Plan) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
