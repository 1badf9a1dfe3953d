package achievement

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"frontdesk/internal/adapters/storage"
	domain "frontdesk/internal/domain/achievement"
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
	if _, err := db.Exec(`INSERT INTO member (id, name, created_at) VALUES ('m1', 'Juan', '2026-03-01T00:00:00Z')`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

// TestSQLiteStore_Catalog verifies the default catalog round-trips.
func TestSQLiteStore_Catalog(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	catalog := domain.DefaultCatalog()
	for i, a := range catalog {
		a.ID = a.Code
		catalog[i] = a
		if err := store.Save(ctx, a); err != nil {
			t.Fatalf("Save %s: %v", a.Code, err)
		}
	}

	listed, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != len(catalog) {
		t.Errorf("List = %d rows, want %d", len(listed), len(catalog))
	}

	for _, want := range catalog {
		got, err := store.GetByCode(ctx, want.Code)
		if err != nil {
			t.Fatalf("GetByCode %s: %v", want.Code, err)
		}
		if got != want {
			t.Errorf("GetByCode(%s) = %+v, want %+v", want.Code, got, want)
		}
	}

	if _, err := store.GetByCode(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing err = %v", err)
	}
}

// TestSQLiteStore_UnlockIsIdempotent verifies a pair is only unlocked once.
func TestSQLiteStore_UnlockIsIdempotent(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()
	a := domain.DefaultCatalog()[0]
	a.ID = "a1"
	store.Save(ctx, a)

	at := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	first, err := store.Unlock(ctx, domain.MemberAchievement{ID: "u1", MemberID: "m1", AchievementID: "a1", UnlockedAt: at})
	if err != nil || !first {
		t.Fatalf("first Unlock = %v, %v; want true", first, err)
	}
	second, err := store.Unlock(ctx, domain.MemberAchievement{ID: "u2", MemberID: "m1", AchievementID: "a1", UnlockedAt: at.Add(time.Hour)})
	if err != nil || second {
		t.Fatalf("second Unlock = %v, %v; want false", second, err)
	}

	unlocked, _ := store.ListUnlocked(ctx, "m1")
	if len(unlocked) != 1 || unlocked[0].ID != "u1" || !unlocked[0].UnlockedAt.Equal(at) {
		t.Errorf("ListUnlocked = %+v", unlocked)
	}
}
