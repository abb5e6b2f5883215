package friendship

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	dbutil "github.com/yokinanya/omega-miya/internal/db"
	"github.com/yokinanya/omega-miya/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}
	if errMigrate := dbutil.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

func TestQueryOrInitCreatesZeroedRow(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)

	row, errQuery := store.QueryOrInit(context.Background(), 1)
	if errQuery != nil {
		t.Fatalf("query or init: %v", errQuery)
	}
	if row.Status != StatusNormal {
		t.Fatalf("status = %q, want %q", row.Status, StatusNormal)
	}
	if row.Mood != 0 || row.Friendship != 0 || row.Energy != 0 || row.Currency != 0 {
		t.Fatalf("counters not zeroed: %+v", row)
	}
}

func TestSetTwiceKeepsOneRow(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()

	if errSet := store.Set(ctx, 1, Values{Status: StatusNormal, Friendship: 10}); errSet != nil {
		t.Fatalf("first set: %v", errSet)
	}
	if errSet := store.Set(ctx, 1, Values{Status: "happy", Friendship: 25}); errSet != nil {
		t.Fatalf("second set: %v", errSet)
	}

	var count int64
	if errCount := conn.Model(&models.Friendship{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("row count = %d, want 1", count)
	}

	row, errQuery := store.QueryOrInit(ctx, 1)
	if errQuery != nil {
		t.Fatalf("query: %v", errQuery)
	}
	if row.Status != "happy" || row.Friendship != 25 {
		t.Fatalf("row = %+v, want status happy friendship 25", row)
	}
}

func TestChangeAppliesDeltas(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()

	if errSet := store.Set(ctx, 1, Values{Status: StatusNormal, Friendship: 10, Currency: 5}); errSet != nil {
		t.Fatalf("set: %v", errSet)
	}
	if errChange := store.Change(ctx, 1, nil, 1, 2.5, 0, -3, 0); errChange != nil {
		t.Fatalf("change: %v", errChange)
	}

	row, errQuery := store.QueryOrInit(ctx, 1)
	if errQuery != nil {
		t.Fatalf("query: %v", errQuery)
	}
	if row.Status != StatusNormal {
		t.Fatalf("nil status must keep stored status, got %q", row.Status)
	}
	if row.Mood != 1 || row.Friendship != 12.5 || row.Currency != 2 {
		t.Fatalf("deltas misapplied: %+v", row)
	}
}

func TestChangeOnMissingRowInitializesWithDeltas(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()

	if errChange := store.Change(ctx, 7, nil, 0, 3, 0, 0, 0); errChange != nil {
		t.Fatalf("change: %v", errChange)
	}

	row, errQuery := store.QueryOrInit(ctx, 7)
	if errQuery != nil {
		t.Fatalf("query: %v", errQuery)
	}
	if row.Status != StatusNormal || row.Friendship != 3 {
		t.Fatalf("row = %+v, want status normal friendship 3", row)
	}
}
