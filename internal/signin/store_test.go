package signin

import (
	"context"
	"testing"
	"time"

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

func TestRecordInsertsNormalSignIn(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()
	today := time.Now()

	if errRecord := store.Record(ctx, 1, today, ""); errRecord != nil {
		t.Fatalf("record: %v", errRecord)
	}

	row, errGet := store.Get(ctx, 1, today)
	if errGet != nil {
		t.Fatalf("get: %v", errGet)
	}
	if row.SignInInfo != InfoNormal {
		t.Fatalf("sign_in_info = %q, want %q", row.SignInInfo, InfoNormal)
	}
}

func TestRecordSameDayTwiceKeepsOneRow(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()
	today := time.Now()

	if errFirst := store.Record(ctx, 1, today, ""); errFirst != nil {
		t.Fatalf("first record: %v", errFirst)
	}
	if errSecond := store.Record(ctx, 1, today, ""); errSecond != nil {
		t.Fatalf("second record: %v", errSecond)
	}

	var count int64
	if errCount := conn.Model(&models.SignIn{}).Where("entity_index_id = ?", 1).Count(&count).Error; errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}

	row, errGet := store.Get(ctx, 1, today)
	if errGet != nil {
		t.Fatalf("get: %v", errGet)
	}
	if row.SignInInfo != InfoDuplicate {
		t.Fatalf("sign_in_info = %q, want %q", row.SignInInfo, InfoDuplicate)
	}
}

func TestRecordBackdatedKeepsExplicitInfo(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()
	yesterday := time.Now().AddDate(0, 0, -1)

	if errRecord := store.Record(ctx, 1, yesterday, InfoFixed); errRecord != nil {
		t.Fatalf("record: %v", errRecord)
	}

	row, errGet := store.Get(ctx, 1, yesterday)
	if errGet != nil {
		t.Fatalf("get: %v", errGet)
	}
	if row.SignInInfo != InfoFixed {
		t.Fatalf("sign_in_info = %q, want %q", row.SignInInfo, InfoFixed)
	}
}

func TestSignedAndDays(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()
	today := time.Now()

	signed, errSigned := store.Signed(ctx, 1, today)
	if errSigned != nil {
		t.Fatalf("signed: %v", errSigned)
	}
	if signed {
		t.Fatal("signed before any record")
	}

	for offset := 0; offset < 3; offset++ {
		day := today.AddDate(0, 0, -offset)
		if errRecord := store.Record(ctx, 1, day, ""); errRecord != nil {
			t.Fatalf("record day -%d: %v", offset, errRecord)
		}
	}
	// Another entity's records must not leak into the listing.
	if errRecord := store.Record(ctx, 2, today, ""); errRecord != nil {
		t.Fatalf("record other entity: %v", errRecord)
	}

	signed, errSigned = store.Signed(ctx, 1, today)
	if errSigned != nil {
		t.Fatalf("signed: %v", errSigned)
	}
	if !signed {
		t.Fatal("not signed after record")
	}

	listed, errDays := store.Days(ctx, 1)
	if errDays != nil {
		t.Fatalf("days: %v", errDays)
	}
	if len(listed) != 3 {
		t.Fatalf("days = %d, want 3", len(listed))
	}
	if got := ContinuousStreak(listed, today); got != 3 {
		t.Fatalf("streak from stored days = %d, want 3", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()
	today := time.Now()

	if errRecord := store.Record(ctx, 1, today, ""); errRecord != nil {
		t.Fatalf("record: %v", errRecord)
	}
	if errDelete := store.Delete(ctx, 1, today); errDelete != nil {
		t.Fatalf("delete: %v", errDelete)
	}
	if errDelete := store.Delete(ctx, 1, today); errDelete != nil {
		t.Fatalf("second delete: %v", errDelete)
	}
	if _, errGet := store.Get(ctx, 1, today); errGet != ErrNotFound {
		t.Fatalf("get after delete = %v, want ErrNotFound", errGet)
	}
}
