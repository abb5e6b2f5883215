package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/yokinanya/omega-miya/internal/authnode"
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

func testIdentity(id string) Identity {
	return Identity{BotIndexID: 1, EntityID: id, EntityType: TypeOneBotV11User, ParentID: "group_1"}
}

func TestParseTypeRejectsUnknown(t *testing.T) {
	if _, errParse := ParseType("onebot_v11_user"); errParse != nil {
		t.Fatalf("known type rejected: %v", errParse)
	}
	if _, errParse := ParseType("matrix_room"); errParse == nil {
		t.Fatal("unknown type accepted")
	}
}

func TestRegisterCreatesThenRefreshes(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()
	ident := testIdentity("10001")

	first, errFirst := store.Register(ctx, ident, "alice", "")
	if errFirst != nil {
		t.Fatalf("first register: %v", errFirst)
	}
	second, errSecond := store.Register(ctx, ident, "alice2", "renamed")
	if errSecond != nil {
		t.Fatalf("second register: %v", errSecond)
	}

	if first.ID != second.ID {
		t.Fatalf("index ID changed across register: %d vs %d", first.ID, second.ID)
	}
	if second.EntityName != "alice2" || second.EntityInfo != "renamed" {
		t.Fatalf("row not refreshed: %+v", second)
	}

	var count int64
	if errCount := conn.Model(&models.Entity{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("row count = %d, want 1", count)
	}
}

func TestRegisterIfAbsentKeepsExistingRow(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()
	ident := testIdentity("10001")

	if _, errRegister := store.Register(ctx, ident, "alice", ""); errRegister != nil {
		t.Fatalf("register: %v", errRegister)
	}
	row, errAbsent := store.RegisterIfAbsent(ctx, ident, "other name", "other info")
	if errAbsent != nil {
		t.Fatalf("register if absent: %v", errAbsent)
	}
	if row.EntityName != "alice" {
		t.Fatalf("existing row overwritten: %+v", row)
	}
}

func TestRegisterRejectsUnknownType(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)

	ident := Identity{BotIndexID: 1, EntityID: "x", EntityType: Type("matrix_room"), ParentID: ""}
	if _, errRegister := store.Register(context.Background(), ident, "x", ""); errRegister == nil {
		t.Fatal("unknown type accepted")
	}
}

func TestResolveUniqueDistinguishesTypeAndParent(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()

	user := Identity{BotIndexID: 1, EntityID: "10001", EntityType: TypeOneBotV11User, ParentID: "group_1"}
	group := Identity{BotIndexID: 1, EntityID: "10001", EntityType: TypeOneBotV11Group, ParentID: "group_1"}
	if _, errRegister := store.Register(ctx, user, "as user", ""); errRegister != nil {
		t.Fatalf("register user: %v", errRegister)
	}
	if _, errRegister := store.Register(ctx, group, "as group", ""); errRegister != nil {
		t.Fatalf("register group: %v", errRegister)
	}

	got, errResolve := store.ResolveUnique(ctx, user)
	if errResolve != nil {
		t.Fatalf("resolve: %v", errResolve)
	}
	if got.EntityName != "as user" {
		t.Fatalf("resolved wrong row: %+v", got)
	}

	other := Identity{BotIndexID: 1, EntityID: "10001", EntityType: TypeOneBotV11User, ParentID: "group_2"}
	if _, errResolve := store.ResolveUnique(ctx, other); !errors.Is(errResolve, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", errResolve)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	ctx := context.Background()
	ident := testIdentity("10001")

	if _, errRegister := store.Register(ctx, ident, "alice", ""); errRegister != nil {
		t.Fatalf("register: %v", errRegister)
	}
	if errDelete := store.Delete(ctx, ident); errDelete != nil {
		t.Fatalf("delete: %v", errDelete)
	}
	if errDelete := store.Delete(ctx, ident); errDelete != nil {
		t.Fatalf("repeat delete: %v", errDelete)
	}
	if _, errResolve := store.ResolveUnique(ctx, ident); !errors.Is(errResolve, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", errResolve)
	}
}

func TestListWithAuthNode(t *testing.T) {
	conn := openTestDB(t)
	store := NewGormStore(conn)
	auth := authnode.NewGormStore(conn)
	ctx := context.Background()

	holder, errRegister := store.Register(ctx, testIdentity("10001"), "holder", "")
	if errRegister != nil {
		t.Fatalf("register holder: %v", errRegister)
	}
	elevated, errRegister := store.Register(ctx, testIdentity("10002"), "elevated", "")
	if errRegister != nil {
		t.Fatalf("register elevated: %v", errRegister)
	}
	if _, errRegister := store.Register(ctx, testIdentity("10003"), "bystander", ""); errRegister != nil {
		t.Fatalf("register bystander: %v", errRegister)
	}

	if errSet := auth.Set(ctx, holder.ID, "OmegaInternal", "OmegaInternal", "level", 1, ""); errSet != nil {
		t.Fatalf("set holder node: %v", errSet)
	}
	if errSet := auth.Set(ctx, elevated.ID, "OmegaInternal", "OmegaInternal", "level", 5, ""); errSet != nil {
		t.Fatalf("set elevated node: %v", errSet)
	}

	strictRows, errStrict := store.ListWithAuthNode(ctx, "OmegaInternal", "OmegaInternal", "level", 1, true)
	if errStrict != nil {
		t.Fatalf("strict list: %v", errStrict)
	}
	if len(strictRows) != 1 || strictRows[0].ID != holder.ID {
		t.Fatalf("strict list = %+v, want only holder", strictRows)
	}

	thresholdRows, errThreshold := store.ListWithAuthNode(ctx, "OmegaInternal", "OmegaInternal", "level", 1, false)
	if errThreshold != nil {
		t.Fatalf("threshold list: %v", errThreshold)
	}
	if len(thresholdRows) != 2 {
		t.Fatalf("threshold list has %d rows, want 2", len(thresholdRows))
	}
}

func TestBotConnectDisconnect(t *testing.T) {
	conn := openTestDB(t)
	bots := NewBotStore(conn)
	ctx := context.Background()

	first, errConnect := bots.Connect(ctx, "123456", "OneBot V11", "")
	if errConnect != nil {
		t.Fatalf("connect: %v", errConnect)
	}
	if first.Status != 1 {
		t.Fatalf("status after connect = %d, want 1", first.Status)
	}

	again, errConnect := bots.Connect(ctx, "123456", "OneBot V11", "reconnected")
	if errConnect != nil {
		t.Fatalf("reconnect: %v", errConnect)
	}
	if again.ID != first.ID {
		t.Fatalf("bot row recreated on reconnect: %d vs %d", again.ID, first.ID)
	}
	if again.Info != "reconnected" {
		t.Fatalf("info not refreshed: %+v", again)
	}

	if errDisconnect := bots.Disconnect(ctx, "123456"); errDisconnect != nil {
		t.Fatalf("disconnect: %v", errDisconnect)
	}
	row, errGet := bots.GetBot(ctx, "123456")
	if errGet != nil {
		t.Fatalf("get: %v", errGet)
	}
	if row.Status != 0 {
		t.Fatalf("status after disconnect = %d, want 0", row.Status)
	}

	online, errList := bots.ListOnlineBots(ctx)
	if errList != nil {
		t.Fatalf("list online: %v", errList)
	}
	if len(online) != 0 {
		t.Fatalf("online list = %+v, want empty", online)
	}
}
