package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

func TestMigrateCreatesAllTables(t *testing.T) {
	conn := openMigratedDB(t)

	for _, table := range []string{"bots", "entities", "auth_settings", "cooldowns", "sign_ins", "friendships"} {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("table %q missing after migrate", table)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	conn := openMigratedDB(t)
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("second migrate: %v", errMigrate)
	}
}

func TestMigrateEnforcesSignInUniqueIndex(t *testing.T) {
	conn := openMigratedDB(t)

	insert := `INSERT INTO sign_ins (entity_index_id, sign_in_date, sign_in_info, created_at, updated_at)
		VALUES (1, '2024-03-10', 'Normal Sign In', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	if errExec := conn.Exec(insert).Error; errExec != nil {
		t.Fatalf("insert: %v", errExec)
	}
	errDup := conn.Exec(insert).Error
	if errDup == nil {
		t.Fatal("duplicate (entity, day) row accepted")
	}
	if !IsUniqueViolation(errDup) {
		t.Fatalf("err = %v, want unique violation", errDup)
	}
}
