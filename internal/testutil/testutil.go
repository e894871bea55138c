// Package testutil 各包测试共用的夹具
package testutil

import (
	"testing"

	"skypath_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewTestDB 每个测试独享一个已迁移的内存 SQLite 库
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), "silent")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// :memory: 库按连接隔离，只保留一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
