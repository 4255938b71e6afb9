package repo

import (
	"fmt"
	"sync/atomic"
	"testing"

	"DocPortal/internal/model"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

var testDBSeq atomic.Int64

// newTestDB opens an in-memory SQLite (modernc.org/sqlite) for repository
// tests. Each call gets its own named database so tests stay isolated while
// gorm's connection pool still sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	// Migrations for every model the repositories touch
	if err := db.AutoMigrate(&model.Container{}, &model.Requirement{}, &model.File{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}
