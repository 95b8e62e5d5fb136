// Package testutil provides shared helpers for database-backed tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/tecnimaq/maintenance-api/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// SetupTestDB opens an isolated in-memory SQLite database and migrates the
// full schema into it. Each call gets its own database; cache=shared keeps
// it alive across the connections gorm opens.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.AutoMigrate(db), "failed to migrate test schema")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
