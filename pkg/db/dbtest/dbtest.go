// Package dbtest opens throwaway in-memory SQLite databases migrated with the
// application models, for repository and service tests.
package dbtest

import (
	"testing"

	"github.com/angelmondragon/testmart-backend/pkg/db"
	"github.com/angelmondragon/testmart-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// New returns a migrated connection limited to one open connection, so
// concurrent transactions are serialized the same way row locks serialize them
// on Postgres.
func New(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:testmart_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

// NewClient wraps New in a db.Client.
func NewClient(t *testing.T, opts ...db.Option) *db.Client {
	t.Helper()
	return db.FromConn(New(t), opts...)
}
