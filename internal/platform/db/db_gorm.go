// Package db provides database connection setup for the application.
package db

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"market_dashboard/internal/feature/watchlist/domain/entity"
)

// Config holds database configuration.
type Config struct {
	Path string // Filesystem path of the SQLite database file
}

// LoadConfig loads database configuration from environment variables.
func LoadConfig() Config {
	path := os.Getenv("WATCHLIST_DB_PATH")
	if path == "" {
		path = "./watchlist.db"
	}
	return Config{Path: path}
}

// BuildDSN builds the SQLite DSN. The _fk pragma enables foreign key
// enforcement, which SQLite leaves off by default.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("file:%s?_fk=1", cfg.Path)
}

// OpenDB はSQLiteデータベースを開き、スキーマをマイグレーションします。
// 埋め込みDBのため接続リトライは行わず、失敗時はプロセスを終了します。
func OpenDB(cfg Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(BuildDSN(cfg)), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.Tab{},
		&entity.WatchlistEntry{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
