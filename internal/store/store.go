// Package store is the embedded entity store: a SQLite database holding
// accounts, categories, securities, transactions, rules, settings, and the
// sync change log. The store is a single-writer resource — every mutation
// is serialized through one mutex and runs in its own transaction; readers
// see the last-committed snapshot.
package store

import (
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

// Store wraps the SQLite database behind typed CRUD operations. Mutations
// routed through it also append sync change records; callers never touch
// the change log directly.
type Store struct {
	db *gorm.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the database at path and migrates the
// schema. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db: %w", err)
	}
	// SQLite is single-writer and pragmas apply per connection, so the
	// pool is pinned to one connection.
	sqlDB.SetMaxOpenConns(1)

	// Reliability tuning; foreign_keys makes the reference invariants real.
	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Account{},
		&model.Category{},
		&model.Security{},
		&model.ImportRecord{},
		&model.Transaction{},
		&model.Rule{},
		&model.Setting{},
		&model.SyncState{},
		&model.ChangeRecord{},
	); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("getting sql db: %w", err)
	}
	return sqlDB.Close()
}
