package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
)

// SQLiteStorage implements Storage on a single-connection SQLite
// database.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
	logger logging.Logger
}

// NewSQLiteStorage opens (creating if needed) the database at dbPath and
// applies the schema.
func NewSQLiteStorage(dbPath string, logger logging.Logger) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStorage{db: db, dbPath: dbPath, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.WithField("path", dbPath).Debug("Opened transaction database")
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		message_hash TEXT NOT NULL UNIQUE,
		raw_message TEXT NOT NULL,
		channel TEXT NOT NULL,
		amount TEXT NOT NULL,
		currency TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		account_ref TEXT NOT NULL DEFAULT '',
		merchant TEXT NOT NULL DEFAULT '',
		reference TEXT NOT NULL DEFAULT '',
		confidence REAL NOT NULL,
		category TEXT NOT NULL,
		category_confidence REAL NOT NULL,
		subcategories TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at);

	CREATE TABLE IF NOT EXISTS goal_impacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		transaction_id TEXT NOT NULL REFERENCES transactions(id),
		goal_id TEXT NOT NULL,
		goal_name TEXT NOT NULL,
		impact_score REAL NOT NULL,
		message TEXT NOT NULL,
		impact_amount TEXT NOT NULL,
		new_progress REAL NOT NULL,
		achieved INTEGER NOT NULL,
		at_risk INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_goal_impacts_transaction ON goal_impacts(transaction_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
