// internal/storage/database.go
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Driver registration

	"github.com/rhinoback/rhinoback/config"
	"github.com/rhinoback/rhinoback/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// ConnectStateDB opens the local state snapshot database and ensures the
// 'projects' and 'chat_messages' tables exist.
func ConnectStateDB(cfg *config.Config) (*sql.DB, error) {
	dbPath := filepath.Join(cfg.StateDbDir, cfg.StateDbFile)
	customLog.Printf("Storage: Initializing state database: %s", dbPath)

	if err := os.MkdirAll(cfg.StateDbDir, 0o750); err != nil {
		customLog.Warnf("Storage: Error creating data directory '%s': %v", cfg.StateDbDir, err)
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return OpenStateDB(dbPath + "?_journal_mode=WAL&_busy_timeout=5000")
}

// OpenStateDB opens the given sqlite DSN and ensures the snapshot tables exist.
func OpenStateDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		customLog.Warnf("Storage: Failed to open state db '%s': %v", dsn, err)
		return nil, fmt.Errorf("failed to open state db: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes snapshot writes.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to ping state db '%s': %v", dsn, err)
		return nil, fmt.Errorf("failed to connect to state db: %w", err)
	}

	// --- Ensure 'projects' table exists ---
	createProjectsTableSQL := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	);`
	if _, err = db.Exec(createProjectsTableSQL); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to create projects table: %v", err)
		return nil, fmt.Errorf("failed to ensure projects table: %w", err)
	}

	// --- Ensure 'chat_messages' table exists ---
	createChatTableSQL := `
	CREATE TABLE IF NOT EXISTS chat_messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		message_id TEXT NOT NULL,
		type TEXT NOT NULL,
		content TEXT NOT NULL,
		metadata TEXT,
		sent_at TIMESTAMP
	);`
	if _, err = db.Exec(createChatTableSQL); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to create chat_messages table: %v", err)
		return nil, fmt.Errorf("failed to ensure chat_messages table: %w", err)
	}

	customLog.Println("Storage: State database ready.")
	return db, nil
}
