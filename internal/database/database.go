package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

func Initialize(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite supports a single writer; the ledger writes through on every
	// mutation, so keep one connection.
	db.SetMaxOpenConns(1)

	return db, nil
}

func Migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS powerups (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			theme TEXT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 1,
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			acquired_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS active_powerups (
			id TEXT PRIMARY KEY,
			powerup_id TEXT NOT NULL,
			activated_at DATETIME NOT NULL,
			duration_seconds INTEGER NOT NULL,
			remaining_seconds REAL NOT NULL,
			FOREIGN KEY (powerup_id) REFERENCES powerups(id)
		)`,
		`CREATE TABLE IF NOT EXISTS progression (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			total_reviews INTEGER NOT NULL DEFAULT 0,
			correct_answers INTEGER NOT NULL DEFAULT 0,
			current_streak INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			points INTEGER NOT NULL DEFAULT 0,
			currency INTEGER NOT NULL DEFAULT 0,
			levels_unlocked INTEGER NOT NULL DEFAULT 0,
			session_health REAL NOT NULL DEFAULT 100,
			theme TEXT NOT NULL DEFAULT 'mario',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_powerups_type ON powerups(type)`,
		`CREATE INDEX IF NOT EXISTS idx_active_powerups_powerup_id ON active_powerups(powerup_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}
