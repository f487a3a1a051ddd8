package journal

import (
	"database/sql"
	"fmt"

	"github.com/zjrosen/typetwice/internal/log"
)

// migrations are applied in order; PRAGMA user_version records how many
// have run.
var migrations = []string{
	`CREATE TABLE ops (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session    TEXT    NOT NULL,
		path       TEXT    NOT NULL,
		kind       TEXT    NOT NULL CHECK (kind IN ('append', 'remove')),
		text       TEXT    NOT NULL DEFAULT '',
		count      INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX idx_ops_path_session ON ops (path, session)`,
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("journal schema version %d is newer than supported %d", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		log.Debug(log.CatJournal, "applied migration", "version", i+1)
	}
	return nil
}
