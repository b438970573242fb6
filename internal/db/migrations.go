package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tracks (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id                TEXT PRIMARY KEY,
			track_id          TEXT NOT NULL REFERENCES tracks(id),
			start_at          TEXT NOT NULL,
			end_at            TEXT NOT NULL,
			name              TEXT NOT NULL DEFAULT '',
			language          TEXT NOT NULL DEFAULT '',
			color             TEXT NOT NULL DEFAULT 'gray',
			emojis            TEXT NOT NULL DEFAULT '[]',
			proposal_id       TEXT,
			proposal_title    TEXT NOT NULL DEFAULT '',
			proposal_speakers TEXT NOT NULL DEFAULT '[]',
			created_at        DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_at);
		CREATE INDEX IF NOT EXISTS idx_sessions_track ON sessions(track_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schedule tables: %w", err)
	}

	return nil
}
