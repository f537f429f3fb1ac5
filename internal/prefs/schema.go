package prefs

// schemaSQL defines the SQLite schema for the preference database: a
// single key-value table with an update timestamp.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS prefs (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// initSchema creates the table if it doesn't exist.
func (s *Store) initSchema() error {
	_, err := s.db.Exec(schemaSQL)
	return err
}
