package migrations

func init() {
	Register(Migration{
		Version: 2,
		Name:    "create_time_entries",
		Up: `
		CREATE TABLE IF NOT EXISTS time_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		)`,
		Down: `DROP TABLE IF EXISTS time_entries`,
	})
}
