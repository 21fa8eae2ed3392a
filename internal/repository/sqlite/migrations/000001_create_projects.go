package migrations

func init() {
	Register(Migration{
		Version: 1,
		Name:    "create_projects",
		Up: `
		CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			position INTEGER NOT NULL DEFAULT 0
		)`,
		Down: `DROP TABLE IF EXISTS projects`,
	})
}
