package migrations

func init() {
	Register(Migration{
		Version: 3,
		Name:    "index_time_entries_project",
		Up:      `CREATE INDEX IF NOT EXISTS idx_time_entries_project_id ON time_entries (project_id)`,
		Down:    `DROP INDEX IF EXISTS idx_time_entries_project_id`,
	})
}
