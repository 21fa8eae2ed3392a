package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var startTime, endTime string

	err := scanner.Scan(
		&entry.ID,
		&entry.ProjectID,
		&startTime,
		&endTime,
		&entry.DurationMS,
		&entry.Description,
		&entry.Position,
	)
	if err != nil {
		return nil, err
	}

	if entry.StartTime, err = ParseTimeFromDB(startTime); err != nil {
		return nil, err
	}
	if entry.EndTime, err = ParseTimeFromDB(endTime); err != nil {
		return nil, err
	}

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	var entries []*TimeEntry
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	err := scanner.Scan(&project.ID, &project.Name, &project.Position)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	var projects []*Project
	for rows.Next() {
		project, err := ScanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}
