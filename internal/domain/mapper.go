package domain

import (
	"tito/internal/repository/sqlite"
)

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(domainProject Project) sqlite.Project {
	return sqlite.Project{
		ID:       domainProject.ID,
		Name:     domainProject.Name,
		Position: domainProject.Order,
	}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(dbProject sqlite.Project) Project {
	return Project{
		ID:    dbProject.ID,
		Name:  dbProject.Name,
		Order: dbProject.Position,
	}
}

// FromDatabaseSlice converts a slice of database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(dbProjects []*sqlite.Project) []*Project {
	domainProjects := make([]*Project, len(dbProjects))
	for i, dbProject := range dbProjects {
		domainProject := m.FromDatabase(*dbProject)
		domainProjects[i] = &domainProject
	}
	return domainProjects
}

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(domainEntry TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:          domainEntry.ID,
		ProjectID:   domainEntry.ProjectID,
		StartTime:   domainEntry.Start,
		EndTime:     domainEntry.End,
		DurationMS:  domainEntry.DurationMS,
		Description: domainEntry.Description,
		Position:    domainEntry.Order,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(dbEntry sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:          dbEntry.ID,
		ProjectID:   dbEntry.ProjectID,
		Start:       dbEntry.StartTime,
		End:         dbEntry.EndTime,
		DurationMS:  dbEntry.DurationMS,
		Description: dbEntry.Description,
		Order:       dbEntry.Position,
	}
}

// FromDatabaseSlice converts a slice of database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []*TimeEntry {
	domainEntries := make([]*TimeEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		domainEntry := m.FromDatabase(*dbEntry)
		domainEntries[i] = &domainEntry
	}
	return domainEntries
}

// Mapper aggregates all entity mappers for convenient access.
type Mapper struct {
	Project   *ProjectMapper
	TimeEntry *TimeEntryMapper
}

// NewMapper creates a new Mapper instance with all entity mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Project:   NewProjectMapper(),
		TimeEntry: NewTimeEntryMapper(),
	}
}
