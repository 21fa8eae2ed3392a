package domain

import (
	"strings"
)

// Project represents a named bucket that time entries are attributed to.
// This is a pure domain model without database-specific concerns.
type Project struct {
	ID    int64
	Name  string
	Order int
}

// NewProject creates a new Project with the given name and display order.
func NewProject(name string, order int) Project {
	return Project{
		Name:  strings.TrimSpace(name),
		Order: order,
	}
}

// IsValid checks if the project has valid data.
func (p Project) IsValid() bool {
	return strings.TrimSpace(p.Name) != ""
}

// String returns the project name for display purposes.
func (p Project) String() string {
	return p.Name
}
