package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProject(t *testing.T) {
	project := NewProject("  Website redesign  ", 2)

	assert.Equal(t, "Website redesign", project.Name)
	assert.Equal(t, 2, project.Order)
	assert.True(t, project.IsValid())
}

func TestProject_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		project  Project
		expected bool
	}{
		{
			name:     "should accept a named project",
			project:  Project{Name: "Research"},
			expected: true,
		},
		{
			name:     "should reject an empty name",
			project:  Project{Name: ""},
			expected: false,
		},
		{
			name:     "should reject a whitespace-only name",
			project:  Project{Name: "   "},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.project.IsValid())
		})
	}
}
