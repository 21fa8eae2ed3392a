package config

import (
	"fmt"
	"os"

	"tito/internal/repository/sqlite"
)

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := sqlite.New(config.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
