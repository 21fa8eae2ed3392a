package main

import (
	"fmt"
	"os"

	"tito/internal/config"
	"tito/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
	cfg *config.Config
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment, cfg *config.Config) *RepositoryFactory {
	return &RepositoryFactory{env: env, cfg: cfg}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository() (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository()
	case Testing:
		return config.CreateTestRepository()
	case Production:
		return config.CreateRepository(rf.cfg)
	default:
		return config.CreateRepository(rf.cfg)
	}
}

// createDevelopmentRepository uses a local database file in the working
// directory so development data stays out of the real store.
func (rf *RepositoryFactory) createDevelopmentRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New("tito.db")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("TITO_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	case "production":
		return Production
	default:
		return Production
	}
}
