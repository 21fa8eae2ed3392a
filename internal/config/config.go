package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the tito application
type Config struct {
	Database    DatabaseConfig
	Display     DisplayConfig
	Validation  ValidationConfig
	Application ApplicationConfig
	Export      ExportConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TITO_DB_DIR"`
	Filename       string        `env:"TITO_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TITO_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TITO_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TITO_DB_DIR_PERMISSIONS"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat     string `env:"TITO_TIME_DISPLAY_FORMAT"`
	EntriesPerPage int    `env:"TITO_DISPLAY_ENTRIES_PER_PAGE"`
	SortNewest     bool   `env:"TITO_DISPLAY_SORT_NEWEST"`
	DateOnly       bool   `env:"TITO_DISPLAY_DATE_ONLY"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ProjectNameMinLength int           `env:"TITO_VALIDATION_PROJECT_NAME_MIN"`
	ProjectNameMaxLength int           `env:"TITO_VALIDATION_PROJECT_NAME_MAX"`
	MaxDuration          time.Duration `env:"TITO_VALIDATION_MAX_DURATION"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TITO_APP_TIMEOUT"`
	Verbose bool          `env:"TITO_APP_VERBOSE"`
}

// ExportConfig holds export defaults
type ExportConfig struct {
	DefaultFormat string `env:"TITO_EXPORT_DEFAULT_FORMAT"`
	OutputDir     string `env:"TITO_EXPORT_OUTPUT_DIR"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tito")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tito.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			TimeFormat:     "2006-01-02 15:04:05",
			EntriesPerPage: 10,
			SortNewest:     true,
			DateOnly:       false,
		},
		Validation: ValidationConfig{
			ProjectNameMinLength: 1,
			ProjectNameMaxLength: 255,
			MaxDuration:          7 * 24 * time.Hour,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
		Export: ExportConfig{
			DefaultFormat: "csv",
			OutputDir:     ".",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TITO_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TITO_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TITO_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("TITO_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("TITO_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Display configuration
	if format := os.Getenv("TITO_TIME_DISPLAY_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if perPage := os.Getenv("TITO_DISPLAY_ENTRIES_PER_PAGE"); perPage != "" {
		if n, err := strconv.Atoi(perPage); err == nil {
			c.Display.EntriesPerPage = n
		}
	}
	if newest := os.Getenv("TITO_DISPLAY_SORT_NEWEST"); newest != "" {
		if b, err := strconv.ParseBool(newest); err == nil {
			c.Display.SortNewest = b
		}
	}
	if dateOnly := os.Getenv("TITO_DISPLAY_DATE_ONLY"); dateOnly != "" {
		if b, err := strconv.ParseBool(dateOnly); err == nil {
			c.Display.DateOnly = b
		}
	}

	// Validation configuration
	if minLen := os.Getenv("TITO_VALIDATION_PROJECT_NAME_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.ProjectNameMinLength = n
		}
	}
	if maxLen := os.Getenv("TITO_VALIDATION_PROJECT_NAME_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.ProjectNameMaxLength = n
		}
	}
	if maxDur := os.Getenv("TITO_VALIDATION_MAX_DURATION"); maxDur != "" {
		if d, err := time.ParseDuration(maxDur); err == nil {
			c.Validation.MaxDuration = d
		}
	}

	// Application configuration
	if timeout := os.Getenv("TITO_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TITO_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	// Export configuration
	if format := os.Getenv("TITO_EXPORT_DEFAULT_FORMAT"); format != "" {
		c.Export.DefaultFormat = format
	}
	if dir := os.Getenv("TITO_EXPORT_OUTPUT_DIR"); dir != "" {
		c.Export.OutputDir = dir
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return fmt.Errorf("database directory cannot be empty")
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename cannot be empty")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database query timeout must be positive")
	}
	if c.Database.WriteTimeout <= 0 {
		return fmt.Errorf("database write timeout must be positive")
	}
	if c.Display.EntriesPerPage <= 0 {
		return fmt.Errorf("entries per page must be positive")
	}
	if c.Validation.ProjectNameMinLength < 1 {
		return fmt.Errorf("project name minimum length must be at least 1")
	}
	if c.Validation.ProjectNameMaxLength < c.Validation.ProjectNameMinLength {
		return fmt.Errorf("project name maximum length must not be below the minimum")
	}
	if c.Validation.MaxDuration <= 0 {
		return fmt.Errorf("maximum entry duration must be positive")
	}
	if c.Application.Timeout <= 0 {
		return fmt.Errorf("application timeout must be positive")
	}
	switch c.Export.DefaultFormat {
	case "csv", "markdown", "pdf":
	default:
		return fmt.Errorf("unsupported export format: %s", c.Export.DefaultFormat)
	}
	return nil
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func Load() (*Config, error) {
	cfg := NewConfig()

	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
