package main

import (
	"fmt"
	"io/fs"
	"os"

	"remindik/internal/config"
	"remindik/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from RK_ENV,
// defaulting to production.
func GetEnvironment() Environment {
	switch os.Getenv("RK_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		return Production
	}
}

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
		// A local database file in the working directory
		return sqlite.New("remindik.db")
	case Testing:
		// An in-memory database that vanishes on exit
		return sqlite.New(":memory:")
	default:
		return rf.createProductionRepository()
	}
}

// createProductionRepository opens the database at the configured
// location, creating the directory on first run.
func (rf *RepositoryFactory) createProductionRepository() (sqlite.Repository, error) {
	perms := fs.FileMode(rf.cfg.Database.DirPermissions)
	if err := os.MkdirAll(rf.cfg.Database.Dir, perms); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := sqlite.New(rf.cfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}
