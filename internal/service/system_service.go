package service

import (
	"database/sql"
	"strconv"

	"github.com/ade-gb/investlite-demo-platform/internal/database"
	"github.com/ade-gb/investlite-demo-platform/internal/model"
	"github.com/ade-gb/investlite-demo-platform/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// VersionInfo returns the application and schema versions.
func (s *SystemService) VersionInfo() model.VersionInfo {
	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  "unknown",
	}

	if v, err := database.SchemaVersion(s.db); err == nil {
		info.DbVersion = strconv.FormatInt(v, 10)
	}

	return info
}
