// Package config provides run-configuration loading for sedload from YAML
// files or SQLite databases behind a common provider interface.
package config

import (
	"fmt"
	"os"
	"time"
)

// Provider defines the interface for configuration data sources
type Provider interface {
	// Load complete run configuration
	LoadConfig() (*ConfigData, error)

	// Configuration management
	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete run configuration
type ConfigData struct {
	Database DatabaseData `json:"database"`
	Window   WindowData   `json:"window"`
	Sites    []string     `json:"sites,omitempty"`
	Catalog  CatalogData  `json:"catalog"`
	Output   OutputData   `json:"output"`
}

// DatabaseData holds the measurement archive connection settings
type DatabaseData struct {
	ConnectionString string `json:"connection_string"`
}

// WindowData holds the fixed date window samples are fetched for
type WindowData struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CatalogData points at the regression coefficient table
type CatalogData struct {
	Path string `json:"path"`
}

// OutputData holds the export file paths
type OutputData struct {
	StatisticsFile    string `json:"statistics_file"`
	LoadSeriesFile    string `json:"load_series_file"`
	ConcentrationFile string `json:"concentration_file,omitempty"`
}

// applyEnvOverrides lets deployment environments supply credentials outside
// the checked-in configuration file. SEDLOAD_DATABASE_URL wins over the
// configured connection string.
func (c *ConfigData) applyEnvOverrides() {
	if dsn := os.Getenv("SEDLOAD_DATABASE_URL"); dsn != "" {
		c.Database.ConnectionString = dsn
	}
}

// Validate checks the invariants every provider must deliver.
func (c *ConfigData) Validate() error {
	if c.Database.ConnectionString == "" {
		return fmt.Errorf("database connection string is required")
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}
	if !c.Window.End.After(c.Window.Start) {
		return fmt.Errorf("window end %s must be after start %s", c.Window.End, c.Window.Start)
	}
	if c.Output.StatisticsFile == "" || c.Output.LoadSeriesFile == "" {
		return fmt.Errorf("statistics and load series output paths are required")
	}
	return nil
}
