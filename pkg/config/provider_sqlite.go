package config

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements Provider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete run configuration from the SQLite database.
// Expected schema:
//
//	run_config(name, connection_string, window_start, window_end,
//	           catalog_path, statistics_file, load_series_file,
//	           concentration_file)
//	run_sites(config_name, site)
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	var startStr, endStr string
	var concentrationFile sql.NullString
	err := s.db.QueryRow(`
		SELECT connection_string, window_start, window_end, catalog_path,
		       statistics_file, load_series_file, concentration_file
		FROM run_config
		WHERE name = 'default'`).Scan(
		&config.Database.ConnectionString,
		&startStr,
		&endStr,
		&config.Catalog.Path,
		&config.Output.StatisticsFile,
		&config.Output.LoadSeriesFile,
		&concentrationFile,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load run config: %w", err)
	}
	config.Output.ConcentrationFile = concentrationFile.String

	config.Window.Start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("bad window start %q: %w", startStr, err)
	}
	config.Window.End, err = time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, fmt.Errorf("bad window end %q: %w", endStr, err)
	}

	rows, err := s.db.Query(`SELECT site FROM run_sites WHERE config_name = 'default' ORDER BY site`)
	if err != nil {
		return nil, fmt.Errorf("failed to load run sites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("failed to scan site row: %w", err)
		}
		config.Sites = append(config.Sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading site rows: %w", err)
	}

	config.applyEnvOverrides()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// IsReadOnly returns false; SQLite configs can be edited in place
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the underlying database handle
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
