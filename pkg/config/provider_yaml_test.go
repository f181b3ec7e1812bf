package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `database:
  connection-string: "host=localhost port=5432 dbname=monitoring"
window:
  start: "2025-06-01T00:00:00Z"
  end: "2025-07-01T00:00:00Z"
sites:
  - Alder Creek at Weir
  - Birch River at Ford
catalog:
  path: catalog.db
output:
  statistics-file: statistics.csv
  load-series-file: load_series.csv
  concentration-file: concentration.csv
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sedload.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	provider := NewYAMLProvider(writeTempConfig(t, sampleYAML))
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Database.ConnectionString == "" {
		t.Error("connection string not loaded")
	}
	wantStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.Window.Start.Equal(wantStart) {
		t.Errorf("window start = %v, want %v", cfg.Window.Start, wantStart)
	}
	if len(cfg.Sites) != 2 || cfg.Sites[0] != "Alder Creek at Weir" {
		t.Errorf("sites = %v", cfg.Sites)
	}
	if cfg.Catalog.Path != "catalog.db" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
	if cfg.Output.ConcentrationFile != "concentration.csv" {
		t.Errorf("concentration file = %q", cfg.Output.ConcentrationFile)
	}
	if !provider.IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}
}

func TestYAMLProviderEnvOverride(t *testing.T) {
	t.Setenv("SEDLOAD_DATABASE_URL", "host=archive.internal dbname=monitoring")

	provider := NewYAMLProvider(writeTempConfig(t, sampleYAML))
	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Database.ConnectionString != "host=archive.internal dbname=monitoring" {
		t.Errorf("connection string = %q, want env override", cfg.Database.ConnectionString)
	}
}

func TestYAMLProviderValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "window end before start",
			yaml: `database:
  connection-string: "host=localhost"
window:
  start: "2025-07-01T00:00:00Z"
  end: "2025-06-01T00:00:00Z"
catalog:
  path: catalog.db
output:
  statistics-file: s.csv
  load-series-file: l.csv
`,
		},
		{
			name: "missing catalog path",
			yaml: `database:
  connection-string: "host=localhost"
window:
  start: "2025-06-01T00:00:00Z"
  end: "2025-07-01T00:00:00Z"
output:
  statistics-file: s.csv
  load-series-file: l.csv
`,
		},
		{
			name: "unparseable window",
			yaml: `database:
  connection-string: "host=localhost"
window:
  start: "June 1st"
  end: "2025-07-01T00:00:00Z"
catalog:
  path: catalog.db
output:
  statistics-file: s.csv
  load-series-file: l.csv
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewYAMLProvider(writeTempConfig(t, tt.yaml))
			if _, err := provider.LoadConfig(); err == nil {
				t.Error("LoadConfig accepted an invalid configuration")
			}
		})
	}
}
