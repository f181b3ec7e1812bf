package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements Provider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete run configuration from a YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Database struct {
			ConnectionString string `yaml:"connection-string"`
		} `yaml:"database"`
		Window struct {
			Start string `yaml:"start"`
			End   string `yaml:"end"`
		} `yaml:"window"`
		Sites   []string `yaml:"sites,omitempty"`
		Catalog struct {
			Path string `yaml:"path"`
		} `yaml:"catalog"`
		Output struct {
			StatisticsFile    string `yaml:"statistics-file"`
			LoadSeriesFile    string `yaml:"load-series-file"`
			ConcentrationFile string `yaml:"concentration-file,omitempty"`
		} `yaml:"output"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, yamlConfig.Window.Start)
	if err != nil {
		return nil, fmt.Errorf("bad window start %q: %w", yamlConfig.Window.Start, err)
	}
	end, err := time.Parse(time.RFC3339, yamlConfig.Window.End)
	if err != nil {
		return nil, fmt.Errorf("bad window end %q: %w", yamlConfig.Window.End, err)
	}

	// Convert to our internal format
	config := &ConfigData{
		Database: DatabaseData{ConnectionString: yamlConfig.Database.ConnectionString},
		Window:   WindowData{Start: start, End: end},
		Sites:    yamlConfig.Sites,
		Catalog:  CatalogData{Path: yamlConfig.Catalog.Path},
		Output: OutputData{
			StatisticsFile:    yamlConfig.Output.StatisticsFile,
			LoadSeriesFile:    yamlConfig.Output.LoadSeriesFile,
			ConcentrationFile: yamlConfig.Output.ConcentrationFile,
		},
	}

	config.applyEnvOverrides()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// IsReadOnly returns true; YAML configs are never written by this tool
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for file-based configuration
func (y *YAMLProvider) Close() error {
	return nil
}
