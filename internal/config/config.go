package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Resize tool selection values for Options.ResizeTool.
const (
	ToolAuto   = "auto"   // sips when installed, otherwise the built-in resizer
	ToolNative = "native" // built-in resizer (always available)
	ToolSips   = "sips"   // macOS sips binary; forces link mode when absent
)

// Config holds the application configuration
type Config struct {
	Directories DirectoryConfig `json:"directories"`
	Options     OptionConfig    `json:"options"`
	Logging     LoggingConfig   `json:"logging"`
}

// DirectoryConfig holds the filesystem layout of a run. Values may contain
// environment variable references (e.g. ${HOME}) which Expand resolves.
type DirectoryConfig struct {
	ArtworkDirs []string `json:"artwork_dirs"` // roots scanned for unzipped MAME artwork
	OutputDir   string   `json:"output_dir"`   // where materialized bezels land
	SupportDir  string   `json:"support_dir"`  // holds AMbezels.ini and bezelexceptions.txt
	RomlistPath string   `json:"romlist_path"` // Attract-Mode romlist file
}

// OptionConfig holds the run-wide choices the original tool prompted for.
type OptionConfig struct {
	Rescale        bool   `json:"rescale"`         // produce low-resolution copies instead of links
	MaxResolution  int    `json:"max_resolution"`  // pixel bound on the larger dimension when rescaling
	ExcludeGeneric bool   `json:"exclude_generic"` // drop manufacturer-generic bezel artwork
	ClearOutput    bool   `json:"clear_output"`    // remove *.png from the output dir before the run
	ResizeTool     string `json:"resize_tool"`     // auto, native or sips
}

// LoggingConfig holds configuration for the structured logger.
type LoggingConfig struct {
	Level       string `json:"level"`
	Format      string `json:"format"` // "json" or "console"
	Development bool   `json:"development"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Directories: DirectoryConfig{
			ArtworkDirs: []string{"${HOME}/Games/Arcade Art/bezel/artwork_pS_official"},
			OutputDir:   "${HOME}/Games/Arcade Art/bezel/AMbezels",
			SupportDir:  "${HOME}/Programming/attractmode_support",
			RomlistPath: "${HOME}/.attract/romlists/mame.txt",
		},
		Options: OptionConfig{
			Rescale:        false,
			MaxResolution:  800,
			ExcludeGeneric: true,
			ClearOutput:    false,
			ResizeTool:     ToolAuto,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFile loads variables from an optional .env file into the process
// environment so that directory references like ${BEZEL_ARTWORK_DIR}
// resolve. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Expand resolves environment variable references in all directory fields.
func (c *Config) Expand() {
	for i, dir := range c.Directories.ArtworkDirs {
		c.Directories.ArtworkDirs[i] = os.ExpandEnv(dir)
	}
	c.Directories.OutputDir = os.ExpandEnv(c.Directories.OutputDir)
	c.Directories.SupportDir = os.ExpandEnv(c.Directories.SupportDir)
	c.Directories.RomlistPath = os.ExpandEnv(c.Directories.RomlistPath)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Directories.ArtworkDirs) == 0 {
		return fmt.Errorf("directories.artwork_dirs cannot be empty")
	}

	if c.Directories.OutputDir == "" {
		return fmt.Errorf("directories.output_dir cannot be empty")
	}

	if c.Directories.RomlistPath == "" {
		return fmt.Errorf("directories.romlist_path cannot be empty")
	}

	if c.Options.Rescale && c.Options.MaxResolution < 1 {
		return fmt.Errorf("options.max_resolution must be positive when rescaling")
	}

	if c.Options.MaxResolution > 4000 {
		return fmt.Errorf("options.max_resolution %d is unreasonably large", c.Options.MaxResolution)
	}

	switch c.Options.ResizeTool {
	case ToolAuto, ToolNative, ToolSips:
	default:
		return fmt.Errorf("options.resize_tool must be one of auto, native, sips")
	}

	return nil
}

// ExceptionsPath returns the location of the optional excluded-games list.
func (c *Config) ExceptionsPath() string {
	return filepath.Join(c.Directories.SupportDir, "bezelexceptions.txt")
}

// StorePath returns the location of the output record store.
func (c *Config) StorePath() string {
	return filepath.Join(c.Directories.SupportDir, "AMbezels.ini")
}
