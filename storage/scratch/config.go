package scratch

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirName is the directory created under the system temp dir.
const DefaultDirName = "audioTemp"

// Config holds scratch directory configuration.
type Config struct {
	// Dir is where per-request files are written.
	Dir string `yaml:"scratch_dir" mapstructure:"scratch_dir"`
	// MaxNameLength caps the original-filename part of generated names.
	MaxNameLength int `yaml:"max_name_length" mapstructure:"max_name_length"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Dir == "" {
		c.Dir = filepath.Join(os.TempDir(), DefaultDirName)
	}
	if c.MaxNameLength == 0 {
		c.MaxNameLength = 120
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("storage.scratch_dir is required")
	}
	if c.MaxNameLength < 0 {
		return fmt.Errorf("storage.max_name_length must be non-negative (got: %d)", c.MaxNameLength)
	}
	return nil
}
