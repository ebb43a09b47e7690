package harness

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete harness configuration.
type Config struct {
	Vectors   VectorsConfig   `hcl:"vectors,block"`
	Snapshots SnapshotsConfig `hcl:"snapshots,block"`
}

// VectorsConfig locates the YAML test-vector shards to replay.
type VectorsConfig struct {
	Dir string `hcl:"dir,optional"`
}

// SnapshotsConfig locates the JSON expectation snapshots and whether a run
// should rewrite them instead of comparing.
type SnapshotsConfig struct {
	Dir      string `hcl:"dir,optional"`
	UpdateOnRun bool `hcl:"update_on_run,optional"`
}

// DefaultConfig returns the harness's built-in configuration, used when no
// harness.hcl file is present.
func DefaultConfig() *Config {
	return &Config{
		Vectors:   VectorsConfig{Dir: "testdata/vectors"},
		Snapshots: SnapshotsConfig{Dir: "testdata/snapshots", UpdateOnRun: false},
	}
}

// LoadConfig loads harness configuration from an HCL file, falling back to
// DefaultConfig when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("harness: failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("harness: failed to decode HCL: %s", diags.Error())
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Vectors.Dir == "" {
		c.Vectors.Dir = "testdata/vectors"
	}
	if c.Snapshots.Dir == "" {
		c.Snapshots.Dir = "testdata/snapshots"
	}
	return c.Validate()
}

// Validate checks the config for structural sanity beyond field defaults.
func (c *Config) Validate() error {
	if c.Vectors.Dir == "" {
		return fmt.Errorf("harness: vectors.dir must not be empty")
	}
	if c.Snapshots.Dir == "" {
		return fmt.Errorf("harness: snapshots.dir must not be empty")
	}
	return nil
}
