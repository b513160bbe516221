package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the batch settings. Fields may be loaded from a YAML file and
// overridden by command-line flags.
type Config struct {
	InputPath  string `yaml:"input"`  // directory, image or PDF; empty = numbered test set
	OutputDir  string `yaml:"output"` // where image<N><i>.jpg files go
	FirstIndex int    `yaml:"first"`  // numbered test set range
	LastIndex  int    `yaml:"last"`
	Workers    int    `yaml:"workers"`
	DPI        int    `yaml:"dpi"`

	// Segmentation
	DenoiseWeight float64 `yaml:"denoise_weight"`
	ClosingSize   int     `yaml:"closing_size"`
	MinArea       int     `yaml:"min_area"`
	Margin        int     `yaml:"margin"`
	PatchSize     int     `yaml:"patch_size"`
	Interpolation string  `yaml:"interpolation"`

	// Export
	JPEGQuality   int  `yaml:"jpeg_quality"`
	AutoContrast  bool `yaml:"auto_contrast"`
	WriteManifest bool `yaml:"manifest"`
	ShowStats     bool `yaml:"stats"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:     ".",
		FirstIndex:    1,
		LastIndex:     20,
		Workers:       1,
		DPI:           300,
		DenoiseWeight: 0.1,
		ClosingSize:   2,
		MinArea:       10,
		Margin:        3,
		PatchSize:     32,
		Interpolation: "bilinear",
		JPEGQuality:   95,
		AutoContrast:  true,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.FirstIndex < 0 {
		c.FirstIndex = 1
	}
	if c.LastIndex < c.FirstIndex {
		c.LastIndex = c.FirstIndex
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	if c.DenoiseWeight < 0 {
		c.DenoiseWeight = 0.1
	}
	if c.ClosingSize <= 0 {
		c.ClosingSize = 1
	}
	if c.MinArea < 0 {
		c.MinArea = 0
	}
	if c.Margin < 0 {
		c.Margin = 0
	}
	if c.PatchSize <= 0 {
		c.PatchSize = 32
	}
	if c.Interpolation == "" {
		c.Interpolation = "bilinear"
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = 95
	}
	return nil
}

// Load reads configuration from the given YAML file path. A missing file
// yields DefaultConfig(). On a parse error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in YAML format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
