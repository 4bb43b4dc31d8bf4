package sigma

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/gzip"
	sigmaimage "github.com/lncvrt/sigma/image"
)

// Config holds the defaults used by the command line tool. Flags override
// any value read from a file.
type Config struct {
	Convert ConvertConfig `toml:"convert"`
	Viewer  ViewerConfig  `toml:"viewer"`
}

// ConvertConfig controls PNG to sigma conversion.
type ConvertConfig struct {
	Compress bool `toml:"compress"`
	Level    int  `toml:"level"`
	Colors   int  `toml:"colors"`
}

// ViewerConfig controls the preview window.
type ViewerConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			Compress: true,
			Level:    gzip.BestCompression,
		},
		Viewer: ViewerConfig{
			Title:  "sigma previewer",
			Width:  800,
			Height: 600,
		},
	}
}

// LoadConfig reads a TOML file at path on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the configuration values are usable.
func (c *Config) Validate() error {
	if c.Convert.Level < gzip.BestSpeed || c.Convert.Level > gzip.BestCompression {
		return fmt.Errorf("compression level %d out of range", c.Convert.Level)
	}
	if c.Convert.Colors < 0 || c.Convert.Colors > 256 {
		return fmt.Errorf("colors %d out of range", c.Convert.Colors)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size %dx%d is invalid", c.Viewer.Width, c.Viewer.Height)
	}
	return nil
}

// Options returns the encoder options for c.
func (c ConvertConfig) Options() *sigmaimage.Options {
	return &sigmaimage.Options{
		Compress: c.Compress,
		Level:    c.Level,
		Colors:   c.Colors,
	}
}
