// Package config loads .purecode.toml and merges it with command-line
// overrides. The CLI always wins over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is looked up in the working directory.
const FileName = ".purecode.toml"

// File mirrors the .purecode.toml schema. All fields are optional; zero or
// nil values fall back to defaults.
type File struct {
	Base           string   `toml:"base"`
	Format         string   `toml:"format"`
	MaxNoiseRatio  *float64 `toml:"max_noise_ratio"`
	MinPureLines   *int64   `toml:"min_pure_lines"`
	FailOnDecrease bool     `toml:"fail_on_decrease"`
	WarnOnly       bool     `toml:"warn_only"`
	CI             bool     `toml:"ci"`
	Include        []string `toml:"include"`
	Exclude        []string `toml:"exclude"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Base:    "origin/main",
		Format:  "human",
		Include: []string{"**/*"},
		Exclude: []string{
			"**/*.lock",
			"dist/**",
			"target/**",
			"node_modules/**",
			".git/**",
		},
	}
}

// Load reads .purecode.toml from dir. A missing file yields the defaults;
// an unreadable or unparseable file prints a warning and yields the defaults
// rather than aborting the run.
func Load(dir string) File {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", FileName, err)
		}
		return cfg
	}

	parsed := Default()
	if err := toml.Unmarshal(data, &parsed); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not parse %s: %v\n", FileName, err)
		return cfg
	}
	return normalize(parsed)
}

// Parse decodes configuration from raw TOML bytes.
func Parse(data []byte) (File, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return normalize(cfg), nil
}

func normalize(cfg File) File {
	def := Default()
	if cfg.Base == "" {
		cfg.Base = def.Base
	}
	if cfg.Format == "" {
		cfg.Format = def.Format
	}
	if len(cfg.Include) == 0 {
		cfg.Include = def.Include
	}
	if cfg.Exclude == nil {
		cfg.Exclude = def.Exclude
	}
	return cfg
}
