// Package config loads the optional .halint.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/halint/internal/controller"
	"github.com/mouse-blink/halint/internal/domain"
	"github.com/mouse-blink/halint/internal/domain/rules"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = ".halint.yaml"

// MaxVerbose is the highest confidence a diagnostic carries.
const MaxVerbose = 5

// Config is the content of a .halint.yaml file. Flags are applied on top
// of it before the lint starts.
type Config struct {
	// Per-category switches. Categories not listed stay enabled.
	Rules map[string]bool `yaml:"rules"`
	// Macros that must be the last thing in a class body.
	Markers []string `yaml:"markers"`
	// "+category" / "-category" entries, applied in order.
	Filters []string `yaml:"filters"`
	// Diagnostics below this confidence are dropped.
	Verbose int `yaml:"verbose"`
	// emacs, eclipse, vs7, junit or json.
	Format string `yaml:"format"`
	// total, toplevel or detailed.
	Counting string `yaml:"counting"`
	// File extensions picked up from directories, without the dot.
	Extensions []string `yaml:"extensions"`
	// Regular expressions of paths to skip.
	Exclude []string `yaml:"exclude"`
	// How many files are linted at once. Zero means one.
	Parallel int `yaml:"parallel"`
	Quiet    bool `yaml:"quiet"`
	// Where the last report is saved. Empty disables saving.
	Reports string `yaml:"reports"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Verbose:  1,
		Format:   string(controller.FormatEmacs),
		Counting: string(controller.CountingTotal),
		Parallel: 1,
		Reports:  ".halint-reports",
	}
}

// Load reads path on top of the defaults. An empty path means DefaultFile,
// which may be absent.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return Config{}, fmt.Errorf("failed to read %q: %w", path, err)
	}

	cfg, err := LoadData(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadData parses a YAML document over the defaults and validates it.
func LoadData(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every setting. Filter errors wrap domain.ErrFilter.
func (c Config) Validate() error {
	if _, err := controller.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}

	if _, err := controller.ParseCounting(c.Counting); err != nil {
		return fmt.Errorf("counting: %w", err)
	}

	if _, err := domain.ParseFilters(c.Filters...); err != nil {
		return fmt.Errorf("filters: %w", err)
	}

	for category := range c.Rules {
		if !rules.Known(category) {
			return fmt.Errorf("rules: unknown category %q", category)
		}
	}

	for _, marker := range c.Markers {
		if !macroName.MatchString(marker) {
			return fmt.Errorf("markers: %q is not a macro name", marker)
		}
	}

	for _, pattern := range c.Exclude {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("exclude: %w", err)
		}
	}

	if c.Verbose < 0 || c.Verbose > MaxVerbose {
		return fmt.Errorf("verbose must be between 0 and %d", MaxVerbose)
	}

	if c.Parallel < 0 {
		return fmt.Errorf("parallel must be non-negative")
	}

	return nil
}

var macroName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Options is the linter part of the configuration.
func (c Config) Options() domain.Options {
	return domain.Options{
		Markers: c.Markers,
		Rules:   c.Rules,
		Filters: c.Filters,
		Verbose: c.Verbose,
	}
}

// Display converts the output settings for controller.UI.Start. Call it on a
// validated Config.
func (c Config) Display() []controller.StartOption {
	format, _ := controller.ParseFormat(c.Format)
	counting, _ := controller.ParseCounting(c.Counting)

	return []controller.StartOption{
		controller.WithFormat(format),
		controller.WithCounting(counting),
		controller.WithQuiet(c.Quiet),
	}
}
