package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	API     APIConfig     `yaml:"api" json:"api"`
	Intake  IntakeConfig  `yaml:"intake" json:"intake"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Profile ProfileConfig `yaml:"profile" json:"profile"`
}

// APIConfig configures the analysis service endpoints
type APIConfig struct {
	ServiceURL string        `yaml:"service_url" json:"service_url"`   // upload and health endpoints
	BaseURL    string        `yaml:"api_base_url" json:"api_base_url"` // connectivity check endpoints
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`           // 0 disables the timeout
}

// IntakeConfig configures how video files are collected
type IntakeConfig struct {
	DropDir              string   `yaml:"drop_dir" json:"drop_dir"`                             // watched folder, empty disables
	ExtraVideoExtensions []string `yaml:"extra_video_extensions" json:"extra_video_extensions"` // e.g. ".dav"
}

// UIConfig configures the terminal UI
type UIConfig struct {
	Theme     string `yaml:"theme" json:"theme"`         // default|high-contrast|minimal
	NoEmoji   bool   `yaml:"no_emoji" json:"no_emoji"`   // use ASCII fallbacks
	LogFile   string `yaml:"log_file" json:"log_file"`   // diagnostics while the TUI runs
	Clipboard string `yaml:"clipboard" json:"clipboard"` // auto|osc52|file
}

// OutputConfig configures headless output formatting
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// ProfileConfig holds the reporter profile shown on the profile page
type ProfileConfig struct {
	Name     string `yaml:"name" json:"name"`
	Email    string `yaml:"email" json:"email"`
	JoinDate string `yaml:"join_date" json:"join_date"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			ServiceURL: "http://localhost:8000",
			BaseURL:    "http://localhost:8000/api",
			Timeout:    0,
		},
		Intake: IntakeConfig{
			DropDir:              "",
			ExtraVideoExtensions: []string{},
		},
		UI: UIConfig{
			Theme:     "default",
			NoEmoji:   false,
			LogFile:   "",
			Clipboard: "auto",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
		Profile: ProfileConfig{
			Name:     "홍길동",
			Email:    "user@example.com",
			JoinDate: "2025-12-01",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAPIConfig(); err != nil {
		return err
	}
	if err := c.validateIntakeConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateAPIConfig validates endpoint configuration
func (c *Config) validateAPIConfig() error {
	if err := validateURL("service_url", c.API.ServiceURL); err != nil {
		return err
	}
	if err := validateURL("api_base_url", c.API.BaseURL); err != nil {
		return err
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: %s (scheme must be http or https)", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s: %s (missing host)", field, raw)
	}
	return nil
}

// validateIntakeConfig validates intake configuration
func (c *Config) validateIntakeConfig() error {
	for _, ext := range c.Intake.ExtraVideoExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid video extension: %q (must start with a dot)", ext)
		}
	}
	return nil
}

// validateUIConfig validates UI configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	switch c.UI.Clipboard {
	case "", "auto", "osc52", "file":
	default:
		return fmt.Errorf("invalid clipboard mode: %s (must be one of: auto, osc52, file)", c.UI.Clipboard)
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}
