package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

// Config holds runtime configuration for the advisor.
// Fields may be loaded from a JSON or YAML file, then overridden by the
// environment and command-line flags.
type Config struct {
	Debug bool `json:"debug" yaml:"debug"`

	// Recognition service
	ServiceURL            string `json:"service_url" yaml:"service_url"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" yaml:"request_timeout_seconds"`

	// Logging
	LogFile       string `json:"log_file" yaml:"log_file"`
	LogMaxSizeMB  int    `json:"log_max_size_mb" yaml:"log_max_size_mb"`
	LogMaxBackups int    `json:"log_max_backups" yaml:"log_max_backups"`
	LogMaxAgeDays int    `json:"log_max_age_days" yaml:"log_max_age_days"`

	// Selection overlay and preview
	OutlineColor string `json:"outline_color" yaml:"outline_color"`
	OutlineWidth int    `json:"outline_width" yaml:"outline_width"`
	PreviewPath  string `json:"preview_path" yaml:"preview_path"`
	PreviewMaxW  int    `json:"preview_max_w" yaml:"preview_max_w"`
	PreviewMaxH  int    `json:"preview_max_h" yaml:"preview_max_h"`

	// Capture selection persistence
	SelectionX int `json:"selection_x" yaml:"selection_x"`
	SelectionY int `json:"selection_y" yaml:"selection_y"`
	SelectionW int `json:"selection_w" yaml:"selection_w"`
	SelectionH int `json:"selection_h" yaml:"selection_h"`
}

// Environment variables consulted by ApplyEnv.
const (
	EnvServiceURL = "ADVISOR_SERVICE_URL"
	EnvLogFile    = "ADVISOR_LOG_FILE"
	EnvDebug      = "ADVISOR_DEBUG"
)

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                 false,
		ServiceURL:            "http://127.0.0.1:5000",
		RequestTimeoutSeconds: 30,
		LogMaxSizeMB:          100,
		LogMaxBackups:         3,
		LogMaxAgeDays:         7,
		OutlineColor:          "#FF0000",
		OutlineWidth:          2,
		PreviewPath:           "selection_preview.png",
		PreviewMaxW:           800,
		PreviewMaxH:           450,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.ServiceURL = strings.TrimRight(strings.TrimSpace(c.ServiceURL), "/")
	if c.ServiceURL == "" {
		c.ServiceURL = "http://127.0.0.1:5000"
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 30
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups < 0 {
		c.LogMaxBackups = 0
	}
	if c.LogMaxAgeDays < 0 {
		c.LogMaxAgeDays = 0
	}
	if _, ok := parseHexColor(c.OutlineColor); !ok {
		c.OutlineColor = "#FF0000"
	}
	if c.OutlineWidth <= 0 {
		c.OutlineWidth = 2
	}
	if c.PreviewMaxW < 50 {
		c.PreviewMaxW = 50
	}
	if c.PreviewMaxH < 50 {
		c.PreviewMaxH = 50
	}
	if c.SelectionW < 0 || c.SelectionH < 0 {
		c.SelectionW, c.SelectionH = 0, 0
	}
	return nil
}

// Outline returns the parsed outline color.
func (c *Config) Outline() color.RGBA {
	if rgba, ok := parseHexColor(c.OutlineColor); ok {
		return rgba
	}
	return color.RGBA{R: 0xFF, A: 0xFF}
}

// Selection returns the persisted capture selection, or nil when none is set.
func (c *Config) Selection() *raster.Rect {
	if c == nil || c.SelectionW <= 0 || c.SelectionH <= 0 {
		return nil
	}
	return &raster.Rect{X: c.SelectionX, Y: c.SelectionY, W: c.SelectionW, H: c.SelectionH}
}

// SetSelection stores r as the persisted capture selection; an empty rect clears it.
func (c *Config) SetSelection(r raster.Rect) {
	if r.Empty() {
		c.SelectionW, c.SelectionH = 0, 0
		return
	}
	c.SelectionX, c.SelectionY = r.X, r.Y
	c.SelectionW, c.SelectionH = r.W, r.H
}

// Load attempts to read configuration from the given file path. YAML is used
// for .yaml/.yml files and JSON otherwise. If the file does not exist it
// returns DefaultConfig(). On decode error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if err := decode(f, path, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path, YAML or JSON by extension.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if isYAML(path) {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// ApplyEnv loads envFile (when it exists) into the process environment and
// applies the ADVISOR_* overrides.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("env file %s: %w", envFile, err)
		}
	}
	if v := os.Getenv(EnvServiceURL); v != "" {
		c.ServiceURL = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	return c.Validate()
}

func decode(r io.Reader, path string, cfg *Config) error {
	if isYAML(path) {
		err := yaml.NewDecoder(r).Decode(cfg)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return json.NewDecoder(r).Decode(cfg)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// parseHexColor accepts "#RRGGBB".
func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, true
}
