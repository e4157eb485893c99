package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"scry/internal/classify"
	"scry/internal/export"
	"scry/internal/ingest"
	"scry/internal/model"
	"scry/internal/tools"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type OpenAI struct {
	Model      string `toml:"model"`
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

type Config struct {
	Capacity int          `toml:"capacity"`
	Theme    Theme        `toml:"theme"`
	Offline  bool         `toml:"offline"`
	OpenAI   OpenAI       `toml:"openai"`
	Tools    []tools.Tool `toml:"tools"`

	// Command line only
	Start        bool   `toml:"-"`
	FilePath     string `toml:"-"`
	Follow       bool   `toml:"-"`
	Demo         bool   `toml:"-"`
	Where        string `toml:"-"`
	ExportFormat string `toml:"-"`
	ExportOut    string `toml:"-"`
	Path         string `toml:"-"` // config file that was read, if any
}

func Default() *Config {
	return &Config{
		Capacity: model.DefaultCapacity,
		Theme:    ThemeDark,
		OpenAI:   OpenAI{Model: classify.DefaultModel, TimeoutSec: 30},
	}
}

// Dir is the per-user configuration directory, e.g. ~/.config/scry.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "scry"), nil
}

// RegisterFlags declares the viewer flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.BoolP("start", "s", false, "start the viewer even without piped input")
	fs.String("file", "", "read lines from a file instead of stdin")
	fs.Bool("follow", false, "follow --file as it grows (tail -f)")
	fs.Bool("demo", false, "show a synthetic log stream")
	fs.Int("capacity", d.Capacity, "number of lines kept in memory")
	fs.String("theme", string(d.Theme), "theme: dark|light")
	fs.Bool("offline", false, "never call OpenAI; use local heuristics")
	fs.String("openai-model", d.OpenAI.Model, "OpenAI model")
	fs.String("openai-base-url", "", "OpenAI base URL override")
	fs.Int("openai-timeout-sec", d.OpenAI.TimeoutSec, "OpenAI request timeout in seconds")
	fs.String("where", "", `only ingest lines matching an expression, e.g. 'level == "error"'`)
	fs.String("export", "", "export format for the e key: text|ndjson")
	fs.String("out", "", "output path for export")
	fs.String("config", "", "config file (default $XDG_CONFIG_HOME/scry/config.toml)")
}

// Load builds the configuration from defaults, the config file, the
// environment and the flags in fs, in increasing order of precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := Default()
	path, _ := fs.GetString("config")
	explicit := path != ""
	if !explicit {
		if dir, err := Dir(); err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.applyFlags(fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, mustExist bool) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Path = path
	return nil
}

func (c *Config) applyEnv() {
	c.OpenAI.Model = getenvDefault("SCRY_OPENAI_MODEL", c.OpenAI.Model)
	c.OpenAI.BaseURL = getenvDefault("SCRY_OPENAI_BASE_URL", c.OpenAI.BaseURL)
	c.OpenAI.TimeoutSec = getenvDefaultInt("SCRY_OPENAI_TIMEOUT_SEC", c.OpenAI.TimeoutSec)
}

func (c *Config) applyFlags(fs *pflag.FlagSet) error {
	var err error
	str := func(name string, dst *string) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetString(name)
		}
	}
	boolean := func(name string, dst *bool) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetBool(name)
		}
	}
	integer := func(name string, dst *int) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetInt(name)
		}
	}
	theme := string(c.Theme)
	boolean("start", &c.Start)
	str("file", &c.FilePath)
	boolean("follow", &c.Follow)
	boolean("demo", &c.Demo)
	integer("capacity", &c.Capacity)
	str("theme", &theme)
	boolean("offline", &c.Offline)
	str("openai-model", &c.OpenAI.Model)
	str("openai-base-url", &c.OpenAI.BaseURL)
	integer("openai-timeout-sec", &c.OpenAI.TimeoutSec)
	str("where", &c.Where)
	str("export", &c.ExportFormat)
	str("out", &c.ExportOut)
	c.Theme = Theme(theme)
	return err
}

func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", c.Capacity)
	}
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return fmt.Errorf("unknown theme %q (want dark|light)", c.Theme)
	}
	if c.ExportFormat != "" {
		if _, err := export.ParseFormat(c.ExportFormat); err != nil {
			return err
		}
		if c.ExportOut == "" {
			return errors.New("--export requires --out path")
		}
	}
	if c.Follow && c.FilePath == "" {
		return errors.New("--follow requires --file")
	}
	if c.Demo && c.FilePath != "" {
		return errors.New("--demo and --file are mutually exclusive")
	}
	return nil
}

// NeedsUsage reports whether there is nothing to show: no piped input and no
// explicit source.
func (c *Config) NeedsUsage(stdinIsTerminal bool) bool {
	return stdinIsTerminal && !c.Start && !c.Demo && c.FilePath == ""
}

func (c *Config) Source(stdinIsTerminal bool) ingest.SourceKind {
	switch {
	case c.Demo:
		return ingest.SourceDemo
	case c.FilePath != "":
		return ingest.SourceFile
	case !stdinIsTerminal:
		return ingest.SourceStdin
	}
	return ingest.SourceWaiting
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDefaultInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func (c *Config) String() string {
	return fmt.Sprintf("file=%s follow=%v demo=%v capacity=%d theme=%s offline=%v model=%s config=%s",
		c.FilePath, c.Follow, c.Demo, c.Capacity, c.Theme, c.Offline, c.OpenAI.Model, c.Path)
}
