package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mgomes/tclish/tcl"
)

const configEnv = "TCLISH_CONFIG"

// fileConfig is the on-disk configuration, loaded from TOML or YAML.
type fileConfig struct {
	LogLevel           string          `toml:"log_level" yaml:"log_level"`
	Encoding           string          `toml:"encoding" yaml:"encoding"`
	InputEncoding      string          `toml:"input_encoding" yaml:"input_encoding"`
	Plain              bool            `toml:"plain" yaml:"plain"`
	StepQuota          int             `toml:"step_quota" yaml:"step_quota"`
	RecursionLimit     int             `toml:"recursion_limit" yaml:"recursion_limit"`
	ParallelLex        bool            `toml:"parallel_lex" yaml:"parallel_lex"`
	StrictSubstitution bool            `toml:"strict_substitution" yaml:"strict_substitution"`
	Timeout            duration        `toml:"timeout" yaml:"timeout"`
	Commands           []commandConfig `toml:"commands" yaml:"commands"`
}

// commandConfig declares a script command registered before any script runs.
type commandConfig struct {
	Name   string   `toml:"name" yaml:"name"`
	Params []string `toml:"params" yaml:"params"`
	Body   string   `toml:"body" yaml:"body"`
}

// duration wraps time.Duration for text decoding.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// loadConfig reads path, choosing the decoder by extension.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported format (want .toml, .yaml or .yml)", path)
	}

	for i, c := range cfg.Commands {
		if strings.TrimSpace(c.Name) == "" {
			return cfg, fmt.Errorf("config %s: command %d has no name", path, i+1)
		}
	}
	return cfg, nil
}

// configPath returns the explicit path, falling back to $TCLISH_CONFIG.
func configPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(configEnv)
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if level == "" {
		level = "warn"
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// interpreterConfig maps the merged settings onto tcl.Config.
func (c fileConfig) interpreterConfig(out io.Writer, logger *slog.Logger) tcl.Config {
	return tcl.Config{
		Output:             out,
		Encoding:           c.Encoding,
		Plain:              c.Plain,
		StepQuota:          c.StepQuota,
		RecursionLimit:     c.RecursionLimit,
		ParallelLex:        c.ParallelLex,
		StrictSubstitution: c.StrictSubstitution,
		Logger:             logger,
	}
}
