package config

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cqkv/extsearch"
	"github.com/cqkv/extsearch/codec"

	"gopkg.in/yaml.v3"
)

const (
	ByteOrderBig    = "big"
	ByteOrderLittle = "little"

	DiagnosticsStderr  = "stderr"
	DiagnosticsStdout  = "stdout"
	DiagnosticsDiscard = "discard"
)

type Config struct {
	Verbosity   int              `yaml:"verbosity"`
	Diagnostics string           `yaml:"diagnostics"` // stderr, stdout, discard or a file path
	ByteOrder   string           `yaml:"byte_order"`
	ProbeCache  ProbeCacheConfig `yaml:"probe_cache"`
}

type ProbeCacheConfig struct {
	Levels int `yaml:"levels"` // 0 disables the cache
	Degree int `yaml:"degree"`
}

func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load read the yaml file at configPath, an empty path looks for
// extsearch.yaml in configs/ and the working directory and falls back to defaults
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		for _, p := range []string{"configs/extsearch.yaml", "extsearch.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				return Parse(data)
			}
		}
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Default(), err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Verbosity < 0 {
		cfg.Verbosity = 0
	}
	if cfg.Diagnostics == "" {
		cfg.Diagnostics = DiagnosticsStderr
	}
	if cfg.ByteOrder == "" {
		cfg.ByteOrder = ByteOrderBig
	}
	cfg.ByteOrder = strings.ToLower(cfg.ByteOrder)
	if cfg.ProbeCache.Levels < 0 {
		cfg.ProbeCache.Levels = 0
	}
	if cfg.ProbeCache.Degree <= 0 {
		cfg.ProbeCache.Degree = 32
	}
}

func (c *Config) Validate() error {
	if _, err := c.order(); err != nil {
		return err
	}
	return nil
}

func (c *Config) order() (binary.ByteOrder, error) {
	switch c.ByteOrder {
	case ByteOrderBig:
		return binary.BigEndian, nil
	case ByteOrderLittle:
		return binary.LittleEndian, nil
	}
	return nil, fmt.Errorf("config: unknown byte order %q", c.ByteOrder)
}

// Options translate the config into searcher options.
// the returned closer must be called once the searcher is no longer used,
// it closes the diagnostics file if one was opened
func (c *Config) Options() ([]extsearch.Option, io.Closer, error) {
	order, err := c.order()
	if err != nil {
		return nil, nil, err
	}

	var (
		sink   io.Writer
		closer io.Closer = nopCloser{}
	)
	switch c.Diagnostics {
	case DiagnosticsStderr:
		sink = os.Stderr
	case DiagnosticsStdout:
		sink = os.Stdout
	case DiagnosticsDiscard:
		sink = io.Discard
	default:
		f, err := os.OpenFile(c.Diagnostics, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			return nil, nil, err
		}
		sink, closer = f, f
	}

	opts := []extsearch.Option{
		extsearch.WithVerbosity(c.Verbosity),
		extsearch.WithDiagnostics(sink),
		extsearch.WithCodec(codec.NewCodecImplWithOrder(order)),
	}
	if c.ProbeCache.Levels > 0 {
		opts = append(opts, extsearch.WithProbeCache(c.ProbeCache.Levels, c.ProbeCache.Degree))
	}
	return opts, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
