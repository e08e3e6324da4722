// Package config loads the librarian configuration from a YAML file and environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/booklending/internal/logging"
)

// DefaultPath is read when neither -config nor LIBRARY_CONFIG names a file. It may be missing.
const DefaultPath = "librarian.yaml"

// Environment variables that override the file.
const (
	EnvConfigPath = "LIBRARY_CONFIG"
	EnvRatePerDay = "LIBRARY_RATE_PER_DAY"
	EnvLogLevel   = "LOG_LEVEL"
)

// Metrics backends.
const (
	MetricsPrometheus = "prometheus"
	MetricsOTel       = "otel"
	MetricsNone       = "none"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Book is a seed book.
type Book struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Shelf  string `yaml:"shelf"`
}

// Config is the resolved configuration.
type Config struct {
	RatePerDay int64
	Currency   string
	LogLevel   string
	Metrics    string
	SeedBooks  []Book
}

type fileConfig struct {
	RatePerDay *int64  `yaml:"rate_per_day"`
	Currency   *string `yaml:"currency"`
	LogLevel   *string `yaml:"log_level"`
	Metrics    *string `yaml:"metrics"`
	SeedBooks  *[]Book `yaml:"seed_books"`
}

// DefaultSeedBooks is the catalog a fresh library starts with when seed_books is absent.
func DefaultSeedBooks() []Book {
	return []Book{
		{Title: "Python Basics", Author: "Mark Lutz", Shelf: "A1"},
		{Title: "Data Structures", Author: "Narasimha Karumanchi", Shelf: "B1"},
		{Title: "Operating System", Author: "Galvin", Shelf: "C2"},
		{Title: "DBMS Concepts", Author: "Korth", Shelf: "D3"},
		{Title: "Java Programming", Author: "James Gosling", Shelf: "E2"},
	}
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		RatePerDay: 10,
		Currency:   "₹",
		LogLevel:   "warn",
		Metrics:    MetricsPrometheus,
		SeedBooks:  DefaultSeedBooks(),
	}
}

// Load reads the file at path, or at LIBRARY_CONFIG, or DefaultPath, then applies environment
// overrides and validates the result. Only a missing DefaultPath is tolerated.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath
		explicit = false
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = Parse(data); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected. An empty document yields Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if fc.RatePerDay != nil {
		cfg.RatePerDay = *fc.RatePerDay
	}
	if fc.Currency != nil {
		cfg.Currency = *fc.Currency
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*fc.LogLevel))
	}
	if fc.Metrics != nil {
		cfg.Metrics = strings.ToLower(strings.TrimSpace(*fc.Metrics))
	}
	if fc.SeedBooks != nil {
		cfg.SeedBooks = *fc.SeedBooks
	}

	return cfg, nil
}

// Validate checks the values a Library and the logger would refuse.
func (c Config) Validate() error {
	if c.RatePerDay <= 0 {
		return fmt.Errorf("%w: rate_per_day must be positive, got %d", ErrInvalidConfig, c.RatePerDay)
	}

	switch c.Metrics {
	case MetricsPrometheus, MetricsOTel, MetricsNone:
	default:
		return fmt.Errorf("%w: unknown metrics backend %q", ErrInvalidConfig, c.Metrics)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}

	for i, b := range c.SeedBooks {
		if strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "" || strings.TrimSpace(b.Shelf) == "" {
			return fmt.Errorf("%w: seed_books[%d] needs title, author and shelf", ErrInvalidConfig, i)
		}
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvRatePerDay); v != "" {
		rate, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvRatePerDay, v)
		}
		cfg.RatePerDay = rate
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}

	return nil
}
