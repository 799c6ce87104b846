// Package config loads polydec tool settings from the environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/polydec"
)

// Config holds all configuration values.
type Config struct {
	// Decimation
	TargetReduction float64
	Precision       string
	Strategy        string
	Workers         int
	Scheduler       string
	Merge           bool
	MaxOutputPoints int

	// Logging
	LogFile  string // empty logs to stderr only
	LogLevel slog.Level
}

// Load reads configuration from POLYDEC_* environment variables.
// Unparsable numbers fall back to the default.
func Load() Config {
	return Config{
		TargetReduction: getFloat("POLYDEC_TARGET_REDUCTION", polydec.DefaultTargetReduction),
		Precision:       getEnv("POLYDEC_PRECISION", "default"),
		Strategy:        getEnv("POLYDEC_STRATEGY", "sequential"),
		Workers:         getInt("POLYDEC_WORKERS", 1),
		Scheduler:       getEnv("POLYDEC_SCHEDULER", "heap"),
		Merge:           getEnv("POLYDEC_MERGE", "true") == "true",
		MaxOutputPoints: getInt("POLYDEC_MAX_OUTPUT_POINTS", 0),

		LogFile:  getEnv("POLYDEC_LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("POLYDEC_LOG_LEVEL", "INFO")),
	}
}

// file mirrors Config for YAML. Absent keys leave the loaded value alone.
type file struct {
	TargetReduction *float64 `yaml:"target_reduction"`
	Precision       *string  `yaml:"precision"`
	Strategy        *string  `yaml:"strategy"`
	Workers         *int     `yaml:"workers"`
	Scheduler       *string  `yaml:"scheduler"`
	Merge           *bool    `yaml:"merge"`
	MaxOutputPoints *int     `yaml:"max_output_points"`
	LogFile         *string  `yaml:"log_file"`
	LogLevel        *string  `yaml:"log_level"`
}

// Overlay applies the YAML document at path on top of c.
func (c Config) Overlay(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	return c.OverlayBytes(data)
}

// OverlayBytes applies a YAML document on top of c.
func (c Config) OverlayBytes(data []byte) (Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return c, fmt.Errorf("config: parse: %w", err)
	}
	set(&c.TargetReduction, f.TargetReduction)
	set(&c.Precision, f.Precision)
	set(&c.Strategy, f.Strategy)
	set(&c.Workers, f.Workers)
	set(&c.Scheduler, f.Scheduler)
	set(&c.Merge, f.Merge)
	set(&c.MaxOutputPoints, f.MaxOutputPoints)
	set(&c.LogFile, f.LogFile)
	if f.LogLevel != nil {
		c.LogLevel = parseLogLevel(*f.LogLevel)
	}
	return c, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Options converts c into decimator options. Every bad name is reported.
func (c Config) Options() ([]polydec.Option, error) {
	prec, errPrec := polydec.ParsePrecision(c.Precision)
	strategy, errStrategy := polydec.ParseStrategy(c.Strategy)
	kind, errKind := polydec.ParseScheduler(c.Scheduler)
	if err := errors.Join(errPrec, errStrategy, errKind); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []polydec.Option{
		polydec.WithTargetReduction(c.TargetReduction),
		polydec.WithOutputPrecision(prec),
		polydec.WithStrategy(strategy),
		polydec.WithWorkers(c.Workers),
		polydec.WithScheduler(kind),
		polydec.WithLineMerging(c.Merge),
		polydec.WithMaxOutputPoints(c.MaxOutputPoints),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return n
}

func getFloat(key string, defaultVal float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
