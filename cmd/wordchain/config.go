package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/CTAG07/wordchain/pkg/markov"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of a run. Command line flags override it.
type Config struct {
	LogLevel    string `json:"log_level" yaml:"log_level"`
	WordLength  int    `json:"word_length" yaml:"word_length"`
	Count       int    `json:"count" yaml:"count"`
	Parallel    bool   `json:"parallel" yaml:"parallel"`
	Workers     int    `json:"workers" yaml:"workers"`
	MaxAttempts int    `json:"max_attempts" yaml:"max_attempts"`
	MaxWords    int    `json:"max_words" yaml:"max_words"`
	Seed        uint64 `json:"seed" yaml:"seed"`
	HistoryPath string `json:"history_path" yaml:"history_path"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		WordLength:  1,
		Count:       1,
		Parallel:    false,
		Workers:     0,
		MaxAttempts: markov.DefaultMaxAttempts,
		MaxWords:    0,
		Seed:        0,
		HistoryPath: "",
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig reads the configuration from a JSON or YAML file at the given
// path, chosen by extension. If the file doesn't exist, it creates one with
// default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			if isYAML(path) {
				data, err = yaml.Marshal(config)
			} else {
				data, err = json.MarshalIndent(config, "", "  ")
			}
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The run can still go ahead with defaults.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(file, config)
	} else {
		err = json.Unmarshal(file, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// generateOptions translates the config into generation options.
func (c *Config) generateOptions(required []string) []markov.GenerateOption {
	opts := []markov.GenerateOption{
		markov.WithCount(c.Count),
		markov.WithParallel(c.Parallel),
		markov.WithMaxAttempts(c.MaxAttempts),
		markov.WithMaxWords(c.MaxWords),
	}
	if c.Parallel && c.Workers > 0 {
		opts = append(opts, markov.WithWorkers(c.Workers))
	}
	if len(required) > 0 {
		opts = append(opts, markov.WithRequiredWords(required...))
	}
	return opts
}

// workerCount is the number of workers generateOptions results in.
func (c *Config) workerCount(parallelism int) int {
	if !c.Parallel {
		return 1
	}
	if c.Workers > 0 {
		return c.Workers
	}
	return parallelism
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
