// Package config provides configuration for the concordance service.
// It defines the samples directory, query limits, and worker settings.
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnv.
const (
	EnvPort       = "PORT"
	EnvSamplesDir = "CONCORDANCE_SAMPLES_DIR"
)

// Settings contains all configuration options for the service.
type Settings struct {
	SamplesDir         string `json:"samples_dir"`          // Directory holding <name>.txt corpora
	Port               int    `json:"port"`                 // HTTP listen port
	DefaultContextSize int    `json:"default_context_size"` // Tokens on each side of a hit when the query omits it
	MaxContextSize     int    `json:"max_context_size"`     // Upper bound accepted for context_size
	DefaultPageSize    int    `json:"default_page_size"`    // Hits per page when the query omits it
	MaxPageSize        int    `json:"max_page_size"`        // Upper bound accepted for page_size
	WarmOnStart        bool   `json:"warm_on_start"`        // Load every corpus in the background at startup
	WorkerCount        int    `json:"worker_count"`         // Size of the warm-up pool
	LogLevel           string `json:"log_level"`            // debug, info, warn or error
}

// Default returns settings with every default applied.
func Default() *Settings {
	s := &Settings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills zero values with defaults.
func (s *Settings) ApplyDefaults() {
	if s.SamplesDir == "" {
		s.SamplesDir = "samples"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.DefaultContextSize == 0 {
		s.DefaultContextSize = 5
	}
	if s.MaxContextSize == 0 {
		s.MaxContextSize = 50
	}
	if s.DefaultPageSize == 0 {
		s.DefaultPageSize = 10
	}
	if s.MaxPageSize == 0 {
		s.MaxPageSize = 100
	}
	if s.WorkerCount == 0 {
		s.WorkerCount = max(runtime.NumCPU()/2, 1)
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}

	// Keep defaults inside their bounds
	if s.DefaultContextSize > s.MaxContextSize {
		s.DefaultContextSize = s.MaxContextSize
	}
	if s.DefaultPageSize > s.MaxPageSize {
		s.DefaultPageSize = s.MaxPageSize
	}
}

// ApplyEnv overrides settings from the environment. Unparseable values are
// ignored.
func (s *Settings) ApplyEnv() {
	if dir := strings.TrimSpace(os.Getenv(EnvSamplesDir)); dir != "" {
		s.SamplesDir = dir
	}
	if raw := strings.TrimSpace(os.Getenv(EnvPort)); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			s.Port = port
		}
	}
}

// Validate checks the settings and returns a message per problem found.
func (s *Settings) Validate() []string {
	var errors []string

	if strings.TrimSpace(s.SamplesDir) == "" {
		errors = append(errors, "samples_dir cannot be empty or whitespace-only")
	}
	if s.Port < 1 || s.Port > 65535 {
		errors = append(errors, "port must be between 1 and 65535, got "+strconv.Itoa(s.Port))
	}
	if s.DefaultContextSize < 0 {
		errors = append(errors, "default_context_size cannot be negative")
	}
	if s.MaxContextSize < 0 {
		errors = append(errors, "max_context_size cannot be negative")
	}
	if s.DefaultContextSize > s.MaxContextSize {
		errors = append(errors, "default_context_size cannot exceed max_context_size")
	}
	if s.DefaultPageSize < 1 {
		errors = append(errors, "default_page_size must be at least 1")
	}
	if s.MaxPageSize < 1 {
		errors = append(errors, "max_page_size must be at least 1")
	}
	if s.DefaultPageSize > s.MaxPageSize {
		errors = append(errors, "default_page_size cannot exceed max_page_size")
	}
	if s.WorkerCount < 1 {
		errors = append(errors, "worker_count must be at least 1")
	}

	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, "Invalid log_level '"+s.LogLevel+"' (must be 'debug', 'info', 'warn' or 'error')")
	}

	return errors
}
