package config

import (
	"fmt"
	"regexp"

	"github.com/AndreyAkinshin/aspect/internal/snapshot"
)

// Allowed values for enumerated settings.
var (
	Reporters = []string{"verbose", "summary"}
	Colors    = []string{"auto", "always", "never"}
	LogLevels = []string{"debug", "info", "warn", "error"}

	// Prometheus metric namespace.
	namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a defaulted configuration for errors and returns warnings
// for settings that have no effect.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateEnum("reporter", cfg.Reporter, Reporters); err != nil {
		return nil, err
	}
	if err := validateEnum("color", cfg.Color, Colors); err != nil {
		return nil, err
	}
	if err := validateEnum("log.level", cfg.Log.Level, LogLevels); err != nil {
		return nil, err
	}
	if err := validateStringify(cfg.Stringify); err != nil {
		return nil, err
	}
	if !namespacePattern.MatchString(cfg.Metrics.Namespace) {
		return nil, &ValidationError{
			Field:   "metrics.namespace",
			Message: "must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$",
		}
	}

	snapshotWarnings, err := validateSnapshots(cfg.Snapshots)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, snapshotWarnings...)

	if cfg.Summary.Table && cfg.Reporter != "summary" {
		warnings = append(warnings, "summary.table has no effect unless reporter is \"summary\"")
	}

	return warnings, nil
}

func validateEnum(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of %q, got %q", allowed, value),
	}
}

func validateStringify(s *StringifyConfig) error {
	if s.Indent < 0 {
		return &ValidationError{Field: "stringify.indent", Message: "must not be negative"}
	}
	if s.MaxExpandLevel < 1 {
		return &ValidationError{Field: "stringify.max_expand_level", Message: "must be at least 1"}
	}
	return nil
}

func validateSnapshots(s *SnapshotsConfig) ([]string, error) {
	var warnings []string

	if s.Redis != nil {
		if s.Redis.Addr == "" {
			return nil, &ValidationError{Field: "snapshots.redis.addr", Message: "is required"}
		}
		if s.Redis.DB < 0 {
			return nil, &ValidationError{Field: "snapshots.redis.db", Message: "must not be negative"}
		}
		if s.Path != "" {
			warnings = append(warnings, "snapshots.path is ignored when snapshots.redis is set")
		}
	} else if s.Path != "" {
		if _, err := snapshot.NewFileStore(s.Path); err != nil {
			return nil, &ValidationError{Field: "snapshots.path", Message: err.Error()}
		}
	}

	if s.Update && s.Path == "" && s.Redis == nil {
		warnings = append(warnings, "snapshots.update has no effect without snapshots.path or snapshots.redis")
	}

	return warnings, nil
}
