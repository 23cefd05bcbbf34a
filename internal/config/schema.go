// Package config loads aspect settings from aspect.yaml or aspect.json and
// the ASPECT_* environment.
package config

// Config represents the aspect configuration file.
type Config struct {
	Reporter  string           `json:"reporter,omitempty" yaml:"reporter,omitempty" mapstructure:"reporter"`
	Color     string           `json:"color,omitempty" yaml:"color,omitempty" mapstructure:"color"`
	Snapshots *SnapshotsConfig `json:"snapshots,omitempty" yaml:"snapshots,omitempty" mapstructure:"snapshots"`
	Stringify *StringifyConfig `json:"stringify,omitempty" yaml:"stringify,omitempty" mapstructure:"stringify"`
	Summary   *SummaryConfig   `json:"summary,omitempty" yaml:"summary,omitempty" mapstructure:"summary"`
	Log       *LogConfig       `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`
	Metrics   *MetricsConfig   `json:"metrics,omitempty" yaml:"metrics,omitempty" mapstructure:"metrics"`
	Tracing   *TracingConfig   `json:"tracing,omitempty" yaml:"tracing,omitempty" mapstructure:"tracing"`
}

// SnapshotsConfig selects where baselines live and whether they are rewritten
// after a run.
type SnapshotsConfig struct {
	Path   string       `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
	Update bool         `json:"update,omitempty" yaml:"update,omitempty" mapstructure:"update"`
	Redis  *RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty" mapstructure:"redis"`
}

// RedisConfig points the snapshot store at a Redis hash. It takes precedence
// over Path when set.
type RedisConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty" mapstructure:"addr"`
	Key  string `json:"key,omitempty" yaml:"key,omitempty" mapstructure:"key"`
	DB   int    `json:"db,omitempty" yaml:"db,omitempty" mapstructure:"db"`
}

// StringifyConfig tunes how reporters render values.
type StringifyConfig struct {
	Indent         int `json:"indent,omitempty" yaml:"indent,omitempty" mapstructure:"indent"`
	MaxExpandLevel int `json:"max_expand_level,omitempty" yaml:"max_expand_level,omitempty" mapstructure:"max_expand_level"`
}

// SummaryConfig configures the summary reporter.
type SummaryConfig struct {
	Table bool  `json:"table,omitempty" yaml:"table,omitempty" mapstructure:"table"`
	Logs  *bool `json:"logs,omitempty" yaml:"logs,omitempty" mapstructure:"logs"`
}

// LogsEnabled reports whether captured logs are printed. Defaults to true.
func (s *SummaryConfig) LogsEnabled() bool {
	return s == nil || s.Logs == nil || *s.Logs
}

// LogConfig configures the diagnostic logger.
type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty" mapstructure:"level"`
}

// MetricsConfig enables the Prometheus reporter.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" mapstructure:"enabled"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" mapstructure:"namespace"`
}

// TracingConfig enables the OpenTelemetry reporter.
type TracingConfig struct {
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty" mapstructure:"enabled"`
}
