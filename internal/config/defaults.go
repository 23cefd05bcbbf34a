package config

// Default configuration values.
const (
	DefaultReporter       = "verbose"
	DefaultColor          = "auto"
	DefaultIndent         = 2
	DefaultMaxExpandLevel = 10
	DefaultLogLevel       = "warn"
	DefaultNamespace      = "aspect"
	DefaultRedisKey       = "aspect:snapshots"
	DefaultConfigName     = "aspect"
	EnvPrefix             = "ASPECT"
)

// Default returns a configuration with every default applied, as used when
// no config file exists.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for unset configuration fields. It is
// idempotent.
func ApplyDefaults(cfg *Config) {
	if cfg.Reporter == "" {
		cfg.Reporter = DefaultReporter
	}
	if cfg.Color == "" {
		cfg.Color = DefaultColor
	}
	applyStringifyDefaults(cfg)
	applySnapshotDefaults(cfg)
	applyLogDefaults(cfg)
	applyMetricsDefaults(cfg)
	if cfg.Summary == nil {
		cfg.Summary = &SummaryConfig{}
	}
	if cfg.Tracing == nil {
		cfg.Tracing = &TracingConfig{}
	}
}

func applyStringifyDefaults(cfg *Config) {
	if cfg.Stringify == nil {
		cfg.Stringify = &StringifyConfig{}
	}
	// Zero selects the default for both fields.
	if cfg.Stringify.Indent == 0 {
		cfg.Stringify.Indent = DefaultIndent
	}
	if cfg.Stringify.MaxExpandLevel == 0 {
		cfg.Stringify.MaxExpandLevel = DefaultMaxExpandLevel
	}
}

func applySnapshotDefaults(cfg *Config) {
	if cfg.Snapshots == nil {
		cfg.Snapshots = &SnapshotsConfig{}
	}
	if cfg.Snapshots.Redis != nil && cfg.Snapshots.Redis.Key == "" {
		cfg.Snapshots.Redis.Key = DefaultRedisKey
	}
}

func applyLogDefaults(cfg *Config) {
	if cfg.Log == nil {
		cfg.Log = &LogConfig{}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

func applyMetricsDefaults(cfg *Config) {
	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultNamespace
	}
}
