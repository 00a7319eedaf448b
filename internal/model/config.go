package model

import "time"

// Config holds CLI-layer configuration. The scoring engine itself takes no
// configuration: all weights and thresholds are compiled-in calibration
// constants.
type Config struct {
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Backfill    BackfillConfig    `yaml:"backfill"`
	Output      OutputConfig      `yaml:"output"`
}

// ConcurrencyConfig controls parallelism for batch scoring
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// CacheConfig controls the aggregated-insights cache used by the reporting
// commands. Per-session scoring is never cached.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// BackfillConfig throttles bulk rescoring runs
type BackfillConfig struct {
	SessionsPerSecond float64 `yaml:"sessions_per_second"` // 0 = unthrottled
	Burst             int     `yaml:"burst"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 8,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Backfill: BackfillConfig{
			SessionsPerSecond: 0,
			Burst:             5,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
