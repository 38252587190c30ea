package nusc

import "time"

// Config holds the dataset settings.
type Config struct {
	// Version is the dataset version directory, e.g. v1.0-mini.
	Version string `mapstructure:"version" default:"v1.0-mini"`
	// Dataroot is a directory or an s3://bucket/prefix location.
	Dataroot string `mapstructure:"dataroot" default:"/data/sets/nuscenes"`
	// Workers bounds build parallelism; 0 selects GOMAXPROCS.
	Workers int `mapstructure:"workers" default:"0"`
	// StrictDuplicates fails the build when a table repeats a token.
	StrictDuplicates bool `mapstructure:"strict_duplicates" default:"false"`
	// CacheTTLSeconds is how long the server keeps a snapshot; 0 keeps it until restart.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}

// Options returns the build options described by the configuration.
func (c Config) Options() []Option {
	return []Option{
		WithWorkers(c.Workers),
		WithStrictDuplicates(c.StrictDuplicates),
	}
}

// CacheTTL returns the snapshot lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
