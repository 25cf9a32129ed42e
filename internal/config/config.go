// Package config loads formica.yaml.
package config

import "time"

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "formica.yaml"

// Upper bounds for generation parameters. A tree grown with min == max == L
// holds 2^(L+1)-1 nodes.
const (
	LevelLimit      = 16
	PopulationLimit = 10000
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the root configuration.
type Config struct {
	Evolution EvolutionConfig `mapstructure:"evolution" yaml:"evolution"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// EvolutionConfig holds generation and breeding parameters.
type EvolutionConfig struct {
	MinLevel     int     `mapstructure:"min_level" yaml:"min_level"`
	MaxLevel     int     `mapstructure:"max_level" yaml:"max_level"`
	MutationRate float64 `mapstructure:"mutation_rate" yaml:"mutation_rate"`
	Population   int     `mapstructure:"population" yaml:"population"`
	// Seed 0 means time based.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

// StoreConfig selects the population store.
type StoreConfig struct {
	Kind  string      `mapstructure:"kind" yaml:"kind"`
	Path  string      `mapstructure:"path" yaml:"path"`
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}
