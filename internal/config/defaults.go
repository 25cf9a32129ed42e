package config

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Evolution: EvolutionConfig{
			MinLevel:     2,
			MaxLevel:     5,
			MutationRate: 0.05,
			Population:   20,
		},
		Store: StoreConfig{
			Kind: StoreFile,
			Path: ".formica/populations",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "formica:population:",
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
