package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	once     sync.Once
	instance *Config
)

const envFile = "./configs/.env"

type Config struct {
}

// New loads ./configs/.env once. Variables already present in the process
// environment win over the file; a missing file is not fatal so the service
// can be configured purely from the environment in containers.
func New() *Config {
	once.Do(func() {
		if err := godotenv.Load(envFile); err != nil {
			if !os.IsNotExist(err) {
				log.Fatal().Err(err).Msg("loading envs error")
			}
			log.Warn().Str("file", envFile).Msg("env file not found, using process environment")
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

func (c *Config) GetStringOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func (c *Config) GetInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer in config, using default")
		return def
	}
	return n
}

// GetDuration parses values like "60s" or "30m".
func (c *Config) GetDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid duration in config, using default")
		return def
	}
	return d
}
