package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Bank struct {
		CSV string `yaml:"csv"`
		TTL string `yaml:"ttl"`
	} `yaml:"bank"`
	Quiz struct {
		MinRoundSize int `yaml:"min_round_size"`
		MaxRoundSize int `yaml:"max_round_size"`
	} `yaml:"quiz"`
	Trivia struct {
		URL string `yaml:"url"`
	} `yaml:"trivia"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// RoundSizeBounds returns the configured round-size bounds, defaulting to the
// recommended 5..15 window when unset.
func (c Config) RoundSizeBounds() (int, int) {
	min, max := c.Quiz.MinRoundSize, c.Quiz.MaxRoundSize
	if min <= 0 {
		min = 5
	}
	if max < min {
		max = 15
	}
	return min, max
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
