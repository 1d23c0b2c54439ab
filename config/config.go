// Package config loads the process configuration from the environment,
// with an optional .env file for local runs.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full configuration surface.
type Config struct {
	App       AppConfig       `envPrefix:"APP_"`
	Ingest    IngestConfig    `envPrefix:"INGEST_"`
	Validate  ValidateConfig  `envPrefix:"VALIDATE_"`
	Source    KafkaConfig     `envPrefix:"SOURCE_KAFKA_"`
	Broadcast BroadcastConfig `envPrefix:"BROADCAST_KAFKA_"`
}

// AppConfig names the process and its observability knobs.
type AppConfig struct {
	Name     string `env:"NAME" envDefault:"synapse"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	GRPCPort int    `env:"GRPC_PORT" envDefault:"9090"`
}

// IngestConfig sizes the zero-copy path.
type IngestConfig struct {
	ArenaCapacity int  `env:"ARENA_CAPACITY" envDefault:"16777216"`
	QueueSize     int  `env:"QUEUE_SIZE" envDefault:"10000"`
	Resync        bool `env:"RESYNC" envDefault:"true"`
}

// ValidateConfig selects the validation policy.
type ValidateConfig struct {
	BoundsPreset string        `env:"BOUNDS_PRESET" envDefault:"crypto"`
	Symbols      []string      `env:"SYMBOLS" envSeparator:","`
	Permissive   bool          `env:"PERMISSIVE" envDefault:"false"`
	SkewTol      time.Duration `env:"SKEW_TOLERANCE" envDefault:"1ms"`
}

// KafkaConfig points at the raw-frame source topic.
type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"true"`
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"md-raw"`
}

// BroadcastConfig points at the validated-frame sink topic.
type BroadcastConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"true"`
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"md-validated"`
}

// Load reads the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
