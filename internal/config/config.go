package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	LogLevel       string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort       string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort     string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	SessionStore   string `yaml:"session-store" env:"SESSION_STORE" env-default:"memory"`
	SessionIDBytes int    `yaml:"session-id-bytes" env:"SESSION_ID_BYTES" env-default:"8"`
	Redis          Redis  `yaml:"redis"`
	Search         Search `yaml:"search"`
}

type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password   string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB         int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Namespace  string        `yaml:"namespace" env:"REDIS_NAMESPACE"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"1h"`
}

// Search - zero values mean alpha-beta pruning on and a sequential root.
type Search struct {
	DisablePruning bool `yaml:"disable-pruning" env:"SEARCH_DISABLE_PRUNING"`
	Parallel       bool `yaml:"parallel" env:"SEARCH_PARALLEL"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown session-store %q", that.SessionStore)
	}

	if that.SessionIDBytes <= 0 {
		return fmt.Errorf("session-id-bytes must be positive, got %d", that.SessionIDBytes)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
