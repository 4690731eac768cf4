package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	errorsUtils "github.com/Egor213/LogOps/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		HTTP       `yaml:"http"`
		Storage    `yaml:"storage"`
		PG         `yaml:"postgres"`
		SQLite     `yaml:"sqlite"`
		Kafka      `yaml:"kafka"`
		Prometheus `yaml:"prometheus"`
	}

	App struct {
		Name    string `yaml:"name" env:"APP_NAME" env-default:"LogOps Dashboard"`
		Version string `yaml:"version" env:"APP_VERSION" env-default:"0.1.0"`
	}

	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	}

	HTTP struct {
		Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	}

	Storage struct {
		Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	}

	PG struct {
		MaxPoolSize int    `yaml:"max_pool_size" env:"MAX_POOL_SIZE" env-default:"4"`
		URL         string `env:"PG_URL"`
	}

	SQLite struct {
		Path string `yaml:"path" env:"SQLITE_PATH" env-default:"logops.db"`
	}

	Kafka struct {
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"log-events"`
	}

	Prometheus struct {
		Port string `yaml:"port" env:"PROMETHEUS_PORT" env-default:"9090"`
	}
)

const (
	ENV_PATH            = "infra/.env.dev"
	DEFAULT_CONFIG_PATH = "infra/config.yaml"
)

var ErrInvalidConfig = errors.New("invalid config")

func loadDotEnv() {
	if err := godotenv.Load(ENV_PATH); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", ENV_PATH).Debug("No .env file, using process environment")
			return
		}
		log.Warnf("Error loading .env file: %v", err)
	}
}

func New() (*Config, error) {
	loadDotEnv()

	cfg := &Config{}

	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		log.WithField("env_var", "APP_CONFIG_PATH").
			Info("Config path is not set, using default")
		pathToConfig = DEFAULT_CONFIG_PATH
	}

	if err := cleanenv.ReadConfig(pathToConfig, cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.PG.URL == "" {
			return fmt.Errorf("%w: PG_URL is required for the postgres driver", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("%w: sqlite path is empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	return nil
}
