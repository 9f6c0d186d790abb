package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

type Config struct {
	LogLevel          string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat         string      `yaml:"log-format" env:"LOG_FORMAT" env-default:"json"`
	HTTPPort          string      `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string      `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage           Storage     `yaml:"storage"`
	Redis             Redis       `yaml:"redis"`
	SQLiteStoragePath string      `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"tictactoe.db"`
	PlayerCache       PlayerCache `yaml:"player-cache"`
	RateLimit         RateLimit   `yaml:"rate-limit"`
	CORS              CORS        `yaml:"cors"`
	Games             Games       `yaml:"games"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"redis"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type PlayerCache struct {
	Enabled bool          `yaml:"enabled" env:"PLAYER_CACHE_ENABLED" env-default:"true"`
	TTL     time.Duration `yaml:"ttl" env:"PLAYER_CACHE_TTL" env-default:"5m"`
	MaxCost int64         `yaml:"max-cost" env:"PLAYER_CACHE_MAX_COST" env-default:"10000"`
}

// RateLimit - bounds move submissions per client address.
type RateLimit struct {
	MovesPerSecond float64 `yaml:"moves-per-second" env:"RATE_LIMIT_MOVES_PER_SECOND" env-default:"5"`
	Burst          int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

type CORS struct {
	AllowedOrigin string `yaml:"allowed-origin" env:"CORS_ALLOWED_ORIGIN" env-default:"*"`
}

type Games struct {
	ListLimit    int `yaml:"list-limit" env:"GAMES_LIST_LIMIT" env-default:"20"`
	MaxListLimit int `yaml:"max-list-limit" env:"GAMES_MAX_LIST_LIMIT" env-default:"100"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file at path, then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadEnv - builds the config from environment variables and defaults only.
func LoadEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read config from env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFileOrEnv - loads path when it exists, otherwise falls back to environment variables and defaults.
func LoadFileOrEnv(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return LoadEnv()
	}

	return Load(path)
}

func (that *Config) Validate() error {
	switch that.Storage.Driver {
	case DriverRedis, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver: %q", that.Storage.Driver)
	}

	if that.Games.ListLimit <= 0 || that.Games.MaxListLimit < that.Games.ListLimit {
		return fmt.Errorf("invalid games list limits: %d/%d", that.Games.ListLimit, that.Games.MaxListLimit)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
