package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HumanMark string `yaml:"human-mark" env:"HUMAN_MARK" env-default:"O"`
	// FullOpeningSearch - search the empty board instead of opening at (0,0).
	FullOpeningSearch bool    `yaml:"full-opening-search" env:"FULL_OPENING_SEARCH" env-default:"false"`
	History           History `yaml:"history"`
}

// History - optional redis storage for finished matches.
type History struct {
	Enabled bool          `yaml:"enabled" env:"HISTORY_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env:"HISTORY_TTL" env-default:"0s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.HumanMark {
	case "X", "O":
		return nil
	default:
		return fmt.Errorf("%w: human-mark %q", apperror.ErrInvalidMark, that.HumanMark)
	}
}

func (that *History) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
