package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tactics-sim/internal/battle"
	"tactics-sim/pkg/logger"
)

// EnvPrefix - префикс переменных окружения: BATTLESIM_MAX_TURNS и т.д.
const EnvPrefix = "BATTLESIM"

// Config holds all configuration for the application.
type Config struct {
	MaxTurns  int           `mapstructure:"max_turns" validate:"gte=1"`
	ReplayDir string        `mapstructure:"replay_dir" validate:"required"`
	Port      string        `mapstructure:"port" validate:"required,numeric"`
	Tick      time.Duration `mapstructure:"tick" validate:"gt=0"`
	LogLevel  string        `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	LogFormat string        `mapstructure:"log_format" validate:"omitempty,oneof=json text"`
}

// Battle возвращает параметры прогона
func (c *Config) Battle() battle.Config {
	return battle.Config{MaxTurns: c.MaxTurns}
}

// SetDefaults регистрирует значения по умолчанию. Без них AutomaticEnv не увидит ключи при Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("max_turns", battle.DefaultMaxTurns)
	v.SetDefault("replay_dir", "replays")
	v.SetDefault("port", "8080")
	v.SetDefault("tick", "500ms")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load собирает конфиг: .env -> файл battlesim.yaml (если есть) -> переменные окружения.
// configFile может быть пустым, тогда файл ищется в текущем каталоге.
func Load(v *viper.Viper, configFile string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Log.Debug("No .env file found, relying on environment variables")
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("battlesim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		logger.Log.WithField("file", v.ConfigFileUsed()).Info("Config file loaded")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
