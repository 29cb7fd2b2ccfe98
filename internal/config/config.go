package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config - конфигурация сервиса модерации
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Moderation ModerationConfig `mapstructure:"moderation"`
}

// ServerConfig - настройки HTTP-сервера
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// StorageConfig - настройки хранилища
type StorageConfig struct {
	Type          string `mapstructure:"type"` // in-memory или postgres
	DSN           string `mapstructure:"dsn"`
	MigrationsDir string `mapstructure:"migrations_dir"`
}

// ModerationConfig - поведение ядра модерации
type ModerationConfig struct {
	AllowAnonymous bool `mapstructure:"allow_anonymous"` // анонимные корневые комментарии из публичной формы
}

// LoadConfig загружает конфигурацию из файла и переменных окружения.
// Отсутствие файла не ошибка: работают значения по умолчанию и окружение.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("storage.type", "in-memory")
	viper.SetDefault("storage.migrations_dir", "migrations")
	viper.SetDefault("moderation.allow_anonymous", true)

	// DATABASE_URL задаётся окружением при деплое
	_ = viper.BindEnv("storage.dsn", "DATABASE_URL")
	_ = viper.BindEnv("storage.type", "STORAGE_TYPE")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Info("Config file not found, using defaults")
		} else {
			return nil, err
		}
	} else {
		logrus.Infof("Using config file: %s", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
