package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Backend      Backend
	Log          Log
	Notification Notification
}

type Server struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
}

// Backend describes the school-platform REST API this service consumes.
type Backend struct {
	BaseURL string
	Timeout time.Duration
}

type Log struct {
	Level  string
	Pretty bool
}

type Notification struct {
	FetchLimit int
	SessionTTL time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("BACKEND_TIMEOUT", "15s")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)
	viper.SetDefault("NOTIFICATION_FETCH_LIMIT", 20)
	viper.SetDefault("NOTIFICATION_SESSION_TTL", "30m")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Server.AllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	config.Backend.BaseURL = strings.TrimRight(viper.GetString("BACKEND_BASE_URL"), "/")
	config.Backend.Timeout = viper.GetDuration("BACKEND_TIMEOUT")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")

	config.Notification.FetchLimit = viper.GetInt("NOTIFICATION_FETCH_LIMIT")
	if config.Notification.FetchLimit <= 0 {
		config.Notification.FetchLimit = 20
	}
	config.Notification.SessionTTL = viper.GetDuration("NOTIFICATION_SESSION_TTL")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
