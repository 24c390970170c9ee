package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisAuthDB    int    `mapstructure:"REDIS_AUTH_DB"`

	// Base URL of the hospital availability service.
	AvailabilityAPIURL string `mapstructure:"AVAILABILITY_API_URL"`

	// Slot grid geometry. The grid runs from the opening hour through the
	// closing hour (exclusive) in fixed-length steps.
	ClinicOpenHour  int `mapstructure:"CLINIC_OPEN_HOUR"`
	ClinicCloseHour int `mapstructure:"CLINIC_CLOSE_HOUR"`
	SlotStepMinutes int `mapstructure:"SLOT_STEP_MINUTES"`

	// Number of calendar days fetched after a provider-day's own date.
	SlotWindowDays int `mapstructure:"SLOT_WINDOW_DAYS"`

	// Workflow session lifetime in minutes.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Seconds between dependency health checks.
	HealthCheckIntervalSec int `mapstructure:"HEALTH_CHECK_INTERVAL_SEC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("AVAILABILITY_API_URL", "http://localhost:5049")
	viper.SetDefault("CLINIC_OPEN_HOUR", 9)
	viper.SetDefault("CLINIC_CLOSE_HOUR", 17)
	viper.SetDefault("SLOT_STEP_MINUTES", 15)
	viper.SetDefault("SLOT_WINDOW_DAYS", 5)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("HEALTH_CHECK_INTERVAL_SEC", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
