package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Reservation tuning.
	PastBufferMinutes  int `mapstructure:"PAST_BUFFER_MINUTES"`  // "today" slots this close to now are unavailable
	HoldOrphanMinutes  int `mapstructure:"HOLD_ORPHAN_MINUTES"`  // pending holds older than this are swept
	HoldSweepMinutes   int `mapstructure:"HOLD_SWEEP_MINUTES"`   // sweep interval
	TokenExpiryHours   int `mapstructure:"TOKEN_EXPIRY_HOURS"`   // employee registration token lifetime
	AuthTokenExpiryHrs int `mapstructure:"AUTH_TOKEN_EXPIRY_HRS"`
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

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "shearbook")
	viper.SetDefault("JWT_SECRET", "dev-only-secret")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("PAST_BUFFER_MINUTES", 15)
	viper.SetDefault("HOLD_ORPHAN_MINUTES", 30)
	viper.SetDefault("HOLD_SWEEP_MINUTES", 10)
	viper.SetDefault("TOKEN_EXPIRY_HOURS", 72)
	viper.SetDefault("AUTH_TOKEN_EXPIRY_HRS", 24)

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

// PastBuffer returns the near-term window in which "today" slots are
// treated as unavailable.
func PastBuffer() time.Duration {
	return time.Duration(AppConfig.PastBufferMinutes) * time.Minute
}
