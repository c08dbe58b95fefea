package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	JWTTTLHours       int    `mapstructure:"JWT_TTL_HOURS"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	FrontendURL       string `mapstructure:"FRONTEND_URL"`
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`
	// TrustedProxies lists proxy IPs/CIDRs whose X-Forwarded-For is honored.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Redis configuration.
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int           `mapstructure:"REDIS_CACHE_DB"`
	EventsCacheTTL time.Duration `mapstructure:"EVENTS_CACHE_TTL"`

	// Email delivery.
	SendGridAPIKey    string `mapstructure:"SENDGRID_API_KEY"`
	SendGridFromEmail string `mapstructure:"SENDGRID_FROM_EMAIL"`
	SendGridFromName  string `mapstructure:"SENDGRID_FROM_NAME"`

	// Firebase push. Empty disables FCM.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Reminder sweep.
	ReminderScanSchedule string        `mapstructure:"REMINDER_SCAN_SCHEDULE"`
	ReminderLookahead    time.Duration `mapstructure:"REMINDER_LOOKAHEAD"`
	DeliveryTimeout      time.Duration `mapstructure:"DELIVERY_TIMEOUT"`
	DeliveryConcurrency  int           `mapstructure:"DELIVERY_CONCURRENCY"`
}

var AppConfig Config

func LoadConfig() *Config {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return &AppConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "devnotify")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL_HOURS", 7*24)
	v.SetDefault("FRONTEND_URL", "*")
	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("EVENTS_CACHE_TTL", "2m")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("SENDGRID_FROM_EMAIL", "")
	v.SetDefault("SENDGRID_FROM_NAME", "DevNotify")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("REMINDER_SCAN_SCHEDULE", "@every 5m")
	v.SetDefault("REMINDER_LOOKAHEAD", "1h")
	v.SetDefault("DELIVERY_TIMEOUT", "5s")
	v.SetDefault("DELIVERY_CONCURRENCY", 4)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// JWTTTL is the lifetime of issued auth tokens.
func (c *Config) JWTTTL() time.Duration {
	if c.JWTTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.JWTTTLHours) * time.Hour
}
