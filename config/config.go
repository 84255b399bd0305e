package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8000"`

	StorageDriver   string        `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"storefront.db"`
	MongoURI        string        `env:"MONGO_URI"`
	MongoDatabase   string        `env:"MONGO_DATABASE" envDefault:"storefront"`
	MongoCollection string        `env:"MONGO_COLLECTION" envDefault:"kv"`
	StrictStorage   bool          `env:"STRICT_STORAGE" envDefault:"false"`
	PollInterval    time.Duration `env:"POLL_INTERVAL" envDefault:"3s"`
	SeedFile        string        `env:"SEED_FILE"`

	JWTSecret         string `env:"JWT_SECRET"`
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	EmailProvider    string `env:"EMAIL_PROVIDER"`
	PostmarkAPIToken string `env:"POSTMARK_API_TOKEN"`
	SendgridAPIKey   string `env:"SENDGRID_API_KEY"`
	EmailSender      string `env:"EMAIL_SENDER"`
	OrderNotifyEmail string `env:"ORDER_NOTIFY_EMAIL"`
}

// Load reads an optional .env file and parses the environment.
// Precedence: explicit env var > .env file > default.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}
	return Parse()
}

// Parse reads Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}
