package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevFallbackSecret signs tokens when JWT_SECRET is unset. Development only;
// a hardened deployment must provide its own secret.
const DevFallbackSecret = "pulsedash-dev-secret-do-not-deploy"

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	JWT     JWTConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
}

// IsProduction reports whether the server runs with a production environment
// setting. The seed route is disabled in that case.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "pulsedash")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("JWT_SESSION_TTL_HOURS", 24)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		JWT: JWTConfig{
			Secret:     os.Getenv("JWT_SECRET"),
			SessionTTL: time.Duration(viper.GetInt("JWT_SESSION_TTL_HOURS")) * time.Hour,
		},
	}

	// The service must still start without a secret, but loudly: tokens signed
	// with the fallback are worthless outside development.
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; using the development fallback secret")
		cfg.JWT.Secret = DevFallbackSecret
	}

	return cfg, nil
}
