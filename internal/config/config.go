package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Host   string
	Port   int
	Secure bool // Use HTTPS-only cookies
}

type DatabaseConfig struct {
	URL            string
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from the environment, after sourcing a .env
// file if one is present. API_HOST, API_PORT and DATABASE_URL have no
// defaults: a missing value is a startup failure.
func Load() (*Config, error) {
	_ = godotenv.Load()

	host, ok := os.LookupEnv("API_HOST")
	if !ok || host == "" {
		return nil, fmt.Errorf("API_HOST not set")
	}

	portStr, ok := os.LookupEnv("API_PORT")
	if !ok || portStr == "" {
		return nil, fmt.Errorf("API_PORT not set")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid API_PORT %q: %w", portStr, err)
	}

	dbURL, ok := os.LookupEnv("DATABASE_URL")
	if !ok || dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	return &Config{
		Server: ServerConfig{
			Host:   host,
			Port:   port,
			Secure: getEnvBool("API_SECURE", false),
		},
		Database: DatabaseConfig{
			URL:            dbURL,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
