package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	DBName     string `yaml:"dbname"`
	SSLMode    string `yaml:"sslmode"`
	TestDBName string `yaml:"testDbname"` // Separate database for testing
}

// AuthConfig holds the authentication configuration
type AuthConfig struct {
	JWTSecret string `yaml:"jwtSecret"`
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode,
	)
}

// LoadConfig loads the configuration from an optional YAML file
// (BILLABLE_CONFIG) and environment variables. Environment variables
// win over the file.
func LoadConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:       "localhost",
			Port:       5432,
			Username:   "postgres",
			Password:   "password",
			DBName:     "billable",
			SSLMode:    "disable",
			TestDBName: "billable_test",
		},
		Auth: AuthConfig{
			JWTSecret: "your-secret-key-here",
		},
	}

	if path := os.Getenv("BILLABLE_CONFIG"); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg.Server.Port = getEnvAsInt("SERVER_PORT", cfg.Server.Port)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvAsInt("DB_PORT", cfg.Database.Port)
	cfg.Database.Username = getEnv("DB_USERNAME", cfg.Database.Username)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getEnv("DB_NAME", cfg.Database.DBName)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.TestDBName = getEnv("TEST_DB_NAME", cfg.Database.TestDBName)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)

	return cfg
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Helper functions to read environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
