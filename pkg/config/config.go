package config

import (
	"fmt"
	"os"

	"github.com/mikeboe/guia-procesos/pkg/clients"
)

type Config struct {
	GoogleApiKey string
	TextModel    string
	ImageModel   string
	DatabaseURL  string
	Port         string
	GinMode      string
}

// Load reads the configuration from the environment. Callers load any
// .env file beforehand.
func Load() *Config {
	return &Config{
		GoogleApiKey: getEnv("GOOGLE_API_KEY", os.Getenv("GEMINI_API_KEY")),
		TextModel:    getEnv("TEXT_MODEL", string(clients.TextModel)),
		ImageModel:   getEnv("IMAGE_MODEL", string(clients.ImageModel)),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		Port:         getEnv("PORT", "8081"),
		GinMode:      getEnv("GIN_MODE", "release"),
	}
}

// Validate reports settings the application cannot run without.
func (c *Config) Validate() error {
	if c.GoogleApiKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY (or GEMINI_API_KEY) environment variable not set")
	}
	return nil
}

// ArchiveEnabled reports whether searches should be persisted.
func (c *Config) ArchiveEnabled() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
