// Package config reads process settings from the environment, after loading an
// optional .env file.
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server holds the settings of the HTTP API.
type Server struct {
	DatabaseURL string
	Addr        string
	AdminToken  string
	MaxUploadMB int
	LogLevel    string
	GinMode     string
}

// Client holds the settings of the command line editor.
type Client struct {
	APIURL   string
	APIToken string
	Location *time.Location
	LogLevel string
	// Defaults of the edit command's variant flags.
	SelectProject   bool
	StrictEmployees bool
}

// LoadServer reads the server settings. DATABASE_URL is required.
func LoadServer() (Server, error) {
	loadDotEnv()

	cfg := Server{
		DatabaseURL: GetString("DATABASE_URL", ""),
		Addr:        GetString("HTTP_ADDR", ":8080"),
		AdminToken:  GetString("ADMIN_TOKEN", ""),
		MaxUploadMB: GetInt("MAX_UPLOAD_MB", 20),
		LogLevel:    GetString("LOG_LEVEL", "info"),
		GinMode:     GetString("GIN_MODE", "debug"),
	}
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL not set")
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 20
	}
	return cfg, nil
}

// LoadClient reads the editor settings. An unknown DAILYLOG_TIMEZONE is an error;
// an empty one means the local zone.
func LoadClient() (Client, error) {
	loadDotEnv()

	cfg := Client{
		APIURL:   GetString("DAILYLOG_API_URL", "http://localhost:8080"),
		APIToken: GetString("DAILYLOG_API_TOKEN", ""),
		Location: time.Local,
		LogLevel: GetString("LOG_LEVEL", "warn"),

		SelectProject:   GetBool("DAILYLOG_SELECT_PROJECT", true),
		StrictEmployees: GetBool("DAILYLOG_STRICT_EMPLOYEES", false),
	}
	if tz := GetString("DAILYLOG_TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return cfg, err
		}
		cfg.Location = loc
	}
	return cfg, nil
}

// A missing .env file is normal outside development.
func loadDotEnv() {
	_ = godotenv.Load()
}

// GetString retrieves an environment variable or returns a fallback when unset.
func GetString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetInt retrieves an environment variable as integer or returns fallback.
func GetInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("invalid value for %s: %v", key, err)
			return fallback
		}
		return parsed
	}
	return fallback
}

// GetBool retrieves an environment variable as bool or returns fallback.
func GetBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("invalid value for %s: %v", key, err)
			return fallback
		}
		return parsed
	}
	return fallback
}
