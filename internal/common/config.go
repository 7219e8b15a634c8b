package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR        OCRConfig
	Preprocess PreprocessConfig
	Log        LogConfig
}

// OCRConfig holds OCR engine configuration
type OCRConfig struct {
	Tesseract   string // binary name or absolute path
	Language    string
	TessdataDir string
	PSM         int
	Timeout     time.Duration
}

// PreprocessConfig holds image preprocessing configuration
type PreprocessConfig struct {
	Enabled bool
	TempDir string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string // debug | info | warn | error
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Tesseract:   getEnv("OCR_TESSERACT", "tesseract"),
			Language:    getEnv("OCR_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			PSM:         getEnvAsInt("OCR_PSM", 0),
			Timeout:     getEnvAsDuration("OCR_TIMEOUT", 60*time.Second),
		},
		Preprocess: PreprocessConfig{
			Enabled: getEnvAsBool("PREPROCESS_ENABLED", true),
			TempDir: getEnv("PREPROCESS_TEMP_DIR", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.Tesseract == "" {
		return NewAppError("CONFIG_ERROR", "OCR_TESSERACT is required", ErrInvalidInput)
	}
	if c.OCR.Language == "" {
		return NewAppError("CONFIG_ERROR", "OCR_LANG is required", ErrInvalidInput)
	}
	return nil
}
