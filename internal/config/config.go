package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port           string
	DBConn         string
	LogLevel       string
	JWTSecret      string
	ModelPath      string
	EncodersPath   string
	ReloadSchedule string
	CBRURL         string
	AllowedOrigins string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SenderEmail    string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8000"),
		DBConn:         getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=forecast sslmode=disable"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		ModelPath:      getEnv("MODEL_PATH", "artifacts/expense_prediction_model.json"),
		EncodersPath:   getEnv("ENCODERS_PATH", "artifacts/label_encoders.json"),
		ReloadSchedule: getEnv("MODEL_RELOAD_SCHEDULE", "0 3 * * *"),
		CBRURL:         getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "alerts@forecast.local"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ModelPath == "" || cfg.EncodersPath == "" {
		return nil, fmt.Errorf("MODEL_PATH and ENCODERS_PATH are required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
