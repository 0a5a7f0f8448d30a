package config

import (
	"os"
	"strconv"
)

// Config содержит настройки приложения
type Config struct {
	BotToken       string
	DatabasePath   string
	LogLevel       string
	DigestSchedule string
	HistoryLimit   int
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() *Config {
	botToken := getEnv("BOT_TOKEN", "")
	databasePath := getEnv("DATABASE_PATH", "./data/remindme.db")
	logLevel := getEnv("LOG_LEVEL", "info")
	digestSchedule := getEnv("DIGEST_SCHEDULE", "0 9 * * *")
	historyLimit := getEnvInt("HISTORY_LIMIT", 10)

	return &Config{
		BotToken:       botToken,
		DatabasePath:   databasePath,
		LogLevel:       logLevel,
		DigestSchedule: digestSchedule,
		HistoryLimit:   historyLimit,
	}
}

// Получение переменной окружения с возможностью установки значения по умолчанию
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt получение числового значения из переменной окружения
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
