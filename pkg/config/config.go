package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	GigaChat       GigaChatConfig
	Redis          RedisConfig
	Recommendation RecommendationConfig
	Reminder       ReminderConfig
	Logger         LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// GigaChatConfig configures the optional LLM integration. An empty APIKey
// disables category detection and recommendation explanations.
type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
}

func (c GigaChatConfig) Enabled() bool {
	return c.APIKey != ""
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	Prefix     string
	CatalogTTL time.Duration
}

type RecommendationConfig struct {
	Workers        int
	WritesPerSec   float64
	WriteBurst     int
	ExplainTimeout time.Duration
}

type ReminderConfig struct {
	Interval time.Duration
	Enabled  bool
}

func Load() (*Config, error) {
	// .env is optional, plain environment variables work the same way
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	catalogTTL, _ := strconv.Atoi(getEnv("REDIS_CATALOG_TTL_SECONDS", "600"))
	workers, _ := strconv.Atoi(getEnv("RECOMMENDATION_WORKERS", "8"))
	writesPerSec, _ := strconv.ParseFloat(getEnv("RECOMMENDATION_WRITES_PER_SEC", "50"), 64)
	writeBurst, _ := strconv.Atoi(getEnv("RECOMMENDATION_WRITE_BURST", "10"))
	explainTimeout, _ := strconv.Atoi(getEnv("RECOMMENDATION_EXPLAIN_TIMEOUT_SECONDS", "30"))
	reminderInterval, _ := strconv.Atoi(getEnv("REMINDER_INTERVAL_MINUTES", "60"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	if workers <= 0 {
		workers = 1
	}
	if reminderInterval <= 0 {
		reminderInterval = 60
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "subtrack"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         redisDB,
			Prefix:     getEnv("REDIS_PREFIX", "subtrack:"),
			CatalogTTL: time.Duration(catalogTTL) * time.Second,
		},
		Recommendation: RecommendationConfig{
			Workers:        workers,
			WritesPerSec:   writesPerSec,
			WriteBurst:     writeBurst,
			ExplainTimeout: time.Duration(explainTimeout) * time.Second,
		},
		Reminder: ReminderConfig{
			Interval: time.Duration(reminderInterval) * time.Minute,
			Enabled:  getEnv("REMINDER_ENABLED", "true") == "true",
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
