package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Upload    UploadConfig
	OCR       OCRConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
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
	// MaxConns caps the pgx pool; zero leaves the pool default in place.
	MaxConns int32
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

type UploadConfig struct {
	Dir       string
	MaxSizeMB int
}

type OCRConfig struct {
	// Languages is the tesseract language list, e.g. "kor+eng".
	Languages string
}

// RateLimitConfig holds the per-tier request ceilings. General applies to all
// API routes over a 15 minute window; Auth to login/register over the same
// window; OCR and Upload are per-minute ceilings on the receipt routes.
type RateLimitConfig struct {
	General int
	Auth    int
	OCR     int
	Upload  int
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env is fine: plain environment variables work for Docker/K8s.

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	maxUpload, _ := strconv.Atoi(getEnv("UPLOAD_MAX_SIZE_MB", "10"))
	maxConns, _ := strconv.Atoi(getEnv("DB_MAX_CONNS", "0"))
	generalLimit, _ := strconv.Atoi(getEnv("RATE_LIMIT_GENERAL", "100"))
	authLimit, _ := strconv.Atoi(getEnv("RATE_LIMIT_AUTH", "5"))
	ocrLimit, _ := strconv.Atoi(getEnv("RATE_LIMIT_OCR", "3"))
	uploadLimit, _ := strconv.Atoi(getEnv("RATE_LIMIT_UPLOAD", "10"))

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
			DBName:   getEnv("DB_NAME", "expense_tracker"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(maxConns),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Upload: UploadConfig{
			Dir:       getEnv("UPLOAD_DIR", "uploads"),
			MaxSizeMB: maxUpload,
		},
		OCR: OCRConfig{
			Languages: getEnv("OCR_LANGUAGES", "kor+eng"),
		},
		RateLimit: RateLimitConfig{
			General: generalLimit,
			Auth:    authLimit,
			OCR:     ocrLimit,
			Upload:  uploadLimit,
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
