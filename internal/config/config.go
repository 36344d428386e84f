package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AIConfig holds the summarization provider settings.
// Provider selection is process-wide: one model, one temperature, a bounded
// retry count for transient provider errors.
type AIConfig struct {
	ProjectID    string
	Region       string
	Model        string
	Temperature  float32
	MaxRetries   int
	RetryBackoff time.Duration
	Timeout      time.Duration
}

// OCRConfig holds the text extraction settings.
// OCRmyPDF and Pdftotext may be binary names or absolute paths.
type OCRConfig struct {
	OCRmyPDF  string
	Pdftotext string
	Language  string
	OutputDir string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	AI       AIConfig
	OCR      OCRConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		AI: AIConfig{
			ProjectID:    getEnv("GCP_PROJECT_ID", ""),
			Region:       getEnv("VERTEX_AI_REGION", "us-central1"),
			Model:        getEnv("AI_MODEL", "gemini-2.0-flash"),
			Temperature:  getEnvFloat32("AI_TEMPERATURE", 0.2),
			MaxRetries:   getEnvInt("AI_MAX_RETRIES", 2),
			RetryBackoff: time.Duration(getEnvInt("AI_RETRY_BACKOFF_MS", 500)) * time.Millisecond,
			Timeout:      time.Duration(getEnvInt("AI_TIMEOUT_SEC", 60)) * time.Second,
		},
		OCR: OCRConfig{
			OCRmyPDF:  getEnv("OCRMYPDF_BIN", "ocrmypdf"),
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Language:  getEnv("OCR_LANGUAGE", "eng"), // e.g. "eng+hin" for English+Hindi
			OutputDir: getEnv("OCR_OUTPUT_DIR", "ocr_output"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat32(key string, def float32) float32 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err == nil {
			return float32(f)
		}
	}
	return def
}
