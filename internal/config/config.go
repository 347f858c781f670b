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
	AppName            string
	ConnectTimeoutSec  int
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
// An empty Endpoint selects the in-memory archive.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LogConfig selects the zap preset and level.
type LogConfig struct {
	Env   string
	Level string
}

// StateConfig selects where the workspace keeps its persisted keys. ObjectDir holds the
// uploaded originals when MINIO_ENDPOINT is empty and the backend is not memory.
type StateConfig struct {
	Backend   string // file, postgres or memory
	Dir       string
	ObjectDir string
}

// ParserConfig configures the delegated document parser.
type ParserConfig struct {
	Backend    string // native or docling
	DoclingURL string
	Timeout    time.Duration
}

// OpenAIConfig configures the remote answering service.
type OpenAIConfig struct {
	URL              string
	Model            string
	MaxTokens        int
	Temperature      float64
	MaxContentChars  int
	MaxContentTokens int
	Timeout          time.Duration
}

// UploadConfig drives the simulated upload progress.
type UploadConfig struct {
	Interval     time.Duration
	Step         int
	Ceiling      int
	SuccessGrace time.Duration
	ErrorGrace   time.Duration
}

// ToastConfig holds the default auto-dismiss durations.
type ToastConfig struct {
	Duration      time.Duration
	ErrorDuration time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	BodyMB   int
	Log      LogConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	State    StateConfig
	Parser   ParserConfig
	OpenAI   OpenAIConfig
	Upload   UploadConfig
	Toast    ToastConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		BodyMB:  getEnvInt("HTTP_BODY_LIMIT_MB", 64),
		Log: LogConfig{
			Env:   getEnv("APP_ENV", "development"),
			Level: getEnv("LOG_LEVEL", ""),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			AppName:            getEnv("DB_APPLICATION_NAME", "docqa"),
			ConnectTimeoutSec:  getEnvInt("DB_CONNECT_TIMEOUT_SEC", 5),
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
		State: StateConfig{
			Backend:   getEnv("STATE_BACKEND", "file"),
			Dir:       getEnv("STATE_DIR", "./data/state"),
			ObjectDir: getEnv("OBJECT_DIR", "./data/objects"),
		},
		Parser: ParserConfig{
			Backend:    getEnv("PARSER_BACKEND", "native"),
			DoclingURL: getEnv("DOCLING_URL", "http://localhost:5001"),
			Timeout:    time.Duration(getEnvInt("PARSER_TIMEOUT_SEC", 60)) * time.Second,
		},
		OpenAI: OpenAIConfig{
			URL:              getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
			Model:            getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			MaxTokens:        getEnvInt("OPENAI_MAX_TOKENS", 1000),
			Temperature:      getEnvFloat("OPENAI_TEMPERATURE", 0.7),
			MaxContentChars:  getEnvInt("OPENAI_MAX_CONTENT_CHARS", 12000),
			MaxContentTokens: getEnvInt("OPENAI_MAX_CONTENT_TOKENS", 0),
			Timeout:          time.Duration(getEnvInt("OPENAI_TIMEOUT_SEC", 60)) * time.Second,
		},
		Upload: UploadConfig{
			Interval:     getEnvMillis("UPLOAD_PROGRESS_INTERVAL_MS", 200),
			Step:         getEnvInt("UPLOAD_PROGRESS_STEP", 10),
			Ceiling:      getEnvInt("UPLOAD_PROGRESS_CEILING", 90),
			SuccessGrace: getEnvMillis("UPLOAD_CLEAR_DELAY_MS", 1000),
			ErrorGrace:   getEnvMillis("UPLOAD_ERROR_CLEAR_DELAY_MS", 3000),
		},
		Toast: ToastConfig{
			Duration:      getEnvMillis("TOAST_DURATION_MS", 5000),
			ErrorDuration: getEnvMillis("TOAST_ERROR_DURATION_MS", 3000),
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

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

// getEnvMillis reads an integer number of milliseconds.
func getEnvMillis(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def)) * time.Millisecond
}
