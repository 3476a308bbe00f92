package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Email  EmailConfig
	CORS   CORSConfig
	Worker WorkerConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds service token validation settings.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for the report archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds report delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WorkerConfig holds schedule worker settings.
type WorkerConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
	RunTimeoutSecs   int `mapstructure:"run_timeout_secs"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the ENTRYDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENTRYDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "entrydesk")
	v.SetDefault("db.password", "entrydesk_secret")
	v.SetDefault("db.name", "entrydesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "entrydesk")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "entrydesk-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 604800)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "reports@entrydesk.io")
	v.SetDefault("email.from_name", "EntryDesk Reports")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Worker defaults
	v.SetDefault("worker.poll_interval_secs", 30)
	v.SetDefault("worker.concurrency", 3)
	v.SetDefault("worker.run_timeout_secs", 300)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "ENTRYDESK_SERVER_PORT",
		"server.read_timeout":       "ENTRYDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "ENTRYDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":        "ENTRYDESK_SERVER_ENVIRONMENT",
		"db.host":                   "ENTRYDESK_DB_HOST",
		"db.port":                   "ENTRYDESK_DB_PORT",
		"db.user":                   "ENTRYDESK_DB_USER",
		"db.password":               "ENTRYDESK_DB_PASSWORD",
		"db.name":                   "ENTRYDESK_DB_NAME",
		"db.sslmode":                "ENTRYDESK_DB_SSLMODE",
		"db.max_open":               "ENTRYDESK_DB_MAX_OPEN",
		"db.max_idle":               "ENTRYDESK_DB_MAX_IDLE",
		"jwt.secret":                "ENTRYDESK_JWT_SECRET",
		"jwt.issuer":                "ENTRYDESK_JWT_ISSUER",
		"s3.region":                 "ENTRYDESK_S3_REGION",
		"s3.bucket":                 "ENTRYDESK_S3_BUCKET",
		"s3.endpoint":               "ENTRYDESK_S3_ENDPOINT",
		"s3.access_key":             "ENTRYDESK_S3_ACCESS_KEY",
		"s3.secret_key":             "ENTRYDESK_S3_SECRET_KEY",
		"s3.presign_expiry":         "ENTRYDESK_S3_PRESIGN_EXPIRY",
		"email.provider":            "ENTRYDESK_EMAIL_PROVIDER",
		"email.region":              "ENTRYDESK_EMAIL_REGION",
		"email.from_address":        "ENTRYDESK_EMAIL_FROM_ADDRESS",
		"email.from_name":           "ENTRYDESK_EMAIL_FROM_NAME",
		"cors.allowed_origins":      "ENTRYDESK_CORS_ALLOWED_ORIGINS",
		"worker.poll_interval_secs": "ENTRYDESK_WORKER_POLL_INTERVAL_SECS",
		"worker.concurrency":        "ENTRYDESK_WORKER_CONCURRENCY",
		"worker.run_timeout_secs":   "ENTRYDESK_WORKER_RUN_TIMEOUT_SECS",
		"log.level":                 "ENTRYDESK_LOG_LEVEL",
		"log.format":                "ENTRYDESK_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ENTRYDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ENTRYDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Worker = WorkerConfig{
		PollIntervalSecs: v.GetInt("worker.poll_interval_secs"),
		Concurrency:      v.GetInt("worker.concurrency"),
		RunTimeoutSecs:   v.GetInt("worker.run_timeout_secs"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
