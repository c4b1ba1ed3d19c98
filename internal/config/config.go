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
	Auth   AuthConfig
	S3     S3Config
	Log    LogConfig
	Parser ParserConfig
	Agent  AgentConfig
	CORS   CORSConfig
	Queue  QueueConfig
	Email  EmailConfig
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

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// AuthConfig holds the admin API credential. The password hash is a bcrypt
// hash; plaintext never appears in configuration.
type AuthConfig struct {
	AdminUser         string `mapstructure:"admin_user"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
}

// S3Config holds AWS S3 settings for uploaded price list files.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ParserConfig holds LLM price list parser settings. APIKey has no default;
// it must be injected through the environment.
type ParserConfig struct {
	Provider      string `mapstructure:"provider"`
	APIKey        string `mapstructure:"api_key"`
	DefaultModel  string `mapstructure:"default_model"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	Streaming     bool   `mapstructure:"streaming"`
	MaxInputChars int    `mapstructure:"max_input_chars"`
}

// AgentConfig holds query agent settings.
type AgentConfig struct {
	MaxRows int `mapstructure:"max_rows"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds parse queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// EmailConfig holds parse failure notification settings.
type EmailConfig struct {
	Provider      string `mapstructure:"provider"`
	Region        string `mapstructure:"region"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	NotifyAddress string `mapstructure:"notify_address"`
}

// Load reads configuration from environment variables with the BEANVAULT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BEANVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "beanvault")
	v.SetDefault("db.password", "beanvault_secret")
	v.SetDefault("db.name", "beanvault_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "1h")
	v.SetDefault("jwt.issuer", "beanvault")

	// Auth defaults
	v.SetDefault("auth.admin_user", "admin")
	v.SetDefault("auth.admin_password_hash", "")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "beanvault-price-lists")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Parser defaults. The API key is deliberately empty.
	v.SetDefault("parser.provider", "deepseek")
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.default_model", "deepseek-chat")
	v.SetDefault("parser.timeout_secs", 600)
	v.SetDefault("parser.streaming", false)
	v.SetDefault("parser.max_input_chars", 100000)

	// Agent defaults
	v.SetDefault("agent.max_rows", 100)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 5)
	v.SetDefault("queue.concurrency", 2)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@beanvault.local")
	v.SetDefault("email.from_name", "BeanVault")
	v.SetDefault("email.notify_address", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "BEANVAULT_SERVER_PORT",
		"server.read_timeout":      "BEANVAULT_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "BEANVAULT_SERVER_WRITE_TIMEOUT",
		"server.environment":       "BEANVAULT_SERVER_ENVIRONMENT",
		"db.host":                  "BEANVAULT_DB_HOST",
		"db.port":                  "BEANVAULT_DB_PORT",
		"db.user":                  "BEANVAULT_DB_USER",
		"db.password":              "BEANVAULT_DB_PASSWORD",
		"db.name":                  "BEANVAULT_DB_NAME",
		"db.sslmode":               "BEANVAULT_DB_SSLMODE",
		"db.max_open":              "BEANVAULT_DB_MAX_OPEN",
		"db.max_idle":              "BEANVAULT_DB_MAX_IDLE",
		"jwt.secret":               "BEANVAULT_JWT_SECRET",
		"jwt.access_expiry":        "BEANVAULT_JWT_ACCESS_EXPIRY",
		"jwt.issuer":               "BEANVAULT_JWT_ISSUER",
		"auth.admin_user":          "BEANVAULT_AUTH_ADMIN_USER",
		"auth.admin_password_hash": "BEANVAULT_AUTH_ADMIN_PASSWORD_HASH",
		"s3.region":                "BEANVAULT_S3_REGION",
		"s3.bucket":                "BEANVAULT_S3_BUCKET",
		"s3.endpoint":              "BEANVAULT_S3_ENDPOINT",
		"s3.access_key":            "BEANVAULT_S3_ACCESS_KEY",
		"s3.secret_key":            "BEANVAULT_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "BEANVAULT_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "BEANVAULT_S3_PRESIGN_EXPIRY",
		"log.level":                "BEANVAULT_LOG_LEVEL",
		"log.format":               "BEANVAULT_LOG_FORMAT",
		"parser.provider":          "BEANVAULT_PARSER_PROVIDER",
		"parser.api_key":           "BEANVAULT_PARSER_API_KEY",
		"parser.default_model":     "BEANVAULT_PARSER_DEFAULT_MODEL",
		"parser.timeout_secs":      "BEANVAULT_PARSER_TIMEOUT_SECS",
		"parser.streaming":         "BEANVAULT_PARSER_STREAMING",
		"parser.max_input_chars":   "BEANVAULT_PARSER_MAX_INPUT_CHARS",
		"agent.max_rows":           "BEANVAULT_AGENT_MAX_ROWS",
		"cors.allowed_origins":     "BEANVAULT_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs": "BEANVAULT_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":        "BEANVAULT_QUEUE_MAX_RETRIES",
		"queue.concurrency":        "BEANVAULT_QUEUE_CONCURRENCY",
		"email.provider":           "BEANVAULT_EMAIL_PROVIDER",
		"email.region":             "BEANVAULT_EMAIL_REGION",
		"email.from_address":       "BEANVAULT_EMAIL_FROM_ADDRESS",
		"email.from_name":          "BEANVAULT_EMAIL_FROM_NAME",
		"email.notify_address":     "BEANVAULT_EMAIL_NOTIFY_ADDRESS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BEANVAULT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BEANVAULT_SERVER_PORT") == "" {
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
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Auth = AuthConfig{
		AdminUser:         v.GetString("auth.admin_user"),
		AdminPasswordHash: v.GetString("auth.admin_password_hash"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Parser = ParserConfig{
		Provider:      v.GetString("parser.provider"),
		APIKey:        v.GetString("parser.api_key"),
		DefaultModel:  v.GetString("parser.default_model"),
		TimeoutSecs:   v.GetInt("parser.timeout_secs"),
		Streaming:     v.GetBool("parser.streaming"),
		MaxInputChars: v.GetInt("parser.max_input_chars"),
	}
	cfg.Agent = AgentConfig{
		MaxRows: v.GetInt("agent.max_rows"),
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

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Email = EmailConfig{
		Provider:      v.GetString("email.provider"),
		Region:        v.GetString("email.region"),
		FromAddress:   v.GetString("email.from_address"),
		FromName:      v.GetString("email.from_name"),
		NotifyAddress: v.GetString("email.notify_address"),
	}

	return cfg, nil
}
