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
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Archive ArchiveConfig
	Email   EmailConfig
	Log     LogConfig
	CORS    CORSConfig
	Import  ImportConfig
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
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// ArchiveConfig controls whether imported XML files are kept in object storage.
type ArchiveConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ImportConfig holds defaults applied to payables created from imported invoices.
type ImportConfig struct {
	DefaultCategory string `mapstructure:"default_category"`
	DueDays         int    `mapstructure:"due_days"`
	FormField       string `mapstructure:"form_field"`
}

// Load reads configuration from environment variables with the NFIMPORT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NFIMPORT")
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
	v.SetDefault("db.user", "nfimport")
	v.SetDefault("db.password", "nfimport_secret")
	v.SetDefault("db.name", "nfimport_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "nfimport")

	// S3 defaults
	v.SetDefault("s3.region", "sa-east-1")
	v.SetDefault("s3.bucket", "nfimport-xml")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	v.SetDefault("archive.enabled", false)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "sa-east-1")
	v.SetDefault("email.from_address", "noreply@nfimport.local")
	v.SetDefault("email.from_name", "Contas a Pagar")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Import defaults
	v.SetDefault("import.default_category", "fornecedores")
	v.SetDefault("import.due_days", 30)
	v.SetDefault("import.form_field", "xml")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "NFIMPORT_SERVER_PORT",
		"server.read_timeout":     "NFIMPORT_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "NFIMPORT_SERVER_WRITE_TIMEOUT",
		"server.environment":      "NFIMPORT_SERVER_ENVIRONMENT",
		"db.host":                 "NFIMPORT_DB_HOST",
		"db.port":                 "NFIMPORT_DB_PORT",
		"db.user":                 "NFIMPORT_DB_USER",
		"db.password":             "NFIMPORT_DB_PASSWORD",
		"db.name":                 "NFIMPORT_DB_NAME",
		"db.sslmode":              "NFIMPORT_DB_SSLMODE",
		"db.max_open":             "NFIMPORT_DB_MAX_OPEN",
		"db.max_idle":             "NFIMPORT_DB_MAX_IDLE",
		"jwt.secret":              "NFIMPORT_JWT_SECRET",
		"jwt.access_expiry":       "NFIMPORT_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":      "NFIMPORT_JWT_REFRESH_EXPIRY",
		"jwt.issuer":              "NFIMPORT_JWT_ISSUER",
		"s3.region":               "NFIMPORT_S3_REGION",
		"s3.bucket":               "NFIMPORT_S3_BUCKET",
		"s3.endpoint":             "NFIMPORT_S3_ENDPOINT",
		"s3.access_key":           "NFIMPORT_S3_ACCESS_KEY",
		"s3.secret_key":           "NFIMPORT_S3_SECRET_KEY",
		"s3.presign_expiry":       "NFIMPORT_S3_PRESIGN_EXPIRY",
		"archive.enabled":         "NFIMPORT_ARCHIVE_ENABLED",
		"email.provider":          "NFIMPORT_EMAIL_PROVIDER",
		"email.region":            "NFIMPORT_EMAIL_REGION",
		"email.from_address":      "NFIMPORT_EMAIL_FROM_ADDRESS",
		"email.from_name":         "NFIMPORT_EMAIL_FROM_NAME",
		"email.frontend_url":      "NFIMPORT_EMAIL_FRONTEND_URL",
		"log.level":               "NFIMPORT_LOG_LEVEL",
		"log.format":              "NFIMPORT_LOG_FORMAT",
		"cors.allowed_origins":    "NFIMPORT_CORS_ALLOWED_ORIGINS",
		"import.default_category": "NFIMPORT_IMPORT_DEFAULT_CATEGORY",
		"import.due_days":         "NFIMPORT_IMPORT_DUE_DAYS",
		"import.form_field":       "NFIMPORT_IMPORT_FORM_FIELD",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if NFIMPORT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("NFIMPORT_SERVER_PORT") == "" {
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
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Archive = ArchiveConfig{
		Enabled: v.GetBool("archive.enabled"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
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

	cfg.Import = ImportConfig{
		DefaultCategory: v.GetString("import.default_category"),
		DueDays:         v.GetInt("import.due_days"),
		FormField:       v.GetString("import.form_field"),
	}
	if cfg.Import.DueDays <= 0 {
		return nil, fmt.Errorf("import.due_days must be positive, got %d", cfg.Import.DueDays)
	}

	return cfg, nil
}
