// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package config

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	OTP      OTPConfig
	Session  SessionConfig
	Storage  StorageConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string
	MaxBodySize int // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

type SMTPConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host           string
	Port           int
	Username       string
	Password       string
	From           string
	FromName       string
	TLS            bool
	TimeoutSeconds int
}

type OTPConfig struct {
	ExpirySeconds int // code lifetime
	WindowSeconds int // trailing rate-limit window
	MaxPerWindow  int // issuance cap within the window
}

type SessionConfig struct { //nolint:govet // fieldalignment not critical
	CookieName string // Session cookie name
	MaxAge     int    // Session max age in seconds
	HashKey    string // 32-byte hex string for HMAC signing
	BlockKey   string // 32-byte hex string for AES encryption (optional)
}

type StorageConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Backend     string // fs, s3
	UploadDir   string // fs backend
	CatalogPath string // optional TOML catalog override

	S3Bucket    string
	S3Region    string
	S3Endpoint  string // custom endpoint for MinIO etc.
	S3AccessKey string
	S3SecretKey string
}

func NewFromCLI(cmd *cli.Command) *Config {
	return &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		SMTP: SMTPConfig{
			Host:           cmd.String("smtp-host"),
			Port:           int(cmd.Int("smtp-port")),
			Username:       cmd.String("smtp-username"),
			Password:       cmd.String("smtp-password"),
			From:           cmd.String("smtp-from"),
			FromName:       cmd.String("smtp-from-name"),
			TLS:            cmd.Bool("smtp-tls"),
			TimeoutSeconds: int(cmd.Int("smtp-timeout")),
		},
		OTP: OTPConfig{
			ExpirySeconds: int(cmd.Int("otp-expiry")),
			WindowSeconds: int(cmd.Int("otp-window")),
			MaxPerWindow:  int(cmd.Int("otp-max-per-window")),
		},
		Session: SessionConfig{
			CookieName: cmd.String("session-cookie-name"),
			MaxAge:     int(cmd.Int("session-max-age")),
			HashKey:    cmd.String("session-hash-key"),
			BlockKey:   cmd.String("session-block-key"),
		},
		Storage: StorageConfig{
			Backend:     cmd.String("storage-backend"),
			UploadDir:   cmd.String("upload-dir"),
			CatalogPath: cmd.String("catalog-path"),
			S3Bucket:    cmd.String("s3-bucket"),
			S3Region:    cmd.String("s3-region"),
			S3Endpoint:  cmd.String("s3-endpoint"),
			S3AccessKey: cmd.String("s3-access-key"),
			S3SecretKey: cmd.String("s3-secret-key"),
		},
	}
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Base URL for the application",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BASE_URL"), toml.TOML("server.base_url", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   16,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/portal.db",
			Usage:   "Database DSN",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP server host",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_HOST"), toml.TOML("smtp.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Value:   587,
			Usage:   "SMTP server port",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PORT"), toml.TOML("smtp.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-username",
			Usage:   "SMTP username",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_USERNAME"), toml.TOML("smtp.username", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PASSWORD"), toml.TOML("smtp.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from",
			Usage:   "Sender address for outgoing mail",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM"), toml.TOML("smtp.from", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from-name",
			Value:   "Marathe Group",
			Usage:   "Sender display name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM_NAME"), toml.TOML("smtp.from_name", configFile)),
		},
		&cli.BoolFlag{
			Name:    "smtp-tls",
			Value:   true,
			Usage:   "Require TLS for SMTP",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_TLS"), toml.TOML("smtp.tls", configFile)),
		},
		&cli.IntFlag{
			Name:    "smtp-timeout",
			Value:   10,
			Usage:   "Timeout for a delivery attempt in seconds",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_TIMEOUT"), toml.TOML("smtp.timeout", configFile)),
		},
		&cli.IntFlag{
			Name:    "otp-expiry",
			Value:   300,
			Usage:   "OTP code lifetime in seconds",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OTP_EXPIRY"), toml.TOML("otp.expiry", configFile)),
		},
		&cli.IntFlag{
			Name:    "otp-window",
			Value:   300,
			Usage:   "OTP rate-limit window in seconds",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OTP_WINDOW"), toml.TOML("otp.window", configFile)),
		},
		&cli.IntFlag{
			Name:    "otp-max-per-window",
			Value:   5,
			Usage:   "Maximum OTP sends per email within the window",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OTP_MAX_PER_WINDOW"), toml.TOML("otp.max_per_window", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-cookie-name",
			Value:   "portal_session",
			Usage:   "Session cookie name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_COOKIE_NAME"), toml.TOML("session.cookie_name", configFile)),
		},
		&cli.IntFlag{
			Name:    "session-max-age",
			Value:   86400,
			Usage:   "Session max age in seconds",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_MAX_AGE"), toml.TOML("session.max_age", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-hash-key",
			Usage:   "32-byte hex key for session cookie signing",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_HASH_KEY"), toml.TOML("session.hash_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-block-key",
			Usage:   "32-byte hex key for session cookie encryption (optional)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_BLOCK_KEY"), toml.TOML("session.block_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "storage-backend",
			Value:   "fs",
			Usage:   "Document storage backend (fs, s3)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("STORAGE_BACKEND"), toml.TOML("storage.backend", configFile)),
		},
		&cli.StringFlag{
			Name:    "upload-dir",
			Value:   "./data/uploads",
			Usage:   "Directory for uploaded documents (fs backend)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("UPLOAD_DIR"), toml.TOML("storage.upload_dir", configFile)),
		},
		&cli.StringFlag{
			Name:    "catalog-path",
			Usage:   "Path to a TOML project catalog (defaults to the embedded catalog)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CATALOG_PATH"), toml.TOML("storage.catalog_path", configFile)),
		},
		&cli.StringFlag{
			Name:    "s3-bucket",
			Usage:   "S3 bucket for uploaded documents (s3 backend)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("S3_BUCKET"), toml.TOML("storage.s3_bucket", configFile)),
		},
		&cli.StringFlag{
			Name:    "s3-region",
			Value:   "us-east-1",
			Usage:   "S3 region",
			Sources: cli.NewValueSourceChain(cli.EnvVar("S3_REGION"), toml.TOML("storage.s3_region", configFile)),
		},
		&cli.StringFlag{
			Name:    "s3-endpoint",
			Usage:   "Custom S3 endpoint (MinIO etc.)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("S3_ENDPOINT"), toml.TOML("storage.s3_endpoint", configFile)),
		},
		&cli.StringFlag{
			Name:    "s3-access-key",
			Usage:   "S3 access key",
			Sources: cli.NewValueSourceChain(cli.EnvVar("S3_ACCESS_KEY"), toml.TOML("storage.s3_access_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "s3-secret-key",
			Usage:   "S3 secret key",
			Sources: cli.NewValueSourceChain(cli.EnvVar("S3_SECRET_KEY"), toml.TOML("storage.s3_secret_key", configFile)),
		},
	}
}
