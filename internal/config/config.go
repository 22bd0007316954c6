package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const defaultTokenDescription = "this is a JWT issuer token, as such, you'll need to fetch an access token for Cisco Spark API /jwt/login resource"

// Config aggregates runtime configuration for the service.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Issuer IssuerConfig

	// ShowVersion is set by --version; the caller prints and exits.
	ShowVersion bool
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	Description           string
	Creator               string
	CodeURL               string
	RequestTimeoutSeconds int
	BodyLimitBytes        int
}

// LoggerConfig configures logging behavior. FilePath enables a rotating
// file sink next to stdout.
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// IssuerConfig holds values attached to issued tokens and responses.
type IssuerConfig struct {
	TokenDescription string
	TrackingPrefix   string
}

// Load reads flags from args, then the env file, then environment variables,
// applying defaults where possible. Flags win over the environment.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("jwt-issuer", pflag.ContinueOnError)
	envFile := flags.String("env-file", ".env", "path to a dotenv file")
	host := flags.String("host", "", "bind host (overrides APP_HOST)")
	port := flags.String("port", "", "bind port (overrides PORT/APP_PORT)")
	logLevel := flags.String("log-level", "", "log level (overrides LOG_LEVEL)")
	showVersion := flags.Bool("version", false, "print name and version, then exit")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(*envFile); err != nil && flags.Changed("env-file") {
		return nil, fmt.Errorf("load env file %s: %w", *envFile, err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "jwt-issuer-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("PORT", getEnv("APP_PORT", "3210")),
			Version:               getEnv("APP_VERSION", "dev"),
			Description:           getEnv("APP_DESCRIPTION", "Issues HS256 signed JWT tokens on behalf of applications"),
			Creator:               getEnv("APP_CREATOR", ""),
			CodeURL:               getEnv("APP_CODE_URL", ""),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			BodyLimitBytes:        getEnvAsInt("HTTP_BODY_LIMIT_BYTES", 100*1024),
		},
		Logger: LoggerConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			FilePath:   getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_FILE_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_FILE_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_FILE_MAX_AGE_DAYS", 28),
			Compress:   getEnvAsBool("LOG_FILE_COMPRESS", false),
		},
		Issuer: IssuerConfig{
			TokenDescription: getEnv("ISSUER_TOKEN_DESCRIPTION", defaultTokenDescription),
			TrackingPrefix:   getEnv("ISSUER_TRACKING_PREFIX", "JWT_"),
		},
	}

	cfg.ShowVersion = *showVersion

	if *host != "" {
		cfg.App.Host = *host
	}
	if *port != "" {
		cfg.App.Port = *port
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}

	if _, err := strconv.Atoi(cfg.App.Port); err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", cfg.App.Port, err)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
