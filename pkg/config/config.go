package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	SMTP        SMTPConfig
	Certificate CertificateConfig
	CORS        CORSConfig
	Log         LogConfig
	Cache       CacheConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// SMTPConfig holds the mail-submission account used for certificate delivery.
type SMTPConfig struct {
	Host        string
	Port        int
	Sender      string
	Password    string
	SendTimeout time.Duration
}

// CertificateConfig controls PDF composition and temp-file housekeeping.
// Coordinates are in millimetres on an A4 landscape page.
type CertificateConfig struct {
	TemplatePath string
	StorageDir   string
	NameX        float64
	NameY        float64
	DateX        float64
	DateY        float64
	CleanupTTL   time.Duration
	CleanupSpec  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig tunes the optional Redis read cache for course payloads.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.SMTP = SMTPConfig{
		Host:        v.GetString("SMTP_HOST"),
		Port:        v.GetInt("SMTP_PORT"),
		Sender:      v.GetString("SMTP_SENDER"),
		Password:    v.GetString("SMTP_PASSWORD"),
		SendTimeout: parseDuration(v.GetString("SMTP_SEND_TIMEOUT"), 30*time.Second),
	}

	cfg.Certificate = CertificateConfig{
		TemplatePath: v.GetString("CERTIFICATE_TEMPLATE"),
		StorageDir:   v.GetString("CERTIFICATE_STORAGE_DIR"),
		NameX:        v.GetFloat64("CERTIFICATE_NAME_X"),
		NameY:        v.GetFloat64("CERTIFICATE_NAME_Y"),
		DateX:        v.GetFloat64("CERTIFICATE_DATE_X"),
		DateY:        v.GetFloat64("CERTIFICATE_DATE_Y"),
		CleanupTTL:   parseDuration(v.GetString("CERTIFICATE_CLEANUP_TTL"), time.Hour),
		CleanupSpec:  v.GetString("CERTIFICATE_CLEANUP_SPEC"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "conflu")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "conflu-api")

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 465)
	v.SetDefault("SMTP_SENDER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_SEND_TIMEOUT", "30s")

	v.SetDefault("CERTIFICATE_TEMPLATE", "./assets/certificado_base.png")
	v.SetDefault("CERTIFICATE_STORAGE_DIR", "./certificates")
	v.SetDefault("CERTIFICATE_NAME_X", 56.0)
	v.SetDefault("CERTIFICATE_NAME_Y", 99.0)
	v.SetDefault("CERTIFICATE_DATE_X", 148.0)
	v.SetDefault("CERTIFICATE_DATE_Y", 162.0)
	v.SetDefault("CERTIFICATE_CLEANUP_TTL", "1h")
	v.SetDefault("CERTIFICATE_CLEANUP_SPEC", "@hourly")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_TTL", "5m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
