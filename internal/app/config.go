package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/foodgram-backend/internal/data/db"
	"github.com/yungbote/foodgram-backend/internal/platform/envutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type CacheConfig struct {
	// Backend is one of lru, redis or none.
	Backend   string        `yaml:"backend"`
	Size      int           `yaml:"size"`
	TTL       time.Duration `yaml:"ttl"`
	RedisAddr string        `yaml:"redis_addr"`
}

type MediaConfig struct {
	MediaRoot  string `yaml:"media_root"`
	MediaURL   string `yaml:"media_url"`
	StaticRoot string `yaml:"static_root"`
	StaticURL  string `yaml:"static_url"`
}

type PDFConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	ExecPath string        `yaml:"exec_path"`
	Logo     string        `yaml:"logo"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Port         string            `yaml:"port"`
	Environment  string            `yaml:"environment"`
	JWTSecretKey string            `yaml:"jwt_secret_key"`
	Postgres     db.PostgresConfig `yaml:"postgres"`

	PageSize            int `yaml:"page_size"`
	MaxPageSize         int `yaml:"max_page_size"`
	RecipesPreviewLimit int `yaml:"recipes_preview_limit"`

	Media       MediaConfig `yaml:"media"`
	Cache       CacheConfig `yaml:"cache"`
	PDF         PDFConfig   `yaml:"pdf"`
	CORSOrigins []string    `yaml:"cors_origins"`

	MetricsEnabled bool       `yaml:"metrics_enabled"`
	Otel           OtelConfig `yaml:"otel"`
}

func defaultConfig() Config {
	return Config{
		Port:        "8080",
		Environment: "development",
		Postgres: db.PostgresConfig{
			Host: "localhost",
			Port: "5432",
			User: "foodgram",
			Name: "foodgram",
		},
		PageSize:            6,
		MaxPageSize:         100,
		RecipesPreviewLimit: 10,
		Media: MediaConfig{
			MediaRoot:  "media",
			MediaURL:   "/media/",
			StaticRoot: "static",
			StaticURL:  "/static/",
		},
		Cache: CacheConfig{Backend: "lru", Size: 512, TTL: 10 * time.Minute},
		PDF:   PDFConfig{Timeout: 20 * time.Second},
		Otel:  OtelConfig{ServiceName: "foodgram-backend", SampleRatio: 1},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and the environment, in that order of increasing precedence.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()
	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.Environment = envutil.String("APP_ENV", cfg.Environment)
	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey)

	cfg.Postgres.Host = envutil.String("POSTGRES_HOST", cfg.Postgres.Host)
	cfg.Postgres.Port = envutil.String("POSTGRES_PORT", cfg.Postgres.Port)
	cfg.Postgres.User = envutil.String("POSTGRES_USER", cfg.Postgres.User)
	cfg.Postgres.Password = envutil.String("POSTGRES_PASSWORD", cfg.Postgres.Password)
	cfg.Postgres.Name = envutil.String("POSTGRES_NAME", cfg.Postgres.Name)

	cfg.PageSize = envutil.Int("PAGE_SIZE", cfg.PageSize)
	cfg.MaxPageSize = envutil.Int("MAX_PAGE_SIZE", cfg.MaxPageSize)
	cfg.RecipesPreviewLimit = envutil.Int("RECIPES_PREVIEW_LIMIT", cfg.RecipesPreviewLimit)

	cfg.Media.MediaRoot = envutil.String("MEDIA_ROOT", cfg.Media.MediaRoot)
	cfg.Media.MediaURL = envutil.String("MEDIA_URL", cfg.Media.MediaURL)
	cfg.Media.StaticRoot = envutil.String("STATIC_ROOT", cfg.Media.StaticRoot)
	cfg.Media.StaticURL = envutil.String("STATIC_URL", cfg.Media.StaticURL)

	cfg.Cache.Backend = strings.ToLower(envutil.String("CACHE_BACKEND", cfg.Cache.Backend))
	cfg.Cache.Size = envutil.Int("CACHE_SIZE", cfg.Cache.Size)
	cfg.Cache.TTL = envutil.Duration("CACHE_TTL", cfg.Cache.TTL)
	cfg.Cache.RedisAddr = envutil.String("REDIS_ADDR", cfg.Cache.RedisAddr)

	cfg.PDF.Timeout = envutil.Duration("PDF_TIMEOUT", cfg.PDF.Timeout)
	cfg.PDF.ExecPath = envutil.String("CHROME_PATH", cfg.PDF.ExecPath)
	cfg.PDF.Logo = envutil.String("PDF_LOGO", cfg.PDF.Logo)

	cfg.CORSOrigins = envutil.List("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Otel.SampleRatio)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	if cfg.JWTSecretKey == "" {
		log.Warn("JWT_SECRET_KEY is empty; bearer tokens will be rejected")
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "lru", "redis", "none":
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("CACHE_BACKEND=redis requires REDIS_ADDR")
	}
	if c.PageSize < 1 || c.MaxPageSize < c.PageSize {
		return fmt.Errorf("invalid page sizes: PAGE_SIZE=%d MAX_PAGE_SIZE=%d", c.PageSize, c.MaxPageSize)
	}
	return nil
}
