package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr           string   `yaml:"addr"`
	ReadTimeout    string   `yaml:"readTimeout"`
	WriteTimeout   string   `yaml:"writeTimeout"`
	RequestTimeout string   `yaml:"requestTimeout"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
	TrustProxy     bool     `yaml:"trustProxy"` // доверять X-Forwarded-For
}

type GRPC struct {
	Addr string `yaml:"addr"`
}

type Logging struct {
	Env       string `yaml:"env"`     // dev|stage|prod
	Service   string `yaml:"service"` // bizos
	Version   string `yaml:"version"`
	Backend   string `yaml:"backend"` // std|zap
	Level     string `yaml:"level"`   // debug|info|warn|error
	AddSource bool   `yaml:"addSource"`
	Debug     bool   `yaml:"debug"`
	LogSQL    bool   `yaml:"logSQL"`
}

type Postgres struct {
	DSN             string `yaml:"dsn"`
	MaxConns        int32  `yaml:"maxConns"`
	MinConns        int32  `yaml:"minConns"`
	MaxConnLifetime string `yaml:"maxConnLifetime"`
	MaxConnIdleTime string `yaml:"maxConnIdleTime"`
	MigrateOnStart  bool   `yaml:"migrateOnStart"`
}

type Redis struct {
	URL     string `yaml:"url"` // пусто: realtime только внутри процесса
	Channel string `yaml:"channel"`
}

type OpenAI struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

type Storage struct {
	URL        string `yaml:"url"` // https://<project>.supabase.co
	ServiceKey string `yaml:"serviceKey"`
	Bucket     string `yaml:"bucket"`
}

type Auth struct {
	JWTSecret string `yaml:"jwtSecret"` // пусто: X-User-ID без проверки подписи
	Audience  string `yaml:"audience"`
}

type Chat struct {
	TypingTTL      string `yaml:"typingTTL"`
	MessageMaxLen  int    `yaml:"messageMaxLen"`
	SweepSchedule  string `yaml:"sweepSchedule"`
	HistoryDefault int    `yaml:"historyDefault"`
}

type RateLimit struct {
	ImagesPerMinute int `yaml:"imagesPerMinute"`
	Burst           int `yaml:"burst"`
}

type Config struct {
	HTTP      HTTP      `yaml:"http"`
	GRPC      GRPC      `yaml:"grpc"`
	Logging   Logging   `yaml:"logging"`
	Postgres  Postgres  `yaml:"postgres"`
	Redis     Redis     `yaml:"redis"`
	OpenAI    OpenAI    `yaml:"openai"`
	Storage   Storage   `yaml:"storage"`
	Auth      Auth      `yaml:"auth"`
	Chat      Chat      `yaml:"chat"`
	RateLimit RateLimit `yaml:"rateLimit"`
}

// envOverrides: BIZOS_<NAME>, для полей с тегом также без префикса.
type envOverrides struct {
	HTTPAddr        string `envconfig:"HTTP_ADDR"`
	GRPCAddr        string `envconfig:"GRPC_ADDR"`
	LogEnv          string `envconfig:"APP_ENV"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	RedisURL        string `envconfig:"REDIS_URL"`
	OpenAIKey       string `envconfig:"OPENAI_API_KEY"`
	SupabaseURL     string `envconfig:"SUPABASE_URL"`
	SupabaseKey     string `envconfig:"SUPABASE_SERVICE_ROLE_KEY"`
	JWTSecret       string `envconfig:"SUPABASE_JWT_SECRET"`
	ImagesPerMinute int    `envconfig:"IMAGES_PER_MINUTE"`
}

// LoadConfig: yaml из CONFIG_PATH, затем .env и переменные окружения поверх.
func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	return Load(path)
}

func Load(path string) (*Config, error) {
	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// работаем только на env
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	var o envOverrides
	if err := envconfig.Process("BIZOS", &o); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.HTTP.Addr, o.HTTPAddr)
	set(&c.GRPC.Addr, o.GRPCAddr)
	set(&c.Logging.Env, o.LogEnv)
	set(&c.Logging.Level, o.LogLevel)
	set(&c.Postgres.DSN, o.DatabaseURL)
	set(&c.Redis.URL, o.RedisURL)
	set(&c.OpenAI.APIKey, o.OpenAIKey)
	set(&c.Storage.URL, o.SupabaseURL)
	set(&c.Storage.ServiceKey, o.SupabaseKey)
	set(&c.Auth.JWTSecret, o.JWTSecret)
	if o.ImagesPerMinute > 0 {
		c.RateLimit.ImagesPerMinute = o.ImagesPerMinute
	}
	return nil
}

func (c *Config) validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":5000"
	}
	if c.GRPC.Addr == "" {
		c.GRPC.Addr = ":5001"
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}

	if c.Logging.Service == "" {
		c.Logging.Service = "bizos"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}

	if c.Redis.Channel == "" {
		c.Redis.Channel = "bizos:group-events"
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "dall-e-3"
	}
	if c.Storage.Bucket == "" {
		c.Storage.Bucket = "generated-images"
	}
	c.Storage.URL = strings.TrimRight(c.Storage.URL, "/")

	if c.Chat.MessageMaxLen <= 0 {
		c.Chat.MessageMaxLen = 4000
	}
	if c.Chat.HistoryDefault <= 0 {
		c.Chat.HistoryDefault = 50
	}
	if c.Chat.SweepSchedule == "" {
		c.Chat.SweepSchedule = "@every 30s"
	}
	if c.RateLimit.ImagesPerMinute <= 0 {
		c.RateLimit.ImagesPerMinute = 10
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 3
	}
	return nil
}

func (c HTTP) ReadTimeoutOr(def time.Duration) time.Duration { return parseDurationOr(def, c.ReadTimeout) }
func (c HTTP) WriteTimeoutOr(def time.Duration) time.Duration {
	return parseDurationOr(def, c.WriteTimeout)
}
func (c HTTP) RequestTimeoutOr(def time.Duration) time.Duration {
	return parseDurationOr(def, c.RequestTimeout)
}

func (c Postgres) MaxConnLifetimeOr(def time.Duration) time.Duration {
	return parseDurationOr(def, c.MaxConnLifetime)
}
func (c Postgres) MaxConnIdleTimeOr(def time.Duration) time.Duration {
	return parseDurationOr(def, c.MaxConnIdleTime)
}

func (c OpenAI) TimeoutOr(def time.Duration) time.Duration { return parseDurationOr(def, c.Timeout) }

// TypingTTLOr: окно, в течение которого индикатор набора считается живым.
func (c Chat) TypingTTLOr(def time.Duration) time.Duration { return parseDurationOr(def, c.TypingTTL) }

// StorageEnabled: без URL и ключа картинки не перекладываются в бакет.
func (c Storage) Enabled() bool { return c.URL != "" && c.ServiceKey != "" }

// helper для парсинга timeout-ов
func parseDurationOr(def time.Duration, s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}
