package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	OCR       OCRConfig
	LLM       LLMConfig
	Ingest    IngestConfig
	Similar   SimilarConfig
	CacheTTLs CacheTTLConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
	UploadDir    string
}

// DBConfig selects the relational store. Driver is "sqlite" (default) or "postgres".
type DBConfig struct {
	Driver string
	Path   string
	URL    string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// OCRConfig configures bitmap text recognition for pages without usable embedded text.
// Engine is "tesseract" (local binary) or "http" (remote OCR service).
type OCRConfig struct {
	Engine    string
	Binary    string
	Language  string
	DPI       float64
	ServerURL string
	Timeout   time.Duration
}

// LLMConfig configures the model-assisted structurer. Provider is "ollama" or "openai".
type LLMConfig struct {
	Provider  string
	ServerURL string
	Model     string
	APIKey    string
	Timeout   time.Duration
}

type IngestConfig struct {
	// Structurer is "regex" or "llm".
	Structurer    string
	ChunkSize     int
	MinTextLength int
	ImageDir      string
	OutputDir     string
}

type SimilarConfig struct {
	Limit int
}

type CacheTTLConfig struct {
	Structurer string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 120)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.body_limit", 50*1024*1024)
	v.SetDefault("server.upload_dir", "./data/uploads")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "./data/questions.db")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("ocr.engine", "tesseract")
	v.SetDefault("ocr.binary", "tesseract")
	v.SetDefault("ocr.language", "kor+eng")
	v.SetDefault("ocr.dpi", 200)
	v.SetDefault("ocr.timeout", 120)

	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.model", "qwen3:0.6b")
	v.SetDefault("llm.timeout", 120)

	v.SetDefault("ingest.structurer", "regex")
	v.SetDefault("ingest.chunk_size", 2000)
	v.SetDefault("ingest.min_text_length", 0)
	v.SetDefault("ingest.image_dir", "./data/images")
	v.SetDefault("ingest.output_dir", "./data/outputs")

	v.SetDefault("similar.limit", 3)
	v.SetDefault("cache_ttls.structurer", "168h")
}

// LoadConfig reads config.yaml (when present), .env and environment variables.
// Environment variables use upper-case keys with "_" in place of ".", e.g. OCR_LANGUAGE.
func LoadConfig() (*Config, error) {
	return LoadConfigWith(viper.New())
}

// LoadConfigWith is LoadConfig on a caller-provided viper instance, so commands can
// bind their flags before the values are resolved.
func LoadConfigWith(v *viper.Viper) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
			UploadDir:    v.GetString("server.upload_dir"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("db.driver")),
			Path:   v.GetString("db.path"),
			URL:    v.GetString("db.url"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		OCR: OCRConfig{
			Engine:    strings.ToLower(v.GetString("ocr.engine")),
			Binary:    v.GetString("ocr.binary"),
			Language:  v.GetString("ocr.language"),
			DPI:       v.GetFloat64("ocr.dpi"),
			ServerURL: v.GetString("ocr.server_url"),
			Timeout:   time.Duration(v.GetInt("ocr.timeout")) * time.Second,
		},
		LLM: LLMConfig{
			Provider:  strings.ToLower(v.GetString("llm.provider")),
			ServerURL: v.GetString("llm.server_url"),
			Model:     v.GetString("llm.model"),
			APIKey:    v.GetString("llm.api_key"),
			Timeout:   time.Duration(v.GetInt("llm.timeout")) * time.Second,
		},
		Ingest: IngestConfig{
			Structurer:    strings.ToLower(v.GetString("ingest.structurer")),
			ChunkSize:     v.GetInt("ingest.chunk_size"),
			MinTextLength: v.GetInt("ingest.min_text_length"),
			ImageDir:      v.GetString("ingest.image_dir"),
			OutputDir:     v.GetString("ingest.output_dir"),
		},
		Similar: SimilarConfig{
			Limit: v.GetInt("similar.limit"),
		},
		CacheTTLs: CacheTTLConfig{
			Structurer: v.GetString("cache_ttls.structurer"),
		},
	}

	// OPENAI_API_KEY is the conventional name; accept it as well as LLM_API_KEY.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the rest of the program cannot run with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite":
		if c.DB.Path == "" {
			return fmt.Errorf("db.path is required for the sqlite driver")
		}
	case "postgres":
		if c.DB.URL == "" {
			return fmt.Errorf("db.url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}

	switch c.Ingest.Structurer {
	case "regex", "llm":
	default:
		return fmt.Errorf("unsupported ingest.structurer %q", c.Ingest.Structurer)
	}

	switch c.OCR.Engine {
	case "tesseract", "http", "none":
	default:
		return fmt.Errorf("unsupported ocr.engine %q", c.OCR.Engine)
	}
	if c.OCR.Engine == "http" && c.OCR.ServerURL == "" {
		return fmt.Errorf("ocr.server_url is required for the http OCR engine")
	}
	if c.OCR.DPI <= 0 {
		return fmt.Errorf("ocr.dpi must be positive")
	}
	return nil
}

// GetDSN returns the data source name for the configured driver.
func (c *Config) GetDSN() string {
	if c.DB.Driver == "postgres" {
		return c.DB.URL
	}
	// foreign keys are off by default in SQLite; attempts cascade on question delete
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.DB.Path)
}

// ParseTTLStringOrDefault parses a duration string like "24h", falling back to def.
func (c *Config) ParseTTLStringOrDefault(ttl string, def time.Duration) time.Duration {
	if ttl == "" {
		return def
	}
	d, err := time.ParseDuration(ttl)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
