package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Render    RenderConfig    `mapstructure:"render"`
	AI        AIConfig        `mapstructure:"ai"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type TemplatesConfig struct {
	Dir string `mapstructure:"dir"`
}

// StorageConfig selects where rendered memes are persisted.
// Type "local" writes to a directory served by the API itself;
// "s3" targets any S3-compatible endpoint.
type StorageConfig struct {
	Type      string `mapstructure:"type"`
	Dir       string `mapstructure:"dir"`
	PublicURL string `mapstructure:"public_url"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
}

// RenderConfig holds caption rendering defaults and font resolution paths.
type RenderConfig struct {
	FontSize     int      `mapstructure:"font_size"`
	FontColor    string   `mapstructure:"font_color"`
	StrokeColor  string   `mapstructure:"stroke_color"`
	StrokeWidth  int      `mapstructure:"stroke_width"`
	FontPaths    []string `mapstructure:"font_paths"`
	MaxDimension int      `mapstructure:"max_dimension"`
}

type AIConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/memeforge.db")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("templates.dir", "./data/templates")
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.dir", "./data/memes")
	v.SetDefault("storage.public_url", "http://localhost:8080/static/memes")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.bucket", "memes")
	v.SetDefault("render.font_size", 40)
	v.SetDefault("render.font_color", "white")
	v.SetDefault("render.stroke_color", "black")
	v.SetDefault("render.stroke_width", 2)
	v.SetDefault("render.font_paths", DefaultFontPaths())
	v.SetDefault("render.max_dimension", 2000)
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("storage.endpoint", "S3_ENDPOINT")
	v.BindEnv("storage.access_key", "S3_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "S3_SECRET_KEY")
	v.BindEnv("storage.use_ssl", "S3_USE_SSL")
	v.BindEnv("ai.provider", "AI_PROVIDER")
	v.BindEnv("ai.model", "AI_MODEL")
	v.BindEnv("ai.api_key", "AI_API_KEY")
	v.BindEnv("ai.base_url", "AI_BASE_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Provider-specific key env vars take precedence over the generic one
	// only when the generic one is unset.
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = providerKeyFromEnv(cfg.AI.Provider)
	}

	return &cfg, nil
}

// DefaultFontPaths returns the ordered list of candidate font files for the
// classic meme look. Platform-specific, best effort.
func DefaultFontPaths() []string {
	return []string{
		"/usr/share/fonts/truetype/msttcorefonts/Impact.ttf",
		"/System/Library/Fonts/Supplemental/Impact.ttf",
		"C:\\Windows\\Fonts\\impact.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	}
}
