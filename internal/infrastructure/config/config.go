package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Fetch       FetchConfig     `mapstructure:"fetch"`
	Layout      LayoutConfig    `mapstructure:"layout"`
	Compose     ComposeConfig   `mapstructure:"compose"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
	LogFile     string          `mapstructure:"log_file"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// FetchConfig 圖片下載設定
type FetchConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	RetryCount   int           `mapstructure:"retry_count"`
	MaxSizeBytes int64         `mapstructure:"max_size_bytes"`
	UserAgent    string        `mapstructure:"user_agent"`
}

// LayoutConfig 版面設定
type LayoutConfig struct {
	Preset string `mapstructure:"preset"`
}

// ComposeConfig 合成設定
type ComposeConfig struct {
	// MaxPixels 單張輸入圖片的畫素上限，超過則拒絕解碼
	MaxPixels int64 `mapstructure:"max_pixels"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時直接使用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("fetch.timeout", "FETCH_TIMEOUT")
	_ = v.BindEnv("fetch.retry_count", "FETCH_RETRY_COUNT")
	_ = v.BindEnv("fetch.max_size_bytes", "FETCH_MAX_SIZE_BYTES")
	_ = v.BindEnv("layout.preset", "LAYOUT_PRESET")
	_ = v.BindEnv("compose.max_pixels", "COMPOSE_MAX_PIXELS")
	_ = v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	_ = v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	_ = v.BindEnv("dedup_window", "DEDUP_WINDOW")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_file", "LOG_FILE")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "clothing-combiner")

	// 伺服器設定
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "120s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB，請求體只有兩個 URL

	// 下載設定
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.retry_count", 0)
	v.SetDefault("fetch.max_size_bytes", 10*1024*1024) // 10MB
	v.SetDefault("fetch.user_agent", "clothing-combiner/1.0")

	// 版面設定
	v.SetDefault("layout.preset", "horizontal")

	// 合成設定
	v.SetDefault("compose.max_pixels", 178956970) // 約 178M 畫素

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")

	// 0 表示不啟用去重
	v.SetDefault("dedup_window", "0s")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "logs/app.log")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Server.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request timeout")
	}

	// 驗證下載設定
	if config.Fetch.Timeout <= 0 {
		return fmt.Errorf("invalid fetch timeout")
	}
	if config.Fetch.RetryCount < 0 {
		return fmt.Errorf("invalid fetch retry count")
	}
	if config.Fetch.MaxSizeBytes <= 0 {
		return fmt.Errorf("invalid fetch max size")
	}

	if config.Layout.Preset == "" {
		return fmt.Errorf("layout preset is required")
	}
	if config.Compose.MaxPixels <= 0 {
		return fmt.Errorf("invalid compose max pixels")
	}

	// 驗證限流設定
	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	if config.DedupWindow < 0 {
		return fmt.Errorf("invalid dedup window")
	}

	return nil
}
