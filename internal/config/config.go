package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr      string
		IndexPath string `mapstructure:"index_path"`
	}
	Database struct {
		Path string
	}
	News struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string
		Timeout time.Duration
	}
	Session struct {
		Secret        string
		CookieName    string `mapstructure:"cookie_name"`
		TTL           time.Duration
		Secure        bool
		RedisAddr     string `mapstructure:"redis_addr"`
		RedisPassword string `mapstructure:"redis_password"`
		RedisDB       int    `mapstructure:"redis_db"`
		RedisPrefix   string `mapstructure:"redis_prefix"`
	}
	Auth struct {
		PasswordHashing string `mapstructure:"password_hashing"`
	}
	RateLimit struct {
		NewsPerMinute int64 `mapstructure:"news_per_minute"`
	}
	Backup struct {
		Bucket   string
		Prefix   string
		Region   string
		Endpoint string
		Keep     int
	}
	AWS struct {
		Profile string
	}
	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables, an optional .env file
// and an optional config file in the working directory.
func Load() (Config, error) {
	// variables already present in the environment win over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("TAAZA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// the upstream key keeps its historical name as a fallback
	if err := v.BindEnv("news.apikey", "TAAZA_NEWS_APIKEY", "API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind news api key: %w", err)
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:5000")
	v.SetDefault("server.index_path", "index.html")
	v.SetDefault("database.path", "taaza_khabar.db")
	v.SetDefault("news.base_url", "https://newsapi.org/v2/everything")
	v.SetDefault("news.apikey", "")
	v.SetDefault("news.timeout", 15*time.Second)
	v.SetDefault("session.secret", "taaza_khabar_secret_key")
	v.SetDefault("session.cookie_name", "session")
	v.SetDefault("session.ttl", time.Duration(0))
	v.SetDefault("session.secure", false)
	v.SetDefault("session.redis_addr", "")
	v.SetDefault("session.redis_password", "")
	v.SetDefault("session.redis_db", 0)
	v.SetDefault("session.redis_prefix", "taaza:session:")
	v.SetDefault("auth.password_hashing", "plain")
	v.SetDefault("ratelimit.news_per_minute", 60)
	v.SetDefault("backup.bucket", "")
	v.SetDefault("backup.prefix", "taaza-khabar/backups")
	v.SetDefault("backup.region", "us-east-1")
	v.SetDefault("backup.endpoint", "")
	v.SetDefault("backup.keep", 7)
	v.SetDefault("aws.profile", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return errors.New("session secret is required")
	}
	switch c.Auth.PasswordHashing {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("unknown password hashing mode %q", c.Auth.PasswordHashing)
	}
	if c.News.Timeout <= 0 {
		return errors.New("news timeout must be positive")
	}
	if c.RateLimit.NewsPerMinute < 0 {
		return errors.New("news rate limit must not be negative")
	}
	if c.Backup.Keep < 0 {
		return errors.New("backup keep must not be negative")
	}
	return nil
}
