package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"cleo-sign/internal/domain/entity"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Provider ProviderConfig `mapstructure:"provider"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Signing  SigningConfig  `mapstructure:"signing"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Port    int    `mapstructure:"port"`
	Env     string `mapstructure:"env"`
	BaseURL string `mapstructure:"base_url"`
}

// ProviderConfig holds the signature provider API connection settings
type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// IsSandbox reports whether the configured base URL points at the provider's
// sandbox environment. Fallback web links are selected from this.
func (p *ProviderConfig) IsSandbox() bool {
	return strings.Contains(p.BaseURL, "sandbox")
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SigningConfig holds the orchestration knobs
type SigningConfig struct {
	ExpirationDays   int           `mapstructure:"expiration_days"`    // signature request lifetime in days (default: 7)
	Timezone         string        `mapstructure:"timezone"`           // provider timezone (default: Europe/Paris)
	SettleDelay      time.Duration `mapstructure:"settle_delay"`       // wait before reading signers back after a write
	WaitPollInterval time.Duration `mapstructure:"wait_poll_interval"` // contract flag poll interval
	WaitTimeout      time.Duration `mapstructure:"wait_timeout"`       // default contract flag wait deadline
	DownloadTimeout  time.Duration `mapstructure:"download_timeout"`   // per-document download deadline
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Durations are given in seconds in the config file
	cfg.Provider.Timeout = cfg.Provider.Timeout * time.Second
	cfg.Signing.SettleDelay = cfg.Signing.SettleDelay * time.Second
	cfg.Signing.WaitPollInterval = cfg.Signing.WaitPollInterval * time.Second
	cfg.Signing.WaitTimeout = cfg.Signing.WaitTimeout * time.Second
	cfg.Signing.DownloadTimeout = cfg.Signing.DownloadTimeout * time.Second

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = 30 * time.Second
	}
	if cfg.Signing.ExpirationDays == 0 {
		cfg.Signing.ExpirationDays = entity.DefaultExpirationDays
	}
	if cfg.Signing.Timezone == "" {
		cfg.Signing.Timezone = entity.DefaultTimezone
	}
	if cfg.Signing.SettleDelay == 0 {
		cfg.Signing.SettleDelay = 5 * time.Second
	}
	if cfg.Signing.WaitPollInterval == 0 {
		cfg.Signing.WaitPollInterval = 30 * time.Second
	}
	if cfg.Signing.WaitTimeout == 0 {
		// A human has to act before the admin flag flips, so the default
		// deadline is minutes, not seconds.
		cfg.Signing.WaitTimeout = 15 * time.Minute
	}
	if cfg.Signing.DownloadTimeout == 0 {
		cfg.Signing.DownloadTimeout = 30 * time.Second
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)
