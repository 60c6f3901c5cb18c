package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/2beens/gymrats/internal/levels"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel          string `toml:"log_level"`
	LogsPath          string `toml:"logs_path"`
	LogToStdout       bool   `toml:"log_to_stdout"`
	LogFormatJSON     bool   `toml:"log_format_json"`
	LogFileMaxSizeMB  int    `toml:"log_file_max_size_mb"`
	LogFileMaxBackups int    `toml:"log_file_max_backups"`
	LogFileMaxAgeDays int    `toml:"log_file_max_age_days"`
	SentryEnabled     bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// auth
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	TokenTTL                    Duration `toml:"token_ttl"`
	TokenIssuer                 string   `toml:"token_issuer"`
	CorsAllowedOrigins          []string `toml:"cors_allowed_origins"`
	// domain
	Timezone          string        `toml:"timezone"`
	StatsCacheSizeMB  int           `toml:"stats_cache_size_mb"`
	StatsCacheTTL     Duration      `toml:"stats_cache_ttl"`
	ProfileCacheTTL   Duration      `toml:"profile_cache_ttl"`
	ReminderScanEvery Duration      `toml:"reminder_scan_every"`
	LevelTiers        []levels.Tier `toml:"level_tiers"`
	Kafka             KafkaConfig   `toml:"kafka"`
}

type KafkaConfig struct {
	Enabled           bool     `toml:"enabled"`
	Brokers           []string `toml:"brokers"`
	TopicDayCompleted string   `toml:"topic_day_completed"`
	TopicRemindersDue string   `toml:"topic_reminders_due"`
}

// Duration decodes TOML strings like "90s" or "1h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path, picks the env section and fills defaults.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if _, err := levels.NewTable(cfg.LevelTiers); err != nil {
		return nil, fmt.Errorf("level tiers: %w", err)
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.TokenTTL.Duration <= 0 {
		c.TokenTTL.Duration = time.Hour
	}
	if c.TokenIssuer == "" {
		c.TokenIssuer = "gymrats"
	}
	if c.StatsCacheSizeMB <= 0 {
		c.StatsCacheSizeMB = 32
	}
	if c.StatsCacheTTL.Duration <= 0 {
		c.StatsCacheTTL.Duration = 10 * time.Minute
	}
	if c.ProfileCacheTTL.Duration <= 0 {
		c.ProfileCacheTTL.Duration = 2 * time.Minute
	}
	if c.ReminderScanEvery.Duration <= 0 {
		c.ReminderScanEvery.Duration = time.Minute
	}
	if len(c.LevelTiers) == 0 {
		c.LevelTiers = levels.DefaultTiers()
	}
	if c.Kafka.TopicDayCompleted == "" {
		c.Kafka.TopicDayCompleted = "gymrats.workout.day-completed"
	}
	if c.Kafka.TopicRemindersDue == "" {
		c.Kafka.TopicRemindersDue = "gymrats.reminders.due"
	}
}
