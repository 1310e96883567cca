package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	IdentityService IdentityServiceConfig `toml:"identity_service"`
	Template        TemplateConfig        `toml:"template"`
	RateLimit       RateLimitConfig       `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (значения таймаутов в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IdentityServiceConfig настройки клиента IdentityService
type IdentityServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// TemplateConfig настройки шаблона слотов
// Шаблон неизменяемый: читается один раз при старте
type TemplateConfig struct {
	CounselorID    int64    `toml:"counselor_id"`
	Slots          []string `toml:"slots"`
	BlockedWeekday string   `toml:"blocked_weekday"`
	LeadDays       int      `toml:"lead_days"`
}

// RateLimitConfig настройки ограничения частоты подачи заявок
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ParsedBlockedWeekday конвертирует название дня недели в time.Weekday
func (c *TemplateConfig) ParsedBlockedWeekday() (time.Weekday, error) {
	weekdays := map[string]time.Weekday{
		"Sunday":    time.Sunday,
		"Monday":    time.Monday,
		"Tuesday":   time.Tuesday,
		"Wednesday": time.Wednesday,
		"Thursday":  time.Thursday,
		"Friday":    time.Friday,
		"Saturday":  time.Saturday,
	}

	day, ok := weekdays[c.BlockedWeekday]
	if !ok {
		return 0, fmt.Errorf("config: unknown weekday %q", c.BlockedWeekday)
	}
	return day, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8084,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "counseling-service",
		},
		IdentityService: IdentityServiceConfig{
			Timeout: 5,
		},
		Template: TemplateConfig{
			CounselorID:    domain.DefaultCounselorID,
			Slots:          domain.DefaultSlotTimes,
			BlockedWeekday: domain.DefaultBlockedWeekday.String(),
			LeadDays:       domain.DefaultLeadDays,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     1,
			Burst:   5,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("config: database host, dbname and user are required")
	}
	if c.IdentityService.URL == "" {
		return fmt.Errorf("config: identity_service.url is required")
	}
	if c.Template.CounselorID <= 0 {
		return fmt.Errorf("config: template.counselor_id must be positive")
	}
	if len(c.Template.Slots) == 0 {
		return fmt.Errorf("config: template.slots must not be empty")
	}
	if c.Template.LeadDays < 0 {
		return fmt.Errorf("config: template.lead_days must be non-negative")
	}
	if _, err := c.Template.ParsedBlockedWeekday(); err != nil {
		return err
	}
	if c.RateLimit.Enabled && c.RateLimit.RPS <= 0 {
		return fmt.Errorf("config: rate_limit.rps must be positive when enabled")
	}
	return nil
}
