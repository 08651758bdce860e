package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Переменные окружения, переопределяющие файл
const (
	EnvConfigPath = "APPOINTMENTS_CONFIG"
	EnvDBPassword = "APPOINTMENTS_DB_PASSWORD"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Catalog    CatalogConfig    `toml:"catalog"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

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

// DSN строка подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type SchedulingConfig struct {
	// Timezone IANA-имя зоны, в которой считаются календарные дни
	Timezone          string `toml:"timezone"`
	RequireVehicle    bool   `toml:"require_vehicle"`
	EndTimeMode       string `toml:"end_time_mode"`
	StrictServices    bool   `toml:"strict_services"`
	SerializeBookings *bool  `toml:"serialize_bookings"`
	OpenTime          string `toml:"open_time"`
	CloseTime         string `toml:"close_time"`
	SlotStepMinutes   int    `toml:"slot_step_minutes"`
}

// Serialize по умолчанию true
func (s SchedulingConfig) Serialize() bool {
	return s.SerializeBookings == nil || *s.SerializeBookings
}

// Location загружает таймзону. Вызывается после Load, поэтому имя уже проверено
func (s SchedulingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type CatalogConfig struct {
	Services []ServiceConfig `toml:"services"`
}

type ServiceConfig struct {
	Slug    string `toml:"slug"`
	Name    string `toml:"name"`
	Minutes int    `toml:"minutes"`
}

// Entries записи каталога. Пустой список в файле означает встроенный каталог
func (c CatalogConfig) Entries() []catalog.Entry {
	if len(c.Services) == 0 {
		return catalog.DefaultEntries()
	}
	entries := make([]catalog.Entry, len(c.Services))
	for i, s := range c.Services {
		entries[i] = catalog.Entry{Slug: s.Slug, Name: s.Name, Minutes: s.Minutes}
	}
	return entries
}

// Load читает конфигурацию из TOML файла. Путь из APPOINTMENTS_CONFIG имеет приоритет
func Load(path string) (*Config, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		path = env
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if pwd := os.Getenv(EnvDBPassword); pwd != "" {
		cfg.Database.Password = pwd
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения по умолчанию, поверх которых декодируется файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "appointments",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "appointment-service",
		},
		Scheduling: SchedulingConfig{
			Timezone:        domain.DefaultTimezone,
			EndTimeMode:     string(domain.EndTimeDerived),
			OpenTime:        domain.DefaultOpenTime,
			CloseTime:       domain.DefaultCloseTime,
			SlotStepMinutes: domain.DefaultSlotStepMinutes,
		},
	}
}

// Validate проверяет значения после декодирования
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if strings.TrimSpace(c.Database.Host) == "" || strings.TrimSpace(c.Database.DBName) == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	s := c.Scheduling
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}
	if !domain.EndTimeMode(s.EndTimeMode).IsValid() {
		return fmt.Errorf("%w: scheduling.end_time_mode %q, expected %q or %q",
			ErrInvalidConfig, s.EndTimeMode, domain.EndTimeDerived, domain.EndTimeSupplied)
	}

	open, err := types.NewTimeStringFromString(s.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: scheduling.open_time: %v", ErrInvalidConfig, err)
	}
	closeTime, err := types.NewTimeStringFromString(s.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: scheduling.close_time: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(closeTime) {
		return fmt.Errorf("%w: scheduling.open_time must be before close_time", ErrInvalidConfig)
	}
	if s.SlotStepMinutes < domain.MinSlotStep || s.SlotStepMinutes > domain.MaxSlotStep {
		return fmt.Errorf("%w: scheduling.slot_step_minutes must be in [%d, %d]",
			ErrInvalidConfig, domain.MinSlotStep, domain.MaxSlotStep)
	}

	if _, err := catalog.New(c.Catalog.Entries()); err != nil {
		return fmt.Errorf("%w: catalog: %v", ErrInvalidConfig, err)
	}

	return nil
}
