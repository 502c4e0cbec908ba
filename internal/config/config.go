package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrReadConfig возвращается при ошибке чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Logs     Logs     `toml:"logs"`
	Metrics  Metrics  `toml:"metrics"`
	Clinic   Clinic   `toml:"clinic"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// Clinic настройки расписания клиники и каталога лечений
type Clinic struct {
	SlotDurationMinutes int      `toml:"slot_duration_minutes"`
	Windows             []Window `toml:"windows"`
	Treatments          []string `toml:"treatments"`

	// PastSlotInclusive определяет политику границы для слотов "сегодня":
	// true - слот, начинающийся ровно в текущую минуту, уже недоступен (slot <= now),
	// false - такой слот ещё можно забронировать (slot < now).
	PastSlotInclusive bool `toml:"past_slot_inclusive"`
}

// Window одно окно приёма в течение дня, полуинтервал [open, close)
type Window struct {
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.File == "" {
		c.Logs.File = "logs/app.log"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Clinic.SlotDurationMinutes == 0 {
		c.Clinic.SlotDurationMinutes = 30
	}
	if len(c.Clinic.Windows) == 0 {
		c.Clinic.Windows = []Window{
			{Open: "10:00", Close: "14:00"},
			{Open: "16:00", Close: "20:00"},
		}
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host, user and dbname are required", ErrInvalidConfig)
	}

	if c.Clinic.SlotDurationMinutes <= 0 || c.Clinic.SlotDurationMinutes > 240 {
		return fmt.Errorf("%w: slot_duration_minutes must be in (0, 240]", ErrInvalidConfig)
	}

	if len(c.Clinic.Treatments) == 0 {
		return fmt.Errorf("%w: at least one treatment is required", ErrInvalidConfig)
	}

	prevClose := types.TimeString("")
	for i, w := range c.Clinic.Windows {
		open, err := types.NewTimeStringFromString(w.Open)
		if err != nil {
			return fmt.Errorf("%w: window %d open: %v", ErrInvalidConfig, i, err)
		}
		close, err := types.NewTimeStringFromString(w.Close)
		if err != nil {
			return fmt.Errorf("%w: window %d close: %v", ErrInvalidConfig, i, err)
		}
		if !open.IsBefore(close) {
			return fmt.Errorf("%w: window %d open must be before close", ErrInvalidConfig, i)
		}
		// Окна должны идти по возрастанию и не пересекаться
		if !prevClose.IsZero() && open.IsBefore(prevClose) {
			return fmt.Errorf("%w: window %d overlaps previous window", ErrInvalidConfig, i)
		}
		prevClose = close
	}

	return nil
}
