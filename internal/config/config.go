package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dineflow/dineflow/internal/domain"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Booking  BookingConfig
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
	RatePerSec   float64
	RateBurst    int
}

// BookingConfig holds the booking-policy knobs of the engine.
type BookingConfig struct {
	// SlotStep is the granularity of the reservation slot grid.
	SlotStep time.Duration
	// OpenFrom / OpenUntil bound the operating window, inclusive.
	OpenFrom  domain.TimeOfDay
	OpenUntil domain.TimeOfDay
	// Buffer is the minimum separation between two reservations on the
	// same table.
	Buffer time.Duration
	// DeliveryETA / DefaultETA feed estimated_ready_at for delivery and
	// pickup/dine-in orders respectively.
	DeliveryETA time.Duration
	DefaultETA  time.Duration
	// TxAttempts / TxBackoff bound internal retries on concurrency
	// conflicts before surfacing them to the caller.
	TxAttempts int
	TxBackoff  time.Duration
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only. In production, sensitive
// values (DB password) must be set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("DINEFLOW_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("DINEFLOW_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("DINEFLOW_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("DINEFLOW_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("DINEFLOW_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	ratePerSec, err := getEnvFloat("DINEFLOW_SERVER_RATE_PER_SEC", 50)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rateBurst, err := getEnvInt("DINEFLOW_SERVER_RATE_BURST", 100)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	slotStep, err := getEnvDuration("DINEFLOW_BOOKING_SLOT_STEP", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	openFrom, err := getEnvTimeOfDay("DINEFLOW_BOOKING_OPEN_FROM", "11:00")
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	openUntil, err := getEnvTimeOfDay("DINEFLOW_BOOKING_OPEN_UNTIL", "21:30")
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	buffer, err := getEnvDuration("DINEFLOW_BOOKING_BUFFER", 120*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	deliveryETA, err := getEnvDuration("DINEFLOW_BOOKING_DELIVERY_ETA", 45*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	defaultETA, err := getEnvDuration("DINEFLOW_BOOKING_DEFAULT_ETA", 20*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	txAttempts, err := getEnvInt("DINEFLOW_BOOKING_TX_ATTEMPTS", 3)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	txBackoff, err := getEnvDuration("DINEFLOW_BOOKING_TX_BACKOFF", 25*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("DINEFLOW_CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DINEFLOW_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DINEFLOW_DB_USER", "dineflow"),
			Password: getEnv("DINEFLOW_DB_PASSWORD", ""),
			DBName:   getEnv("DINEFLOW_DB_NAME", "dineflow_dev"),
			SSLMode:  getEnv("DINEFLOW_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("DINEFLOW_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("DINEFLOW_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Server: ServerConfig{
			Addr:         getEnv("DINEFLOW_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
			RatePerSec:   ratePerSec,
			RateBurst:    rateBurst,
		},
		Booking: BookingConfig{
			SlotStep:    slotStep,
			OpenFrom:    openFrom,
			OpenUntil:   openUntil,
			Buffer:      buffer,
			DeliveryETA: deliveryETA,
			DefaultETA:  defaultETA,
			TxAttempts:  txAttempts,
			TxBackoff:   txBackoff,
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	if c.Database.SSLMode == "disable" {
		log.Warn().Msg("DINEFLOW_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("DINEFLOW_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DINEFLOW_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("DINEFLOW_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("DINEFLOW_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}

	return c.Booking.validate()
}

func (b *BookingConfig) validate() error {
	if b.SlotStep < time.Minute {
		return fmt.Errorf("DINEFLOW_BOOKING_SLOT_STEP must be >= 1m, got %s", b.SlotStep)
	}
	if b.OpenUntil < b.OpenFrom {
		return errors.New("DINEFLOW_BOOKING_OPEN_UNTIL must not precede DINEFLOW_BOOKING_OPEN_FROM")
	}
	if b.Buffer <= 0 {
		return fmt.Errorf("DINEFLOW_BOOKING_BUFFER must be positive, got %s", b.Buffer)
	}
	if b.DeliveryETA <= 0 || b.DefaultETA <= 0 {
		return errors.New("DINEFLOW_BOOKING_DELIVERY_ETA and DINEFLOW_BOOKING_DEFAULT_ETA must be positive")
	}
	if b.TxAttempts < 1 {
		return fmt.Errorf("DINEFLOW_BOOKING_TX_ATTEMPTS must be >= 1, got %d", b.TxAttempts)
	}
	if b.TxBackoff < 0 {
		return fmt.Errorf("DINEFLOW_BOOKING_TX_BACKOFF must not be negative, got %s", b.TxBackoff)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvTimeOfDay(key, fallback string) (domain.TimeOfDay, error) {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	t, err := domain.ParseTimeOfDay(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as HH:MM: %w", key, v, err)
	}
	return t, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
