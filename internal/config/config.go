package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
)

// Save backends
const (
	SaveBackendFile     = "file"
	SaveBackendPostgres = "postgres"
	SaveBackendRedis    = "redis"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat   string `validate:"oneof=text json"`
	LogDir      string `validate:"required"`
	Environment string `validate:"required"`
	Version     string
	APIKey      string // optional; when set, mutating routes require X-API-Key
	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string

	SaveBackend string `validate:"oneof=file postgres redis"`
	SaveDir     string `validate:"required_if=SaveBackend file"`
	SaveSlot    string `validate:"required,max=64"`
	SaveBackups int    `validate:"min=0,max=50"`

	DBUser            string
	DBPassword        string
	DBHost            string `validate:"required_if=SaveBackend postgres"`
	DBPort            string
	DBName            string        `validate:"required_if=SaveBackend postgres"`
	DBMaxConns        int           `validate:"min=1"`
	DBMaxConnIdleTime time.Duration `validate:"min=0"`
	DBMaxConnLifetime time.Duration `validate:"min=0"`

	RedisAddr     string `validate:"required_if=SaveBackend redis"`
	RedisPassword string
	RedisDB       int `validate:"min=0"`

	TickInterval     time.Duration `validate:"min=10ms"`
	AutosaveInterval time.Duration `validate:"min=0"` // 0 disables autosave
	WorkerCount      int           `validate:"min=1,max=64"`

	GridSize        int           `validate:"min=1,max=256"`
	GridColumns     int           `validate:"min=1,ltefield=GridSize"`
	HistoryCapacity int           // negative disables undo
	BatchDebounce   time.Duration // negative flushes batches synchronously

	TravelCooldown  time.Duration `validate:"min=0"`
	TravelSteps     int           `validate:"min=1,max=20"`
	TravelStepDelay time.Duration `validate:"min=0"`

	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		SaveBackend: getEnv("SAVE_BACKEND", SaveBackendFile),
		SaveDir:     getEnv("SAVE_DIR", "saves"),
		SaveSlot:    getEnv("SAVE_SLOT", "main"),
		SaveBackups: getEnvAsInt("SAVE_BACKUPS", 3),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "chronofarm"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 5),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		TickInterval:     getEnvAsDuration("TICK_INTERVAL", time.Second),
		AutosaveInterval: getEnvAsDuration("AUTOSAVE_INTERVAL", time.Minute),
		WorkerCount:      getEnvAsInt("WORKER_COUNT", 2),

		GridSize:        getEnvAsInt("GRID_SIZE", domain.DefaultGridSize),
		GridColumns:     getEnvAsInt("GRID_COLUMNS", domain.DefaultGridColumns),
		HistoryCapacity: getEnvAsInt("HISTORY_CAPACITY", 0),
		BatchDebounce:   getEnvAsDuration("BATCH_DEBOUNCE", 0),

		TravelCooldown:  getEnvAsDuration("TRAVEL_COOLDOWN", domain.DefaultTravelCooldown),
		TravelSteps:     getEnvAsInt("TRAVEL_STEPS", domain.DefaultTravelSteps),
		TravelStepDelay: getEnvAsDuration("TRAVEL_STEP_DELAY", domain.DefaultTravelStepDelay),

		EventDeadLetterPath: getEnv("EVENT_DEAD_LETTER_PATH", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the struct constraints and reports each failing field by
// its environment name
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Errorf("invalid %s: failed %q", EnvName(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(msgs...))
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back to the
// default when it is unset or unparsable
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses Go duration syntax ("1s", "250ms")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
