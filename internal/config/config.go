package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/worktime"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
	Policy   PolicyConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool
}

// RedisConfig is optional; an empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// EngineConfig bounds the summary engines.
type EngineConfig struct {
	Workers         int
	BatchSize       int
	CatalogCacheTTL time.Duration
}

// PolicyConfig holds the raw work-time policy values, see Policy().
type PolicyConfig struct {
	NormalStart            string
	NormalEnd              string
	WorkableMinutesPerDay  int
	LunchStart             string
	LunchEnd               string
	LunchDeductionMinutes  int
	DinnerThresholdMinutes int
	DinnerDeductionMinutes int
}

type CronConfig struct {
	Enabled  bool
	Interval time.Duration
	// Hour (0-23, local time) at which the nightly regeneration runs
	Hour int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}
	var errs []string
	atoi := func(key, fallback string) int {
		v, err := strconv.Atoi(getEnv(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", key, err))
		}
		return v
	}
	duration := func(key, fallback string) time.Duration {
		v, err := time.ParseDuration(getEnv(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", key, err))
		}
		return v
	}
	boolean := func(key, fallback string) bool {
		v, err := strconv.ParseBool(getEnv(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", key, err))
		}
		return v
	}

	// Database configuration
	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        atoi("DB_PORT", "5432"),
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "cmlabs-hris"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		MaxConns:    atoi("DB_MAX_CONNS", "25"),
		AutoMigrate: boolean("DB_AUTO_MIGRATE", "false"),
	}

	// Redis configuration
	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Username: getEnv("REDIS_USER", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       atoi("REDIS_DB", "0"),
	}

	// Application configuration
	config.App = AppConfig{
		Port:               atoi("APP_PORT", "8080"),
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Engine = EngineConfig{
		Workers:         atoi("ENGINE_WORKERS", "4"),
		BatchSize:       atoi("ENGINE_BATCH_SIZE", "1000"),
		CatalogCacheTTL: duration("ENGINE_CATALOG_CACHE_TTL", "10m"),
	}

	config.Policy = PolicyConfig{
		NormalStart:            getEnv("POLICY_NORMAL_START", worktime.DefaultNormalStart),
		NormalEnd:              getEnv("POLICY_NORMAL_END", worktime.DefaultNormalEnd),
		WorkableMinutesPerDay:  atoi("POLICY_WORKABLE_MINUTES_PER_DAY", strconv.Itoa(worktime.DefaultWorkableMinutesPerDay)),
		LunchStart:             getEnv("POLICY_LUNCH_START", worktime.DefaultLunchStart),
		LunchEnd:               getEnv("POLICY_LUNCH_END", worktime.DefaultLunchEnd),
		LunchDeductionMinutes:  atoi("POLICY_LUNCH_DEDUCTION_MINUTES", strconv.Itoa(worktime.DefaultLunchDeductionMinutes)),
		DinnerThresholdMinutes: atoi("POLICY_DINNER_THRESHOLD_MINUTES", strconv.Itoa(worktime.DefaultDinnerThresholdMinutes)),
		DinnerDeductionMinutes: atoi("POLICY_DINNER_DEDUCTION_MINUTES", strconv.Itoa(worktime.DefaultDinnerDeductionMinutes)),
	}

	config.Cron = CronConfig{
		Enabled:  boolean("CRON_ENABLED", "true"),
		Interval: duration("CRON_INTERVAL", "1h"),
		Hour:     atoi("CRON_SUMMARY_HOUR", "1"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration parsing failed: %s", strings.Join(errs, "; "))
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Engine.Workers < 1 {
		return fmt.Errorf("ENGINE_WORKERS must be at least 1")
	}
	if c.Engine.BatchSize < 1 {
		return fmt.Errorf("ENGINE_BATCH_SIZE must be at least 1")
	}
	if c.Cron.Hour < 0 || c.Cron.Hour > 23 {
		return fmt.Errorf("CRON_SUMMARY_HOUR must be between 0 and 23")
	}
	if _, err := c.WorkTimePolicy(); err != nil {
		return err
	}
	return nil
}

// WorkTimePolicy parses the POLICY_* values into a validated worktime.Policy.
func (c *Config) WorkTimePolicy() (worktime.Policy, error) {
	p := c.Policy
	policy := worktime.Policy{
		WorkableMinutesPerDay:  p.WorkableMinutesPerDay,
		LunchDeductionMinutes:  p.LunchDeductionMinutes,
		DinnerThresholdMinutes: p.DinnerThresholdMinutes,
		DinnerDeductionMinutes: p.DinnerDeductionMinutes,
	}

	for _, field := range []struct {
		env string
		raw string
		dst *worktime.Clock
	}{
		{"POLICY_NORMAL_START", p.NormalStart, &policy.NormalStart},
		{"POLICY_NORMAL_END", p.NormalEnd, &policy.NormalEnd},
		{"POLICY_LUNCH_START", p.LunchStart, &policy.LunchStart},
		{"POLICY_LUNCH_END", p.LunchEnd, &policy.LunchEnd},
	} {
		clock, err := worktime.ParseClock(field.raw)
		if err != nil {
			return worktime.Policy{}, fmt.Errorf("invalid %s: %w", field.env, err)
		}
		*field.dst = clock
	}

	if err := policy.Validate(); err != nil {
		return worktime.Policy{}, fmt.Errorf("invalid work-time policy: %w", err)
	}
	return policy, nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
