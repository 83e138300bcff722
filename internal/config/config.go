package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port             int
	DB               DB
	Retry            Retry
	Kafka            Kafka
	Audit            Audit
	Uploads          Uploads
	RateLimit        RateLimit
	Pprof            Pprof
	Log              Log
	TimeZone         string
	OperationTimeout time.Duration
}

// DB stores Postgres connection settings.
type DB struct {
	Host        string
	Port        string
	User        string
	Pass        string
	Name        string
	SSLMode     string
	LockTimeout time.Duration
}

// DSN builds a postgres connection URL.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// Retry is the fixed-delay policy for contended writes.
type Retry struct {
	MaxAttempts int
	Delay       time.Duration
}

// Kafka stores consumer settings; an empty broker list disables the consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Audit stores the invariant audit schedule (robfig/cron spec).
type Audit struct {
	Schedule string
}

// Uploads stores completion proof upload settings.
type Uploads struct {
	Dir      string
	MaxBytes int64
}

// RateLimit stores HTTP rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores debug server settings; an empty Addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Log stores logger settings.
type Log struct {
	Level   string
	Backend string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:             defaultPort,
		DB:               defaultDB,
		Retry:            defaultRetry,
		Kafka:            defaultKafka,
		Audit:            defaultAudit,
		Uploads:          defaultUploads,
		RateLimit:        defaultRateLimit,
		Log:              defaultLog,
		TimeZone:         defaultTimeZone,
		OperationTimeout: defaultOperationTimeout,
	}

	e := envReader{}
	e.setInt("PORT", &cfg.Port)
	e.setString("POSTGRES_HOST", &cfg.DB.Host)
	e.setString("POSTGRES_PORT", &cfg.DB.Port)
	e.setString("POSTGRES_USER", &cfg.DB.User)
	e.setString("POSTGRES_PASSWORD", &cfg.DB.Pass)
	e.setString("POSTGRES_DB", &cfg.DB.Name)
	e.setString("POSTGRES_SSLMODE", &cfg.DB.SSLMode)
	e.setDuration("POSTGRES_LOCK_TIMEOUT", &cfg.DB.LockTimeout)
	e.setInt("WRITE_RETRY_MAX_ATTEMPTS", &cfg.Retry.MaxAttempts)
	e.setDuration("WRITE_RETRY_DELAY", &cfg.Retry.Delay)
	e.setList("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	e.setString("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	e.setString("ORDERS_TOPIC", &cfg.Kafka.Topic)
	e.setString("AUDIT_SCHEDULE", &cfg.Audit.Schedule)
	e.setString("UPLOAD_DIR", &cfg.Uploads.Dir)
	e.setInt64("UPLOAD_MAX_BYTES", &cfg.Uploads.MaxBytes)
	e.setBool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	e.setFloat("RATE_LIMIT_RATE", &cfg.RateLimit.Rate)
	e.setInt("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	e.setDuration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL)
	e.setInt("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets)
	e.setString("PPROF_ADDR", &cfg.Pprof.Addr)
	e.setString("PPROF_USER", &cfg.Pprof.User)
	e.setString("PPROF_PASS", &cfg.Pprof.Pass)
	e.setString("LOG_LEVEL", &cfg.Log.Level)
	e.setString("LOG_BACKEND", &cfg.Log.Backend)
	e.setString("TZ_DISPLAY", &cfg.TimeZone)
	e.setDuration("OPERATION_TIMEOUT", &cfg.OperationTimeout)
	if e.err != nil {
		return nil, e.err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	pflag.StringVar(&cfg.Audit.Schedule, "audit-schedule", cfg.Audit.Schedule, "cron spec of the invariant audit")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid postgres port: %q", c.DB.Port)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("invalid write retry attempts: %d", c.Retry.MaxAttempts)
	}
	if c.Retry.Delay < 0 {
		return fmt.Errorf("invalid write retry delay: %s", c.Retry.Delay)
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("invalid upload limit: %d", c.Uploads.MaxBytes)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid display time zone %q: %w", c.TimeZone, err)
	}
	switch c.Log.Backend {
	case "slog", "zap":
	default:
		return fmt.Errorf("invalid log backend: %q", c.Log.Backend)
	}
	return nil
}

// Location returns the display time zone used for order bucketing.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// envReader applies non-empty environment variables and keeps the first parse error.
type envReader struct{ err error }

func (e *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != "" && e.err == nil
}

func (e *envReader) fail(key, v string, err error) {
	e.err = fmt.Errorf("parse %s=%q: %w", key, v, err)
}

func (e *envReader) setString(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) setList(key string, dst *[]string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}

func (e *envReader) setInt(key string, dst *int) {
	if v, ok := e.lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) setInt64(key string, dst *int64) {
	if v, ok := e.lookup(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) setFloat(key string, dst *float64) {
	if v, ok := e.lookup(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (e *envReader) setBool(key string, dst *bool) {
	if v, ok := e.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) setDuration(key string, dst *time.Duration) {
	if v, ok := e.lookup(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = d
	}
}
