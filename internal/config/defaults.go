package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host:        "127.0.0.1",
	Port:        "5432",
	User:        "myuser",
	Pass:        "mypassword",
	Name:        "toko_roti",
	SSLMode:     "disable",
	LockTimeout: 2 * time.Second,
}

var defaultRetry = Retry{
	MaxAttempts: 5,
	Delay:       time.Second,
}

var defaultKafka = Kafka{
	GroupID: "bakery-dispatch",
	Topic:   "order-status",
}

var defaultAudit = Audit{
	Schedule: "@every 1m",
}

var defaultUploads = Uploads{
	Dir:      "uploads",
	MaxBytes: 5 << 20,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       10,
	Burst:      20,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultLog = Log{
	Level:   "info",
	Backend: "slog",
}

const (
	defaultTimeZone         = "Asia/Jakarta"
	defaultOperationTimeout = 3 * time.Second
)

// DefaultPort returns the default port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultRetry returns the default write retry policy.
func DefaultRetry() Retry { return defaultRetry }
