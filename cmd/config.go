package cmd

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DatabaseURL  string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string
	DBMaxOpen    int
	OutboxListen bool

	DirectoryURL      string
	UsersURL          string
	LedgerURL         string
	DispatcherURL     string
	HTTPClientTimeout time.Duration
	EnrichConcurrency int

	TransitionPolicy string

	EventBroker           string
	RabbitMQURL           string
	KafkaBrokers          string
	KafkaOrderEventsTopic string

	OutboxMaxAttempts      int
	OutboxInitialBackoff   time.Duration
	OutboxMaxBackoff       time.Duration
	OutboxClaimDelay       time.Duration
	OutboxLease            time.Duration
	OutboxBatchSize        int
	RelaySchedule          string
	ReconciliationSchedule string
}

// LoadConfig reads .env if present, then the environment.
func LoadConfig() Config {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Warnf("Error loading .env file: %v", err)
	}

	return Config{
		HTTPPort: EnvDefault("HTTP_PORT", "8080"),
		LogLevel: EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DBHost:       EnvDefault("DB_HOST", "localhost"),
		DBPort:       EnvDefault("DB_PORT", "5432"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBSslMode:    EnvDefault("DB_SSLMODE", "disable"),
		DBMaxOpen:    EnvIntDefault("DB_MAX_OPEN_CONNS", 20),
		OutboxListen: EnvBoolDefault("OUTBOX_LISTEN", true),

		DirectoryURL:      os.Getenv("DIRECTORY_URL"),
		UsersURL:          os.Getenv("USERS_URL"),
		LedgerURL:         os.Getenv("LEDGER_URL"),
		DispatcherURL:     os.Getenv("DISPATCHER_URL"),
		HTTPClientTimeout: EnvDurationDefault("HTTP_CLIENT_TIMEOUT", 5*time.Second),
		EnrichConcurrency: EnvIntDefault("ENRICH_CONCURRENCY", 8),

		TransitionPolicy: EnvDefault("ORDER_TRANSITION_POLICY", "permissive"),

		EventBroker:           EnvDefault("EVENT_BROKER", "log"),
		RabbitMQURL:           os.Getenv("RABBITMQ_URL"),
		KafkaBrokers:          os.Getenv("KAFKA_BROKERS"),
		KafkaOrderEventsTopic: EnvDefault("KAFKA_ORDER_EVENTS_TOPIC", "order_events"),

		OutboxMaxAttempts:      EnvIntDefault("OUTBOX_MAX_ATTEMPTS", 8),
		OutboxInitialBackoff:   EnvDurationDefault("OUTBOX_INITIAL_BACKOFF", time.Second),
		OutboxMaxBackoff:       EnvDurationDefault("OUTBOX_MAX_BACKOFF", 5*time.Minute),
		OutboxClaimDelay:       EnvDurationDefault("OUTBOX_CLAIM_DELAY", 30*time.Second),
		OutboxLease:            EnvDurationDefault("OUTBOX_LEASE", time.Minute),
		OutboxBatchSize:        EnvIntDefault("OUTBOX_BATCH_SIZE", 50),
		RelaySchedule:          EnvDefault("OUTBOX_RELAY_SCHEDULE", "* * * * * *"),
		ReconciliationSchedule: EnvDefault("RECONCILIATION_SCHEDULE", "*/10 * * * * *"),
	}
}

// DSN returns DATABASE_URL when set and otherwise builds a URL from the DB_* values.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSslMode),
	}
	return u.String()
}

// ValidateOrchestrator reports the settings the orchestrator cannot start without.
func (c Config) ValidateOrchestrator() error {
	var missing []string
	for env, value := range map[string]string{
		"DIRECTORY_URL":  c.DirectoryURL,
		"LEDGER_URL":     c.LedgerURL,
		"DISPATCHER_URL": c.DispatcherURL,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	slices.Sort(missing)
	if c.DatabaseURL == "" && c.DBName == "" {
		missing = append(missing, "DATABASE_URL or DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env %s", strings.Join(missing, ", "))
	}
	return nil
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warnf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warnf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warnf("invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}
