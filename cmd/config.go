package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort              = "8080"
	defaultDBSslMode             = "disable"
	defaultKafkaOrderTopic       = "orders.changed"
	defaultOverdueOrdersSchedule = "0 */5 * * * *"
	defaultServiceName           = "fulfillment"
)

// Config holds the service settings read from the environment.
type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	OverdueOrdersSchedule  string
	StrictTransitions      bool
	StrictTotals           bool
	IdentityTokens         string
	OtelEndpoint           string
	OtelServiceName        string
}

// LoadConfig reads envFile into the process environment, without overriding
// variables that are already set, then builds the Config. A missing envFile is fine.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	strictTransitions, transitionsErr := boolVariable("ORDER_STRICT_TRANSITIONS")
	strictTotals, totalsErr := boolVariable("ORDER_STRICT_TOTALS")
	if err := errors.Join(transitionsErr, totalsErr); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:               variable("HTTP_PORT", defaultHTTPPort),
		DBHost:                 variable("DB_HOST", ""),
		DBPort:                 variable("DB_PORT", ""),
		DBUser:                 variable("DB_USER", ""),
		DBPassword:             variable("DB_PASSWORD", ""),
		DBName:                 variable("DB_NAME", ""),
		DBSslMode:              variable("DB_SSLMODE", defaultDBSslMode),
		KafkaHost:              variable("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: variable("KAFKA_ORDER_CHANGED_TOPIC", defaultKafkaOrderTopic),
		OverdueOrdersSchedule:  variable("OVERDUE_ORDERS_SCHEDULE", defaultOverdueOrdersSchedule),
		StrictTransitions:      strictTransitions,
		StrictTotals:           strictTotals,
		IdentityTokens:         variable("IDENTITY_TOKENS", ""),
		OtelEndpoint:           variable("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OtelServiceName:        variable("OTEL_SERVICE_NAME", defaultServiceName),
	}, nil
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func variable(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func boolVariable(key string) (bool, error) {
	raw := variable(key, "")
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
