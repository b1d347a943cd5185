package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/go_checkout/internal/publisher"
	"github.com/fjod/go_checkout/internal/service"
	"github.com/fjod/go_checkout/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

type Config struct {
	Http     *HTTPConfig
	Checkout *CheckoutCfg
	Store    *StoreCfg
	Kafka    *KafkaCfg
	Log      *LogCfg
}

type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type CheckoutCfg struct {
	ShippingFee  decimal.Decimal
	Subtotal     service.SubtotalMode
	Settlement   service.SettlementMode
	ExpiryPolicy service.ExpiryPolicy
}

type StoreCfg struct {
	CartTTL         time.Duration // idle carts older than this are dropped
	CleanupInterval time.Duration
}

// KafkaCfg is optional: without brokers manifests are not published
type KafkaCfg struct {
	Brokers            []string
	Topic              string
	WriteTimeout       time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

type LogCfg struct {
	Level  string
	Format string
}

// Enabled reports whether manifests should be published
func (k *KafkaCfg) Enabled() bool {
	return len(k.Brokers) > 0
}

// Options converts the checkout section into cart options
func (c *CheckoutCfg) Options() service.Options {
	return service.Options{
		Subtotal:     c.Subtotal,
		Settlement:   c.Settlement,
		ExpiryPolicy: c.ExpiryPolicy,
	}.WithShippingFee(c.ShippingFee)
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	http, err := loadHTTPConfig()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	checkout, err := loadCheckoutCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	store, err := loadStoreCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:     http,
		Checkout: checkout,
		Store:    store,
		Kafka:    kafka,
		Log:      loadLogCfg(),
	}, nil
}

func loadHTTPConfig() (*HTTPConfig, error) {
	const (
		defaultPort            = "8080"
		defaultReadTimeout     = 10 * time.Second
		defaultWriteTimeout    = 10 * time.Second
		defaultIdleTimeout     = 60 * time.Second
		defaultRequestTimeout  = 30 * time.Second
		defaultShutdownTimeout = 10 * time.Second
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		return nil, e.Wrap("HTTP_READ_TIMEOUT", err)
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		return nil, e.Wrap("HTTP_WRITE_TIMEOUT", err)
	}

	idleTimeout, err := parseDurationEnv("HTTP_IDLE_TIMEOUT", defaultIdleTimeout)
	if err != nil {
		return nil, e.Wrap("HTTP_IDLE_TIMEOUT", err)
	}

	requestTimeout, err := parseDurationEnv("REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, e.Wrap("REQUEST_TIMEOUT", err)
	}

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, e.Wrap("SHUTDOWN_TIMEOUT", err)
	}

	return &HTTPConfig{
		Port:            getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		RequestTimeout:  requestTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func loadCheckoutCfg() (*CheckoutCfg, error) {
	defaults := service.DefaultOptions()

	fee := defaults.Fee()
	if v := os.Getenv("SHIPPING_FEE"); v != "" {
		parsed, err := decimal.NewFromString(v)
		if err != nil || parsed.IsNegative() {
			return nil, e.Wrap("SHIPPING_FEE", e.ErrIncorrectEnvVariable)
		}
		fee = parsed
	}

	subtotal := service.SubtotalMode(getEnvOrDefault("SUBTOTAL_MODE", string(defaults.Subtotal)))
	if !subtotal.Valid() {
		return nil, e.Wrap("SUBTOTAL_MODE", e.ErrIncorrectEnvVariable)
	}

	settlement := service.SettlementMode(getEnvOrDefault("SETTLEMENT_MODE", string(defaults.Settlement)))
	if !settlement.Valid() {
		return nil, e.Wrap("SETTLEMENT_MODE", e.ErrIncorrectEnvVariable)
	}

	expiry := service.ExpiryPolicy(getEnvOrDefault("EXPIRY_POLICY", string(defaults.ExpiryPolicy)))
	if !expiry.Valid() {
		return nil, e.Wrap("EXPIRY_POLICY", e.ErrIncorrectEnvVariable)
	}

	return &CheckoutCfg{
		ShippingFee:  fee,
		Subtotal:     subtotal,
		Settlement:   settlement,
		ExpiryPolicy: expiry,
	}, nil
}

func loadStoreCfg() (*StoreCfg, error) {
	const (
		defaultCartTTL         = 30 * time.Minute
		defaultCleanupInterval = 30 * time.Second
	)

	ttl, err := parseDurationEnv("CART_TTL", defaultCartTTL)
	if err != nil {
		return nil, e.Wrap("CART_TTL", err)
	}

	interval, err := parseDurationEnv("CART_CLEANUP_INTERVAL", defaultCleanupInterval)
	if err != nil {
		return nil, e.Wrap("CART_CLEANUP_INTERVAL", err)
	}
	if interval <= 0 {
		return nil, e.Wrap("CART_CLEANUP_INTERVAL", e.ErrIncorrectEnvVariable)
	}

	return &StoreCfg{
		CartTTL:         ttl,
		CleanupInterval: interval,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultWriteTimeout       = 5 * time.Second
		defaultBreakerMaxFailures = 5
		defaultBreakerOpenTimeout = 30 * time.Second
	)

	var brokers []string
	if brokerStr := os.Getenv("KAFKA_BROKERS"); brokerStr != "" {
		for _, b := range strings.Split(brokerStr, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	writeTimeout, err := parseDurationEnv("KAFKA_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		return nil, e.Wrap("KAFKA_WRITE_TIMEOUT", err)
	}

	maxFailures, err := parseIntEnv("BREAKER_MAX_FAILURES", defaultBreakerMaxFailures)
	if err != nil {
		return nil, e.Wrap("BREAKER_MAX_FAILURES", err)
	}
	if maxFailures <= 0 {
		return nil, e.Wrap("BREAKER_MAX_FAILURES", e.ErrIncorrectEnvVariable)
	}

	openTimeout, err := parseDurationEnv("BREAKER_OPEN_TIMEOUT", defaultBreakerOpenTimeout)
	if err != nil {
		return nil, e.Wrap("BREAKER_OPEN_TIMEOUT", err)
	}

	return &KafkaCfg{
		Brokers:            brokers,
		Topic:              getEnvOrDefault("KAFKA_TOPIC", publisher.DefaultTopic),
		WriteTimeout:       writeTimeout,
		BreakerMaxFailures: uint32(maxFailures),
		BreakerOpenTimeout: openTimeout,
	}, nil
}

func loadLogCfg() *LogCfg {
	return &LogCfg{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

// getEnvOrDefault returns the variable or defaultValue when it is unset or empty
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return defaultValue, fmt.Errorf("%w: %v", e.ErrIncorrectEnvVariable, err)
		}
		return d, nil
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
